// Package diag defines the stable diagnostic-record shape emitted by the
// analysis core and its collaborators (SPEC_FULL.md §6.2), and the sink
// that accumulates them.
package diag

import (
	"fmt"
	"sort"
)

// Severity is either Error or Warning; nothing else is meaningful to the
// pipeline's exit code (SPEC_FULL.md §6.1).
type Severity int

const (
	Warning Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// MarshalJSON renders Severity as its string form, so -format json's
// output matches the human-readable form's "error"/"warning" spelling
// instead of a bare 0/1.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Kind enumerates every diagnostic the analyzer can emit: the seven
// dataflow-core kinds from spec.md §7, plus the plain-check kinds added by
// SPEC_FULL.md §4.9.
type Kind string

const (
	Unreachable             Kind = "Unreachable"
	MissingReturn           Kind = "MissingReturn"
	UseBeforeDef            Kind = "UseBeforeDef"
	DeadStore               Kind = "DeadStore"
	DivisionByZero          Kind = "DivisionByZero"
	PossibleDivisionByZero  Kind = "PossibleDivisionByZero"
	ConstantOverflow        Kind = "ConstantOverflow"

	Redeclaration  Kind = "Redeclaration"
	UndeclaredName Kind = "UndeclaredName"
	TypeMismatch   Kind = "TypeMismatch"
	MissingMain    Kind = "MissingMain"
	InvalidMain    Kind = "InvalidMain"
	NotAFunction   Kind = "NotAFunction"
	ArityMismatch  Kind = "ArityMismatch"
)

// severityOf is the default severity for each kind; Sink.ReportSeverity
// trusts the caller's explicit Severity, this is only used by Sink.Report
// below.
var severityOf = map[Kind]Severity{
	Unreachable:            Warning,
	MissingReturn:          Error,
	UseBeforeDef:           Error,
	DeadStore:              Warning,
	DivisionByZero:         Error,
	PossibleDivisionByZero: Warning,
	ConstantOverflow:       Warning,
	Redeclaration:          Error,
	UndeclaredName:         Error,
	TypeMismatch:           Error,
	MissingMain:            Error,
	InvalidMain:            Error,
	NotAFunction:           Error,
	ArityMismatch:          Error,
}

// Location pinpoints a diagnostic in source.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Diagnostic is one reported defect, in the stable shape of spec.md §6.
type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Location Location
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", d.Location, d.Severity, d.Message, d.Kind)
}

// Sink accumulates diagnostics for one pipeline run. It owns no global
// state (SPEC_FULL.md §9): a fresh Sink is created per invocation.
type Sink struct {
	file string
	diags []Diagnostic
}

// NewSink returns a Sink that stamps every diagnostic with file.
func NewSink(file string) *Sink {
	return &Sink{file: file}
}

// Report appends a diagnostic at the default severity for kind.
func (s *Sink) Report(kind Kind, pos Location, format string, args ...any) {
	sev, ok := severityOf[kind]
	if !ok {
		sev = Error
	}
	s.ReportSeverity(sev, kind, pos, format, args...)
}

// ReportSeverity appends a diagnostic at an explicit severity, overriding
// the kind's default (used when config.Config raises/lowers a kind).
func (s *Sink) ReportSeverity(sev Severity, kind Kind, pos Location, format string, args ...any) {
	if pos.File == "" {
		pos.File = s.file
	}
	s.diags = append(s.diags, Diagnostic{
		Severity: sev,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Location: pos,
	})
}

// Diagnostics returns all accumulated diagnostics, sorted by
// (file, line, column, kind) per spec.md §6's stable-ordering rule.
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Location.File != b.Location.File {
			return a.Location.File < b.Location.File
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.Column != b.Location.Column {
			return a.Location.Column < b.Location.Column
		}
		return a.Kind < b.Kind
	})
	return out
}

// HasErrors reports whether any accumulated diagnostic is Error severity,
// which determines the CLI's exit code (spec.md §6).
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
