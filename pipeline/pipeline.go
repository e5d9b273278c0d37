// Package pipeline ties the frontend, the plain checker, the CFG builder,
// and the dataflow-core analyses into the single "source bytes in,
// diagnostics out" entry point spec.md §9 describes. Grounded on
// original_source/src/pipeline.py's analyze_source, restructured so a
// lex/parse failure and a semantic/dataflow finding both flow through the
// same *diag.Sink instead of the original's mix of exceptions and a
// separate error list.
package pipeline

import (
	"fmt"

	"github.com/YatharthShah2006/minic-static-analyzer/analyses"
	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/check"
	"github.com/YatharthShah2006/minic-static-analyzer/config"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/lexer"
	"github.com/YatharthShah2006/minic-static-analyzer/parser"
)

// Result is one file's full analysis output: the diagnostics accumulated
// across every phase, plus the built CFGs keyed by function name (needed by
// -render-cfg). CFGs is never nil: it is empty when lexing or parsing
// failed, and a function whose CFG build panicked is absent from it.
type Result struct {
	Diagnostics []diag.Diagnostic
	CFGs        map[string]*cfg.CFG
}

// Run lexes, parses, checks, and analyzes source, stamping every
// diagnostic with file. Unlike the original's analyze_source, a lex or
// parse failure doesn't abort the whole run silently: it becomes a single
// diagnostic, matching spec.md §9's "pure function from source bytes to a
// diagnostic sequence" contract (the pipeline itself never returns an
// error; only its collaborators do, and those get folded into the sink).
func Run(file, source string, cfgOpts *config.Config, logger *config.LogGroup) *Result {
	sink := diag.NewSink(file)
	result := &Result{CFGs: map[string]*cfg.CFG{}}
	runInto(result, sink, source, cfgOpts, logger)
	result.Diagnostics = filterAndOverride(sink.Diagnostics(), cfgOpts)
	return result
}

func runInto(result *Result, sink *diag.Sink, source string, cfgOpts *config.Config, logger *config.LogGroup) {
	logger.Debugf("lexing")
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		sink.Report(diag.Kind("LexError"), diag.Location{}, "%s", err)
		return
	}

	logger.Debugf("parsing")
	prog, err := parser.Parse(tokens)
	if err != nil {
		sink.Report(diag.Kind("ParseError"), diag.Location{}, "%s", err)
		return
	}

	logger.Debugf("checking")
	funcs := check.Run(prog, sink)

	for _, fi := range funcs {
		logger.Debugf("building cfg for %s", fi.Def.Name)
		g := buildCFGSafely(fi, sink)
		if g == nil {
			continue
		}
		result.CFGs[fi.Def.Name] = g

		logger.Debugf("running dataflow analyses for %s", fi.Def.Name)
		analyses.ConstantFold(g, sink)
		analyses.Reachability(g, sink)
		analyses.ReturnPath(g, sink)
		analyses.DefiniteAssignment(g, sink)
		analyses.Liveness(g, sink)
		analyses.ZeroNonZero(g, sink)
	}
}

// buildCFGSafely recovers from a panic in cfg.Build: a malformed AST here
// is an internal-invariant failure (spec.md §7), not a diagnosable source
// defect, so it's reported once and the rest of the file's functions still
// get analyzed.
func buildCFGSafely(fi *check.FuncInfo, sink *diag.Sink) (g *cfg.CFG) {
	defer func() {
		if r := recover(); r != nil {
			sink.Report(diag.Kind("InternalError"), diag.Location{Line: fi.Def.Pos.Line, Column: fi.Def.Pos.Column},
				"internal error building control-flow graph for %q: %v", fi.Def.Name, r)
			g = nil
		}
	}()
	return cfg.Build(fi.Def)
}

// filterAndOverride applies a config's suppression list and severity
// overrides to diags, preserving the stable (file, line, column, kind)
// order Sink.Diagnostics already produced.
func filterAndOverride(diags []diag.Diagnostic, cfgOpts *config.Config) []diag.Diagnostic {
	if cfgOpts == nil {
		return diags
	}
	out := make([]diag.Diagnostic, 0, len(diags))
	for _, d := range diags {
		if cfgOpts.IsSuppressed(d.Kind) {
			continue
		}
		if sev, ok := cfgOpts.SeverityOverride(d.Kind); ok {
			d.Severity = sev
		}
		out = append(out, d)
	}
	return out
}

// HasErrors reports whether result carries any Error-severity diagnostic,
// which decides the CLI's exit code (spec.md §6).
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

// String renders result as spec.md §6's human-readable text form, one
// diagnostic per line.
func (r *Result) String() string {
	s := ""
	for _, d := range r.Diagnostics {
		s += fmt.Sprintf("%s\n", d)
	}
	return s
}
