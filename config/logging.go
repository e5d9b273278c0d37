package config

import (
	"io"
	"log"
)

// LogLevel orders the verbosity of the pipeline driver's phase tracing
// (SPEC_FULL.md §9). The core analyses never log; only the driver and CLI
// under -v do.
type LogLevel int

const (
	ErrLevel LogLevel = iota + 1
	WarnLevel
	InfoLevel
	DebugLevel
	TraceLevel
)

// LogGroup is one logger per level, each gated by a configured minimum
// level.
type LogGroup struct {
	level LogLevel
	trace *log.Logger
	debug *log.Logger
	info  *log.Logger
	warn  *log.Logger
	err   *log.Logger
}

// NewLogGroup returns a LogGroup gated at cfg.LogLevel.
func NewLogGroup(cfg *Config) *LogGroup {
	l := &LogGroup{
		level: LogLevel(cfg.LogLevel),
		trace: log.New(log.Writer(), "[TRACE] ", log.Flags()),
		debug: log.New(log.Writer(), "[DEBUG] ", log.Flags()),
		info:  log.New(log.Writer(), "[INFO] ", log.Flags()),
		warn:  log.New(log.Writer(), "[WARN] ", log.Flags()),
		err:   log.New(log.Writer(), "[ERROR] ", log.Flags()),
	}
	return l
}

// SetAllOutput redirects every level's logger to w.
func (l *LogGroup) SetAllOutput(w io.Writer) {
	l.trace.SetOutput(w)
	l.debug.SetOutput(w)
	l.info.SetOutput(w)
	l.warn.SetOutput(w)
	l.err.SetOutput(w)
}

func (l *LogGroup) Tracef(format string, v ...any) {
	if l.level >= TraceLevel {
		l.trace.Printf(format, v...)
	}
}

func (l *LogGroup) Debugf(format string, v ...any) {
	if l.level >= DebugLevel {
		l.debug.Printf(format, v...)
	}
}

func (l *LogGroup) Infof(format string, v ...any) {
	if l.level >= InfoLevel {
		l.info.Printf(format, v...)
	}
}

func (l *LogGroup) Warnf(format string, v ...any) {
	if l.level >= WarnLevel {
		l.warn.Printf(format, v...)
	}
}

func (l *LogGroup) Errorf(format string, v ...any) {
	if l.level >= ErrLevel {
		l.err.Printf(format, v...)
	}
}
