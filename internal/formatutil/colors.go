// Package formatutil colorizes diagnostic output for a terminal.
package formatutil

import (
	"fmt"

	"golang.org/x/term"
)

var (
	Bold   = Color("\033[1m%s\033[0m")
	Faint  = Color("\033[2m%s\033[0m")
	Red    = Color("\033[1;31m%s\033[0m")
	Yellow = Color("\033[1;33m%s\033[0m")
	Cyan   = Color("\033[1;36m%s\033[0m")
)

// Color returns a formatter that wraps its argument in an ANSI escape
// sequence when stdout is a terminal, and leaves it plain otherwise
// (spec.md §6.1's human-readable CLI output shouldn't embed escape codes
// when piped to a file or another program).
func Color(colorString string) func(...any) string {
	return func(args ...any) string {
		if term.IsTerminal(1) {
			return fmt.Sprintf(colorString, fmt.Sprint(args...))
		}
		return fmt.Sprint(args...)
	}
}

// Sanitize escapes control characters in s by round-tripping it through
// a quoted Go string literal, so a diagnostic message can never inject
// escape sequences of its own into terminal output.
func Sanitize(s string) string {
	r := fmt.Sprintf("%q", s)
	if len(r) >= 2 {
		return r[1 : len(r)-1]
	}
	return r
}
