// Package analysistest implements the `// EXPECT: OK` / `// EXPECT:
// <substring>` test harness from spec.md §6.3, adapted from a
// directory-scanning approach that keys comment-embedded identifiers
// together across a whole package; here, a single `// EXPECT:` comment
// anywhere in a `.mc` file states what running the pipeline over that
// file should produce.
package analysistest

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/config"
	"github.com/YatharthShah2006/minic-static-analyzer/pipeline"
)

// expectRegex matches a `// EXPECT: ...` comment anywhere in a source
// line, capturing everything after the colon.
var expectRegex = regexp.MustCompile(`//\s*EXPECT:\s*(.*)`)

// Case is one testdata file's expectation.
type Case struct {
	File string
	// OK is true when the file's only EXPECT comment was "OK": the
	// pipeline must produce zero diagnostics.
	OK bool
	// Substrings are non-OK EXPECT comments: the pipeline's rendered
	// output must contain each one somewhere.
	Substrings []string
}

// LoadDir scans dir for *.mc files and parses each one's EXPECT
// comment(s) into a Case.
func LoadDir(t *testing.T, dir string) []Case {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("could not read testdata dir %s: %s", dir, err)
	}
	var cases []Case
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".mc" {
			continue
		}
		cases = append(cases, parseCase(t, filepath.Join(dir, e.Name())))
	}
	return cases
}

func parseCase(t *testing.T, path string) Case {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read %s: %s", path, err)
	}
	c := Case{File: path}
	for _, line := range strings.Split(string(b), "\n") {
		m := expectRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		want := strings.TrimSpace(m[1])
		if want == "OK" {
			c.OK = true
			continue
		}
		c.Substrings = append(c.Substrings, want)
	}
	return c
}

// Run executes the full pipeline over c.File and fails t if the result
// doesn't match c's expectation.
func Run(t *testing.T, c Case) {
	t.Helper()
	source, err := os.ReadFile(c.File)
	if err != nil {
		t.Fatalf("could not read %s: %s", c.File, err)
	}

	cfgOpts := config.NewDefault()
	logger := config.NewLogGroup(cfgOpts)
	result := pipeline.Run(c.File, string(source), cfgOpts, logger)
	got := result.String()

	if c.OK {
		if len(result.Diagnostics) != 0 {
			t.Errorf("%s: expected OK, got diagnostics:\n%s", c.File, got)
		}
		return
	}

	for _, want := range c.Substrings {
		if !strings.Contains(got, want) {
			t.Errorf("%s: expected output to contain %q, got:\n%s", c.File, want, got)
		}
	}
}

// RunDir runs every EXPECT case found under dir as its own subtest, named
// after the file's base name (spec.md §6.3's contract).
func RunDir(t *testing.T, dir string) {
	for _, c := range LoadDir(t, dir) {
		c := c
		t.Run(filepath.Base(c.File), func(t *testing.T) {
			Run(t, c)
		})
	}
}
