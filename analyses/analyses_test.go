package analyses_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/check"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/lexer"
	"github.com/YatharthShah2006/minic-static-analyzer/parser"
)

// buildFunc parses, checks, and builds the CFG for src's sole function.
// Shared by every *_test.go file in this package.
func buildFunc(t *testing.T, src string) *cfg.CFG {
	t.Helper()
	infos := buildInfos(t, src)
	if len(infos) != 1 {
		t.Fatalf("got %d functions, want 1", len(infos))
	}
	return cfg.Build(infos[0].Def)
}

// buildNamedFunc is buildFunc for a src with more than one function
// (typically a throwaway "int main(){return 0;}" alongside the function
// under test, so check.Run's entry-point rule doesn't itself report an
// error), picking out fnName's CFG.
func buildNamedFunc(t *testing.T, src, fnName string) *cfg.CFG {
	t.Helper()
	for _, info := range buildInfos(t, src) {
		if info.Def.Name == fnName {
			return cfg.Build(info.Def)
		}
	}
	t.Fatalf("no function named %q in source", fnName)
	return nil
}

func buildInfos(t *testing.T, src string) []*check.FuncInfo {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sink := diag.NewSink("test.mc")
	infos := check.Run(prog, sink)
	if sink.HasErrors() {
		t.Fatalf("unexpected check errors: %v", sink.Diagnostics())
	}
	return infos
}

func hasKind(sink *diag.Sink, kind diag.Kind) bool {
	for _, d := range sink.Diagnostics() {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

func countKind(sink *diag.Sink, kind diag.Kind) int {
	n := 0
	for _, d := range sink.Diagnostics() {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
