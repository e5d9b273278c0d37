package cfg_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/check"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/lexer"
	"github.com/YatharthShah2006/minic-static-analyzer/parser"
)

// buildFunc parses and checks src (which must declare exactly one function)
// and returns its CFG, resolving symbols the same way the real pipeline does
// before handing the AST to the CFG builder.
func buildFunc(t *testing.T, src string) *cfg.CFG {
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
	if len(infos) != 1 {
		t.Fatalf("got %d functions, want 1", len(infos))
	}
	return cfg.Build(infos[0].Def)
}

func TestBuildStraightLine(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 1; print(x); return x; }")
	if len(g.Entry.Units) != 2 {
		t.Fatalf("entry has %d units, want 2", len(g.Entry.Units))
	}
	ret, ok := g.Entry.Term.(*cfg.ReturnTerm)
	if !ok {
		t.Fatalf("entry terminator is %T, want *cfg.ReturnTerm", g.Entry.Term)
	}
	if ret.Exit != g.Exit {
		t.Fatal("return terminator's Exit does not point at g.Exit")
	}
	if len(g.Exit.Preds()) != 2 || g.Exit.Preds()[0] != g.Entry || len(g.Exit.Preds()[1].Preds()) != 0 {
		t.Fatalf("exit preds = %v, want [entry, orphan]", g.Exit.Preds())
	}
}

func TestBuildFallThroughIntoExit(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 1; }")
	if _, ok := g.Entry.Term.(*cfg.FallThroughTerm); !ok {
		t.Fatalf("entry terminator is %T, want *cfg.FallThroughTerm", g.Entry.Term)
	}
}

func TestBuildIfElseJoins(t *testing.T) {
	g := buildFunc(t, `int main() {
		int x = 1;
		if (x != 0) { x = 2; } else { x = 3; }
		return x;
	}`)
	cond, ok := g.Entry.Term.(*cfg.ConditionalTerm)
	if !ok {
		t.Fatalf("entry terminator is %T, want *cfg.ConditionalTerm", g.Entry.Term)
	}
	thenEnd := cond.True
	elseEnd := cond.False
	thenFall, ok := thenEnd.Term.(*cfg.FallThroughTerm)
	if !ok {
		t.Fatalf("then-block terminator is %T, want *cfg.FallThroughTerm", thenEnd.Term)
	}
	elseFall, ok := elseEnd.Term.(*cfg.FallThroughTerm)
	if !ok {
		t.Fatalf("else-block terminator is %T, want *cfg.FallThroughTerm", elseEnd.Term)
	}
	if thenFall.Next != elseFall.Next {
		t.Fatal("then and else branches do not join at the same block")
	}
}

func TestBuildWhileHasBackEdge(t *testing.T) {
	g := buildFunc(t, `int main() {
		int x = 0;
		while (x != 10) { x = x + 1; }
		return x;
	}`)
	var header *cfg.Block
	for _, b := range g.Blocks {
		if b.Label == "while_header" {
			header = b
		}
	}
	if header == nil {
		t.Fatal("no while_header block found")
	}
	foundBackEdge := false
	for _, p := range header.Preds() {
		if p.Label == "while_body" {
			foundBackEdge = true
		}
	}
	if !foundBackEdge {
		t.Fatal("while_header has no predecessor labeled while_body (missing back-edge)")
	}
}

func TestBuildReturnLeavesOrphanBlock(t *testing.T) {
	g := buildFunc(t, `int main() {
		return 1;
		int x = 2;
	}`)
	orphans := g.Orphans()
	if len(orphans) != 1 {
		t.Fatalf("got %d orphan blocks, want 1", len(orphans))
	}
	if len(orphans[0].Units) != 1 {
		t.Fatalf("orphan block has %d units, want 1", len(orphans[0].Units))
	}
	if _, ok := orphans[0].Units[0].(*cfg.DeclUnit); !ok {
		t.Fatalf("orphan block's unit is %T, want *cfg.DeclUnit", orphans[0].Units[0])
	}
}

func TestSuccsCanonicalOrder(t *testing.T) {
	g := buildFunc(t, `int main() {
		if (true) { return 1; } else { return 2; }
	}`)
	succs := g.Entry.Succs()
	if len(succs) != 2 {
		t.Fatalf("got %d successors, want 2", len(succs))
	}
	cond := g.Entry.Term.(*cfg.ConditionalTerm)
	if succs[0] != cond.True || succs[1] != cond.False {
		t.Fatal("Succs() does not return True before False")
	}
}
