package dataflow_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/check"
	"github.com/YatharthShah2006/minic-static-analyzer/dataflow"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/lexer"
	"github.com/YatharthShah2006/minic-static-analyzer/parser"
)

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

// idSet is a minimal Lattice[map[int]bool] used to exercise Solve directly,
// independent of any real analysis: the transfer function just accumulates
// the current block's own ID into the running set, so the fixed point at
// exit is exactly the set of every block ID reachable along the analysis's
// propagation direction.
type idSet map[int]bool

type idSetLattice struct{}

func (idSetLattice) Bottom() idSet { return idSet{} }

func (idSetLattice) Join(a, b idSet) idSet {
	out := make(idSet, len(a)+len(b))
	for k := range a {
		out[k] = true
	}
	for k := range b {
		out[k] = true
	}
	return out
}

func (idSetLattice) Equal(a, b idSet) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func TestSolveForwardReachesFixedPointOverStraightLine(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 1; print(x); return x; }")

	transfer := func(b *cfg.Block, in idSet) idSet {
		out := idSetLattice{}.Join(in, idSet{})
		out[b.ID] = true
		return out
	}

	result := dataflow.Solve[idSet](g, dataflow.Forward, idSetLattice{}, transfer,
		dataflow.Boundary[idSet]{Seed: idSet{}})

	if !result.Out[g.Exit.ID][g.Entry.ID] {
		t.Fatal("exit's OUT fact does not include entry's block ID")
	}
}

func TestSolveForwardConvergesOverLoop(t *testing.T) {
	g := buildFunc(t, `int main() {
		int x = 0;
		while (x != 10) { x = x + 1; }
		return x;
	}`)

	transfer := func(b *cfg.Block, in idSet) idSet {
		out := idSetLattice{}.Join(in, idSet{})
		out[b.ID] = true
		return out
	}

	result := dataflow.Solve[idSet](g, dataflow.Forward, idSetLattice{}, transfer,
		dataflow.Boundary[idSet]{Seed: idSet{}})

	if !result.Out[g.Exit.ID][g.Entry.ID] {
		t.Fatal("loop's fixed point never propagated entry's block ID to exit")
	}
}

func TestSolveEdgeValueRefinesPerSuccessor(t *testing.T) {
	g := buildFunc(t, `int main() {
		int x = 1;
		if (x != 0) { x = 2; } else { x = 3; }
		return x;
	}`)

	// A trivial per-edge refinement that tags the fact reaching the True
	// branch, exercising Boundary.EdgeValue independent of any real
	// analysis's semantics.
	transfer := func(b *cfg.Block, in idSet) idSet { return in }
	edgeValue := func(from, to *cfg.Block, out idSet) idSet {
		cond, ok := from.Term.(*cfg.ConditionalTerm)
		if !ok || to.ID != cond.True.ID {
			return out
		}
		next := idSetLattice{}.Join(out, idSet{})
		next[-1] = true
		return next
	}

	result := dataflow.Solve[idSet](g, dataflow.Forward, idSetLattice{}, transfer,
		dataflow.Boundary[idSet]{Seed: idSet{}, EdgeValue: edgeValue})

	cond := g.Entry.Term.(*cfg.ConditionalTerm)
	if !result.In[cond.True.ID][-1] {
		t.Fatal("True branch's IN fact was not refined by EdgeValue")
	}
	if result.In[cond.False.ID][-1] {
		t.Fatal("False branch's IN fact was incorrectly refined by the True-only EdgeValue")
	}
}

func TestSolveOrphanBlockGetsBottom(t *testing.T) {
	g := buildFunc(t, `int main() {
		return 1;
		int x = 2;
	}`)

	transfer := func(b *cfg.Block, in idSet) idSet { return in }
	result := dataflow.Solve[idSet](g, dataflow.Forward, idSetLattice{}, transfer,
		dataflow.Boundary[idSet]{Seed: idSet{}})

	orphans := g.Orphans()
	if len(orphans) != 1 {
		t.Fatalf("got %d orphans, want 1", len(orphans))
	}
	if len(result.In[orphans[0].ID]) != 0 {
		t.Fatalf("orphan's IN fact = %v, want empty (bottom)", result.In[orphans[0].ID])
	}
}
