package graphutil_test

import (
	"sort"
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/internal/graphutil"
)

// fixedIterator is a hand-built graphutil.Iterator: a synthetic-graph
// approach used to exercise the algorithm before reaching for a real
// program, adapted to plain adjacency lists instead of an SSA program.
type fixedIterator struct {
	adj [][]int
}

func (g fixedIterator) Order() int { return len(g.adj) }

func (g fixedIterator) Visit(v int, do func(w int, c int64) bool) bool {
	for _, w := range g.adj[v] {
		if do(w, 1) {
			return true
		}
	}
	return false
}

func TestLoopComponentsSynthetic(t *testing.T) {
	// 0 -> 1 -> 2 -> 1 (loop {1,2}), 2 -> 3 (loop exit)
	g := fixedIterator{adj: [][]int{
		0: {1},
		1: {2},
		2: {1, 3},
		3: {},
	}}

	loops := graphutil.LoopComponents(g)
	if len(loops) != 1 {
		t.Fatalf("expected exactly one loop component, got %d: %v", len(loops), loops)
	}
	got := loops[0]
	sort.Ints(got)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected loop component {1,2}, got %v", got)
	}

	header := graphutil.LoopHeader(g, got)
	if header != 1 {
		t.Fatalf("expected loop header 1, got %d", header)
	}
}

func TestLoopComponentsAcyclic(t *testing.T) {
	g := fixedIterator{adj: [][]int{
		0: {1, 2},
		1: {3},
		2: {3},
		3: {},
	}}
	if loops := graphutil.LoopComponents(g); len(loops) != 0 {
		t.Fatalf("expected no loop components in an acyclic graph, got %v", loops)
	}
}

// TestLoopComponentsMatchesWhileLoop builds a one-statement while loop's CFG
// and checks that LoopComponents identifies the header/body pair
// cfg/builder.go's buildWhile wires up, cross-checked against
// StronglyConnectedComponents run directly over *cfg.Block (scc.go's doc
// comment promises the two agree).
func TestLoopComponentsMatchesWhileLoop(t *testing.T) {
	fn := &ast.FunctionDef{
		Name:       "loopy",
		ReturnType: ast.Int,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.WhileStmt{
				Cond: &ast.BoolLit{Value: true},
				Body: &ast.Block{Statements: []ast.Stmt{
					&ast.PrintStmt{Value: &ast.IntLit{Value: 1}},
				}},
			},
			&ast.ReturnStmt{Value: &ast.IntLit{Value: 0}},
		}},
	}

	g := cfg.Build(fn)
	view := cfg.AsGraph(g)

	loops := graphutil.LoopComponents(view)
	if len(loops) != 1 {
		t.Fatalf("expected exactly one loop component in a single while-loop CFG, got %d", len(loops))
	}

	sccs := graphutil.StronglyConnectedComponents(g.Blocks, func(b *cfg.Block) []*cfg.Block { return b.Succs() })
	var nontrivial [][]*cfg.Block
	for _, scc := range sccs {
		if len(scc) >= 2 {
			nontrivial = append(nontrivial, scc)
		}
	}
	if len(nontrivial) != 1 {
		t.Fatalf("expected exactly one nontrivial SCC, got %d", len(nontrivial))
	}
	if len(nontrivial[0]) != len(loops[0]) {
		t.Fatalf("LoopComponents and StronglyConnectedComponents disagree on loop size: %d vs %d",
			len(loops[0]), len(nontrivial[0]))
	}
}
