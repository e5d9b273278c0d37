// Package analyses implements the dataflow-core passes: reachability,
// return-path completeness, definite assignment, live variables/dead
// stores, and path-sensitive zero/non-zero analysis (spec.md §4.3-§4.8).
// Each pass is a pure function from a *cfg.CFG to diagnostics appended to
// a *diag.Sink — none of them return an error, per SPEC_FULL.md §9's "pure
// function from source bytes to a diagnostic sequence" contract.
package analyses

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/constfold"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

// Reachability walks g from entry and reports Unreachable for every block
// the walk never visits, at the location of that block's first unit
// (spec.md §4.3). Blocks with no units (e.g. a loop's "after" block that
// falls straight into a return) are silently skipped: there is nothing to
// blame a location on.
//
// The walk itself is gonum's graph/traverse.DepthFirst over cfg.AsGraph(g)
// rather than a hand-rolled DFS. Its EdgeFilter prunes
// the statically-infeasible successor of any conditional whose condition
// folds to a constant (spec.md §4.3's "optionally composes with constant
// folding"), so e.g. `if (0) { S }` marks S unreachable without S needing
// an orphan block of its own.
func Reachability(g *cfg.CFG, sink *diag.Sink) {
	visited := reachableBlocks(g)

	for _, b := range g.Blocks {
		if visited[b.ID] {
			continue
		}
		if len(b.Units) == 0 {
			continue
		}
		first := b.Units[0]
		pos := first.Position()
		sink.Report(diag.Unreachable, diag.Location{Line: pos.Line, Column: pos.Column},
			"unreachable code")
	}
}

// reachableBlocks runs the same constant-folding-pruned DFS Reachability
// reports from, returning the visited set for reuse by other passes (e.g.
// ReturnPath, which must not blame a fall-through into exit that this DFS
// never reaches — spec.md §8's `while (true) { return 0; }` boundary case).
func reachableBlocks(g *cfg.CFG) map[int]bool {
	pruned := prunedEdges(g)

	view := cfg.AsGraph(g)
	visited := make(map[int]bool, len(g.Blocks))

	walker := &traverse.DepthFirst{
		Traverse: func(e graph.Edge) bool {
			return !pruned[edgeKey{e.From().ID(), e.To().ID()}]
		},
		Visit: func(n graph.Node) {
			visited[int(n.ID())] = true
		},
	}
	walker.Walk(view, view.Node(int64(g.Entry.ID)), func(graph.Node) bool { return false })

	return visited
}

type edgeKey struct{ from, to int64 }

// prunedEdges finds every ConditionalTerm whose condition folds to a
// constant and returns the (from, to) pair for its statically-infeasible
// edge. Folding here uses a throwaway sink: ConstantFold is the sole
// reporter of ConstantOverflow (analyses/constantfold.go), and a folding
// failure (overflow or a non-constant condition) just means no edge is
// pruned for that block, which is always the sound choice (spec.md §4.3:
// "when in doubt, a block is considered reachable").
func prunedEdges(g *cfg.CFG) map[edgeKey]bool {
	sink := discardSink()
	pruned := map[edgeKey]bool{}
	for _, b := range g.Blocks {
		cond, ok := b.Term.(*cfg.ConditionalTerm)
		if !ok {
			continue
		}
		v, ok := constfold.Eval(cond.Cond, sink)
		if !ok || !v.IsBool {
			continue
		}
		if v.Bool {
			pruned[edgeKey{int64(b.ID), int64(cond.False.ID)}] = true
		} else {
			pruned[edgeKey{int64(b.ID), int64(cond.True.ID)}] = true
		}
	}
	return pruned
}
