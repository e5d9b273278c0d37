package analyses

import (
	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

// ReturnPath checks spec.md §4.4's completeness property: every feasible
// path from entry to exit passes through a return terminator. Since a
// fall-through terminator into exit only exists where control ran off the
// end of the function body (cfg/builder.go's build), it suffices to check
// whether any *reachable* predecessor of exit terminates with
// FallThroughTerm, rather than walking every entry-to-exit path.
//
// Reachability here reuses the same constant-folding-pruned DFS as the
// Unreachable check: a fall-through predecessor only unreachable because a
// loop's condition folds to a constant true (spec.md §8's
// `while (true) { return 0; }` boundary case) must not count.
func ReturnPath(g *cfg.CFG, sink *diag.Sink) {
	reachable := reachableBlocks(g)
	for _, p := range g.Exit.Preds() {
		if !reachable[p.ID] {
			continue
		}
		if _, ok := p.Term.(*cfg.FallThroughTerm); ok {
			pos := g.Func.Body.Pos
			sink.Report(diag.MissingReturn, diag.Location{Line: pos.Line, Column: pos.Column},
				"function %q does not return on all paths", g.Func.Name)
			return
		}
	}
}
