package analyses

import (
	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/constfold"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

// ConstantFold is the single place that runs spec.md §4.6's evaluator with
// a real sink, over every branch condition and every declaration/
// assignment's right-hand side in g. Reachability's constant-condition
// pruning and the zero/non-zero pass's own use of constfold.Eval both need
// to fold the same expressions again for their own purposes, but they do
// so against a throwaway sink (see discardSink) so ConstantOverflow is
// reported exactly once per expression regardless of how many passes look
// at it.
func ConstantFold(g *cfg.CFG, sink *diag.Sink) {
	for _, b := range g.Blocks {
		for _, u := range b.Units {
			switch unit := u.(type) {
			case *cfg.CondUnit:
				constfold.Eval(unit.Cond, sink)
			case *cfg.DeclUnit:
				if unit.Decl.Value != nil {
					constfold.Eval(unit.Decl.Value, sink)
				}
			case *cfg.AssignUnit:
				constfold.Eval(unit.Assign.Value, sink)
			case *cfg.PrintUnit:
				constfold.Eval(unit.Print.Value, sink)
			}
		}
		if ret, ok := b.Term.(*cfg.ReturnTerm); ok && ret.Value != nil {
			constfold.Eval(ret.Value, sink)
		}
	}
}

// discardSink returns a fresh Sink for internal use by a pass that needs
// constfold.Eval's folded value but not its diagnostic side effect
// (ConstantFold above is the sole reporter of ConstantOverflow).
func discardSink() *diag.Sink { return diag.NewSink("") }
