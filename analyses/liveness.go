package analyses

import (
	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/dataflow"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/internal/setutil"
)

type liveFact = setutil.Set[int]

type liveLattice struct{}

func (liveLattice) Bottom() liveFact           { return setutil.NewSet[int]() }
func (liveLattice) Join(a, b liveFact) liveFact { return setutil.Union(a, b) }
func (liveLattice) Equal(a, b liveFact) bool    { return setutil.Equal(a, b) }

// Liveness runs spec.md §4.7's backward analysis and reports DeadStore for
// every assignment whose value is never read on any path to function exit.
// Like DefiniteAssignment, reporting happens in a pass separate from the
// solver: the Transfer given to dataflow.Solve only ever computes the next
// fact, never a diagnostic.
func Liveness(g *cfg.CFG, sink *diag.Sink) {
	transfer := func(b *cfg.Block, in liveFact) liveFact {
		cur := liveTermUse(b, in)
		for i := len(b.Units) - 1; i >= 0; i-- {
			cur = liveTransferUnit(b.Units[i], cur, nil)
		}
		return cur
	}

	result := dataflow.Solve[liveFact](g, dataflow.Backward, liveLattice{}, transfer,
		dataflow.Boundary[liveFact]{Seed: setutil.NewSet[int]()})

	// result.In holds each block's join-from-successors value (spec.md
	// §4.2's Backward IN/OUT are swapped relative to Forward; dataflow.Solve
	// always joins from the propagation-direction neighbors into its In map
	// and stores the post-Transfer value in Out) — that join-from-successors
	// value is exactly the live-out set this reverse walk needs to start from.
	for _, b := range g.Blocks {
		cur := liveTermUse(b, result.In[b.ID])
		for i := len(b.Units) - 1; i >= 0; i-- {
			cur = liveTransferUnit(b.Units[i], cur, sink)
		}
	}
}

// liveTermUse folds in the variable uses a block's own terminator makes,
// before its units are walked in reverse. Only ReturnTerm reads a value
// directly; a ConditionalTerm's condition is already represented by the
// CondUnit the CFG builder appends to the block's own Units.
func liveTermUse(b *cfg.Block, out liveFact) liveFact {
	if ret, ok := b.Term.(*cfg.ReturnTerm); ok && ret.Value != nil {
		return liveUses(ret.Value, out)
	}
	return out
}

// liveTransferUnit processes unit in reverse, returning the live set
// immediately before it. sink is nil during the solver's exploratory
// calls and non-nil only on the final reporting pass, exactly like
// daTransferUnit.
func liveTransferUnit(u cfg.Unit, out liveFact, sink *diag.Sink) liveFact {
	switch unit := u.(type) {
	case *cfg.DeclUnit:
		if unit.Decl.Value == nil || unit.Decl.Symbol == nil {
			return out
		}
		return liveAssign(unit.Decl.Symbol.ID, unit.Decl.Name, unit.Decl.Value, out, unit.Decl.Pos, sink)

	case *cfg.AssignUnit:
		if unit.Assign.Symbol == nil {
			return liveUses(unit.Assign.Value, out)
		}
		return liveAssign(unit.Assign.Symbol.ID, unit.Assign.Name, unit.Assign.Value, out, unit.Assign.Pos, sink)

	case *cfg.PrintUnit:
		return liveUses(unit.Print.Value, out)

	case *cfg.CondUnit:
		return liveUses(unit.Cond, out)

	default:
		return out
	}
}

func liveAssign(id int, name string, value ast.Expr, out liveFact, pos ast.Pos, sink *diag.Sink) liveFact {
	if !out.Contains(id) && sink != nil {
		sink.Report(diag.DeadStore, diag.Location{Line: pos.Line, Column: pos.Column},
			"value assigned to %q is never used", name)
	}
	next := out.Remove(id)
	return liveUses(value, next)
}

// liveUses adds every variable e reads to live, without removing anything
// — reading e never kills a fact the way an assignment does.
func liveUses(e ast.Expr, live liveFact) liveFact {
	switch expr := e.(type) {
	case *ast.VarRef:
		if expr.Symbol != nil {
			return live.Add(expr.Symbol.ID)
		}
		return live
	case *ast.BinaryExpr:
		return liveUses(expr.Right, liveUses(expr.Left, live))
	case *ast.UnaryExpr:
		return liveUses(expr.Operand, live)
	case *ast.CallExpr:
		for _, arg := range expr.Args {
			live = liveUses(arg, live)
		}
		return live
	default:
		return live
	}
}
