package analyses

import (
	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/dataflow"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/internal/setutil"
)

// daFact is definite assignment's lattice element (spec.md §4.5): either
// the universal set (every symbol considered assigned — the lattice's
// bottom, since intersection with anything else narrows toward reality)
// or a concrete set of symbol ids known to be assigned on every path
// reaching this point.
type daFact struct {
	universal bool
	assigned  setutil.Set[int]
}

func (f daFact) has(id int) bool {
	return f.universal || f.assigned.Contains(id)
}

func (f daFact) add(id int) daFact {
	if f.universal {
		return f
	}
	return daFact{assigned: f.assigned.Add(id)}
}

type daLattice struct{}

func (daLattice) Bottom() daFact { return daFact{universal: true} }

func (daLattice) Join(a, b daFact) daFact {
	if a.universal {
		return b
	}
	if b.universal {
		return a
	}
	return daFact{assigned: setutil.Intersect(a.assigned, b.assigned)}
}

func (daLattice) Equal(a, b daFact) bool {
	if a.universal != b.universal {
		return false
	}
	if a.universal {
		return true
	}
	return setutil.Equal(a.assigned, b.assigned)
}

// DefiniteAssignment runs spec.md §4.5's forward analysis and reports
// UseBeforeDef for every read of a variable not definitely assigned on
// every path reaching it. Diagnostics are emitted in a pass separate from
// the fixed-point solve: the solver's Transfer must be a pure function of
// its input fact (it may be invoked repeatedly for the same block before
// convergence), so reporting has to happen once, against each block's
// final converged IN fact.
func DefiniteAssignment(g *cfg.CFG, sink *diag.Sink) {
	params := setutil.NewSet[int]()
	for _, p := range g.Func.Params {
		if p.Symbol != nil {
			params[p.Symbol.ID] = true
		}
	}
	seed := daFact{assigned: params}

	transfer := func(b *cfg.Block, in daFact) daFact {
		cur := in
		for _, u := range b.Units {
			cur = daTransferUnit(u, cur, nil)
		}
		return daTermUse(b, cur, nil)
	}

	result := dataflow.Solve[daFact](g, dataflow.Forward, daLattice{}, transfer, dataflow.Boundary[daFact]{Seed: seed})

	for _, b := range g.Blocks {
		cur := result.In[b.ID]
		for _, u := range b.Units {
			cur = daTransferUnit(u, cur, sink)
		}
		daTermUse(b, cur, sink)
	}
}

// daTermUse checks the variable uses a block's own terminator makes — only
// ReturnTerm reads a value directly; ConditionalTerm's condition is
// already represented by the CondUnit the CFG builder appends to Units.
func daTermUse(b *cfg.Block, cur daFact, sink *diag.Sink) daFact {
	if ret, ok := b.Term.(*cfg.ReturnTerm); ok && ret.Value != nil {
		return daCheckExpr(ret.Value, cur, sink)
	}
	return cur
}

// daTransferUnit advances cur past unit u. When sink is non-nil, it also
// reports UseBeforeDef for any use it finds not yet in cur — callers pass
// nil during the solver's exploratory transfer calls and a real sink only
// on the final reporting pass.
func daTransferUnit(u cfg.Unit, cur daFact, sink *diag.Sink) daFact {
	switch unit := u.(type) {
	case *cfg.DeclUnit:
		// A declaration without an initializer leaves the fact unchanged
		// (spec.md §4.5): the variable is not yet definitely assigned.
		if unit.Decl.Value == nil {
			return cur
		}
		cur = daCheckExpr(unit.Decl.Value, cur, sink)
		if unit.Decl.Symbol != nil {
			cur = cur.add(unit.Decl.Symbol.ID)
		}
		return cur

	case *cfg.AssignUnit:
		cur = daCheckExpr(unit.Assign.Value, cur, sink)
		if unit.Assign.Symbol != nil {
			cur = cur.add(unit.Assign.Symbol.ID)
		}
		return cur

	case *cfg.PrintUnit:
		return daCheckExpr(unit.Print.Value, cur, sink)

	case *cfg.CondUnit:
		return daCheckExpr(unit.Cond, cur, sink)

	default:
		return cur
	}
}

// daCheckExpr walks e for variable uses, reporting UseBeforeDef (when sink
// is non-nil) for any not yet definitely assigned in cur. It never adds to
// cur: only an assignment or declaration does that.
func daCheckExpr(e ast.Expr, cur daFact, sink *diag.Sink) daFact {
	switch expr := e.(type) {
	case *ast.VarRef:
		if expr.Symbol != nil && !cur.has(expr.Symbol.ID) && sink != nil {
			sink.Report(diag.UseBeforeDef, diag.Location{Line: expr.Pos.Line, Column: expr.Pos.Column},
				"use of %q before it is definitely assigned", expr.Name)
		}
	case *ast.BinaryExpr:
		cur = daCheckExpr(expr.Left, cur, sink)
		cur = daCheckExpr(expr.Right, cur, sink)
	case *ast.UnaryExpr:
		cur = daCheckExpr(expr.Operand, cur, sink)
	case *ast.CallExpr:
		for _, arg := range expr.Args {
			cur = daCheckExpr(arg, cur, sink)
		}
	}
	return cur
}
