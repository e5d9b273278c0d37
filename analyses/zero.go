package analyses

import (
	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/cfg"
	"github.com/YatharthShah2006/minic-static-analyzer/constfold"
	"github.com/YatharthShah2006/minic-static-analyzer/dataflow"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

// zeroState is spec.md §4.8's three-valued per-variable abstract value.
// The zero value zeroUnset never appears in a zeroFact map: a variable
// absent from the map is uninitialized or non-integer, which is distinct
// from a tracked-but-unknown value.
type zeroState int

const (
	zeroUnset zeroState = iota
	zeroZ
	zeroNZ
	zeroUnknown
)

func joinState(a, b zeroState) zeroState {
	if a == b {
		return a
	}
	return zeroUnknown
}

// zeroFact maps a tracked integer symbol id to its abstract value.
type zeroFact map[int]zeroState

func (f zeroFact) clone() zeroFact {
	c := make(zeroFact, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

type zeroLattice struct{}

func (zeroLattice) Bottom() zeroFact { return zeroFact{} }

func (zeroLattice) Join(a, b zeroFact) zeroFact {
	out := make(zeroFact, len(a)+len(b))
	for k, va := range a {
		if vb, ok := b[k]; ok {
			out[k] = joinState(va, vb)
		} else {
			out[k] = va
		}
	}
	for k, vb := range b {
		if _, ok := a[k]; !ok {
			out[k] = vb
		}
	}
	return out
}

func (zeroLattice) Equal(a, b zeroFact) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

// ZeroNonZero runs spec.md §4.8's path-sensitive analysis, reporting
// DivisionByZero and PossibleDivisionByZero. Like the other passes,
// diagnostics are only emitted on a final walk against each block's
// converged IN fact, after dataflow.Solve has found a fixed point using a
// diagnostic-free transfer.
func ZeroNonZero(g *cfg.CFG, sink *diag.Sink) {
	transfer := func(b *cfg.Block, in zeroFact) zeroFact {
		cur := in.clone()
		for _, u := range b.Units {
			cur = zeroTransferUnit(u, cur, nil)
		}
		return cur
	}

	edgeValue := func(from, to *cfg.Block, out zeroFact) zeroFact {
		cond, ok := from.Term.(*cfg.ConditionalTerm)
		if !ok {
			return out
		}
		branchTrue := to.ID == cond.True.ID
		return refineCond(cond.Cond, branchTrue, out)
	}

	result := dataflow.Solve[zeroFact](g, dataflow.Forward, zeroLattice{}, transfer,
		dataflow.Boundary[zeroFact]{Seed: zeroFact{}, EdgeValue: edgeValue})

	for _, b := range g.Blocks {
		cur := result.In[b.ID]
		for _, u := range b.Units {
			cur = zeroTransferUnit(u, cur, sink)
		}
		if ret, ok := b.Term.(*cfg.ReturnTerm); ok && ret.Value != nil {
			checkDivisions(ret.Value, cur, sink)
		}
	}
}

// zeroTransferUnit advances cur past unit, reporting division diagnostics
// against cur (the fact just before unit runs) when sink is non-nil.
func zeroTransferUnit(u cfg.Unit, cur zeroFact, sink *diag.Sink) zeroFact {
	switch unit := u.(type) {
	case *cfg.DeclUnit:
		if unit.Decl.Value == nil {
			return cur
		}
		checkDivisions(unit.Decl.Value, cur, sink)
		if unit.Decl.Symbol != nil && unit.Decl.Symbol.Type == ast.Int {
			next := cur.clone()
			next[unit.Decl.Symbol.ID] = evalZero(unit.Decl.Value, cur)
			return next
		}
		return cur

	case *cfg.AssignUnit:
		checkDivisions(unit.Assign.Value, cur, sink)
		if unit.Assign.Symbol != nil && unit.Assign.Symbol.Type == ast.Int {
			next := cur.clone()
			next[unit.Assign.Symbol.ID] = evalZero(unit.Assign.Value, cur)
			return next
		}
		return cur

	case *cfg.PrintUnit:
		checkDivisions(unit.Print.Value, cur, sink)
		return cur

	case *cfg.CondUnit:
		checkDivisions(unit.Cond, cur, sink)
		return cur

	default:
		return cur
	}
}

// evalZero computes e's abstract value given the current per-variable
// facts. It never reports diagnostics — checkDivisions is the sole
// division-diagnostic reporter, so a divisor's own zero-ness is always
// evaluated exactly once per unit.
func evalZero(e ast.Expr, cur zeroFact) zeroState {
	switch expr := e.(type) {
	case *ast.IntLit:
		if expr.Value == 0 {
			return zeroZ
		}
		return zeroNZ

	case *ast.VarRef:
		if expr.Symbol == nil {
			return zeroUnknown
		}
		if v, ok := cur[expr.Symbol.ID]; ok {
			return v
		}
		return zeroUnknown

	case *ast.UnaryExpr:
		if expr.Op == ast.Neg {
			return evalZero(expr.Operand, cur)
		}
		return zeroUnknown

	case *ast.BinaryExpr:
		if expr.Op == ast.Mul {
			l, r := evalZero(expr.Left, cur), evalZero(expr.Right, cur)
			switch {
			case l == zeroZ || r == zeroZ:
				return zeroZ
			case l == zeroNZ && r == zeroNZ:
				// Spec-defined shape rule (e.g. y*y when y is NONZERO):
				// two known-nonzero factors are treated as producing a
				// nonzero product. 32-bit overflow could in principle wrap
				// a nonzero product to zero; this analysis accepts that
				// imprecision the same way spec.md §4.8's examples do.
				return zeroNZ
			default:
				return zeroUnknown
			}
		}
		if v, ok := constfold.Eval(expr, discardSink()); ok && v.IsInt {
			if v.Int == 0 {
				return zeroZ
			}
			return zeroNZ
		}
		return zeroUnknown

	default:
		return zeroUnknown
	}
}

// checkDivisions recursively scans e for division sub-expressions and
// reports DivisionByZero/PossibleDivisionByZero against cur, the fact in
// effect at the statement containing e (spec.md §4.8: "the IN fact at
// this statement").
func checkDivisions(e ast.Expr, cur zeroFact, sink *diag.Sink) {
	switch expr := e.(type) {
	case *ast.BinaryExpr:
		checkDivisions(expr.Left, cur, sink)
		checkDivisions(expr.Right, cur, sink)
		if expr.Op == ast.Div && sink != nil {
			switch evalZero(expr.Right, cur) {
			case zeroZ:
				sink.Report(diag.DivisionByZero, diag.Location{Line: expr.Pos.Line, Column: expr.Pos.Column},
					"division by a value proven zero")
			case zeroUnknown:
				sink.Report(diag.PossibleDivisionByZero, diag.Location{Line: expr.Pos.Line, Column: expr.Pos.Column},
					"divisor may be zero")
			}
		}
	case *ast.UnaryExpr:
		checkDivisions(expr.Operand, cur, sink)
	case *ast.CallExpr:
		for _, arg := range expr.Args {
			checkDivisions(arg, cur, sink)
		}
	}
}

// refineCond computes the per-edge refinement of out along the branch of
// cond taken when it evaluates to branchTrue (spec.md §4.8's edge
// refinement rule).
func refineCond(cond ast.Expr, branchTrue bool, out zeroFact) zeroFact {
	switch expr := cond.(type) {
	case *ast.VarRef:
		if expr.Symbol == nil || expr.Symbol.Type != ast.Int {
			return out
		}
		next := out.clone()
		if branchTrue {
			next[expr.Symbol.ID] = zeroNZ
		} else {
			next[expr.Symbol.ID] = zeroZ
		}
		return next

	case *ast.UnaryExpr:
		if expr.Op == ast.Not {
			return refineCond(expr.Operand, !branchTrue, out)
		}
		return out

	case *ast.BinaryExpr:
		switch expr.Op {
		case ast.Eq, ast.Ne:
			if sym, wantZero, ok := equalsZeroPattern(expr); ok {
				isZeroBranch := branchTrue
				if expr.Op == ast.Ne {
					isZeroBranch = !branchTrue
				}
				if !wantZero {
					isZeroBranch = !isZeroBranch
				}
				next := out.clone()
				if isZeroBranch {
					next[sym.Symbol.ID] = zeroZ
				} else {
					next[sym.Symbol.ID] = zeroNZ
				}
				return next
			}
			return out

		case ast.And:
			// A && B: on the True edge both operands held, so refine with
			// each in turn. On the False edge, short-circuiting means we
			// can't tell which operand was false, so no refinement is
			// applied — refining either one risks contradicting the other.
			if branchTrue {
				return refineCond(expr.Right, true, refineCond(expr.Left, true, out))
			}
			return out

		case ast.Or:
			// Symmetric to And: the False edge of A || B means both
			// operands were false, so both refine; the True edge is
			// ambiguous about which operand held.
			if !branchTrue {
				return refineCond(expr.Right, false, refineCond(expr.Left, false, out))
			}
			return out
		}
		return out

	default:
		return out
	}
}

// equalsZeroPattern recognizes `x == 0`, `0 == x`, `x != 0`, `0 != x` and
// returns the compared symbol and whether the literal side was 0.
func equalsZeroPattern(e *ast.BinaryExpr) (*ast.VarRef, bool, bool) {
	if v, lit, ok := asVarAndIntLit(e.Left, e.Right); ok {
		return v, lit.Value == 0, true
	}
	if v, lit, ok := asVarAndIntLit(e.Right, e.Left); ok {
		return v, lit.Value == 0, true
	}
	return nil, false, false
}

func asVarAndIntLit(a, b ast.Expr) (*ast.VarRef, *ast.IntLit, bool) {
	v, vok := a.(*ast.VarRef)
	lit, lok := b.(*ast.IntLit)
	if vok && lok && v.Symbol != nil && v.Symbol.Type == ast.Int {
		return v, lit, true
	}
	return nil, nil, false
}
