// Package constfold implements the small recursive constant evaluator
// spec.md §4.6 uses to support reachability (§4.3) and the zero/non-zero
// analysis (§4.8). Arithmetic is 32-bit signed; overflow leaves the
// expression unfolded and Eval reports ConstantOverflow to the sink it is
// given.
package constfold

import (
	"math"

	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

// Value is a folded constant: either an int32 or a bool, tagged by which
// field is meaningful. MiniC has exactly two types, so a tagged struct is
// simpler here than an interface with two implementers.
type Value struct {
	IsInt  bool
	IsBool bool
	Int    int32
	Bool   bool
}

func intVal(v int32) Value  { return Value{IsInt: true, Int: v} }
func boolVal(v bool) Value  { return Value{IsBool: true, Bool: v} }

// Eval folds e if it is composed entirely of literals and MiniC's
// operators, honoring short-circuit semantics for && and ||. It returns
// (Value{}, false) if e contains anything non-constant (a variable
// reference or call), and reports ConstantOverflow to sink and returns
// (Value{}, false) if 32-bit signed arithmetic overflows during folding.
func Eval(e ast.Expr, sink *diag.Sink) (Value, bool) {
	switch expr := e.(type) {
	case *ast.IntLit:
		if expr.Value > math.MaxInt32 || expr.Value < math.MinInt32 {
			sink.Report(diag.ConstantOverflow, diag.Location{Line: expr.Pos.Line, Column: expr.Pos.Column},
				"integer literal %d overflows a 32-bit int", expr.Value)
			return Value{}, false
		}
		return intVal(int32(expr.Value)), true

	case *ast.BoolLit:
		return boolVal(expr.Value), true

	case *ast.UnaryExpr:
		return evalUnary(expr, sink)

	case *ast.BinaryExpr:
		return evalBinary(expr, sink)

	default:
		// VarRef and CallExpr are never constant.
		return Value{}, false
	}
}

func evalUnary(e *ast.UnaryExpr, sink *diag.Sink) (Value, bool) {
	v, ok := Eval(e.Operand, sink)
	if !ok {
		return Value{}, false
	}
	switch e.Op {
	case ast.Neg:
		if !v.IsInt {
			return Value{}, false
		}
		if v.Int == math.MinInt32 {
			sink.Report(diag.ConstantOverflow, diag.Location{Line: e.Pos.Line, Column: e.Pos.Column},
				"negation of %d overflows a 32-bit int", v.Int)
			return Value{}, false
		}
		return intVal(-v.Int), true
	case ast.Not:
		if !v.IsBool {
			return Value{}, false
		}
		return boolVal(!v.Bool), true
	default:
		return Value{}, false
	}
}

func evalBinary(e *ast.BinaryExpr, sink *diag.Sink) (Value, bool) {
	// Short-circuit: the right operand is only evaluated (and only needs
	// to be constant) when its value could actually affect the result.
	switch e.Op {
	case ast.And:
		l, ok := Eval(e.Left, sink)
		if !ok || !l.IsBool {
			return Value{}, false
		}
		if !l.Bool {
			return boolVal(false), true
		}
		r, ok := Eval(e.Right, sink)
		if !ok || !r.IsBool {
			return Value{}, false
		}
		return boolVal(r.Bool), true

	case ast.Or:
		l, ok := Eval(e.Left, sink)
		if !ok || !l.IsBool {
			return Value{}, false
		}
		if l.Bool {
			return boolVal(true), true
		}
		r, ok := Eval(e.Right, sink)
		if !ok || !r.IsBool {
			return Value{}, false
		}
		return boolVal(r.Bool), true
	}

	l, ok := Eval(e.Left, sink)
	if !ok {
		return Value{}, false
	}
	r, ok := Eval(e.Right, sink)
	if !ok {
		return Value{}, false
	}

	loc := diag.Location{Line: e.Pos.Line, Column: e.Pos.Column}

	switch e.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		if !l.IsInt || !r.IsInt {
			return Value{}, false
		}
		return evalArith(e.Op, l.Int, r.Int, loc, sink)

	case ast.Lt, ast.Gt, ast.Le, ast.Ge:
		if !l.IsInt || !r.IsInt {
			return Value{}, false
		}
		return boolVal(evalRelational(e.Op, l.Int, r.Int)), true

	case ast.Eq, ast.Ne:
		eq := l == r
		if e.Op == ast.Ne {
			eq = !eq
		}
		return boolVal(eq), true

	default:
		return Value{}, false
	}
}

func evalArith(op ast.BinaryOp, l, r int32, loc diag.Location, sink *diag.Sink) (Value, bool) {
	wide := func(a, b int64, opName string) (Value, bool) {
		var res int64
		switch opName {
		case "+":
			res = a + b
		case "-":
			res = a - b
		case "*":
			res = a * b
		}
		if res > math.MaxInt32 || res < math.MinInt32 {
			sink.Report(diag.ConstantOverflow, loc, "constant expression overflows a 32-bit int")
			return Value{}, false
		}
		return intVal(int32(res)), true
	}

	switch op {
	case ast.Add:
		return wide(int64(l), int64(r), "+")
	case ast.Sub:
		return wide(int64(l), int64(r), "-")
	case ast.Mul:
		return wide(int64(l), int64(r), "*")
	case ast.Div:
		if r == 0 {
			// Division by a constant zero is a §4.8 concern (DivisionByZero),
			// not this pass's; leave it unfolded so the caller's own
			// division check is what fires.
			return Value{}, false
		}
		if l == math.MinInt32 && r == -1 {
			sink.Report(diag.ConstantOverflow, loc, "constant expression overflows a 32-bit int")
			return Value{}, false
		}
		return intVal(l / r), true
	default:
		return Value{}, false
	}
}

func evalRelational(op ast.BinaryOp, l, r int32) bool {
	switch op {
	case ast.Lt:
		return l < r
	case ast.Gt:
		return l > r
	case ast.Le:
		return l <= r
	case ast.Ge:
		return l >= r
	default:
		return false
	}
}
