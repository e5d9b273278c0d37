// Package check performs symbol binding and the plain (non-dataflow)
// semantic checks that must succeed before the analysis core can trust an
// AST: redeclaration, undeclared-name, type mismatch, function arity, and
// the "exactly one int main()" entry-point rule.
//
// This is a collaborator (SPEC_FULL.md §4.9): the analysis core receives
// an AST whose VarRef/Assign/VarDecl/Param/CallExpr nodes already carry
// resolved *symbols.Symbol values, which is what this package produces.
// Structure and rules are grounded on original_source/src/semantic.py and
// program_semantic.py, adapted from an exception-based visitor to a
// diagnostic-accumulating one.
package check

import (
	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
	"github.com/YatharthShah2006/minic-static-analyzer/symbols"
)

// FuncInfo bundles a checked function with the symbol table built while
// binding it, ready for CFG construction.
type FuncInfo struct {
	Def   *ast.FunctionDef
	Table *symbols.Table
}

// funcSig is the global-scope entry for a declared function.
type funcSig struct {
	sym        *symbols.Symbol
	returnType symbols.Type
	numParams  int
}

// Run binds symbols and runs the plain checks over prog, appending
// diagnostics to sink. It returns one FuncInfo per function, in source
// order, regardless of whether errors were found — SPEC_FULL.md §11 keeps
// the original's "analyze everything, report everything" behavior so the
// core's CFG/dataflow passes can still run and report more defects in the
// same invocation (spec.md §7's propagation rule).
func Run(prog *ast.Program, sink *diag.Sink) []*FuncInfo {
	c := &checker{sink: sink, funcs: map[string]*funcSig{}}
	c.declareFunctions(prog)
	c.checkMain(prog)

	infos := make([]*FuncInfo, 0, len(prog.Functions))
	for _, fn := range prog.Functions {
		infos = append(infos, c.checkFunction(fn))
	}
	return infos
}

type checker struct {
	sink  *diag.Sink
	funcs map[string]*funcSig
}

func (c *checker) loc(p ast.Pos) diag.Location {
	return diag.Location{Line: p.Line, Column: p.Column}
}

func (c *checker) declareFunctions(prog *ast.Program) {
	for _, fn := range prog.Functions {
		if _, exists := c.funcs[fn.Name]; exists {
			c.sink.Report(diag.Redeclaration, c.loc(fn.Pos), "redeclaration of function %q", fn.Name)
			continue
		}
		sym := &symbols.Symbol{ID: -1, Name: fn.Name, Type: fn.ReturnType, Kind: symbols.Func}
		c.funcs[fn.Name] = &funcSig{sym: sym, returnType: fn.ReturnType, numParams: len(fn.Params)}
	}
}

func (c *checker) checkMain(prog *ast.Program) {
	var mains []*ast.FunctionDef
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			mains = append(mains, fn)
		}
	}
	if len(mains) == 0 {
		c.sink.Report(diag.MissingMain, c.loc(prog.Pos), "missing entry function 'main'")
		return
	}
	for _, m := range mains {
		if m.ReturnType != ast.Int {
			c.sink.Report(diag.InvalidMain, c.loc(m.Pos), "function 'main' must return int")
		}
		if len(m.Params) != 0 {
			c.sink.Report(diag.InvalidMain, c.loc(m.Pos), "function 'main' must take no parameters")
		}
	}
}

func (c *checker) checkFunction(fn *ast.FunctionDef) *FuncInfo {
	table := symbols.NewTable()

	for _, param := range fn.Params {
		if table.LookupCurrent(param.Name) != nil {
			c.sink.Report(diag.Redeclaration, c.loc(param.Pos), "redeclaration of parameter %q", param.Name)
			continue
		}
		param.Symbol = table.Define(param.Name, param.Type, symbols.Param)
	}

	c.checkBlock(fn.Body, table, fn.ReturnType)
	return &FuncInfo{Def: fn, Table: table}
}

func (c *checker) checkBlock(b *ast.Block, table *symbols.Table, returnType symbols.Type) {
	table.PushScope()
	defer table.PopScope()

	reachableInSource := true
	for _, stmt := range b.Statements {
		if !reachableInSource {
			// This purely syntactic notion of unreachability (anything
			// textually following a return in the same block) is a plain
			// check, distinct from the CFG-based Unreachable diagnostic
			// the core computes over the whole function (spec.md §4.3);
			// we don't double-report it here.
			c.checkStmt(stmt, table, returnType)
			continue
		}
		c.checkStmt(stmt, table, returnType)
		if _, ok := stmt.(*ast.ReturnStmt); ok {
			reachableInSource = false
		}
	}
}

func (c *checker) checkStmt(stmt ast.Stmt, table *symbols.Table, returnType symbols.Type) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVarDecl(s, table)
	case *ast.Assign:
		c.checkAssign(s, table)
	case *ast.IfStmt:
		c.checkIf(s, table, returnType)
	case *ast.WhileStmt:
		c.checkWhile(s, table, returnType)
	case *ast.ReturnStmt:
		c.checkReturn(s, table, returnType)
	case *ast.PrintStmt:
		c.checkExpr(s.Value, table)
	case *ast.Block:
		c.checkBlock(s, table, returnType)
	}
}

func (c *checker) checkVarDecl(s *ast.VarDecl, table *symbols.Table) {
	var sym *symbols.Symbol
	if table.LookupCurrent(s.Name) != nil {
		c.sink.Report(diag.Redeclaration, c.loc(s.Pos), "redeclaration of variable %q", s.Name)
	} else {
		sym = table.Define(s.Name, s.Type, symbols.Local)
		s.Symbol = sym
	}

	if s.Value != nil {
		vt := c.checkExpr(s.Value, table)
		if sym != nil && vt != "" && vt != sym.Type {
			c.sink.Report(diag.TypeMismatch, c.loc(s.Pos),
				"type mismatch in initialization of %q (expected %s, got %s)", s.Name, sym.Type, vt)
		}
	}
}

func (c *checker) checkAssign(s *ast.Assign, table *symbols.Table) {
	sym := table.Lookup(s.Name)
	if sym == nil {
		c.sink.Report(diag.UndeclaredName, c.loc(s.Pos), "use of undeclared variable %q", s.Name)
	} else {
		s.Symbol = sym
	}

	vt := c.checkExpr(s.Value, table)
	if sym != nil && vt != "" && sym.Type != vt {
		c.sink.Report(diag.TypeMismatch, c.loc(s.Pos),
			"type mismatch in assignment to %q (expected %s, got %s)", s.Name, sym.Type, vt)
	}
}

func (c *checker) checkIf(s *ast.IfStmt, table *symbols.Table, returnType symbols.Type) {
	ct := c.checkExpr(s.Cond, table)
	if ct != "" && ct != ast.Bool {
		c.sink.Report(diag.TypeMismatch, c.loc(s.Cond.Position()), "condition of if-statement must be bool")
	}
	c.checkBlock(s.Then, table, returnType)
	if s.Else != nil {
		c.checkBlock(s.Else, table, returnType)
	}
}

func (c *checker) checkWhile(s *ast.WhileStmt, table *symbols.Table, returnType symbols.Type) {
	ct := c.checkExpr(s.Cond, table)
	if ct != "" && ct != ast.Bool {
		c.sink.Report(diag.TypeMismatch, c.loc(s.Cond.Position()), "condition of while-statement must be bool")
	}
	c.checkBlock(s.Body, table, returnType)
}

func (c *checker) checkReturn(s *ast.ReturnStmt, table *symbols.Table, returnType symbols.Type) {
	rt := c.checkExpr(s.Value, table)
	if rt != "" && rt != returnType {
		c.sink.Report(diag.TypeMismatch, c.loc(s.Pos),
			"return type mismatch (expected %s, got %s)", returnType, rt)
	}
}

// checkExpr resolves names, checks operator typing, and returns the
// expression's type ("" if it could not be determined, in which case
// callers must not report a further type mismatch derived from it).
func (c *checker) checkExpr(e ast.Expr, table *symbols.Table) symbols.Type {
	switch expr := e.(type) {
	case *ast.VarRef:
		sym := table.Lookup(expr.Name)
		if sym == nil {
			c.sink.Report(diag.UndeclaredName, c.loc(expr.Pos), "use of undeclared variable %q", expr.Name)
			return ""
		}
		expr.Symbol = sym
		return sym.Type

	case *ast.CallExpr:
		return c.checkCall(expr, table)

	case *ast.BinaryExpr:
		return c.checkBinary(expr, table)

	case *ast.UnaryExpr:
		return c.checkUnary(expr, table)

	case *ast.IntLit:
		return ast.Int

	case *ast.BoolLit:
		return ast.Bool

	default:
		return ""
	}
}

func (c *checker) checkCall(e *ast.CallExpr, table *symbols.Table) symbols.Type {
	for _, arg := range e.Args {
		c.checkExpr(arg, table)
	}

	sig, ok := c.funcs[e.Callee]
	if !ok {
		if sym := table.Lookup(e.Callee); sym != nil {
			c.sink.Report(diag.NotAFunction, c.loc(e.Pos), "%q is not a function", e.Callee)
		} else {
			c.sink.Report(diag.UndeclaredName, c.loc(e.Pos), "call to undefined function %q", e.Callee)
		}
		return ""
	}
	e.FuncSym = sig.sym
	if len(e.Args) != sig.numParams {
		c.sink.Report(diag.ArityMismatch, c.loc(e.Pos),
			"function %q expects %d argument(s), got %d", e.Callee, sig.numParams, len(e.Args))
	}
	return sig.returnType
}

func (c *checker) checkBinary(e *ast.BinaryExpr, table *symbols.Table) symbols.Type {
	lt := c.checkExpr(e.Left, table)
	rt := c.checkExpr(e.Right, table)

	switch e.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		if lt == ast.Int && rt == ast.Int {
			return ast.Int
		}
		if lt != "" && rt != "" {
			c.sink.Report(diag.TypeMismatch, c.loc(e.Pos), "arithmetic operator %q requires int operands", e.Op)
		}
		return ast.Int

	case ast.Lt, ast.Gt, ast.Le, ast.Ge:
		if lt != "" && rt != "" && (lt != ast.Int || rt != ast.Int) {
			c.sink.Report(diag.TypeMismatch, c.loc(e.Pos), "relational operator %q requires int operands", e.Op)
		}
		return ast.Bool

	case ast.Eq, ast.Ne:
		if lt != "" && rt != "" && lt != rt {
			c.sink.Report(diag.TypeMismatch, c.loc(e.Pos), "equality operator %q requires operands of the same type", e.Op)
		}
		return ast.Bool

	case ast.And, ast.Or:
		if lt != "" && rt != "" && (lt != ast.Bool || rt != ast.Bool) {
			c.sink.Report(diag.TypeMismatch, c.loc(e.Pos), "logical operator %q requires bool operands", e.Op)
		}
		return ast.Bool

	default:
		return ""
	}
}

func (c *checker) checkUnary(e *ast.UnaryExpr, table *symbols.Table) symbols.Type {
	t := c.checkExpr(e.Operand, table)
	switch e.Op {
	case ast.Neg:
		if t != "" && t != ast.Int {
			c.sink.Report(diag.TypeMismatch, c.loc(e.Pos), "operand of '-' must be int")
		}
		return ast.Int
	case ast.Not:
		if t != "" && t != ast.Bool {
			c.sink.Report(diag.TypeMismatch, c.loc(e.Pos), "operand of '!' must be bool")
		}
		return ast.Bool
	default:
		return ""
	}
}
