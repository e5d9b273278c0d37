// Package ast defines the typed, location-tagged MiniC syntax tree.
//
// This is the input contract for the analysis core (SPEC_FULL.md §3): once
// produced by the parser and annotated by symbol binding, an AST is
// immutable. Node kinds are closed sets represented as tagged unions
// (interfaces implemented only within this package) rather than an open
// class hierarchy, so a type switch over a Stmt or Expr is exhaustive by
// construction.
package ast

import "github.com/YatharthShah2006/minic-static-analyzer/symbols"

// Pos is a source location.
type Pos struct {
	Line, Column int
}

// Type is one of MiniC's two primitive types, spelled the way they appear
// in source. It is an alias of symbols.Type so that AST nodes and the
// symbols they carry always agree on type representation.
type Type = symbols.Type

const (
	Int  = symbols.Int
	Bool = symbols.Bool
)

// Program is the root of a MiniC compilation unit.
type Program struct {
	Pos       Pos
	Functions []*FunctionDef
}

// Param is a single formal parameter.
type Param struct {
	Pos    Pos
	Type   Type
	Name   string
	Symbol *symbols.Symbol // filled in by symbol binding
}

// FunctionDef is a top-level function declaration.
type FunctionDef struct {
	Pos        Pos
	Name       string
	Params     []*Param
	ReturnType Type
	Body       *Block
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Position() Pos
}

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
	Position() Pos
}

// Block is a nested sequence of statements. Block scope is handled by
// symbol binding, not by the CFG (SPEC_FULL.md §4.1).
type Block struct {
	Pos        Pos
	Statements []Stmt
}

func (b *Block) stmtNode()      {}
func (b *Block) Position() Pos  { return b.Pos }

// VarDecl declares a local variable, with an optional initializer.
type VarDecl struct {
	Pos    Pos
	Type   Type
	Name   string
	Symbol *symbols.Symbol
	Value  Expr // nil if uninitialized
}

func (d *VarDecl) stmtNode()     {}
func (d *VarDecl) Position() Pos { return d.Pos }

// Assign assigns the value of an expression to an already-declared symbol.
type Assign struct {
	Pos    Pos
	Name   string
	Symbol *symbols.Symbol
	Value  Expr
}

func (a *Assign) stmtNode()     {}
func (a *Assign) Position() Pos { return a.Pos }

// IfStmt is a conditional with an optional else branch.
type IfStmt struct {
	Pos      Pos
	Cond     Expr
	Then     *Block
	Else     *Block // nil if no else clause
}

func (s *IfStmt) stmtNode()     {}
func (s *IfStmt) Position() Pos { return s.Pos }

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	Pos  Pos
	Cond Expr
	Body *Block
}

func (s *WhileStmt) stmtNode()     {}
func (s *WhileStmt) Position() Pos { return s.Pos }

// ReturnStmt returns from the enclosing function. Value is nil only for an
// empty return in a (hypothetical) void function; every MiniC function is
// non-void, so a well-formed AST always carries a Value.
type ReturnStmt struct {
	Pos   Pos
	Value Expr
}

func (s *ReturnStmt) stmtNode()     {}
func (s *ReturnStmt) Position() Pos { return s.Pos }

// PrintStmt evaluates and prints an expression.
type PrintStmt struct {
	Pos   Pos
	Value Expr
}

func (s *PrintStmt) stmtNode()     {}
func (s *PrintStmt) Position() Pos { return s.Pos }

// IntLit is an i32 literal.
type IntLit struct {
	Pos   Pos
	Value int64 // parsed as 64-bit to detect ConstantOverflow before truncation
}

func (e *IntLit) exprNode()     {}
func (e *IntLit) Position() Pos { return e.Pos }

// BoolLit is a boolean literal.
type BoolLit struct {
	Pos   Pos
	Value bool
}

func (e *BoolLit) exprNode()     {}
func (e *BoolLit) Position() Pos { return e.Pos }

// VarRef is a use of a variable, resolved to its Symbol by symbol binding.
type VarRef struct {
	Pos    Pos
	Name   string
	Symbol *symbols.Symbol
}

func (e *VarRef) exprNode()     {}
func (e *VarRef) Position() Pos { return e.Pos }

// UnaryOp is one of "-" or "!".
type UnaryOp string

const (
	Neg UnaryOp = "-"
	Not UnaryOp = "!"
)

// UnaryExpr applies a unary operator to an operand.
type UnaryExpr struct {
	Pos     Pos
	Op      UnaryOp
	Operand Expr
}

func (e *UnaryExpr) exprNode()     {}
func (e *UnaryExpr) Position() Pos { return e.Pos }

// BinaryOp is one of MiniC's arithmetic, comparison, or logical operators.
type BinaryOp string

const (
	Add BinaryOp = "+"
	Sub BinaryOp = "-"
	Mul BinaryOp = "*"
	Div BinaryOp = "/"

	Lt BinaryOp = "<"
	Gt BinaryOp = ">"
	Le BinaryOp = "<="
	Ge BinaryOp = ">="
	Eq BinaryOp = "=="
	Ne BinaryOp = "!="

	And BinaryOp = "&&"
	Or  BinaryOp = "||"
)

// BinaryExpr applies a binary operator to two operands.
type BinaryExpr struct {
	Pos   Pos
	Left  Expr
	Op    BinaryOp
	Right Expr
}

func (e *BinaryExpr) exprNode()     {}
func (e *BinaryExpr) Position() Pos { return e.Pos }

// CallExpr calls a named function with a list of argument expressions.
// MiniC forbids recursion, so a well-formed program's call graph is
// acyclic; the analysis core does not rely on this (it is intraprocedural)
// but the plain checker (SPEC_FULL.md §4.9) does not enforce it either,
// leaving it to the frontend that isn't in scope here.
type CallExpr struct {
	Pos      Pos
	Callee   string
	Args     []Expr
	FuncSym  *symbols.Symbol // the resolved function symbol, if any
}

func (e *CallExpr) exprNode()     {}
func (e *CallExpr) Position() Pos { return e.Pos }
