// Package parser is a recursive-descent parser for MiniC, one token of
// lookahead, building the ast.Program the analysis core consumes.
//
// This is a collaborator (SPEC_FULL.md §2): the analysis core specifies
// only the AST it accepts, not how it's produced. Grammar and structure
// are grounded on original_source/src/parser.py.
package parser

import (
	"fmt"

	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/token"
)

// Error reports a syntax error at a source position.
type Error struct {
	Line, Column int
	Msg          string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Parser holds the token stream and current read position.
type Parser struct {
	toks []token.Token
	pos  int
}

// New returns a Parser over the given token stream, as produced by
// lexer.Tokenize.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse parses a whole compilation unit: program ::= function*.
func Parse(toks []token.Token) (prog *ast.Program, err error) {
	p := New(toks)
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(*Error); ok {
				err = perr
				return
			}
			panic(r)
		}
	}()
	return p.parseProgram(), nil
}

func (p *Parser) parseProgram() *ast.Program {
	pos := p.pos2()
	var fns []*ast.FunctionDef
	for !p.atEnd() {
		fns = append(fns, p.parseFunction())
	}
	return &ast.Program{Pos: pos, Functions: fns}
}

// --- token helpers ---

func (p *Parser) peek() token.Token     { return p.toks[p.pos] }
func (p *Parser) previous() token.Token { return p.toks[p.pos-1] }
func (p *Parser) atEnd() bool           { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(k token.Kind) bool {
	return !p.atEnd() && p.peek().Kind == k
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.peek().Kind == k {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(k token.Kind, msg string) token.Token {
	if p.peek().Kind == k {
		return p.advance()
	}
	tok := p.peek()
	panic(&Error{Line: tok.Line, Column: tok.Column,
		Msg: fmt.Sprintf("%s (expected %s, got %s)", msg, k, tok.Kind)})
}

func (p *Parser) pos2() ast.Pos { return ast.Pos{Line: p.peek().Line, Column: p.peek().Column} }
func (p *Parser) prevPos() ast.Pos {
	return ast.Pos{Line: p.previous().Line, Column: p.previous().Column}
}

// --- top-level constructs ---

func (p *Parser) parseFunction() *ast.FunctionDef {
	if !p.match(token.INT, token.BOOL) {
		tok := p.peek()
		panic(&Error{Line: tok.Line, Column: tok.Column, Msg: "expected function return type"})
	}
	rtype := ast.Type(p.previous().Text)
	pos := p.prevPos()

	p.expect(token.IDENT, "missing function name")
	fname := p.previous().Text

	p.expect(token.LPAREN, fmt.Sprintf("missing '(' after function name %s", fname))
	params := p.parseParams()
	p.expect(token.RPAREN, fmt.Sprintf("missing ')' for function %s", fname))

	body := p.parseBlock()

	return &ast.FunctionDef{Pos: pos, Name: fname, Params: params, ReturnType: rtype, Body: body}
}

func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param
	if p.check(token.RPAREN) {
		return params
	}
	for !p.check(token.RPAREN) && !p.atEnd() {
		if !p.check(token.INT) && !p.check(token.BOOL) {
			tok := p.peek()
			panic(&Error{Line: tok.Line, Column: tok.Column, Msg: "expected parameter type"})
		}
		ptype := ast.Type(p.advance().Text)
		pos := p.prevPos()
		p.expect(token.IDENT, "missing parameter name")
		pname := p.previous().Text
		params = append(params, &ast.Param{Pos: pos, Type: ptype, Name: pname})
		if !p.match(token.COMMA) {
			break
		}
	}
	return params
}

func (p *Parser) parseBlock() *ast.Block {
	p.expect(token.LBRACE, "missing '{'")
	pos := p.prevPos()
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.atEnd() {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE, "missing '}'")
	return &ast.Block{Pos: pos, Statements: stmts}
}

// --- statements ---

func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.check(token.IF):
		return p.parseIf()
	case p.check(token.WHILE):
		return p.parseWhile()
	case p.check(token.RETURN):
		return p.parseReturn()
	case p.check(token.LBRACE):
		return p.parseBlock()
	case p.check(token.PRINT):
		return p.parsePrint()
	case p.check(token.IDENT):
		return p.parseAssign()
	case p.check(token.INT), p.check(token.BOOL):
		return p.parseVarDecl()
	default:
		tok := p.peek()
		panic(&Error{Line: tok.Line, Column: tok.Column, Msg: fmt.Sprintf("unexpected token %s", tok.Kind)})
	}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	vtype := ast.Type(p.advance().Text)
	pos := p.prevPos()
	p.expect(token.IDENT, "variable name missing")
	name := p.previous().Text

	var value ast.Expr
	if p.match(token.EQ) {
		value = p.parseExpr()
	}
	p.expect(token.SEMI, "missing ';' after variable declaration")
	return &ast.VarDecl{Pos: pos, Type: vtype, Name: name, Value: value}
}

func (p *Parser) parseAssign() ast.Stmt {
	name := p.advance().Text
	pos := p.prevPos()
	p.expect(token.EQ, "missing '=' in variable assignment")
	val := p.parseExpr()
	p.expect(token.SEMI, "missing ';' after variable assignment")
	return &ast.Assign{Pos: pos, Name: name, Value: val}
}

func (p *Parser) parseIf() ast.Stmt {
	p.expect(token.IF, "expected 'if'")
	pos := p.prevPos()
	p.expect(token.LPAREN, "missing '(' in if statement")
	cond := p.parseExpr()
	p.expect(token.RPAREN, "missing ')' in if statement")
	then := p.parseBlock()

	var elseBlock *ast.Block
	if p.match(token.ELSE) {
		elseBlock = p.parseBlock()
	}
	return &ast.IfStmt{Pos: pos, Cond: cond, Then: then, Else: elseBlock}
}

func (p *Parser) parseWhile() ast.Stmt {
	p.expect(token.WHILE, "expected 'while'")
	pos := p.prevPos()
	p.expect(token.LPAREN, "missing '(' in while statement")
	cond := p.parseExpr()
	p.expect(token.RPAREN, "missing ')' in while statement")
	body := p.parseBlock()
	return &ast.WhileStmt{Pos: pos, Cond: cond, Body: body}
}

func (p *Parser) parseReturn() ast.Stmt {
	p.expect(token.RETURN, "expected 'return'")
	pos := p.prevPos()
	val := p.parseExpr()
	p.expect(token.SEMI, "missing ';' after return statement")
	return &ast.ReturnStmt{Pos: pos, Value: val}
}

func (p *Parser) parsePrint() ast.Stmt {
	p.expect(token.PRINT, "expected 'print'")
	pos := p.prevPos()
	p.expect(token.LPAREN, "missing '(' in print statement")
	val := p.parseExpr()
	p.expect(token.RPAREN, "missing ')' in print statement")
	p.expect(token.SEMI, "missing ';' after print statement")
	return &ast.PrintStmt{Pos: pos, Value: val}
}

// --- expressions, by increasing precedence ---

func (p *Parser) parseExpr() ast.Expr { return p.parseLogicalOr() }

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.match(token.OROR) {
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpr{Pos: left.Position(), Left: left, Op: ast.Or, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseEquality()
	for p.match(token.ANDAND) {
		right := p.parseEquality()
		left = &ast.BinaryExpr{Pos: left.Position(), Left: left, Op: ast.And, Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.match(token.EQEQ, token.NEQ) {
		op := ast.Eq
		if p.previous().Kind == token.NEQ {
			op = ast.Ne
		}
		right := p.parseRelational()
		left = &ast.BinaryExpr{Pos: left.Position(), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	for p.match(token.GT, token.LT, token.LE, token.GE) {
		op := binOpFor(p.previous().Kind)
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Pos: left.Position(), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseTerm()
	for p.match(token.PLUS, token.MINUS) {
		op := binOpFor(p.previous().Kind)
		right := p.parseTerm()
		left = &ast.BinaryExpr{Pos: left.Position(), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.match(token.STAR, token.SLASH) {
		op := binOpFor(p.previous().Kind)
		right := p.parseFactor()
		left = &ast.BinaryExpr{Pos: left.Position(), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseFactor() ast.Expr {
	curr := p.advance()
	pos := p.prevPos()

	switch curr.Kind {
	case token.NUMBER:
		var v int64
		fmt.Sscanf(curr.Text, "%d", &v)
		return &ast.IntLit{Pos: pos, Value: v}

	case token.TRUE:
		return &ast.BoolLit{Pos: pos, Value: true}
	case token.FALSE:
		return &ast.BoolLit{Pos: pos, Value: false}

	case token.IDENT:
		if p.match(token.LPAREN) {
			args := p.parseArgs()
			p.expect(token.RPAREN, "missing ')' after function arguments")
			return &ast.CallExpr{Pos: pos, Callee: curr.Text, Args: args}
		}
		return &ast.VarRef{Pos: pos, Name: curr.Text}

	case token.LPAREN:
		expr := p.parseExpr()
		p.expect(token.RPAREN, "matching ')' not found")
		return expr

	case token.NOT:
		return &ast.UnaryExpr{Pos: pos, Op: ast.Not, Operand: p.parseFactor()}

	case token.MINUS:
		return &ast.UnaryExpr{Pos: pos, Op: ast.Neg, Operand: p.parseFactor()}

	default:
		panic(&Error{Line: curr.Line, Column: curr.Column,
			Msg: fmt.Sprintf("unexpected token %s in expression", curr.Kind)})
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	if p.check(token.RPAREN) {
		return args
	}
	for {
		args = append(args, p.parseExpr())
		if !p.match(token.COMMA) {
			break
		}
	}
	return args
}

func binOpFor(k token.Kind) ast.BinaryOp {
	switch k {
	case token.PLUS:
		return ast.Add
	case token.MINUS:
		return ast.Sub
	case token.STAR:
		return ast.Mul
	case token.SLASH:
		return ast.Div
	case token.LT:
		return ast.Lt
	case token.GT:
		return ast.Gt
	case token.LE:
		return ast.Le
	case token.GE:
		return ast.Ge
	default:
		panic(fmt.Sprintf("binOpFor: unhandled kind %s", k))
	}
}
