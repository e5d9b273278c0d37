package parser_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/ast"
	"github.com/YatharthShah2006/minic-static-analyzer/lexer"
	"github.com/YatharthShah2006/minic-static-analyzer/parser"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return prog
}

func TestParseFunctionSignature(t *testing.T) {
	prog := parseSource(t, "int add(int a, int b) { return a + b; }")
	if len(prog.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Name != "add" || fn.ReturnType != ast.Int {
		t.Fatalf("got name=%s returnType=%s", fn.Name, fn.ReturnType)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "a" || fn.Params[1].Name != "b" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ReturnStmt", fn.Body.Statements[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.Add {
		t.Fatalf("return value is %+v, want a '+' binary expression", ret.Value)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	prog := parseSource(t, "int main() { return 1 + 2 * 3; }")
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	top, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || top.Op != ast.Add {
		t.Fatalf("top-level op = %+v, want '+'", ret.Value)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Op != ast.Mul {
		t.Fatalf("right operand = %+v, want a '*' expression (precedence)", top.Right)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := parseSource(t, `int main() {
		if (x < 1) { print(1); } else { print(2); }
		return 0;
	}`)
	ifs, ok := prog.Functions[0].Body.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStmt", prog.Functions[0].Body.Statements[0])
	}
	if ifs.Else == nil {
		t.Fatal("expected an else block")
	}
}

func TestParseWhile(t *testing.T) {
	prog := parseSource(t, `int main() {
		while (true) { return 0; }
	}`)
	ws, ok := prog.Functions[0].Body.Statements[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WhileStmt", prog.Functions[0].Body.Statements[0])
	}
	if lit, ok := ws.Cond.(*ast.BoolLit); !ok || !lit.Value {
		t.Fatalf("condition = %+v, want literal true", ws.Cond)
	}
}

func TestParseCallExpression(t *testing.T) {
	prog := parseSource(t, "int main() { return add(1, 2); }")
	ret := prog.Functions[0].Body.Statements[0].(*ast.ReturnStmt)
	call, ok := ret.Value.(*ast.CallExpr)
	if !ok {
		t.Fatalf("return value is %T, want *ast.CallExpr", ret.Value)
	}
	if call.Callee != "add" || len(call.Args) != 2 {
		t.Fatalf("call = %+v, want add(1, 2)", call)
	}
}

func TestParseMissingSemicolonIsError(t *testing.T) {
	toks, err := lexer.Tokenize("int main() { return 0 }")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if _, err := parser.Parse(toks); err == nil {
		t.Fatal("expected a syntax error for the missing ';'")
	}
}

func TestParseVarDeclWithoutInitializer(t *testing.T) {
	prog := parseSource(t, "int main() { int x; x = 1; return x; }")
	decl, ok := prog.Functions[0].Body.Statements[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VarDecl", prog.Functions[0].Body.Statements[0])
	}
	if decl.Value != nil {
		t.Fatalf("decl.Value = %+v, want nil", decl.Value)
	}
}
