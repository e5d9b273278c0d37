package analyses_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/analyses"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

func TestZeroNonZeroDivisionByProvenZero(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 0; return 10 / x; }")
	sink := diag.NewSink("test.mc")
	analyses.ZeroNonZero(g, sink)
	if !hasKind(sink, diag.DivisionByZero) {
		t.Fatalf("diagnostics %v, want DivisionByZero", sink.Diagnostics())
	}
}

func TestZeroNonZeroUntrackedParamIsPossible(t *testing.T) {
	g := buildNamedFunc(t, "int f(int x) { return 10 / x; } int main() { return 0; }", "f")
	sink := diag.NewSink("test.mc")
	analyses.ZeroNonZero(g, sink)
	if !hasKind(sink, diag.PossibleDivisionByZero) {
		t.Fatalf("diagnostics %v, want PossibleDivisionByZero", sink.Diagnostics())
	}
	if hasKind(sink, diag.DivisionByZero) {
		t.Fatalf("diagnostics %v, want no DivisionByZero: x's value is unknown, not proven zero", sink.Diagnostics())
	}
}

func TestZeroNonZeroTrueEdgeRefinesNonZero(t *testing.T) {
	g := buildNamedFunc(t, `int f(int x) {
		if (x != 0) { return 10 / x; }
		return 0;
	} int main() { return 0; }`, "f")
	sink := diag.NewSink("test.mc")
	analyses.ZeroNonZero(g, sink)
	if diags := sink.Diagnostics(); len(diags) != 0 {
		t.Fatalf("got diagnostics %v, want none: x != 0 refines x to nonzero on this branch", diags)
	}
}

func TestZeroNonZeroTrueEdgeOfEqZeroRefinesZero(t *testing.T) {
	g := buildNamedFunc(t, `int f(int x) {
		if (x == 0) { return 10 / x; }
		return 0;
	} int main() { return 0; }`, "f")
	sink := diag.NewSink("test.mc")
	analyses.ZeroNonZero(g, sink)
	if !hasKind(sink, diag.DivisionByZero) {
		t.Fatalf("diagnostics %v, want DivisionByZero: x == 0 held on this branch", sink.Diagnostics())
	}
}

func TestZeroNonZeroDivisionInsideReturnExpression(t *testing.T) {
	g := buildFunc(t, "int main() { int a = 1; int b = 0; return a / b; }")
	sink := diag.NewSink("test.mc")
	analyses.ZeroNonZero(g, sink)
	if !hasKind(sink, diag.DivisionByZero) {
		t.Fatalf("diagnostics %v, want DivisionByZero for the division inside the return expression", sink.Diagnostics())
	}
}

func TestZeroNonZeroDivisionInsidePrintExpression(t *testing.T) {
	g := buildFunc(t, "int main() { int b = 0; print(1 / b); return 0; }")
	sink := diag.NewSink("test.mc")
	analyses.ZeroNonZero(g, sink)
	if !hasKind(sink, diag.DivisionByZero) {
		t.Fatalf("diagnostics %v, want DivisionByZero for the division inside the print expression", sink.Diagnostics())
	}
}
