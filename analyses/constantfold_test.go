package analyses_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/analyses"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

func TestConstantFoldNoOverflowIsClean(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 1 + 2; return x; }")
	sink := diag.NewSink("test.mc")
	analyses.ConstantFold(g, sink)
	if diags := sink.Diagnostics(); len(diags) != 0 {
		t.Fatalf("got diagnostics %v, want none", diags)
	}
}

func TestConstantFoldOverflowInDeclaration(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 2147483647 + 1; return x; }")
	sink := diag.NewSink("test.mc")
	analyses.ConstantFold(g, sink)
	if !hasKind(sink, diag.ConstantOverflow) {
		t.Fatalf("diagnostics %v, want ConstantOverflow", sink.Diagnostics())
	}
}

func TestConstantFoldMaxInt32DoesNotOverflow(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 2147483647; return x; }")
	sink := diag.NewSink("test.mc")
	analyses.ConstantFold(g, sink)
	if diags := sink.Diagnostics(); len(diags) != 0 {
		t.Fatalf("got diagnostics %v, want none: MaxInt32 itself does not overflow", diags)
	}
}

func TestConstantFoldOverflowInReturnExpression(t *testing.T) {
	g := buildFunc(t, "int main() { return 2147483647 + 1; }")
	sink := diag.NewSink("test.mc")
	analyses.ConstantFold(g, sink)
	if !hasKind(sink, diag.ConstantOverflow) {
		t.Fatalf("diagnostics %v, want ConstantOverflow for the overflow inside the return expression", sink.Diagnostics())
	}
}

func TestConstantFoldOverflowInPrintExpression(t *testing.T) {
	g := buildFunc(t, "int main() { print(2147483647 + 1); return 0; }")
	sink := diag.NewSink("test.mc")
	analyses.ConstantFold(g, sink)
	if !hasKind(sink, diag.ConstantOverflow) {
		t.Fatalf("diagnostics %v, want ConstantOverflow for the overflow inside the print expression", sink.Diagnostics())
	}
}

func TestConstantFoldOverflowInCondition(t *testing.T) {
	g := buildFunc(t, `int main() {
		if (2147483647 + 1 > 0) { return 1; }
		return 0;
	}`)
	sink := diag.NewSink("test.mc")
	analyses.ConstantFold(g, sink)
	if !hasKind(sink, diag.ConstantOverflow) {
		t.Fatalf("diagnostics %v, want ConstantOverflow for the overflow inside the branch condition", sink.Diagnostics())
	}
}
