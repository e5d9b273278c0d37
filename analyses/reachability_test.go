package analyses_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/analyses"
	"github.com/YatharthShah2006/minic-static-analyzer/diag"
)

func TestReachabilityStraightLineIsClean(t *testing.T) {
	g := buildFunc(t, "int main() { int x = 1; print(x); return x; }")
	sink := diag.NewSink("test.mc")
	analyses.Reachability(g, sink)
	if diags := sink.Diagnostics(); len(diags) != 0 {
		t.Fatalf("got diagnostics %v, want none", diags)
	}
}

func TestReachabilityFlagsCodeAfterReturn(t *testing.T) {
	g := buildFunc(t, `int main() {
		return 1;
		int x = 2;
		print(x);
	}`)
	sink := diag.NewSink("test.mc")
	analyses.Reachability(g, sink)
	if !hasKind(sink, diag.Unreachable) {
		t.Fatalf("diagnostics %v, want Unreachable", sink.Diagnostics())
	}
}

func TestReachabilityPrunesConstantFalseBranch(t *testing.T) {
	g := buildFunc(t, `int main() {
		if (false) { print(1); }
		return 0;
	}`)
	sink := diag.NewSink("test.mc")
	analyses.Reachability(g, sink)
	if !hasKind(sink, diag.Unreachable) {
		t.Fatalf("diagnostics %v, want Unreachable for the constant-false branch", sink.Diagnostics())
	}
}

func TestReachabilityDoesNotPruneNonConstantBranch(t *testing.T) {
	g := buildFunc(t, `int main() {
		int x = 1;
		if (x != 0) { print(1); } else { print(2); }
		return 0;
	}`)
	sink := diag.NewSink("test.mc")
	analyses.Reachability(g, sink)
	if diags := sink.Diagnostics(); len(diags) != 0 {
		t.Fatalf("got diagnostics %v, want none (branch is not statically decidable)", diags)
	}
}
