package pipeline_test

import (
	"testing"

	"github.com/YatharthShah2006/minic-static-analyzer/internal/analysistest"
)

// TestScenarios runs every `// EXPECT:`-annotated .mc fixture under
// testdata through the full pipeline, covering spec.md §8's worked
// scenarios and its boundary cases end to end.
func TestScenarios(t *testing.T) {
	analysistest.RunDir(t, "testdata")
}
