package sarif

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scanward/scanward/internal/findings"
)

func testResults() map[string][]findings.Finding {
	return map[string][]findings.Finding{
		"src/b.js": {
			{Type: "debug-statement", Message: "console call left in code", Severity: findings.SeverityInfo, Line: 3, Column: 1, RuleID: "no-console"},
		},
		"src/a.js": {
			{Type: "deprecated-declaration", Message: "var declaration", Severity: findings.SeverityWarning, Line: 1, Column: 1, RuleID: "no-var", Suggestion: "use let or const"},
			{Type: "deprecated-declaration", Message: "var declaration", Severity: findings.SeverityWarning, Line: 2, Column: 1, RuleID: "no-var"},
		},
	}
}

func TestBuildReport(t *testing.T) {
	b := NewBuilder(hclog.NewNullLogger(), "run-1")
	report, err := b.Build(testResults())
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	if len(report.Runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(report.Runs))
	}
	run := report.Runs[0]
	assert.Equal(t, "scanward", run.Tool.Driver.Name)
	assert.Equal(t, "run-1", run.Properties["runId"])

	// Two distinct rules across three results.
	assert.Len(t, run.Tool.Driver.Rules, 2)
	if len(run.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(run.Results))
	}

	// Files are emitted in lexical order.
	first := run.Results[0]
	assert.Equal(t, "no-var", *first.RuleID)
	assert.Equal(t, "warning", *first.Level)
	loc := first.Locations[0].PhysicalLocation
	assert.Equal(t, "src/a.js", *loc.ArtifactLocation.URI)
	assert.Equal(t, 1, *loc.Region.StartLine)
	assert.Equal(t, "use let or const", first.Properties["suggestion"])

	last := run.Results[2]
	assert.Equal(t, "no-console", *last.RuleID)
	assert.Equal(t, "note", *last.Level)
	assert.Equal(t, "src/b.js", *last.Locations[0].PhysicalLocation.ArtifactLocation.URI)
}

func TestBuildRuleLevelIsWorstOccurrence(t *testing.T) {
	b := NewBuilder(hclog.NewNullLogger(), "run-4")
	report, err := b.Build(map[string][]findings.Finding{
		"src/a.js": {
			{Type: "complexity", Message: "complexity 12", Severity: findings.SeverityWarning, Line: 1, Column: 1, RuleID: "complexity"},
			{Type: "complexity", Message: "complexity 30", Severity: findings.SeverityError, Line: 9, Column: 1, RuleID: "complexity"},
		},
	})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	rules := report.Runs[0].Tool.Driver.Rules
	if len(rules) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(rules))
	}
	assert.Equal(t, "error", rules[0].DefaultConfiguration.Level)

	// Individual results keep their own level.
	assert.Equal(t, "warning", *report.Runs[0].Results[0].Level)
	assert.Equal(t, "error", *report.Runs[0].Results[1].Level)
}

func TestBuildEmptyResults(t *testing.T) {
	b := NewBuilder(hclog.NewNullLogger(), "run-2")
	report, err := b.Build(nil)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	assert.Len(t, report.Runs, 1)
	assert.Empty(t, report.Runs[0].Results)
}

func TestWriteFileProducesValidJSON(t *testing.T) {
	b := NewBuilder(hclog.NewNullLogger(), "run-3")
	outputPath := filepath.Join(t.TempDir(), "report.sarif")

	if err := b.WriteFile(outputPath, testResults()); err != nil {
		t.Fatalf("write report: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	assert.Equal(t, "2.1.0", decoded["version"])
}

func TestSeverityLevelMapping(t *testing.T) {
	tests := []struct {
		severity string
		level    string
	}{
		{findings.SeverityError, "error"},
		{findings.SeverityWarning, "warning"},
		{findings.SeverityInfo, "note"},
		{"unknown", "none"},
	}
	for _, tc := range tests {
		t.Run(tc.severity, func(t *testing.T) {
			assert.Equal(t, tc.level, toSarifLevel(tc.severity))
		})
	}
}
