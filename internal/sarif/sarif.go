// Package sarif renders analysis results as SARIF 2.1.0 reports so they can
// be ingested by code-scanning dashboards and CI annotations.
package sarif

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scanward/scanward/internal/findings"
)

const (
	toolName = "scanward"
	toolURI  = "https://github.com/scanward/scanward"
)

// Builder converts findings into a SARIF report for one analysis run.
type Builder struct {
	logger hclog.Logger
	runID  string
}

// NewBuilder creates a Builder. runID is attached to the run properties so a
// report can be traced back to the engine instance that produced it.
func NewBuilder(logger hclog.Logger, runID string) *Builder {
	return &Builder{logger: logger, runID: runID}
}

// Build assembles a SARIF report from per-file findings. Files are emitted in
// lexical order and each rule is registered once, at the most severe level it
// occurs with anywhere in the run.
func (b *Builder) Build(results map[string][]findings.Finding) (*sarif.Report, error) {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(toolName, toolURI)
	run.Properties = sarif.Properties{"runId": b.runID}

	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	// A rule like complexity emits at different severities per unit, so its
	// registered default is the worst one seen.
	ruleLevel := make(map[string]string)
	ruleMessage := make(map[string]string)
	var ruleOrder []string
	for _, path := range paths {
		for _, f := range results[path] {
			if _, ok := ruleLevel[f.RuleID]; !ok {
				ruleLevel[f.RuleID] = f.Severity
				ruleMessage[f.RuleID] = f.Message
				ruleOrder = append(ruleOrder, f.RuleID)
			} else if !findings.CompareSeverity(ruleLevel[f.RuleID], f.Severity) {
				ruleLevel[f.RuleID] = f.Severity
			}
		}
	}
	for _, id := range ruleOrder {
		run.AddRule(id).
			WithDescription(ruleMessage[id]).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: toSarifLevel(ruleLevel[id]),
			})
	}

	total := 0
	for _, path := range paths {
		for _, f := range results[path] {
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(path)).
					WithRegion(sarif.NewRegion().
						WithStartLine(f.Line).
						WithStartColumn(f.Column)),
			)

			result := sarif.NewRuleResult(f.RuleID).
				WithMessage(sarif.NewTextMessage(f.Message)).
				WithLevel(toSarifLevel(f.Severity)).
				WithLocations([]*sarif.Location{location})
			if f.Suggestion != "" {
				result.Properties = sarif.Properties{"suggestion": f.Suggestion}
			}
			run.AddResult(result)
			total++
		}
	}

	report.AddRun(run)
	b.logger.Debug("SARIF report assembled", "files", len(paths), "results", total)
	return report, nil
}

// WriteFile builds the report and pretty-prints it to outputPath.
func (b *Builder) WriteFile(outputPath string, results map[string][]findings.Finding) error {
	report, err := b.Build(results)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := report.PrettyWrite(file); err != nil {
		return fmt.Errorf("error serializing SARIF report: %w", err)
	}
	return nil
}

// toSarifLevel maps finding severities onto the SARIF result levels.
func toSarifLevel(severity string) string {
	switch severity {
	case findings.SeverityError:
		return "error"
	case findings.SeverityWarning:
		return "warning"
	case findings.SeverityInfo:
		return "note"
	default:
		return "none"
	}
}
