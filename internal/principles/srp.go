package principles

import (
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/internal/quality"
	"github.com/scanward/scanward/pkg/shared/locale"
)

// SRP thresholds: method count, combined complexity, distinct concerns.
var (
	srpMethodThresholds     = Thresholds{Low: 10, Medium: 15, High: 20}
	srpComplexityThresholds = Thresholds{Low: 25, Medium: 40, High: 60}
	srpConcernThresholds    = Thresholds{Low: 3, Medium: 4, High: 5}
)

// SingleResponsibility flags a file doing too much: too many units, too much
// combined complexity, or too many distinct functional concerns imported.
// The worst of the three sub-checks decides the severity.
type SingleResponsibility struct {
	Base
}

func NewSingleResponsibility() *SingleResponsibility {
	return &SingleResponsibility{Base{principle: "single-responsibility"}}
}

func (c *SingleResponsibility) Check(ctx *Context) []findings.Violation {
	methodCount := len(ctx.Units)
	complexity := quality.CombinedComplexity(ctx.Units)
	concerns := c.ClassifyImportConcerns(ctx.Imports)
	concernCount := len(concerns)

	breached := methodCount >= srpMethodThresholds.Low ||
		complexity >= srpComplexityThresholds.Low ||
		concernCount >= srpConcernThresholds.Low
	if !breached {
		return nil
	}

	var severities []string
	if methodCount >= srpMethodThresholds.Low {
		severities = append(severities, c.SeverityFromThresholds(methodCount, srpMethodThresholds))
	}
	if complexity >= srpComplexityThresholds.Low {
		severities = append(severities, c.SeverityFromThresholds(complexity, srpComplexityThresholds))
	}
	if concernCount >= srpConcernThresholds.Low {
		severities = append(severities, c.SeverityFromThresholds(concernCount, srpConcernThresholds))
	}

	concernList := sortedConcerns(concerns)
	params := map[string]interface{}{
		"methods":    methodCount,
		"complexity": complexity,
		"concerns":   concernCount,
	}

	v := c.NewViolation(
		ctx.File,
		findings.WorstSeverity(severities...),
		locale.T("principle.single-responsibility.description", params),
		locale.T("principle.single-responsibility.explanation", params),
		locale.T("principle.single-responsibility.impact", nil),
		locale.T("principle.single-responsibility.suggestion", params),
	)
	v.Metrics = &findings.UnitMetrics{
		Complexity:      complexity,
		MethodCount:     methodCount,
		DependencyCount: len(ctx.Imports),
		Concerns:        concernList,
	}
	return []findings.Violation{v}
}
