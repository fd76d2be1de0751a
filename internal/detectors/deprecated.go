package detectors

import (
	"regexp"

	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/locale"
)

// varPattern matches the mutable-without-block-scope declaration keyword at
// a statement boundary.
var varPattern = regexp.MustCompile(`(?:^|[\s;({])var\s`)

// DeprecatedDeclaration flags 'var' declarations; block-scoped bindings have
// superseded them.
type DeprecatedDeclaration struct {
	limits config.Analysis
}

func NewDeprecatedDeclaration(limits config.Analysis) *DeprecatedDeclaration {
	return &DeprecatedDeclaration{limits: limits}
}

func (d *DeprecatedDeclaration) ID() string { return "no-var" }

func (d *DeprecatedDeclaration) Detect(lines []string) []findings.Finding {
	var result []findings.Finding
	for i, line := range lines {
		if !scannable(line, d.limits) {
			continue
		}
		for _, loc := range varPattern.FindAllStringIndex(line, -1) {
			column := loc[0] + 1
			// The boundary class consumes one leading character unless the
			// match is anchored at line start.
			if line[loc[0]] != 'v' {
				column++
			}
			result = append(result, findings.Finding{
				Type:       TypeDeprecatedDeclaration,
				Message:    locale.T("detector.deprecated-declaration.message", nil),
				Severity:   findings.SeverityWarning,
				Line:       i + 1,
				Column:     column,
				RuleID:     d.ID(),
				Suggestion: locale.T("detector.deprecated-declaration.suggestion", nil),
			})
		}
	}
	return result
}
