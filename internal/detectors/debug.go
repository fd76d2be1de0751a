package detectors

import (
	"regexp"

	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/locale"
)

var consolePattern = regexp.MustCompile(`\bconsole\.(log|warn|error|info|debug|trace)\s*\(`)

// DebugStatement flags console-style output calls left in source.
type DebugStatement struct {
	limits config.Analysis
}

func NewDebugStatement(limits config.Analysis) *DebugStatement {
	return &DebugStatement{limits: limits}
}

func (d *DebugStatement) ID() string { return "no-console" }

func (d *DebugStatement) Detect(lines []string) []findings.Finding {
	var result []findings.Finding
	for i, line := range lines {
		if !scannable(line, d.limits) {
			continue
		}
		for _, loc := range consolePattern.FindAllStringSubmatchIndex(line, -1) {
			method := line[loc[2]:loc[3]]
			result = append(result, findings.Finding{
				Type:       TypeDebugStatement,
				Message:    locale.T("detector.debug-statement.message", map[string]interface{}{"method": method}),
				Severity:   findings.SeverityInfo,
				Line:       i + 1,
				Column:     loc[0] + 1,
				RuleID:     d.ID(),
				Suggestion: locale.T("detector.debug-statement.suggestion", nil),
			})
		}
	}
	return result
}
