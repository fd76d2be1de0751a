package detectors

import (
	"regexp"
	"strings"

	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/locale"
)

var bareIntegerPattern = regexp.MustCompile(`\b\d{2,}\b`)

// UnnamedConstant flags bare integers of two or more digits. Lines whose
// text names an allow-listed context word (port, timeout, ...) are skipped:
// such literals usually justify themselves. The allow-list is configuration,
// not a constant — its precision is a policy choice.
type UnnamedConstant struct {
	limits    config.Analysis
	allowList []string
}

func NewUnnamedConstant(limits config.Analysis) *UnnamedConstant {
	allowList := make([]string, len(limits.MagicNumberContext))
	for i, word := range limits.MagicNumberContext {
		allowList[i] = strings.ToLower(word)
	}
	return &UnnamedConstant{limits: limits, allowList: allowList}
}

func (d *UnnamedConstant) ID() string { return "no-magic-number" }

func (d *UnnamedConstant) Detect(lines []string) []findings.Finding {
	var result []findings.Finding
	for i, line := range lines {
		if !scannable(line, d.limits) || d.allowedContext(line) {
			continue
		}
		for _, loc := range bareIntegerPattern.FindAllStringIndex(line, -1) {
			value := line[loc[0]:loc[1]]
			params := map[string]interface{}{"value": value}
			result = append(result, findings.Finding{
				Type:       TypeUnnamedConstant,
				Message:    locale.T("detector.unnamed-constant.message", params),
				Severity:   findings.SeverityInfo,
				Line:       i + 1,
				Column:     loc[0] + 1,
				RuleID:     d.ID(),
				Suggestion: locale.T("detector.unnamed-constant.suggestion", params),
			})
		}
	}
	return result
}

func (d *UnnamedConstant) allowedContext(line string) bool {
	lower := strings.ToLower(line)
	for _, word := range d.allowList {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
