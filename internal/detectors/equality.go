package detectors

import (
	"strings"

	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/locale"
)

// WeakEquality flags loose equality operators that are not part of the
// strict triple form.
type WeakEquality struct {
	limits config.Analysis
}

func NewWeakEquality(limits config.Analysis) *WeakEquality {
	return &WeakEquality{limits: limits}
}

func (d *WeakEquality) ID() string { return "strict-equality" }

func (d *WeakEquality) Detect(lines []string) []findings.Finding {
	var result []findings.Finding
	for i, line := range lines {
		if !scannable(line, d.limits) {
			continue
		}
		for _, op := range weakOperators(line) {
			replacement := op.operator + "="
			params := map[string]interface{}{"operator": op.operator, "replacement": replacement}
			result = append(result, findings.Finding{
				Type:       TypeWeakEquality,
				Message:    locale.T("detector.weak-equality.message", params),
				Severity:   findings.SeverityWarning,
				Line:       i + 1,
				Column:     op.column,
				RuleID:     d.ID(),
				Suggestion: locale.T("detector.weak-equality.suggestion", params),
			})
		}
	}
	return result
}

type weakOperator struct {
	operator string
	column   int
}

// weakOperators finds '==' and '!=' occurrences that are not '===', '!==',
// or part of a comparison/arrow token. Scanned by hand since the exclusion
// needs one character of context on both sides.
func weakOperators(line string) []weakOperator {
	var ops []weakOperator
	for idx := 0; idx+1 < len(line); idx++ {
		two := line[idx : idx+2]
		if two != "==" && two != "!=" {
			continue
		}
		if idx+2 < len(line) && line[idx+2] == '=' {
			idx += 2
			continue
		}
		if two == "==" && idx > 0 && strings.ContainsRune("=!<>+-*/%&|^", rune(line[idx-1])) {
			continue
		}
		ops = append(ops, weakOperator{operator: two, column: idx + 1})
		idx++
	}
	return ops
}
