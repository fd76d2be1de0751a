// Package quality derives complexity, length, parameter-count, and
// nesting-depth numbers from extracted units and turns threshold breaches
// into findings.
package quality

import (
	"regexp"

	"github.com/scanward/scanward/internal/extractor"
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/locale"
)

// complexityCap bounds the cyclomatic proxy so repetitive adversarial text
// cannot inflate it without bound.
const complexityCap = 999

// decisionTokens are the token families that each add one point to the
// cyclomatic proxy.
var decisionTokens = []*regexp.Regexp{
	regexp.MustCompile(`\bif\s*\(`),
	regexp.MustCompile(`\belse\s+if\s*\(`),
	regexp.MustCompile(`\bfor\s*\(`),
	regexp.MustCompile(`\bwhile\s*\(`),
	regexp.MustCompile(`\bcase\s`),
	regexp.MustCompile(`\bcatch\s*[({]`),
	regexp.MustCompile(`&&`),
	regexp.MustCompile(`\|\|`),
	regexp.MustCompile(`\?[^.]`),
}

// Complexity computes the cyclomatic proxy for a unit body: base score 1
// plus one per decision-introducing token, capped.
func Complexity(body string) int {
	score := 1
	for _, token := range decisionTokens {
		score += len(token.FindAllStringIndex(body, -1))
		if score >= complexityCap {
			return complexityCap
		}
	}
	return score
}

// Calculator evaluates extracted units and raw lines against the configured
// thresholds.
type Calculator struct {
	limits config.Analysis
}

func New(limits config.Analysis) *Calculator {
	return &Calculator{limits: limits}
}

// ComplexityFindings emits one finding per unit whose cyclomatic proxy
// breaches the warn threshold; past the error threshold the severity
// escalates.
func (c *Calculator) ComplexityFindings(units []extractor.SourceUnit) []findings.Finding {
	var result []findings.Finding
	for i := range units {
		unit := &units[i]
		score := Complexity(unit.Body)
		if score <= c.limits.ComplexityWarn {
			continue
		}
		severity := findings.SeverityWarning
		if score > c.limits.ComplexityError {
			severity = findings.SeverityError
		}
		params := map[string]interface{}{"name": unit.Name, "complexity": score, "threshold": c.limits.ComplexityWarn}
		result = append(result, findings.Finding{
			Type:       "complexity",
			Message:    locale.T("metric.complexity.message", params),
			Severity:   severity,
			Line:       unit.StartLine,
			Column:     unit.StartColumn,
			RuleID:     "complexity",
			Suggestion: locale.T("metric.complexity.suggestion", params),
		})
	}
	return result
}

// LengthFindings emits a warning per unit whose body exceeds the line budget.
func (c *Calculator) LengthFindings(units []extractor.SourceUnit) []findings.Finding {
	var result []findings.Finding
	for i := range units {
		unit := &units[i]
		lineCount := unit.LineCount()
		if lineCount <= c.limits.MaxUnitLines {
			continue
		}
		params := map[string]interface{}{"name": unit.Name, "lines": lineCount, "threshold": c.limits.MaxUnitLines}
		result = append(result, findings.Finding{
			Type:       "function-length",
			Message:    locale.T("metric.length.message", params),
			Severity:   findings.SeverityWarning,
			Line:       unit.StartLine,
			Column:     unit.StartColumn,
			RuleID:     "max-lines-per-function",
			Suggestion: locale.T("metric.length.suggestion", params),
		})
	}
	return result
}

// ParameterFindings emits a warning per unit taking too many parameters,
// recommending consolidation into a parameter object.
func (c *Calculator) ParameterFindings(units []extractor.SourceUnit) []findings.Finding {
	var result []findings.Finding
	for i := range units {
		unit := &units[i]
		count := len(unit.Parameters)
		if count <= c.limits.MaxParameters {
			continue
		}
		params := map[string]interface{}{"name": unit.Name, "count": count, "threshold": c.limits.MaxParameters}
		result = append(result, findings.Finding{
			Type:       "parameter-count",
			Message:    locale.T("metric.parameters.message", params),
			Severity:   findings.SeverityWarning,
			Line:       unit.StartLine,
			Column:     unit.StartColumn,
			RuleID:     "max-params",
			Suggestion: locale.T("metric.parameters.suggestion", params),
		})
	}
	return result
}

// NestingProfile computes the running brace-balance maximum across the whole
// file and the line where it was first reached. Depth is floored at zero and
// clamped, so malformed brace sequences can never produce a negative or
// unbounded result.
func NestingProfile(lines []string, clamp int) (maxDepth, atLine int) {
	depth := 0
	atLine = 1
	for i, line := range lines {
		for _, ch := range line {
			switch ch {
			case '{':
				depth++
				if depth > clamp {
					depth = clamp
				}
				if depth > maxDepth {
					maxDepth = depth
					atLine = i + 1
				}
			case '}':
				depth--
				if depth < 0 {
					depth = 0
				}
			}
		}
	}
	return maxDepth, atLine
}

// NestingFindings emits at most one file-level finding, located at the line
// where the maximum depth was reached.
func (c *Calculator) NestingFindings(lines []string) []findings.Finding {
	maxDepth, atLine := NestingProfile(lines, complexityCap)
	if maxDepth <= c.limits.MaxNestingDepth {
		return nil
	}
	params := map[string]interface{}{"depth": maxDepth, "threshold": c.limits.MaxNestingDepth}
	return []findings.Finding{{
		Type:       "nesting-depth",
		Message:    locale.T("metric.nesting.message", params),
		Severity:   findings.SeverityWarning,
		Line:       atLine,
		Column:     1,
		RuleID:     "max-depth",
		Suggestion: locale.T("metric.nesting.suggestion", params),
	}}
}

// CombinedComplexity sums the cyclomatic proxy across units, capped, for
// file-scoped principle checks.
func CombinedComplexity(units []extractor.SourceUnit) int {
	total := 0
	for i := range units {
		total += Complexity(units[i].Body)
		if total >= complexityCap {
			return complexityCap
		}
	}
	return total
}

// ExtractImports collects module identifiers from import and require lines.
// Purely lexical, like everything else here.
var importPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bimport\s+(?:[\w${},*\s]+\s+from\s+)?['"]([^'"]+)['"]`),
	regexp.MustCompile(`\brequire\s*\(\s*['"]([^'"]+)['"]\s*\)`),
}

func ExtractImports(lines []string, maxLineLength int) []string {
	var imports []string
	for _, line := range lines {
		if len(line) > maxLineLength || extractor.IsCommentLine(line) {
			continue
		}
		for _, pattern := range importPatterns {
			for _, m := range pattern.FindAllStringSubmatch(line, -1) {
				imports = append(imports, m[1])
			}
		}
	}
	return imports
}
