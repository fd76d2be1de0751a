package findings

// Severity levels for line-level findings.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Violation severity levels used by principle checkers.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Finding is a single anti-pattern occurrence at a source location.
// Line and Column are 1-based and always point inside the analyzed file.
type Finding struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	Severity   string `json:"severity"`
	Line       int    `json:"line"`
	Column     int    `json:"column"`
	RuleID     string `json:"rule"`
	Suggestion string `json:"suggestion,omitempty"`
}

// UnitMetrics carries the numeric evidence attached to a Violation.
type UnitMetrics struct {
	Complexity      int      `json:"complexity,omitempty"`
	MethodCount     int      `json:"method_count,omitempty"`
	DependencyCount int      `json:"dependency_count,omitempty"`
	ParameterCount  int      `json:"parameter_count,omitempty"`
	LineCount       int      `json:"line_count,omitempty"`
	Concerns        []string `json:"concerns,omitempty"`
}

// Violation is a design-principle breach reported by a principle checker.
type Violation struct {
	Principle   string       `json:"principle"`
	Severity    string       `json:"severity"`
	File        string       `json:"file"`
	Line        int          `json:"line,omitempty"`
	UnitName    string       `json:"method,omitempty"`
	Description string       `json:"description"`
	Explanation string       `json:"explanation,omitempty"`
	Impact      string       `json:"impact,omitempty"`
	Suggestion  string       `json:"suggestion"`
	Metrics     *UnitMetrics `json:"metrics,omitempty"`
}

// severityRank orders finding severities from least to most severe.
var severityRank = map[string]int{
	SeverityInfo:    0,
	SeverityWarning: 1,
	SeverityError:   2,
}

// violationRank orders violation severities from least to most severe.
var violationRank = map[string]int{
	SeverityLow:      0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// WorstSeverity returns the most severe of the given violation severities.
// An empty input yields SeverityLow.
func WorstSeverity(severities ...string) string {
	worst := SeverityLow
	for _, s := range severities {
		if violationRank[s] > violationRank[worst] {
			worst = s
		}
	}
	return worst
}

// CompareSeverity reports whether a is at least as severe as b for
// line-level finding severities.
func CompareSeverity(a, b string) bool {
	return severityRank[a] >= severityRank[b]
}
