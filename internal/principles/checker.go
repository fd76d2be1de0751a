// Package principles implements the design-principle checkers. Each checker
// consumes the same structural metadata the detectors use, plus import
// signals, and emits violations with a machine-computed severity. Checkers
// are independent: one checker never mutates another's output.
package principles

import (
	"sort"
	"strings"

	"github.com/scanward/scanward/internal/extractor"
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
)

// Context binds everything a checker may consult for one file.
type Context struct {
	File     string
	Language string
	Units    []extractor.SourceUnit
	Imports  []string
	Lines    []string
	Limits   config.Analysis
}

// Checker is implemented once per design principle.
type Checker interface {
	Principle() string
	SupportsLanguage(tag string) bool
	Check(ctx *Context) []findings.Violation
}

// All returns the checker set in a fixed order so project runs are
// deterministic.
func All() []Checker {
	return []Checker{
		NewSingleResponsibility(),
		NewInterfaceSegregation(),
		NewDependencyDirection(),
	}
}

// Thresholds bucket a metric value into a violation severity.
type Thresholds struct {
	Low    int
	Medium int
	High   int
}

// Base carries the principle identity and the shared scoring helpers every
// concrete checker reuses.
type Base struct {
	principle string
	languages []string
}

func (b *Base) Principle() string { return b.principle }

// SupportsLanguage reports whether the checker handles the language tag.
// A checker with no declared languages handles all of them.
func (b *Base) SupportsLanguage(tag string) bool {
	if len(b.languages) == 0 {
		return true
	}
	for _, l := range b.languages {
		if l == tag {
			return true
		}
	}
	return false
}

// SeverityFromThresholds buckets a value deterministically: boundaries are
// inclusive and the highest matching bucket wins.
func (b *Base) SeverityFromThresholds(value int, t Thresholds) string {
	switch {
	case value >= t.High:
		return findings.SeverityHigh
	case value >= t.Medium:
		return findings.SeverityMedium
	default:
		return findings.SeverityLow
	}
}

// NewViolation builds a violation that is guaranteed to carry principle,
// severity, file, and an actionable suggestion.
func (b *Base) NewViolation(file, severity, description, explanation, impact, suggestion string) findings.Violation {
	if severity == "" {
		severity = findings.SeverityLow
	}
	if suggestion == "" {
		suggestion = "Review the reported unit and split or simplify it."
	}
	return findings.Violation{
		Principle:   b.principle,
		Severity:    severity,
		File:        file,
		Description: description,
		Explanation: explanation,
		Impact:      impact,
		Suggestion:  suggestion,
	}
}

// concernKeywords map dependency identifiers to coarse functional concerns
// via substring membership. A single import may land in several concerns.
var concernKeywords = map[string][]string{
	"data-access":    {"sql", "db", "database", "mongo", "redis", "orm", "knex", "sequelize", "typeorm", "prisma"},
	"network":        {"http", "axios", "fetch", "request", "socket", "grpc", "net"},
	"filesystem":     {"fs", "path", "glob", "file"},
	"messaging":      {"kafka", "rabbit", "amqp", "queue", "sqs", "nats", "pubsub"},
	"validation":     {"valid", "joi", "yup", "zod", "schema", "ajv"},
	"presentation":   {"react", "vue", "angular", "dom", "html", "css", "template", "render"},
	"authentication": {"auth", "jwt", "passport", "oauth", "session", "bcrypt"},
	"observability":  {"log", "winston", "pino", "metric", "trace", "telemetry", "sentry"},
}

// ClassifyImportConcerns maps import identifiers to the set of concern tags
// they touch.
func (b *Base) ClassifyImportConcerns(imports []string) map[string]bool {
	concerns := make(map[string]bool)
	for _, imp := range imports {
		lower := strings.ToLower(imp)
		for concern, keywords := range concernKeywords {
			for _, kw := range keywords {
				if strings.Contains(lower, kw) {
					concerns[concern] = true
					break
				}
			}
		}
	}
	return concerns
}

// sortedConcerns renders a concern set as a stable list for reports.
func sortedConcerns(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
