// Package detectors holds the line-level anti-pattern scanners. Each
// detector is independent and order-insensitive; the coordinator isolates
// failures so one detector can never keep its siblings from running.
package detectors

import (
	"github.com/scanward/scanward/internal/extractor"
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
)

// Finding type families emitted by the detectors.
const (
	TypeDeprecatedDeclaration = "deprecated-declaration"
	TypeWeakEquality          = "weak-equality"
	TypeDebugStatement        = "debug-statement"
	TypeUnnamedConstant       = "unnamed-constant"
)

// Detector scans raw lines and reports anti-pattern occurrences. Detect must
// be pure: no retained state, identical output for identical input.
type Detector interface {
	ID() string
	Detect(lines []string) []findings.Finding
}

// All returns the full detector set for the given limits.
func All(limits config.Analysis) []Detector {
	return []Detector{
		NewDeprecatedDeclaration(limits),
		NewWeakEquality(limits),
		NewDebugStatement(limits),
		NewUnnamedConstant(limits),
	}
}

// scannable reports whether a line should be matched at all: oversized lines
// and comment-prefixed lines are skipped rather than scanned.
func scannable(line string, limits config.Analysis) bool {
	return len(line) <= limits.MaxLineLength && !extractor.IsCommentLine(line)
}
