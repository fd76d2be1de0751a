// Package extractor recovers approximate structure from untrusted source
// text. It deliberately never parses a grammar: function-like units are
// recognized with a small family of lexical patterns and their bodies are
// located by brace-balance counting, with explicit caps on every dimension.
package extractor

import (
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scanward/scanward/pkg/shared/config"
)

// AnonymousName is the placeholder for units whose name could not be recovered.
const AnonymousName = "<anonymous>"

const (
	maxNameLength  = 100
	maxParamLength = 50
	maxParamCount  = 20
)

// SourceUnit is a function-like construct recovered from source text.
// Instances are immutable once returned and are discarded at the end of the
// file's analysis.
type SourceUnit struct {
	Name        string
	Parameters  []string
	Body        string
	StartLine   int
	StartColumn int
}

// LineCount returns the number of lines spanned by the unit body.
func (u *SourceUnit) LineCount() int {
	if u.Body == "" {
		return 0
	}
	return strings.Count(u.Body, "\n") + 1
}

// unitPatterns recognize (in order): named function declarations,
// assignment-bound function expressions, assignment-bound arrow functions,
// and bare call-like declarations followed by an opening brace. The
// assignment shapes require the function keyword or a trailing arrow so a
// plain parenthesized expression like `const total = (price + tax);` is
// never mistaken for a unit.
var unitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(([^)]*)\)`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?function\s*\*?\s*(?:[A-Za-z_$][\w$]*\s*)?\(([^)]*)\)`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?\(([^)]*)\)\s*=>`),
	regexp.MustCompile(`^\s*(?:async\s+)?([A-Za-z_$][\w$]*)\s*\(([^)]*)\)\s*\{`),
}

// identifier-safe character class used when sanitizing captured text.
var unsafeNameChars = regexp.MustCompile(`[^\w$]`)

// reservedNames are keywords the bare call-like pattern would otherwise
// misread as unit names.
var reservedNames = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "return": true, "with": true, "do": true,
}

// Extractor scans sanitized text for function-like units.
type Extractor struct {
	limits config.Analysis
	logger hclog.Logger
}

func New(limits config.Analysis, logger hclog.Logger) *Extractor {
	return &Extractor{limits: limits, logger: logger}
}

// Extract scans content line by line and returns the recovered units, capped
// at the configured maximum so adversarial input cannot inflate downstream
// work. Malformed brace sequences never hang the scan.
func (e *Extractor) Extract(content string) []SourceUnit {
	lines := strings.Split(content, "\n")
	units := make([]SourceUnit, 0, 16)

	for i, line := range lines {
		if len(units) >= e.limits.MaxUnitsPerFile {
			e.logger.Debug("unit cap reached, remaining lines skipped", "cap", e.limits.MaxUnitsPerFile)
			break
		}
		if len(line) > e.limits.MaxLineLength || isCommentLine(line) {
			continue
		}

		name, params, column, ok := e.matchUnit(line)
		if !ok {
			continue
		}

		body, ok := e.locateBody(lines, i)
		if !ok {
			continue
		}

		units = append(units, SourceUnit{
			Name:        name,
			Parameters:  params,
			Body:        body,
			StartLine:   i + 1,
			StartColumn: column,
		})
	}

	return units
}

// matchUnit applies the lexical patterns to one line and returns the
// sanitized name, parameter list, and 1-based column of the match.
func (e *Extractor) matchUnit(line string) (string, []string, int, bool) {
	for patternIdx, pattern := range unitPatterns {
		loc := pattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		rawName := line[loc[2]:loc[3]]
		rawParams := line[loc[4]:loc[5]]

		if patternIdx == len(unitPatterns)-1 && reservedNames[rawName] {
			continue
		}

		return sanitizeName(rawName), sanitizeParams(rawParams), loc[0] + 1, true
	}
	return "", nil, 0, false
}

// locateBody finds the unit body by brace-balance counting starting at the
// match line. The running count is floored at zero; exceeding the configured
// depth or body-size cap discards the unit rather than retaining it.
func (e *Extractor) locateBody(lines []string, start int) (string, bool) {
	depth := 0
	opened := false
	size := 0
	var body []string

	for i := start; i < len(lines); i++ {
		line := lines[i]
		size += len(line) + 1
		if size > e.limits.MaxUnitBodyBytes {
			return "", false
		}
		body = append(body, line)

		for _, ch := range line {
			switch ch {
			case '{':
				opened = true
				depth++
				if depth > e.limits.MaxBraceDepth {
					return "", false
				}
			case '}':
				depth--
				if depth < 0 {
					depth = 0
				}
			}
		}

		if opened && depth == 0 {
			return strings.Join(body, "\n"), true
		}
		// Expression-bodied bindings never open a brace: the match line is
		// the whole body. A brace on the following line still counts as a
		// block body.
		if !opened && i == start {
			if i+1 >= len(lines) || !strings.HasPrefix(strings.TrimSpace(lines[i+1]), "{") {
				return line, true
			}
		}
	}

	// Unterminated unit: keep what was collected inside the caps.
	if opened {
		return strings.Join(body, "\n"), true
	}
	return "", false
}

// sanitizeName strips everything outside the identifier-safe class and
// truncates, so crafted names can never carry payloads into reports.
func sanitizeName(raw string) string {
	name := unsafeNameChars.ReplaceAllString(raw, "")
	if name == "" {
		return AnonymousName
	}
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return name
}

// sanitizeParams splits and sanitizes a raw parameter list, bounding both
// token length and token count.
func sanitizeParams(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var params []string
	for _, token := range strings.Split(raw, ",") {
		if len(params) >= maxParamCount {
			break
		}
		// Strip default values and annotations before sanitizing.
		if idx := strings.IndexAny(token, "=:"); idx >= 0 {
			token = token[:idx]
		}
		cleaned := unsafeNameChars.ReplaceAllString(token, "")
		if cleaned == "" {
			continue
		}
		if len(cleaned) > maxParamLength {
			cleaned = cleaned[:maxParamLength]
		}
		params = append(params, cleaned)
	}
	return params
}

// isCommentLine reports whether a trimmed line starts with a comment marker.
// A heuristic, not a comment grammar: block comment interiors that do not
// start with '*' are not recognized.
func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// IsCommentLine is the comment heuristic shared with the pattern detectors.
func IsCommentLine(line string) bool {
	return isCommentLine(line)
}
