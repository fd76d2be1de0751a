// Package guard validates and sanitizes candidate files before any analysis
// touches them. Input is untrusted: the guard enforces path and size
// ceilings and refuses content carrying high-risk constructs outright.
package guard

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scanward/scanward/pkg/shared/config"
	"github.com/scanward/scanward/pkg/shared/files"
)

// Rejection reason codes. A rejection is a typed skip outcome, never an error.
const (
	ReasonEmptyPath     = "empty-path"
	ReasonPathTooLong   = "path-too-long"
	ReasonNullByte      = "null-byte-in-path"
	ReasonPathTraversal = "path-traversal"
	ReasonUnreadable    = "unreadable"
	ReasonTooLarge      = "size-ceiling-exceeded"
	ReasonUnsafeContent = "unsafe-content"
)

// AnalysisContext is the per-file record handed to downstream analysis.
// It lives for the duration of one file's analysis and is never persisted.
type AnalysisContext struct {
	Path          string
	Language      string
	Content       string
	ContentLength int
	Safe          bool
}

// Rejection explains why a file was skipped without being analyzed.
type Rejection struct {
	Path   string
	Reason string
}

// dangerousPatterns match content the engine refuses to analyze at all.
// These are treated as unsafe input, not as findings.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[\s>]`),
	regexp.MustCompile(`\beval\s*\(`),
	regexp.MustCompile(`\bnew\s+Function\s*\(`),
	regexp.MustCompile(`\bsetTimeout\s*\(\s*["']`),
	regexp.MustCompile(`\bsetInterval\s*\(\s*["']`),
}

// languageByExt maps file extensions to supported language tags.
var languageByExt = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
}

// Guard validates candidate paths and content against the configured limits.
type Guard struct {
	limits   config.Analysis
	logger   hclog.Logger
	onReject func(reason string)
}

// New creates a Guard. onReject, when non-nil, is invoked once per rejection
// so the owner can account for security skips.
func New(limits config.Analysis, logger hclog.Logger, onReject func(reason string)) *Guard {
	return &Guard{
		limits:   limits,
		logger:   logger,
		onReject: onReject,
	}
}

// Validate checks the candidate file and returns either an AnalysisContext
// ready for analysis or a Rejection with a reason code. When content is nil
// the file is read through a bounded reader so an oversized file is rejected
// without being fully loaded. Validate never panics on malformed input.
func (g *Guard) Validate(path, language string, content []byte) (*AnalysisContext, *Rejection) {
	if reason := g.checkPath(path); reason != "" {
		return nil, g.reject(path, reason)
	}

	if content == nil {
		data, over, err := files.ReadFileCapped(path, g.limits.MaxFileSizeBytes)
		if err != nil {
			g.logger.Debug("file is not readable", "error", SanitizeError(err))
			return nil, g.reject(path, ReasonUnreadable)
		}
		if over {
			return nil, g.reject(path, ReasonTooLarge)
		}
		content = data
	} else if len(content) > g.limits.MaxFileSizeBytes {
		// The declared content length is not trusted; the actual byte count decides.
		return nil, g.reject(path, ReasonTooLarge)
	}

	text := string(content)
	for _, pattern := range dangerousPatterns {
		if pattern.MatchString(text) {
			return nil, g.reject(path, ReasonUnsafeContent)
		}
	}

	return &AnalysisContext{
		Path:          filepath.Clean(path),
		Language:      DetectLanguage(path, language),
		Content:       text,
		ContentLength: len(text),
		Safe:          true,
	}, nil
}

// checkPath returns a rejection reason for invalid paths, or "" when valid.
func (g *Guard) checkPath(path string) string {
	if path == "" {
		return ReasonEmptyPath
	}
	if len(path) > g.limits.MaxPathLength {
		return ReasonPathTooLong
	}
	if strings.ContainsRune(path, 0) {
		return ReasonNullByte
	}
	for _, segment := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if segment == ".." {
			return ReasonPathTraversal
		}
	}
	return ""
}

func (g *Guard) reject(path, reason string) *Rejection {
	g.logger.Warn("file rejected before analysis", "file", filepath.Base(path), "reason", reason)
	if g.onReject != nil {
		g.onReject(reason)
	}
	return &Rejection{Path: filepath.Clean(path), Reason: reason}
}

// DetectLanguage resolves the language tag for a file, preferring the
// declared tag when it names a supported language.
func DetectLanguage(path, declared string) string {
	switch declared {
	case "javascript", "typescript":
		return declared
	}
	if lang, ok := languageByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return declared
}

// SanitizeError caps the length of an error message and strips path
// separators so raw filesystem detail never reaches logs. Every catch
// boundary in the engine maps errors through here before logging.
func SanitizeError(err error) string {
	msg := strings.NewReplacer("/", " ", "\\", " ").Replace(err.Error())
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
