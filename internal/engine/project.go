package engine

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/internal/guard"
	"github.com/scanward/scanward/internal/principles"
	"github.com/scanward/scanward/internal/quality"
	"github.com/scanward/scanward/pkg/shared/files"
)

// supportedExtensions are the file types a project walk considers.
var supportedExtensions = map[string]bool{
	".js": true, ".jsx": true, ".mjs": true, ".cjs": true,
	".ts": true, ".tsx": true,
}

// skippedDirs are never descended into during a project walk.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// AnalyzeProject walks root, runs the principle checkers over every
// supported file, and returns the aggregated violations. Files are processed
// by a bounded worker pool; a failed or rejected file never aborts the run.
func (e *Engine) AnalyzeProject(ctx context.Context, root, language string) []findings.Violation {
	paths, err := e.collectFiles(root)
	if err != nil {
		e.logger.Error("project walk failed", "error", guard.SanitizeError(err))
		return nil
	}

	jobs := make(chan string)
	var mu sync.Mutex
	var violations []findings.Violation

	var wg sync.WaitGroup
	for i := 0; i < e.cfg.Analysis.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				found := e.CheckFile(ctx, path, language)
				if len(found) == 0 {
					continue
				}
				mu.Lock()
				violations = append(violations, found...)
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			e.logger.Warn("project analysis cancelled", "reason", ctx.Err().Error())
			close(jobs)
			wg.Wait()
			return nil
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	sortViolations(violations)
	return violations
}

// CheckFile runs every supported principle checker over one file inside the
// same per-file time budget as AnalyzeFile. Like AnalyzeFile, it never
// returns an error.
func (e *Engine) CheckFile(ctx context.Context, path, language string) []findings.Violation {
	fileCtx, rejection := e.guard.Validate(path, language, nil)
	if rejection != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Analysis.Timeout)
	defer cancel()

	done := make(chan []findings.Violation, 1)
	go func() {
		done <- e.checkFile(fileCtx)
	}()

	select {
	case out := <-done:
		if ctx.Err() != nil {
			// The check finished only after its budget ran out; the result
			// is discarded like any other timeout.
			e.metrics.recordTimeout()
			return nil
		}
		return out
	case <-ctx.Done():
		e.metrics.recordTimeout()
		e.logger.Warn("principle check aborted", "reason", ctx.Err().Error())
		return nil
	}
}

func (e *Engine) checkFile(fileCtx *guard.AnalysisContext) []findings.Violation {
	lines := strings.Split(fileCtx.Content, "\n")
	checkCtx := &principles.Context{
		File:     fileCtx.Path,
		Language: fileCtx.Language,
		Units:    e.extractUnits(fileCtx.Content),
		Imports:  quality.ExtractImports(lines, e.cfg.Analysis.MaxLineLength),
		Lines:    lines,
		Limits:   e.cfg.Analysis,
	}

	var violations []findings.Violation
	for _, c := range e.checkers {
		checker := c
		if !checker.SupportsLanguage(checkCtx.Language) {
			continue
		}
		e.contained("checker "+checker.Principle(), func() []findings.Finding {
			violations = append(violations, checker.Check(checkCtx)...)
			return nil
		})
	}
	return violations
}

// collectFiles gathers the supported source files under root in a stable
// order. Symlinked entries that resolve outside the audited tree are skipped.
func (e *Engine) collectFiles(root string) ([]string, error) {
	resolvedRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			e.logger.Debug("walk entry skipped", "error", guard.SanitizeError(err))
			return nil
		}
		if d.IsDir() {
			if skippedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		resolved, rerr := filepath.EvalSymlinks(path)
		if rerr != nil {
			e.logger.Debug("walk entry skipped", "error", guard.SanitizeError(rerr))
			return nil
		}
		if _, err := files.EnsureWithinRoot(resolvedRoot, resolved); err != nil {
			e.logger.Warn("walk entry outside root skipped", "error", guard.SanitizeError(err))
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// sortViolations orders the aggregate by file, principle, then line.
func sortViolations(list []findings.Violation) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].File != list[j].File {
			return list[i].File < list[j].File
		}
		if list[i].Principle != list[j].Principle {
			return list[i].Principle < list[j].Principle
		}
		return list[i].Line < list[j].Line
	})
}
