// Package engine coordinates one analysis run: input validation, structural
// extraction, pattern detection, metric evaluation, and principle checks,
// all inside a per-file time budget. Failures never cross file boundaries.
package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/scanward/scanward/internal/detectors"
	"github.com/scanward/scanward/internal/extractor"
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/internal/guard"
	"github.com/scanward/scanward/internal/principles"
	"github.com/scanward/scanward/internal/quality"
	"github.com/scanward/scanward/pkg/shared/config"
)

// Engine is the analysis coordinator. Per-file state lives in a freshly
// constructed context, so one Engine may serve concurrent callers; the
// shared counters are atomic.
type Engine struct {
	cfg       *config.Config
	logger    hclog.Logger
	guard     *guard.Guard
	extractor *extractor.Extractor
	detectors []detectors.Detector
	calc      *quality.Calculator
	checkers  []principles.Checker
	metrics   *Metrics
	runID     string
}

func New(cfg *config.Config, logger hclog.Logger) *Engine {
	metrics := &Metrics{}
	limits := cfg.Analysis
	return &Engine{
		cfg:       cfg,
		logger:    logger,
		guard:     guard.New(limits, logger, func(string) { metrics.recordRejection() }),
		extractor: extractor.New(limits, logger),
		detectors: detectors.All(limits),
		calc:      quality.New(limits),
		checkers:  principles.All(),
		metrics:   metrics,
		runID:     newRunID(),
	}
}

// RunID identifies this engine instance in reports and metric snapshots.
func (e *Engine) RunID() string { return e.runID }

// Metrics returns a snapshot of the run counters.
func (e *Engine) Metrics() Snapshot { return e.metrics.snapshot(e.runID) }

// ResetMetrics zeroes the run counters.
func (e *Engine) ResetMetrics() { e.metrics.reset() }

// AnalyzeFile validates and analyzes one file, reading it from disk with a
// bounded read. It never returns an error: rejected, timed-out, or failed
// files yield an empty result and a metrics increment.
func (e *Engine) AnalyzeFile(ctx context.Context, path, language string) []findings.Finding {
	return e.analyze(ctx, path, language, nil)
}

// AnalyzeContent behaves like AnalyzeFile for content the caller has already
// read.
func (e *Engine) AnalyzeContent(ctx context.Context, path, language string, content []byte) []findings.Finding {
	return e.analyze(ctx, path, language, content)
}

func (e *Engine) analyze(ctx context.Context, path, language string, content []byte) []findings.Finding {
	start := time.Now()

	fileCtx, rejection := e.guard.Validate(path, language, content)
	if rejection != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Analysis.Timeout)
	defer cancel()

	type outcome struct {
		result []findings.Finding
	}
	done := make(chan outcome, 1)
	go func() {
		done <- outcome{result: e.scanFile(fileCtx)}
	}()

	select {
	case out := <-done:
		if ctx.Err() != nil {
			// The scan finished only after its budget ran out; the result
			// is discarded like any other timeout.
			e.metrics.recordTimeout()
			return nil
		}
		e.metrics.recordFile(len(out.result), time.Since(start))
		return out.result
	case <-ctx.Done():
		// Partial findings from the in-flight scan are discarded with the
		// goroutine's buffered send.
		e.metrics.recordTimeout()
		e.logger.Warn("analysis aborted", "reason", ctx.Err().Error())
		return nil
	}
}

// scanFile runs extraction, every detector, and every metric calculator,
// each inside its own containment boundary.
func (e *Engine) scanFile(fileCtx *guard.AnalysisContext) []findings.Finding {
	lines := strings.Split(fileCtx.Content, "\n")
	units := e.extractUnits(fileCtx.Content)

	var result []findings.Finding
	for _, d := range e.detectors {
		detector := d
		result = append(result, e.contained("detector "+detector.ID(), func() []findings.Finding {
			return detector.Detect(lines)
		})...)
	}

	// Metric calculators share the extracted units; line-level findings are
	// still produced when extraction yields no units.
	result = append(result, e.contained("calculator complexity", func() []findings.Finding {
		return e.calc.ComplexityFindings(units)
	})...)
	result = append(result, e.contained("calculator length", func() []findings.Finding {
		return e.calc.LengthFindings(units)
	})...)
	result = append(result, e.contained("calculator parameters", func() []findings.Finding {
		return e.calc.ParameterFindings(units)
	})...)
	result = append(result, e.contained("calculator nesting", func() []findings.Finding {
		return e.calc.NestingFindings(lines)
	})...)

	result = clampLocations(result, len(lines))
	sortFindings(result)

	if len(result) > e.cfg.Analysis.MaxFindingsPerFile {
		e.logger.Debug("finding list truncated", "cap", e.cfg.Analysis.MaxFindingsPerFile)
		result = result[:e.cfg.Analysis.MaxFindingsPerFile]
	}
	return result
}

func (e *Engine) extractUnits(content string) []extractor.SourceUnit {
	var units []extractor.SourceUnit
	e.contained("extractor", func() []findings.Finding {
		units = e.extractor.Extract(content)
		return nil
	})
	return units
}

// contained runs one scan stage and converts a panic into a logged,
// sanitized skip so sibling stages still run.
func (e *Engine) contained(stage string, scan func() []findings.Finding) (result []findings.Finding) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("scan stage failed",
				"stage", stage,
				"error", guard.SanitizeError(fmt.Errorf("%v", r)))
			result = nil
		}
	}()
	return scan()
}

// clampLocations drops findings whose location falls outside the analyzed
// file, preserving the invariant that every reported line exists.
func clampLocations(list []findings.Finding, lineCount int) []findings.Finding {
	out := list[:0]
	for _, f := range list {
		if f.Line < 1 || f.Line > lineCount {
			continue
		}
		if f.Column < 1 {
			f.Column = 1
		}
		out = append(out, f)
	}
	return out
}

// sortFindings orders findings by position then rule so identical input
// always yields an identical report.
func sortFindings(list []findings.Finding) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Line != list[j].Line {
			return list[i].Line < list[j].Line
		}
		if list[i].Column != list[j].Column {
			return list[i].Column < list[j].Column
		}
		return list[i].RuleID < list[j].RuleID
	})
}
