package engine

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Metrics holds the process-wide analysis counters. All increments are
// atomic so callers may analyze files concurrently. Counters are
// zero-initialized at engine construction and never persisted.
type Metrics struct {
	filesAnalyzed      atomic.Int64
	totalFindings      atomic.Int64
	securityRejections atomic.Int64
	timeouts           atomic.Int64
	totalLatencyNanos  atomic.Int64
}

// Snapshot is a JSON-serializable view of the counters at one moment.
type Snapshot struct {
	RunID              string        `json:"run_id"`
	FilesAnalyzed      int64         `json:"files_analyzed"`
	TotalFindings      int64         `json:"total_findings"`
	SecurityRejections int64         `json:"security_rejections"`
	Timeouts           int64         `json:"timeouts"`
	AverageLatency     time.Duration `json:"average_latency_ns"`
}

func (m *Metrics) recordFile(findingCount int, elapsed time.Duration) {
	m.filesAnalyzed.Add(1)
	m.totalFindings.Add(int64(findingCount))
	m.totalLatencyNanos.Add(elapsed.Nanoseconds())
}

func (m *Metrics) recordRejection() { m.securityRejections.Add(1) }
func (m *Metrics) recordTimeout()   { m.timeouts.Add(1) }

// snapshot captures the counters with a fresh run identifier.
func (m *Metrics) snapshot(runID string) Snapshot {
	files := m.filesAnalyzed.Load()
	var avg time.Duration
	if files > 0 {
		avg = time.Duration(m.totalLatencyNanos.Load() / files)
	}
	return Snapshot{
		RunID:              runID,
		FilesAnalyzed:      files,
		TotalFindings:      m.totalFindings.Load(),
		SecurityRejections: m.securityRejections.Load(),
		Timeouts:           m.timeouts.Load(),
		AverageLatency:     avg,
	}
}

// reset zeroes every counter.
func (m *Metrics) reset() {
	m.filesAnalyzed.Store(0)
	m.totalFindings.Store(0)
	m.securityRejections.Store(0)
	m.timeouts.Store(0)
	m.totalLatencyNanos.Store(0)
}

// newRunID tags metric snapshots and reports with the owning engine run.
func newRunID() string {
	return uuid.NewString()
}
