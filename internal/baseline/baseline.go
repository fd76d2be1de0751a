// Package baseline correlates the findings of a fresh analysis run with a
// stored earlier report, so a caller can surface only regressions and track
// which earlier findings were fixed. Matching survives line shifts by
// fingerprinting the reported source line.
package baseline

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"github.com/scanward/scanward/internal/findings"
)

// Entry is one finding in its correlatable form. The snippet hash is optional;
// entries without one still correlate by position.
type Entry struct {
	File        string           `json:"file"`
	SnippetHash string           `json:"snippet_hash,omitempty"`
	Finding     findings.Finding `json:"finding"`
}

// Report is the persisted baseline format.
type Report struct {
	RunID   string  `json:"run_id"`
	Entries []Entry `json:"entries"`
}

// Match groups one baseline entry with the current entries correlated to it.
type Match struct {
	Known   Entry
	Current []Entry
}

// HashSnippet fingerprints the 1-based source line a finding points at.
// Out-of-range lines yield an empty hash, which disables snippet matching
// for that entry.
func HashSnippet(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	sum := sha256.Sum256([]byte(lines[line-1]))
	return fmt.Sprintf("%x", sum[:])
}

// EntriesForFile converts one file's findings into entries, fingerprinting
// each reported line.
func EntriesForFile(file string, lines []string, list []findings.Finding) []Entry {
	entries := make([]Entry, 0, len(list))
	for _, f := range list {
		entries = append(entries, Entry{
			File:        file,
			SnippetHash: HashSnippet(lines, f.Line),
			Finding:     f,
		})
	}
	return entries
}

// Load reads a baseline report from disk.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read baseline: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse baseline: %w", err)
	}
	return &report, nil
}

// Write persists the report to disk.
func (r *Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize baseline: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write baseline: %w", err)
	}
	return nil
}

// Correlator computes the many-to-many correlation between the current run's
// entries and a stored baseline. Construct it with NewCorrelator; the results
// are available through Matches, UnmatchedCurrent, and UnmatchedKnown after
// Process has run (each accessor runs it on demand).
type Correlator struct {
	Current []Entry
	Known   []Entry

	knownToCurrent map[int][]int
	currentToKnown map[int][]int

	processed bool
}

// NewCorrelator creates a Correlator over the current and baseline entries.
func NewCorrelator(current, known []Entry) *Correlator {
	return &Correlator{
		Current: current,
		Known:   known,
	}
}

// Process correlates every baseline entry with every current entry in four
// ordered stages; an entry matched in an earlier stage is excluded from later
// ones. The stages are:
//  1. rule + file + line + column + snippet hash
//  2. rule + file + snippet hash
//  3. rule + file + line + column
//  4. rule + file + line
//
// Stage 2 is what lets a finding survive edits above it in the file. Process
// is idempotent.
func (c *Correlator) Process() {
	if c.processed {
		return
	}
	c.knownToCurrent = make(map[int][]int)
	c.currentToKnown = make(map[int][]int)

	matchedKnown := make(map[int]bool)
	matchedCurrent := make(map[int]bool)

	for stage := 1; stage <= 4; stage++ {
		matchedKnownThis := make(map[int]bool)
		matchedCurrentThis := make(map[int]bool)

		for ki, k := range c.Known {
			if matchedKnown[ki] {
				continue
			}
			for ci, cur := range c.Current {
				if matchedCurrent[ci] {
					continue
				}
				if matchStage(k, cur, stage) {
					c.knownToCurrent[ki] = append(c.knownToCurrent[ki], ci)
					c.currentToKnown[ci] = append(c.currentToKnown[ci], ki)
					matchedKnownThis[ki] = true
					matchedCurrentThis[ci] = true
				}
			}
		}

		for ki := range matchedKnownThis {
			matchedKnown[ki] = true
		}
		for ci := range matchedCurrentThis {
			matchedCurrent[ci] = true
		}
	}

	c.processed = true
}

// matchStage decides whether two entries correlate under the given stage.
// A rule identifier is required on both sides for every stage, and the hash
// stages require a non-empty hash on both sides.
func matchStage(a, b Entry, stage int) bool {
	if a.Finding.RuleID == "" || b.Finding.RuleID == "" {
		return false
	}
	if a.Finding.RuleID != b.Finding.RuleID || a.File != b.File {
		return false
	}

	switch stage {
	case 1:
		return a.Finding.Line == b.Finding.Line &&
			a.Finding.Column == b.Finding.Column &&
			a.SnippetHash != "" && a.SnippetHash == b.SnippetHash
	case 2:
		return a.SnippetHash != "" && a.SnippetHash == b.SnippetHash
	case 3:
		return a.Finding.Line == b.Finding.Line && a.Finding.Column == b.Finding.Column
	case 4:
		return a.Finding.Line == b.Finding.Line
	default:
		return false
	}
}

// UnmatchedCurrent returns the current entries with no baseline counterpart.
// These are the run's regressions.
func (c *Correlator) UnmatchedCurrent() []Entry {
	c.Process()

	var out []Entry
	for ci, cur := range c.Current {
		if len(c.currentToKnown[ci]) == 0 {
			out = append(out, cur)
		}
	}
	return out
}

// UnmatchedKnown returns the baseline entries with no current counterpart.
// These findings were fixed since the baseline was recorded.
func (c *Correlator) UnmatchedKnown() []Entry {
	c.Process()

	var out []Entry
	for ki, k := range c.Known {
		if len(c.knownToCurrent[ki]) == 0 {
			out = append(out, k)
		}
	}
	return out
}

// Matches returns each baseline entry that correlated to at least one current
// entry, with the correlated entries attached.
func (c *Correlator) Matches() []Match {
	c.Process()

	var out []Match
	for ki, currentIdxs := range c.knownToCurrent {
		if len(currentIdxs) == 0 {
			continue
		}
		m := Match{Known: c.Known[ki], Current: make([]Entry, 0, len(currentIdxs))}
		for _, ci := range currentIdxs {
			m.Current = append(m.Current, c.Current[ci])
		}
		out = append(out, m)
	}
	return out
}
