package emoji58

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// ConfusableReport lists candidate pairs whose similarity reached the
// threshold, most similar first. It is advisory input to the selection
// engine and is also persisted standalone for manual review.
type ConfusableReport struct {
	Threshold float64          `json:"threshold"`
	Pairs     []SimilarityEdge `json:"pairs"`
}

// DetectConfusables returns the pairs whose combined similarity reaches
// the threshold. Classification goes through FingerprintSet.Confusable,
// whose early pruning skips the bulk of each clearly-distinct pair; the
// reported score comes from the matrix, which holds the full mean.
func DetectConfusables(m *SimilarityMatrix, sets map[string]*FingerprintSet, threshold float64) *ConfusableReport {
	report := &ConfusableReport{Threshold: threshold}
	for i := 0; i < len(m.ids); i++ {
		for j := i + 1; j < len(m.ids); j++ {
			a, b := m.ids[i], m.ids[j]
			if !sets[a].Confusable(sets[b], threshold) {
				continue
			}
			report.Pairs = append(report.Pairs, SimilarityEdge{A: a, B: b, Score: m.Similarity(a, b)})
		}
	}
	sort.Slice(report.Pairs, func(a, b int) bool {
		if report.Pairs[a].Score != report.Pairs[b].Score {
			return report.Pairs[a].Score > report.Pairs[b].Score
		}
		if report.Pairs[a].A != report.Pairs[b].A {
			return report.Pairs[a].A < report.Pairs[b].A
		}
		return report.Pairs[a].B < report.Pairs[b].B
	})
	return report
}

// Contains reports whether the pair (a, b) is confusable. Order does
// not matter.
func (r *ConfusableReport) Contains(a, b string) bool {
	for _, p := range r.Pairs {
		if (p.A == a && p.B == b) || (p.A == b && p.B == a) {
			return true
		}
	}
	return false
}

// Save writes the report artifact as indented JSON.
func (r *ConfusableReport) Save(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling confusable report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing confusable report: %w", err)
	}
	return nil
}
