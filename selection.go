package emoji58

import (
	"fmt"
)

// PinnedSymbol records the candidate committed to a priority symbol
// ahead of the greedy fill.
type PinnedSymbol struct {
	Symbol    string
	Candidate *EmojiCandidate
}

// SelectionResult is the committed choice of exactly TargetCount
// mutually distinct candidates: every pair in Members scores below the
// threshold. Members are in acceptance order, pinned candidates first.
// Immutable once produced.
type SelectionResult struct {
	Members   []*EmojiCandidate
	Pinned    []PinnedSymbol
	Threshold float64
}

// SelectDistinct runs the selection engine over the ranked pool.
//
// Priority symbols are seeded first: an explicitly pinned candidate is
// honored as-is, otherwise the slot takes the most distinct candidate
// that is not confusable with the pins committed so far. Pins that are
// mutually confusable are a fatal configuration failure, reported
// before the greedy fill runs.
//
// The greedy fill then walks the pool most-distinct-first, accepting a
// candidate unless it is confusable with any accepted member, until the
// target count is reached. Exhausting the pool short of the target is
// fatal; the threshold is never relaxed silently.
func SelectDistinct(ranked []RankedCandidate, m *SimilarityMatrix, cfg Config) (*SelectionResult, error) {
	byID := make(map[string]*EmojiCandidate, len(ranked))
	for _, r := range ranked {
		byID[r.Candidate.ID()] = r.Candidate
	}

	result := &SelectionResult{Threshold: cfg.Threshold}
	accepted := make(map[string]bool)

	confusableWithAccepted := func(id string) bool {
		for _, member := range result.Members {
			if m.Similarity(member.ID(), id) >= cfg.Threshold {
				return true
			}
		}
		return false
	}

	// Explicit pins are committed first and validated pairwise, so a
	// conflict is reported before anything else happens.
	for _, symbol := range cfg.PrioritySymbols {
		id, ok := cfg.PinnedCandidates[symbol]
		if !ok {
			continue
		}
		c, known := byID[id]
		if !known {
			return nil, fmt.Errorf("pinned candidate %q for symbol %q is not in the ranked pool", id, symbol)
		}
		for _, pin := range result.Pinned {
			score := m.Similarity(pin.Candidate.ID(), id)
			if score >= cfg.Threshold {
				return nil, &PinningConflictError{
					SymbolA:    pin.Symbol,
					SymbolB:    symbol,
					EmojiA:     pin.Candidate.Emoji,
					EmojiB:     c.Emoji,
					Similarity: score,
				}
			}
		}
		result.Pinned = append(result.Pinned, PinnedSymbol{Symbol: symbol, Candidate: c})
		result.Members = append(result.Members, c)
		accepted[id] = true
	}

	// Remaining priority symbols take the most distinct candidates
	// compatible with the pins committed so far.
	for _, symbol := range cfg.PrioritySymbols {
		if _, explicit := cfg.PinnedCandidates[symbol]; explicit {
			continue
		}
		seeded := false
		for _, r := range ranked {
			id := r.Candidate.ID()
			if accepted[id] || confusableWithAccepted(id) {
				continue
			}
			result.Pinned = append(result.Pinned, PinnedSymbol{Symbol: symbol, Candidate: r.Candidate})
			result.Members = append(result.Members, r.Candidate)
			accepted[id] = true
			seeded = true
			break
		}
		if !seeded {
			return nil, &InsufficientDistinctError{
				Selected:  len(result.Members),
				Target:    cfg.TargetCount,
				Threshold: cfg.Threshold,
			}
		}
	}

	// Greedy fill, most distinct first.
	for _, r := range ranked {
		if len(result.Members) >= cfg.TargetCount {
			break
		}
		id := r.Candidate.ID()
		if accepted[id] || confusableWithAccepted(id) {
			continue
		}
		result.Members = append(result.Members, r.Candidate)
		accepted[id] = true
	}

	if len(result.Members) < cfg.TargetCount {
		return nil, &InsufficientDistinctError{
			Selected:  len(result.Members),
			Target:    cfg.TargetCount,
			Threshold: cfg.Threshold,
		}
	}
	return result, nil
}
