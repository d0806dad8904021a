package emoji58

import (
	"errors"
	"testing"
)

// selectionFixture builds a pool where "A1" and "A2" are one bit apart
// (confusable at τ=0.95) and everything else is mutually distinct.
func selectionFixture(t *testing.T) ([]RankedCandidate, *SimilarityMatrix) {
	t.Helper()
	m, candidates := buildTestMatrix(t, map[string]uint64{
		"A1": 0x0,
		"A2": 0x1,
		"B":  0x00000000FFFFFFFF,
		"C":  0xFFFF0000FFFF0000,
		"D":  0x0F0F0F0F0F0F0F0F,
	})
	return RankByDistinctiveness(candidates, m), m
}

func selectedIDs(sel *SelectionResult) map[string]bool {
	ids := make(map[string]bool, len(sel.Members))
	for _, c := range sel.Members {
		ids[c.ID()] = true
	}
	return ids
}

func TestSelectDistinctExcludesConfusablePairs(t *testing.T) {
	ranked, m := selectionFixture(t)

	cfg := DefaultConfig()
	cfg.TargetCount = 4
	cfg.PrioritySymbols = nil

	sel, err := SelectDistinct(ranked, m, cfg)
	if err != nil {
		t.Fatalf("SelectDistinct() error: %v", err)
	}
	if len(sel.Members) != 4 {
		t.Fatalf("selected %d members, want 4", len(sel.Members))
	}

	ids := selectedIDs(sel)
	if ids["A1"] && ids["A2"] {
		t.Error("both members of a confusable pair were selected")
	}

	// Hard invariant: every selected pair scores below the threshold.
	for i, a := range sel.Members {
		for _, b := range sel.Members[i+1:] {
			if score := m.Similarity(a.ID(), b.ID()); score >= cfg.Threshold {
				t.Errorf("selected pair (%s, %s) scores %v, at or above τ=%v",
					a.ID(), b.ID(), score, cfg.Threshold)
			}
		}
	}
}

func TestSelectDistinctReportsShortfall(t *testing.T) {
	ranked, m := selectionFixture(t)

	cfg := DefaultConfig()
	cfg.TargetCount = 5 // pool only supports 4 mutually distinct
	cfg.PrioritySymbols = nil

	_, err := SelectDistinct(ranked, m, cfg)
	var insufficient *InsufficientDistinctError
	if !errors.As(err, &insufficient) {
		t.Fatalf("SelectDistinct() error = %v, want InsufficientDistinctError", err)
	}
	if insufficient.Selected != 4 || insufficient.Target != 5 {
		t.Errorf("shortfall reported %d/%d, want 4/5", insufficient.Selected, insufficient.Target)
	}
	if insufficient.Threshold != cfg.Threshold {
		t.Errorf("reported threshold %v, want %v", insufficient.Threshold, cfg.Threshold)
	}
}

func TestPriorityPinningTakesMostDistinct(t *testing.T) {
	ranked, m := selectionFixture(t)

	cfg := DefaultConfig()
	cfg.TargetCount = 4
	cfg.PrioritySymbols = []string{"1", "3"}

	sel, err := SelectDistinct(ranked, m, cfg)
	if err != nil {
		t.Fatalf("SelectDistinct() error: %v", err)
	}
	if len(sel.Pinned) != 2 {
		t.Fatalf("pinned %d symbols, want 2", len(sel.Pinned))
	}

	// Independent greedy selection over just the two pin slots.
	var want []string
	for _, r := range ranked {
		ok := true
		for _, id := range want {
			if m.Similarity(id, r.Candidate.ID()) >= cfg.Threshold {
				ok = false
				break
			}
		}
		if ok {
			want = append(want, r.Candidate.ID())
		}
		if len(want) == 2 {
			break
		}
	}

	if sel.Pinned[0].Symbol != "1" || sel.Pinned[1].Symbol != "3" {
		t.Errorf("pin symbols = %q, %q, want 1, 3", sel.Pinned[0].Symbol, sel.Pinned[1].Symbol)
	}
	if sel.Pinned[0].Candidate.ID() != want[0] || sel.Pinned[1].Candidate.ID() != want[1] {
		t.Errorf("pins = %s, %s; independent greedy selection = %v",
			sel.Pinned[0].Candidate.ID(), sel.Pinned[1].Candidate.ID(), want)
	}
	// Pinned members lead the acceptance order.
	if sel.Members[0] != sel.Pinned[0].Candidate || sel.Members[1] != sel.Pinned[1].Candidate {
		t.Error("pinned candidates do not lead the acceptance order")
	}
}

func TestExplicitPinConflictIsFatal(t *testing.T) {
	ranked, m := selectionFixture(t)

	cfg := DefaultConfig()
	cfg.TargetCount = 3
	cfg.PrioritySymbols = []string{"1", "3"}
	cfg.PinnedCandidates = map[string]string{"1": "A1", "3": "A2"}

	_, err := SelectDistinct(ranked, m, cfg)
	var conflict *PinningConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("SelectDistinct() error = %v, want PinningConflictError", err)
	}
	if conflict.SymbolA != "1" || conflict.SymbolB != "3" {
		t.Errorf("conflict names symbols %q, %q, want 1, 3", conflict.SymbolA, conflict.SymbolB)
	}
}

func TestExplicitPinUnknownCandidate(t *testing.T) {
	ranked, m := selectionFixture(t)

	cfg := DefaultConfig()
	cfg.TargetCount = 3
	cfg.PrioritySymbols = []string{"1"}
	cfg.PinnedCandidates = map[string]string{"1": "NOPE"}

	if _, err := SelectDistinct(ranked, m, cfg); err == nil {
		t.Error("SelectDistinct() with unknown pinned candidate succeeded, want error")
	}
}

func TestSelectionResultIsExactlyTargetCount(t *testing.T) {
	ranked, m := selectionFixture(t)

	cfg := DefaultConfig()
	cfg.TargetCount = 3
	cfg.PrioritySymbols = []string{"1"}

	sel, err := SelectDistinct(ranked, m, cfg)
	if err != nil {
		t.Fatalf("SelectDistinct() error: %v", err)
	}
	if len(sel.Members) != cfg.TargetCount {
		t.Errorf("selected %d members, want exactly %d", len(sel.Members), cfg.TargetCount)
	}
}
