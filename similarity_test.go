package emoji58

import (
	"context"
	"math"
	"testing"

	"github.com/wbrown/emoji58/phash"
)

// uniformSet builds a FingerprintSet whose four hashes all carry the
// same bit pattern, so the combined similarity of two sets equals the
// single-hash similarity of their patterns.
func uniformSet(bits uint64) *FingerprintSet {
	h := phash.Hash(bits)
	return &FingerprintSet{AHash: h, DHash: h, PHash: h, WHash: h}
}

// testPool builds candidates plus fingerprint sets from ID -> bit
// pattern pairs.
func testPool(patterns map[string]uint64) ([]*EmojiCandidate, map[string]*FingerprintSet) {
	var candidates []*EmojiCandidate
	sets := make(map[string]*FingerprintSet, len(patterns))
	for id, bits := range patterns {
		candidates = append(candidates, &EmojiCandidate{
			Codepoint: id,
			Emoji:     id,
			Name:      id,
			Category:  CategoryPictograph,
		})
		sets[id] = uniformSet(bits)
	}
	return candidates, sets
}

func buildTestMatrix(t *testing.T, patterns map[string]uint64) (*SimilarityMatrix, []*EmojiCandidate) {
	t.Helper()
	candidates, sets := testPool(patterns)
	cfg := DefaultConfig()
	cfg.Workers = 2
	m, err := BuildSimilarityMatrix(context.Background(), candidates, sets, cfg)
	if err != nil {
		t.Fatalf("BuildSimilarityMatrix() error: %v", err)
	}
	return m, candidates
}

func TestFingerprintSetSimilarity(t *testing.T) {
	identical := uniformSet(0xABCD).Similarity(uniformSet(0xABCD))
	if identical != 1.0 {
		t.Errorf("identical sets similarity = %v, want 1.0", identical)
	}

	// Four differing bits per hash: 1 - 4/64 on every algorithm.
	got := uniformSet(0).Similarity(uniformSet(0xF))
	want := 1.0 - 4.0/64.0
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("similarity = %v, want %v", got, want)
	}
}

func TestFingerprintSetConfusable(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want bool
	}{
		{"identical", 0x1234, 0x1234, true},
		{"three bits apart", 0, 0x7, true},  // 0.953 per hash
		{"four bits apart", 0, 0xF, false},  // 0.9375 per hash
		{"opposite", 0, ^uint64(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniformSet(tt.a).Confusable(uniformSet(tt.b), 0.95)
			if got != tt.want {
				t.Errorf("Confusable(%#x, %#x) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestConfusableAgreesWithSimilarity(t *testing.T) {
	// The prune must never change the classification: for every pair,
	// Confusable is exactly Similarity >= threshold. The second case
	// sits just above the threshold despite every individual hash but
	// one falling below it (mean (3*0.9375 + 1)/4 = 0.953125).
	tests := []struct {
		name string
		a, b *FingerprintSet
	}{
		{
			"clearly distinct",
			&FingerprintSet{AHash: 0, DHash: 0, PHash: 0, WHash: 0x1234},
			&FingerprintSet{
				AHash: phash.Hash(0x00000000FFFFFFFF),
				DHash: phash.Hash(0x00000000FFFFFFFF),
				PHash: phash.Hash(0x00000000FFFFFFFF),
				WHash: 0x1234,
			},
		},
		{
			"three weak hashes lifted by one identical",
			&FingerprintSet{AHash: 0, DHash: 0, PHash: 0, WHash: 0x1234},
			&FingerprintSet{AHash: 0xF, DHash: 0xF, PHash: 0xF, WHash: 0x1234},
		},
		{
			"just below threshold",
			&FingerprintSet{AHash: 0, DHash: 0, PHash: 0, WHash: 0},
			&FingerprintSet{AHash: 0xF, DHash: 0xF, PHash: 0x7, WHash: 0x7},
		},
		{
			"identical",
			uniformSet(0xABCD),
			uniformSet(0xABCD),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := tt.a.Similarity(tt.b) >= 0.95
			if got := tt.a.Confusable(tt.b, 0.95); got != want {
				t.Errorf("Confusable() = %v, Similarity() = %v (threshold 0.95)",
					got, tt.a.Similarity(tt.b))
			}
		})
	}
}

func TestDetectConfusablesMatchesMatrixThreshold(t *testing.T) {
	// A and B disagree on every per-hash comparison but the last, yet
	// their mean reaches the threshold; the detector must still report
	// them. C is far from both.
	sets := map[string]*FingerprintSet{
		"A": {AHash: 0, DHash: 0, PHash: 0, WHash: 0x1234},
		"B": {AHash: 0xF, DHash: 0xF, PHash: 0xF, WHash: 0x1234},
		"C": uniformSet(^uint64(0) >> 16),
	}
	var candidates []*EmojiCandidate
	for id := range sets {
		candidates = append(candidates, &EmojiCandidate{
			Codepoint: id, Emoji: id, Name: id, Category: CategoryPictograph,
		})
	}

	cfg := DefaultConfig()
	m, err := BuildSimilarityMatrix(context.Background(), candidates, sets, cfg)
	if err != nil {
		t.Fatal(err)
	}

	report := DetectConfusables(m, sets, cfg.Threshold)
	for _, pair := range [][2]string{{"A", "B"}, {"A", "C"}, {"B", "C"}} {
		want := m.Similarity(pair[0], pair[1]) >= cfg.Threshold
		if got := report.Contains(pair[0], pair[1]); got != want {
			t.Errorf("report.Contains(%s, %s) = %v, matrix score %v against threshold %v",
				pair[0], pair[1], got, m.Similarity(pair[0], pair[1]), cfg.Threshold)
		}
	}
	if !report.Contains("A", "B") {
		t.Error("pair at mean 0.953125 missing from the report")
	}
}

func TestMatrixInvariants(t *testing.T) {
	m, _ := buildTestMatrix(t, map[string]uint64{
		"A": 0x0,
		"B": 0xFF,
		"C": 0xFFFF,
		"D": 0xFFFFFF,
	})

	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}
	// Exactly C(4,2) edges.
	if m.EdgeCount() != 6 {
		t.Errorf("EdgeCount() = %d, want 6", m.EdgeCount())
	}
	if got := len(m.Edges()); got != 6 {
		t.Errorf("len(Edges()) = %d, want 6", got)
	}

	// Symmetry and self-similarity.
	if m.Similarity("A", "B") != m.Similarity("B", "A") {
		t.Error("matrix is not symmetric")
	}
	if m.Similarity("C", "C") != 1.0 {
		t.Error("self-similarity is not 1.0")
	}

	// A and B differ by 8 bits on every hash.
	want := 1.0 - 8.0/64.0
	if got := m.Similarity("A", "B"); math.Abs(got-want) > 1e-12 {
		t.Errorf("Similarity(A, B) = %v, want %v", got, want)
	}
}

func TestEdgesSortedMostSimilarFirst(t *testing.T) {
	m, _ := buildTestMatrix(t, map[string]uint64{
		"A": 0x0,
		"B": 0x1,        // one bit from A
		"C": 0xFFFFFFFF, // far from both
	})

	edges := m.Edges()
	if edges[0].A != "A" || edges[0].B != "B" {
		t.Errorf("most similar edge = (%s, %s), want (A, B)", edges[0].A, edges[0].B)
	}
	for i := 1; i < len(edges); i++ {
		if edges[i].Score > edges[i-1].Score {
			t.Errorf("edges not sorted by descending similarity at %d", i)
		}
	}
}

func TestMatrixSkipsUnfingerprintedCandidates(t *testing.T) {
	candidates, sets := testPool(map[string]uint64{"A": 0, "B": 0xFF})
	candidates = append(candidates, &EmojiCandidate{Codepoint: "Z", Name: "failed"})

	cfg := DefaultConfig()
	m, err := BuildSimilarityMatrix(context.Background(), candidates, sets, cfg)
	if err != nil {
		t.Fatalf("BuildSimilarityMatrix() error: %v", err)
	}
	// No edge touches the candidate that failed extraction.
	if m.Len() != 2 || m.EdgeCount() != 1 {
		t.Errorf("matrix covers %d candidates with %d edges, want 2 and 1", m.Len(), m.EdgeCount())
	}
}
