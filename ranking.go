package emoji58

import (
	"sort"
)

// RankedCandidate pairs a candidate with its distinctiveness score: its
// mean similarity to every other pool member. Lower is more distinct.
type RankedCandidate struct {
	Candidate *EmojiCandidate
	Score     float64
}

// byDistinctiveness orders candidates most distinct first. Ties prefer
// the rarer category (diversity bias), then the lexicographically
// smaller canonical ID, so repeated runs over the same pool produce the
// same order.
type byDistinctiveness struct {
	ranked        []RankedCandidate
	categoryCount map[string]int
}

func (b byDistinctiveness) Len() int      { return len(b.ranked) }
func (b byDistinctiveness) Swap(i, j int) { b.ranked[i], b.ranked[j] = b.ranked[j], b.ranked[i] }
func (b byDistinctiveness) Less(i, j int) bool {
	ri, rj := b.ranked[i], b.ranked[j]
	if ri.Score != rj.Score {
		return ri.Score < rj.Score
	}
	ci := b.categoryCount[ri.Candidate.Category]
	cj := b.categoryCount[rj.Candidate.Category]
	if ci != cj {
		return ci < cj
	}
	return ri.Candidate.ID() < rj.Candidate.ID()
}

// RankByDistinctiveness computes each candidate's distinctiveness score
// from the full similarity matrix and returns the pool ordered most
// distinct first. Candidates not present in the matrix are skipped.
func RankByDistinctiveness(candidates []*EmojiCandidate, m *SimilarityMatrix) []RankedCandidate {
	categoryCount := make(map[string]int)
	for _, c := range candidates {
		categoryCount[c.Category]++
	}

	ranked := make([]RankedCandidate, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := m.index[c.ID()]; !ok {
			continue
		}
		ranked = append(ranked, RankedCandidate{
			Candidate: c,
			Score:     meanSimilarity(c.ID(), m),
		})
	}

	sort.Sort(byDistinctiveness{ranked: ranked, categoryCount: categoryCount})
	return ranked
}

// meanSimilarity averages the candidate's similarity over all edges
// touching it.
func meanSimilarity(id string, m *SimilarityMatrix) float64 {
	if m.Len() < 2 {
		return 0.0
	}
	var sum float64
	for _, other := range m.ids {
		if other == id {
			continue
		}
		sum += m.Similarity(id, other)
	}
	return sum / float64(m.Len()-1)
}
