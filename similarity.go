package emoji58

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SimilarityEdge is an unordered candidate pair with its combined
// similarity score. A is always lexicographically smaller than B.
type SimilarityEdge struct {
	A     string  `json:"a"`
	B     string  `json:"b"`
	Score float64 `json:"similarity"`
}

// SimilarityMatrix holds the pairwise similarity of every candidate pair
// as a packed upper triangle over a fixed candidate ordering. Immutable
// once built.
type SimilarityMatrix struct {
	ids    []string
	index  map[string]int
	scores []float64
}

// triangleIndex maps an (i, j) pair with i < j into the packed upper
// triangle.
func (m *SimilarityMatrix) triangleIndex(i, j int) int {
	n := len(m.ids)
	return i*(2*n-i-1)/2 + (j - i - 1)
}

// Len returns the number of candidates covered by the matrix.
func (m *SimilarityMatrix) Len() int {
	return len(m.ids)
}

// EdgeCount returns the number of pairwise edges, C(n, 2).
func (m *SimilarityMatrix) EdgeCount() int {
	n := len(m.ids)
	return n * (n - 1) / 2
}

// Similarity returns the combined similarity of two candidates. The
// matrix is symmetric; argument order does not matter. A candidate is
// maximally similar to itself.
func (m *SimilarityMatrix) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	i, okA := m.index[a]
	j, okB := m.index[b]
	if !okA || !okB {
		return 0.0
	}
	if i > j {
		i, j = j, i
	}
	return m.scores[m.triangleIndex(i, j)]
}

// Edges materializes all C(n, 2) edges sorted by descending similarity,
// most confusable first. Ties order by candidate IDs for reproducibility.
func (m *SimilarityMatrix) Edges() []SimilarityEdge {
	edges := make([]SimilarityEdge, 0, m.EdgeCount())
	for i := 0; i < len(m.ids); i++ {
		for j := i + 1; j < len(m.ids); j++ {
			edges = append(edges, SimilarityEdge{
				A:     m.ids[i],
				B:     m.ids[j],
				Score: m.scores[m.triangleIndex(i, j)],
			})
		}
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].Score != edges[b].Score {
			return edges[a].Score > edges[b].Score
		}
		if edges[a].A != edges[b].A {
			return edges[a].A < edges[b].A
		}
		return edges[a].B < edges[b].B
	})
	return edges
}

// BuildSimilarityMatrix computes the combined similarity for every pair
// of fingerprinted candidates. The work is row-parallel: each worker
// owns complete rows of the upper triangle, so no two workers touch the
// same slot. Candidates without a fingerprint (failed extraction) must
// already be filtered out.
func BuildSimilarityMatrix(ctx context.Context, candidates []*EmojiCandidate,
	sets map[string]*FingerprintSet, cfg Config) (*SimilarityMatrix, error) {

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := sets[c.ID()]; ok {
			ids = append(ids, c.ID())
		}
	}
	sort.Strings(ids)

	n := len(ids)
	m := &SimilarityMatrix{
		ids:    ids,
		index:  make(map[string]int, n),
		scores: make([]float64, n*(n-1)/2),
	}
	for i, id := range ids {
		m.index[id] = i
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workerCount())

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rowSet := sets[ids[i]]
			for j := i + 1; j < n; j++ {
				m.scores[m.triangleIndex(i, j)] = rowSet.Similarity(sets[ids[j]])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}
