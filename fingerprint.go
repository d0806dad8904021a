package emoji58

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/wbrown/emoji58/imageutil"
	"github.com/wbrown/emoji58/phash"
)

// FingerprintSet holds the four perceptual hash fingerprints of one
// candidate's reference glyph. Computed once per candidate and reused
// across every pairwise comparison.
type FingerprintSet struct {
	AHash phash.Hash
	DHash phash.Hash
	PHash phash.Hash
	WHash phash.Hash
}

// hashes returns the fingerprints in their fixed combination order.
func (f *FingerprintSet) hashes() [4]phash.Hash {
	return [4]phash.Hash{f.AHash, f.DHash, f.PHash, f.WHash}
}

// Similarity is the equal-weight mean of the per-hash inverted
// normalized Hamming similarities, in [0, 1] with 1 meaning identical.
func (f *FingerprintSet) Similarity(other *FingerprintSet) float64 {
	a, b := f.hashes(), other.hashes()
	var sum float64
	for i := range a {
		sum += a[i].Similarity(b[i])
	}
	return sum / float64(len(a))
}

// Confusable reports whether the combined similarity reaches the
// threshold. It prunes early: once the running mean cannot reach the
// threshold even if every remaining hash were identical, the pair is
// classified as distinct without consulting the remaining hashes. The
// sums accumulate in the same order as Similarity, so the two always
// agree on the threshold.
func (f *FingerprintSet) Confusable(other *FingerprintSet, threshold float64) bool {
	a, b := f.hashes(), other.hashes()
	n := float64(len(a))
	var sum float64
	for i := range a {
		sum += a[i].Similarity(b[i])
		remaining := float64(len(a) - i - 1)
		if (sum+remaining)/n < threshold {
			return false
		}
	}
	return true
}

// ExtractFingerprint computes a candidate's FingerprintSet from its
// reference glyph image, normalized to the canonical square frame. Pure
// function of the image; an unreadable or undecodable asset yields an
// ExtractionError.
func ExtractFingerprint(c *EmojiCandidate, glyphSize int) (*FingerprintSet, error) {
	img, err := imageutil.LoadImage(c.ImagePath)
	if err != nil {
		return nil, &ExtractionError{ID: c.ID(), Err: err}
	}
	return FingerprintImage(img, glyphSize), nil
}

// FingerprintImage computes the FingerprintSet of an already-decoded
// glyph image.
func FingerprintImage(img *imageutil.RGBAImage, glyphSize int) *FingerprintSet {
	normalized := imageutil.Normalize(img, glyphSize)
	return &FingerprintSet{
		AHash: phash.Average(normalized),
		DHash: phash.Difference(normalized),
		PHash: phash.Perceptual(normalized),
		WHash: phash.Wavelet(normalized),
	}
}

// ExtractFingerprints computes fingerprints for all candidates in
// parallel. Candidates whose extraction fails are returned separately as
// ExtractionErrors; they are dropped from the pool, never defaulted.
// The returned candidate slice preserves the input order.
func ExtractFingerprints(ctx context.Context, candidates []*EmojiCandidate, cfg Config) (
	[]*EmojiCandidate, map[string]*FingerprintSet, []error) {

	type result struct {
		set *FingerprintSet
		err error
	}

	// Each worker writes only its own slot.
	results := make([]result, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workerCount())

	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			set, err := ExtractFingerprint(c, cfg.GlyphSize)
			results[i] = result{set: set, err: err}
			return nil
		})
	}
	// Extraction failures are collected, not propagated, so Wait only
	// reports context cancellation.
	if err := g.Wait(); err != nil {
		return nil, nil, []error{err}
	}

	kept := make([]*EmojiCandidate, 0, len(candidates))
	sets := make(map[string]*FingerprintSet, len(candidates))
	var failures []error
	for i, r := range results {
		if r.err != nil {
			failures = append(failures, r.err)
			continue
		}
		kept = append(kept, candidates[i])
		sets[candidates[i].ID()] = r.set
	}

	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Error() < failures[j].Error()
	})
	return kept, sets, failures
}
