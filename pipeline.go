package emoji58

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Pipeline runs the full selection batch: filter the corpus, fingerprint
// the survivors, build the pairwise similarity matrix, rank by
// distinctiveness, detect confusable pairs, select the target-count
// mutually distinct subset, and bind it to the Base58 alphabet. A single
// invocation processes the pool to completion; any fatal stage aborts
// the batch before a mapping exists, so persistence stays all-or-nothing.
type Pipeline struct {
	cfg Config
	log *logrus.Logger
}

// NewPipeline returns a pipeline with the given configuration. A nil
// logger falls back to the logrus standard logger.
func NewPipeline(cfg Config, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// PipelineResult bundles the batch outputs: the bound mapping, the
// ranked pool, and the confusable pair report.
type PipelineResult struct {
	Mapping     *Mapping
	Ranked      []RankedCandidate
	Confusables *ConfusableReport
	Selection   *SelectionResult
}

// Run executes the batch over an already-materialized candidate corpus.
func (p *Pipeline) Run(ctx context.Context, candidates []*EmojiCandidate) (*PipelineResult, error) {
	// The batch always binds the full alphabet; reject a mismatched
	// target before any image work happens.
	if p.cfg.TargetCount != len(Base58Alphabet) {
		return nil, fmt.Errorf("target_count %d cannot bind the %d-symbol alphabet",
			p.cfg.TargetCount, len(Base58Alphabet))
	}

	filtered := FilterCandidates(candidates, p.cfg.ExcludedCategories)
	p.log.WithFields(logrus.Fields{
		"corpus":   len(candidates),
		"filtered": len(filtered),
		"removed":  len(candidates) - len(filtered),
	}).Info("filtered candidate pool")

	pool, sets, failures := ExtractFingerprints(ctx, filtered, p.cfg)
	for _, failure := range failures {
		var extraction *ExtractionError
		if !errors.As(failure, &extraction) {
			// Not an extraction failure: the batch itself was
			// interrupted.
			return nil, failure
		}
		p.log.WithField("candidate", extraction.ID).
			WithError(extraction.Err).
			Warn("dropping candidate: glyph unusable")
	}
	p.log.WithFields(logrus.Fields{
		"fingerprinted": len(pool),
		"dropped":       len(failures),
	}).Info("extracted fingerprints")

	matrix, err := BuildSimilarityMatrix(ctx, pool, sets, p.cfg)
	if err != nil {
		return nil, err
	}
	p.log.WithField("edges", matrix.EdgeCount()).Info("built similarity matrix")

	confusables := DetectConfusables(matrix, sets, p.cfg.Threshold)
	p.log.WithFields(logrus.Fields{
		"threshold": p.cfg.Threshold,
		"pairs":     len(confusables.Pairs),
	}).Info("detected confusable pairs")

	ranked := RankByDistinctiveness(pool, matrix)

	selection, err := SelectDistinct(ranked, matrix, p.cfg)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"selected": len(selection.Members),
		"pinned":   len(selection.Pinned),
	}).Info("committed selection")

	mapping, err := BindAlphabet(selection, ranked)
	if err != nil {
		return nil, err
	}

	return &PipelineResult{
		Mapping:     mapping,
		Ranked:      ranked,
		Confusables: confusables,
		Selection:   selection,
	}, nil
}
