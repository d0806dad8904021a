package emoji58

import (
	"fmt"
)

// ExtractionError reports that a candidate's glyph image could not be
// loaded or decoded. The candidate is dropped from the pool; the batch
// continues.
type ExtractionError struct {
	ID  string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("fingerprint extraction failed for %s: %v", e.ID, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InsufficientDistinctError reports that the selection engine exhausted
// the candidate pool before reaching the target count. The batch aborts
// and no mapping is persisted; the operator must widen the pool or lower
// the threshold explicitly.
type InsufficientDistinctError struct {
	Selected  int
	Target    int
	Threshold float64
}

func (e *InsufficientDistinctError) Error() string {
	return fmt.Sprintf(
		"only %d of %d required mutually distinct candidates at threshold %.3f (short by %d)",
		e.Selected, e.Target, e.Threshold, e.Target-e.Selected)
}

// PinningConflictError reports that two pinned candidates are mutually
// confusable. Surfaced before the greedy fill runs; never silently
// substituted.
type PinningConflictError struct {
	SymbolA    string
	SymbolB    string
	EmojiA     string
	EmojiB     string
	Similarity float64
}

func (e *PinningConflictError) Error() string {
	return fmt.Sprintf(
		"pinned candidates for symbols %q and %q are confusable (%s vs %s, similarity %.3f)",
		e.SymbolA, e.SymbolB, e.EmojiA, e.EmojiB, e.Similarity)
}

// InvalidSymbolError reports an encode input character outside the
// Base58 alphabet.
type InvalidSymbolError struct {
	Symbol rune
	Pos    int
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("invalid symbol %q at position %d: not in the Base58 alphabet", e.Symbol, e.Pos)
}

// UnknownEmojiError reports a decode input cluster that is not a value of
// the mapping. Lookup is by exact identity; visually similar emoji do
// not match.
type UnknownEmojiError struct {
	Cluster string
	Pos     int
}

func (e *UnknownEmojiError) Error() string {
	return fmt.Sprintf("unknown emoji %q at position %d: not in the mapping", e.Cluster, e.Pos)
}
