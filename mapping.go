package emoji58

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Base58Alphabet is the Base58Check symbol set in its fixed order. It
// deliberately omits 0, O, I, and l.
const Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// symbolIndex returns the alphabet position of a symbol, or -1 when the
// byte is not a Base58 symbol.
func symbolIndex(b byte) int {
	return int(base58Decode[b])
}

// base58Decode maps a byte to its alphabet index, -1 for non-members.
var base58Decode [256]int8

func init() {
	for i := range base58Decode {
		base58Decode[i] = -1
	}
	for i := 0; i < len(Base58Alphabet); i++ {
		base58Decode[Base58Alphabet[i]] = int8(i)
	}
}

// MappingEntry is the emoji bound to one Base58 symbol.
type MappingEntry struct {
	Emoji           string  `json:"emoji"`
	Name            string  `json:"name"`
	Codepoint       string  `json:"codepoint"`
	Distinctiveness float64 `json:"distinctiveness"`
}

// Mapping is the bijection between the 58 Base58 symbols and the
// selected emoji: exactly one emoji per symbol, no symbol or emoji
// reused. It is the pipeline's only persisted artifact and is treated
// as immutable once loaded; replacing it means producing a new artifact,
// not patching entries.
type Mapping struct {
	Alphabet string                  `json:"base58_alphabet"`
	Symbols  map[string]MappingEntry `json:"mapping"`

	reverse map[string]string
}

// BindAlphabet deterministically binds the selection to the alphabet:
// pinned symbols take their pinned candidates, then the remaining
// symbols in alphabet order take the remaining selected emoji in
// acceptance order. Distinctiveness scores are carried into the
// artifact for the report surface.
func BindAlphabet(sel *SelectionResult, ranked []RankedCandidate) (*Mapping, error) {
	if len(sel.Members) != len(Base58Alphabet) {
		return nil, fmt.Errorf("selection has %d members, the alphabet needs %d",
			len(sel.Members), len(Base58Alphabet))
	}

	scores := make(map[string]float64, len(ranked))
	for _, r := range ranked {
		scores[r.Candidate.ID()] = r.Score
	}

	entry := func(c *EmojiCandidate) MappingEntry {
		return MappingEntry{
			Emoji:           c.Emoji,
			Name:            c.Name,
			Codepoint:       c.Codepoint,
			Distinctiveness: scores[c.ID()],
		}
	}

	m := &Mapping{
		Alphabet: Base58Alphabet,
		Symbols:  make(map[string]MappingEntry, len(Base58Alphabet)),
	}

	pinnedCandidates := make(map[string]bool, len(sel.Pinned))
	for _, pin := range sel.Pinned {
		m.Symbols[pin.Symbol] = entry(pin.Candidate)
		pinnedCandidates[pin.Candidate.ID()] = true
	}

	remaining := make([]*EmojiCandidate, 0, len(sel.Members)-len(sel.Pinned))
	for _, c := range sel.Members {
		if !pinnedCandidates[c.ID()] {
			remaining = append(remaining, c)
		}
	}

	next := 0
	for i := 0; i < len(Base58Alphabet); i++ {
		symbol := string(Base58Alphabet[i])
		if _, pinned := m.Symbols[symbol]; pinned {
			continue
		}
		m.Symbols[symbol] = entry(remaining[next])
		next++
	}

	if err := m.buildReverse(); err != nil {
		return nil, err
	}
	return m, nil
}

// buildReverse constructs the emoji-to-symbol index and verifies the
// bijection invariant.
func (m *Mapping) buildReverse() error {
	if m.Alphabet != Base58Alphabet {
		return fmt.Errorf("mapping alphabet %q does not match the Base58 alphabet", m.Alphabet)
	}
	if len(m.Symbols) != len(Base58Alphabet) {
		return fmt.Errorf("mapping has %d symbols, expected %d", len(m.Symbols), len(Base58Alphabet))
	}

	m.reverse = make(map[string]string, len(m.Symbols))
	for i := 0; i < len(Base58Alphabet); i++ {
		symbol := string(Base58Alphabet[i])
		e, ok := m.Symbols[symbol]
		if !ok {
			return fmt.Errorf("mapping is missing symbol %q", symbol)
		}
		if prev, dup := m.reverse[e.Emoji]; dup {
			return fmt.Errorf("emoji %q bound to both %q and %q", e.Emoji, prev, symbol)
		}
		m.reverse[e.Emoji] = symbol
	}
	return nil
}

// Entry returns the mapping entry for a symbol.
func (m *Mapping) Entry(symbol string) (MappingEntry, bool) {
	e, ok := m.Symbols[symbol]
	return e, ok
}

// Save writes the mapping artifact atomically: the JSON is written to a
// temporary file in the target directory and renamed into place, so a
// failed batch never leaves a partial mapping behind.
func (m *Mapping) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshalling mapping: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mapping-*.json")
	if err != nil {
		return fmt.Errorf("error creating temp mapping file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing mapping: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing mapping file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error committing mapping file: %w", err)
	}
	return nil
}

// LoadMapping reads a persisted mapping artifact and verifies the
// bijection invariant before returning it.
func LoadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading mapping: %w", err)
	}

	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("error unmarshalling mapping: %w", err)
	}
	if err := m.buildReverse(); err != nil {
		return nil, err
	}
	return &m, nil
}
