package emoji58

import (
	"crypto/sha256"
	"strings"

	"github.com/mr-tron/base58"
)

// Codec encodes Base58Check addresses as emoji sequences and back. It
// only reads the immutable mapping, so a single Codec is safe for
// concurrent use.
type Codec struct {
	mapping *Mapping
}

// NewCodec returns a codec over a bound mapping.
func NewCodec(m *Mapping) *Codec {
	return &Codec{mapping: m}
}

// Encode maps each Base58 character of the address to its emoji,
// preserving order and length exactly: one character becomes one emoji.
// A character outside the alphabet fails with InvalidSymbolError and no
// partial output.
func (c *Codec) Encode(address string) (string, error) {
	var out strings.Builder
	for i := 0; i < len(address); i++ {
		if symbolIndex(address[i]) < 0 {
			return "", &InvalidSymbolError{Symbol: rune(address[i]), Pos: i}
		}
		out.WriteString(c.mapping.Symbols[string(address[i])].Emoji)
	}
	return out.String(), nil
}

// Decode inverse-maps every emoji cluster back to its Base58 symbol,
// order-preserving. Lookup is by exact identity: a cluster that is not
// a mapping value fails the whole sequence with UnknownEmojiError, even
// when it merely looks like a mapped emoji. No partial output.
func (c *Codec) Decode(encoded string) (string, error) {
	clusters := SplitClusters(encoded)

	var out strings.Builder
	out.Grow(len(clusters))
	for i, cluster := range clusters {
		symbol, ok := c.mapping.reverse[cluster]
		if !ok {
			return "", &UnknownEmojiError{Cluster: cluster, Pos: i}
		}
		out.WriteString(symbol)
	}
	return out.String(), nil
}

// ScanResult is the outcome of scanning an encoded address: the decoded
// Base58 string and whether its Base58Check checksum holds. A checksum
// mismatch is data, not an error.
type ScanResult struct {
	Address string
	Valid   bool
}

// Scan decodes an emoji sequence and validates the result against
// Base58Check. Decode failures are errors; a decoded address with a bad
// checksum is reported as Valid=false.
func (c *Codec) Scan(encoded string) (ScanResult, error) {
	address, err := c.Decode(encoded)
	if err != nil {
		return ScanResult{}, err
	}
	return ScanResult{Address: address, Valid: ValidBase58Check(address)}, nil
}

// ValidBase58Check reports whether the address carries a correct
// Base58Check checksum: the last four payload bytes must equal the
// leading bytes of the double SHA-256 of everything before them.
func ValidBase58Check(address string) bool {
	decoded, err := base58.Decode(address)
	if err != nil {
		return false
	}
	// Version byte plus four checksum bytes is the minimum.
	if len(decoded) < 5 {
		return false
	}

	payload := decoded[:len(decoded)-4]
	checksum := decoded[len(decoded)-4:]

	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])

	for i := 0; i < 4; i++ {
		if checksum[i] != second[i] {
			return false
		}
	}
	return true
}

// SplitClusters splits an emoji string into display clusters: a base
// rune plus any variation selectors, skin tone modifiers, and
// zero-width-joiner continuations attached to it. Multi-codepoint emoji
// are kept whole so mapping lookups compare full identities.
func SplitClusters(s string) []string {
	runes := []rune(s)
	var clusters []string

	for i := 0; i < len(runes); {
		start := i
		i++ // base rune

		for i < len(runes) {
			r := runes[i]
			// Variation selectors (text/emoji presentation) and skin
			// tone modifiers attach to the preceding base.
			if r == 0xFE0E || r == 0xFE0F || (r >= 0x1F3FB && r <= 0x1F3FF) {
				i++
				continue
			}
			// ZWJ joins the following rune into the same cluster.
			if r == 0x200D {
				i++
				if i < len(runes) {
					i++
				}
				continue
			}
			break
		}
		clusters = append(clusters, string(runes[start:i]))
	}
	return clusters
}
