package emoji58

import (
	"strings"
)

// pictographRanges are the Unicode ranges accepted by the text
// extraction boundary. External symbol sources (OCR output, chat
// messages) are filtered through these before decoding, dropping
// letters, punctuation, and whitespace while preserving order.
var pictographRanges = [][2]rune{
	{0x1F000, 0x1F02F}, // Mahjong tiles, dominoes
	{0x1F0A0, 0x1F0FF}, // Playing cards
	{0x1F300, 0x1FAFF}, // Pictographs through extended symbols
	{0x2600, 0x27BF},   // Miscellaneous symbols, dingbats
	{0x2B50, 0x2B50},   // Star
	{0x2764, 0x2764},   // Red heart
	{0x231A, 0x231B},   // Watch, hourglass
	{0x23E9, 0x23F3},   // Media controls
	{0x23F8, 0x23FA},   // Pause, stop
	{0xFE0E, 0xFE0F},   // Variation selectors
	{0x200D, 0x200D},   // Zero-width joiner
	{0x1F3FB, 0x1F3FF}, // Skin tone modifiers
}

// isPictograph reports whether the rune belongs to the pictograph
// ranges.
func isPictograph(r rune) bool {
	for _, rng := range pictographRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// ExtractPictographs returns the order-preserving concatenation of all
// pictographic runes in the text. The result may still contain emoji
// outside the mapping; Decode decides whether the sequence is an
// address.
func ExtractPictographs(text string) string {
	var out strings.Builder
	for _, r := range text {
		if isPictograph(r) {
			out.WriteRune(r)
		}
	}
	return out.String()
}
