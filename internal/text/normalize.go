// Package text provides typographic normalization for manuscript text.
//
// Word processors substitute curly quotes, unicode dashes, and directional
// marks that break naive pattern matching. Two normalizers are provided: one
// for building citation key sets (may change string length) and one for span
// arithmetic (strictly rune-length-preserving).
package text

import "strings"

// setReplacer folds typographic variants and deletes invisible marks.
// Deleting marks changes string length, so output is only safe for
// set-building, never for character-offset work.
var setReplacer = strings.NewReplacer(
	"‘", "'", "’", "'", // curly single quotes
	"“", `"`, "”", `"`, // curly double quotes
	"‐", "-", "‑", "-", // hyphen, non-breaking hyphen
	"‒", "-", "–", "-", // figure dash, en-dash
	"‏", "", "‎", "", "​", "", // directional/zero-width marks
)

// NormalizeForSet canonicalizes quotes and dashes and removes invisible
// marks. The result may be shorter than the input.
func NormalizeForSet(s string) string {
	return setReplacer.Replace(s)
}

// NormalizeForSpan canonicalizes quotes and dashes with rune-for-rune
// substitutions only. Invisible marks stay in place, so the character
// (rune) at index i of the output corresponds to the character at index i
// of the input. Required before any span-producing recognizer runs.
func NormalizeForSpan(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '‘', '’':
			return '\''
		case '“', '”':
			return '"'
		case '‐', '‑', '‒', '–':
			return '-'
		}
		return r
	}, s)
}

// RuneIndex maps byte offsets in s to rune offsets. Regexp matches report
// byte positions; the document model addresses characters.
type RuneIndex struct {
	byteToRune map[int]int
	runes      int
}

// NewRuneIndex builds the offset table for s.
func NewRuneIndex(s string) *RuneIndex {
	idx := &RuneIndex{byteToRune: make(map[int]int, len(s)+1)}
	n := 0
	for b := range s {
		idx.byteToRune[b] = n
		n++
	}
	idx.byteToRune[len(s)] = n
	idx.runes = n
	return idx
}

// Rune converts a byte offset to a rune offset. Offsets that do not fall on
// a rune boundary return the offset of the containing rune.
func (ri *RuneIndex) Rune(byteOff int) int {
	if r, ok := ri.byteToRune[byteOff]; ok {
		return r
	}
	// Walk back to the nearest boundary.
	for b := byteOff - 1; b >= 0; b-- {
		if r, ok := ri.byteToRune[b]; ok {
			return r
		}
	}
	return 0
}

// Len returns the rune length of the indexed string.
func (ri *RuneIndex) Len() int { return ri.runes }
