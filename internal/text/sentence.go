package text

import "regexp"

// Sentence boundary: terminal punctuation, whitespace, then a capital.
// Deliberately loose; abbreviations like "et al." produce occasional
// over-splits that downstream consumers tolerate.
var sentenceBoundary = regexp.MustCompile(`([.!?])\s+([A-Z])`)

// SplitSentences splits paragraph text into sentences. The boundary
// punctuation stays with the preceding sentence.
func SplitSentences(paragraph string) []string {
	if paragraph == "" {
		return nil
	}

	var sentences []string
	rest := paragraph
	for {
		loc := sentenceBoundary.FindStringSubmatchIndex(rest)
		if loc == nil {
			break
		}
		// loc[3] is the end of the terminal punctuation group.
		sentences = append(sentences, rest[:loc[3]])
		// loc[4] is the start of the capital beginning the next sentence.
		rest = rest[loc[4]:]
	}
	if rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}
