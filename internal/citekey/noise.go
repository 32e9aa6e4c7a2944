package citekey

import "strings"

// defaultNoiseWords lists generic academic terms that spuriously match the
// surname pattern in citations ("Cognitive (2009)" is not an author).
var defaultNoiseWords = []string{
	"approaches", "therapy", "psychology", "modes", "vol", "eds",
	"chapter", "section", "page", "table", "figure", "note", "press",
	"cognitive", "relational", "behavioral", "emotional", "self",
	"individual", "interpersonal", "focused", "based", "oriented",
	"and", "the", "for", "with", "from", "into", "between",
	"also", "cited", "review", "example", "well", "see", "new",
	"other", "their", "these", "those", "such", "both", "each",
	"psychotherapy", "attachment", "schema", "technique", "model",
	"clinical", "therapeutic", "treatment", "practice", "research",
	"humanistic", "emotion-focused", "self-psychology", "self-psychology:",
	"psychoanalytic", "existential", "gestalt", "integrative",
	"dynamic", "experiential", "systemic", "narrative", "dialectical",
}

// Config carries the noise-word set threaded through extraction calls.
// An explicit value rather than package state, so repeated runs with
// different learned vocabularies cannot contaminate each other.
type Config struct {
	noiseWords map[string]bool
}

// DefaultConfig returns a Config with the built-in disciplinary stop-list.
func DefaultConfig() Config {
	m := make(map[string]bool, len(defaultNoiseWords))
	for _, w := range defaultNoiseWords {
		m[w] = true
	}
	return Config{noiseWords: m}
}

// WithNoiseWords returns a copy of the config extended with additional
// noise words (lowercased). The receiver is unchanged.
func (c Config) WithNoiseWords(words []string) Config {
	m := make(map[string]bool, len(c.noiseWords)+len(words))
	for w := range c.noiseWords {
		m[w] = true
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			m[w] = true
		}
	}
	return Config{noiseWords: m}
}

// IsNoise reports whether a candidate surname is a stop-list word or too
// short to be a real surname.
func (c Config) IsNoise(surname string) bool {
	if len([]rune(surname)) <= 2 {
		return true
	}
	return c.noiseWords[strings.ToLower(surname)]
}
