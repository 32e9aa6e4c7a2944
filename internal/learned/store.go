// Package learned loads the durable pattern store: noise words and
// cross-matches confirmed by earlier external semantic reviews. The check
// engine only reads the store; the learn command group is the separate
// confirmation workflow that appends to it.
package learned

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurrentVersion is the store schema version written on save.
const CurrentVersion = 1

// CrossMatch records a confirmed pairing of a citation and a reference
// that differ in year suffix.
type CrossMatch struct {
	Author   string `json:"author"`
	CiteYear string `json:"cite_year"`
	RefYear  string `json:"ref_year"`
	Reason   string `json:"reason"`
}

// Store is the file-backed learned state. Loaded once at startup and
// applied additively for the run; never mutated by the engine.
type Store struct {
	Version      int          `json:"version"`
	NoiseWords   []string     `json:"noise_words"`
	CrossMatches []CrossMatch `json:"cross_matches"`
}

// Load reads the store from path. A missing or malformed file degrades to
// an empty store: learned patterns must never abort a run.
func Load(path string) *Store {
	empty := &Store{Version: CurrentVersion, NoiseWords: []string{}, CrossMatches: []CrossMatch{}}
	if path == "" {
		return empty
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return empty
	}

	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return empty
	}
	if s.Version == 0 {
		s.Version = CurrentVersion
	}
	if s.NoiseWords == nil {
		s.NoiseWords = []string{}
	}
	if s.CrossMatches == nil {
		s.CrossMatches = []CrossMatch{}
	}
	return &s
}

// Save writes the store to path. Only the confirmation workflow calls
// this, never the engine.
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding learned patterns: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing learned patterns: %w", err)
	}
	return nil
}

// AutoMatch is a cross-match that fired against the current run.
type AutoMatch struct {
	Citation  string
	Reference string
	Reason    string
}

// keyLine parses a "Surname (Year)" report line.
var keyLine = regexp.MustCompile(`^(\w[\w-]*)\s*\((\d{4}[a-z]?)\)`)

// ApplyCrossMatches checks every confirmed cross-match against the current
// run's unmatched citations and uncited references. A record fires only
// when both sides are present in this document; it never invents a match.
func (s *Store) ApplyCrossMatches(unmatchedCitations, uncitedRefs []string) []AutoMatch {
	if len(s.CrossMatches) == 0 {
		return nil
	}

	type lookupKey struct{ author, year string }
	citeLookup := make(map[lookupKey]string)
	for _, c := range unmatchedCitations {
		if m := keyLine.FindStringSubmatch(c); m != nil {
			citeLookup[lookupKey{strings.ToLower(m[1]), m[2]}] = c
		}
	}
	refLookup := make(map[lookupKey]string)
	for _, r := range uncitedRefs {
		if m := keyLine.FindStringSubmatch(r); m != nil {
			refLookup[lookupKey{strings.ToLower(m[1]), m[2]}] = r
		}
	}

	var fired []AutoMatch
	for _, cm := range s.CrossMatches {
		author := strings.ToLower(cm.Author)
		cite, okC := citeLookup[lookupKey{author, cm.CiteYear}]
		ref, okR := refLookup[lookupKey{author, cm.RefYear}]
		if okC && okR {
			reason := cm.Reason
			if reason == "" {
				reason = "learned from previous verification"
			}
			fired = append(fired, AutoMatch{Citation: cite, Reference: ref, Reason: reason})
		}
	}
	return fired
}
