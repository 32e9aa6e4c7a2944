package citekey

import "sort"

// Set is a collection of keys unique by (surname, year). One instance holds
// the in-text citations, another the bibliography entries.
type Set struct {
	keys map[Key]bool
}

// NewSet returns an empty key set.
func NewSet() *Set {
	return &Set{keys: make(map[Key]bool)}
}

// Add inserts a key, normalizing the surname. Duplicates collapse.
func (s *Set) Add(k Key) {
	k.Surname = NormalizeSurname(k.Surname)
	s.keys[k] = true
}

// Contains reports exact key membership.
func (s *Set) Contains(k Key) bool {
	return s.keys[k]
}

// Len returns the number of unique keys.
func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns all keys sorted by surname then year, for deterministic
// report output.
func (s *Set) Keys() []Key {
	out := make([]Key, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Surname != out[j].Surname {
			return out[i].Surname < out[j].Surname
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// Strings renders the sorted keys as "Surname (Year)" strings.
func (s *Set) Strings() []string {
	keys := s.Keys()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

// FuzzyIndex maps (surname, base year) to every concrete key sharing that
// base year, enabling suffix-discrepancy resolution in both directions.
// Built once per Set and read-only afterward.
type FuzzyIndex map[Key][]Key

// NewFuzzyIndex builds the index for a set. Candidate lists follow the
// Set's sorted key order, so lookups are deterministic.
func NewFuzzyIndex(s *Set) FuzzyIndex {
	idx := make(FuzzyIndex)
	for _, k := range s.Keys() {
		base := Key{Surname: k.Surname, Year: k.BaseYear()}
		idx[base] = append(idx[base], k)
	}
	return idx
}
