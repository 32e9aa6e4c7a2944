// Package match classifies citation and reference keys against the
// opposite-side key set as exact, fuzzy (year-suffix discrepancy), or
// unmatched.
package match

import "github.com/refcheck/refcheck/internal/citekey"

// Kind is the match classification. Ordering matters for aggregation:
// higher values are worse.
type Kind int

const (
	// Exact means literal key membership in the opposite set.
	Exact Kind = iota
	// Fuzzy means a year-suffix mismatch resolves to a real entry on the
	// other side.
	Fuzzy
	// None means no resolution was found.
	None
)

// String returns the report label for a kind.
func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Fuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// Result pairs the classification with the key it resolved to on the other
// side. Other is the zero Key when Kind is None.
type Result struct {
	Kind  Kind
	Other citekey.Key
}

// Citation matches an in-text citation key against the reference set.
//
// Resolution order:
//  1. exact membership
//  2. the citation carries a suffix and the bare base year is a reference
//  3. the fuzzy index holds a reference with the same base year but a
//     different year string (reference carries the suffix)
func Citation(key citekey.Key, refs *citekey.Set, idx citekey.FuzzyIndex) Result {
	return resolve(key, refs, idx)
}

// Reference is the mirror operation: a bibliography key against the
// citation set and its fuzzy index.
func Reference(key citekey.Key, citations *citekey.Set, idx citekey.FuzzyIndex) Result {
	return resolve(key, citations, idx)
}

func resolve(key citekey.Key, other *citekey.Set, idx citekey.FuzzyIndex) Result {
	if other.Contains(key) {
		return Result{Kind: Exact, Other: key}
	}

	base := key.BaseYear()
	if base != key.Year {
		baseKey := citekey.Key{Surname: key.Surname, Year: base}
		if other.Contains(baseKey) {
			return Result{Kind: Fuzzy, Other: baseKey}
		}
	}

	for _, cand := range idx[citekey.Key{Surname: key.Surname, Year: base}] {
		if cand.Year != key.Year {
			return Result{Kind: Fuzzy, Other: cand}
		}
	}

	return Result{Kind: None}
}

// Worst aggregates the classification of a multi-key block: a block is only
// clean when every key resolves exactly, so None beats Fuzzy beats Exact.
func Worst(kinds ...Kind) Kind {
	worst := Exact
	for _, k := range kinds {
		if k > worst {
			worst = k
		}
	}
	return worst
}
