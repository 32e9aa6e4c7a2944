package match

import (
	"testing"

	"github.com/refcheck/refcheck/internal/citekey"
)

func buildSet(keys ...citekey.Key) (*citekey.Set, citekey.FuzzyIndex) {
	s := citekey.NewSet()
	for _, k := range keys {
		s.Add(k)
	}
	return s, citekey.NewFuzzyIndex(s)
}

func TestCitation(t *testing.T) {
	refs, idx := buildSet(
		citekey.Key{Surname: "Freud", Year: "1912"},
		citekey.Key{Surname: "Klein", Year: "1946a"},
		citekey.Key{Surname: "Bion", Year: "1962"},
	)

	tests := []struct {
		name      string
		key       citekey.Key
		wantKind  Kind
		wantOther citekey.Key
	}{
		{
			name:      "exact",
			key:       citekey.Key{Surname: "Freud", Year: "1912"},
			wantKind:  Exact,
			wantOther: citekey.Key{Surname: "Freud", Year: "1912"},
		},
		{
			name:      "citation suffix resolves to bare reference",
			key:       citekey.Key{Surname: "Freud", Year: "1912a"},
			wantKind:  Fuzzy,
			wantOther: citekey.Key{Surname: "Freud", Year: "1912"},
		},
		{
			name:      "bare citation resolves to suffixed reference",
			key:       citekey.Key{Surname: "Klein", Year: "1946"},
			wantKind:  Fuzzy,
			wantOther: citekey.Key{Surname: "Klein", Year: "1946a"},
		},
		{
			name:     "wrong year",
			key:      citekey.Key{Surname: "Bion", Year: "1970"},
			wantKind: None,
		},
		{
			name:     "unknown surname",
			key:      citekey.Key{Surname: "Jung", Year: "1921"},
			wantKind: None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Citation(tt.key, refs, idx)
			if got.Kind != tt.wantKind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.wantKind)
			}
			if tt.wantKind != None && got.Other != tt.wantOther {
				t.Errorf("Other = %v, want %v", got.Other, tt.wantOther)
			}
		})
	}
}

// Fuzzy resolution works in both directions: if citation X resolves
// fuzzily to reference Y, then reference Y resolves fuzzily to the
// citation side holding X.
func TestFuzzySymmetry(t *testing.T) {
	refs, refIdx := buildSet(citekey.Key{Surname: "Klein", Year: "1946a"})
	cites, citeIdx := buildSet(citekey.Key{Surname: "Klein", Year: "1946"})

	cr := Citation(citekey.Key{Surname: "Klein", Year: "1946"}, refs, refIdx)
	rr := Reference(citekey.Key{Surname: "Klein", Year: "1946a"}, cites, citeIdx)

	if cr.Kind != Fuzzy {
		t.Errorf("citation side = %v, want Fuzzy", cr.Kind)
	}
	if rr.Kind != Fuzzy {
		t.Errorf("reference side = %v, want Fuzzy", rr.Kind)
	}
}

func TestWorst(t *testing.T) {
	tests := []struct {
		name  string
		kinds []Kind
		want  Kind
	}{
		{"all exact", []Kind{Exact, Exact}, Exact},
		{"fuzzy dominates exact", []Kind{Exact, Fuzzy, Exact}, Fuzzy},
		{"none dominates all", []Kind{Exact, Fuzzy, None}, None},
		{"empty", nil, Exact},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Worst(tt.kinds...); got != tt.want {
				t.Errorf("Worst(%v) = %v, want %v", tt.kinds, got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if Exact.String() != "exact" || Fuzzy.String() != "fuzzy" || None.String() != "none" {
		t.Error("Kind labels changed")
	}
}
