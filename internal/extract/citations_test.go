package extract

import (
	"testing"

	"github.com/refcheck/refcheck/internal/citekey"
)

func contains(s *citekey.Set, surname, year string) bool {
	return s.Contains(citekey.Key{Surname: surname, Year: year})
}

func TestCitationsForms(t *testing.T) {
	cfg := citekey.DefaultConfig()

	tests := []struct {
		name string
		body string
		want [][2]string // surname, year pairs that must be present
		deny [][2]string // pairs that must be absent
	}{
		{
			name: "narrative",
			body: "Freud (1912) argued that transference is central.",
			want: [][2]string{{"Freud", "1912"}},
		},
		{
			name: "narrative with hedge year",
			body: "Bion (e.g., 1962) described containment.",
			want: [][2]string{{"Bion", "1962"}},
		},
		{
			name: "narrative multiple years",
			body: "Gelso (2009, 2011) refined the framework.",
			want: [][2]string{{"Gelso", "2009"}, {"Gelso", "2011"}},
		},
		{
			name: "narrative pair",
			body: "Safran and Muran (2000) studied rupture repair.",
			want: [][2]string{{"Safran", "2000"}},
		},
		{
			name: "parenthetical block",
			body: "The effect is robust (Smith, 2009; Wampold, 2011).",
			want: [][2]string{{"Smith", "2009"}, {"Wampold", "2011"}},
		},
		{
			name: "parenthetical carry-forward inheritance",
			body: "Findings converge (Gelso, 2009; 2014).",
			want: [][2]string{{"Gelso", "2009"}, {"Gelso", "2014"}},
		},
		{
			name: "parenthetical with hedge",
			body: "This is established (see Norcross, 2002).",
			want: [][2]string{{"Norcross", "2002"}},
		},
		{
			name: "noise word dropped",
			body: "Several traditions (Cognitive, 2009) were compared.",
			deny: [][2]string{{"Cognitive", "2009"}},
		},
		{
			name: "bracket single",
			body: "Taylor [2003] reported similar results.",
			want: [][2]string{{"Taylor", "2003"}},
		},
		{
			name: "bracket multi",
			body: "Earlier work [Smith, 2009; Wampold, 2011] agrees.",
			want: [][2]string{{"Smith", "2009"}, {"Wampold", "2011"}},
		},
		{
			name: "possessive",
			body: "Sullivan's interpersonal theory (1953) shaped the field.",
			want: [][2]string{{"Sullivan", "1953"}},
		},
		{
			name: "possessive boundary",
			body: "Ferenczi's ideas influenced Sullivan's (1953) formulation.",
			want: [][2]string{{"Sullivan", "1953"}},
			deny: [][2]string{{"Ferenczi", "1953"}},
		},
		{
			name: "and colleagues",
			body: "Luborsky and colleagues (1975) ran the comparison.",
			want: [][2]string{{"Luborsky", "1975"}},
		},
		{
			name: "et al complex block",
			body: "Smith et al. (1999; Wampold, 2001) replicated this.",
			want: [][2]string{{"Smith", "1999"}, {"Wampold", "2001"}},
		},
		{
			name: "lowercase narrative",
			body: "As stiles (2009) observed, assimilation varies.",
			want: [][2]string{{"Stiles", "2009"}},
		},
		{
			name: "lowercase comma form",
			body: "responsiveness varies across dyads, stiles, 2009, and beyond",
			want: [][2]string{{"Stiles", "2009"}},
		},
		{
			name: "curly quote possessive",
			body: "Winnicott’s holding environment (1960) remains influential.",
			want: [][2]string{{"Winnicott", "1960"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := Citations(tt.body, cfg)
			for _, w := range tt.want {
				if !contains(set, w[0], w[1]) {
					t.Errorf("missing %s (%s) in %v", w[0], w[1], set.Strings())
				}
			}
			for _, d := range tt.deny {
				if contains(set, d[0], d[1]) {
					t.Errorf("unexpected %s (%s) in %v", d[0], d[1], set.Strings())
				}
			}
		})
	}
}

// Adding a learned noise word removes the corresponding keys and nothing
// else.
func TestCitationsLearnedNoise(t *testing.T) {
	body := "Mindfulness (2010) is not an author, but Kabat-Zinn (1990) is."

	base := Citations(body, citekey.DefaultConfig())
	if !contains(base, "Mindfulness", "2010") {
		t.Fatal("baseline should contain the spurious key")
	}

	learned := citekey.DefaultConfig().WithNoiseWords([]string{"mindfulness"})
	got := Citations(body, learned)
	if contains(got, "Mindfulness", "2010") {
		t.Error("learned noise word still produced a key")
	}
	if !contains(got, "Kabat-Zinn", "1990") {
		t.Error("real citation lost when noise list grew")
	}
}

func TestAccumulatorOverlaps(t *testing.T) {
	var acc Accumulator
	acc.Accept(Candidate{Start: 5, End: 15})

	tests := []struct {
		start, end int
		want       bool
	}{
		{0, 5, false},   // ends exactly at span start
		{15, 20, false}, // begins exactly at span end
		{0, 6, true},    // end falls inside
		{10, 20, true},  // start falls inside
		{6, 10, true},   // contained
		{20, 30, false},
	}
	for _, tt := range tests {
		if got := acc.Overlaps(tt.start, tt.end); got != tt.want {
			t.Errorf("Overlaps(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}

	if len(acc.Accepted()) != 1 {
		t.Errorf("Accepted() = %v, want one span", acc.Accepted())
	}
}
