package citekey

import "testing"

func TestIsNoise(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		surname string
		want    bool
	}{
		{"Cognitive", true},  // stop-list word, case-insensitive
		{"therapy", true},    // stop-list word
		{"Freud", false},     // real surname
		{"Al", true},         // too short
		{"x", true},          // too short
		{"Attachment", true}, // disciplinary term
		{"Winnicott", false},
	}
	for _, tt := range tests {
		if got := cfg.IsNoise(tt.surname); got != tt.want {
			t.Errorf("IsNoise(%q) = %v, want %v", tt.surname, got, tt.want)
		}
	}
}

func TestWithNoiseWords(t *testing.T) {
	base := DefaultConfig()
	extended := base.WithNoiseWords([]string{"Mindfulness", " grounding "})

	if !extended.IsNoise("mindfulness") {
		t.Error("extended config should treat learned word as noise")
	}
	if !extended.IsNoise("Grounding") {
		t.Error("learned words should be trimmed and matched case-insensitively")
	}
	if base.IsNoise("Mindfulness") {
		t.Error("WithNoiseWords must not mutate the receiver")
	}
	// Built-ins survive the extension.
	if !extended.IsNoise("Cognitive") {
		t.Error("extended config lost a built-in noise word")
	}
}
