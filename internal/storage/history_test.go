package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/refcheck/refcheck/internal/report"
)

func sampleRecord(id, paper string) RunRecord {
	return RunRecord{
		ID:        id,
		Paper:     paper,
		CheckedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Stats: report.Stats{
			RegexCitations: 12,
			References:     10,
			BodyMatched:    9,
			BodyFuzzy:      1,
			BodyUnmatched:  2,
			RefCited:       8,
			RefFuzzy:       1,
			RefUncited:     1,
		},
		UnmatchedCitations: []string{"Adler (1927)", "Rank (1924)"},
		UncitedReferences:  []string{"Sullivan, H. S. (1953). The interpersonal theory of psychiatry."},
	}
}

func TestReadAllMissingFile(t *testing.T) {
	records, err := ReadAll(filepath.Join(t.TempDir(), "nope.jsonl"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
}

func TestAppendReadAllRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "history.jsonl")

	first := sampleRecord("20260314T092653.000000000", "paper_one")
	second := sampleRecord("20260314T101500.000000000", "paper_two")
	second.UnmatchedCitations = nil

	if err := Append(path, first); err != nil {
		t.Fatal(err)
	}
	if err := Append(path, second); err != nil {
		t.Fatal(err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Paper != "paper_one" || records[1].Paper != "paper_two" {
		t.Errorf("order lost: %q, %q", records[0].Paper, records[1].Paper)
	}
	if records[0].Stats.BodyMatched != 9 {
		t.Errorf("Stats.BodyMatched = %d, want 9", records[0].Stats.BodyMatched)
	}
	if len(records[0].UnmatchedCitations) != 2 || records[0].UnmatchedCitations[0] != "Adler (1927)" {
		t.Errorf("UnmatchedCitations = %v", records[0].UnmatchedCitations)
	}
	if !records[0].CheckedAt.Equal(first.CheckedAt) {
		t.Errorf("CheckedAt = %v, want %v", records[0].CheckedAt, first.CheckedAt)
	}
}

func TestReadAllSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"id":"a","paper":"p","checked_at":"2026-03-14T09:26:53Z","stats":{}}` + "\n\n" +
		`{"id":"b","paper":"p","checked_at":"2026-03-14T09:27:53Z","stats":{}}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := ReadAll(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("records = %d, want 2", len(records))
	}
}

func TestReadAllReportsBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	content := `{"id":"a","paper":"p","checked_at":"2026-03-14T09:26:53Z","stats":{}}` + "\n" +
		"{corrupt\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadAll(path)
	if err == nil {
		t.Fatal("corrupt line should error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
}

func TestNewRunRecord(t *testing.T) {
	rec := NewRunRecord("paper", report.Stats{RegexCitations: 3}, []string{"Adler (1927)"}, nil)

	if rec.Paper != "paper" {
		t.Errorf("Paper = %q", rec.Paper)
	}
	if rec.ID == "" || !strings.Contains(rec.ID, "T") {
		t.Errorf("ID = %q, want timestamp-derived", rec.ID)
	}
	if rec.CheckedAt.Location() != time.UTC {
		t.Error("CheckedAt should be UTC")
	}
	if rec.Stats.RegexCitations != 3 {
		t.Errorf("Stats = %+v", rec.Stats)
	}
}
