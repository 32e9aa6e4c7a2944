package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) (*DB, string) {
	t.Helper()
	dir := t.TempDir()
	db, err := OpenDB(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db, dir
}

func TestRebuildFromJSONL(t *testing.T) {
	db, dir := openTestDB(t)
	jsonl := filepath.Join(dir, "history.jsonl")

	for _, rec := range []RunRecord{
		sampleRecord("20260314T092653.000000000", "paper_one"),
		sampleRecord("20260314T101500.000000000", "paper_two"),
		sampleRecord("20260315T080000.000000000", "paper_one"),
	} {
		if err := Append(jsonl, rec); err != nil {
			t.Fatal(err)
		}
	}

	n, err := db.RebuildFromJSONL(jsonl)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("rebuilt = %d, want 3", n)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("Count() = %d, want 3", count)
	}

	// Rebuild replaces, never accumulates.
	if n, err = db.RebuildFromJSONL(jsonl); err != nil || n != 3 {
		t.Fatalf("second rebuild = %d, %v", n, err)
	}
	if count, _ = db.Count(); count != 3 {
		t.Errorf("Count() after second rebuild = %d, want 3", count)
	}
}

func TestRebuildFromMissingJSONL(t *testing.T) {
	db, dir := openTestDB(t)

	n, err := db.RebuildFromJSONL(filepath.Join(dir, "absent.jsonl"))
	if err != nil {
		t.Fatalf("missing history should rebuild to empty: %v", err)
	}
	if n != 0 {
		t.Errorf("rebuilt = %d, want 0", n)
	}
}

func TestListNewestFirst(t *testing.T) {
	db, dir := openTestDB(t)
	jsonl := filepath.Join(dir, "history.jsonl")

	for _, rec := range []RunRecord{
		sampleRecord("20260314T092653.000000000", "paper_one"),
		sampleRecord("20260315T080000.000000000", "paper_two"),
	} {
		if err := Append(jsonl, rec); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.RebuildFromJSONL(jsonl); err != nil {
		t.Fatal(err)
	}

	records, err := db.List("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].Paper != "paper_two" || records[1].Paper != "paper_one" {
		t.Errorf("not newest first: %q, %q", records[0].Paper, records[1].Paper)
	}

	got := records[0]
	if got.Stats.RegexCitations != 12 || got.Stats.RefUncited != 1 {
		t.Errorf("stats lost in round trip: %+v", got.Stats)
	}
	if len(got.UnmatchedCitations) != 2 || got.UnmatchedCitations[0] != "Adler (1927)" {
		t.Errorf("UnmatchedCitations = %v", got.UnmatchedCitations)
	}
	if got.CheckedAt.IsZero() {
		t.Error("CheckedAt not restored")
	}
}

func TestListPaperFilterAndLimit(t *testing.T) {
	db, dir := openTestDB(t)
	jsonl := filepath.Join(dir, "history.jsonl")

	for _, rec := range []RunRecord{
		sampleRecord("20260314T092653.000000000", "paper_one"),
		sampleRecord("20260314T101500.000000000", "paper_two"),
		sampleRecord("20260315T080000.000000000", "paper_one"),
	} {
		if err := Append(jsonl, rec); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := db.RebuildFromJSONL(jsonl); err != nil {
		t.Fatal(err)
	}

	records, err := db.List("paper_one", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("filtered records = %d, want 2", len(records))
	}
	for _, rec := range records {
		if rec.Paper != "paper_one" {
			t.Errorf("filter leaked %q", rec.Paper)
		}
	}

	records, err = db.List("", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("limited records = %d, want 1", len(records))
	}
	if records[0].ID != "20260315T080000.000000000" {
		t.Errorf("limit kept %q, want the newest run", records[0].ID)
	}
}

func TestListEmptyListsStayNil(t *testing.T) {
	db, dir := openTestDB(t)
	jsonl := filepath.Join(dir, "history.jsonl")

	rec := sampleRecord("20260314T092653.000000000", "clean_paper")
	rec.UnmatchedCitations = nil
	rec.UncitedReferences = nil
	if err := Append(jsonl, rec); err != nil {
		t.Fatal(err)
	}
	if _, err := db.RebuildFromJSONL(jsonl); err != nil {
		t.Fatal(err)
	}

	records, err := db.List("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].UnmatchedCitations != nil || records[0].UncitedReferences != nil {
		t.Errorf("empty lists should round-trip as nil: %+v", records[0])
	}
}
