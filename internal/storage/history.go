// Package storage persists check-run history. The JSONL file is the
// source of truth; the SQLite cache is ephemeral and rebuilt from it.
package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/refcheck/refcheck/internal/report"
)

// MaxJSONLLineCapacity is the maximum buffer size for reading JSONL lines (1MB per line).
const MaxJSONLLineCapacity = 1024 * 1024

// RunRecord is one completed check run.
type RunRecord struct {
	ID                 string       `json:"id"`
	Paper              string       `json:"paper"`
	CheckedAt          time.Time    `json:"checked_at"`
	Stats              report.Stats `json:"stats"`
	UnmatchedCitations []string     `json:"unmatched_citations,omitempty"`
	UncitedReferences  []string     `json:"uncited_references,omitempty"`
}

// NewRunRecord builds a record for a just-completed run. IDs are
// timestamp-derived so records sort chronologically.
func NewRunRecord(paper string, stats report.Stats, unmatched, uncited []string) RunRecord {
	now := time.Now().UTC()
	return RunRecord{
		ID:                 now.Format("20060102T150405.000000000"),
		Paper:              paper,
		CheckedAt:          now,
		Stats:              stats,
		UnmatchedCitations: unmatched,
		UncitedReferences:  uncited,
	}
}

// ReadAll reads all run records from a JSONL file.
func ReadAll(path string) ([]RunRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // No history yet
		}
		return nil, fmt.Errorf("opening history file: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	scanner := bufio.NewScanner(f)

	// Increase buffer size for long lines
	buf := make([]byte, MaxJSONLLineCapacity)
	scanner.Buffer(buf, MaxJSONLLineCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec RunRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("parsing line %d: %w", lineNum, err)
		}
		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	return records, nil
}

// Append adds a run record to the end of the history file, creating the
// directory if needed.
func Append(path string, rec RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening history file for append: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding run record: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("writing run record: %w", err)
	}
	if _, err := f.WriteString("\n"); err != nil {
		return fmt.Errorf("writing newline: %w", err)
	}

	return nil
}
