package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGlobalConfigPathRespectsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := GlobalConfigPath()
	want := filepath.Join(dir, "refcheck", "config.yml")
	if got != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadGlobalMissingFileDefaults(t *testing.T) {
	confDir := t.TempDir()
	stateDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confDir)
	t.Setenv("XDG_STATE_HOME", stateDir)

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want %d", cfg.BatchSize, DefaultBatchSize)
	}
	if want := filepath.Join(confDir, "refcheck", "learned_patterns.json"); cfg.LearnedPath != want {
		t.Errorf("LearnedPath = %q, want %q", cfg.LearnedPath, want)
	}
	if want := filepath.Join(stateDir, "refcheck"); cfg.HistoryDir != want {
		t.Errorf("HistoryDir = %q, want %q", cfg.HistoryDir, want)
	}
	if cfg.Comments {
		t.Error("Comments should default off")
	}
}

func TestLoadGlobalReadsFile(t *testing.T) {
	confDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confDir)

	dir := filepath.Join(confDir, "refcheck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "learned_path: /srv/patterns.json\nbatch_size: 25\ncomments: true\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LearnedPath != "/srv/patterns.json" {
		t.Errorf("LearnedPath = %q", cfg.LearnedPath)
	}
	if cfg.BatchSize != 25 {
		t.Errorf("BatchSize = %d, want 25", cfg.BatchSize)
	}
	if !cfg.Comments {
		t.Error("Comments should be true")
	}
	// Unset fields still get defaults.
	if cfg.HistoryDir == "" {
		t.Error("HistoryDir default not applied")
	}
}

func TestLoadGlobalMalformedFile(t *testing.T) {
	confDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confDir)

	dir := filepath.Join(confDir, "refcheck")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("batch_size: not-a-number\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadGlobal(); err == nil {
		t.Fatal("malformed config should error, not silently default")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	confDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", confDir)

	cfg := &GlobalConfig{
		LearnedPath: "/srv/patterns.json",
		HistoryDir:  "/srv/history",
		BatchSize:   5,
		Comments:    true,
	}
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	got, err := LoadGlobal()
	if err != nil {
		t.Fatal(err)
	}
	if got.LearnedPath != cfg.LearnedPath || got.HistoryDir != cfg.HistoryDir ||
		got.BatchSize != cfg.BatchSize || got.Comments != cfg.Comments {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := &GlobalConfig{HistoryDir: "/srv/history"}

	if got := cfg.HistoryPath(); got != filepath.Join("/srv/history", "history.jsonl") {
		t.Errorf("HistoryPath() = %q", got)
	}
	if got := cfg.CacheDBPath(); !strings.HasSuffix(got, filepath.Join("cache", "history.db")) {
		t.Errorf("CacheDBPath() = %q", got)
	}
}
