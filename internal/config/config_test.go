package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"
`)

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing config at %q", resolved)
	}
	if cfg.TMDB.BaseURL != defaultTMDBBaseURL {
		t.Errorf("tmdb base URL = %q, want default", cfg.TMDB.BaseURL)
	}
	if cfg.Discovery.MaxCandidates != defaultMaxCandidates {
		t.Errorf("max candidates = %d, want %d", cfg.Discovery.MaxCandidates, defaultMaxCandidates)
	}
	if cfg.Scoring.ResultLimit != defaultResultLimit {
		t.Errorf("result limit = %d, want %d", cfg.Scoring.ResultLimit, defaultResultLimit)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Errorf("logging defaults wrong: %+v", cfg.Logging)
	}
}

func TestLoadExpandsPaths(t *testing.T) {
	path := writeConfig(t, `
[paths]
data_dir = "~/seedstream-data"

[tmdb]
api_key = "abc123"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if strings.HasPrefix(cfg.Paths.DataDir, "~") {
		t.Errorf("data_dir not expanded: %q", cfg.Paths.DataDir)
	}
	if !filepath.IsAbs(cfg.Paths.FeedbackDB) {
		t.Errorf("feedback_db not absolute: %q", cfg.Paths.FeedbackDB)
	}
}

func TestLoadRequiresTMDBKey(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	path := writeConfig(t, `
[logging]
level = "debug"
`)

	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "tmdb.api_key") {
		t.Fatalf("expected tmdb.api_key error, got %v", err)
	}
}

func TestLoadTMDBKeyFromEnvironment(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	path := writeConfig(t, `
[logging]
level = "warn"
`)

	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TMDB.APIKey != "env-key" {
		t.Errorf("api key = %q, want env-key", cfg.TMDB.APIKey)
	}
}

func TestLoadRejectsEnabledServiceWithoutKey(t *testing.T) {
	t.Setenv("BRAVE_API_KEY", "")
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"

[websearch]
enabled = true
`)

	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "websearch.api_key") {
		t.Fatalf("expected websearch.api_key error, got %v", err)
	}
}

func TestLoadRejectsBadLoggingFormat(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"

[logging]
format = "xml"
`)

	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestLoadRejectsInvertedCandidateBounds(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "abc123"

[discovery]
min_candidates = 60
max_candidates = 50
`)

	if _, _, _, err := Load(path); err == nil || !strings.Contains(err.Error(), "min_candidates") {
		t.Fatalf("expected min/max candidates error, got %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, resolved, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatalf("expected exists=false for %q", resolved)
	}
	if cfg.Discovery.MinCandidates != defaultMinCandidates {
		t.Errorf("min candidates = %d, want default", cfg.Discovery.MinCandidates)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample config not found after CreateSample")
	}
	if cfg.TMDB.APIKey != "env-key" {
		t.Errorf("sample config should leave api key to env, got %q", cfg.TMDB.APIKey)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/x/y")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	want := filepath.Join(home, "x", "y")
	if got != want {
		t.Errorf("ExpandPath = %q, want %q", got, want)
	}
}
