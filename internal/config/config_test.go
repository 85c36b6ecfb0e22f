package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Invoice.DefaultDueDays != 14 {
		t.Fatalf("expected default due days 14, got %d", cfg.Invoice.DefaultDueDays)
	}
	if cfg.Autosave.IntervalSeconds != 6 {
		t.Fatalf("expected default autosave interval 6, got %d", cfg.Autosave.IntervalSeconds)
	}
	if cfg.Invoice.NumberPrefix != "INV" {
		t.Fatalf("expected default number prefix INV, got %q", cfg.Invoice.NumberPrefix)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Invoice.DefaultDueDays = 30
	cfg.Invoice.NumberPrefix = "ACME"
	cfg.Log.Level = "debug"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.Invoice.DefaultDueDays != 30 {
		t.Fatalf("expected due days 30, got %d", loaded.Invoice.DefaultDueDays)
	}
	if loaded.Invoice.NumberPrefix != "ACME" {
		t.Fatalf("expected number prefix ACME, got %q", loaded.Invoice.NumberPrefix)
	}
	if loaded.Log.Level != "debug" {
		t.Fatalf("expected log level debug, got %s", loaded.Log.Level)
	}
}

func TestAutosaveInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.AutosaveInterval(); got != 6*time.Second {
		t.Fatalf("expected 6s, got %v", got)
	}

	cfg.Autosave.IntervalSeconds = 0
	if got := cfg.AutosaveInterval(); got != 6*time.Second {
		t.Fatalf("expected fallback 6s for zero interval, got %v", got)
	}
}
