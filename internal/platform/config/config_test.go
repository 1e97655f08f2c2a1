package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnv_defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "LOG_FORMAT", "TRT_FRAME_RATE", "TIMELINE_DIR", "PRESETS_FILE", "LOAD_WORKERS"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	if cfg.Port != "8080" || cfg.FrameRate != 24 || cfg.LogFormat != "json" || cfg.LoadWorkers != 4 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TimelineDir != "" || cfg.PresetsFile != "" {
		t.Errorf("optional paths should be empty: %+v", cfg)
	}
}

func TestFromEnv_overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("TRT_FRAME_RATE", "25")
	t.Setenv("TIMELINE_DIR", "/exports")
	cfg := FromEnv()
	if cfg.Port != "9000" || cfg.FrameRate != 25 || cfg.TimelineDir != "/exports" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestGetEnvInt_invalid(t *testing.T) {
	t.Setenv("TRT_TEST_INT", "abc")
	if got := GetEnvInt("TRT_TEST_INT", 7); got != 7 {
		t.Errorf("got %d, want fallback 7", got)
	}
	t.Setenv("TRT_TEST_INT", "-3")
	if got := GetEnvInt("TRT_TEST_INT", 7); got != 7 {
		t.Errorf("got %d, want fallback 7 for negative", got)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("TRT_TEST_FROM_DOTENV=yes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRT_TEST_FROM_DOTENV", "")
	os.Unsetenv("TRT_TEST_FROM_DOTENV")

	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := GetEnv("TRT_TEST_FROM_DOTENV", "no"); got != "yes" {
		t.Errorf("got %q, want yes", got)
	}
	if err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing file")
	}
}
