package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Plain {
		t.Error("expected symbolic decoration by default")
	}
	if cfg.Debug {
		t.Error("expected debug off by default")
	}
	if cfg.TimeoutSeconds != 1 {
		t.Errorf("expected default timeout 1s, got %d", cfg.TimeoutSeconds)
	}
	if cfg.TokenBudget != 200000 {
		t.Errorf("expected token budget 200000, got %d", cfg.TokenBudget)
	}
	if cfg.ContextBudget != 200000 {
		t.Errorf("expected context budget 200000, got %d", cfg.ContextBudget)
	}
	if cfg.ActivityMultiplier != 2 {
		t.Errorf("expected activity multiplier 2, got %d", cfg.ActivityMultiplier)
	}
	if cfg.FallbackRate != 15000 {
		t.Errorf("expected fallback rate 15000 tokens/hour, got %d", cfg.FallbackRate)
	}
	if len(cfg.ScanDirs) != 0 {
		t.Errorf("expected no scan dir overrides, got %v", cfg.ScanDirs)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	// Should return default config.
	if cfg.TokenBudget != 200000 {
		t.Errorf("expected defaults, got token budget %d", cfg.TokenBudget)
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	yaml := `
plain: true
debug: true
timeout_seconds: 3
token_budget: 100000
context_budget: 150000
activity_multiplier: 4
fallback_rate: 9000
scan_dirs:
  - /var/sessions
`
	os.WriteFile(path, []byte(yaml), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Plain {
		t.Error("expected plain true from yaml")
	}
	if !cfg.Debug {
		t.Error("expected debug true from yaml")
	}
	if cfg.TimeoutSeconds != 3 {
		t.Errorf("expected timeout_seconds 3, got %d", cfg.TimeoutSeconds)
	}
	if cfg.TokenBudget != 100000 {
		t.Errorf("expected token_budget 100000, got %d", cfg.TokenBudget)
	}
	if cfg.ContextBudget != 150000 {
		t.Errorf("expected context_budget 150000, got %d", cfg.ContextBudget)
	}
	if cfg.ActivityMultiplier != 4 {
		t.Errorf("expected activity_multiplier 4, got %d", cfg.ActivityMultiplier)
	}
	if cfg.FallbackRate != 9000 {
		t.Errorf("expected fallback_rate 9000, got %d", cfg.FallbackRate)
	}
	if len(cfg.ScanDirs) != 1 || cfg.ScanDirs[0] != "/var/sessions" {
		t.Errorf("unexpected scan_dirs: %v", cfg.ScanDirs)
	}
}

func TestLoad_PartialYAML(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	// Unmentioned keys keep their defaults.
	os.WriteFile(path, []byte("token_budget: 100000\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TokenBudget != 100000 {
		t.Errorf("expected token_budget 100000, got %d", cfg.TokenBudget)
	}
	if cfg.FallbackRate != 15000 {
		t.Errorf("expected default fallback_rate, got %d", cfg.FallbackRate)
	}
	if cfg.TimeoutSeconds != 1 {
		t.Errorf("expected default timeout, got %d", cfg.TimeoutSeconds)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	os.WriteFile(path, []byte("{{invalid yaml"), 0644)

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.yaml")
	os.WriteFile(path, []byte("timeout_seconds: 2\n"), 0644)

	t.Setenv("PULSELINE_PLAIN", "1")
	t.Setenv("PULSELINE_DEBUG", "true")
	t.Setenv("PULSELINE_TIMEOUT", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Plain {
		t.Error("PULSELINE_PLAIN should override")
	}
	if !cfg.Debug {
		t.Error("PULSELINE_DEBUG should override")
	}
	if cfg.TimeoutSeconds != 5 {
		t.Errorf("PULSELINE_TIMEOUT should override the file value, got %d", cfg.TimeoutSeconds)
	}
}

func TestLoad_BadEnvIgnored(t *testing.T) {
	t.Setenv("PULSELINE_PLAIN", "definitely")
	t.Setenv("PULSELINE_TIMEOUT", "soon")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Plain {
		t.Error("unparseable PULSELINE_PLAIN should be ignored")
	}
	if cfg.TimeoutSeconds != 1 {
		t.Errorf("unparseable PULSELINE_TIMEOUT should be ignored, got %d", cfg.TimeoutSeconds)
	}
}

func TestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Timeout() != time.Second {
		t.Errorf("expected 1s, got %v", cfg.Timeout())
	}
	cfg.TimeoutSeconds = 0
	if cfg.Timeout() != time.Second {
		t.Errorf("zero should fall back to 1s, got %v", cfg.Timeout())
	}
	cfg.TimeoutSeconds = 3
	if cfg.Timeout() != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.Timeout())
	}
}
