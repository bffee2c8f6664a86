package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"verdict/internal/diag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[engine]
jobs = 4
max_diagnostics = 50
cache = true

[rules]

[rules.AC1001]
severity = "error"

[rules.AC3001]
severity = "off"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Engine.Jobs != 4 || cfg.Engine.MaxDiagnostics != 50 || !cfg.Engine.Cache {
		t.Errorf("engine settings = %+v", cfg.Engine)
	}
	if len(cfg.Rules) != 2 {
		t.Fatalf("rules = %+v", cfg.Rules)
	}

	sup, err := cfg.Suppression()
	if err != nil {
		t.Fatalf("Suppression returned error: %v", err)
	}
	if s, ok := sup.Setting("AC1001"); !ok || s.Override == nil || *s.Override != diag.SevError {
		t.Errorf("AC1001 setting = %+v, %v", s, ok)
	}
	if s, ok := sup.Setting("AC3001"); !ok || !s.Disabled {
		t.Errorf("AC3001 setting = %+v, %v", s, ok)
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[engine]
jbos = 4
`)
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadConfigBadSeverity(t *testing.T) {
	path := writeConfig(t, `
[rules.AC1001]
severity = "fatal"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if _, err := cfg.Suppression(); !errors.Is(err, ErrBadSeverity) {
		t.Fatalf("err = %v, want ErrBadSeverity", err)
	}
}

func TestLoadConfigIfPresentMissing(t *testing.T) {
	cfg, err := LoadConfigIfPresent(filepath.Join(t.TempDir(), DefaultConfigName))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.MaxDiagnostics != DefaultConfig().Engine.MaxDiagnostics {
		t.Errorf("missing file must yield defaults, got %+v", cfg.Engine)
	}
}
