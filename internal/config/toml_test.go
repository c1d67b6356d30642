package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be fine, got %v", err)
	}
	if cfg.Hunt.Length != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[hunt]
length = 7
no-digits = true
exclude-digits = "013"
url = "https://example.com"
verbose = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Hunt.Length == nil || *cfg.Hunt.Length != 7 {
		t.Fatalf("expected length 7, got %v", cfg.Hunt.Length)
	}
	if cfg.Hunt.NoDigits == nil || !*cfg.Hunt.NoDigits {
		t.Fatalf("expected no-digits true, got %v", cfg.Hunt.NoDigits)
	}
	if cfg.Hunt.ExcludeDigits == nil || *cfg.Hunt.ExcludeDigits != "013" {
		t.Fatalf("expected exclude-digits 013, got %v", cfg.Hunt.ExcludeDigits)
	}
	if cfg.Hunt.URL == nil || *cfg.Hunt.URL != "https://example.com" {
		t.Fatalf("expected url, got %v", cfg.Hunt.URL)
	}
	if cfg.Hunt.Verbose == nil || !*cfg.Hunt.Verbose {
		t.Fatalf("expected verbose true, got %v", cfg.Hunt.Verbose)
	}
}

func TestLoadConfigInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[hunt\nlength="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}
