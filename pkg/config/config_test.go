package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoint != DefaultEndpoint {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, DefaultEndpoint)
	}
	if !cfg.IncludeContext {
		t.Error("IncludeContext should default to true")
	}
	if cfg.ContextBudget != DefaultContextBudget {
		t.Errorf("ContextBudget = %d, want %d", cfg.ContextBudget, DefaultContextBudget)
	}
	if len(cfg.RestrictedURLs) == 0 {
		t.Error("RestrictedURLs should have defaults")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "endpoint: http://aura.local:9000\ninclude_context: false\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoint != "http://aura.local:9000" {
		t.Errorf("Endpoint = %q, want overridden value", cfg.Endpoint)
	}
	if cfg.IncludeContext {
		t.Error("IncludeContext should honor explicit false")
	}
	if cfg.ContextBudget != DefaultContextBudget {
		t.Errorf("ContextBudget = %d, want default %d", cfg.ContextBudget, DefaultContextBudget)
	}
	if cfg.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("TimeoutSeconds = %d, want default %d", cfg.TimeoutSeconds, DefaultTimeoutSeconds)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Endpoint = "http://example.com"
	cfg.WatchSelection = true
	cfg.RestrictedURLs = []string{"chrome://*"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Endpoint != cfg.Endpoint {
		t.Errorf("Endpoint = %q, want %q", loaded.Endpoint, cfg.Endpoint)
	}
	if !loaded.WatchSelection {
		t.Error("WatchSelection should survive the round trip")
	}
	if len(loaded.RestrictedURLs) != 1 || loaded.RestrictedURLs[0] != "chrome://*" {
		t.Errorf("RestrictedURLs = %v, want [chrome://*]", loaded.RestrictedURLs)
	}
}

func TestLoadInvalidYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
