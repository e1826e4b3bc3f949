package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestConfigEnvTakesPrecedence(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)

	configDir := filepath.Join(home, ".ecolens")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	data := []byte("api_keys:\n  gemini: file-key\n")
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiAPIKey != "env-key" {
		t.Fatalf("expected env key, got %q", cfg.GeminiAPIKey)
	}
}

func TestConfigFallsBackToFileKey(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)

	configDir := filepath.Join(home, ".ecolens")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	data := []byte("api_keys:\n  gemini: file-key\n")
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.GeminiAPIKey != "file-key" {
		t.Fatalf("expected file key, got %q", cfg.GeminiAPIKey)
	}
}

func TestConfigDefaultModels(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Models != DefaultModels() {
		t.Fatalf("expected default models, got %+v", cfg.Models)
	}
	if cfg.Models.Report == "" || cfg.Models.Speech == "" || cfg.Models.Voice == "" {
		t.Fatalf("defaults incomplete: %+v", cfg.Models)
	}
}

func TestConfigModelsFileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	setHomeEnv(t, home)
	t.Setenv("GEMINI_API_KEY", "k")

	configDir := filepath.Join(home, ".ecolens")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	data := []byte("report: gemini-2.5-pro\nvoice: Puck\n")
	if err := os.WriteFile(filepath.Join(configDir, "models.yaml"), data, 0600); err != nil {
		t.Fatalf("write models: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Models.Report != "gemini-2.5-pro" {
		t.Fatalf("report model not overridden: %q", cfg.Models.Report)
	}
	if cfg.Models.Voice != "Puck" {
		t.Fatalf("voice not overridden: %q", cfg.Models.Voice)
	}
	// Unset fields keep their defaults.
	if cfg.Models.Plan != DefaultModels().Plan {
		t.Fatalf("plan model lost its default: %q", cfg.Models.Plan)
	}
}

func setHomeEnv(t *testing.T, home string) {
	t.Helper()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
}
