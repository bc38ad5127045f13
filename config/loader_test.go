package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Version != "1" {
		t.Errorf("Expected version '1', got '%s'", cfg.Version)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Expected backend '%s', got '%s'", BackendFile, cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "todo.tasks" {
		t.Errorf("Expected key 'todo.tasks', got '%s'", cfg.Storage.Key)
	}
	if cfg.Storage.Encoding != "json" {
		t.Errorf("Expected encoding 'json', got '%s'", cfg.Storage.Encoding)
	}
	if cfg.Assistant.MaxTokens != 8192 {
		t.Errorf("Expected 8192 max tokens, got %d", cfg.Assistant.MaxTokens)
	}
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()

	path := filepath.Join(tmpDir, "nested", "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("Expected backend '%s', got '%s'", BackendFile, cfg.Storage.Backend)
	}
	if cfg.Assistant.Model != "gemini-2.5-flash" {
		t.Errorf("Expected default model, got '%s'", cfg.Assistant.Model)
	}
}

func TestLoadLayering(t *testing.T) {
	tmpDir := t.TempDir()

	global := filepath.Join(tmpDir, "global.yaml")
	project := filepath.Join(tmpDir, "project.yaml")

	writeFile(t, global, `
storage:
  backend: sqlite
  path: /tmp/global.db
  encoding: yaml
assistant:
  temperature: 0.2
`)
	writeFile(t, project, `
storage:
  path: /tmp/project.db
`)

	cfg, err := load(global, project, filepath.Join(tmpDir, "missing.yaml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Expected backend from global file, got '%s'", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "/tmp/project.db" {
		t.Errorf("Expected project path to override, got '%s'", cfg.Storage.Path)
	}
	if cfg.Storage.Encoding != "yaml" {
		t.Errorf("Expected encoding 'yaml', got '%s'", cfg.Storage.Encoding)
	}
	if cfg.Storage.Key != DefaultKey {
		t.Errorf("Expected default key to survive, got '%s'", cfg.Storage.Key)
	}
	if cfg.Assistant.Temperature != 0.2 {
		t.Errorf("Expected temperature 0.2, got %v", cfg.Assistant.Temperature)
	}
	if cfg.Assistant.Model != "gemini-2.5-flash" {
		t.Errorf("Expected default model to survive, got '%s'", cfg.Assistant.Model)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TODO_STORAGE_BACKEND", "memory")
	t.Setenv("TODO_STORAGE_KEY", "custom.key")
	t.Setenv("TODO_ASSISTANT_MAX_TOKENS", "1024")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Expected backend 'memory', got '%s'", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "custom.key" {
		t.Errorf("Expected key 'custom.key', got '%s'", cfg.Storage.Key)
	}
	if cfg.Assistant.MaxTokens != 1024 {
		t.Errorf("Expected 1024 max tokens, got %d", cfg.Assistant.MaxTokens)
	}
	if cfg.Assistant.APIKey != "secret" {
		t.Errorf("Expected API key from GEMINI_API_KEY, got '%s'", cfg.Assistant.APIKey)
	}
	if cfg.Storage.Encoding != "json" {
		t.Errorf("Unset variables should keep defaults, got encoding '%s'", cfg.Storage.Encoding)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, path, "storage: [unclosed")

	if _, err := load(path); err == nil {
		t.Error("Expected error for malformed config")
	}
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing explicit config")
	}
	if !strings.Contains(err.Error(), "nope.yaml") {
		t.Errorf("Expected path in error, got: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandHome("~/x/y"); got != filepath.Join(home, "x", "y") {
		t.Errorf("Expected home expansion, got '%s'", got)
	}
	if got := expandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("Absolute path should be unchanged, got '%s'", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
