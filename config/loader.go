package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. TODO_STORAGE_BACKEND
const EnvPrefix = "TODO"

// envKeys are the settings that can be overridden from the environment
var envKeys = []string{
	"storage.backend",
	"storage.path",
	"storage.dsn",
	"storage.key",
	"storage.encoding",
	"assistant.model",
	"assistant.max_tokens",
	"assistant.temperature",
}

// Load builds the configuration from, in increasing precedence: defaults, the
// global file, the project file, explicitPath (if set) and TODO_* environment
// variables. A .env file in the working directory is loaded into the
// environment first.
func Load(explicitPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	paths := []string{GlobalConfigPath(), ProjectConfigPath()}
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", explicitPath, err)
		}
		paths = append(paths, explicitPath)
	}

	return load(paths...)
}

func load(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if err := loadFile(path, cfg); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := loadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func loadEnv(cfg *Config) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return err
		}
	}
	if err := v.BindEnv("assistant.api_key", "GEMINI_API_KEY", EnvPrefix+"_ASSISTANT_API_KEY"); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// GlobalDir returns the per-user todo directory
func GlobalDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".todo")
}

// GlobalConfigPath returns the path to the global config file
func GlobalConfigPath() string {
	return filepath.Join(GlobalDir(), "config.yaml")
}

// ProjectConfigPath returns the path to the project config file
func ProjectConfigPath() string {
	cwd, _ := os.Getwd()
	return filepath.Join(cwd, ".todo", "config.yaml")
}
