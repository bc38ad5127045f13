package config

import (
	"os"
	"path/filepath"
)

// Storage backend names
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

// DefaultKey is the storage key the task list lives under
const DefaultKey = "todo.tasks"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		Storage: StorageConfig{
			Backend:  BackendFile,
			Path:     filepath.Join(GlobalDir(), "data"),
			Key:      DefaultKey,
			Encoding: "json",
		},
		Assistant: AssistantConfig{
			Model:       "gemini-2.5-flash",
			MaxTokens:   8192,
			Temperature: 0.7,
		},
	}
}

const globalTemplate = `# todo configuration
version: "1"

storage:
  # file | sqlite | mysql | memory
  backend: file
  # Directory (file backend) or database file (sqlite backend).
  # Defaults to ~/.todo/data
  # path: ~/.todo/data
  # MySQL connection string, e.g. user:pass@tcp(127.0.0.1:3306)/todo
  # dsn: ""
  key: todo.tasks
  # json | yaml
  encoding: json

# Chat assistant (/chat). Requires GEMINI_API_KEY in the environment or .env
assistant:
  model: gemini-2.5-flash
  max_tokens: 8192
  temperature: 0.7
`

const projectTemplate = `# todo project configuration
version: "1"

# Override global settings as needed
# storage:
#   backend: sqlite
#   path: .todo/tasks.db
`

// WriteDefault writes the default global configuration to a file
func WriteDefault(path string) error {
	return writeTemplate(path, globalTemplate)
}

// WriteProjectDefault writes the default project configuration to a file
func WriteProjectDefault(path string) error {
	return writeTemplate(path, projectTemplate)
}

func writeTemplate(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}
