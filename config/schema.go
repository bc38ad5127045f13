package config

// Config represents the full todo configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// Where and how the task list is persisted
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`

	// Chat assistant settings
	Assistant AssistantConfig `yaml:"assistant" mapstructure:"assistant"`
}

// StorageConfig selects and configures the storage backend
type StorageConfig struct {
	// file | sqlite | mysql | memory
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Directory for the file backend, database file for sqlite
	Path string `yaml:"path" mapstructure:"path"`

	// Connection string for mysql
	DSN string `yaml:"dsn" mapstructure:"dsn"`

	// Key the task list is stored under
	Key string `yaml:"key" mapstructure:"key"`

	// json | yaml
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
}

// AssistantConfig configures the LLM used by /chat
type AssistantConfig struct {
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int32   `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
	APIKey      string  `yaml:"-" mapstructure:"api_key"`
}
