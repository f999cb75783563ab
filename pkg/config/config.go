package config

import (
	"context"
	"time"
)

// Config represents the complete configuration for the Model Garden agent.
// It provides type-safe access to all configuration values with validation.
type Config struct {
	Google  GoogleConfig  `koanf:"google"  validate:"required"`
	Agent   AgentConfig   `koanf:"agent"   validate:"required"`
	Runtime RuntimeConfig `koanf:"runtime" validate:"required"`
	MCP     MCPConfig     `koanf:"mcp"`
}

// GoogleConfig contains the Google Cloud and Gemini API settings. Project
// and location select the Vertex AI region every Model Garden call targets.
type GoogleConfig struct {
	Project     string          `koanf:"project"       env:"GOOGLE_CLOUD_PROJECT"`
	Location    string          `koanf:"location"      env:"GOOGLE_CLOUD_LOCATION"`
	APIKey      SensitiveString `koanf:"api_key"       env:"GOOGLE_API_KEY"          sensitive:"true"`
	UseVertexAI bool            `koanf:"use_vertex_ai" env:"GOOGLE_GENAI_USE_VERTEXAI"`
}

// AgentConfig contains the conversational runtime settings.
type AgentConfig struct {
	Model              string        `koanf:"model"                env:"AGENT_MODEL"                validate:"required"`
	MaxIterations      int           `koanf:"max_iterations"       env:"AGENT_MAX_ITERATIONS"       validate:"min=1"`
	MaxConcurrentTools int           `koanf:"max_concurrent_tools" env:"AGENT_MAX_CONCURRENT_TOOLS" validate:"min=1"`
	Temperature        float64       `koanf:"temperature"          env:"AGENT_TEMPERATURE"          validate:"min=0,max=2"`
	Timeout            time.Duration `koanf:"timeout"              env:"AGENT_TIMEOUT"`
	RetryAttempts      int           `koanf:"retry_attempts"       env:"AGENT_RETRY_ATTEMPTS"       validate:"min=0"`
	RetryBackoffBase   time.Duration `koanf:"retry_backoff_base"   env:"AGENT_RETRY_BACKOFF_BASE"`
	RetryBackoffMax    time.Duration `koanf:"retry_backoff_max"    env:"AGENT_RETRY_BACKOFF_MAX"`
	RetryJitter        bool          `koanf:"retry_jitter"         env:"AGENT_RETRY_JITTER"`
}

// RuntimeConfig contains process-level behavior configuration.
type RuntimeConfig struct {
	Environment string `koanf:"environment" validate:"oneof=development staging production"     env:"RUNTIME_ENVIRONMENT"`
	LogLevel    string `koanf:"log_level"   validate:"oneof=debug info warn error disabled"     env:"RUNTIME_LOG_LEVEL"`
	LogJSON     bool   `koanf:"log_json"    env:"RUNTIME_LOG_JSON"`
	LogSource   bool   `koanf:"log_source"  env:"RUNTIME_LOG_SOURCE"`
}

// MCPConfig contains the MCP tool-server transport configuration.
type MCPConfig struct {
	Transport string `koanf:"transport" validate:"oneof=stdio sse" env:"MCP_TRANSPORT"`
	Host      string `koanf:"host"      env:"MCP_HOST"`
	Port      int    `koanf:"port"      validate:"min=1,max=65535" env:"MCP_PORT"`
	BaseURL   string `koanf:"base_url"  env:"MCP_BASE_URL"`
}

// Service defines the configuration management service interface.
type Service interface {
	// Load loads configuration from the specified sources with precedence order.
	Load(ctx context.Context, sources ...Source) (*Config, error)
	// Validate checks if the configuration meets all validation requirements.
	Validate(config *Config) error
	// GetSource returns the source type for a specific configuration key.
	// This tracks which source (env, CLI, default) provided each value,
	// enabling debugging and precedence verification.
	GetSource(key string) SourceType
}

// Source defines the interface for configuration sources.
type Source interface {
	// Load reads configuration from the source.
	Load() (map[string]any, error)
	// Type returns the source type identifier.
	Type() SourceType
	// Close releases any resources held by the source.
	Close() error
}

// SourceType identifies the type of configuration source.
type SourceType string

const (
	SourceCLI     SourceType = "cli"
	SourceEnv     SourceType = "env"
	SourceDefault SourceType = "default"
)

// Metadata contains metadata about configuration sources.
type Metadata struct {
	Sources  map[string]SourceType `json:"sources"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// Load loads configuration using the default service.
// This is a convenience function for simple configuration loading.
func Load(ctx context.Context) (*Config, error) {
	service := NewService()
	return service.Load(ctx)
}

// Default returns a Config with default values for development.
func Default() *Config {
	return &Config{
		Google: GoogleConfig{
			Location:    "us-central1",
			UseVertexAI: true,
		},
		Agent: AgentConfig{
			Model:              "gemini-2.5-flash",
			MaxIterations:      10,
			MaxConcurrentTools: 4,
			Temperature:        0.2,
			Timeout:            2 * time.Minute,
			RetryAttempts:      2,
			RetryBackoffBase:   200 * time.Millisecond,
			RetryBackoffMax:    10 * time.Second,
			RetryJitter:        true,
		},
		Runtime: RuntimeConfig{
			Environment: "development",
			LogLevel:    "info",
			LogJSON:     false,
			LogSource:   false,
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Host:      "127.0.0.1",
			Port:      6001,
			BaseURL:   "",
		},
	}
}
