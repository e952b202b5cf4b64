package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// AllowedOrigins is a comma-separated list of origins permitted by the
	// CORS middleware. "*" allows any origin.
	AllowedOrigins string `mapstructure:"allowed_origins" validate:"required"`
}

// LLMConfig contains all text-generation integration settings.
type LLMConfig struct {
	// GeminiAPIKey has no default; the process refuses to start without it.
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`

	ModelName string `mapstructure:"model_name" validate:"required"`

	// MaxRetries is the total attempt budget for transient upstream failures.
	MaxRetries int `mapstructure:"max_retries" validate:"gte=1,lte=10"`

	// RetryDelaySeconds is the backoff base: 2 gives waits of 2s, 4s, 8s, ...
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`

	// TimeoutSeconds bounds a whole generation call, backoff waits included.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=1,lte=600"`
}
