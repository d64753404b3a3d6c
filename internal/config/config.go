package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration. Per-task keys and identifiers are not
// part of it; they are looked up through credentials.Source.
type Config struct {
	// Server
	Port      int    `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"` // "json" or "text"

	// Upload limits
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"` // 10MB in bytes

	// LLM
	LLMProvider    string        `env:"LLM_PROVIDER" envDefault:"watsonx"` // "watsonx" or "openai"
	LLMTimeout     time.Duration `env:"LLM_TIMEOUT" envDefault:"2m"`
	WatsonxURL     string        `env:"WATSONX_URL" envDefault:"https://us-south.ml.cloud.ibm.com"`
	WatsonxVersion string        `env:"WATSONX_API_VERSION" envDefault:"2023-05-29"`
	IAMURL         string        `env:"IAM_URL" envDefault:"https://iam.cloud.ibm.com/identity/token"`
	OpenAIBaseURL  string        `env:"OPENAI_BASE_URL"`

	// IAM token cache
	TokenCacheProvider string `env:"TOKEN_CACHE_PROVIDER" envDefault:"memory"` // "memory" or "redis"
	RedisAddr          string `env:"REDIS_ADDR"`
	RedisPassword      string `env:"REDIS_PASSWORD"`

	// Submission events
	EventsProvider string `env:"EVENTS_PROVIDER" envDefault:"none"` // "none" or "nats"
	NatsURL        string `env:"NATS_URL"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}
