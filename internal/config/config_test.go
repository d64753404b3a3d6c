package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "MAX_UPLOAD_SIZE", "LLM_PROVIDER", "LLM_TIMEOUT",
		"WATSONX_URL", "WATSONX_API_VERSION", "IAM_URL", "TOKEN_CACHE_PROVIDER", "EVENTS_PROVIDER",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Port", cfg.Port, 8080},
		{"LogLevel", cfg.LogLevel, "info"},
		{"LogFormat", cfg.LogFormat, "json"},
		{"MaxUploadSize", cfg.MaxUploadSize, int64(10485760)},
		{"LLMProvider", cfg.LLMProvider, "watsonx"},
		{"LLMTimeout", cfg.LLMTimeout, 2 * time.Minute},
		{"WatsonxURL", cfg.WatsonxURL, "https://us-south.ml.cloud.ibm.com"},
		{"WatsonxVersion", cfg.WatsonxVersion, "2023-05-29"},
		{"IAMURL", cfg.IAMURL, "https://iam.cloud.ibm.com/identity/token"},
		{"TokenCacheProvider", cfg.TokenCacheProvider, "memory"},
		{"EventsProvider", cfg.EventsProvider, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %s=%v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LLM_TIMEOUT", "45s")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.LogLevel)
	}
	if cfg.LLMTimeout != 45*time.Second {
		t.Errorf("expected timeout 45s, got %s", cfg.LLMTimeout)
	}
}

func TestLoadProviderOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("TOKEN_CACHE_PROVIDER", "redis")
	t.Setenv("EVENTS_PROVIDER", "nats")

	cfg := Load()

	if cfg.LLMProvider != "openai" {
		t.Errorf("expected LLM provider 'openai', got %s", cfg.LLMProvider)
	}
	if cfg.TokenCacheProvider != "redis" {
		t.Errorf("expected token cache 'redis', got %s", cfg.TokenCacheProvider)
	}
	if cfg.EventsProvider != "nats" {
		t.Errorf("expected events 'nats', got %s", cfg.EventsProvider)
	}
}
