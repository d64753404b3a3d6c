package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"smartstudy/internal/cache"
	"smartstudy/internal/config"
	"smartstudy/internal/credentials"
	"smartstudy/internal/events"
	"smartstudy/internal/llm"
	"smartstudy/internal/logger"
	"smartstudy/internal/study"
	"smartstudy/internal/task"
)

// Deps bundles common runtime dependencies for the service.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Study  *study.Service
	Tokens cache.TokenCache
	Events events.Publisher
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	envErr := godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		log.Warn("failed to load .env file", "err", envErr)
	}

	tokens, err := buildTokenCache(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize token cache: %w", err)
	}
	gen, err := buildGenerator(cfg, tokens, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize LLM: %w", err)
	}
	pub, err := buildEvents(cfg, log)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize events: %w", err)
	}

	resolver := credentials.NewResolver(credentials.EnvSource{}, cfg.WatsonxURL)
	warnMissingKeys(resolver, log)

	return Deps{
		Config: cfg,
		Log:    log,
		Study:  study.NewService(resolver, gen, pub, log),
		Tokens: tokens,
		Events: pub,
	}, nil
}

// Close releases connections held by Deps.
func (d Deps) Close() {
	if d.Events != nil {
		if err := d.Events.Close(); err != nil {
			d.Log.Warn("failed to close events publisher", "err", err)
		}
	}
	if d.Tokens != nil {
		if err := d.Tokens.Close(); err != nil {
			d.Log.Warn("failed to close token cache", "err", err)
		}
	}
}

func buildTokenCache(cfg config.Config, log *slog.Logger) (cache.TokenCache, error) {
	switch cfg.TokenCacheProvider {
	case "memory", "":
		return cache.NewMemoryCache(), nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("REDIS_ADDR is required when TOKEN_CACHE_PROVIDER=redis")
		}
		rc, err := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		log.Info("using Redis token cache", "addr", cfg.RedisAddr)
		return rc, nil
	default:
		return nil, fmt.Errorf("invalid TOKEN_CACHE_PROVIDER: %s (valid options: memory, redis)", cfg.TokenCacheProvider)
	}
}

func buildGenerator(cfg config.Config, tokens cache.TokenCache, log *slog.Logger) (llm.Generator, error) {
	switch cfg.LLMProvider {
	case "watsonx":
		log.Info("using watsonx.ai generator", "url", cfg.WatsonxURL, "version", cfg.WatsonxVersion)
		return llm.NewWatsonxClient(llm.WatsonxOptions{
			IAMURL:  cfg.IAMURL,
			Version: cfg.WatsonxVersion,
			Timeout: cfg.LLMTimeout,
			Tokens:  tokens,
		}), nil
	case "openai":
		log.Info("using OpenAI-compatible generator", "base_url", cfg.OpenAIBaseURL)
		return llm.NewOpenAIClient(cfg.OpenAIBaseURL, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: watsonx, openai)", cfg.LLMProvider)
	}
}

func buildEvents(cfg config.Config, log *slog.Logger) (events.Publisher, error) {
	switch cfg.EventsProvider {
	case "none", "":
		return events.Noop{}, nil
	case "nats":
		if cfg.NatsURL == "" {
			return nil, fmt.Errorf("NATS_URL is required when EVENTS_PROVIDER=nats")
		}
		nc, err := nats.Connect(cfg.NatsURL, nats.Name("smartstudy"))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		}
		log.Info("publishing submission events to NATS", "subject", events.SubjectPrefix+"*")
		return events.NewNATS(nc), nil
	default:
		return nil, fmt.Errorf("invalid EVENTS_PROVIDER: %s (valid options: none, nats)", cfg.EventsProvider)
	}
}

// warnMissingKeys reports tasks that will refuse to run. Startup continues.
func warnMissingKeys(resolver *credentials.Resolver, log *slog.Logger) {
	for _, k := range task.Kinds() {
		p, _ := task.ProfileFor(k)
		if _, err := resolver.Resolve(p.APIKeySlot); err != nil {
			log.Warn("task is not configured", "task", k.String(), "err", err)
		}
	}
}
