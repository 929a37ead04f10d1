package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration. GEMINI_API_KEY is not part of it; the
// Gemini client reads the key at call time.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	GinMode  string `env:"GIN_MODE"`
	BaseURL  string `env:"BASE_URL"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`

	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"45s"`
	SessionTTL        time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	MixCacheRedisAddr string        `env:"MIX_CACHE_REDIS_ADDR"`
	MixCachePassword  string        `env:"MIX_CACHE_REDIS_PASSWORD"`
	MixCacheDB        int           `env:"MIX_CACHE_REDIS_DB" envDefault:"0"`
	MixCacheTTL       time.Duration `env:"MIX_CACHE_TTL" envDefault:"24h"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:" + cfg.Port
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: PORT must not be empty")
	}
	if c.GenerationTimeout <= 0 {
		return fmt.Errorf("config: GENERATION_TIMEOUT must be positive, got %s", c.GenerationTimeout)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.MixCacheTTL < 0 {
		return fmt.Errorf("config: MIX_CACHE_TTL must not be negative, got %s", c.MixCacheTTL)
	}
	return nil
}

// MixCacheEnabled reports whether mixed profiles are cached in Redis.
func (c *Config) MixCacheEnabled() bool {
	return c.MixCacheRedisAddr != ""
}
