package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port     string        `env:"PORT, default=8080"`
	Env      string        `env:"ENV, default=development"`
	LogLevel string        `env:"LOG_LEVEL, default=info"`
	JWTTTL   time.Duration `env:"JWT_TTL, default=24h"`

	// JWTSecret is validated here but read by the token service itself.
	JWTSecret   string `env:"JWT_SECRET, required"`
	DatabaseURL string `env:"DATABASE_URL, required"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=2"`

	Redis    RedisConfig
	Security SecurityConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// SecurityConfig configures the abuse-decision engine. When EngineURL is set
// the remote engine is used, authenticated with APIKey; otherwise decisions
// are computed locally against Redis.
type SecurityConfig struct {
	APIKey    string `env:"SECURITY_API_KEY"`
	EngineURL string `env:"SECURITY_ENGINE_URL"`
}

// Load reads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	// envconfig's required only catches unset variables, not empty ones.
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: DATABASE_URL is required")
	}
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return nil, fmt.Errorf("config: invalid ENV %q", cfg.Env)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool { return c.Env == EnvDevelopment }
