package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the immutable process configuration, read once at startup. The
// signing secret in particular is never mutated after load; both token codecs
// derive their keys from it at construction.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret is the single shared signing secret for both token kinds.
	JWTSecret string `env:"JWT_SECRET, required"`
	// SessionTTL bounds the lifetime of session tokens minted at login.
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`
	// ResetTTL bounds the password-reset window. Longer than a session TTL
	// because delivery happens out of band.
	ResetTTL time.Duration `env:"RESET_TTL, default=72h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
