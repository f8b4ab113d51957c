package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`
	SentryDSN string `env:"SENTRY_DSN"`

	// AssignorPublic exposes the assignor routes without authentication.
	AssignorPublic bool `env:"ASSIGNOR_PUBLIC, default=false"`

	Auth  AuthConfig
	Audit AuditConfig
	Seed  SeedConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET"`
	TokenTTL           time.Duration `env:"TOKEN_TTL,             default=60s"`
	BcryptCost         int           `env:"BCRYPT_COST,           default=10"`
	MaxFailures        int           `env:"LOGIN_MAX_FAILURES,    default=5"`
	FailureWindow      time.Duration `env:"LOGIN_FAILURE_WINDOW,  default=15m"`
	LoginRatePerMinute int           `env:"LOGIN_RATE_PER_MINUTE, default=20"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// SeedConfig names the admin account created at startup when Login is set.
type SeedConfig struct {
	Login    string `env:"SEED_ADMIN_LOGIN"`
	Password string `env:"SEED_ADMIN_PASSWORD"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=integrations"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Load reads configuration from the environment, loading .env first when the
// file exists. Variables already set in the environment take precedence.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := LoadUnchecked(ctx)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadUnchecked is Load without the server requirements, for tools such as
// the seed command that never issue tokens.
func LoadUnchecked(ctx context.Context) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}
	return process(ctx, envconfig.OsLookuper())
}

func process(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.Seed.Login != "" && c.Seed.Password == "" {
		return errors.New("SEED_ADMIN_PASSWORD must be set when SEED_ADMIN_LOGIN is")
	}
	return nil
}
