package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "dev-secret-change-me"

type Config struct {
	Port            string        `env:"PORT,             default=8000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	// CORSAllowedOrigins is a comma separated list; "*" allows any origin.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=*"`

	Auth  AuthConfig
	Store StoreConfig
}

type AuthConfig struct {
	TokenFormat string        `env:"TOKEN_FORMAT, default=jwt"`
	JWTSecret   string        `env:"JWT_SECRET,   default=dev-secret-change-me"`
	PasetoKey   string        `env:"PASETO_KEY"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=1h"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=10"`
	// AllowAdminSignup lets anonymous POST /users create admin accounts.
	AllowAdminSignup bool `env:"ALLOW_ADMIN_SIGNUP, default=true"`
}

type StoreConfig struct {
	SeedAdmin bool `env:"SEED_ADMIN, default=true"`
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Auth.TokenFormat = strings.ToLower(strings.TrimSpace(c.Auth.TokenFormat))

	switch c.Auth.TokenFormat {
	case "jwt":
		if c.Auth.JWTSecret == "" {
			return errors.New("config: JWT_SECRET must not be empty")
		}
		if c.IsProduction() && c.Auth.JWTSecret == DefaultJWTSecret {
			return errors.New("config: JWT_SECRET must be set in production")
		}
	case "paseto":
		if c.Auth.PasetoKey == "" && c.IsProduction() {
			return errors.New("config: PASETO_KEY must be set in production")
		}
		if c.Auth.PasetoKey != "" && len(c.Auth.PasetoKey) != 64 {
			return errors.New("config: PASETO_KEY must be 64 hex characters")
		}
	default:
		return fmt.Errorf("config: unsupported TOKEN_FORMAT %q", c.Auth.TokenFormat)
	}

	if c.Auth.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	return nil
}
