package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`

	// DatabaseDriver is "sqlite" or "postgres".
	DatabaseDriver string `env:"PROFILES_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"PROFILES_DATABASE_FILE" envDefault:"profiles.db"`
	DatabaseURL    string `env:"PROFILES_DATABASE_URL"`
	PepperFile     string `env:"PROFILES_PEPPER_FILE" envDefault:"pepper"`

	// TokenTTL of zero means tokens never expire.
	TokenTTL time.Duration `env:"PROFILES_TOKEN_TTL" envDefault:"0s"`
	// PrivateDirectory requires a token for profile reads.
	PrivateDirectory bool `env:"PROFILES_PRIVATE_DIRECTORY" envDefault:"false"`
}

// LoadConfig reads the environment, after loading PROFILES_ENV_FILE (default
// .env) when that file exists. Variables already set win over the file.
func LoadConfig() (Config, error) {
	envFile := os.Getenv("PROFILES_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env can't express in tags.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			return errors.New("PROFILES_DATABASE_FILE is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("PROFILES_DATABASE_URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown PROFILES_DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.TokenTTL < 0 {
		return errors.New("PROFILES_TOKEN_TTL must not be negative")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT %d out of range", c.Port)
	}
	return nil
}
