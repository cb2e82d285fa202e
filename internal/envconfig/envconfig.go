// Package envconfig loads the rawrlambda binary's settings from the
// environment. Variables use the RAWR_ prefix; a .env file in the working
// directory is read first when present and never overrides variables that
// are already set.
package envconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Prefix is prepended to every variable name.
const Prefix = "RAWR_"

// Config holds the binary's settings.
type Config struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"DEVELOPMENT"`

	HealthPath string `env:"HEALTH_PATH" envDefault:"/healthz"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	AllowCIDRs     []string `env:"ALLOW_CIDRS" envSeparator:","`
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	CacheL1MaxCost int64         `env:"CACHE_L1_MAX_COST" envDefault:"33554432"`
	CacheTTL       time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	Metrics bool `env:"METRICS" envDefault:"true"`
	Tracing bool `env:"TRACING"`
}

// Load reads the given dotenv files (".env" when none are named) and parses
// the environment into a Config. A missing default .env file is not an
// error; a missing named file is.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("envconfig: load .env: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return Config{}, fmt.Errorf("envconfig: load %v: %w", files, err)
	}

	cfg, err := env.ParseAsWithOptions[Config](env.Options{Prefix: Prefix})
	if err != nil {
		return Config{}, fmt.Errorf("envconfig: %w", err)
	}
	return cfg, nil
}

// Logger builds a zap logger: a development logger when Development is set,
// otherwise a JSON production logger at LogLevel.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("envconfig: log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
