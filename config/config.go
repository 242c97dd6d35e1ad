// Package config loads the application configuration from defaults, an
// optional YAML file, a .env file and DEBTPLAN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "DEBTPLAN"

type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Server struct {
		Addr            string        `mapstructure:"addr" yaml:"addr"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
		IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	} `mapstructure:"server" yaml:"server"`

	Storage struct {
		Driver      string `mapstructure:"driver" yaml:"driver"`
		SQLitePath  string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
		PostgresDSN string `mapstructure:"postgres_dsn" yaml:"-"`
	} `mapstructure:"storage" yaml:"storage"`

	Cache struct {
		Driver        string        `mapstructure:"driver" yaml:"driver"`
		RedisAddr     string        `mapstructure:"redis_addr" yaml:"redis_addr"`
		RedisPassword string        `mapstructure:"redis_password" yaml:"-"`
		RedisDB       int           `mapstructure:"redis_db" yaml:"redis_db"`
		TTL           time.Duration `mapstructure:"ttl" yaml:"ttl"`
	} `mapstructure:"cache" yaml:"cache"`

	Planner struct {
		CapMonths int   `mapstructure:"cap_months" yaml:"cap_months"`
		Precision int32 `mapstructure:"precision" yaml:"precision"`
		MaxDebts  int   `mapstructure:"max_debts" yaml:"max_debts"`
	} `mapstructure:"planner" yaml:"planner"`

	AI struct {
		Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
		Model   string        `mapstructure:"model" yaml:"model"`
		Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
		APIKey  string        `mapstructure:"api_key" yaml:"-"`
	} `mapstructure:"ai" yaml:"ai"`

	RateLimit struct {
		RequestsPerMinute int `mapstructure:"requests_per_minute" yaml:"requests_per_minute"`
		Burst             int `mapstructure:"burst" yaml:"burst"`
	} `mapstructure:"rate_limit" yaml:"rate_limit"`
}

// LoadEnv loads a .env file into the process environment. ENV_FILE names an
// explicit file; a missing default .env is not an error.
func LoadEnv() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load builds the configuration. configFile may be empty, in which case
// config.yaml is searched in $HOME/.debt-planner and the working directory.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.debt-planner")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.BindEnv("ai.api_key", EnvPrefix+"_AI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("bind GEMINI_API_KEY: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("storage.driver", "memory")
	v.SetDefault("storage.sqlite_path", "debt-planner.db")
	v.SetDefault("storage.postgres_dsn", "")

	v.SetDefault("cache.driver", "memory")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)
	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("planner.cap_months", 360)
	v.SetDefault("planner.precision", 2)
	v.SetDefault("planner.max_debts", 50)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout", 30*time.Second)

	v.SetDefault("rate_limit.requests_per_minute", 60)
	v.SetDefault("rate_limit.burst", 10)
}

// Validate rejects settings the application cannot start with.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", c.Log.Format)
	}

	switch c.Storage.Driver {
	case "memory":
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.sqlite_path is required for the sqlite driver")
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be memory, sqlite or postgres)", c.Storage.Driver)
	}

	switch c.Cache.Driver {
	case "none", "memory":
	case "redis":
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis driver")
		}
	default:
		return fmt.Errorf("invalid cache driver: %s (must be none, memory or redis)", c.Cache.Driver)
	}

	if c.Planner.CapMonths < 1 || c.Planner.CapMonths > 1200 {
		return fmt.Errorf("planner.cap_months must be between 1 and 1200, got: %d", c.Planner.CapMonths)
	}
	if c.Planner.Precision < 0 || c.Planner.Precision > 8 {
		return fmt.Errorf("planner.precision must be between 0 and 8, got: %d", c.Planner.Precision)
	}
	if c.Planner.MaxDebts < 1 {
		return fmt.Errorf("planner.max_debts must be positive, got: %d", c.Planner.MaxDebts)
	}

	if c.AI.Enabled && c.AI.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
	}

	if c.RateLimit.RequestsPerMinute < 1 {
		return fmt.Errorf("rate_limit.requests_per_minute must be positive, got: %d", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate_limit.burst must be positive, got: %d", c.RateLimit.Burst)
	}
	return nil
}
