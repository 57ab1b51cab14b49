// Package config loads runtime configuration for the stores API.
//
// Values are layered, lowest priority first:
//
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH or the --config flag)
//  3. environment variables, after a .env file has been merged into the environment
//
// The environment names used by earlier deployments (SECRET_KEY, DB_HOST, DB_USER,
// DB_PASSWORD, DB_NAME, DB_PORT, PORT) are still honoured.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	Log       LogConfig       `koanf:"log"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Mode            string        `koanf:"mode" validate:"oneof=debug release test"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver   string `koanf:"driver" validate:"oneof=postgres sqlite"`
	DSN      string `koanf:"dsn"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port" validate:"min=0,max=65535"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`

	// LogLevel controls the ORM query logger: silent, error, warn or info.
	LogLevel      string        `koanf:"log_level" validate:"oneof=silent error warn info"`
	SlowThreshold time.Duration `koanf:"slow_threshold"`
}

// PostgresDSN builds a libpq keyword/value DSN unless an explicit DSN is set.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

type AuthConfig struct {
	SecretKey    string        `koanf:"secret_key" validate:"required,min=8"`
	TokenTTL     time.Duration `koanf:"token_ttl" validate:"gt=0"`
	HeaderPrefix string        `koanf:"header_prefix" validate:"required"`
	BcryptCost   int           `koanf:"bcrypt_cost" validate:"min=4,max=31"`
	UserCacheTTL time.Duration `koanf:"user_cache_ttl" validate:"gte=0"`

	// HashWorkers sizes the bcrypt worker pool; 0 means one per CPU.
	HashWorkers int `koanf:"hash_workers" validate:"min=0"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// RateLimitConfig throttles the credential endpoints per client IP.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps" validate:"gt=0"`
	Burst   int     `koanf:"burst" validate:"min=1"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            8080,
			Mode:            "release",
			ShutdownTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:        DriverPostgres,
			Port:          5432,
			SSLMode:       "disable",
			LogLevel:      "silent",
			SlowThreshold: 200 * time.Millisecond,
		},
		Auth: AuthConfig{
			TokenTTL:     5 * time.Minute,
			HeaderPrefix: "JWT",
			BcryptCost:   12,
			HashWorkers:  0,
			UserCacheTTL: 5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     5,
			Burst:   10,
		},
	}
}

// envKeys maps environment variable names onto koanf paths.
var envKeys = map[string]string{
	"PORT":               "server.port",
	"SERVER_HOST":        "server.host",
	"GIN_MODE":           "server.mode",
	"SHUTDOWN_TIMEOUT":   "server.shutdown_timeout",
	"DB_DRIVER":          "database.driver",
	"DB_DSN":             "database.dsn",
	"DB_HOST":            "database.host",
	"DB_PORT":            "database.port",
	"DB_USER":            "database.user",
	"DB_PASSWORD":        "database.password",
	"DB_NAME":            "database.name",
	"DB_SSLMODE":         "database.sslmode",
	"DB_LOG_LEVEL":       "database.log_level",
	"DB_SLOW_THRESHOLD":  "database.slow_threshold",
	"SECRET_KEY":         "auth.secret_key",
	"JWT_EXPIRATION":     "auth.token_ttl",
	"AUTH_HEADER_PREFIX": "auth.header_prefix",
	"BCRYPT_COST":        "auth.bcrypt_cost",
	"HASH_WORKERS":       "auth.hash_workers",
	"USER_CACHE_TTL":     "auth.user_cache_ttl",
	"LOG_LEVEL":          "log.level",
	"LOG_FORMAT":         "log.format",
	"RATE_LIMIT_ENABLED": "ratelimit.enabled",
	"RATE_LIMIT_RPS":     "ratelimit.rps",
	"RATE_LIMIT_BURST":   "ratelimit.burst",
}

// envTransformFunc returns "" for variables the service does not read, which
// makes the provider skip them.
func envTransformFunc(key string) string {
	return envKeys[key]
}

// LoadEnvVars merges the given dotenv files (default ".env") into the process
// environment. Missing files are not an error; variables already set win.
func LoadEnvVars(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration. path may be empty, in which case CONFIG_PATH
// is consulted and, failing that, no file layer is applied.
func Load(path string) (*Config, error) {
	if err := LoadEnvVars(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and the cross-field database rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Database.Driver == DriverPostgres && c.Database.DSN == "" && c.Database.Host == "" {
		return errors.New("invalid configuration: database environment variables not fully set")
	}
	if c.Database.Driver == DriverSQLite && c.Database.DSN == "" {
		return errors.New("invalid configuration: sqlite driver requires database.dsn")
	}
	return nil
}
