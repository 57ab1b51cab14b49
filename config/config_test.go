package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv(ConfigPathEnvVar, "")
	os.Unsetenv(ConfigPathEnvVar)
	chdir(t, t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "super-secret-key")
	t.Setenv("DB_HOST", "localhost")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "JWT", cfg.Auth.HeaderPrefix)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	clearEnv(t)
	t.Setenv("SECRET_KEY", "super-secret-key")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "stores")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRATION", "1h")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t,
		"host=db.internal user=app password=pw dbname=stores port=6543 sslmode=disable",
		cfg.Database.PostgresDSN())
}

func TestLoad_YAMLFileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
server:
  port: 7000
database:
  driver: sqlite
  dsn: "file::memory:"
auth:
  secret_key: from-file-secret
  token_ttl: 30m
log:
  format: console
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("PORT", "7100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Server.Port, "env must override file")
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "from-file-secret", cfg.Auth.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dotenv := "SECRET_KEY=dotenv-secret\nDB_DRIVER=sqlite\nDB_DSN=stores.db\n"
	require.NoError(t, os.WriteFile(".env", []byte(dotenv), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SECRET_KEY")
		os.Unsetenv("DB_DRIVER")
		os.Unsetenv("DB_DSN")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-secret", cfg.Auth.SecretKey)
	assert.Equal(t, "stores.db", cfg.Database.DSN)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.Auth.SecretKey = "" }, wantErr: true},
		{name: "short secret", mutate: func(c *Config) { c.Auth.SecretKey = "abc" }, wantErr: true},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }, wantErr: true},
		{name: "postgres without host", mutate: func(c *Config) { c.Database.Host = "" }, wantErr: true},
		{name: "postgres with dsn only", mutate: func(c *Config) {
			c.Database.Host = ""
			c.Database.DSN = "postgres://localhost/stores"
		}},
		{name: "sqlite without dsn", mutate: func(c *Config) { c.Database.Driver = DriverSQLite }, wantErr: true},
		{name: "bad log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTL = 0 }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Auth.SecretKey = "super-secret-key"
			cfg.Database.Host = "localhost"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
