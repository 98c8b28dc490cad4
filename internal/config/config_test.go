package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
database:
  host: db.internal
admin:
  passcode_hash: "$2a$10$abcdefghijklmnopqrstuv"
  token_secret: super-secret
`

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig+`
server:
  port: "9090"
cors:
  allowed_origins:
    - https://notes.example.com
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []string{"https://notes.example.com"}, cfg.CORS.AllowedOrigins)

	// Unset values keep their defaults
	assert.Equal(t, "notesphere", cfg.Database.DBName)
	assert.Equal(t, "12h", cfg.Admin.TokenExpiration)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, minimalConfig)

	t.Setenv("SERVER_PORT", "3001")
	t.Setenv("DB_HOST", "env-host")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, "env-host", cfg.Database.Host)
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("ADMIN_PASSCODE_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("ADMIN_TOKEN_SECRET", "super-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfigRequiresPasscodeHash(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: db.internal
admin:
  token_secret: super-secret
`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "passcode hash")
}

func TestLoadConfigRequiresTokenSecret(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: db.internal
admin:
  passcode_hash: "$2a$10$abcdefghijklmnopqrstuv"
`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "token secret")
}

func TestLoadConfigRejectsBadTokenExpiration(t *testing.T) {
	path := writeConfigFile(t, `
database:
  host: db.internal
admin:
  passcode_hash: "$2a$10$abcdefghijklmnopqrstuv"
  token_secret: super-secret
  token_expiration: not-a-duration
`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "token expiration")
}

func TestGetPostgresConnectionString(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Database.User = "app"
	cfg.Database.Password = "pw"
	cfg.Database.Host = "db"
	cfg.Database.Port = "5433"
	cfg.Database.DBName = "notes"

	assert.Equal(t,
		"postgres://app:pw@db:5433/notes?sslmode=disable",
		cfg.GetPostgresConnectionString())
}
