package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeEnvFile(t, `
PORT=8080
ENVIRONMENT=production
ADMIN_USERNAME=owner
ADMIN_PASSWORD=Sup3r_secret!
AUTH_MODE=session
STORAGE_BACKEND=mongo
MONGO_URI=mongodb://localhost:27017
MONGO_DB=inkpost
RATE_LIMIT_ENABLED=false
MAIL_ENABLED=true
MAIL_HOST=smtp.example.com
MAIL_PORT=587
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "owner", cfg.AdminUsername)
	assert.Equal(t, "session", cfg.AuthMode)
	assert.Equal(t, "mongo", cfg.StorageBackend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "inkpost", cfg.MongoDBName)
	assert.False(t, cfg.RateLimitEnabled)
	assert.True(t, cfg.MailEnabled)
	assert.Equal(t, "smtp.example.com", cfg.MailHost)
	assert.Equal(t, 587, cfg.MailPort)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeEnvFile(t, `
ADMIN_USERNAME=owner
ADMIN_PASSWORD=secret
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "file", cfg.StorageBackend)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "disk", cfg.UploadBackend)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, float64(10), cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, err)
}
