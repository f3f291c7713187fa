package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() Config {
	return Config{
		Port:        "3010",
		Env:         "development",
		AdminToken:  DefaultAdminToken,
		DBPath:      "restaurant.db",
		UploadMaxMB: 5,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("development defaults pass", func(t *testing.T) {
		t.Parallel()
		cfg := validTestConfig()
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing required values fail", func(t *testing.T) {
		t.Parallel()

		cfg := validTestConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())

		cfg = validTestConfig()
		cfg.AdminToken = ""
		assert.Error(t, cfg.Validate())

		cfg = validTestConfig()
		cfg.DBPath = ""
		assert.Error(t, cfg.Validate())

		cfg = validTestConfig()
		cfg.UploadMaxMB = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects the default admin token", func(t *testing.T) {
		t.Parallel()
		cfg := validTestConfig()
		cfg.Env = "production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects short admin tokens", func(t *testing.T) {
		t.Parallel()
		cfg := validTestConfig()
		cfg.Env = "production"
		cfg.AdminToken = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("production accepts a strong token", func(t *testing.T) {
		t.Parallel()
		cfg := validTestConfig()
		cfg.Env = "prod"
		cfg.AdminToken = "a-long-enough-production-token"
		assert.NoError(t, cfg.Validate())
	})
}

func TestIsProduction(t *testing.T) {
	t.Parallel()

	cfg := validTestConfig()
	assert.False(t, cfg.IsProduction())

	cfg.Env = "production"
	assert.True(t, cfg.IsProduction())

	cfg.Env = "prod"
	assert.True(t, cfg.IsProduction())
}
