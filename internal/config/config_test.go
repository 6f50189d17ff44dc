package config_test

import (
	"testing"

	"github.com/picklewheel/picklewheel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("requires the frontend secret", func(t *testing.T) {
		t.Setenv("FRONTEND_SECRET", "")
		t.Setenv("JWT_SECRET", "secret")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("development can run on locally signed tokens", func(t *testing.T) {
		t.Setenv("FRONTEND_SECRET", "fe-secret")
		t.Setenv("JWT_SECRET", "jwt-secret")
		t.Setenv("GOOGLE_CLIENT_ID", "")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Environment)
	})

	t.Run("production requires a google client id", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("FRONTEND_SECRET", "fe-secret")
		t.Setenv("JWT_SECRET", "jwt-secret")
		t.Setenv("GOOGLE_CLIENT_ID", "")

		_, err := config.Load()
		assert.Error(t, err)
	})

	t.Run("parses admin emails", func(t *testing.T) {
		t.Setenv("FRONTEND_SECRET", "fe-secret")
		t.Setenv("GOOGLE_CLIENT_ID", "client-id")
		t.Setenv("ADMIN_EMAILS", "root@example.com,second@example.com")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.True(t, cfg.IsAdminEmail("root@example.com"))
		assert.True(t, cfg.IsAdminEmail("second@example.com"))
		assert.False(t, cfg.IsAdminEmail("nobody@example.com"))
		assert.False(t, cfg.IsAdminEmail(""))
	})
}
