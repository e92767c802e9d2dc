package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("minimal config gets defaults", func(t *testing.T) {
		path := writeTestConfig(t, `
[server]
port = ":3000"

[database]
dsn = "data/app.db"
`)

		config, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, ":3000", config.Server.Port)
		assert.Equal(t, "./migrations", config.Database.MigrationsDir)
		assert.Equal(t, defaultSessionTTLDays, config.Auth.SessionTTLDays)
		assert.Equal(t, defaultCacheTTLSeconds, config.Auth.CacheTTLSeconds)
		assert.Empty(t, config.Auth.RedisURL)
	})

	t.Run("missing port is an error", func(t *testing.T) {
		path := writeTestConfig(t, `
[database]
dsn = "data/app.db"
`)

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing dsn is an error", func(t *testing.T) {
		path := writeTestConfig(t, `
[server]
port = ":3000"
`)

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})
}
