package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from yaml", func(t *testing.T) {
		// Given: a config file with every key set
		path := writeConfig(t, `
log-level: debug
mode: server
http-port: "8080"
search:
  parallel: true
  workers: 8
console:
  human-mark: O
`)

		// When: loading it
		conf, err := Load(path)

		// Then: every value is read
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, ModeServer, conf.Mode)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.True(t, conf.Search.Parallel)
		assert.Equal(t, 8, conf.Search.Workers)
		assert.Equal(t, "O", conf.Console.HumanMark)
	})

	t.Run("Falls back to defaults", func(t *testing.T) {
		// Given: a config file that sets nothing but the log level
		path := writeConfig(t, "log-level: info\n")

		// When: loading it
		conf, err := Load(path)

		// Then: the defaults are used
		require.NoError(t, err)
		assert.Equal(t, ModeConsole, conf.Mode)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.False(t, conf.Search.Parallel)
		assert.Equal(t, 4, conf.Search.Workers)
		assert.Equal(t, "X", conf.Console.HumanMark)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file and an env override for the mode
		path := writeConfig(t, "mode: console\n")
		t.Setenv("MODE", ModeSelfPlay)

		// When: loading it
		conf, err := Load(path)

		// Then: the env value wins
		require.NoError(t, err)
		assert.Equal(t, ModeSelfPlay, conf.Mode)
	})

	t.Run("Missing file", func(t *testing.T) {
		// When: loading a path that does not exist
		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: an error is returned and MustLoad panics
		require.Error(t, err)
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "missing.yml"))
		})
	})
}
