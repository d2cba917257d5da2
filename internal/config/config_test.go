package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fullConfig = `
# inxidash
INXIDASH_ADDR=0.0.0.0:8080
INXIDASH_DEFAULT_MODE=full
INXIDASH_BINARY=/usr/bin/inxi
INXIDASH_TIMEOUT=45s
INXIDASH_RETRIES=2
INXIDASH_LOG_LEVEL=debug
INXIDASH_LOG_FILE=/tmp/inxidash.log
INXIDASH_LOG_JSON=on
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parse config file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, fullConfig))
		require.NoError(t, err)

		assert.Equal(t, &Config{
			Addr:        "0.0.0.0:8080",
			DefaultMode: "full",
			Binary:      "/usr/bin/inxi",
			Timeout:     45 * time.Second,
			Retries:     2,
			LogLevel:    "debug",
			LogFile:     "/tmp/inxidash.log",
			LogJSON:     true,
		}, cfg)
	})

	t.Run("missing keys keep defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "INXIDASH_DEFAULT_MODE=verbose\n"))
		require.NoError(t, err)

		want := Default()
		want.DefaultMode = "verbose"
		assert.Equal(t, want, cfg)
	})

	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})

	t.Run("default location may be absent", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid env", "key"},
		{"invalid mode", "INXIDASH_DEFAULT_MODE=extreme"},
		{"empty mode", "INXIDASH_DEFAULT_MODE="},
		{"invalid timeout", "INXIDASH_TIMEOUT=soon"},
		{"negative timeout", "INXIDASH_TIMEOUT=-1s"},
		{"invalid retries", "INXIDASH_RETRIES=-1"},
		{"too many retries", "INXIDASH_RETRIES=50"},
		{"invalid level", "INXIDASH_LOG_LEVEL=loud"},
		{"invalid bool", "INXIDASH_LOG_JSON=yes"},
		{"empty binary", "INXIDASH_BINARY="},
		{"invalid address", "INXIDASH_ADDR=nowhere"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}

	t.Run("unknown key", func(t *testing.T) {
		_, err := Load(writeConfig(t, "WIZARD=on"))
		assert.True(t, errors.Is(err, ErrInvalidKey))
	})
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config")

	cfg := Default()
	cfg.DefaultMode = "maximum"
	cfg.Timeout = 90 * time.Second
	cfg.Retries = 3
	cfg.LogJSON = true
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	t.Run("defaults round trip", func(t *testing.T) {
		require.NoError(t, Save(Default(), path))
		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, Default(), loaded)
	})
}

func TestPaths(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	dir, file := Paths()
	assert.Equal(t, "/home/tester/.config/inxidash", dir)
	assert.Equal(t, "/home/tester/.config/inxidash/config", file)
}

func TestOptions(t *testing.T) {
	assert.Equal(t, []string{"basic", "full", "verbose", "maximum"}, ModeOptions())

	for _, m := range ModeOptions() {
		cfg := Default()
		cfg.DefaultMode = m
		assert.NoError(t, cfg.Validate(), m)
	}
	for _, l := range LogLevelOptions() {
		cfg := Default()
		cfg.LogLevel = l
		assert.NoError(t, cfg.Validate(), l)
	}
}
