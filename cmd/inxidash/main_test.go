package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wattfource/inxidash/internal/config"
	"github.com/wattfource/inxidash/internal/report"
)

const savedOutput = "\x1b[1;34mSystem:\x1b[0m\n  Host: box Kernel: 6.9.7\n\x1b[1;34mCPU:\x1b[0m\n  Info: quad core\n"

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestReportFromInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inxi.txt")
	require.NoError(t, os.WriteFile(path, []byte(savedOutput), 0644))

	t.Run("json from file", func(t *testing.T) {
		out, err := execute(t, "", "report", "--input", path, "--format", "json", "--mode", "full")
		require.NoError(t, err)

		var rep report.SystemReport
		require.NoError(t, json.Unmarshal([]byte(out), &rep))
		assert.Equal(t, "full", rep.Mode)
		assert.Equal(t, []string{"System", "CPU"}, rep.Titles())
		assert.Equal(t, "box Kernel: 6.9.7", rep.Sections[0].Entries[0].Value)
	})

	t.Run("yaml from stdin", func(t *testing.T) {
		out, err := execute(t, savedOutput, "report", "-i", "-", "-f", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "mode: basic")
		assert.Contains(t, out, "title: CPU")
	})

	t.Run("text", func(t *testing.T) {
		out, err := execute(t, savedOutput, "report", "-i", "-", "--no-color")
		require.NoError(t, err)
		assert.Contains(t, out, "Inxi System Report")
		assert.Contains(t, out, "quad core")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("invalid utf8 decoded lossily", func(t *testing.T) {
		out, err := execute(t, "CPU:\n  Info: fo\xffrge\xc2\x01\x85x\n", "report", "-i", "-", "-f", "yaml")
		require.NoError(t, err)
		assert.NotContains(t, out, "!!binary")
		assert.Contains(t, out, "fo\uFFFDrge\uFFFD\uFFFDx")

		out, err = execute(t, "CPU:\n  Info: a\xc2\x01\x85b\n", "report", "-i", "-", "-f", "json")
		require.NoError(t, err)
		assert.NotContains(t, out, "\u0085")
		assert.True(t, utf8.ValidString(out))
	})

	t.Run("invalid mode", func(t *testing.T) {
		_, err := execute(t, savedOutput, "report", "-i", "-", "--mode", "extreme")
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := execute(t, savedOutput, "report", "-i", "-", "--format", "pdf")
		assert.Error(t, err)
	})

	t.Run("missing input file", func(t *testing.T) {
		_, err := execute(t, "", "report", "-i", filepath.Join(t.TempDir(), "none"))
		assert.Error(t, err)
	})
}

func TestModes(t *testing.T) {
	out, err := execute(t, "", "modes")
	require.NoError(t, err)

	for _, want := range []string{"basic", "full", "verbose", "maximum", "[-a -F -x -x -x -z]"} {
		assert.Contains(t, out, want)
	}
}

func TestHelpListsOptions(t *testing.T) {
	out, err := execute(t, "", "report", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "basic, full, verbose, maximum")
	assert.Contains(t, out, "debug, info, warn, error")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inxidash", "config")

	out, err := execute(t, "", "config", "init", "--config", path, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:3050", cfg.Addr)

	_, err = execute(t, "", "config", "init", "--config", path)
	assert.Error(t, err, "existing file is kept without --force")

	_, err = execute(t, "", "config", "init", "--config", path, "--force")
	assert.NoError(t, err)

	out, err = execute(t, "", "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "INXIDASH_DEFAULT_MODE")
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("INXIDASH_UNKNOWN=1\n"), 0644))

	_, err := execute(t, "", "modes", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "", "modes", "--log-level", "loud")
	assert.Error(t, err)
}

func TestCheckMissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("INXIDASH_BINARY=/nonexistent/inxi\n"), 0644))

	_, err := execute(t, "", "check", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "", "serve", "--config", path)
	assert.Error(t, err, "serve fails fast without inxi")
}
