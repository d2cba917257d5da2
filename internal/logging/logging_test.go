package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: LevelInfo, JSONMode: true, Component: "test", Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.WithField("mode", "full").Info("running inxi")
	l.WithError(errors.New("boom")).Error("failed")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)

	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "running inxi", lines[0]["message"])
	assert.Equal(t, "full", lines[0]["mode"])
	assert.Equal(t, "test", lines[0]["component"])

	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "boom", lines[1]["error"])
	assert.Contains(t, lines[1]["caller"], "logging_test.go")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: LevelDebug, JSONMode: true, Output: &buf})
	require.NoError(t, err)

	sub := l.WithComponent("server")
	sub.WithFields(map[string]any{"status": 404, "path": "/x"}).Warnf("not found: %s", "/x")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "server", lines[0]["component"])
	assert.Equal(t, "warn", lines[0]["level"])
	assert.Equal(t, float64(404), lines[0]["status"])
	assert.Equal(t, "not found: /x", lines[0]["message"])
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: LevelInfo, Component: "cli", Output: &buf})
	require.NoError(t, err)

	l.Info("listening")
	assert.Contains(t, buf.String(), "listening")
	assert.Contains(t, buf.String(), "cli")
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
	} {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "WARN", LevelWarn.String())
}

func TestFileRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "inxidash.log")
	l, err := New(Config{Level: LevelInfo, FilePath: path, MaxSizeMB: 1, JSONMode: true})
	require.NoError(t, err)
	defer l.Close()

	assert.Equal(t, path, l.LogPath())

	// Shrink the threshold so a few writes trigger rotation.
	l.file.maxSize = 200
	for i := 0; i < 10; i++ {
		l.Infof("entry %d with some padding to fill the file", i)
	}

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "rotated file should exist")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(200))

	require.NoError(t, l.Close())
	_, err = l.file.Write([]byte("late"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestInitReplacesDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: LevelInfo, JSONMode: true, Component: "root", Output: &buf}))
	t.Cleanup(func() { Init(DefaultConfig()) })

	WithComponent("sysinfo").Info("captured")
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "sysinfo", lines[0]["component"])
	assert.Equal(t, "", Default().LogPath())
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Config{Level: LevelInfo, JSONMode: true, Output: &buf}))
	t.Cleanup(func() { Init(DefaultConfig()) })

	RequestLogger("0f8e").WithField("status", 200).Info("request served")
	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "http", lines[0]["component"])
	assert.Equal(t, "0f8e", lines[0]["request_id"])
}
