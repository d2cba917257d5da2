// Package logging provides structured logging for inxidash
// Supports multiple log levels, file rotation, and JSON or console output
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, errors.Errorf("unknown log level %q", s)
}

// Logger provides structured logging
type Logger struct {
	zl   zerolog.Logger
	file *rotatingFile
}

// Config holds logger configuration
type Config struct {
	Level     Level
	FilePath  string    // Empty logs to Output
	MaxSizeMB int       // Max log file size in MB (default 10)
	JSONMode  bool      // Output as JSON lines
	Component string
	Output    io.Writer // Defaults to stderr
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:     LevelInfo,
		MaxSizeMB: 10,
		Component: "inxidash",
	}
}

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// Init replaces the default logger
func Init(cfg Config) error {
	l, err := New(cfg)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultMu.Unlock()

	if old != nil {
		old.Close()
	}
	return nil
}

// Default returns the default logger, initializing if necessary
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultLogger == nil {
		defaultLogger, _ = New(DefaultConfig())
	}
	return defaultLogger
}

// New creates a new logger
func New(cfg Config) (*Logger, error) {
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	l := &Logger{}

	if cfg.FilePath != "" {
		f, err := openRotating(cfg.FilePath, int64(cfg.MaxSizeMB)*1024*1024)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open log file")
		}
		l.file = f
		out = f
	}

	if !cfg.JSONMode {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    l.file != nil,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	ctx := zerolog.New(out).Level(cfg.Level.zerolog()).With().Timestamp()
	if cfg.Component != "" {
		ctx = ctx.Str("component", cfg.Component)
	}
	l.zl = ctx.Logger()

	return l, nil
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// WithComponent returns a new logger with the given component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		zl:   l.zl.With().Str("component", component).Logger(),
		file: l.file,
	}
}

// WithField returns a new logger with the given field added
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{
		zl:   l.zl.With().Interface(key, value).Logger(),
		file: l.file,
	}
}

// WithFields returns a new logger with the given fields added
func (l *Logger) WithFields(fields map[string]any) *Logger {
	return &Logger{
		zl:   l.zl.With().Fields(fields).Logger(),
		file: l.file,
	}
}

// WithError returns a new logger carrying err
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		zl:   l.zl.With().Err(err).Logger(),
		file: l.file,
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.log(LevelDebug, msg)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.log(LevelInfo, msg)
}

// Infof logs a formatted info message
func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(msg string) {
	l.log(LevelWarn, msg)
}

// Warnf logs a formatted warning message
func (l *Logger) Warnf(format string, args ...any) {
	l.log(LevelWarn, fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.log(LevelError, msg)
}

func (l *Logger) log(level Level, msg string) {
	event := l.zl.WithLevel(level.zerolog())
	if event == nil {
		return
	}

	// Add caller info for debug and error levels
	if level == LevelDebug || level == LevelError {
		if _, file, line, ok := runtime.Caller(2); ok {
			event = event.Str("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
		}
	}

	event.Msg(msg)
}

// LogPath returns the path to the log file
func (l *Logger) LogPath() string {
	if l.file == nil {
		return ""
	}
	return l.file.path
}

// rotatingFile is an append-only log file that rotates at maxSize,
// keeping five generations (.1 newest).
type rotatingFile struct {
	mu      sync.Mutex
	path    string
	file    *os.File
	size    int64
	maxSize int64
}

func openRotating(path string, maxSize int64) (*rotatingFile, error) {
	r := &rotatingFile{path: path, maxSize: maxSize}
	if err := r.open(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rotatingFile) open() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}

	r.file = f
	r.size = stat.Size()
	return nil
}

func (r *rotatingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}

	if r.maxSize > 0 && r.size > 0 && r.size+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := r.file.Write(p)
	r.size += int64(n)
	return n, err
}

func (r *rotatingFile) rotate() error {
	if err := r.file.Close(); err != nil {
		return err
	}

	// Rotate: rename current to .1, .1 to .2, etc.
	for i := 4; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", r.path, i), fmt.Sprintf("%s.%d", r.path, i+1))
	}
	if err := os.Rename(r.path, r.path+".1"); err != nil {
		return err
	}

	return r.open()
}

func (r *rotatingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// WithComponent returns a logger with the given component name
func WithComponent(component string) *Logger {
	return Default().WithComponent(component)
}

// RequestLogger creates a logger scoped to one HTTP request
func RequestLogger(requestID string) *Logger {
	return Default().WithComponent("http").WithField("request_id", requestID)
}

// Timed returns a function that logs msg at info with the elapsed time
func (l *Logger) Timed(msg string) func() {
	start := time.Now()
	return func() {
		l.WithField("elapsed_ms", time.Since(start).Milliseconds()).Info(msg)
	}
}
