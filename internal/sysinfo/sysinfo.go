// Package sysinfo runs inxi with a fixed argument list per detail level
// and turns its output into a structured report.
package sysinfo

import (
	"bytes"
	"context"
	"io/fs"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"

	"github.com/wattfource/inxidash/internal/ansi"
	"github.com/wattfource/inxidash/internal/logging"
	"github.com/wattfource/inxidash/internal/report"
)

var (
	// ErrMissingBinary is returned when the inxi executable cannot be found.
	ErrMissingBinary = errors.New("inxi binary not found in PATH")
	// ErrCommandFailure is returned when inxi exits non-zero or times out.
	ErrCommandFailure = errors.New("inxi execution failed")
)

// Config controls how inxi is invoked
type Config struct {
	Binary     string        // Name or path of the inxi executable
	Timeout    time.Duration // Per-attempt limit, zero disables it
	Retries    uint64        // Extra attempts after a command failure
	RetryDelay time.Duration
}

// DefaultConfig returns the stock collector configuration
func DefaultConfig() Config {
	return Config{
		Binary:     "inxi",
		Timeout:    30 * time.Second,
		RetryDelay: 500 * time.Millisecond,
	}
}

// BinaryInfo describes the resolved inxi installation
type BinaryInfo struct {
	Path    string `json:"path" yaml:"path"`
	Version string `json:"version" yaml:"version"`
}

// Collector captures inxi output. Concurrent captures of the same mode
// share one process.
type Collector struct {
	cfg   Config
	group singleflight.Group
	log   *logging.Logger
	now   func() time.Time
}

// New creates a collector
func New(cfg Config) *Collector {
	if cfg.Binary == "" {
		cfg.Binary = "inxi"
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 500 * time.Millisecond
	}

	return &Collector{
		cfg: cfg,
		log: logging.WithComponent("sysinfo"),
		now: time.Now,
	}
}

// Collect captures inxi output for mode, strips terminal formatting and
// assembles a report stamped with the current time.
func (c *Collector) Collect(ctx context.Context, mode Mode) (*report.SystemReport, error) {
	raw, err := c.Capture(ctx, mode)
	if err != nil {
		return nil, err
	}

	rep, err := report.Assemble(ansi.Strip(raw), mode.String(), c.now())
	if err != nil {
		return nil, err
	}

	c.log.WithFields(map[string]any{
		"mode":     mode.String(),
		"sections": len(rep.Sections),
		"entries":  rep.EntryCount(),
	}).Debug("report assembled")

	return rep, nil
}

// Capture runs inxi for mode and returns its stdout decoded as UTF-8,
// with invalid byte sequences replaced.
func (c *Collector) Capture(ctx context.Context, mode Mode) (string, error) {
	if !mode.valid() {
		return "", errors.Wrapf(ErrInvalidMode, "%d", int(mode))
	}

	// The shared run outlives any single caller; a cancelled caller
	// returns early and the others still get the result.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(mode.String(), func() (any, error) {
		return c.capture(shared, mode)
	})

	select {
	case <-ctx.Done():
		return "", errors.Wrap(ctx.Err(), "inxi capture abandoned")
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Collector) capture(ctx context.Context, mode Mode) (string, error) {
	args := mode.Args()
	log := c.log.WithFields(map[string]any{
		"command": c.cfg.Binary,
		"mode":    mode.String(),
		"args":    strings.Join(args, " "),
	})
	log.Info("running inxi")
	done := log.Timed("inxi finished")

	var out string
	attempt := 0
	backoff := retry.WithMaxRetries(c.cfg.Retries, retry.NewConstant(c.cfg.RetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		stdout, err := c.run(ctx, args...)
		if err == nil {
			out = stdout
			return nil
		}
		if errors.Is(err, ErrCommandFailure) {
			log.WithError(err).Warnf("inxi attempt %d of %d failed", attempt, c.cfg.Retries+1)
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		log.WithError(err).Error("inxi failed")
		return "", err
	}

	done()
	return out, nil
}

func (c *Collector) run(ctx context.Context, args ...string) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.cfg.Binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return "", ErrMissingBinary
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errors.Wrapf(ErrCommandFailure, "timed out after %s", c.cfg.Timeout)
		}

		msg := strings.TrimSpace(strings.ToValidUTF8(stderr.String(), "\uFFFD"))
		if msg == "" {
			msg = err.Error()
		}
		return "", errors.Wrap(ErrCommandFailure, msg)
	}

	return strings.ToValidUTF8(stdout.String(), "\uFFFD"), nil
}

// Check resolves the inxi binary and reads its version
func (c *Collector) Check(ctx context.Context) (BinaryInfo, error) {
	path, err := exec.LookPath(c.cfg.Binary)
	if err != nil {
		return BinaryInfo{}, ErrMissingBinary
	}

	out, err := c.run(ctx, "--version")
	if err != nil {
		return BinaryInfo{Path: path}, err
	}

	return BinaryInfo{Path: path, Version: extractVersion(out)}, nil
}

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[a-zA-Z0-9]+)?)`)

// extractVersion extracts a version number from command output
func extractVersion(output string) string {
	if match := versionPattern.FindStringSubmatch(output); len(match) > 1 {
		return match[1]
	}

	// Just return first line if no pattern matches
	first, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	return strings.TrimSpace(first)
}
