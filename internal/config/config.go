// Package config handles inxidash configuration
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	env "github.com/hashicorp/go-envparse"
	"github.com/pkg/errors"

	"github.com/wattfource/inxidash/internal/sysinfo"
)

// ErrInvalidKey is returned for config keys inxidash does not know
var ErrInvalidKey = errors.New("invalid config key")

// Config keys
const (
	KeyAddr        = "INXIDASH_ADDR"
	KeyDefaultMode = "INXIDASH_DEFAULT_MODE"
	KeyBinary      = "INXIDASH_BINARY"
	KeyTimeout     = "INXIDASH_TIMEOUT"
	KeyRetries     = "INXIDASH_RETRIES"
	KeyLogLevel    = "INXIDASH_LOG_LEVEL"
	KeyLogFile     = "INXIDASH_LOG_FILE"
	KeyLogJSON     = "INXIDASH_LOG_JSON"
)

// Config holds inxidash settings
type Config struct {
	Addr        string        `validate:"required,hostname_port"`
	DefaultMode string        `validate:"mode"`
	Binary      string        `validate:"required"`
	Timeout     time.Duration `validate:"gte=0"`
	Retries     uint64        `validate:"lte=10"`
	LogLevel    string        `validate:"loglevel"`
	LogFile     string
	LogJSON     bool
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Addr:        "127.0.0.1:3050",
		DefaultMode: "basic",
		Binary:      "inxi",
		Timeout:     30 * time.Second,
		Retries:     0,
		LogLevel:    "info",
	}
}

// Paths returns the config directory and file paths
func Paths() (dir string, file string) {
	home, _ := os.UserHomeDir()
	dir = filepath.Join(home, ".config", "inxidash")
	file = filepath.Join(dir, "config")
	return
}

// Load reads the configuration at path. An empty path means the default
// location, which may be absent.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		_, path = Paths()
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil // Return defaults if no config
		}
		return nil, errors.Wrap(err, "failed to open config file")
	}

	return Parse(content)
}

// Parse reads KEY=VALUE content over the defaults and validates the result
func Parse(content []byte) (*Config, error) {
	values, err := env.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}

	cfg := Default()
	for key, value := range values {
		if err := cfg.Set(key, value); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Set assigns one key
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyAddr:
		c.Addr = value
	case KeyDefaultMode:
		c.DefaultMode = value
	case KeyBinary:
		c.Binary = value
	case KeyTimeout:
		d, err := time.ParseDuration(value)
		if err != nil {
			return errors.Wrapf(err, "%s", key)
		}
		c.Timeout = d
	case KeyRetries:
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s", key)
		}
		c.Retries = n
	case KeyLogLevel:
		c.LogLevel = value
	case KeyLogFile:
		c.LogFile = value
	case KeyLogJSON:
		switch value {
		case "on":
			c.LogJSON = true
		case "off", "":
			c.LogJSON = false
		default:
			return errors.Errorf("%s must be on or off, got %q", key, value)
		}
	default:
		return errors.Wrapf(ErrInvalidKey, "%s", key)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("mode", oneOf(ModeOptions))
	v.RegisterValidation("loglevel", oneOf(LogLevelOptions))
	return v
}

func oneOf(options func() []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(options(), fl.Field().String())
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Save writes the configuration to path, or the default location when
// path is empty
func Save(cfg *Config, path string) error {
	if path == "" {
		_, path = Paths()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	logJSON := "off"
	if cfg.LogJSON {
		logJSON = "on"
	}

	content := fmt.Sprintf(`%s=%s
%s=%s
%s=%s
%s=%s
%s=%d
%s=%s
%s=%s
%s=%s
`,
		KeyAddr, cfg.Addr,
		KeyDefaultMode, cfg.DefaultMode,
		KeyBinary, cfg.Binary,
		KeyTimeout, cfg.Timeout,
		KeyRetries, cfg.Retries,
		KeyLogLevel, cfg.LogLevel,
		KeyLogFile, cfg.LogFile,
		KeyLogJSON, logJSON,
	)

	return os.WriteFile(path, []byte(content), 0644)
}

// ModeOptions returns the accepted default modes
func ModeOptions() []string {
	modes := sysinfo.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}

// LogLevelOptions returns the accepted log levels
func LogLevelOptions() []string {
	return []string{"debug", "info", "warn", "error"}
}
