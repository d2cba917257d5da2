// Package render presents system reports as HTML pages, JSON or YAML
// documents and colored terminal text.
package render

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/wattfource/inxidash/internal/sysinfo"
)

// FilenamePrefix starts every download filename.
const FilenamePrefix = "inxi-dashboard"

// ErrUnknownFormat is returned for output formats other than html, json,
// yaml and text.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output encoding for a report.
type Format string

const (
	FormatHTML Format = "html"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat accepts a format name in any case. Empty input is html.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatJSON, FormatYAML, FormatText:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	case FormatText:
		return "text/plain; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}

// Filename returns the attachment name for a report of mode in format f.
func Filename(mode string, f Format) string {
	return fmt.Sprintf("%s-%s.%s", FilenamePrefix, mode, f.Extension())
}

// Option is a select box entry.
type Option struct {
	Value string
	Label string
}

// ModeOptions lists the detail levels in declaration order.
func ModeOptions() []Option {
	modes := sysinfo.Modes()
	out := make([]Option, len(modes))
	for i, m := range modes {
		out[i] = Option{Value: m.String(), Label: m.Label()}
	}
	return out
}

var themes = []Option{
	{"default", "Balanced"},
	{"dark", "Night"},
	{"royal", "Royal"},
	{"glass", "Glass"},
}

// ThemeOptions lists the built-in visual themes.
func ThemeOptions() []Option {
	return append([]Option(nil), themes...)
}
