package sysinfo

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidMode is returned for detail levels outside the fixed set.
var ErrInvalidMode = errors.New("invalid mode requested")

// Mode is an inxi detail level. Each maps to a fixed argument list so no
// request input ever reaches the command line.
type Mode int

const (
	ModeBasic Mode = iota
	ModeFull
	ModeVerbose
	ModeMaximum
)

var modeNames = [...]string{"basic", "full", "verbose", "maximum"}

var modeLabels = [...]string{"Basic", "Full", "Verbose", "Maximum"}

var modeArgs = [...][]string{
	{"-F"},
	{"-F", "-z"},
	{"-a", "-F", "-z"},
	{"-a", "-F", "-x", "-x", "-x", "-z"},
}

// Dashboard cards show at most this many entries per mode.
var modeEntryLimits = [...]int{5, 7, 9, 11}

// String returns the lower-case mode name used in URLs and reports.
func (m Mode) String() string {
	if !m.valid() {
		return "unknown"
	}
	return modeNames[m]
}

// Label returns the display name.
func (m Mode) Label() string {
	if !m.valid() {
		return "Unknown"
	}
	return modeLabels[m]
}

// Args returns a copy of the inxi arguments for the mode.
func (m Mode) Args() []string {
	if !m.valid() {
		return nil
	}
	return append([]string(nil), modeArgs[m]...)
}

// EntryLimit returns how many entries a dashboard card shows in this mode.
func (m Mode) EntryLimit() int {
	if !m.valid() {
		return 0
	}
	return modeEntryLimits[m]
}

func (m Mode) valid() bool {
	return m >= ModeBasic && m <= ModeMaximum
}

// ParseMode accepts a mode name in any case with surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for i, name := range modeNames {
		if name == normalized {
			return Mode(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidMode, "%q", s)
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeBasic, ModeFull, ModeVerbose, ModeMaximum}
}
