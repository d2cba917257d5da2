package report

import (
	"time"

	"github.com/pkg/errors"
)

// ErrParse is returned when a report cannot be assembled.
var ErrParse = errors.New("failed to parse system report")

// Assemble parses clean text and stamps the result with mode and now.
// A timestamp before the Unix epoch is treated as a clock fault.
func Assemble(clean, mode string, now time.Time) (*SystemReport, error) {
	secs := now.Unix()
	if secs < 0 {
		return nil, errors.Wrapf(ErrParse, "clock is before unix epoch: %s", now.UTC().Format(time.RFC3339))
	}

	return &SystemReport{
		Timestamp: uint64(secs),
		Mode:      mode,
		Sections:  Parse(clean),
	}, nil
}
