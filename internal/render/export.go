package render

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/wattfource/inxidash/internal/report"
)

// Export writes rep in format f. Every format ParseFormat accepts works.
func Export(w io.Writer, rep *report.SystemReport, f Format) error {
	if rep == nil {
		return errors.New("no report to export")
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(rep), "failed to encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		return errors.Wrap(enc.Close(), "failed to encode yaml")
	case FormatHTML:
		return Download(w, rep)
	case FormatText:
		return Text(w, rep, TextOptions{})
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", string(f))
}
