package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"

	"github.com/wattfource/inxidash/internal/category"
	"github.com/wattfource/inxidash/internal/report"
)

// Colors
var (
	primaryColor   = lipgloss.Color("212") // Pink/magenta
	secondaryColor = lipgloss.Color("39")  // Cyan
	mutedColor     = lipgloss.Color("245") // Gray
)

// TextOptions tune terminal output.
type TextOptions struct {
	NoColor    bool
	ValueWidth int // Wrap values wider than this, zero means 80
}

type textStyles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	category lipgloss.Style
	section  lipgloss.Style
}

func newTextStyles(w io.Writer, noColor bool) textStyles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return textStyles{
		title: r.NewStyle().
			Bold(true).
			Foreground(primaryColor),
		subtitle: r.NewStyle().
			Foreground(mutedColor).
			Italic(true),
		category: r.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(primaryColor).
			MarginTop(1),
		section: r.NewStyle().
			Bold(true).
			Foreground(secondaryColor),
	}
}

// Text writes a categorized, non-interactive terminal rendering of rep.
func Text(w io.Writer, rep *report.SystemReport, opts TextOptions) error {
	if rep == nil {
		return errors.New("no report to render")
	}
	if opts.ValueWidth <= 0 {
		opts.ValueWidth = 80
	}

	s := newTextStyles(w, opts.NoColor)

	var b strings.Builder
	b.WriteString(s.title.Render("Inxi System Report"))
	b.WriteString("\n")
	b.WriteString(s.subtitle.Render(fmt.Sprintf("mode %s · UTC %s · %d sections",
		rep.Mode, formatUTC(rep.Timestamp), len(rep.Sections))))
	b.WriteString("\n")

	categories := category.Categorize(rep.Sections)
	if len(categories) == 0 {
		b.WriteString("\nNo sections captured.\n")
	}

	for _, c := range categories {
		b.WriteString(s.category.Render(c.Label))
		b.WriteString("\n")

		for _, section := range c.Sections {
			b.WriteString(s.section.Render(section.Title))
			b.WriteString("\n")
			b.WriteString(sectionTable(section, opts.ValueWidth))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "failed to write report")
}

func sectionTable(section *report.Section, width int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: width},
	})

	if len(section.Entries) == 0 {
		t.AppendRow(table.Row{"-", "-"})
	}
	for _, e := range section.Entries {
		t.AppendRow(table.Row{e.Key, e.Value})
	}

	return t.Render()
}
