package render

import (
	"html/template"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/wattfource/inxidash/internal/category"
	"github.com/wattfource/inxidash/internal/report"
	"github.com/wattfource/inxidash/internal/sysinfo"
)

var funcs = template.FuncMap{
	"utc": formatUTC,
}

var (
	dashboardTmpl = template.Must(template.New("dashboard.html").Funcs(funcs).
			ParseFS(files, "templates/dashboard.html", "templates/cards.html"))
	downloadTmpl = template.Must(template.New("download.html").Funcs(funcs).
			ParseFS(files, "templates/download.html", "templates/cards.html"))
)

// DashboardData is the input of the dashboard page. Report may be nil
// when Error is set.
type DashboardData struct {
	Report  *report.SystemReport
	Mode    string
	Error   string
	Version string
}

type dashboardView struct {
	DashboardData
	Cards        []card
	Modes        []Option
	Themes       []Option
	Entries      int
	SectionCount int
}

// Dashboard writes the interactive dashboard page.
func Dashboard(w io.Writer, data DashboardData) error {
	view := dashboardView{
		DashboardData: data,
		Modes:         ModeOptions(),
		Themes:        ThemeOptions(),
	}
	if data.Report != nil && data.Error == "" {
		limit := 0
		if mode, err := sysinfo.ParseMode(data.Mode); err == nil {
			limit = mode.EntryLimit()
		}
		view.Cards = buildCards(category.Categorize(data.Report.Sections), limit)
		view.Entries = data.Report.EntryCount()
		view.SectionCount = len(data.Report.Sections)
	} else if view.Error == "" {
		view.Error = "no report available"
	}

	return errors.Wrap(dashboardTmpl.Execute(w, view), "failed to render dashboard")
}

type downloadView struct {
	Report *report.SystemReport
	Cards  []card
	CSS    template.CSS
	JS     template.JS
}

// Download writes a standalone snapshot page with styles and script
// inlined.
func Download(w io.Writer, rep *report.SystemReport) error {
	if rep == nil {
		return errors.New("no report to render")
	}

	view := downloadView{
		Report: rep,
		Cards:  buildCards(category.Categorize(rep.Sections), 0),
		CSS:    template.CSS(mustAsset("css/app.css")),
		JS:     template.JS(mustAsset("js/dashboard.js")),
	}

	return errors.Wrap(downloadTmpl.Execute(w, view), "failed to render download page")
}

func formatUTC(ts uint64) string {
	return time.Unix(int64(ts), 0).UTC().Format("2006-01-02 15:04:05")
}
