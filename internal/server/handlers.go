package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wattfource/inxidash/internal/render"
	"github.com/wattfource/inxidash/internal/sysinfo"
)

// modeFrom reads ?mode=, falling back to the configured default
func (s *Server) modeFrom(r *http.Request) (sysinfo.Mode, error) {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return s.opts.DefaultMode, nil
	}
	return sysinfo.ParseMode(raw)
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	data := render.DashboardData{
		Mode:    s.opts.DefaultMode.String(),
		Version: s.opts.Version,
	}
	status := http.StatusOK

	mode, err := s.modeFrom(r)
	if err == nil {
		data.Mode = mode.String()
		data.Report, err = s.reporter.Collect(r.Context(), mode)
	}
	if err != nil {
		status = statusFor(err)
		s.logError(w, r, status, err)
		data.Report = nil
		data.Error = err.Error()
	}

	var buf bytes.Buffer
	if err := render.Dashboard(&buf, data); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", render.FormatHTML.ContentType())
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) systemHandler(r *http.Request, w http.ResponseWriter) (interface{}, Response) {
	mode, err := s.modeFrom(r)
	if err != nil {
		return nil, fromError(err)
	}

	rep, err := s.reporter.Collect(r.Context(), mode)
	if err != nil {
		return nil, fromError(err)
	}

	return rep, ok().WithHeader("Cache-Control", "no-store")
}

func (s *Server) downloadHandler(w http.ResponseWriter, r *http.Request) {
	mode, err := s.modeFrom(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rep, err := s.reporter.Collect(r.Context(), mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := render.Export(&buf, rep, format); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, render.Filename(mode.String(), format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) staticHandler(w http.ResponseWriter, r *http.Request) {
	data, ctype, err := render.Asset(mux.Vars(r)["file"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", ctype)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type health struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) healthHandler(r *http.Request, w http.ResponseWriter) (interface{}, Response) {
	return health{Status: "ok", Version: s.opts.Version}, ok()
}
