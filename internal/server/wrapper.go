package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/wattfource/inxidash/internal/logging"
	"github.com/wattfource/inxidash/internal/render"
	"github.com/wattfource/inxidash/internal/report"
	"github.com/wattfource/inxidash/internal/sysinfo"
)

// Response interface
type Response interface {
	Status() int
	Err() error

	// header getter
	Header() http.Header
	// header setter
	WithHeader(k, v string) Response
}

// Handler interface
type Handler func(r *http.Request, w http.ResponseWriter) (interface{}, Response)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Message string `json:"message"`
}

// wrapFunc is a helper wrapper to make implementing JSON handlers easier
func (s *Server) wrapFunc(a Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		}()

		object, result := a(r, w)

		w.Header().Set("Content-Type", "application/json")

		if result == nil {
			w.WriteHeader(http.StatusOK)
		} else {
			h := result.Header()
			for k := range h {
				for _, v := range h.Values(k) {
					w.Header().Add(k, v)
				}
			}

			w.WriteHeader(result.Status())
			if err := result.Err(); err != nil {
				s.logError(w, r, result.Status(), err)
				object = errorBody{Message: err.Error()}
			}
		}

		if err := json.NewEncoder(w).Encode(object); err != nil {
			s.log.WithError(err).Error("failed to encode return object")
		}
	}
}

// writeError sends an error response outside of wrapFunc
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logError(w, r, status, err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Message: err.Error()}); err != nil {
		s.log.WithError(err).Error("failed to encode error")
	}
}

func (s *Server) logError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.RequestLogger(w.Header().Get(requestIDHeader)).WithFields(map[string]any{
		"path":   r.URL.Path,
		"status": status,
	}).WithError(err).Warn("request failed")
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, sysinfo.ErrInvalidMode), errors.Is(err, render.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, render.ErrAssetNotFound), errors.Is(err, errRouteNotFound):
		return http.StatusNotFound
	case errors.Is(err, report.ErrParse):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sysinfo.ErrCommandFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type genericResponse struct {
	status int
	err    error
	header http.Header
}

func (r *genericResponse) Status() int {
	return r.status
}

func (r *genericResponse) Err() error {
	return r.err
}

func (r *genericResponse) Header() http.Header {
	if r.header == nil {
		r.header = http.Header{}
	}
	return r.header
}

func (r *genericResponse) WithHeader(k, v string) Response {
	if r.header == nil {
		r.header = http.Header{}
	}

	r.header.Add(k, v)
	return r
}

// ok returns an ok response
func ok() Response {
	return &genericResponse{status: http.StatusOK}
}

// genError generic error response
func genError(err error, code int) Response {
	if err == nil {
		err = errors.New("no message")
	}

	return &genericResponse{status: code, err: err}
}

// fromError picks the status for err
func fromError(err error) Response {
	return genError(err, statusFor(err))
}
