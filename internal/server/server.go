// Package server exposes system reports over HTTP
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/wattfource/inxidash/internal/logging"
	"github.com/wattfource/inxidash/internal/report"
	"github.com/wattfource/inxidash/internal/sysinfo"
)

const shutdownTimeout = 10 * time.Second

var errRouteNotFound = errors.New("route not found")

// Reporter produces a fresh report for a detail level
type Reporter interface {
	Collect(ctx context.Context, mode sysinfo.Mode) (*report.SystemReport, error)
}

// Options configure the server
type Options struct {
	Addr        string
	DefaultMode sysinfo.Mode
	Version     string
}

// Server serves the dashboard, API, downloads and static assets
type Server struct {
	opts     Options
	reporter Reporter
	handler  http.Handler
	log      *logging.Logger
}

// New creates a server backed by reporter
func New(reporter Reporter, opts Options) *Server {
	s := &Server{
		opts:     opts,
		reporter: reporter,
		log:      logging.WithComponent("server"),
	}
	s.handler = logRequests(enableCors(s.router()))
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", s.dashboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/api/system", s.wrapFunc(s.systemHandler)).Methods(http.MethodGet)
	r.HandleFunc("/download", s.downloadHandler).Methods(http.MethodGet)
	r.HandleFunc("/static/{file:.*}", s.staticHandler).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.wrapFunc(s.healthHandler)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errors.Wrapf(errRouteNotFound, "%s", r.URL.Path))
	})

	return r
}

// Handler returns the root HTTP handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves until ctx is done
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.Wrapf(err, "failed to listen on %s", s.opts.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("server is listening on %s", ln.Addr())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "http server error")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "http shutdown error")
	}
	s.log.Info("graceful shutdown complete")

	return nil
}
