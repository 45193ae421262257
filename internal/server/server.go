// Package server serves the live preview page: a shell that receives rendered
// HTML and TOC fragments over a websocket from a Hub.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alnah/go-mdpreview"
)

// FilesPrefix is the URL prefix under which the document directory is served.
// Converters feeding the hub rewrite relative paths with this base URL.
const FilesPrefix = "/files/"

const shutdownTimeout = 5 * time.Second

//go:embed shell.html
var shellHTML string

var shellTemplate = template.Must(template.New("shell").Parse(shellHTML))

// ErrListen indicates the server could not bind its address.
var ErrListen = errors.New("cannot listen")

// Config configures a Server.
type Config struct {
	Addr   string // host:port to listen on
	DocDir string // directory served under FilesPrefix; empty disables it
	Title  string // page title
}

// Server is the HTTP front end of a Hub.
type Server struct {
	cfg    Config
	hub    *Hub
	logger *slog.Logger
	stats  func() mdpreview.Stats
	router *chi.Mux
}

// New builds the router. stats may be nil.
func New(cfg Config, hub *Hub, stats func() mdpreview.Stats, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{cfg: cfg, hub: hub, logger: logger, stats: stats}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleShell)
	r.Get("/ws", hub.ServeWS)
	r.Get("/html", s.handleHTML)
	r.Get("/toc", s.handleTOC)
	r.Get("/healthz", s.handleHealth)
	if cfg.DocDir != "" {
		fs := http.StripPrefix(FilesPrefix, http.FileServer(http.Dir(cfg.DocDir)))
		r.Get(FilesPrefix+"*", fs.ServeHTTP)
	}

	s.router = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on Config.Addr and serves until ctx is done, then shuts down
// gracefully and disconnects all websocket clients.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrListen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("preview server listening", slog.String("url", "http://"+ln.Addr().String()))

	select {
	case err := <-errc:
		s.hub.Close()
		return err
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down preview server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}

func (s *Server) handleShell(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	title := s.cfg.Title
	if title == "" {
		title = "preview"
	}
	if err := shellTemplate.Execute(w, struct{ Title string }{title}); err != nil {
		s.logger.Error("rendering shell page", slog.Any("error", err))
	}
}

func (s *Server) handleHTML(w http.ResponseWriter, _ *http.Request) {
	content, ok := s.hub.Latest(KindHTML)
	if !ok {
		http.Error(w, "no preview rendered yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(content))
}

func (s *Server) handleTOC(w http.ResponseWriter, _ *http.Request) {
	toc, _ := s.hub.Latest(KindTOC)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(mdpreview.TOCPage(toc)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := struct {
		Status  string           `json:"status"`
		Clients int              `json:"clients"`
		Stats   *mdpreview.Stats `json:"stats,omitempty"`
	}{Status: "ok", Clients: s.hub.Clients()}
	if s.stats != nil {
		st := s.stats()
		status.Stats = &st
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		s.logger.Error("writing health status", slog.Any("error", err))
	}
}

// accessLog logs each request with slog once it completes.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())))
	})
}
