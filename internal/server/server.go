package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blocksnap/pkg/cache"
	"github.com/matzehuels/blocksnap/pkg/config"
	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/observability"
	"github.com/matzehuels/blocksnap/pkg/scenario"
)

// Options configures a [Server].
type Options struct {
	// Scenario seeds the workspace. Its steps are ignored. Required.
	Scenario *scenario.File
	// Config supplies radii, dead zone and renderer. Nil uses the defaults.
	Config *config.Config
	// Logger receives request and drag logs. Defaults to a discard logger.
	Logger *log.Logger
	// Hooks receives request events. Defaults to [observability.API].
	Hooks observability.APIHooks
	// DragHooks receives drag events. Defaults to [observability.Drag].
	DragHooks observability.DragHooks
	// Cache keeps rendered SVGs. Defaults to a [cache.NullCache].
	Cache cache.Cache
}

// Server serves one workspace. Requests are serialized: the drag engine
// is single threaded.
type Server struct {
	opts   Options
	logger *log.Logger
	hooks  observability.APIHooks
	router chi.Router

	mu    sync.Mutex
	world *scenario.World
	live  *hub
}

// New builds the workspace and the router.
func New(opts Options) (*Server, error) {
	if opts.Scenario == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "server requires a scenario")
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Hooks == nil {
		opts.Hooks = observability.API()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	s := &Server{opts: opts, logger: opts.Logger, hooks: opts.Hooks, live: newHub(opts.Logger)}
	if err := s.reset(); err != nil {
		return nil, err
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("stopped")
	return nil
}

func (s *Server) reset() error {
	w, err := scenario.Build(s.opts.Scenario, scenario.Options{
		Config: s.opts.Config,
		Logger: s.logger,
		Hooks:  s.opts.DragHooks,
	})
	if err != nil {
		return err
	}
	s.world = w
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/state", s.handleState)
	r.Get("/events", s.handleEvents)
	r.Get("/graph.dot", s.handleDOT)
	r.Get("/graph.svg", s.handleSVG)
	r.Get("/snapshot.png", s.handlePNG)
	r.Get("/live", s.handleLive)
	r.Post("/reset", s.handleReset)
	r.Route("/drag", func(r chi.Router) {
		r.Post("/begin", s.handleBegin)
		r.Post("/move", s.handleMove)
		r.Post("/end", s.handleEnd)
		r.Post("/cancel", s.handleCancel)
	})
	return r
}

// observe reports every request to the API hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", status,
			"elapsed", elapsed, "id", middleware.GetReqID(r.Context()))
	})
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScenario, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeUnknownType:
		return http.StatusNotFound
	case errors.ErrCodeInvariant, errors.ErrCodeMissingStructure:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}
