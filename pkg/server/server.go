package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/stenoboard/pkg/buildinfo"
	"github.com/matzehuels/stenoboard/pkg/cache"
	"github.com/matzehuels/stenoboard/pkg/display"
	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/observability"
	"github.com/matzehuels/stenoboard/pkg/prefs"
)

// maxBody bounds request bodies, layout documents included.
const maxBody = 1 << 20

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithPrefs sets the preferred-layout store shared by all displays.
func WithPrefs(p prefs.Store) Option { return func(s *Server) { s.prefs = p } }

// WithViewport sets the frame size used when a request names none.
func WithViewport(size geom.Size) Option { return func(s *Server) { s.viewport = size } }

// WithFrameCache caches PNG frames in c for ttl.
func WithFrameCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		s.frames = cache.Instrument(c, "frame")
		s.ttl = ttl
	}
}

// WithKeyer sets how frame cache keys are derived.
func WithKeyer(k cache.Keyer) Option { return func(s *Server) { s.keyer = k } }

// Server holds the displays and routes requests to them.
type Server struct {
	logger   *log.Logger
	prefs    prefs.Store
	frames   cache.Cache
	keyer    cache.Keyer
	ttl      time.Duration
	viewport geom.Size

	mu       sync.RWMutex
	displays map[string]*display.Display

	hub      *hub
	upgrader websocket.Upgrader
	router   chi.Router
}

// New creates a server with no displays.
func New(opts ...Option) *Server {
	s := &Server{
		displays: make(map[string]*display.Display),
		viewport: geom.Size{W: 800, H: 300},
		hub:      newHub(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.prefs == nil {
		s.prefs = prefs.NewMemory()
	}
	if s.frames == nil {
		s.frames = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(serverHeader)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/displays", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/config", s.handleConfig)
			r.Post("/stroke", s.handleStroke)
			r.Put("/layout", s.handleLayout)
			r.Post("/reset", s.handleReset)
			r.Get("/frame.{format}", s.handleFrame)
			r.Get("/live", s.handleLive)
		})
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeIO, err, "listen on %s", addr)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
	}
	return nil
}

// Len returns the number of live displays.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.displays)
}

func (s *Server) create() (string, *display.Display) {
	id := uuid.NewString()
	d := display.New(
		display.WithLogger(s.logger.With("display", id)),
		display.WithPrefs(s.prefs),
		display.WithViewport(s.viewport),
	)

	s.mu.Lock()
	s.displays[id] = d
	s.mu.Unlock()
	return id, d
}

func (s *Server) lookup(id string) (*display.Display, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.displays[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "display %q not found", id)
	}
	return d, nil
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.displays[id]; !ok {
		return false
	}
	delete(s.displays, id)
	s.hub.closeAll(id)
	return true
}

func (s *Server) ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.displays))
	for id := range s.displays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// =============================================================================
// Middleware
// =============================================================================

func serverHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", buildinfo.ServerHeader())
		next.ServeHTTP(w, r)
	})
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, route, status, dur)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "elapsed", dur)
	})
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: errors.UserMessage(err)}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidJSON, errors.ErrCodeSchemaViolation, errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidSystem, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidLayoutPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotAcceptable
	}
	return http.StatusInternalServerError
}
