// Package httpapi implements the parse-type HTTP service.
//
// The API is stateless apart from the schema store: clients either send a
// format string with each request or reference a stored schema by name.
//
//	POST   /v1/parse            parse text against a format or schema
//	GET    /v1/schemas          list stored schemas
//	PUT    /v1/schemas/{name}   create or replace a schema
//	GET    /v1/schemas/{name}   fetch a schema
//	DELETE /v1/schemas/{name}   delete a schema
//	GET    /healthz             liveness probe
//
// Every response carries an X-Request-ID header; parse results may be
// served from the configured result cache.
package httpapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/a-detiste/parse-type/pkg/cache"
	"github.com/a-detiste/parse-type/pkg/convert"
	"github.com/a-detiste/parse-type/pkg/parse"
	"github.com/a-detiste/parse-type/pkg/store"
)

// Server is the HTTP API server.
type Server struct {
	logger  *log.Logger
	store   store.Store
	results cache.Cache

	// compiled caches Format objects keyed on the format source and the
	// full type definitions, so replacing a schema's definitions routes
	// requests to a fresh compilation instead of a stale entry.
	mu       sync.RWMutex
	compiled map[string]*parse.Format
}

// Config configures a Server.
type Config struct {
	Logger  *log.Logger // Defaults to log.Default()
	Store   store.Store // Defaults to an in-memory store
	Results cache.Cache // Defaults to NullCache (no result caching)
}

// New creates a Server.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.Results == nil {
		cfg.Results = cache.NewNullCache()
	}
	return &Server{
		logger:   cfg.Logger,
		store:    cfg.Store,
		results:  cfg.Results,
		compiled: make(map[string]*parse.Format),
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealthz)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Route("/schemas", func(r chi.Router) {
			r.Get("/", s.handleListSchemas)
			r.Put("/{name}", s.handlePutSchema)
			r.Get("/{name}", s.handleGetSchema)
			r.Delete("/{name}", s.handleDeleteSchema)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// compiledFormat returns a cached compiled format or compiles and caches
// it.
func (s *Server) compiledFormat(format string, schema *store.Schema) (*parse.Format, error) {
	var types map[string]convert.TypeDef
	if schema != nil {
		types = schema.Types
	}
	key := cache.FormatKey(format, types)

	s.mu.RLock()
	f, ok := s.compiled[key]
	s.mu.RUnlock()
	if ok {
		return f, nil
	}

	var reg *convert.Registry
	if schema != nil {
		r, err := schema.Registry()
		if err != nil {
			return nil, err
		}
		reg = r
	}

	f, err := parse.Compile(format, reg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.compiled[key] = f
	s.mu.Unlock()
	return f, nil
}
