// Package api - Thin HTTP layer over the estimation engine
// The API is ONLY responsible for: request decoding, conditional caching,
// and response serialization. It NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ankitbhatnagartech/archcost/core/engine"
	"github.com/ankitbhatnagartech/archcost/internal/cache"
	"github.com/ankitbhatnagartech/archcost/internal/config"
)

// CachedResponse is an encoded estimate stored under its fingerprint
type CachedResponse struct {
	ETag string
	Body []byte
}

// Options configures the server
type Options struct {
	Version string

	// MaxBodyBytes limits request bodies; zero means 1 MiB
	MaxBodyBytes int64

	// AllowedOrigins lists CORS origins; "*" allows any
	AllowedOrigins []string

	// CacheTTL is advertised in Cache-Control when caching is disabled
	CacheTTL time.Duration

	Logger *zap.Logger
}

// Server is the API server
type Server struct {
	engine *engine.Engine
	cache  *cache.Cache[CachedResponse] // nil when caching is disabled
	flight singleflight.Group
	router chi.Router
	opts   Options
	logger *zap.Logger
}

// NewServer creates a server. A nil store disables response caching; every
// request is then computed.
func NewServer(eng *engine.Engine, store *cache.Cache[CachedResponse], opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}

	s := &Server{
		engine: eng,
		cache:  store,
		router: chi.NewRouter(),
		opts:   opts,
		logger: opts.Logger.Named("api"),
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors(s.opts.AllowedOrigins))

	// Core endpoint
	r.Post("/estimate", s.handleEstimate)

	// Supporting endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/providers", s.handleProviders)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":        "healthy",
		"version":       s.opts.Version,
		"cache_enabled": s.cache != nil,
		"providers":     s.engine.Catalog().Len(),
	}
	if s.cache != nil {
		resp["cache"] = s.cache.Stats()
	}
	s.writeJSON(w, resp, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.opts.Version,
		"engine":      "archcost",
		"api_version": "v1",
	}, http.StatusOK)
}

type providerInfo struct {
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Multipliers map[string]float64 `json:"multipliers"`
}

// handleProviders handles GET /providers
func (s *Server) handleProviders(w http.ResponseWriter, r *http.Request) {
	providers := s.engine.Catalog().Providers()
	out := make([]providerInfo, 0, len(providers))
	for _, p := range providers {
		info := providerInfo{Name: p.Name, Category: p.Category, Multipliers: make(map[string]float64, len(p.Multipliers))}
		for cat, m := range p.Multipliers {
			info.Multipliers[string(cat)] = m.InexactFloat64()
		}
		out = append(out, info)
	}
	s.writeJSON(w, map[string]interface{}{
		"providers": out,
		"count":     len(out),
	}, http.StatusOK)
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}
