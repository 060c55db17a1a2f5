// Package api provides the HTTP quote service: the thin transport layer
// around the pure quote generation engine.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/choozin/paintmatepro/internal/aggregate"
	"github.com/choozin/paintmatepro/internal/catalog"
	"github.com/choozin/paintmatepro/internal/decompose"
	"github.com/choozin/paintmatepro/internal/rollup"
	qapi "github.com/choozin/paintmatepro/pkg/api"
)

// Server is the HTTP quote server.
type Server struct {
	httpServer *http.Server
	store      catalog.Store
	config     *Config
	log        zerolog.Logger
}

// Config holds server configuration.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int64
	CORSOrigins    []string
}

// DefaultConfig returns default server configuration.
func DefaultConfig() *Config {
	return &Config{
		Port:           8080,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxRequestSize: 10 * 1024 * 1024, // 10MB
		CORSOrigins:    []string{"*"},
	}
}

// NewServer creates a quote server. The catalog store may be nil; quotes then
// run with an empty catalog and misc paint references price at zero.
func NewServer(store catalog.Store, config *Config, log zerolog.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{store: store, config: config, log: log}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/api/v1/quote", s.handleQuote)
	mux.HandleFunc("/api/v1/catalog", s.handleCatalog)

	handler := s.corsMiddleware(s.loggingMiddleware(mux))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.log.Info().Int("port", s.config.Port).Msg("quote server starting")
	return s.httpServer.ListenAndServe()
}

// StartWithGracefulShutdown starts the server and drains it on SIGINT/SIGTERM.
func (s *Server) StartWithGracefulShutdown() error {
	errChan := make(chan error, 1)
	go func() {
		if err := s.Start(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-quit:
		s.log.Info().Msg("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
}

// =============================================================================
// MIDDLEWARE
// =============================================================================

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		allowed := false
		for _, o := range s.config.CORSOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "86400")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// HEALTH ENDPOINTS
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "1.0.0",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	type pinger interface {
		Ping(ctx context.Context) error
	}
	if p, ok := s.store.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			s.jsonError(w, http.StatusServiceUnavailable, "catalog store not ready")
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ready"})
}

// =============================================================================
// QUOTE ENDPOINT
// =============================================================================

// QuoteRequest is the API request for quote generation.
type QuoteRequest struct {
	Project qapi.Project             `json:"project"`
	Rooms   []qapi.Room              `json:"rooms"`
	Config  *qapi.QuoteConfiguration `json:"config,omitempty"`
	TaxRate float64                  `json:"tax_rate,omitempty"`
}

// QuoteResponse is the API response for quote generation.
type QuoteResponse struct {
	QuoteID   string          `json:"quote_id"`
	LineItems []qapi.LineItem `json:"line_items"`
	Rows      []qapi.FlatRow  `json:"rows"`
	Subtotal  float64         `json:"subtotal"`
	Tax       float64         `json:"tax"`
	Total     float64         `json:"total"`

	// Statistics
	RoomsProcessed int     `json:"rooms_processed"`
	TasksCreated   int     `json:"tasks_created"`
	TotalHours     float64 `json:"total_hours"`

	GeneratedAt string `json:"generated_at"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)

	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.jsonError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	cfg := qapi.DefaultConfiguration()
	if req.Config != nil {
		cfg = *req.Config
	}
	// Fail fast at the boundary; the engine itself never validates.
	if err := cfg.Validate(); err != nil {
		s.jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	var items []qapi.CatalogItem
	if s.store != nil {
		var err error
		items, err = s.store.Products(r.Context())
		if err != nil {
			s.jsonError(w, http.StatusServiceUnavailable, fmt.Sprintf("catalog unavailable: %v", err))
			return
		}
	}

	result := decompose.Decompose(req.Project, req.Rooms)
	lineItems := aggregate.Aggregate(result.Tasks, cfg, items)
	totals := rollup.Totals(lineItems, req.TaxRate, cfg)

	s.jsonResponse(w, http.StatusOK, QuoteResponse{
		QuoteID:        uuid.NewString(),
		LineItems:      lineItems,
		Rows:           rollup.Flatten(lineItems),
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		Total:          totals.Total,
		RoomsProcessed: result.RoomsProcessed,
		TasksCreated:   result.TasksCreated,
		TotalHours:     result.TotalHours,
		GeneratedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.store == nil {
		s.jsonResponse(w, http.StatusOK, []qapi.CatalogItem{})
		return
	}
	items, err := s.store.Products(r.Context())
	if err != nil {
		s.jsonError(w, http.StatusServiceUnavailable, fmt.Sprintf("catalog unavailable: %v", err))
		return
	}
	s.jsonResponse(w, http.StatusOK, items)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (s *Server) jsonResponse(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error().Err(err).Msg("response encoding failed")
	}
}

func (s *Server) jsonError(w http.ResponseWriter, status int, msg string) {
	s.jsonResponse(w, status, map[string]string{"error": msg})
}
