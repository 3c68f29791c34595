package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/catalog/internal/api/docs"
	"github.com/edvin/catalog/internal/api/handler"
	mw "github.com/edvin/catalog/internal/api/middleware"
	"github.com/edvin/catalog/internal/config"
	"github.com/edvin/catalog/internal/store"
)

type Server struct {
	router chi.Router
	logger zerolog.Logger
	store  store.ProductStore
	cfg    *config.Config
}

func NewServer(logger zerolog.Logger, s store.ProductStore, cfg *config.Config) *Server {
	srv := &Server{
		router: chi.NewRouter(),
		logger: logger,
		store:  s,
		cfg:    cfg,
	}

	srv.setupMiddleware()
	srv.setupRoutes()

	return srv
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(chimw.Recoverer)
	s.router.Use(mw.Metrics)
	s.router.Use(mw.CORS(s.cfg.CORSOrigins))
}

func (s *Server) setupRoutes() {
	// Prometheus metrics
	s.router.Handle("/metrics", promhttp.Handler())

	// Health checks
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	// OpenAPI document
	s.router.Get("/docs/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
	})

	greeting := handler.NewGreeting(s.cfg.WelcomeMessage)
	s.router.Get("/", greeting.Home)
	s.router.Get("/hello", greeting.Hello)
	s.router.Get("/hello/{name}", greeting.HelloName)
	s.router.Get("/status", greeting.Status)

	product := handler.NewProduct(s.store)
	s.router.Route("/products", func(r chi.Router) {
		r.Get("/", product.List)
		r.Post("/", product.Create)
		r.Get("/{id}", product.Get)
		r.Put("/{id}", product.Update)
		r.Delete("/{id}", product.Delete)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]string{"store": "ok"}
	healthy := true

	if p, ok := s.store.(store.Pinger); ok {
		if err := p.Ping(ctx); err != nil {
			checks["store"] = err.Error()
			healthy = false
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if healthy {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(checks)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
