package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/prelabel/internal/config"
	"github.com/dgallion1/prelabel/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the webhook HTTP server.
type Server struct {
	router   chi.Router
	pipeline *pipeline.Pipeline
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(p *pipeline.Pipeline, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pipeline: p,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handlePing)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	// The trigger endpoint. Auth is optional: tagtog webhooks carry no
	// credentials unless the project is configured to send a token.
	r.Group(func(r chi.Router) {
		if s.cfg.WebhookToken != "" {
			r.Use(BearerAuth(s.cfg.WebhookToken, s.log))
		}
		r.Post("/", s.handleWebhook)
	})

	s.router = r
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Yes, I'm here!"))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
