package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/speakplan/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	plans   store.PlanRepo
	log     *slog.Logger
	mockCap int
	now     func() time.Time
	router  chi.Router
}

// New creates a new Server with all routes configured. mockCap is passed
// to every plan generation; zero leaves mock tests uncapped.
func New(plans store.PlanRepo, mockCap int, log *slog.Logger) *Server {
	s := &Server{
		plans:   plans,
		log:     log,
		mockCap: mockCap,
		now:     time.Now,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/v1/topics", s.handleTopics)

	s.router.Post("/api/v1/plans", s.handleCreatePlan)
	s.router.Route("/api/v1/plans/current", func(r chi.Router) {
		r.Get("/", s.handleCurrentPlan)
		r.Delete("/", s.handleResetPlan)
		r.Get("/weeks", s.handleWeeks)
		r.Get("/upcoming", s.handleUpcoming)
		r.Get("/progress", s.handleProgress)
		r.Patch("/sessions/{id}", s.handleUpdateSession)
	})
}
