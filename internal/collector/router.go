// Package collector is a local endpoint that accepts survey submissions in
// the webhook format and stores them for reporting.
package collector

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/berth-dev/swipe/internal/session"
)

// Store is the persistence the collector writes to.
type Store interface {
	AddSubmission(sub *session.Submission) error
	GetSubmission(id string) (*session.Submission, error)
	ListSubmissions(limit int) ([]session.Summary, error)
	Tallies() ([]session.Tally, error)
}

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(store Store, logger *zap.Logger) *chi.Mux {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	h := NewHandler(store, logger)

	r.Get("/health", h.Health)
	r.Post("/", h.Append)
	r.Post("/append", h.Append)

	r.Route("/submissions", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
	r.Get("/tallies", h.Tallies)

	return r
}
