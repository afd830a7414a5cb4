package collector

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/berth-dev/swipe/internal/session"
	"github.com/berth-dev/swipe/internal/submit"
)

const (
	defaultListLimit = 50
	maxBodyBytes     = 1 << 20
)

// reply is the webhook answer the submit client expects.
type reply struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Handler serves the collector endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a new collector handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Append handles POST /append. The body is stored as sent; there is no
// validation beyond JSON decoding and no deduplication.
func (h *Handler) Append(w http.ResponseWriter, r *http.Request) {
	var body submit.Body
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, reply{Error: "invalid request body: " + err.Error()})
		return
	}

	p := body.Payload()
	sub := &session.Submission{
		SessionID:   p.SessionID,
		SubmittedAt: p.Timestamp,
		TotalTime:   p.TotalTime,
		Summary:     p.Summary(),
		UserAgent:   p.UserAgent,
		Remote:      r.RemoteAddr,
		Kept:        p.Kept,
		Killed:      p.Killed,
		Maybe:       p.Skipped,
	}
	if err := h.store.AddSubmission(sub); err != nil {
		h.logger.Error("store submission", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, reply{Error: "store submission: " + err.Error()})
		return
	}

	h.logger.Info("submission stored",
		zap.String("id", sub.ID),
		zap.String("session", sub.SessionID),
		zap.String("summary", sub.Summary))
	writeJSON(w, http.StatusOK, reply{Success: true, ID: sub.ID})
}

// List handles GET /submissions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := h.store.ListSubmissions(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if list == nil {
		list = []session.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /submissions/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	sub, err := h.store.GetSubmission(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if sub == nil {
		writeError(w, http.StatusNotFound, "submission not found")
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

// Tallies handles GET /tallies
func (h *Handler) Tallies(w http.ResponseWriter, r *http.Request) {
	tallies, err := h.store.Tallies()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tallies == nil {
		tallies = []session.Tally{}
	}
	writeJSON(w, http.StatusOK, tallies)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
