package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fmaa-dev/fmaa/internal/model"
	"github.com/fmaa-dev/fmaa/internal/recommend"
	"github.com/fmaa-dev/fmaa/internal/sentiment"
	"github.com/fmaa-dev/fmaa/internal/storage"
)

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	db                  *storage.DB
	analyzer            *sentiment.Analyzer
	recommender         *recommend.Recommender
	logger              *slog.Logger
	startedAt           time.Time
	version             string
	maxRequestBodyBytes int64
}

// HandlersDeps holds all dependencies for constructing Handlers.
// Analyzer and Recommender default to their built-in lexicon/catalog when nil.
type HandlersDeps struct {
	DB                  *storage.DB
	Analyzer            *sentiment.Analyzer
	Recommender         *recommend.Recommender
	Logger              *slog.Logger
	Version             string
	MaxRequestBodyBytes int64
}

// NewHandlers creates a new Handlers with all dependencies.
func NewHandlers(d HandlersDeps) *Handlers {
	if d.Analyzer == nil {
		d.Analyzer = sentiment.New()
	}
	if d.Recommender == nil {
		d.Recommender = recommend.New()
	}
	return &Handlers{
		db:                  d.DB,
		analyzer:            d.Analyzer,
		recommender:         d.Recommender,
		logger:              d.Logger,
		startedAt:           time.Now(),
		version:             d.Version,
		maxRequestBodyBytes: d.MaxRequestBodyBytes,
	}
}

// writeResourceError logs an unexpected failure and writes a 500 with the
// resource's error code and the underlying message.
func (h *Handlers) writeResourceError(w http.ResponseWriter, r *http.Request, errorCode string, err error) {
	h.logger.Error("request failed",
		"error", err,
		"error_code", errorCode,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestIDFromContext(r.Context()),
	)
	msg := "An error occurred processing your request"
	if err != nil {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg, errorCode)
}

// HandleHealth handles GET /api/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	pg := "ok"
	status := "healthy"
	if err := h.db.Ping(r.Context()); err != nil {
		pg = "unreachable"
		status = "degraded"
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Data: model.HealthResponse{
			Status:   status,
			Version:  h.version,
			Postgres: pg,
			Uptime:   int64(time.Since(h.startedAt).Seconds()),
		},
	})
}
