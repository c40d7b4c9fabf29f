package server

import (
	"net/http"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// HandleSentiment dispatches /api/sentiment-agent by method.
func (h *Handlers) HandleSentiment(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSentiment(w, r)
	case http.MethodPost:
		h.analyzeSentiment(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// listSentiment handles GET: recent analyses, optionally filtered by a text
// substring.
func (h *Handlers) listSentiment(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 50)
	offset := queryOffset(r)
	textFilter := r.URL.Query().Get("text_filter")

	results, err := h.db.ListSentimentAnalyses(r.Context(), textFilter, limit, offset)
	if err != nil {
		h.writeResourceError(w, r, model.ErrCodeSentiment, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Data:       results,
		Pagination: &model.Pagination{Limit: limit, Offset: offset, Count: len(results)},
	})
}

// analyzeSentiment handles POST: validate, score, persist one immutable row.
func (h *Handlers) analyzeSentiment(w http.ResponseWriter, r *http.Request) {
	var req model.AnalyzeSentimentRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	// Input bounds are checked before any scoring happens.
	if err := model.ValidateSentimentText(req.Text); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	result := h.analyzer.Analyze(req.Text)

	saved, err := h.db.InsertSentimentAnalysis(r.Context(), model.SentimentAnalysis{
		Text:       req.Text,
		Sentiment:  result.Sentiment,
		Score:      result.Score,
		Confidence: result.Confidence,
		Keywords:   result.Keywords,
	})
	if err != nil {
		h.writeResourceError(w, r, model.ErrCodeSentiment, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{Data: saved})
}
