package server

import (
	"fmt"
	"net/http"

	"github.com/fmaa-dev/fmaa/internal/model"
	"github.com/fmaa-dev/fmaa/internal/recommend"
)

// HandleRecommendations dispatches /api/recommendation-agent by method.
func (h *Handlers) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listRecommendations(w, r)
	case http.MethodPost:
		h.generateRecommendations(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// listRecommendations handles GET: stored rows filtered by category/user.
func (h *Handlers) listRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 20)
	offset := queryOffset(r)
	category := r.URL.Query().Get("category")
	userID := r.URL.Query().Get("user_id")

	recs, err := h.db.ListRecommendations(r.Context(), category, userID, limit, offset)
	if err != nil {
		h.writeResourceError(w, r, model.ErrCodeRecommendation, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Data:       recs,
		Pagination: &model.Pagination{Limit: limit, Offset: offset, Count: len(recs)},
	})
}

// generatedPayload is the POST response body.
type generatedPayload struct {
	UserID          string           `json:"user_id"`
	Category        string           `json:"category"`
	Recommendations []recommend.Item `json:"recommendations"`
	TotalGenerated  int              `json:"total_generated"`
}

// generateRecommendations handles POST: rank the catalog under the caller's
// preferences and persist the batch.
func (h *Handlers) generateRecommendations(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRecommendationsRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	if req.UserID == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "user_id and category are required", "")
		return
	}

	items := h.recommender.Recommend(req.Category, req.Preferences)

	rows := make([]model.Recommendation, len(items))
	for i, item := range items {
		rows[i] = model.Recommendation{
			UserID:              req.UserID,
			ItemID:              item.ID,
			Category:            req.Category,
			Title:               item.Title,
			Description:         item.Description,
			Rating:              item.Rating,
			Price:               item.Price,
			RecommendationScore: item.Score,
			Metadata: map[string]any{
				"name":     item.Name,
				"category": item.Category,
				"features": item.Features,
			},
		}
	}

	if _, err := h.db.InsertRecommendations(r.Context(), rows); err != nil {
		h.writeResourceError(w, r, model.ErrCodeRecommendation, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: fmt.Sprintf("Generated %d recommendations", len(items)),
		Data: generatedPayload{
			UserID:          req.UserID,
			Category:        req.Category,
			Recommendations: items,
			TotalGenerated:  len(items),
		},
	})
}
