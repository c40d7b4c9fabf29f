package model

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is one persisted recommendation row. Rows are append-only;
// each POST writes one batch.
type Recommendation struct {
	ID                  uuid.UUID      `json:"id"`
	UserID              string         `json:"user_id"`
	ItemID              string         `json:"item_id"`
	Category            string         `json:"category"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Rating              float64        `json:"rating"`
	Price               *float64       `json:"price"`
	RecommendationScore float64        `json:"recommendation_score"`
	Metadata            map[string]any `json:"metadata"`
	CreatedAt           time.Time      `json:"created_at"`
}
