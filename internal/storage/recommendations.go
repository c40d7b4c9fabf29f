package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// InsertRecommendations persists one generated batch. IDs and created_at
// are set here. A nil/empty batch is a no-op.
func (db *DB) InsertRecommendations(ctx context.Context, recs []model.Recommendation) ([]model.Recommendation, error) {
	if len(recs) == 0 {
		return recs, nil
	}

	now := time.Now().UTC()
	batch := make([]model.Recommendation, len(recs))
	copy(batch, recs)

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: begin insert recommendations tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for i := range batch {
		if batch[i].ID == uuid.Nil {
			batch[i].ID = uuid.New()
		}
		batch[i].CreatedAt = now
		if batch[i].Metadata == nil {
			batch[i].Metadata = map[string]any{}
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_recommendations
			   (id, user_id, item_id, category, title, description, rating, price, recommendation_score, metadata, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			batch[i].ID, batch[i].UserID, batch[i].ItemID, batch[i].Category,
			batch[i].Title, batch[i].Description, batch[i].Rating, batch[i].Price,
			batch[i].RecommendationScore, batch[i].Metadata, batch[i].CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("storage: commit insert recommendations tx: %w", err)
	}
	return batch, nil
}

// ListRecommendations returns rows ordered by rating then recency,
// optionally filtered by category and user.
func (db *DB) ListRecommendations(ctx context.Context, category, userID string, limit, offset int) ([]model.Recommendation, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, item_id, category, title, description, rating, price, recommendation_score, metadata, created_at
		 FROM user_recommendations
		 WHERE ($1 = '' OR category = $1) AND ($2 = '' OR user_id = $2)
		 ORDER BY rating DESC, created_at DESC
		 LIMIT $3 OFFSET $4`,
		category, userID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: list recommendations: %w", err)
	}
	defer rows.Close()

	var recs []model.Recommendation
	for rows.Next() {
		var r model.Recommendation
		if err := rows.Scan(
			&r.ID, &r.UserID, &r.ItemID, &r.Category, &r.Title, &r.Description,
			&r.Rating, &r.Price, &r.RecommendationScore, &r.Metadata, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: scan recommendation: %w", err)
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}
