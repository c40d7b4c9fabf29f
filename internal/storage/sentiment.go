package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// InsertSentimentAnalysis persists one scoring result. ID and created_at
// are set here; rows are immutable after insert.
func (db *DB) InsertSentimentAnalysis(ctx context.Context, sa model.SentimentAnalysis) (model.SentimentAnalysis, error) {
	if sa.ID == uuid.Nil {
		sa.ID = uuid.New()
	}
	sa.CreatedAt = time.Now().UTC()
	if sa.Keywords == nil {
		sa.Keywords = []model.Keyword{}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO sentiment_analyses (id, text, sentiment, score, confidence, keywords, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		sa.ID, sa.Text, string(sa.Sentiment), sa.Score, sa.Confidence, sa.Keywords, sa.CreatedAt,
	)
	if err != nil {
		return model.SentimentAnalysis{}, fmt.Errorf("storage: insert sentiment analysis: %w", err)
	}
	return sa, nil
}

// ListSentimentAnalyses returns rows newest first, optionally filtered by a
// case-insensitive text substring.
func (db *DB) ListSentimentAnalyses(ctx context.Context, textFilter string, limit, offset int) ([]model.SentimentAnalysis, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, text, sentiment, score, confidence, keywords, created_at
		 FROM sentiment_analyses
		 WHERE $1 = '' OR text ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		textFilter, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: list sentiment analyses: %w", err)
	}
	defer rows.Close()

	var results []model.SentimentAnalysis
	for rows.Next() {
		var sa model.SentimentAnalysis
		if err := rows.Scan(
			&sa.ID, &sa.Text, &sa.Sentiment, &sa.Score, &sa.Confidence, &sa.Keywords, &sa.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: scan sentiment analysis: %w", err)
		}
		results = append(results, sa)
	}
	return results, rows.Err()
}
