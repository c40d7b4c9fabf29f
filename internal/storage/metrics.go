package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// InsertPerformanceMetric persists one metric row. ID and timestamp are set
// here when absent.
func (db *DB) InsertPerformanceMetric(ctx context.Context, m model.PerformanceMetric) (model.PerformanceMetric, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if m.Metadata == nil {
		m.Metadata = map[string]any{}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO performance_metrics (id, service, metric_type, value, timestamp, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.Service, m.MetricType, m.Value, m.Timestamp, m.Metadata,
	)
	if err != nil {
		return model.PerformanceMetric{}, fmt.Errorf("storage: insert performance metric: %w", err)
	}
	return m, nil
}

// MetricFilter narrows ListPerformanceMetrics. Zero values mean "no filter".
type MetricFilter struct {
	Service    string
	MetricType string
	StartDate  *time.Time
	EndDate    *time.Time
}

// ListPerformanceMetrics returns rows newest first under the given filter.
func (db *DB) ListPerformanceMetrics(ctx context.Context, f MetricFilter, limit, offset int) ([]model.PerformanceMetric, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, service, metric_type, value, timestamp, metadata
		 FROM performance_metrics
		 WHERE ($1 = '' OR service = $1)
		   AND ($2 = '' OR metric_type = $2)
		   AND ($3::timestamptz IS NULL OR timestamp >= $3)
		   AND ($4::timestamptz IS NULL OR timestamp <= $4)
		 ORDER BY timestamp DESC
		 LIMIT $5 OFFSET $6`,
		f.Service, f.MetricType, f.StartDate, f.EndDate, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: list performance metrics: %w", err)
	}
	defer rows.Close()

	var metrics []model.PerformanceMetric
	for rows.Next() {
		var m model.PerformanceMetric
		if err := rows.Scan(&m.ID, &m.Service, &m.MetricType, &m.Value, &m.Timestamp, &m.Metadata); err != nil {
			return nil, fmt.Errorf("storage: scan performance metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// InsertSystemLog appends one alert row. Callers treat failures as
// best-effort; a lost alert never fails the metric write.
func (db *DB) InsertSystemLog(ctx context.Context, entry model.SystemLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now().UTC()
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO system_logs (id, level, service, message, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, string(entry.Level), entry.Service, entry.Message, entry.Metadata, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("storage: insert system log: %w", err)
	}
	return nil
}
