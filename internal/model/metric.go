package model

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceMetric is one append-only metric row.
type PerformanceMetric struct {
	ID         uuid.UUID      `json:"id"`
	Service    string         `json:"service"`
	MetricType string         `json:"metric_type"`
	Value      float64        `json:"value"`
	Timestamp  time.Time      `json:"timestamp"`
	Metadata   map[string]any `json:"metadata"`
}

// AggregatedMetric is one (bucket, service, metric_type) group produced by
// hourly/daily aggregation. Timestamp is the calendar bucket key, not an
// instant. Value is the group mean.
type AggregatedMetric struct {
	Timestamp  string    `json:"timestamp"`
	Service    string    `json:"service"`
	MetricType string    `json:"metric_type"`
	Values     []float64 `json:"values"`
	Count      int       `json:"count"`
	Value      float64   `json:"value"`
	MinValue   float64   `json:"min_value"`
	MaxValue   float64   `json:"max_value"`
	SumValue   float64   `json:"sum_value"`
}

// MetricsSummary holds the roll-up stats returned alongside metric lists.
// Latest/oldest come from the list's existing order (descending by
// timestamp from the query), not a re-sort.
type MetricsSummary struct {
	TotalRecords    int     `json:"total_records"`
	AverageValue    float64 `json:"average_value"`
	MinValue        float64 `json:"min_value"`
	MaxValue        float64 `json:"max_value"`
	LatestTimestamp string  `json:"latest_timestamp,omitempty"`
	OldestTimestamp string  `json:"oldest_timestamp,omitempty"`
}

// LogLevel enumerates system_logs severities written by alerting.
type LogLevel string

const (
	LogLevelWarning  LogLevel = "warning"
	LogLevelCritical LogLevel = "critical"
)

// SystemLog is one append-only alert row, written only when a metric
// crosses its threshold.
type SystemLog struct {
	ID        uuid.UUID      `json:"id"`
	Level     LogLevel       `json:"level"`
	Service   string         `json:"service"`
	Message   string         `json:"message"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
}
