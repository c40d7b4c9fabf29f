// Package perf implements metric aggregation, summary statistics, and
// threshold-based alert evaluation for the performance monitor.
package perf

import (
	"fmt"
	"math"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// Aggregation selects how GET results are grouped.
type Aggregation string

const (
	AggregationRaw    Aggregation = "raw"
	AggregationHourly Aggregation = "hourly"
	AggregationDaily  Aggregation = "daily"
)

// ParseAggregation validates the aggregation query parameter.
// Empty defaults to raw.
func ParseAggregation(s string) (Aggregation, error) {
	switch Aggregation(s) {
	case "", AggregationRaw:
		return AggregationRaw, nil
	case AggregationHourly:
		return AggregationHourly, nil
	case AggregationDaily:
		return AggregationDaily, nil
	}
	return "", fmt.Errorf("invalid aggregation %q: must be raw, hourly, or daily", s)
}

// Aggregate groups metrics into calendar buckets keyed by
// (bucket, service, metric_type) and computes count/mean/min/max/sum per
// group. Buckets use the timestamp's stored zone; gaps are simply absent.
// Groups come back in first-seen order, which preserves the input's
// timestamp ordering.
func Aggregate(metrics []model.PerformanceMetric, mode Aggregation) []model.AggregatedMetric {
	if mode == AggregationRaw || len(metrics) == 0 {
		return nil
	}

	layout := "2006-01-02 15:00"
	if mode == AggregationDaily {
		layout = "2006-01-02"
	}

	type groupKey struct {
		bucket     string
		service    string
		metricType string
	}
	groups := make(map[groupKey]*model.AggregatedMetric)
	var order []groupKey

	for _, m := range metrics {
		key := groupKey{
			bucket:     m.Timestamp.Format(layout),
			service:    m.Service,
			metricType: m.MetricType,
		}
		g, ok := groups[key]
		if !ok {
			g = &model.AggregatedMetric{
				Timestamp:  key.bucket,
				Service:    m.Service,
				MetricType: m.MetricType,
			}
			groups[key] = g
			order = append(order, key)
		}
		g.Values = append(g.Values, m.Value)
		g.Count++
	}

	out := make([]model.AggregatedMetric, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.MinValue = g.Values[0]
		g.MaxValue = g.Values[0]
		for _, v := range g.Values {
			g.SumValue += v
			g.MinValue = math.Min(g.MinValue, v)
			g.MaxValue = math.Max(g.MaxValue, v)
		}
		g.Value = g.SumValue / float64(g.Count)
		out = append(out, *g)
	}
	return out
}

// Summarize computes roll-up stats over a list of values. Latest and oldest
// are taken from the ends of the list as given: callers pass results in
// query order (timestamp descending), so index 0 is the latest.
func Summarize(values []float64, latest, oldest string) model.MetricsSummary {
	s := model.MetricsSummary{TotalRecords: len(values)}
	if len(values) == 0 {
		return s
	}

	sum := values[0]
	s.MinValue = values[0]
	s.MaxValue = values[0]
	for _, v := range values[1:] {
		sum += v
		s.MinValue = math.Min(s.MinValue, v)
		s.MaxValue = math.Max(s.MaxValue, v)
	}
	s.AverageValue = math.Round(sum/float64(len(values))*100) / 100
	s.LatestTimestamp = latest
	s.OldestTimestamp = oldest
	return s
}
