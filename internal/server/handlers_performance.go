package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fmaa-dev/fmaa/internal/model"
	"github.com/fmaa-dev/fmaa/internal/perf"
	"github.com/fmaa-dev/fmaa/internal/storage"
)

// HandlePerformance dispatches /api/performance-monitor by method.
func (h *Handlers) HandlePerformance(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listMetrics(w, r)
	case http.MethodPost:
		h.recordMetric(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// metricFilters is the filters_applied echo on GET responses.
type metricFilters struct {
	Service     string `json:"service,omitempty"`
	MetricType  string `json:"metric_type,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Aggregation string `json:"aggregation"`
}

// listMetrics handles GET: filter, optionally aggregate into calendar
// buckets, and attach summary stats.
func (h *Handlers) listMetrics(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 100)
	offset := queryOffset(r)

	aggregation, err := perf.ParseAggregation(r.URL.Query().Get("aggregation"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	filter := storage.MetricFilter{
		Service:    r.URL.Query().Get("service"),
		MetricType: r.URL.Query().Get("metric_type"),
	}
	if filter.StartDate, err = queryTime(r, "start_date"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	if filter.EndDate, err = queryTime(r, "end_date"); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	metrics, err := h.db.ListPerformanceMetrics(r.Context(), filter, limit, offset)
	if err != nil {
		h.writeResourceError(w, r, model.ErrCodePerformance, err)
		return
	}

	filters := metricFilters{
		Service:     filter.Service,
		MetricType:  filter.MetricType,
		StartDate:   r.URL.Query().Get("start_date"),
		EndDate:     r.URL.Query().Get("end_date"),
		Aggregation: string(aggregation),
	}

	if aggregation != perf.AggregationRaw {
		groups := perf.Aggregate(metrics, aggregation)
		values := make([]float64, len(groups))
		for i, g := range groups {
			values[i] = g.Value
		}
		var latest, oldest string
		if len(groups) > 0 {
			latest = groups[0].Timestamp
			oldest = groups[len(groups)-1].Timestamp
		}
		writeSuccess(w, http.StatusOK, model.SuccessResponse{
			Data:           groups,
			Summary:        perf.Summarize(values, latest, oldest),
			Pagination:     &model.Pagination{Limit: limit, Offset: offset, Count: len(groups)},
			FiltersApplied: filters,
		})
		return
	}

	values := make([]float64, len(metrics))
	for i, m := range metrics {
		values[i] = m.Value
	}
	var latest, oldest string
	if len(metrics) > 0 {
		latest = metrics[0].Timestamp.Format(time.RFC3339)
		oldest = metrics[len(metrics)-1].Timestamp.Format(time.RFC3339)
	}
	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Data:           metrics,
		Summary:        perf.Summarize(values, latest, oldest),
		Pagination:     &model.Pagination{Limit: limit, Offset: offset, Count: len(metrics)},
		FiltersApplied: filters,
	})
}

// recordMetric handles POST: validate, persist, then evaluate alert
// thresholds. A failed alert write is logged and swallowed; it never fails
// the metric write.
func (h *Handlers) recordMetric(w http.ResponseWriter, r *http.Request) {
	var req model.RecordMetricRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	if req.Service == "" || req.MetricType == "" || req.Value == nil {
		writeError(w, http.StatusBadRequest, "service, metric_type, and value are required", "")
		return
	}

	now := time.Now().UTC()
	metadata := map[string]any{}
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["recorded_at"] = now.Format(time.RFC3339)
	metadata["source"] = "api"
	metadata["version"] = "1.0"

	saved, err := h.db.InsertPerformanceMetric(r.Context(), model.PerformanceMetric{
		Service:    req.Service,
		MetricType: req.MetricType,
		Value:      *req.Value,
		Timestamp:  now,
		Metadata:   metadata,
	})
	if err != nil {
		h.writeResourceError(w, r, model.ErrCodePerformance, err)
		return
	}

	h.checkPerformanceAlert(r, req.Service, req.MetricType, *req.Value)

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: "Performance metric recorded successfully",
		Data:    saved,
	})
}

// checkPerformanceAlert evaluates the threshold table and appends a
// system_logs row when crossed. Best-effort by contract.
func (h *Handlers) checkPerformanceAlert(r *http.Request, service, metricType string, value float64) {
	level, triggered := perf.EvaluateAlert(metricType, value)
	if !triggered {
		return
	}

	h.logger.Warn("performance alert",
		"level", level,
		"service", service,
		"metric_type", metricType,
		"value", value,
	)

	threshold := perf.DefaultThresholds[metricType]
	err := h.db.InsertSystemLog(r.Context(), model.SystemLog{
		Level:   level,
		Service: service,
		Message: fmt.Sprintf("Performance alert: %s = %v", metricType, value),
		Metadata: map[string]any{
			"metric_type": metricType,
			"value":       value,
			"threshold": map[string]any{
				"warning":  threshold.Warning,
				"critical": threshold.Critical,
			},
		},
	})
	if err != nil {
		h.logger.Error("failed to log performance alert", "error", err)
	}
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: expected RFC3339 format (e.g. 2024-01-01T00:00:00Z)", key)
	}
	return &t, nil
}
