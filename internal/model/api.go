package model

// Response status values. Every endpoint wraps its payload in the same
// envelope: {"status": "success"|"error", ...}.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorCode constants returned with 500 responses. Each resource handler
// has its own code so the dashboard can attribute failures.
const (
	ErrCodeSentiment      = "SENTIMENT_ANALYSIS_ERROR"
	ErrCodeAgentFactory   = "AGENT_FACTORY_ERROR"
	ErrCodePerformance    = "PERFORMANCE_MONITOR_ERROR"
	ErrCodeRecommendation = "RECOMMENDATION_ERROR"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeRateLimited    = "RATE_LIMITED"
)

// SuccessResponse is the envelope for all 2xx responses.
type SuccessResponse struct {
	Status         string      `json:"status"`
	Message        string      `json:"message,omitempty"`
	Data           any         `json:"data,omitempty"`
	Summary        any         `json:"summary,omitempty"`
	Pagination     *Pagination `json:"pagination,omitempty"`
	FiltersApplied any         `json:"filters_applied,omitempty"`
}

// ErrorResponse is the envelope for all 4xx/5xx responses.
type ErrorResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// Pagination echoes the applied limit/offset plus the result count.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// AnalyzeSentimentRequest is the body for POST /api/sentiment-agent.
type AnalyzeSentimentRequest struct {
	Text string `json:"text"`
}

// CreateAgentRequest is the body for POST /api/agent-factory.
type CreateAgentRequest struct {
	Name        string         `json:"name"`
	Type        AgentType      `json:"type"`
	Config      map[string]any `json:"config,omitempty"`
	Description string         `json:"description,omitempty"`
}

// UpdateAgentRequest is the body for PUT /api/agent-factory.
// Only the fields present are applied; updated_at is always refreshed.
type UpdateAgentRequest struct {
	ID          string         `json:"id"`
	Name        *string        `json:"name,omitempty"`
	Status      *AgentStatus   `json:"status,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Description *string        `json:"description,omitempty"`
}

// DeleteAgentRequest is the body for DELETE /api/agent-factory.
type DeleteAgentRequest struct {
	ID string `json:"id"`
}

// RecordMetricRequest is the body for POST /api/performance-monitor.
// Value is a pointer so "value missing" and "value zero" are distinguishable.
type RecordMetricRequest struct {
	Service    string         `json:"service"`
	MetricType string         `json:"metric_type"`
	Value      *float64       `json:"value"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// GenerateRecommendationsRequest is the body for POST /api/recommendation-agent.
type GenerateRecommendationsRequest struct {
	UserID      string      `json:"user_id"`
	Category    string      `json:"category"`
	Preferences Preferences `json:"preferences,omitempty"`
}

// Preferences are the caller-supplied recommendation filters.
type Preferences struct {
	MaxPrice  *float64 `json:"max_price,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
}

// HealthResponse is the payload for GET /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Postgres string `json:"postgres"`
	Uptime   int64  `json:"uptime_seconds"`
}
