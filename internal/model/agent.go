package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// AgentType enumerates the supported agent kinds.
type AgentType string

const (
	AgentTypeSentiment      AgentType = "sentiment"
	AgentTypeRecommendation AgentType = "recommendation"
	AgentTypePerformance    AgentType = "performance"
	AgentTypeCustom         AgentType = "custom"
)

// AgentStatus enumerates agent lifecycle states. Deleted is a status value,
// not a row removal; delete is always soft.
type AgentStatus string

const (
	AgentStatusCreated     AgentStatus = "created"
	AgentStatusActive      AgentStatus = "active"
	AgentStatusInactive    AgentStatus = "inactive"
	AgentStatusError       AgentStatus = "error"
	AgentStatusMaintenance AgentStatus = "maintenance"
	AgentStatusDeleted     AgentStatus = "deleted"
)

// Agent is one managed agent row.
type Agent struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Type        AgentType      `json:"type"`
	Description string         `json:"description"`
	Config      map[string]any `json:"config"`
	Status      AgentStatus    `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// AgentTaskStats is the 1:1 task-counter row created alongside each agent.
// Counters are updated by the task runners, not by this API.
type AgentTaskStats struct {
	AgentID             uuid.UUID `json:"agent_id"`
	TasksCompleted      int       `json:"tasks_completed"`
	TasksFailed         int       `json:"tasks_failed"`
	AverageResponseTime float64   `json:"average_response_time"`
	LastActivity        time.Time `json:"last_activity"`
	CreatedAt           time.Time `json:"created_at"`
}

// AgentStats is the computed per-agent view returned when include_stats is set.
type AgentStats struct {
	TasksCompleted      int       `json:"tasks_completed"`
	TasksFailed         int       `json:"tasks_failed"`
	SuccessRate         float64   `json:"success_rate"`
	AverageResponseTime float64   `json:"average_response_time"`
	LastActivity        time.Time `json:"last_activity"`
	UptimePercentage    float64   `json:"uptime_percentage"`
}

// AgentWithStats is an agent optionally enriched with its computed stats.
type AgentWithStats struct {
	Agent
	Stats *AgentStats `json:"stats,omitempty"`
}

// AgentSummary tallies a result set by status and type.
type AgentSummary struct {
	TotalAgents    int            `json:"total_agents"`
	ActiveAgents   int            `json:"active_agents"`
	InactiveAgents int            `json:"inactive_agents"`
	ErrorAgents    int            `json:"error_agents"`
	Types          map[string]int `json:"types"`
}

// ValidAgentType reports whether t is one of the four creatable types.
func ValidAgentType(t AgentType) bool {
	switch t {
	case AgentTypeSentiment, AgentTypeRecommendation, AgentTypePerformance, AgentTypeCustom:
		return true
	}
	return false
}

// ValidAgentStatus reports whether s is settable via PUT. Deleted is
// reachable only through DELETE.
func ValidAgentStatus(s AgentStatus) bool {
	switch s {
	case AgentStatusCreated, AgentStatusActive, AgentStatusInactive, AgentStatusError, AgentStatusMaintenance:
		return true
	}
	return false
}

// DefaultConfig returns the per-type default configuration. Unknown types
// fall back to the custom defaults. The returned map is a fresh copy.
func DefaultConfig(t AgentType) map[string]any {
	switch t {
	case AgentTypeSentiment:
		return map[string]any{
			"max_concurrent_tasks": 5,
			"timeout_ms":           30000,
			"confidence_threshold": 0.6,
			"language":             "en",
		}
	case AgentTypeRecommendation:
		return map[string]any{
			"max_concurrent_tasks": 10,
			"timeout_ms":           45000,
			"max_recommendations":  20,
			"categories":           []string{"technology", "fashion", "food", "entertainment"},
		}
	case AgentTypePerformance:
		return map[string]any{
			"max_concurrent_tasks": 15,
			"timeout_ms":           15000,
			"alert_thresholds": map[string]any{
				"response_time": 3000,
				"cpu_usage":     90,
				"memory_usage":  95,
			},
			"aggregation_interval": 300000, // 5 minutes
		}
	default:
		return map[string]any{
			"max_concurrent_tasks": 5,
			"timeout_ms":           30000,
		}
	}
}

// MergeConfig overlays caller-supplied options onto the type defaults.
// Caller values win key-by-key at the top level.
func MergeConfig(t AgentType, overrides map[string]any) map[string]any {
	cfg := DefaultConfig(t)
	for k, v := range overrides {
		cfg[k] = v
	}
	return cfg
}

// DefaultDescription is the description applied when the caller omits one.
func DefaultDescription(t AgentType) string {
	return fmt.Sprintf("%s agent created via API", t)
}

// SuccessRate returns completed/(completed+failed) as a percentage rounded
// to one decimal. Zero completed tasks yields 0, never NaN.
func SuccessRate(completed, failed int) float64 {
	if completed <= 0 {
		return 0
	}
	rate := float64(completed) / float64(completed+failed) * 100
	return math.Round(rate*10) / 10
}

// UptimePercentage estimates how much of an agent's lifetime it has been
// active: (last_activity − created_at) / (now − created_at), capped at 100
// and rounded to one decimal. Missing timestamps or a non-positive elapsed
// lifetime yield 0.
func UptimePercentage(createdAt, lastActivity, now time.Time) float64 {
	if createdAt.IsZero() || lastActivity.IsZero() {
		return 0
	}
	total := now.Sub(createdAt)
	if total <= 0 {
		return 0
	}
	active := lastActivity.Sub(createdAt)
	pct := active.Seconds() / total.Seconds() * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}

// ComputeStats derives the API stats view from a raw counter row.
func ComputeStats(ts AgentTaskStats, now time.Time) AgentStats {
	return AgentStats{
		TasksCompleted:      ts.TasksCompleted,
		TasksFailed:         ts.TasksFailed,
		SuccessRate:         SuccessRate(ts.TasksCompleted, ts.TasksFailed),
		AverageResponseTime: ts.AverageResponseTime,
		LastActivity:        ts.LastActivity,
		UptimePercentage:    UptimePercentage(ts.CreatedAt, ts.LastActivity, now),
	}
}

// SummarizeAgents tallies total/active/inactive/error counts and a per-type
// histogram over a result set.
func SummarizeAgents(agents []AgentWithStats) AgentSummary {
	summary := AgentSummary{Types: map[string]int{}}
	for _, a := range agents {
		summary.TotalAgents++
		switch a.Status {
		case AgentStatusActive:
			summary.ActiveAgents++
		case AgentStatusInactive:
			summary.InactiveAgents++
		case AgentStatusError:
			summary.ErrorAgents++
		}
		summary.Types[string(a.Type)]++
	}
	return summary
}
