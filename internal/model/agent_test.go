package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAgentType(t *testing.T) {
	for _, typ := range []AgentType{AgentTypeSentiment, AgentTypeRecommendation, AgentTypePerformance, AgentTypeCustom} {
		assert.True(t, ValidAgentType(typ), "%s", typ)
	}
	assert.False(t, ValidAgentType("chatbot"))
	assert.False(t, ValidAgentType(""))
}

func TestValidAgentStatus(t *testing.T) {
	for _, s := range []AgentStatus{AgentStatusCreated, AgentStatusActive, AgentStatusInactive, AgentStatusError, AgentStatusMaintenance} {
		assert.True(t, ValidAgentStatus(s), "%s", s)
	}
	// Deleted is only reachable via DELETE, never via PUT.
	assert.False(t, ValidAgentStatus(AgentStatusDeleted))
	assert.False(t, ValidAgentStatus("paused"))
}

func TestDefaultConfigPerType(t *testing.T) {
	cfg := DefaultConfig(AgentTypeSentiment)
	assert.Equal(t, map[string]any{
		"max_concurrent_tasks": 5,
		"timeout_ms":           30000,
		"confidence_threshold": 0.6,
		"language":             "en",
	}, cfg)

	cfg = DefaultConfig(AgentTypeRecommendation)
	assert.Equal(t, 10, cfg["max_concurrent_tasks"])
	assert.Equal(t, 45000, cfg["timeout_ms"])
	assert.Equal(t, 20, cfg["max_recommendations"])
	assert.Equal(t, []string{"technology", "fashion", "food", "entertainment"}, cfg["categories"])

	cfg = DefaultConfig(AgentTypePerformance)
	assert.Equal(t, 15, cfg["max_concurrent_tasks"])
	require.Contains(t, cfg, "alert_thresholds")

	cfg = DefaultConfig(AgentTypeCustom)
	assert.Equal(t, map[string]any{
		"max_concurrent_tasks": 5,
		"timeout_ms":           30000,
	}, cfg)
}

func TestDefaultConfigReturnsCopy(t *testing.T) {
	a := DefaultConfig(AgentTypeSentiment)
	a["language"] = "fr"

	b := DefaultConfig(AgentTypeSentiment)
	assert.Equal(t, "en", b["language"])
}

func TestMergeConfigOverridesWin(t *testing.T) {
	cfg := MergeConfig(AgentTypeSentiment, map[string]any{
		"timeout_ms": 5000,
		"model":      "extended",
	})

	assert.Equal(t, 5000, cfg["timeout_ms"])
	assert.Equal(t, "extended", cfg["model"])
	// Untouched defaults remain.
	assert.Equal(t, 5, cfg["max_concurrent_tasks"])
	assert.Equal(t, "en", cfg["language"])
}

func TestMergeConfigNilOverrides(t *testing.T) {
	cfg := MergeConfig(AgentTypeCustom, nil)
	assert.Equal(t, DefaultConfig(AgentTypeCustom), cfg)
}

func TestDefaultDescription(t *testing.T) {
	assert.Equal(t, "sentiment agent created via API", DefaultDescription(AgentTypeSentiment))
	assert.Equal(t, "custom agent created via API", DefaultDescription(AgentTypeCustom))
}

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, SuccessRate(0, 0))
	assert.Equal(t, 0.0, SuccessRate(0, 10))
	assert.Equal(t, 100.0, SuccessRate(10, 0))
	assert.Equal(t, 50.0, SuccessRate(5, 5))
	assert.Equal(t, 66.7, SuccessRate(2, 1))
	assert.Equal(t, 33.3, SuccessRate(1, 2))
}

func TestUptimePercentage(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	created := now.Add(-10 * time.Hour)

	// Active for half the lifetime.
	assert.Equal(t, 50.0, UptimePercentage(created, created.Add(5*time.Hour), now))

	// Last activity equals now: fully active.
	assert.Equal(t, 100.0, UptimePercentage(created, now, now))

	// Last activity after now still caps at 100.
	assert.Equal(t, 100.0, UptimePercentage(created, now.Add(time.Hour), now))

	// Missing timestamps or zero lifetime never divide by zero.
	assert.Equal(t, 0.0, UptimePercentage(time.Time{}, now, now))
	assert.Equal(t, 0.0, UptimePercentage(created, time.Time{}, now))
	assert.Equal(t, 0.0, UptimePercentage(now, now, now))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ts := AgentTaskStats{
		TasksCompleted:      8,
		TasksFailed:         2,
		AverageResponseTime: 125.5,
		LastActivity:        now.Add(-1 * time.Hour),
		CreatedAt:           now.Add(-4 * time.Hour),
	}

	stats := ComputeStats(ts, now)
	assert.Equal(t, 8, stats.TasksCompleted)
	assert.Equal(t, 2, stats.TasksFailed)
	assert.Equal(t, 80.0, stats.SuccessRate)
	assert.Equal(t, 125.5, stats.AverageResponseTime)
	assert.Equal(t, 75.0, stats.UptimePercentage)
}

func TestSummarizeAgents(t *testing.T) {
	agents := []AgentWithStats{
		{Agent: Agent{Type: AgentTypeSentiment, Status: AgentStatusActive}},
		{Agent: Agent{Type: AgentTypeSentiment, Status: AgentStatusInactive}},
		{Agent: Agent{Type: AgentTypeCustom, Status: AgentStatusError}},
		{Agent: Agent{Type: AgentTypePerformance, Status: AgentStatusCreated}},
	}

	s := SummarizeAgents(agents)
	assert.Equal(t, 4, s.TotalAgents)
	assert.Equal(t, 1, s.ActiveAgents)
	assert.Equal(t, 1, s.InactiveAgents)
	assert.Equal(t, 1, s.ErrorAgents)
	assert.Equal(t, map[string]int{"sentiment": 2, "custom": 1, "performance": 1}, s.Types)
}

func TestSummarizeAgentsEmpty(t *testing.T) {
	s := SummarizeAgents(nil)
	assert.Equal(t, 0, s.TotalAgents)
	assert.NotNil(t, s.Types)
}
