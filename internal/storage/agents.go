package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// CreateAgentWithTasks inserts an agent and its zeroed agent_tasks counter
// row in a single transaction, so an agent never exists without its stats.
func (db *DB) CreateAgentWithTasks(ctx context.Context, agent model.Agent) (model.Agent, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return model.Agent{}, fmt.Errorf("storage: begin create agent tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if agent.ID == uuid.Nil {
		agent.ID = uuid.New()
	}
	now := time.Now().UTC()
	agent.CreatedAt = now
	agent.UpdatedAt = now
	if agent.Config == nil {
		agent.Config = map[string]any{}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO agents (id, name, type, description, config, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		agent.ID, agent.Name, string(agent.Type), agent.Description,
		agent.Config, string(agent.Status), agent.CreatedAt, agent.UpdatedAt,
	); err != nil {
		return model.Agent{}, fmt.Errorf("storage: create agent: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO agent_tasks (agent_id, tasks_completed, tasks_failed, average_response_time, last_activity, created_at)
		 VALUES ($1, 0, 0, 0, $2, $3)`,
		agent.ID, now, now,
	); err != nil {
		return model.Agent{}, fmt.Errorf("storage: create agent tasks: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Agent{}, fmt.Errorf("storage: commit create agent tx: %w", err)
	}
	return agent, nil
}

// ListAgents returns agents newest first, optionally filtered by type and
// status.
func (db *DB) ListAgents(ctx context.Context, agentType, status string, limit, offset int) ([]model.Agent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, name, type, description, config, status, created_at, updated_at
		 FROM agents
		 WHERE ($1 = '' OR type = $1) AND ($2 = '' OR status = $2)
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		agentType, status, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: list agents: %w", err)
	}
	defer rows.Close()

	var agents []model.Agent
	for rows.Next() {
		var a model.Agent
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Type, &a.Description, &a.Config, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: scan agent: %w", err)
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

// GetAgentTasks retrieves the counter row for one agent.
func (db *DB) GetAgentTasks(ctx context.Context, agentID uuid.UUID) (model.AgentTaskStats, error) {
	var ts model.AgentTaskStats
	err := db.pool.QueryRow(ctx,
		`SELECT agent_id, tasks_completed, tasks_failed, average_response_time, last_activity, created_at
		 FROM agent_tasks WHERE agent_id = $1`, agentID,
	).Scan(
		&ts.AgentID, &ts.TasksCompleted, &ts.TasksFailed,
		&ts.AverageResponseTime, &ts.LastActivity, &ts.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AgentTaskStats{}, fmt.Errorf("storage: agent tasks %s: %w", agentID, ErrNotFound)
		}
		return model.AgentTaskStats{}, fmt.Errorf("storage: get agent tasks: %w", err)
	}
	return ts, nil
}

// UpdateAgent applies a partial update and refreshes updated_at. Only
// non-nil fields are written. Returns ErrNotFound when id matches nothing.
func (db *DB) UpdateAgent(ctx context.Context, id uuid.UUID, name *string, status *model.AgentStatus, config map[string]any, description *string) (model.Agent, error) {
	var a model.Agent
	err := db.pool.QueryRow(ctx,
		`UPDATE agents
		 SET name = COALESCE($1::text, name),
		     status = COALESCE($2::text, status),
		     config = COALESCE($3::jsonb, config),
		     description = COALESCE($4::text, description),
		     updated_at = now()
		 WHERE id = $5 AND status <> 'deleted'
		 RETURNING id, name, type, description, config, status, created_at, updated_at`,
		name, (*string)(status), config, description, id,
	).Scan(
		&a.ID, &a.Name, &a.Type, &a.Description, &a.Config, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Agent{}, fmt.Errorf("storage: agent %s: %w", id, ErrNotFound)
		}
		return model.Agent{}, fmt.Errorf("storage: update agent: %w", err)
	}
	return a, nil
}

// SoftDeleteAgent marks an agent deleted without removing the row. Deleted
// agents cannot be deleted again or updated; both paths report ErrNotFound.
func (db *DB) SoftDeleteAgent(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE agents SET status = $1, updated_at = now() WHERE id = $2 AND status <> 'deleted'`,
		string(model.AgentStatusDeleted), id,
	)
	if err != nil {
		return fmt.Errorf("storage: delete agent: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("storage: agent %s: %w", id, ErrNotFound)
	}
	return nil
}
