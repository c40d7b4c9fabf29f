package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fmaa-dev/fmaa/internal/model"
	"github.com/fmaa-dev/fmaa/internal/storage"
)

// HandleAgents dispatches /api/agent-factory by method.
func (h *Handlers) HandleAgents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listAgents(w, r)
	case http.MethodPost:
		h.createAgent(w, r)
	case http.MethodPut:
		h.updateAgent(w, r)
	case http.MethodDelete:
		h.deleteAgent(w, r)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete)
	}
}

// listAgents handles GET: filter by type/status, optional per-agent stats,
// and a summary tally of the result set.
func (h *Handlers) listAgents(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, 50)
	offset := queryOffset(r)
	agentType := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")
	includeStats := r.URL.Query().Get("include_stats") == "true"

	agents, err := h.db.ListAgents(r.Context(), agentType, status, limit, offset)
	if err != nil {
		h.writeResourceError(w, r, model.ErrCodeAgentFactory, err)
		return
	}

	now := time.Now().UTC()
	enriched := make([]model.AgentWithStats, 0, len(agents))
	for _, a := range agents {
		item := model.AgentWithStats{Agent: a}
		if includeStats {
			// Stats are best-effort: a missing counter row hides the
			// stats block rather than failing the whole list.
			if ts, err := h.db.GetAgentTasks(r.Context(), a.ID); err == nil {
				stats := model.ComputeStats(ts, now)
				item.Stats = &stats
			} else if !errors.Is(err, storage.ErrNotFound) {
				h.logger.Warn("failed to fetch agent stats", "agent_id", a.ID, "error", err)
			}
		}
		enriched = append(enriched, item)
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Data:       enriched,
		Summary:    model.SummarizeAgents(enriched),
		Pagination: &model.Pagination{Limit: limit, Offset: offset, Count: len(enriched)},
	})
}

// createAgent handles POST: validate name/type, merge type defaults with
// caller config, and create the agent plus its zeroed task counters.
func (h *Handlers) createAgent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAgentRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	if req.Name == "" || req.Type == "" {
		writeError(w, http.StatusBadRequest, "name and type are required", "")
		return
	}
	if !model.ValidAgentType(req.Type) {
		writeError(w, http.StatusBadRequest,
			"Invalid agent type. Must be one of: sentiment, recommendation, performance, custom", "")
		return
	}

	description := req.Description
	if description == "" {
		description = model.DefaultDescription(req.Type)
	}

	agent, err := h.db.CreateAgentWithTasks(r.Context(), model.Agent{
		Name:        req.Name,
		Type:        req.Type,
		Description: description,
		Config:      model.MergeConfig(req.Type, req.Config),
		Status:      model.AgentStatusCreated,
	})
	if err != nil {
		h.writeResourceError(w, r, model.ErrCodeAgentFactory, err)
		return
	}

	writeSuccess(w, http.StatusCreated, model.SuccessResponse{
		Message: "Agent created successfully",
		Data:    agent,
	})
}

// updateAgent handles PUT: partial update of name/status/config/description.
func (h *Handlers) updateAgent(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateAgentRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	id, err := parseAgentID(req.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}
	if req.Status != nil && !model.ValidAgentStatus(*req.Status) {
		writeError(w, http.StatusBadRequest,
			"Invalid status. Must be one of: created, active, inactive, error, maintenance", "")
		return
	}

	agent, err := h.db.UpdateAgent(r.Context(), id, req.Name, req.Status, req.Config, req.Description)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "")
			return
		}
		h.writeResourceError(w, r, model.ErrCodeAgentFactory, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: "Agent updated successfully",
		Data:    agent,
	})
}

// deleteAgent handles DELETE: soft delete by status flip.
func (h *Handlers) deleteAgent(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteAgentRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}

	id, err := parseAgentID(req.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	if err := h.db.SoftDeleteAgent(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Agent not found", "")
			return
		}
		h.writeResourceError(w, r, model.ErrCodeAgentFactory, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.SuccessResponse{
		Message: "Agent deleted successfully",
	})
}

func parseAgentID(s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, fmt.Errorf("Agent ID is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("Agent ID must be a valid UUID")
	}
	return id, nil
}
