package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// maxQueryLimit caps every list endpoint's page size.
const maxQueryLimit = 100

// writeSuccess writes the standard success envelope.
func writeSuccess(w http.ResponseWriter, status int, resp model.SuccessResponse) {
	resp.Status = model.StatusSuccess
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeError writes the standard error envelope. errorCode may be empty for
// client errors; 500s always carry the resource's code.
func writeError(w http.ResponseWriter, status int, message, errorCode string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{
		Status:    model.StatusError,
		Message:   message,
		ErrorCode: errorCode,
	})
}

// writeMethodNotAllowed writes the 405 envelope naming the allowed methods.
func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed,
		"Method not allowed. Use "+strings.Join(allowed, " or "), "")
}

// decodeJSON decodes a size-limited JSON request body into target.
// Unknown fields are tolerated; the dashboard sends fields this API
// ignores.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	return json.NewDecoder(r.Body).Decode(target)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

// queryLimit returns the page size clamped to [1, maxQueryLimit].
func queryLimit(r *http.Request, defaultVal int) int {
	limit := queryInt(r, "limit", defaultVal)
	if limit < 1 {
		return 1
	}
	if limit > maxQueryLimit {
		return maxQueryLimit
	}
	return limit
}

// queryOffset returns a non-negative offset.
func queryOffset(r *http.Request) int {
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		return 0
	}
	return offset
}
