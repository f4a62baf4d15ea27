package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/domain/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError translates a service error into an HTTP status: validation
// failures become 400 with the field named, missing records 404, and
// anything else a generic 500 with the detail only logged.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if fieldErr, ok := validation.AsFieldError(err); ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fieldErr.Error()})
		return
	}

	switch {
	case errors.Is(err, project.ErrProjectNotFound), errors.Is(err, task.ErrTaskNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		if s.logger != nil {
			s.logger.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return validation.Invalid("body", "malformed json")
	}
	return nil
}

// urlID parses a route parameter as an integer id.
func urlID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, validation.Invalid(name, "must be an integer id")
	}
	return id, nil
}

// queryInt64 parses an optional integer query parameter, nil when absent.
func queryInt64(r *http.Request, name string) (*int64, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, validation.Invalid(name, "must be an integer")
	}
	return &n, nil
}

// queryInt parses an optional integer query parameter, zero when absent.
func queryInt(r *http.Request, name string) (int, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, validation.Invalid(name, "must be an integer")
	}
	return n, nil
}
