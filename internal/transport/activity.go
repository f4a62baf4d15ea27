package transport

import (
	"net/http"

	"github.com/tmorenz/tasktree/internal/domain/activity"
)

func (s *Server) listActivity(w http.ResponseWriter, r *http.Request) {
	opts := activity.ListActivityOptions{}

	projectID, err := queryInt64(r, "projectID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if projectID != nil {
		opts.ProjectID = *projectID
	}
	if opts.TaskID, err = queryInt64(r, "taskID"); err != nil {
		s.respondError(w, r, err)
		return
	}
	if value := r.URL.Query().Get("type"); value != "" {
		activityType := activity.ActivityType(value)
		opts.ActivityType = &activityType
	}
	if opts.Limit, err = queryInt(r, "limit"); err != nil {
		s.respondError(w, r, err)
		return
	}
	if opts.Offset, err = queryInt(r, "offset"); err != nil {
		s.respondError(w, r, err)
		return
	}

	entries, err := s.activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
