package transport

import (
	"net/http"

	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/ws"
)

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	projectID, err := queryInt64(r, "projectID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// A free-text query switches the listing to search
	if query := r.URL.Query().Get("q"); query != "" {
		tasks, err := s.tasks.Search(r.Context(), query, task.SearchOptions{
			ProjectID: projectID,
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			s.respondError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tasks)
		return
	}

	opts := task.ListOptions{ProjectID: projectID, Limit: limit, Offset: offset}
	if value := r.URL.Query().Get("status"); value != "" {
		status := task.Status(value)
		opts.Status = &status
	}
	if level, err := queryInt(r, "taskLevel"); err != nil {
		s.respondError(w, r, err)
		return
	} else if level != 0 {
		opts.Level = &level
	}

	tasks, err := s.tasks.List(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var body createTaskRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondError(w, r, err)
		return
	}

	created, err := s.tasks.Create(r.Context(), body.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.publish(ws.EventTaskCreated, created)
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	found, err := s.tasks.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, found)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var body taskPatch
	if err := decodeJSON(r, &body); err != nil {
		s.respondError(w, r, err)
		return
	}

	req, err := body.toRequest()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	updated, err := s.tasks.Update(r.Context(), id, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.publish(ws.EventTaskUpdated, updated)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.tasks.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.publish(ws.EventTaskDeleted, map[string]int64{"id": id})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) tasksByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tasks, err := s.tasks.ListByProject(r.Context(), projectID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) projectTree(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlID(r, "projectID")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	forest, err := s.tasks.Tree(r.Context(), projectID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, forest)
}
