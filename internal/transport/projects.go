package transport

import (
	"net/http"

	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/ws"
)

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	opts := project.ListOptions{}
	var err error
	if opts.UserID, err = queryInt64(r, "userID"); err != nil {
		s.respondError(w, r, err)
		return
	}
	if opts.WsID, err = queryInt64(r, "wsID"); err != nil {
		s.respondError(w, r, err)
		return
	}

	projects, err := s.projects.List(r.Context(), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var body createProjectRequest
	if err := decodeJSON(r, &body); err != nil {
		s.respondError(w, r, err)
		return
	}

	proj, err := s.projects.Create(r.Context(), body.toRequest())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.publish(ws.EventProjectCreated, proj)
	writeJSON(w, http.StatusCreated, proj)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	proj, err := s.projects.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var body projectPatch
	if err := decodeJSON(r, &body); err != nil {
		s.respondError(w, r, err)
		return
	}

	req, err := body.toRequest()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	proj, err := s.projects.Update(r.Context(), id, req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.publish(ws.EventProjectUpdated, proj)
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.projects.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.publish(ws.EventProjectDeleted, map[string]int64{"id": id})
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) duplicateProject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "id")
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	proj, err := s.projects.Duplicate(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.publish(ws.EventProjectDuplicated, proj)
	writeJSON(w, http.StatusCreated, proj)
}
