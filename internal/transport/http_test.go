package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/domain/validation"
)

type stubProjects struct {
	proj       *project.Project
	list       []project.Project
	err        error
	lastCreate project.CreateRequest
	lastUpdate project.UpdateRequest
	deleted    []int64
}

func (s *stubProjects) Create(_ context.Context, req project.CreateRequest) (*project.Project, error) {
	s.lastCreate = req
	return s.proj, s.err
}

func (s *stubProjects) Get(_ context.Context, _ int64) (*project.Project, error) {
	return s.proj, s.err
}

func (s *stubProjects) List(_ context.Context, _ project.ListOptions) ([]project.Project, error) {
	return s.list, s.err
}

func (s *stubProjects) Update(_ context.Context, _ int64, req project.UpdateRequest) (*project.Project, error) {
	s.lastUpdate = req
	return s.proj, s.err
}

func (s *stubProjects) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubProjects) Duplicate(_ context.Context, _ int64) (*project.Project, error) {
	return s.proj, s.err
}

type stubTasks struct {
	task       *task.Task
	list       []task.Task
	forest     *task.Forest
	err        error
	lastCreate task.CreateRequest
	lastUpdate task.UpdateRequest
	lastQuery  string
}

func (s *stubTasks) Create(_ context.Context, req task.CreateRequest) (*task.Task, error) {
	s.lastCreate = req
	return s.task, s.err
}

func (s *stubTasks) Get(_ context.Context, _ int64) (*task.Task, error) {
	return s.task, s.err
}

func (s *stubTasks) Update(_ context.Context, _ int64, req task.UpdateRequest) (*task.Task, error) {
	s.lastUpdate = req
	return s.task, s.err
}

func (s *stubTasks) Delete(_ context.Context, _ int64) error {
	return s.err
}

func (s *stubTasks) List(_ context.Context, _ task.ListOptions) ([]task.Task, error) {
	return s.list, s.err
}

func (s *stubTasks) ListByProject(_ context.Context, _ int64) ([]task.Task, error) {
	return s.list, s.err
}

func (s *stubTasks) Search(_ context.Context, query string, _ task.SearchOptions) ([]task.Task, error) {
	s.lastQuery = query
	return s.list, s.err
}

func (s *stubTasks) Tree(_ context.Context, _ int64) (*task.Forest, error) {
	return s.forest, s.err
}

type stubActivity struct {
	entries []activity.ActivityEntry
	err     error
}

func (s *stubActivity) GetRecentActivity(_ context.Context, _ activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	return s.entries, s.err
}

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()

	if cfg.Projects == nil {
		cfg.Projects = &stubProjects{}
	}
	if cfg.Tasks == nil {
		cfg.Tasks = &stubTasks{}
	}
	if cfg.Activity == nil {
		cfg.Activity = &stubActivity{}
	}

	server := httptest.NewServer(NewServer(cfg))
	t.Cleanup(server.Close)
	return server
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, Config{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_CreateProject(t *testing.T) {
	projects := &stubProjects{proj: &project.Project{ID: 1, UserID: 1, WsID: 2, Name: "X", CreatedAt: time.Now()}}
	server := newTestServer(t, Config{Projects: projects})

	body := bytes.NewBufferString(`{"userID":1,"name":"X","wsID":2,"unknownField":true}`)
	resp, err := http.Post(server.URL+"/projects", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, int64(1), projects.lastCreate.UserID)
	require.Equal(t, "X", projects.lastCreate.Name)
	require.Equal(t, int64(2), projects.lastCreate.WsID)

	var returned project.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&returned))
	require.Equal(t, int64(1), returned.ID)
}

func TestServer_CreateProject_ValidationError(t *testing.T) {
	projects := &stubProjects{err: validation.Missing("name")}
	server := newTestServer(t, Config{Projects: projects})

	resp, err := http.Post(server.URL+"/projects", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var failure struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&failure))
	require.Equal(t, "name: is required", failure.Error)
}

func TestServer_GetProject_NotFound(t *testing.T) {
	projects := &stubProjects{err: project.ErrProjectNotFound}
	server := newTestServer(t, Config{Projects: projects})

	resp, err := http.Get(server.URL + "/projects/42")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_GetProject_BadID(t *testing.T) {
	server := newTestServer(t, Config{})

	resp, err := http.Get(server.URL + "/projects/abc")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_StorageErrorIsGeneric(t *testing.T) {
	projects := &stubProjects{err: errors.New("disk exploded: table corrupt")}
	server := newTestServer(t, Config{Projects: projects})

	resp, err := http.Get(server.URL + "/projects/1")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var failure struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&failure))
	require.Equal(t, "internal server error", failure.Error, "error detail must not leak")
}

func TestServer_DeleteProject(t *testing.T) {
	projects := &stubProjects{}
	server := newTestServer(t, Config{Projects: projects})

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/projects/9", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, []int64{9}, projects.deleted)
}

func TestServer_DuplicateProject(t *testing.T) {
	projects := &stubProjects{proj: &project.Project{ID: 2, Name: "X (1)"}}
	server := newTestServer(t, Config{Projects: projects})

	resp, err := http.Post(server.URL+"/projects/1/duplicate", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var returned project.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&returned))
	require.Equal(t, "X (1)", returned.Name)
}

func TestServer_UpdateTask_PatchSemantics(t *testing.T) {
	tasks := &stubTasks{task: &task.Task{ID: 5, Name: "n", Status: task.StatusTodo}}
	server := newTestServer(t, Config{Tasks: tasks})

	body := bytes.NewBufferString(`{"status":"in-progress","startDate":null,"estPrevHours":4.5}`)
	req, err := http.NewRequest(http.MethodPut, server.URL+"/tasks/5", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	patch := tasks.lastUpdate
	require.NotNil(t, patch.Status)
	require.Equal(t, task.StatusInProgress, *patch.Status)
	require.Nil(t, patch.Name, "absent fields stay nil")
	require.NotNil(t, patch.StartDate, "null date must arrive as a clear request")
	require.True(t, patch.StartDate.IsZero())
	require.NotNil(t, patch.EstPrev)
	require.Equal(t, task.ScalarEstimate(4.5), *patch.EstPrev)
}

func TestServer_UpdateTask_MalformedBody(t *testing.T) {
	server := newTestServer(t, Config{})

	req, err := http.NewRequest(http.MethodPut, server.URL+"/tasks/5", bytes.NewBufferString(`{"status":`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_ListTasks_SearchQuery(t *testing.T) {
	tasks := &stubTasks{list: []task.Task{{ID: 1, Name: "hit"}}}
	server := newTestServer(t, Config{Tasks: tasks})

	resp, err := http.Get(server.URL + "/tasks?q=hit")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "hit", tasks.lastQuery)
}

func TestServer_ProjectTree(t *testing.T) {
	root := task.Task{ID: 1, Level: task.LevelTask, Name: "root"}
	tasks := &stubTasks{forest: task.BuildForest([]task.Task{root})}
	server := newTestServer(t, Config{Tasks: tasks})

	resp, err := http.Get(server.URL + "/tasks/project/7/tree")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var forest struct {
		Roots []struct {
			ID       int64 `json:"id"`
			Subtasks []any `json:"subtasks"`
		} `json:"roots"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&forest))
	require.Len(t, forest.Roots, 1)
	require.Equal(t, int64(1), forest.Roots[0].ID)
	require.NotNil(t, forest.Roots[0].Subtasks, "child lists marshal as [] not null")
}

func TestServer_AuthGatesRoutes(t *testing.T) {
	resolver := &testResolver{keyToUser: map[string]int64{"key": 1}}
	server := newTestServer(t, Config{Auth: AuthMiddleware(resolver)})

	// Health stays open
	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// API routes require a key
	resp, err = http.Get(server.URL + "/projects")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/projects", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer key")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_RequestIDHeader(t *testing.T) {
	server := newTestServer(t, Config{})

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	req, err := http.NewRequest(http.MethodGet, server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "caller-id")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "caller-id", resp.Header.Get("X-Request-Id"))
}
