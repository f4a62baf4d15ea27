// Package client is a typed Go client for the tasktree API, plus an
// in-memory Store that mirrors server state into view-ready form.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client calls the REST API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sends the key as a bearer token on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// ListProjects returns projects, optionally filtered by owner or workspace.
func (c *Client) ListProjects(ctx context.Context, opts ListProjectsOptions) ([]Project, error) {
	query := url.Values{}
	if opts.UserID != 0 {
		query.Set("userID", strconv.FormatInt(opts.UserID, 10))
	}
	if opts.WsID != 0 {
		query.Set("wsID", strconv.FormatInt(opts.WsID, 10))
	}

	var projects []Project
	if err := c.do(ctx, http.MethodGet, withQuery("/projects", query), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateProject stores a new project and returns it with its assigned id.
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var proj Project
	if err := c.do(ctx, http.MethodPost, "/projects", req, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var proj Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// UpdateProject applies a partial patch and returns the updated project.
func (c *Client) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*Project, error) {
	var proj Project
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/projects/%d", id), patch, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// DeleteProject removes a project. Its tasks stay behind.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// DuplicateProject copies a project and its whole task tree under a fresh
// name, returning the copy.
func (c *Client) DuplicateProject(ctx context.Context, id int64) (*Project, error) {
	var proj Project
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%d/duplicate", id), nil, &proj); err != nil {
		return nil, err
	}
	return &proj, nil
}

// ListTasks returns tasks across projects, filtered by opts.
func (c *Client) ListTasks(ctx context.Context, opts ListTasksOptions) ([]Task, error) {
	query := url.Values{}
	if opts.ProjectID != 0 {
		query.Set("projectID", strconv.FormatInt(opts.ProjectID, 10))
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.TaskLevel != 0 {
		query.Set("taskLevel", strconv.Itoa(opts.TaskLevel))
	}
	if opts.Query != "" {
		query.Set("q", opts.Query)
	}
	if opts.Limit != 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset != 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var tasks []Task
	if err := c.do(ctx, http.MethodGet, withQuery("/tasks", query), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TasksByProject returns every task of one project, flat, in insertion
// order.
func (c *Client) TasksByProject(ctx context.Context, projectID int64) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/project/%d", projectID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ProjectTree returns a project's tasks nested into a forest, with
// unplaceable tasks reported separately.
func (c *Client) ProjectTree(ctx context.Context, projectID int64) (*Forest, error) {
	var forest Forest
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/project/%d/tree", projectID), nil, &forest); err != nil {
		return nil, err
	}
	return &forest, nil
}

// CreateTask stores a new task and returns it with its assigned id and
// ancestor pointers.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask fetches one task.
func (c *Client) GetTask(ctx context.Context, id int64) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial patch and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task. Its descendants stay behind.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil, nil)
}

// ListActivity returns recent activity feed entries, newest first.
func (c *Client) ListActivity(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error) {
	query := url.Values{}
	if opts.ProjectID != 0 {
		query.Set("projectID", strconv.FormatInt(opts.ProjectID, 10))
	}
	if opts.TaskID != 0 {
		query.Set("taskID", strconv.FormatInt(opts.TaskID, 10))
	}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	if opts.Limit != 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset != 0 {
		query.Set("offset", strconv.Itoa(opts.Offset))
	}

	var entries []ActivityEntry
	if err := c.do(ctx, http.MethodGet, withQuery("/activity", query), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
		var wire struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &wire) == nil && wire.Error != "" {
			apiErr.Message = wire.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
