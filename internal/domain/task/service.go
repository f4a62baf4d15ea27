package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/date"
	"github.com/tmorenz/tasktree/internal/domain/validation"
	"github.com/tmorenz/tasktree/internal/repository/errs"
)

// Service handles task business logic.
type Service struct {
	tasks      Repository
	search     SearchRepository
	activities ActivityLog
	logger     *slog.Logger
}

// NewService creates a new task service.
func NewService(tasks Repository, search SearchRepository, activities ActivityLog, logger *slog.Logger) *Service {
	return &Service{
		tasks:      tasks,
		search:     search,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest describes a task creation request.
type CreateRequest struct {
	ProjectID   int64
	Level       int
	ParentID    *int64
	Name        string
	Description string
	Status      Status
	TaskType    string
	Assignees   []int64
	EstHours    float64
	ActHours    float64
	EstPrev     EstimateLog
	Info        json.RawMessage
	StartDate   *date.Date
	EndDate     *date.Date
	Expanded    bool
}

// UpdateRequest describes a partial task update. Nil fields are left
// unchanged. A zero date clears the stored date, an empty estimate log
// clears the stored log, and an explicit JSON null clears the info blob.
type UpdateRequest struct {
	Name        *string
	Description *string
	Status      *Status
	TaskType    *string
	Assignees   []int64
	EstHours    *float64
	ActHours    *float64
	EstPrev     *EstimateLog
	Info        json.RawMessage
	StartDate   *date.Date
	EndDate     *date.Date
	Expanded    *bool
}

// Create validates the request, derives the ancestor pointers from the
// parent and stores the task. The storage layer backfills the own-level
// pointer once the id is assigned.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Task, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusTodo
	}

	now := time.Now()
	t := &Task{
		ProjectID:   req.ProjectID,
		Level:       req.Level,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Description: req.Description,
		Status:      status,
		TaskType:    req.TaskType,
		Assignees:   req.Assignees,
		EstHours:    req.EstHours,
		ActHours:    req.ActHours,
		EstPrev:     req.EstPrev,
		Info:        req.Info,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Expanded:    req.Expanded,
		CreatedAt:   now,
		ModifiedAt:  now,
	}
	if status == StatusComplete {
		t.CompletedAt = &now
	}

	if req.ParentID != nil {
		parent, err := s.tasks.Get(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, validation.Invalid("parentID", "no such task")
			}
			return nil, fmt.Errorf("loading parent task: %w", err)
		}
		if parent.Level != req.Level-1 {
			return nil, validation.Invalid("parentID", fmt.Sprintf("parent must be a level %d task", req.Level-1))
		}
		if parent.ProjectID != req.ProjectID {
			return nil, validation.Invalid("parentID", "parent belongs to a different project")
		}
		for level := LevelTask; level < req.Level; level++ {
			if ancestor := parent.AncestorID(level); ancestor != nil {
				id := *ancestor
				t.SetAncestorID(level, &id)
			}
		}
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	s.logActivity(ctx, t, activity.TypeTaskCreated, fmt.Sprintf("created task %q at level %d", t.Name, t.Level))
	return t, nil
}

// Get retrieves a task by id.
func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// Update applies a partial patch to a task. Moving the status to complete
// stamps CompletedAt; moving it away clears the stamp. Level and parent are
// immutable once a task exists.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Task, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validation.Invalid("name", "must not be empty")
		}
		updated.Name = *req.Name
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, validation.Invalid("status", fmt.Sprintf("unknown status %q", *req.Status))
		}
		now := time.Now()
		switch {
		case *req.Status == StatusComplete && updated.Status != StatusComplete:
			updated.CompletedAt = &now
		case *req.Status != StatusComplete && updated.Status == StatusComplete:
			updated.CompletedAt = nil
		}
		updated.Status = *req.Status
	}
	if req.TaskType != nil {
		updated.TaskType = *req.TaskType
	}
	if req.Assignees != nil {
		if err := validateAssignees(req.Assignees); err != nil {
			return nil, err
		}
		updated.Assignees = req.Assignees
	}
	if req.EstHours != nil {
		updated.EstHours = *req.EstHours
	}
	if req.ActHours != nil {
		updated.ActHours = *req.ActHours
	}
	if req.EstPrev != nil {
		if err := validateEstimateShape(*req.EstPrev, updated.Level); err != nil {
			return nil, err
		}
		updated.EstPrev = *req.EstPrev
	}
	if len(req.Info) > 0 {
		if isJSONNull(req.Info) {
			updated.Info = nil
		} else {
			if err := validateInfo(req.Info); err != nil {
				return nil, err
			}
			updated.Info = req.Info
		}
	}
	if req.StartDate != nil {
		updated.StartDate = clearableDate(req.StartDate)
	}
	if req.EndDate != nil {
		updated.EndDate = clearableDate(req.EndDate)
	}
	if req.Expanded != nil {
		updated.Expanded = *req.Expanded
	}
	updated.ModifiedAt = time.Now()

	if err := s.tasks.Update(ctx, &updated); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	s.logActivity(ctx, &updated, activity.TypeTaskUpdated, fmt.Sprintf("updated task %q", updated.Name))
	return &updated, nil
}

// Delete removes a task. Descendants are not cascaded; they stay in storage
// and surface as orphans when a tree is built.
func (s *Service) Delete(ctx context.Context, id int64) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("deleting task: %w", err)
	}

	s.logActivity(ctx, t, activity.TypeTaskDeleted, fmt.Sprintf("deleted task %q", t.Name))
	return nil
}

// List retrieves tasks with filtering.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Task, error) {
	return s.tasks.List(ctx, opts)
}

// ListByProject retrieves the flat task list of one project.
func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

// Search matches tasks against a free-text query.
func (s *Service) Search(ctx context.Context, query string, opts SearchOptions) ([]Task, error) {
	if s.search == nil {
		return nil, ErrSearchUnavailable
	}
	return s.search.Search(ctx, query, opts)
}

// Tree loads a project's tasks and nests them into a forest. Records that
// cannot be placed are reported in the forest and logged.
func (s *Service) Tree(ctx context.Context, projectID int64) (*Forest, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project tasks: %w", err)
	}

	forest := BuildForest(tasks)
	if len(forest.Orphans) > 0 && s.logger != nil {
		s.logger.Warn("tasks excluded from tree",
			"project_id", projectID,
			"orphans", len(forest.Orphans))
	}
	return forest, nil
}

func (s *Service) logActivity(ctx context.Context, t *Task, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	taskID := t.ID
	_ = s.activities.Log(ctx, &activity.ActivityEntry{
		ProjectID:    t.ProjectID,
		TaskID:       &taskID,
		ActivityType: typ,
		Summary:      summary,
	})
}

func clearableDate(d *date.Date) *date.Date {
	if d.IsZero() {
		return nil
	}
	return d
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
