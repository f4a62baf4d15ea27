package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/date"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/domain/validation"
	"github.com/tmorenz/tasktree/internal/repository/errs"
)

// Service handles project operations.
type Service struct {
	repo       Repository
	tasks      TaskSource
	activities ActivityLog
	logger     *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, tasks TaskSource, activities ActivityLog, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		tasks:      tasks,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	UserID    int64
	WsID      int64
	Name      string
	StartDate *date.Date
	EndDate   *date.Date
	EstHours  float64
	ActHours  float64
}

// UpdateRequest defines a partial project patch. Nil fields are left
// unchanged; a zero date clears the stored date.
type UpdateRequest struct {
	Name      *string
	StartDate *date.Date
	EndDate   *date.Date
	EstHours  *float64
	ActHours  *float64
}

// Create validates and stores a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if req.UserID == 0 {
		return nil, validation.Missing("userID")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, validation.Missing("name")
	}
	if req.WsID == 0 {
		return nil, validation.Missing("wsID")
	}

	now := time.Now()
	proj := &Project{
		UserID:     req.UserID,
		WsID:       req.WsID,
		Name:       req.Name,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		EstHours:   req.EstHours,
		ActHours:   req.ActHours,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logActivity(ctx, proj.ID, activity.TypeProjectCreated, fmt.Sprintf("created project %q", proj.Name))
	return proj, nil
}

// Get fetches a project by id.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns projects with filtering.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Project, error) {
	return s.repo.List(ctx, opts)
}

// Update applies a partial patch to a project.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*Project, error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validation.Invalid("name", "must not be empty")
		}
		proj.Name = *req.Name
	}
	if req.StartDate != nil {
		proj.StartDate = clearableDate(req.StartDate)
	}
	if req.EndDate != nil {
		proj.EndDate = clearableDate(req.EndDate)
	}
	if req.EstHours != nil {
		proj.EstHours = *req.EstHours
	}
	if req.ActHours != nil {
		proj.ActHours = *req.ActHours
	}
	proj.ModifiedAt = time.Now()

	if err := s.repo.Update(ctx, proj); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}

	s.logActivity(ctx, proj.ID, activity.TypeProjectUpdated, fmt.Sprintf("updated project %q", proj.Name))
	return proj, nil
}

// Delete removes a project. Its tasks are left in place.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}

	s.logActivity(ctx, id, activity.TypeProjectDeleted, fmt.Sprintf("deleted project %d", id))
	return nil
}

// Duplicate copies a project and its whole task hierarchy under a fresh
// name. The copy and every copied task are written in one transaction, with
// hierarchy pointers rebuilt against the newly assigned ids and completed
// tasks reset to todo.
func (s *Service) Duplicate(ctx context.Context, id int64) (*Project, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading project tasks: %w", err)
	}

	names, err := s.repo.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing project names: %w", err)
	}

	now := time.Now()
	dup := &Project{
		UserID:     src.UserID,
		WsID:       src.WsID,
		Name:       NextCopyName(src.Name, names),
		StartDate:  src.StartDate,
		EndDate:    src.EndDate,
		EstHours:   src.EstHours,
		ActHours:   src.ActHours,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	copies := task.PrepareCopies(tasks, now)
	dup, err = s.repo.Duplicate(ctx, dup, copies)
	if err != nil {
		return nil, fmt.Errorf("duplicating project: %w", err)
	}

	s.logActivity(ctx, dup.ID, activity.TypeProjectDuplicated,
		fmt.Sprintf("duplicated project %d as %q with %d tasks", id, dup.Name, len(copies)))
	return dup, nil
}

func (s *Service) logActivity(ctx context.Context, projectID int64, typ activity.ActivityType, summary string) {
	if s.activities == nil {
		return
	}
	_ = s.activities.Log(ctx, &activity.ActivityEntry{
		ProjectID:    projectID,
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
