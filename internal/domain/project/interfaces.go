package project

import (
	"context"

	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/task"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id int64) (*Project, error)
	List(ctx context.Context, opts ListOptions) ([]Project, error)
	ListNames(ctx context.Context) ([]string, error)
	Update(ctx context.Context, proj *Project) error
	Delete(ctx context.Context, id int64) error
	Duplicate(ctx context.Context, proj *Project, tasks []task.Task) (*Project, error)
}

// TaskSource loads the tasks belonging to a project.
type TaskSource interface {
	ListByProject(ctx context.Context, projectID int64) ([]task.Task, error)
}

// ActivityLog records project mutations in the audit trail.
type ActivityLog interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
