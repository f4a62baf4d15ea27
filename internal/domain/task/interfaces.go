package task

import (
	"context"

	"github.com/tmorenz/tasktree/internal/domain/activity"
)

// Repository provides persistence operations for tasks.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id int64) (*Task, error)
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, opts ListOptions) ([]Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]Task, error)
}

// SearchRepository matches tasks against a free-text query.
type SearchRepository interface {
	Search(ctx context.Context, query string, opts SearchOptions) ([]Task, error)
}

// ActivityLog records task mutations in the audit trail.
type ActivityLog interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
}
