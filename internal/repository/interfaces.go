package repository

import (
	"context"

	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/domain/task"
)

// ProjectRepository manages project persistence
type ProjectRepository interface {
	Create(ctx context.Context, proj *project.Project) error
	Get(ctx context.Context, id int64) (*project.Project, error)
	List(ctx context.Context, opts project.ListOptions) ([]project.Project, error)
	ListNames(ctx context.Context) ([]string, error)
	Update(ctx context.Context, proj *project.Project) error
	Delete(ctx context.Context, id int64) error
	Duplicate(ctx context.Context, proj *project.Project, tasks []task.Task) (*project.Project, error)
}

// TaskRepository manages task persistence
type TaskRepository interface {
	Create(ctx context.Context, t *task.Task) error
	Get(ctx context.Context, id int64) (*task.Task, error)
	Update(ctx context.Context, t *task.Task) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, opts task.ListOptions) ([]task.Task, error)
	ListByProject(ctx context.Context, projectID int64) ([]task.Task, error)
}

// SearchRepository matches tasks against free text
type SearchRepository interface {
	Search(ctx context.Context, query string, opts task.SearchOptions) ([]task.Task, error)
}

// ActivityRepository manages activity log persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.ActivityEntry) error
	List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// KeyRepository manages API key persistence
type KeyRepository interface {
	Mint(ctx context.Context, key string, userID int64, description string) error
	Resolve(ctx context.Context, key string) (int64, error)
}
