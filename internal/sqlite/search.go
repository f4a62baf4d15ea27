package sqlite

import (
	"context"
	"fmt"

	"github.com/tmorenz/tasktree/internal/domain/task"
)

// SearchRepository implements repository.SearchRepository for SQLite
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// Search matches tasks whose name or description contains the query,
// case-insensitively for ASCII the way SQLite LIKE works.
func (r *SearchRepository) Search(ctx context.Context, query string, opts task.SearchOptions) ([]task.Task, error) {
	q := `SELECT ` + taskColumns + ` FROM tasks WHERE (name LIKE ? OR description LIKE ?)`
	pattern := "%" + query + "%"
	args := []any{pattern, pattern}

	if opts.ProjectID != nil {
		q += " AND project_id = ?"
		args = append(args, *opts.ProjectID)
	}

	q += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET
		if opts.Limit <= 0 {
			q += " LIMIT -1"
		}
		q += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}

	return tasks, rows.Err()
}
