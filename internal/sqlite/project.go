package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/repository"
)

// ProjectRepository implements repository.ProjectRepository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, user_id, ws_id, name, start_date, end_date, est_hours, act_hours, created_at, modified_at`

// Create inserts a new project and assigns its id
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (user_id, ws_id, name, start_date, end_date, est_hours, act_hours, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.UserID,
		proj.WsID,
		proj.Name,
		encodeDate(proj.StartDate),
		encodeDate(proj.EndDate),
		proj.EstHours,
		proj.ActHours,
		proj.CreatedAt,
		proj.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read project id: %w", err)
	}
	proj.ID = id

	return nil
}

// Get retrieves a project by id
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`

	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	return proj, nil
}

// List retrieves projects with optional user and workspace filters
func (r *ProjectRepository) List(ctx context.Context, opts project.ListOptions) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var conditions []string
	var args []any

	if opts.UserID != nil {
		conditions = append(conditions, "user_id = ?")
		args = append(args, *opts.UserID)
	}
	if opts.WsID != nil {
		conditions = append(conditions, "ws_id = ?")
		args = append(args, *opts.WsID)
	}
	if len(conditions) > 0 {
		query += " WHERE " + joinConditions(conditions)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]project.Project, 0)
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}

	return projects, rows.Err()
}

// ListNames returns the names of every project
func (r *ProjectRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("failed to list project names: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan project name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Update overwrites a project's mutable fields
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	query := `
		UPDATE projects
		SET name = ?, start_date = ?, end_date = ?, est_hours = ?, act_hours = ?, modified_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		proj.Name,
		encodeDate(proj.StartDate),
		encodeDate(proj.EndDate),
		proj.EstHours,
		proj.ActHours,
		proj.ModifiedAt,
		proj.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes a project. Its tasks are intentionally left behind.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Duplicate writes a project copy and its prepared task copies in one
// transaction. Tasks must arrive parents before children; as each insert
// assigns a fresh id, the old-to-new map rewrites the hierarchy pointers of
// everything that follows.
func (r *ProjectRepository) Duplicate(ctx context.Context, proj *project.Project, tasks []task.Task) (*project.Project, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO projects (user_id, ws_id, name, start_date, end_date, est_hours, act_hours, created_at, modified_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		proj.UserID,
		proj.WsID,
		proj.Name,
		encodeDate(proj.StartDate),
		encodeDate(proj.EndDate),
		proj.EstHours,
		proj.ActHours,
		proj.CreatedAt,
		proj.ModifiedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to copy project: %w", err)
	}

	projectID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read project id: %w", err)
	}

	ids := make(map[int64]int64, len(tasks))
	for i := range tasks {
		t := tasks[i]
		sourceID := t.ID
		t.ProjectID = projectID
		task.RemapHierarchy(&t, ids)

		if err := insertTask(ctx, tx, &t); err != nil {
			return nil, fmt.Errorf("failed to copy task %d: %w", sourceID, err)
		}
		ids[sourceID] = t.ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit duplication: %w", err)
	}

	proj.ID = projectID
	return proj, nil
}

func scanProject(row rowScanner) (*project.Project, error) {
	var proj project.Project
	var startDate, endDate sql.NullString

	err := row.Scan(
		&proj.ID,
		&proj.UserID,
		&proj.WsID,
		&proj.Name,
		&startDate,
		&endDate,
		&proj.EstHours,
		&proj.ActHours,
		&proj.CreatedAt,
		&proj.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	if proj.StartDate, err = decodeDate(startDate); err != nil {
		return nil, err
	}
	if proj.EndDate, err = decodeDate(endDate); err != nil {
		return nil, err
	}

	return &proj, nil
}
