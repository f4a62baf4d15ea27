package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/repository"
)

// TaskRepository implements repository.TaskRepository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, project_id, task_level, parent_id, level1_id, level2_id, level3_id, level4_id,
	name, description, status, task_type, assignees, est_hours, act_hours, est_prev_hours, info,
	start_date, end_date, completed_at, expanded, created_at, modified_at`

// execer covers *DB and *sql.Tx so inserts can run inside a transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Create inserts a new task, assigns its id and backfills the own-level
// ancestor pointer.
func (r *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTask(ctx, tx, t); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit task: %w", err)
	}
	return nil
}

// insertTask writes one task and leaves it with its assigned id and its
// own-level pointer set. The insert and the pointer backfill are two
// statements, which is why callers hold a transaction.
func insertTask(ctx context.Context, ex execer, t *task.Task) error {
	assignees, err := encodeAssignees(t.Assignees)
	if err != nil {
		return err
	}
	estimates, err := encodeEstimates(t.EstPrev)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (
			project_id, task_level, parent_id, level1_id, level2_id, level3_id, level4_id,
			name, description, status, task_type, assignees, est_hours, act_hours,
			est_prev_hours, info, start_date, end_date, completed_at, expanded,
			created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := ex.ExecContext(ctx, query,
		t.ProjectID,
		t.Level,
		t.ParentID,
		t.Level1ID,
		t.Level2ID,
		t.Level3ID,
		t.Level4ID,
		t.Name,
		t.Description,
		t.Status,
		t.TaskType,
		assignees,
		t.EstHours,
		t.ActHours,
		estimates,
		encodeInfo(t.Info),
		encodeDate(t.StartDate),
		encodeDate(t.EndDate),
		t.CompletedAt,
		t.Expanded,
		t.CreatedAt,
		t.ModifiedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return repository.ErrConstraint
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read task id: %w", err)
	}
	t.ID = id
	t.SetOwnLevelID()

	backfill := fmt.Sprintf(`UPDATE tasks SET level%d_id = ? WHERE id = ?`, t.Level)
	if _, err := ex.ExecContext(ctx, backfill, t.ID, t.ID); err != nil {
		return fmt.Errorf("failed to backfill own-level pointer: %w", err)
	}

	return nil
}

// Get retrieves a task by id
func (r *TaskRepository) Get(ctx context.Context, id int64) (*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// Update overwrites a task's mutable fields. Level, parent and the ancestor
// pointers are fixed at creation and not part of the statement.
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	assignees, err := encodeAssignees(t.Assignees)
	if err != nil {
		return err
	}
	estimates, err := encodeEstimates(t.EstPrev)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET name = ?, description = ?, status = ?, task_type = ?, assignees = ?,
			est_hours = ?, act_hours = ?, est_prev_hours = ?, info = ?,
			start_date = ?, end_date = ?, completed_at = ?, expanded = ?, modified_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.Status,
		t.TaskType,
		assignees,
		t.EstHours,
		t.ActHours,
		estimates,
		encodeInfo(t.Info),
		encodeDate(t.StartDate),
		encodeDate(t.EndDate),
		t.CompletedAt,
		t.Expanded,
		t.ModifiedAt,
		t.ID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return repository.ErrConstraint
		}
		return fmt.Errorf("failed to update task: %w", err)
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

// Delete removes a task. Descendant rows are intentionally not cascaded.
func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
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

// List retrieves tasks with filtering
func (r *TaskRepository) List(ctx context.Context, opts task.ListOptions) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var conditions []string
	var args []any

	if opts.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *opts.ProjectID)
	}
	if opts.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *opts.Status)
	}
	if opts.Level != nil {
		conditions = append(conditions, "task_level = ?")
		args = append(args, *opts.Level)
	}
	if len(conditions) > 0 {
		query += " WHERE " + joinConditions(conditions)
	}
	query += " ORDER BY created_at DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}
	if opts.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET
		if opts.Limit <= 0 {
			query += " LIMIT -1"
		}
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	return r.queryTasks(ctx, query, args...)
}

// ListByProject retrieves every task of a project in insertion order, the
// order tree building preserves.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int64) ([]task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = ? ORDER BY id ASC`
	return r.queryTasks(ctx, query, projectID)
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
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

func scanTask(row rowScanner) (*task.Task, error) {
	var t task.Task
	var parentID, level1ID, level2ID, level3ID, level4ID sql.NullInt64
	var assignees, estimates, info, startDate, endDate sql.NullString
	var completedAt sql.NullTime

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Level,
		&parentID,
		&level1ID,
		&level2ID,
		&level3ID,
		&level4ID,
		&t.Name,
		&t.Description,
		&t.Status,
		&t.TaskType,
		&assignees,
		&t.EstHours,
		&t.ActHours,
		&estimates,
		&info,
		&startDate,
		&endDate,
		&completedAt,
		&t.Expanded,
		&t.CreatedAt,
		&t.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}

	t.ParentID = nullableID(parentID)
	t.Level1ID = nullableID(level1ID)
	t.Level2ID = nullableID(level2ID)
	t.Level3ID = nullableID(level3ID)
	t.Level4ID = nullableID(level4ID)

	if t.Assignees, err = decodeAssignees(assignees); err != nil {
		return nil, err
	}
	if t.EstPrev, err = decodeEstimates(estimates); err != nil {
		return nil, err
	}
	t.Info = decodeInfo(info)

	if t.StartDate, err = decodeDate(startDate); err != nil {
		return nil, err
	}
	if t.EndDate, err = decodeDate(endDate); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		completed := completedAt.Time
		t.CompletedAt = &completed
	}

	return &t, nil
}

func nullableID(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	id := n.Int64
	return &id
}
