package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection. maxOpenConns bounds the
// connection pool; writes still serialize on SQLite's single writer.
func New(dataSourceName string, maxOpenConns int) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. Every statement is idempotent, so the
// server runs this on each boot.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    ws_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    start_date TEXT,
    end_date TEXT,
    est_hours REAL NOT NULL DEFAULT 0,
    act_hours REAL NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_ws_projects ON projects(ws_id);
CREATE INDEX IF NOT EXISTS idx_user_projects ON projects(user_id);

-- Tasks table. Hierarchy is kept as denormalized ancestor pointers with no
-- foreign keys, so removing a parent leaves its descendants in place.
CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL,
    task_level INTEGER NOT NULL CHECK(task_level BETWEEN 1 AND 4),
    parent_id INTEGER,
    level1_id INTEGER,
    level2_id INTEGER,
    level3_id INTEGER,
    level4_id INTEGER,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL CHECK(status IN ('todo', 'in-progress', 'complete', 'review', 'closed', 'backlog', 'clarification')),
    task_type TEXT NOT NULL DEFAULT '',
    assignees TEXT,
    est_hours REAL NOT NULL DEFAULT 0,
    act_hours REAL NOT NULL DEFAULT 0,
    est_prev_hours TEXT,
    info TEXT,
    start_date TEXT,
    end_date TEXT,
    completed_at TIMESTAMP,
    expanded INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    modified_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_project_tasks ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_parent_tasks ON tasks(parent_id);
CREATE INDEX IF NOT EXISTS idx_task_level ON tasks(task_level);
CREATE INDEX IF NOT EXISTS idx_task_status ON tasks(status);

-- Activity log
CREATE TABLE IF NOT EXISTS activity_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    project_id INTEGER NOT NULL,
    task_id INTEGER,
    activity_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_project_activity ON activity_log(project_id);
CREATE INDEX IF NOT EXISTS idx_task_activity ON activity_log(task_id);
CREATE INDEX IF NOT EXISTS idx_created_at ON activity_log(created_at);

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    last_used TIMESTAMP,
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_user_keys ON api_keys(user_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
