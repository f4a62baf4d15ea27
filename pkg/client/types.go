package client

import (
	"encoding/json"
	"time"
)

// Workflow statuses accepted by the API.
const (
	StatusTodo          = "todo"
	StatusInProgress    = "in-progress"
	StatusComplete      = "complete"
	StatusReview        = "review"
	StatusClosed        = "closed"
	StatusBacklog       = "backlog"
	StatusClarification = "clarification"
)

// Hierarchy levels.
const (
	LevelTask      = 1
	LevelSubtask   = 2
	LevelAction    = 3
	LevelSubaction = 4
)

// Project is the wire form of a project. Dates travel as "2006-01-02"
// strings and are absent when unset.
type Project struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userID"`
	WsID       int64     `json:"wsID"`
	Name       string    `json:"name"`
	StartDate  *string   `json:"startDate,omitempty"`
	EndDate    *string   `json:"endDate,omitempty"`
	EstHours   float64   `json:"estHours"`
	ActHours   float64   `json:"actHours"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// Task is the wire form of a task. Level1ID through Level4ID are the
// server's denormalized ancestor pointers; estPrevHours is null, a number,
// or an array of numbers depending on the task's level.
type Task struct {
	ID           int64           `json:"id"`
	ProjectID    int64           `json:"projectID"`
	TaskLevel    int             `json:"taskLevel"`
	ParentID     *int64          `json:"parentID,omitempty"`
	Level1ID     *int64          `json:"level1ID,omitempty"`
	Level2ID     *int64          `json:"level2ID,omitempty"`
	Level3ID     *int64          `json:"level3ID,omitempty"`
	Level4ID     *int64          `json:"level4ID,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Status       string          `json:"status"`
	TaskType     string          `json:"taskType,omitempty"`
	Assignees    []int64         `json:"assignees,omitempty"`
	EstHours     float64         `json:"estHours"`
	ActHours     float64         `json:"actHours"`
	EstPrevHours json.RawMessage `json:"estPrevHours,omitempty"`
	Info         json.RawMessage `json:"info,omitempty"`
	StartDate    *string         `json:"startDate,omitempty"`
	EndDate      *string         `json:"endDate,omitempty"`
	CompletedAt  *time.Time      `json:"completedAt,omitempty"`
	Expanded     bool            `json:"expanded"`
	CreatedAt    time.Time       `json:"createdAt"`
	ModifiedAt   time.Time       `json:"modifiedAt"`
}

// Node is a task with its children, as returned by the tree endpoint.
type Node struct {
	Task
	Subtasks       []Node `json:"subtasks"`
	ActionItems    []Node `json:"actionItems"`
	SubactionItems []Node `json:"subactionItems"`
}

// Orphan identifies a task the server could not place in the tree.
type Orphan struct {
	TaskID   int64  `json:"taskID"`
	Level    int    `json:"taskLevel"`
	ParentID *int64 `json:"parentID,omitempty"`
}

// Forest is the nested form of a project's tasks.
type Forest struct {
	Roots   []Node   `json:"roots"`
	Orphans []Orphan `json:"orphans,omitempty"`
}

// ActivityEntry is one event from the activity feed.
type ActivityEntry struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectID"`
	TaskID    *int64    `json:"taskID,omitempty"`
	Type      string    `json:"type"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateProjectRequest creates a project.
type CreateProjectRequest struct {
	UserID    int64   `json:"userID"`
	WsID      int64   `json:"wsID"`
	Name      string  `json:"name"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
	EstHours  float64 `json:"estHours,omitempty"`
	ActHours  float64 `json:"actHours,omitempty"`
}

// ProjectPatch updates the set fields of a project. Nil fields are left
// unchanged; set a date to the empty string to clear it.
type ProjectPatch struct {
	Name      *string  `json:"name,omitempty"`
	StartDate *string  `json:"startDate,omitempty"`
	EndDate   *string  `json:"endDate,omitempty"`
	EstHours  *float64 `json:"estHours,omitempty"`
	ActHours  *float64 `json:"actHours,omitempty"`
}

// CreateTaskRequest creates a task. Every level above the first needs a
// ParentID one level up.
type CreateTaskRequest struct {
	ProjectID    int64           `json:"projectID"`
	TaskLevel    int             `json:"taskLevel"`
	ParentID     *int64          `json:"parentID,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Status       string          `json:"status,omitempty"`
	TaskType     string          `json:"taskType,omitempty"`
	Assignees    []int64         `json:"assignees,omitempty"`
	EstHours     float64         `json:"estHours,omitempty"`
	ActHours     float64         `json:"actHours,omitempty"`
	EstPrevHours json.RawMessage `json:"estPrevHours,omitempty"`
	Info         json.RawMessage `json:"info,omitempty"`
	StartDate    *string         `json:"startDate,omitempty"`
	EndDate      *string         `json:"endDate,omitempty"`
	Expanded     bool            `json:"expanded,omitempty"`
}

// TaskPatch updates the set fields of a task. Nil fields are left
// unchanged. Set a date to the empty string to clear it, EstPrevHours to
// the literal null to clear the estimate history, and Assignees to an
// empty slice to unassign everyone.
type TaskPatch struct {
	Name         *string         `json:"name,omitempty"`
	Description  *string         `json:"description,omitempty"`
	Status       *string         `json:"status,omitempty"`
	TaskType     *string         `json:"taskType,omitempty"`
	Assignees    *[]int64        `json:"assignees,omitempty"`
	EstHours     *float64        `json:"estHours,omitempty"`
	ActHours     *float64        `json:"actHours,omitempty"`
	EstPrevHours json.RawMessage `json:"estPrevHours,omitempty"`
	Info         json.RawMessage `json:"info,omitempty"`
	StartDate    *string         `json:"startDate,omitempty"`
	EndDate      *string         `json:"endDate,omitempty"`
	Expanded     *bool           `json:"expanded,omitempty"`
}

// ListProjectsOptions filters the project listing.
type ListProjectsOptions struct {
	UserID int64
	WsID   int64
}

// ListTasksOptions filters the flat task listing. A non-empty Query
// switches the listing to a name/description search.
type ListTasksOptions struct {
	ProjectID int64
	Status    string
	TaskLevel int
	Query     string
	Limit     int
	Offset    int
}

// ListActivityOptions filters the activity feed.
type ListActivityOptions struct {
	ProjectID int64
	TaskID    int64
	Type      string
	Limit     int
	Offset    int
}
