package task

import (
	"encoding/json"
	"time"

	"github.com/tmorenz/tasktree/internal/domain/date"
)

// Status represents the workflow status of a task
type Status string

const (
	StatusTodo          Status = "todo"
	StatusInProgress    Status = "in-progress"
	StatusComplete      Status = "complete"
	StatusReview        Status = "review"
	StatusClosed        Status = "closed"
	StatusBacklog       Status = "backlog"
	StatusClarification Status = "clarification"
)

// Valid reports whether s is one of the known workflow statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusComplete, StatusReview,
		StatusClosed, StatusBacklog, StatusClarification:
		return true
	}
	return false
}

// Hierarchy levels: task, subtask, action item, subaction item.
const (
	LevelTask      = 1
	LevelSubtask   = 2
	LevelAction    = 3
	LevelSubaction = 4
)

// MaxAssignees caps how many users one task can be assigned to.
const MaxAssignees = 3

// Task represents one record of the four-level work hierarchy. Level1ID
// through Level4ID are denormalized ancestor pointers: LevelNID holds the id
// of the record's ancestor at level N, and the pointer at the record's own
// level holds its own id.
type Task struct {
	ID          int64           `json:"id"`
	ProjectID   int64           `json:"projectID"`
	Level       int             `json:"taskLevel"`
	ParentID    *int64          `json:"parentID,omitempty"`
	Level1ID    *int64          `json:"level1ID,omitempty"`
	Level2ID    *int64          `json:"level2ID,omitempty"`
	Level3ID    *int64          `json:"level3ID,omitempty"`
	Level4ID    *int64          `json:"level4ID,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      Status          `json:"status"`
	TaskType    string          `json:"taskType,omitempty"`
	Assignees   []int64         `json:"assignees,omitempty"`
	EstHours    float64         `json:"estHours"`
	ActHours    float64         `json:"actHours"`
	EstPrev     EstimateLog     `json:"estPrevHours"`
	Info        json.RawMessage `json:"info,omitempty"`
	StartDate   *date.Date      `json:"startDate,omitempty"`
	EndDate     *date.Date      `json:"endDate,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	Expanded    bool            `json:"expanded"`
	CreatedAt   time.Time       `json:"createdAt"`
	ModifiedAt  time.Time       `json:"modifiedAt"`
}

// AncestorID returns the denormalized pointer to the task's ancestor at the
// given level, or nil when unset.
func (t *Task) AncestorID(level int) *int64 {
	switch level {
	case 1:
		return t.Level1ID
	case 2:
		return t.Level2ID
	case 3:
		return t.Level3ID
	case 4:
		return t.Level4ID
	}
	return nil
}

// SetAncestorID overwrites the ancestor pointer at the given level.
func (t *Task) SetAncestorID(level int, id *int64) {
	switch level {
	case 1:
		t.Level1ID = id
	case 2:
		t.Level2ID = id
	case 3:
		t.Level3ID = id
	case 4:
		t.Level4ID = id
	}
}

// SetOwnLevelID points the task's own-level ancestor field at its id. Valid
// only once the task has been assigned an id.
func (t *Task) SetOwnLevelID() {
	id := t.ID
	t.SetAncestorID(t.Level, &id)
}
