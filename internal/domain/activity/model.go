package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated    ActivityType = "project.created"
	TypeProjectUpdated    ActivityType = "project.updated"
	TypeProjectDeleted    ActivityType = "project.deleted"
	TypeProjectDuplicated ActivityType = "project.duplicated"
	TypeTaskCreated       ActivityType = "task.created"
	TypeTaskUpdated       ActivityType = "task.updated"
	TypeTaskDeleted       ActivityType = "task.deleted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    int64        `json:"projectID"`
	TaskID       *int64       `json:"taskID,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	CreatedAt    time.Time    `json:"createdAt"`
}
