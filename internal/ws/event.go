package ws

// Event is one change notification pushed to connected clients.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Event types mirror the mutations the API can perform.
const (
	EventProjectCreated    = "project.created"
	EventProjectUpdated    = "project.updated"
	EventProjectDeleted    = "project.deleted"
	EventProjectDuplicated = "project.duplicated"
	EventTaskCreated       = "task.created"
	EventTaskUpdated       = "task.updated"
	EventTaskDeleted       = "task.deleted"
)
