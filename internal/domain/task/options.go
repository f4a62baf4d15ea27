package task

// ListOptions provides filtering options for listing tasks.
type ListOptions struct {
	ProjectID *int64
	Status    *Status
	Level     *int
	Limit     int
	Offset    int
}

// SearchOptions provides filtering options for search.
type SearchOptions struct {
	ProjectID *int64
	Limit     int
	Offset    int
}
