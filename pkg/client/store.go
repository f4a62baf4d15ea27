package client

import (
	"context"
	"sync"
	"time"
)

// ProjectView is a project with its wire dates parsed into time values.
type ProjectView struct {
	ID        int64
	UserID    int64
	WsID      int64
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	EstHours  float64
	ActHours  float64
}

// TaskNode is one task of the selected project's forest, with parsed dates
// and children attached by level.
type TaskNode struct {
	Task
	Start          *time.Time
	End            *time.Time
	Subtasks       []*TaskNode
	ActionItems    []*TaskNode
	SubactionItems []*TaskNode
}

// Store mirrors server state into view-ready form: the project list plus
// the selected project's task forest.
//
// Refreshes fetch outside the lock and swap results in under it, so racing
// refreshes resolve last-write-wins; the mutex guards memory, not ordering.
type Store struct {
	client *Client

	// OnError observes fetch failures in addition to the returned error,
	// so a UI can surface them from one place. May be nil.
	OnError func(error)

	mu       sync.Mutex
	projects []ProjectView
	selected *int64
	roots    []*TaskNode
}

// NewStore builds a store over the given client.
func NewStore(c *Client) *Store {
	return &Store{client: c}
}

// Refresh re-fetches the project list, and the selected project's tasks if
// one is selected.
func (s *Store) Refresh(ctx context.Context) error {
	wire, err := s.client.ListProjects(ctx, ListProjectsOptions{})
	if err != nil {
		return s.fail(err)
	}
	projects := make([]ProjectView, len(wire))
	for i, p := range wire {
		projects[i] = toProjectView(p)
	}

	s.mu.Lock()
	selected := s.selected
	s.mu.Unlock()

	var roots []*TaskNode
	if selected != nil {
		tasks, err := s.client.TasksByProject(ctx, *selected)
		if err != nil {
			return s.fail(err)
		}
		roots = nestTasks(tasks)
	}

	s.mu.Lock()
	s.projects = projects
	// Keep the forest only if the selection did not move mid-fetch.
	if selected != nil && s.selected != nil && *selected == *s.selected {
		s.roots = roots
	}
	s.mu.Unlock()
	return nil
}

// Select marks a project as current and loads its forest.
func (s *Store) Select(ctx context.Context, projectID int64) error {
	tasks, err := s.client.TasksByProject(ctx, projectID)
	if err != nil {
		return s.fail(err)
	}
	roots := nestTasks(tasks)

	s.mu.Lock()
	id := projectID
	s.selected = &id
	s.roots = roots
	s.mu.Unlock()
	return nil
}

// Deselect clears the current project and its forest.
func (s *Store) Deselect() {
	s.mu.Lock()
	s.selected = nil
	s.roots = nil
	s.mu.Unlock()
}

// Projects returns the last fetched project list.
func (s *Store) Projects() []ProjectView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ProjectView, len(s.projects))
	copy(out, s.projects)
	return out
}

// Selected returns the current project id, if any.
func (s *Store) Selected() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return 0, false
	}
	return *s.selected, true
}

// Tree returns the selected project's forest roots. Callers must treat the
// nodes as read-only.
func (s *Store) Tree() []*TaskNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roots
}

func (s *Store) fail(err error) error {
	if s.OnError != nil {
		s.OnError(err)
	}
	return err
}

func toProjectView(p Project) ProjectView {
	return ProjectView{
		ID:        p.ID,
		UserID:    p.UserID,
		WsID:      p.WsID,
		Name:      p.Name,
		StartDate: parseWireDate(p.StartDate),
		EndDate:   parseWireDate(p.EndDate),
		EstHours:  p.EstHours,
		ActHours:  p.ActHours,
	}
}

// nestTasks builds the four-level forest locally from a flat listing.
// Tasks whose parent pointer does not resolve are dropped.
func nestTasks(tasks []Task) []*TaskNode {
	index := make(map[int64]*TaskNode, len(tasks))
	nodes := make([]*TaskNode, 0, len(tasks))
	for _, t := range tasks {
		n := &TaskNode{
			Task:           t,
			Start:          parseWireDate(t.StartDate),
			End:            parseWireDate(t.EndDate),
			Subtasks:       []*TaskNode{},
			ActionItems:    []*TaskNode{},
			SubactionItems: []*TaskNode{},
		}
		index[t.ID] = n
		nodes = append(nodes, n)
	}

	roots := []*TaskNode{}
	for _, n := range nodes {
		if n.TaskLevel == LevelTask {
			roots = append(roots, n)
			continue
		}

		var parentID *int64
		switch n.TaskLevel {
		case LevelSubtask:
			parentID = n.Level1ID
		case LevelAction:
			parentID = n.Level2ID
		case LevelSubaction:
			parentID = n.Level3ID
		default:
			continue
		}
		if parentID == nil {
			continue
		}
		parent := index[*parentID]
		if parent == nil || parent == n {
			continue
		}

		switch n.TaskLevel {
		case LevelSubtask:
			parent.Subtasks = append(parent.Subtasks, n)
		case LevelAction:
			parent.ActionItems = append(parent.ActionItems, n)
		case LevelSubaction:
			parent.SubactionItems = append(parent.SubactionItems, n)
		}
	}
	return roots
}

// parseWireDate converts a "2006-01-02" wire date into a midnight-UTC
// time. Absent or malformed values come back nil.
func parseWireDate(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
