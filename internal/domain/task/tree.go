package task

// Node is one task in a built forest together with its children, split by
// level the way consumers render them.
type Node struct {
	Task
	Subtasks       []*Node `json:"subtasks"`
	ActionItems    []*Node `json:"actionItems"`
	SubactionItems []*Node `json:"subactionItems"`
}

// Orphan identifies a task left out of a forest because its parent pointer
// did not resolve to any record in the input.
type Orphan struct {
	TaskID   int64  `json:"taskID"`
	Level    int    `json:"taskLevel"`
	ParentID *int64 `json:"parentID,omitempty"`
}

// Forest is the nested form of a flat task list: one root per top-level
// task, with records that could not be placed reported rather than silently
// lost.
type Forest struct {
	Roots   []*Node  `json:"roots"`
	Orphans []Orphan `json:"orphans,omitempty"`
}

// BuildForest nests a flat task list into a four-level forest.
//
// Every record is indexed by id, then attached to the node its one-level-up
// ancestor pointer resolves to: subtasks hang off the record at Level1ID,
// action items off Level2ID, subaction items off Level3ID. Level-1 records
// become roots. Records whose pointer is unset, or resolves to no record in
// the input, are excluded from the forest and reported in Orphans.
//
// The input slice is not mutated; nodes hold copies. Roots and child lists
// keep the iteration order of the input, so callers get back whatever order
// the storage layer produced.
func BuildForest(tasks []Task) *Forest {
	index := make(map[int64]*Node, len(tasks))
	nodes := make([]*Node, 0, len(tasks))
	for _, t := range tasks {
		n := &Node{
			Task:           t,
			Subtasks:       []*Node{},
			ActionItems:    []*Node{},
			SubactionItems: []*Node{},
		}
		index[t.ID] = n
		nodes = append(nodes, n)
	}

	forest := &Forest{Roots: []*Node{}}
	for _, n := range nodes {
		if n.Level == LevelTask {
			forest.Roots = append(forest.Roots, n)
			continue
		}
		if n.Level < LevelSubtask || n.Level > LevelSubaction {
			forest.Orphans = append(forest.Orphans, Orphan{TaskID: n.ID, Level: n.Level})
			continue
		}

		parentPtr := n.AncestorID(n.Level - 1)
		var parent *Node
		if parentPtr != nil {
			parent = index[*parentPtr]
		}
		// A self-reference would put the node inside its own child list.
		if parent == nil || parent == n {
			forest.Orphans = append(forest.Orphans, Orphan{TaskID: n.ID, Level: n.Level, ParentID: parentPtr})
			continue
		}

		switch n.Level {
		case LevelSubtask:
			parent.Subtasks = append(parent.Subtasks, n)
		case LevelAction:
			parent.ActionItems = append(parent.ActionItems, n)
		case LevelSubaction:
			parent.SubactionItems = append(parent.SubactionItems, n)
		}
	}

	return forest
}

// Count returns the number of tasks placed in the forest, orphans excluded.
func (f *Forest) Count() int {
	total := 0
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			total++
			walk(n.Subtasks)
			walk(n.ActionItems)
			walk(n.SubactionItems)
		}
	}
	walk(f.Roots)
	return total
}
