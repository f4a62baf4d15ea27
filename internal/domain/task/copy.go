package task

import (
	"sort"
	"time"
)

// PrepareCopies readies a project's tasks for duplication into a new
// project: ordered parents before children (stable sort by level), completed
// work reset to todo with its completion time cleared, timestamps restarted.
// Ids and hierarchy pointers still reference the source records; the storage
// layer rewrites them as replacement ids are assigned.
func PrepareCopies(tasks []Task, now time.Time) []Task {
	copies := make([]Task, len(tasks))
	copy(copies, tasks)

	sort.SliceStable(copies, func(i, j int) bool {
		return copies[i].Level < copies[j].Level
	})

	for i := range copies {
		if copies[i].Status == StatusComplete {
			copies[i].Status = StatusTodo
			copies[i].CompletedAt = nil
		}
		copies[i].CreatedAt = now
		copies[i].ModifiedAt = now
	}
	return copies
}

// RemapHierarchy rewrites a task's parent and ancestor pointers through the
// old-to-new id map built up during duplication. Pointers that do not
// resolve are cleared rather than left referencing source records; the
// own-level pointer is restored by SetOwnLevelID once the copy has its id.
func RemapHierarchy(t *Task, ids map[int64]int64) {
	t.ParentID = remapID(t.ParentID, ids)
	t.Level1ID = remapID(t.Level1ID, ids)
	t.Level2ID = remapID(t.Level2ID, ids)
	t.Level3ID = remapID(t.Level3ID, ids)
	t.Level4ID = remapID(t.Level4ID, ids)
}

func remapID(id *int64, ids map[int64]int64) *int64 {
	if id == nil {
		return nil
	}
	mapped, ok := ids[*id]
	if !ok {
		return nil
	}
	return &mapped
}
