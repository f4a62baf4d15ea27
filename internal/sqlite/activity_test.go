package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tmorenz/tasktree/internal/domain/activity"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	entry1 := &activity.ActivityEntry{
		ProjectID:    1,
		ActivityType: activity.TypeProjectCreated,
		Summary:      "Created project",
	}
	entry2 := &activity.ActivityEntry{
		ProjectID:    1,
		ActivityType: activity.TypeTaskCreated,
		Summary:      "Created task",
	}

	require.NoError(t, repo.Log(ctx, entry1))
	require.NotZero(t, entry1.ID, "log should assign an id")
	require.False(t, entry1.CreatedAt.IsZero(), "log should stamp the entry")
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: 1})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	taskID := int64(42)
	entry := &activity.ActivityEntry{
		ProjectID:    1,
		TaskID:       &taskID,
		ActivityType: activity.TypeTaskUpdated,
		Summary:      "Updated task",
	}
	require.NoError(t, repo.Log(ctx, entry))

	other := &activity.ActivityEntry{
		ProjectID:    1,
		ActivityType: activity.TypeProjectUpdated,
		Summary:      "Updated project",
	}
	require.NoError(t, repo.Log(ctx, other))

	activityType := activity.TypeTaskUpdated
	opts := activity.ListActivityOptions{
		ProjectID:    1,
		TaskID:       &taskID,
		ActivityType: &activityType,
	}
	entries, err := repo.List(ctx, opts)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, &taskID, entries[0].TaskID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectID: 2})
	require.NoError(t, err)
	require.Len(t, entries, 0)
}

func TestActivityRepository_Pagination(t *testing.T) {
	db := NewTestDB(t)
	repo := NewActivityRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := &activity.ActivityEntry{
			ProjectID:    1,
			ActivityType: activity.TypeTaskCreated,
			Summary:      "Created task",
		}
		require.NoError(t, repo.Log(ctx, entry))
	}

	page, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: 1, Limit: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)

	rest, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: 1, Limit: 3, Offset: 3})
	require.NoError(t, err)
	require.Len(t, rest, 2)
}
