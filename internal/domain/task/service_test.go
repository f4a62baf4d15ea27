package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tmorenz/tasktree/internal/domain/activity"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/domain/validation"
	"github.com/tmorenz/tasktree/internal/repository"
	"github.com/tmorenz/tasktree/internal/repository/mocks"
)

func newService(tasks *mocks.TaskRepository) *task.Service {
	return task.NewService(tasks, &mocks.SearchRepository{}, nil, nil)
}

func TestTaskService_CreateRoot(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created := args.Get(1).(*task.Task)
		created.ID = 10
		created.SetOwnLevelID()
	}).Return(nil)

	svc := newService(repo)
	created, err := svc.Create(ctx, task.CreateRequest{ProjectID: 1, Level: 1, Name: "Root"})
	require.NoError(t, err)
	require.Equal(t, int64(10), created.ID)
	require.Equal(t, task.StatusTodo, created.Status)
	require.NotNil(t, created.Level1ID)
	require.Equal(t, int64(10), *created.Level1ID)
	require.Nil(t, created.ParentID)
	require.Nil(t, created.CompletedAt)
}

func TestTaskService_CreateChildDerivesAncestors(t *testing.T) {
	ctx := context.Background()

	parent := &task.Task{ID: 20, ProjectID: 1, Level: 2}
	l1, l2 := int64(10), int64(20)
	parent.Level1ID = &l1
	parent.Level2ID = &l2

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, int64(20)).Return(parent, nil)
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created := args.Get(1).(*task.Task)
		created.ID = 30
		created.SetOwnLevelID()
	}).Return(nil)

	svc := newService(repo)
	created, err := svc.Create(ctx, task.CreateRequest{
		ProjectID: 1,
		Level:     3,
		ParentID:  idPtr(20),
		Name:      "Action item",
	})
	require.NoError(t, err)
	require.Equal(t, int64(10), *created.Level1ID)
	require.Equal(t, int64(20), *created.Level2ID)
	require.Equal(t, int64(30), *created.Level3ID)
	require.Nil(t, created.Level4ID)
}

func TestTaskService_CreateParentChecks(t *testing.T) {
	ctx := context.Background()

	t.Run("parent missing", func(t *testing.T) {
		repo := &mocks.TaskRepository{}
		repo.On("Get", ctx, int64(99)).Return(nil, repository.ErrNotFound)

		svc := newService(repo)
		_, err := svc.Create(ctx, task.CreateRequest{ProjectID: 1, Level: 2, ParentID: idPtr(99), Name: "x"})

		fe, ok := validation.AsFieldError(err)
		require.True(t, ok)
		require.Equal(t, "parentID", fe.Field)
	})

	t.Run("parent at wrong level", func(t *testing.T) {
		repo := &mocks.TaskRepository{}
		repo.On("Get", ctx, int64(20)).Return(&task.Task{ID: 20, ProjectID: 1, Level: 2}, nil)

		svc := newService(repo)
		_, err := svc.Create(ctx, task.CreateRequest{ProjectID: 1, Level: 4, ParentID: idPtr(20), Name: "x"})

		fe, ok := validation.AsFieldError(err)
		require.True(t, ok)
		require.Equal(t, "parentID", fe.Field)
	})

	t.Run("parent in other project", func(t *testing.T) {
		repo := &mocks.TaskRepository{}
		repo.On("Get", ctx, int64(20)).Return(&task.Task{ID: 20, ProjectID: 2, Level: 1}, nil)

		svc := newService(repo)
		_, err := svc.Create(ctx, task.CreateRequest{ProjectID: 1, Level: 2, ParentID: idPtr(20), Name: "x"})

		fe, ok := validation.AsFieldError(err)
		require.True(t, ok)
		require.Equal(t, "parentID", fe.Field)
	})
}

func TestTaskService_UpdateStatusStampsCompletion(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, int64(5)).Return(&task.Task{ID: 5, ProjectID: 1, Level: 1, Name: "t", Status: task.StatusInProgress}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := newService(repo)
	status := task.StatusComplete
	updated, err := svc.Update(ctx, 5, task.UpdateRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, task.StatusComplete, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	require.WithinDuration(t, time.Now(), *updated.CompletedAt, time.Minute)
}

func TestTaskService_UpdateStatusAwayClearsCompletion(t *testing.T) {
	ctx := context.Background()
	completedAt := time.Now().Add(-time.Hour)

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, int64(5)).Return(&task.Task{
		ID: 5, ProjectID: 1, Level: 1, Name: "t",
		Status: task.StatusComplete, CompletedAt: &completedAt,
	}, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := newService(repo)
	status := task.StatusTodo
	updated, err := svc.Update(ctx, 5, task.UpdateRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, task.StatusTodo, updated.Status)
	require.Nil(t, updated.CompletedAt)
}

func TestTaskService_UpdateRejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, int64(5)).Return(&task.Task{ID: 5, Level: 1, Name: "t", Status: task.StatusTodo}, nil)

	svc := newService(repo)
	status := task.Status("INVALID")
	_, err := svc.Update(ctx, 5, task.UpdateRequest{Status: &status})

	fe, ok := validation.AsFieldError(err)
	require.True(t, ok)
	require.Equal(t, "status", fe.Field)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTaskService_UpdateEstimateShapeChecked(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, int64(5)).Return(&task.Task{ID: 5, Level: 3, Name: "t", Status: task.StatusTodo}, nil)

	svc := newService(repo)
	log := task.ListEstimate(1, 2)
	_, err := svc.Update(ctx, 5, task.UpdateRequest{EstPrev: &log})

	fe, ok := validation.AsFieldError(err)
	require.True(t, ok)
	require.Equal(t, "estPrevHours", fe.Field)
}

func TestTaskService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, int64(404)).Return(nil, repository.ErrNotFound)

	svc := newService(repo)
	name := "renamed"
	_, err := svc.Update(ctx, 404, task.UpdateRequest{Name: &name})
	require.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskService_DeleteLogsActivity(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.TaskRepository{}
	repo.On("Get", ctx, int64(5)).Return(&task.Task{ID: 5, ProjectID: 3, Level: 1, Name: "t"}, nil)
	repo.On("Delete", ctx, int64(5)).Return(nil)

	activities := &mocks.ActivityRepository{}
	activities.On("Log", ctx, mock.MatchedBy(func(entry *activity.ActivityEntry) bool {
		return entry.ActivityType == activity.TypeTaskDeleted &&
			entry.ProjectID == 3 && entry.TaskID != nil && *entry.TaskID == 5
	})).Return(nil)

	svc := task.NewService(repo, nil, activities, nil)
	require.NoError(t, svc.Delete(ctx, 5))
	activities.AssertExpectations(t)
}

func TestTaskService_TreeReportsOrphans(t *testing.T) {
	ctx := context.Background()

	missing := int64(99)
	orphan := task.Task{ID: 7, ProjectID: 1, Level: 2, Level1ID: &missing, ParentID: &missing}
	orphan.SetOwnLevelID()

	repo := &mocks.TaskRepository{}
	repo.On("ListByProject", ctx, int64(1)).Return([]task.Task{orphan}, nil)

	svc := newService(repo)
	forest, err := svc.Tree(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, forest.Roots)
	require.Len(t, forest.Orphans, 1)
	require.Equal(t, int64(7), forest.Orphans[0].TaskID)
}

func TestTaskService_SearchUnavailable(t *testing.T) {
	svc := task.NewService(&mocks.TaskRepository{}, nil, nil, nil)
	_, err := svc.Search(context.Background(), "anything", task.SearchOptions{})
	require.ErrorIs(t, err, task.ErrSearchUnavailable)
}
