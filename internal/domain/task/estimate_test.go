package task_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tmorenz/tasktree/internal/domain/task"
)

func TestEstimateLog_WireShapes(t *testing.T) {
	var log task.EstimateLog

	require.NoError(t, json.Unmarshal([]byte(`null`), &log))
	require.True(t, log.IsEmpty())

	require.NoError(t, json.Unmarshal([]byte(`4.5`), &log))
	require.Equal(t, task.ScalarEstimate(4.5), log)

	require.NoError(t, json.Unmarshal([]byte(`[8, 6.5, 5]`), &log))
	require.Equal(t, task.ListEstimate(8, 6.5, 5), log)
}

func TestEstimateLog_MarshalRoundTrip(t *testing.T) {
	data, err := json.Marshal(task.ScalarEstimate(3))
	require.NoError(t, err)
	require.JSONEq(t, `3`, string(data))

	data, err = json.Marshal(task.ListEstimate(8, 5))
	require.NoError(t, err)
	require.JSONEq(t, `[8,5]`, string(data))

	data, err = json.Marshal(task.EstimateLog{})
	require.NoError(t, err)
	require.Equal(t, `null`, string(data))

	// An emptied history stays an array on the wire.
	data, err = json.Marshal(task.ListEstimate())
	require.NoError(t, err)
	require.Equal(t, `[]`, string(data))
}

func TestEstimateLog_RejectsOtherShapes(t *testing.T) {
	var log task.EstimateLog
	require.Error(t, json.Unmarshal([]byte(`"eight"`), &log))
	require.Error(t, json.Unmarshal([]byte(`{"hours": 8}`), &log))
	require.Error(t, json.Unmarshal([]byte(`["a"]`), &log))
}

func TestEstimateLog_AllowedAtLevel(t *testing.T) {
	empty := task.EstimateLog{}
	scalar := task.ScalarEstimate(2)
	list := task.ListEstimate(2, 3)

	for level := task.LevelTask; level <= task.LevelSubaction; level++ {
		require.True(t, empty.AllowedAtLevel(level))
	}

	require.True(t, list.AllowedAtLevel(task.LevelSubtask))
	require.False(t, list.AllowedAtLevel(task.LevelTask))
	require.False(t, list.AllowedAtLevel(task.LevelAction))
	require.False(t, list.AllowedAtLevel(task.LevelSubaction))

	require.False(t, scalar.AllowedAtLevel(task.LevelSubtask))
	require.True(t, scalar.AllowedAtLevel(task.LevelTask))
	require.True(t, scalar.AllowedAtLevel(task.LevelAction))
	require.True(t, scalar.AllowedAtLevel(task.LevelSubaction))
}
