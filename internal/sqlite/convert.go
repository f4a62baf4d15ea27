package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tmorenz/tasktree/internal/domain/date"
	"github.com/tmorenz/tasktree/internal/domain/task"
)

// rowScanner covers *sql.Row and *sql.Rows for the shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

// Dates are stored as "2006-01-02" TEXT, JSON-shaped fields as TEXT blobs.
// NULL maps to the absent value on the Go side throughout.

func encodeDate(d *date.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func decodeDate(ns sql.NullString) (*date.Date, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := date.Parse(ns.String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored date: %w", err)
	}
	return &d, nil
}

func encodeAssignees(assignees []int64) (any, error) {
	if len(assignees) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(assignees)
	if err != nil {
		return nil, fmt.Errorf("failed to encode assignees: %w", err)
	}
	return string(data), nil
}

func decodeAssignees(ns sql.NullString) ([]int64, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var assignees []int64
	if err := json.Unmarshal([]byte(ns.String), &assignees); err != nil {
		return nil, fmt.Errorf("failed to decode stored assignees: %w", err)
	}
	return assignees, nil
}

func encodeEstimates(log task.EstimateLog) (any, error) {
	if log.IsEmpty() {
		return nil, nil
	}
	data, err := json.Marshal(log)
	if err != nil {
		return nil, fmt.Errorf("failed to encode estimate log: %w", err)
	}
	return string(data), nil
}

func decodeEstimates(ns sql.NullString) (task.EstimateLog, error) {
	if !ns.Valid || ns.String == "" {
		return task.EstimateLog{}, nil
	}
	var log task.EstimateLog
	if err := json.Unmarshal([]byte(ns.String), &log); err != nil {
		return task.EstimateLog{}, fmt.Errorf("failed to decode stored estimate log: %w", err)
	}
	return log, nil
}

func encodeInfo(info json.RawMessage) any {
	if len(info) == 0 {
		return nil
	}
	return string(info)
}

func decodeInfo(ns sql.NullString) json.RawMessage {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	return json.RawMessage(ns.String)
}
