package task

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EstimateShape discriminates the wire shape of an estimate log.
type EstimateShape int

const (
	// EstimateEmpty means no previous estimate has been recorded.
	EstimateEmpty EstimateShape = iota
	// EstimateScalar keeps only the most recent superseded estimate.
	EstimateScalar
	// EstimateList keeps the full ordered history of superseded estimates.
	EstimateList
)

// EstimateLog is the history of hour estimates a task carried before its
// current one. Subtasks keep the full ordered list; every other level keeps
// a single number. The zero value is the empty log.
type EstimateLog struct {
	Shape  EstimateShape
	Scalar float64
	List   []float64
}

// ScalarEstimate builds a single-number log.
func ScalarEstimate(hours float64) EstimateLog {
	return EstimateLog{Shape: EstimateScalar, Scalar: hours}
}

// ListEstimate builds an ordered-history log.
func ListEstimate(hours ...float64) EstimateLog {
	return EstimateLog{Shape: EstimateList, List: hours}
}

// IsEmpty reports whether no previous estimate is recorded.
func (e EstimateLog) IsEmpty() bool {
	return e.Shape == EstimateEmpty
}

// AllowedAtLevel reports whether the log's shape is legal for a task at the
// given hierarchy level. Lists belong to subtasks, scalars to every other
// level, and the empty log is legal anywhere.
func (e EstimateLog) AllowedAtLevel(level int) bool {
	switch e.Shape {
	case EstimateList:
		return level == LevelSubtask
	case EstimateScalar:
		return level != LevelSubtask
	}
	return true
}

// MarshalJSON renders the log as null, a number, or an array of numbers.
func (e EstimateLog) MarshalJSON() ([]byte, error) {
	switch e.Shape {
	case EstimateScalar:
		return json.Marshal(e.Scalar)
	case EstimateList:
		if e.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(e.List)
	}
	return []byte("null"), nil
}

// UnmarshalJSON accepts the three wire shapes produced by MarshalJSON.
func (e *EstimateLog) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = EstimateLog{}
		return nil
	}
	if data[0] == '[' {
		var list []float64
		if err := json.Unmarshal(data, &list); err != nil {
			return fmt.Errorf("estimate log must be a number or an array of numbers")
		}
		*e = EstimateLog{Shape: EstimateList, List: list}
		return nil
	}
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err != nil {
		return fmt.Errorf("estimate log must be a number or an array of numbers")
	}
	*e = EstimateLog{Shape: EstimateScalar, Scalar: scalar}
	return nil
}
