package transport

import (
	"encoding/json"

	"github.com/tmorenz/tasktree/internal/domain/date"
	"github.com/tmorenz/tasktree/internal/domain/project"
	"github.com/tmorenz/tasktree/internal/domain/task"
	"github.com/tmorenz/tasktree/internal/domain/validation"
)

// createProjectRequest mirrors the POST /projects body. Unknown fields are
// tolerated by the decoder.
type createProjectRequest struct {
	UserID    int64      `json:"userID"`
	WsID      int64      `json:"wsID"`
	Name      string     `json:"name"`
	StartDate *date.Date `json:"startDate"`
	EndDate   *date.Date `json:"endDate"`
	EstHours  float64    `json:"estHours"`
	ActHours  float64    `json:"actHours"`
}

func (b createProjectRequest) toRequest() project.CreateRequest {
	return project.CreateRequest{
		UserID:    b.UserID,
		WsID:      b.WsID,
		Name:      b.Name,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		EstHours:  b.EstHours,
		ActHours:  b.ActHours,
	}
}

// projectPatch mirrors the PATCH /projects/{id} body. Clearable fields
// decode as raw JSON so an explicit null can be told apart from absence.
type projectPatch struct {
	Name      *string         `json:"name"`
	StartDate json.RawMessage `json:"startDate"`
	EndDate   json.RawMessage `json:"endDate"`
	EstHours  *float64        `json:"estHours"`
	ActHours  *float64        `json:"actHours"`
}

func (b projectPatch) toRequest() (project.UpdateRequest, error) {
	req := project.UpdateRequest{
		Name:     b.Name,
		EstHours: b.EstHours,
		ActHours: b.ActHours,
	}

	var err error
	if req.StartDate, err = parseDatePatch("startDate", b.StartDate); err != nil {
		return project.UpdateRequest{}, err
	}
	if req.EndDate, err = parseDatePatch("endDate", b.EndDate); err != nil {
		return project.UpdateRequest{}, err
	}
	return req, nil
}

// createTaskRequest mirrors the POST /tasks body.
type createTaskRequest struct {
	ProjectID    int64            `json:"projectID"`
	TaskLevel    int              `json:"taskLevel"`
	ParentID     *int64           `json:"parentID"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Status       task.Status      `json:"status"`
	TaskType     string           `json:"taskType"`
	Assignees    []int64          `json:"assignees"`
	EstHours     float64          `json:"estHours"`
	ActHours     float64          `json:"actHours"`
	EstPrevHours task.EstimateLog `json:"estPrevHours"`
	Info         json.RawMessage  `json:"info"`
	StartDate    *date.Date       `json:"startDate"`
	EndDate      *date.Date       `json:"endDate"`
	Expanded     bool             `json:"expanded"`
}

func (b createTaskRequest) toRequest() task.CreateRequest {
	return task.CreateRequest{
		ProjectID:   b.ProjectID,
		Level:       b.TaskLevel,
		ParentID:    b.ParentID,
		Name:        b.Name,
		Description: b.Description,
		Status:      b.Status,
		TaskType:    b.TaskType,
		Assignees:   b.Assignees,
		EstHours:    b.EstHours,
		ActHours:    b.ActHours,
		EstPrev:     b.EstPrevHours,
		Info:        b.Info,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Expanded:    b.Expanded,
	}
}

// taskPatch mirrors the PUT /tasks/{id} body. Absent fields leave the stored
// value untouched; estPrevHours, info and the dates accept an explicit null
// to clear.
type taskPatch struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Status       *task.Status    `json:"status"`
	TaskType     *string         `json:"taskType"`
	Assignees    []int64         `json:"assignees"`
	EstHours     *float64        `json:"estHours"`
	ActHours     *float64        `json:"actHours"`
	EstPrevHours json.RawMessage `json:"estPrevHours"`
	Info         json.RawMessage `json:"info"`
	StartDate    json.RawMessage `json:"startDate"`
	EndDate      json.RawMessage `json:"endDate"`
	Expanded     *bool           `json:"expanded"`
}

func (b taskPatch) toRequest() (task.UpdateRequest, error) {
	req := task.UpdateRequest{
		Name:        b.Name,
		Description: b.Description,
		Status:      b.Status,
		TaskType:    b.TaskType,
		Assignees:   b.Assignees,
		EstHours:    b.EstHours,
		ActHours:    b.ActHours,
		Info:        b.Info,
		Expanded:    b.Expanded,
	}

	if len(b.EstPrevHours) > 0 {
		var estimates task.EstimateLog
		if err := json.Unmarshal(b.EstPrevHours, &estimates); err != nil {
			return task.UpdateRequest{}, validation.Invalid("estPrevHours", err.Error())
		}
		req.EstPrev = &estimates
	}

	var err error
	if req.StartDate, err = parseDatePatch("startDate", b.StartDate); err != nil {
		return task.UpdateRequest{}, err
	}
	if req.EndDate, err = parseDatePatch("endDate", b.EndDate); err != nil {
		return task.UpdateRequest{}, err
	}
	return req, nil
}

// parseDatePatch maps an optional date field: absent leaves the date alone,
// null or "" clears it (zero date), anything else must parse.
func parseDatePatch(field string, raw json.RawMessage) (*date.Date, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var d date.Date
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, validation.Invalid(field, "must be a YYYY-MM-DD date")
	}
	return &d, nil
}
