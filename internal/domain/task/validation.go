package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmorenz/tasktree/internal/domain/validation"
)

// ValidateCreateInput validates fields required to create a task.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return validation.Missing("name")
	}
	if req.ProjectID == 0 {
		return validation.Missing("projectID")
	}
	if req.Level < LevelTask || req.Level > LevelSubaction {
		return validation.Invalid("taskLevel", "must be between 1 and 4")
	}
	if req.Level == LevelTask && req.ParentID != nil {
		return validation.Invalid("parentID", "top-level tasks cannot have a parent")
	}
	if req.Level > LevelTask && req.ParentID == nil {
		return validation.Missing("parentID")
	}
	if req.Status != "" && !req.Status.Valid() {
		return validation.Invalid("status", fmt.Sprintf("unknown status %q", req.Status))
	}
	if err := validateAssignees(req.Assignees); err != nil {
		return err
	}
	if err := validateEstimateShape(req.EstPrev, req.Level); err != nil {
		return err
	}
	if err := validateInfo(req.Info); err != nil {
		return err
	}
	return nil
}

func validateAssignees(assignees []int64) error {
	if len(assignees) > MaxAssignees {
		return validation.Invalid("assignees", fmt.Sprintf("at most %d assignees allowed", MaxAssignees))
	}
	return nil
}

func validateEstimateShape(log EstimateLog, level int) error {
	if log.AllowedAtLevel(level) {
		return nil
	}
	if level == LevelSubtask {
		return validation.Invalid("estPrevHours", "subtasks keep a list of previous estimates, not a single number")
	}
	return validation.Invalid("estPrevHours", "only subtasks keep a list of previous estimates")
}

func validateInfo(info json.RawMessage) error {
	if len(info) > 0 && !json.Valid(info) {
		return validation.Invalid("info", "must be valid JSON")
	}
	return nil
}
