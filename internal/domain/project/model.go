package project

import (
	"time"

	"github.com/tmorenz/tasktree/internal/domain/date"
)

// Project represents a container for one four-level task hierarchy
type Project struct {
	ID         int64      `json:"id"`
	UserID     int64      `json:"userID"`
	WsID       int64      `json:"wsID"`
	Name       string     `json:"name"`
	StartDate  *date.Date `json:"startDate,omitempty"`
	EndDate    *date.Date `json:"endDate,omitempty"`
	EstHours   float64    `json:"estHours"`
	ActHours   float64    `json:"actHours"`
	CreatedAt  time.Time  `json:"createdAt"`
	ModifiedAt time.Time  `json:"modifiedAt"`
}

// ListOptions provides filtering options for listing projects.
type ListOptions struct {
	UserID *int64
	WsID   *int64
}
