package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Task types. Each type has a fixed point value used for run-rate scoring.
const (
	TaskTypeSmall  = "Small"
	TaskTypeMedium = "Medium"
	TaskTypeLarge  = "Large"
)

// Task statuses.
const (
	TaskStatusToDo       = "To Do"
	TaskStatusInProgress = "In Progress"
	TaskStatusCompleted  = "Completed"
)

// Priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Subtask is one checklist entry of a personal task.
type Subtask struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

// Subtasks is the ordered checklist of a task, stored as a JSON array.
type Subtasks []Subtask

// Value writes the checklist as a JSON array, or NULL when empty.
func (s Subtasks) Value() (driver.Value, error) {
	if len(s) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]Subtask(s))
	if err != nil {
		return nil, fmt.Errorf("marshaling subtasks: %w", err)
	}
	return string(b), nil
}

// Scan reads a JSON array. Malformed content reads as no subtasks.
func (s *Subtasks) Scan(src any) error {
	var items []Subtask
	if !decodeSet(src, &items) {
		*s = nil
		return nil
	}
	*s = items
	return nil
}

// PersonalTask is a scored task owned directly by a user.
type PersonalTask struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id" validate:"required"`
	Title       string     `json:"title" db:"title" validate:"required"`
	Description string     `json:"description" db:"description"`
	TaskType    string     `json:"task_type" db:"task_type" validate:"oneof=Small Medium Large"`
	Points      int        `json:"points" db:"points"`
	Status      string     `json:"status" db:"status" validate:"oneof='To Do' 'In Progress' Completed"`
	Priority    string     `json:"priority" db:"priority"`
	DueDate     *string    `json:"due_date,omitempty" db:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Subtasks    Subtasks   `json:"subtasks,omitempty" db:"subtasks"`
	Progress    int        `json:"progress" db:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// TaskPatch is a partial update; nil fields are left unchanged.
// Setting TaskType overrides any Points supplied alongside it.
type TaskPatch struct {
	Title       *string
	Description *string
	TaskType    *string
	Points      *int
	Status      *string
	Priority    *string
	DueDate     *string
	Subtasks    *Subtasks
}

// RunRate summarizes the points of tasks completed in a window.
type RunRate struct {
	From        time.Time      `json:"from"`
	To          time.Time      `json:"to"`
	Completed   int            `json:"completed"`
	TotalPoints int            `json:"total_points"`
	ByType      map[string]int `json:"by_type"`
}
