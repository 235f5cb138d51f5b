package model

import "time"

// Milestone statuses. Any status may follow any other.
const (
	MilestoneNotStarted = "Not Started"
	MilestoneInProgress = "In Progress"
	MilestoneCompleted  = "Completed"
	MilestoneDelayed    = "Delayed"
)

// Milestone is a dated checkpoint within a project.
type Milestone struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id" validate:"required"`
	ProjectID   int64     `json:"project_id" db:"project_id" validate:"required"`
	Name        string    `json:"name" db:"name" validate:"required"`
	Description string    `json:"description" db:"description"`
	DueDate     string    `json:"due_date" db:"due_date" validate:"required,datetime=2006-01-02"`
	Status      string    `json:"status" db:"status" validate:"oneof='Not Started' 'In Progress' Completed Delayed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// MilestonePatch is a partial update; nil fields are left unchanged.
type MilestonePatch struct {
	Name        *string
	Description *string
	DueDate     *string
	Status      *string
}
