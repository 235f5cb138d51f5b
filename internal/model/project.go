package model

import "time"

// Default project statuses. Callers may use other values.
const (
	ProjectStatusActive    = "Active"
	ProjectStatusCompleted = "Completed"
)

// Project groups milestones and processes and has a set of assigned members.
type Project struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id" validate:"required"`
	Name            string    `json:"name" db:"name" validate:"required"`
	Description     string    `json:"description" db:"description"`
	Status          string    `json:"status" db:"status"`
	Progress        int       `json:"progress" db:"progress"`
	AssignedMembers MemberIDs `json:"assigned_members,omitempty" db:"assigned_members"`
	StartDate       *string   `json:"start_date,omitempty" db:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate         *string   `json:"end_date,omitempty" db:"end_date" validate:"omitempty,datetime=2006-01-02"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ProjectPatch is a partial update; nil fields are left unchanged.
// Assigned members are changed only through AssignTeamMembersToProject.
type ProjectPatch struct {
	Name        *string
	Description *string
	Status      *string
	Progress    *int
	StartDate   *string
	EndDate     *string
}
