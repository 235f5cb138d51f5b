package model

import "time"

// Process is a recurring workflow attached to one project.
type Process struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id" validate:"required"`
	ProjectID   int64     `json:"project_id" db:"project_id" validate:"required"`
	Name        string    `json:"name" db:"name" validate:"required"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ProcessPatch is a partial update; nil fields are left unchanged.
type ProcessPatch struct {
	Name        *string
	Description *string
	Status      *string
	SortOrder   *int
}
