package model

import "time"

// Availability records whether a team member is available on a date.
// Date is an ISO-8601 calendar date (YYYY-MM-DD) so range queries compare
// lexically.
type Availability struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id" validate:"required"`
	MemberID    int64     `json:"member_id" db:"member_id" validate:"required"`
	Date        string    `json:"date" db:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string    `json:"start_time,omitempty" db:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string    `json:"end_time,omitempty" db:"end_time" validate:"omitempty,datetime=15:04"`
	IsAvailable bool      `json:"is_available" db:"is_available"`
	Notes       string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// AvailabilityPatch is a partial update; nil fields are left unchanged.
type AvailabilityPatch struct {
	Date        *string
	StartTime   *string
	EndTime     *string
	IsAvailable *bool
	Notes       *string
}
