package model

import "time"

// User is the tenant root. Users are never hard-deleted; IsActive=false
// marks a soft-deleted account.
type User struct {
	ID             int64      `json:"id" db:"id"`
	Username       string     `json:"username" db:"username" validate:"required,max=64"`
	PinHash        string     `json:"-" db:"pin_hash" validate:"required"`
	ProfileName    *string    `json:"profile_name,omitempty" db:"profile_name"`
	RecoveryAnswer *string    `json:"-" db:"recovery_answer"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	LastLogin      *time.Time `json:"last_login,omitempty" db:"last_login"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// UserPatch holds the user fields that may be changed outside the auth flow.
type UserPatch struct {
	ProfileName    *string
	RecoveryAnswer *string
}
