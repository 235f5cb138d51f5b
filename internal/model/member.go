package model

import "time"

// Team member availability status.
const (
	MemberStatusFree     = "Free"
	MemberStatusOccupied = "Occupied"
)

// TeamMember is a person on the owning user's team.
type TeamMember struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id" validate:"required"`
	Name      string    `json:"name" db:"name" validate:"required"`
	Role      string    `json:"role" db:"role"`
	Email     string    `json:"email" db:"email" validate:"required,email"`
	Status    string    `json:"status" db:"status" validate:"oneof=Free Occupied"`
	GroupIDs  GroupIDs  `json:"group_ids,omitempty" db:"group_ids"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TeamMemberPatch is a partial update; nil fields are left unchanged.
type TeamMemberPatch struct {
	Name     *string
	Role     *string
	Email    *string
	Status   *string
	GroupIDs *GroupIDs
}
