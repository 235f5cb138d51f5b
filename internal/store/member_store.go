package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/rules"
)

// CreateTeamMember adds a member to userID's team. An email already used by
// one of that user's members fails with model.ErrDuplicate and writes nothing.
func (s *SQLiteStore) CreateTeamMember(
	ctx context.Context,
	userID int64,
	member model.TeamMember,
) (*model.TeamMember, error) {
	const op = "creating team member"

	member.UserID = userID
	member.Name = strings.TrimSpace(member.Name)
	member.Email = strings.TrimSpace(member.Email)
	if member.Status == "" {
		member.Status = model.MemberStatusFree
	}
	if err := rules.Validate(op, member); err != nil {
		return nil, err
	}
	now := s.now()

	var created *model.TeamMember
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		var dupes int
		if err := tx.GetContext(ctx, &dupes,
			"SELECT COUNT(*) FROM team_members WHERE user_id = ? AND email = ?",
			userID, member.Email,
		); err != nil {
			return err
		}
		if dupes > 0 {
			return &model.Error{Kind: model.ErrDuplicate, Op: op, Err: errEmailTaken(member.Email)}
		}

		var err error
		created, err = insertRow[model.TeamMember](ctx, tx, op, "team_members", `
			INSERT INTO team_members (
				user_id, name, role, email, status, group_ids, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, member.Name, member.Role, member.Email, member.Status,
			member.GroupIDs, now, now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetTeamMemberByID retrieves a single member.
func (s *SQLiteStore) GetTeamMemberByID(ctx context.Context, id int64) (*model.TeamMember, error) {
	return getOne[model.TeamMember](ctx, s.db, "getting team member",
		"SELECT * FROM team_members WHERE id = ?", id)
}

// GetTeamMembers lists every member owned by userID.
func (s *SQLiteStore) GetTeamMembers(ctx context.Context, userID int64) ([]model.TeamMember, error) {
	return getMany[model.TeamMember](ctx, s.db, "listing team members",
		"SELECT * FROM team_members WHERE user_id = ? ORDER BY name", userID)
}

// GetTeamMembersByGroups lists userID's members that belong to at least one
// of groupIDs. Filtering happens after decoding so that a malformed group
// column only drops that member instead of failing the query.
func (s *SQLiteStore) GetTeamMembersByGroups(
	ctx context.Context,
	userID int64,
	groupIDs []string,
) ([]model.TeamMember, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	members, err := getMany[model.TeamMember](ctx, s.db, "listing team members by group",
		"SELECT * FROM team_members WHERE user_id = ? AND group_ids IS NOT NULL ORDER BY name",
		userID)
	if err != nil {
		return nil, err
	}

	var matched []model.TeamMember
	for _, m := range members {
		if m.GroupIDs.Intersects(groupIDs) {
			matched = append(matched, m)
		}
	}
	return matched, nil
}

// UpdateTeamMember merges patch onto a member. Changing the email to one
// another member of the same user has fails with model.ErrDuplicate.
func (s *SQLiteStore) UpdateTeamMember(
	ctx context.Context,
	id int64,
	patch model.TeamMemberPatch,
) (*model.TeamMember, error) {
	const op = "updating team member"

	var updated *model.TeamMember
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		m, err := mustGet[model.TeamMember](ctx, tx, op, "team_members", "team member", id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			m.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Role != nil {
			m.Role = *patch.Role
		}
		if patch.Email != nil {
			m.Email = strings.TrimSpace(*patch.Email)
		}
		if patch.Status != nil {
			m.Status = *patch.Status
		}
		if patch.GroupIDs != nil {
			m.GroupIDs = patch.GroupIDs.Dedup()
		}
		if err := rules.Validate(op, m); err != nil {
			return err
		}

		if patch.Email != nil {
			var dupes int
			if err := tx.GetContext(ctx, &dupes,
				"SELECT COUNT(*) FROM team_members WHERE user_id = ? AND email = ? AND id != ?",
				m.UserID, m.Email, id,
			); err != nil {
				return err
			}
			if dupes > 0 {
				return &model.Error{Kind: model.ErrDuplicate, Op: op, Err: errEmailTaken(m.Email)}
			}
		}

		m.UpdatedAt = s.now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE team_members SET
				name = ?, role = ?, email = ?, status = ?, group_ids = ?, updated_at = ?
			WHERE id = ?`,
			m.Name, m.Role, m.Email, m.Status, m.GroupIDs, m.UpdatedAt, id,
		); err != nil {
			return err
		}

		updated, err = mustGet[model.TeamMember](ctx, tx, op, "team_members", "team member", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTeamMember removes a member and, by cascade, their availability.
func (s *SQLiteStore) DeleteTeamMember(ctx context.Context, id int64) (*model.TeamMember, error) {
	return deleteRow[model.TeamMember](ctx, s, "deleting team member", "team_members", "team member", id)
}

// DeleteAllTeamMembers removes every member owned by userID and returns them.
func (s *SQLiteStore) DeleteAllTeamMembers(ctx context.Context, userID int64) ([]model.TeamMember, error) {
	const op = "deleting all team members"

	var deleted []model.TeamMember
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = getMany[model.TeamMember](ctx, tx, op,
			"SELECT * FROM team_members WHERE user_id = ? ORDER BY id", userID)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM team_members WHERE user_id = ?", userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("deleted all team members",
		zap.Int64("user_id", userID), zap.Int("count", len(deleted)))
	return deleted, nil
}

func errEmailTaken(email string) error {
	return fmt.Errorf("email %q is already used by another team member", email)
}
