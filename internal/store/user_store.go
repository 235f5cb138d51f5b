package store

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/rules"
)

// CreateUser inserts a new active user. PinHash must already be a digest.
// A taken username, active or not, fails with model.ErrDuplicate.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	const op = "creating user"

	user.Username = strings.TrimSpace(user.Username)
	if err := rules.Validate(op, user); err != nil {
		return nil, err
	}
	now := s.now()

	var created *model.User
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		created, err = insertRow[model.User](ctx, tx, op, "users", `
			INSERT INTO users (
				username, pin_hash, profile_name, recovery_answer,
				is_active, created_at, updated_at
			) VALUES (?, ?, ?, ?, 1, ?, ?)`,
			user.Username, user.PinHash, user.ProfileName, user.RecoveryAnswer,
			now, now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("created user", zap.Int64("user_id", created.ID))
	return created, nil
}

// GetUserByID retrieves a user, active or not.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return getOne[model.User](ctx, s.db, "getting user",
		"SELECT * FROM users WHERE id = ?", id)
}

// GetUserByUsername retrieves a user, active or not, by exact username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return getOne[model.User](ctx, s.db, "getting user by username",
		"SELECT * FROM users WHERE username = ?", strings.TrimSpace(username))
}

// UpdateUser changes profile fields.
func (s *SQLiteStore) UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	const op = "updating user"

	var updated *model.User
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		u, err := mustGet[model.User](ctx, tx, op, "users", "user", id)
		if err != nil {
			return err
		}
		if patch.ProfileName != nil {
			u.ProfileName = patch.ProfileName
		}
		if patch.RecoveryAnswer != nil {
			u.RecoveryAnswer = patch.RecoveryAnswer
		}
		u.UpdatedAt = s.now()

		if _, err := tx.ExecContext(ctx, `
			UPDATE users SET profile_name = ?, recovery_answer = ?, updated_at = ?
			WHERE id = ?`,
			u.ProfileName, u.RecoveryAnswer, u.UpdatedAt, id,
		); err != nil {
			return err
		}
		updated, err = mustGet[model.User](ctx, tx, op, "users", "user", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// TouchLastLogin stamps last_login with the current time.
func (s *SQLiteStore) TouchLastLogin(ctx context.Context, id int64) (*model.User, error) {
	now := s.now()
	return s.updateUserColumns(ctx, "recording login", id,
		"last_login = ?, updated_at = ?", now, now)
}

// SetPinHash replaces the stored pin digest.
func (s *SQLiteStore) SetPinHash(ctx context.Context, id int64, pinHash string) (*model.User, error) {
	const op = "setting pin"
	if strings.TrimSpace(pinHash) == "" {
		return nil, model.Validationf(op, "pin hash must not be empty")
	}
	return s.updateUserColumns(ctx, op, id,
		"pin_hash = ?, updated_at = ?", pinHash, s.now())
}

// SoftDeleteUser marks a user inactive. The row is kept.
func (s *SQLiteStore) SoftDeleteUser(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.updateUserColumns(ctx, "deleting user", id,
		"is_active = 0, updated_at = ?", s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info("deactivated user", zap.Int64("user_id", id))
	return u, nil
}

// updateUserColumns applies a fixed SET clause to one user and returns the row.
func (s *SQLiteStore) updateUserColumns(
	ctx context.Context,
	op string,
	id int64,
	set string,
	args ...any,
) (*model.User, error) {
	var updated *model.User
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, "UPDATE users SET "+set+" WHERE id = ?", append(args, id)...)
		if err != nil {
			return err
		}
		rows, _ := res.RowsAffected()
		if rows == 0 {
			return model.NotFound(op, "user", id)
		}
		updated, err = mustGet[model.User](ctx, tx, op, "users", "user", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
