package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/rules"
)

// CreateAvailability records an availability entry for one of userID's
// members. A member that does not exist or belongs to another user fails
// with model.ErrValidation.
func (s *SQLiteStore) CreateAvailability(
	ctx context.Context,
	userID, memberID int64,
	a model.Availability,
) (*model.Availability, error) {
	const op = "creating availability"

	a.UserID = userID
	a.MemberID = memberID
	if err := rules.Validate(op, a); err != nil {
		return nil, err
	}
	now := s.now()

	var created *model.Availability
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, "team_members", memberID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return model.Validationf(op, "team member %d not found for user %d", memberID, userID)
		}

		created, err = insertRow[model.Availability](ctx, tx, op, "availability", `
			INSERT INTO availability (
				user_id, member_id, date, start_time, end_time,
				is_available, notes, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, memberID, a.Date, a.StartTime, a.EndTime,
			a.IsAvailable, a.Notes, now, now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetAvailabilityByID retrieves a single availability entry.
func (s *SQLiteStore) GetAvailabilityByID(ctx context.Context, id int64) (*model.Availability, error) {
	return getOne[model.Availability](ctx, s.db, "getting availability",
		"SELECT * FROM availability WHERE id = ?", id)
}

// GetAvailability lists every availability entry owned by userID.
func (s *SQLiteStore) GetAvailability(ctx context.Context, userID int64) ([]model.Availability, error) {
	return getMany[model.Availability](ctx, s.db, "listing availability",
		"SELECT * FROM availability WHERE user_id = ? ORDER BY date, id", userID)
}

// GetAvailabilityByMember lists a member's entries dated within
// [startDate, endDate], both inclusive.
func (s *SQLiteStore) GetAvailabilityByMember(
	ctx context.Context,
	userID, memberID int64,
	startDate, endDate string,
) ([]model.Availability, error) {
	const op = "listing member availability"

	if err := rules.ValidateDate(op, "start date", startDate); err != nil {
		return nil, err
	}
	if err := rules.ValidateDate(op, "end date", endDate); err != nil {
		return nil, err
	}

	return getMany[model.Availability](ctx, s.db, op, `
		SELECT * FROM availability
		WHERE user_id = ? AND member_id = ? AND date BETWEEN ? AND ?
		ORDER BY date, id`,
		userID, memberID, startDate, endDate)
}

// UpdateAvailability merges patch onto an entry. The member cannot change.
func (s *SQLiteStore) UpdateAvailability(
	ctx context.Context,
	id int64,
	patch model.AvailabilityPatch,
) (*model.Availability, error) {
	const op = "updating availability"

	var updated *model.Availability
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		a, err := mustGet[model.Availability](ctx, tx, op, "availability", "availability", id)
		if err != nil {
			return err
		}

		if patch.Date != nil {
			a.Date = *patch.Date
		}
		if patch.StartTime != nil {
			a.StartTime = *patch.StartTime
		}
		if patch.EndTime != nil {
			a.EndTime = *patch.EndTime
		}
		if patch.IsAvailable != nil {
			a.IsAvailable = *patch.IsAvailable
		}
		if patch.Notes != nil {
			a.Notes = *patch.Notes
		}
		if err := rules.Validate(op, a); err != nil {
			return err
		}

		a.UpdatedAt = s.now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE availability SET
				date = ?, start_time = ?, end_time = ?, is_available = ?, notes = ?, updated_at = ?
			WHERE id = ?`,
			a.Date, a.StartTime, a.EndTime, a.IsAvailable, a.Notes, a.UpdatedAt, id,
		); err != nil {
			return err
		}

		updated, err = mustGet[model.Availability](ctx, tx, op, "availability", "availability", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAvailability removes an availability entry.
func (s *SQLiteStore) DeleteAvailability(ctx context.Context, id int64) (*model.Availability, error) {
	return deleteRow[model.Availability](ctx, s, "deleting availability", "availability", "availability", id)
}
