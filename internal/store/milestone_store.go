package store

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/rules"
)

// CreateMilestone adds a milestone to one of userID's projects. A project
// that does not exist or belongs to another user fails with model.ErrValidation.
func (s *SQLiteStore) CreateMilestone(
	ctx context.Context,
	userID, projectID int64,
	milestone model.Milestone,
) (*model.Milestone, error) {
	const op = "creating milestone"

	milestone.UserID = userID
	milestone.ProjectID = projectID
	milestone.Name = strings.TrimSpace(milestone.Name)
	if milestone.Status == "" {
		milestone.Status = model.MilestoneNotStarted
	}
	if err := rules.Validate(op, milestone); err != nil {
		return nil, err
	}
	now := s.now()

	var created *model.Milestone
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, "projects", projectID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return model.Validationf(op, "project %d not found for user %d", projectID, userID)
		}

		created, err = insertRow[model.Milestone](ctx, tx, op, "milestones", `
			INSERT INTO milestones (
				user_id, project_id, name, description, due_date, status, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, projectID, milestone.Name, milestone.Description,
			milestone.DueDate, milestone.Status, now, now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetMilestoneByID retrieves a single milestone.
func (s *SQLiteStore) GetMilestoneByID(ctx context.Context, id int64) (*model.Milestone, error) {
	return getOne[model.Milestone](ctx, s.db, "getting milestone",
		"SELECT * FROM milestones WHERE id = ?", id)
}

// GetMilestones lists every milestone owned by userID.
func (s *SQLiteStore) GetMilestones(ctx context.Context, userID int64) ([]model.Milestone, error) {
	return getMany[model.Milestone](ctx, s.db, "listing milestones",
		"SELECT * FROM milestones WHERE user_id = ? ORDER BY due_date, id", userID)
}

// GetMilestonesByProject lists the milestones of one project.
func (s *SQLiteStore) GetMilestonesByProject(ctx context.Context, projectID int64) ([]model.Milestone, error) {
	return getMany[model.Milestone](ctx, s.db, "listing project milestones",
		"SELECT * FROM milestones WHERE project_id = ? ORDER BY due_date, id", projectID)
}

// UpdateMilestone merges patch onto a milestone. Any status may be set at
// any time.
func (s *SQLiteStore) UpdateMilestone(
	ctx context.Context,
	id int64,
	patch model.MilestonePatch,
) (*model.Milestone, error) {
	const op = "updating milestone"

	var updated *model.Milestone
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		m, err := mustGet[model.Milestone](ctx, tx, op, "milestones", "milestone", id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			m.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			m.Description = *patch.Description
		}
		if patch.DueDate != nil {
			m.DueDate = *patch.DueDate
		}
		if patch.Status != nil {
			m.Status = *patch.Status
		}
		if err := rules.Validate(op, m); err != nil {
			return err
		}

		m.UpdatedAt = s.now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE milestones SET
				name = ?, description = ?, due_date = ?, status = ?, updated_at = ?
			WHERE id = ?`,
			m.Name, m.Description, m.DueDate, m.Status, m.UpdatedAt, id,
		); err != nil {
			return err
		}

		updated, err = mustGet[model.Milestone](ctx, tx, op, "milestones", "milestone", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteMilestone removes a milestone.
func (s *SQLiteStore) DeleteMilestone(ctx context.Context, id int64) (*model.Milestone, error) {
	return deleteRow[model.Milestone](ctx, s, "deleting milestone", "milestones", "milestone", id)
}
