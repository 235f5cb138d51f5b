package store

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/rules"
)

const defaultProcessStatus = "Active"

// CreateProcess adds a process to one of userID's projects. When SortOrder
// is zero the process is appended after the project's existing processes.
func (s *SQLiteStore) CreateProcess(
	ctx context.Context,
	userID, projectID int64,
	process model.Process,
) (*model.Process, error) {
	const op = "creating process"

	process.UserID = userID
	process.ProjectID = projectID
	process.Name = strings.TrimSpace(process.Name)
	if process.Status == "" {
		process.Status = defaultProcessStatus
	}
	if err := rules.Validate(op, process); err != nil {
		return nil, err
	}
	now := s.now()

	var created *model.Process
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		ok, err := exists(ctx, tx, "projects", projectID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return model.Validationf(op, "project %d not found for user %d", projectID, userID)
		}

		if process.SortOrder == 0 {
			var maxOrder int
			if err := tx.GetContext(ctx, &maxOrder,
				"SELECT COALESCE(MAX(sort_order), 0) FROM processes WHERE project_id = ?",
				projectID,
			); err != nil {
				return err
			}
			process.SortOrder = maxOrder + 1
		}

		created, err = insertRow[model.Process](ctx, tx, op, "processes", `
			INSERT INTO processes (
				user_id, project_id, name, description, status, sort_order, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, projectID, process.Name, process.Description,
			process.Status, process.SortOrder, now, now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetProcessByID retrieves a single process.
func (s *SQLiteStore) GetProcessByID(ctx context.Context, id int64) (*model.Process, error) {
	return getOne[model.Process](ctx, s.db, "getting process",
		"SELECT * FROM processes WHERE id = ?", id)
}

// GetProcesses lists every process owned by userID.
func (s *SQLiteStore) GetProcesses(ctx context.Context, userID int64) ([]model.Process, error) {
	return getMany[model.Process](ctx, s.db, "listing processes",
		"SELECT * FROM processes WHERE user_id = ? ORDER BY project_id, sort_order", userID)
}

// GetProcessesByProject lists the processes of one project in sort order.
func (s *SQLiteStore) GetProcessesByProject(ctx context.Context, projectID int64) ([]model.Process, error) {
	return getMany[model.Process](ctx, s.db, "listing project processes",
		"SELECT * FROM processes WHERE project_id = ? ORDER BY sort_order", projectID)
}

// UpdateProcess merges patch onto a process. The project cannot change.
func (s *SQLiteStore) UpdateProcess(
	ctx context.Context,
	id int64,
	patch model.ProcessPatch,
) (*model.Process, error) {
	const op = "updating process"

	var updated *model.Process
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		p, err := mustGet[model.Process](ctx, tx, op, "processes", "process", id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.SortOrder != nil {
			p.SortOrder = *patch.SortOrder
		}
		if err := rules.Validate(op, p); err != nil {
			return err
		}

		p.UpdatedAt = s.now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE processes SET
				name = ?, description = ?, status = ?, sort_order = ?, updated_at = ?
			WHERE id = ?`,
			p.Name, p.Description, p.Status, p.SortOrder, p.UpdatedAt, id,
		); err != nil {
			return err
		}

		updated, err = mustGet[model.Process](ctx, tx, op, "processes", "process", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProcess removes a process.
func (s *SQLiteStore) DeleteProcess(ctx context.Context, id int64) (*model.Process, error) {
	return deleteRow[model.Process](ctx, s, "deleting process", "processes", "process", id)
}
