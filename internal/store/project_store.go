package store

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/rules"
)

// CreateProject inserts a new project for userID. Status defaults to Active
// and progress is clamped to [0, 100].
func (s *SQLiteStore) CreateProject(
	ctx context.Context,
	userID int64,
	project model.Project,
) (*model.Project, error) {
	const op = "creating project"

	project.UserID = userID
	project.Name = strings.TrimSpace(project.Name)
	if project.Status == "" {
		project.Status = model.ProjectStatusActive
	}
	project.Progress = rules.ClampProgress(project.Progress)
	if err := rules.Validate(op, project); err != nil {
		return nil, err
	}
	now := s.now()

	var created *model.Project
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		created, err = insertRow[model.Project](ctx, tx, op, "projects", `
			INSERT INTO projects (
				user_id, name, description, status, progress,
				assigned_members, start_date, end_date, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, project.Name, project.Description, project.Status, project.Progress,
			project.AssignedMembers, project.StartDate, project.EndDate, now, now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetProjectByID retrieves a single project.
func (s *SQLiteStore) GetProjectByID(ctx context.Context, id int64) (*model.Project, error) {
	return getOne[model.Project](ctx, s.db, "getting project",
		"SELECT * FROM projects WHERE id = ?", id)
}

// GetProjects lists every project owned by userID.
func (s *SQLiteStore) GetProjects(ctx context.Context, userID int64) ([]model.Project, error) {
	return getMany[model.Project](ctx, s.db, "listing projects",
		"SELECT * FROM projects WHERE user_id = ? ORDER BY id", userID)
}

// GetProjectsByMember lists userID's projects that memberID is assigned to.
func (s *SQLiteStore) GetProjectsByMember(
	ctx context.Context,
	userID, memberID int64,
) ([]model.Project, error) {
	projects, err := getMany[model.Project](ctx, s.db, "listing projects by member",
		"SELECT * FROM projects WHERE user_id = ? AND assigned_members IS NOT NULL ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}

	var matched []model.Project
	for _, p := range projects {
		if p.AssignedMembers.Contains(memberID) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// UpdateProject merges patch onto a project.
func (s *SQLiteStore) UpdateProject(
	ctx context.Context,
	id int64,
	patch model.ProjectPatch,
) (*model.Project, error) {
	const op = "updating project"

	var updated *model.Project
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		p, err := mustGet[model.Project](ctx, tx, op, "projects", "project", id)
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
			if p.Status == "" {
				p.Status = model.ProjectStatusActive
			}
		}
		if patch.Progress != nil {
			p.Progress = rules.ClampProgress(*patch.Progress)
		}
		if patch.StartDate != nil {
			p.StartDate = emptyToNil(*patch.StartDate)
		}
		if patch.EndDate != nil {
			p.EndDate = emptyToNil(*patch.EndDate)
		}
		if err := rules.Validate(op, p); err != nil {
			return err
		}

		p.UpdatedAt = s.now()
		if _, err := tx.ExecContext(ctx, `
			UPDATE projects SET
				name = ?, description = ?, status = ?, progress = ?,
				start_date = ?, end_date = ?, updated_at = ?
			WHERE id = ?`,
			p.Name, p.Description, p.Status, p.Progress,
			p.StartDate, p.EndDate, p.UpdatedAt, id,
		); err != nil {
			return err
		}

		updated, err = mustGet[model.Project](ctx, tx, op, "projects", "project", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AssignTeamMembersToProject replaces the project's assigned member set with
// exactly memberIDs. An empty list clears the assignment.
func (s *SQLiteStore) AssignTeamMembersToProject(
	ctx context.Context,
	projectID int64,
	memberIDs []int64,
) (*model.Project, error) {
	const op = "assigning team members"

	var updated *model.Project
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE projects SET assigned_members = ?, updated_at = ? WHERE id = ?",
			model.MemberIDs(memberIDs), s.now(), projectID,
		)
		if err != nil {
			return err
		}
		rows, _ := res.RowsAffected()
		if rows == 0 {
			return model.NotFound(op, "project", projectID)
		}

		updated, err = mustGet[model.Project](ctx, tx, op, "projects", "project", projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes a project together with its milestones and processes.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) (*model.Project, error) {
	return deleteRow[model.Project](ctx, s, "deleting project", "projects", "project", id)
}

func emptyToNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
