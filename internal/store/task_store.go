package store

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/team-tracker/internal/model"
	"github.com/nhle/team-tracker/internal/rules"
)

// CreateTask inserts a personal task for userID. Points are always the
// canonical value for the task type, whatever the caller supplied, and
// progress is derived from the subtasks.
func (s *SQLiteStore) CreateTask(
	ctx context.Context,
	userID int64,
	task model.PersonalTask,
) (*model.PersonalTask, error) {
	const op = "creating task"

	task.UserID = userID
	task.Title = strings.TrimSpace(task.Title)
	if task.Status == "" {
		task.Status = model.TaskStatusToDo
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if err := rules.Validate(op, task); err != nil {
		return nil, err
	}
	rules.NormalizeTaskPoints(&task)
	task.Progress = rules.CalculateProgress(task.Subtasks)

	now := s.now()
	task.CompletedAt = nil
	if task.Status == model.TaskStatusCompleted {
		task.CompletedAt = &now
	}

	var created *model.PersonalTask
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		var err error
		created, err = insertRow[model.PersonalTask](ctx, tx, op, "personal_tasks", `
			INSERT INTO personal_tasks (
				user_id, title, description, task_type, points, status, priority,
				due_date, subtasks, progress, completed_at, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			userID, task.Title, task.Description, task.TaskType, task.Points,
			task.Status, task.Priority, task.DueDate, task.Subtasks, task.Progress,
			task.CompletedAt, now, now,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetTaskByID retrieves a single task.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id int64) (*model.PersonalTask, error) {
	return getOne[model.PersonalTask](ctx, s.db, "getting task",
		"SELECT * FROM personal_tasks WHERE id = ?", id)
}

// GetTasks lists every task owned by userID.
func (s *SQLiteStore) GetTasks(ctx context.Context, userID int64) ([]model.PersonalTask, error) {
	return getMany[model.PersonalTask](ctx, s.db, "listing tasks",
		"SELECT * FROM personal_tasks WHERE user_id = ? ORDER BY id", userID)
}

// UpdateTask merges patch onto a task.
//
// A TaskType change always resets Points to that type's canonical value,
// discarding any Points in the same patch. Points supplied without a type
// change are stored as given. Progress is re-derived from the subtasks and
// CompletedAt follows the status.
func (s *SQLiteStore) UpdateTask(
	ctx context.Context,
	id int64,
	patch model.TaskPatch,
) (*model.PersonalTask, error) {
	const op = "updating task"

	var updated *model.PersonalTask
	err := s.withTx(ctx, op, func(tx *sqlx.Tx) error {
		t, err := mustGet[model.PersonalTask](ctx, tx, op, "personal_tasks", "task", id)
		if err != nil {
			return err
		}
		now := s.now()

		if patch.Title != nil {
			t.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Points != nil {
			t.Points = *patch.Points
		}
		if patch.TaskType != nil {
			t.TaskType = *patch.TaskType
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.DueDate != nil {
			t.DueDate = emptyToNil(*patch.DueDate)
		}
		if patch.Subtasks != nil {
			t.Subtasks = *patch.Subtasks
		}
		if err := rules.Validate(op, t); err != nil {
			return err
		}

		if patch.TaskType != nil {
			rules.NormalizeTaskPoints(t)
		}
		t.Progress = rules.CalculateProgress(t.Subtasks)

		switch {
		case t.Status == model.TaskStatusCompleted && t.CompletedAt == nil:
			t.CompletedAt = &now
		case t.Status != model.TaskStatusCompleted:
			t.CompletedAt = nil
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE personal_tasks SET
				title = ?, description = ?, task_type = ?, points = ?, status = ?,
				priority = ?, due_date = ?, subtasks = ?, progress = ?,
				completed_at = ?, updated_at = ?
			WHERE id = ?`,
			t.Title, t.Description, t.TaskType, t.Points, t.Status,
			t.Priority, t.DueDate, t.Subtasks, t.Progress,
			t.CompletedAt, now, id,
		); err != nil {
			return err
		}

		updated, err = mustGet[model.PersonalTask](ctx, tx, op, "personal_tasks", "task", id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) (*model.PersonalTask, error) {
	return deleteRow[model.PersonalTask](ctx, s, "deleting task", "personal_tasks", "task", id)
}

// GetRunRate sums the points of userID's tasks completed within [from, to].
func (s *SQLiteStore) GetRunRate(
	ctx context.Context,
	userID int64,
	from, to time.Time,
) (*model.RunRate, error) {
	const op = "computing run rate"

	if to.Before(from) {
		return nil, model.Validationf(op, "window end %s is before start %s",
			to.Format(time.RFC3339), from.Format(time.RFC3339))
	}

	tasks, err := getMany[model.PersonalTask](ctx, s.db, op, `
		SELECT * FROM personal_tasks
		WHERE user_id = ? AND status = ? AND completed_at IS NOT NULL`,
		userID, model.TaskStatusCompleted)
	if err != nil {
		return nil, err
	}

	rr := &model.RunRate{From: from, To: to, ByType: map[string]int{}}
	for _, t := range tasks {
		if t.CompletedAt.Before(from) || t.CompletedAt.After(to) {
			continue
		}
		rr.Completed++
		rr.TotalPoints += t.Points
		rr.ByType[t.TaskType] += t.Points
	}
	return rr, nil
}
