package store

import (
	"context"
	"time"

	"github.com/nhle/team-tracker/internal/model"
)

// Store defines the persistence interface for users and everything they own.
//
// Lookups by id return (nil, nil) when no row matches. Updates and deletes
// of a missing id fail with model.ErrNotFound.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error)
	TouchLastLogin(ctx context.Context, id int64) (*model.User, error)
	SetPinHash(ctx context.Context, id int64, pinHash string) (*model.User, error)
	SoftDeleteUser(ctx context.Context, id int64) (*model.User, error)

	// === Team members ===

	CreateTeamMember(ctx context.Context, userID int64, member model.TeamMember) (*model.TeamMember, error)
	GetTeamMemberByID(ctx context.Context, id int64) (*model.TeamMember, error)
	GetTeamMembers(ctx context.Context, userID int64) ([]model.TeamMember, error)
	GetTeamMembersByGroups(ctx context.Context, userID int64, groupIDs []string) ([]model.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id int64, patch model.TeamMemberPatch) (*model.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id int64) (*model.TeamMember, error)
	DeleteAllTeamMembers(ctx context.Context, userID int64) ([]model.TeamMember, error)

	// === Projects ===

	CreateProject(ctx context.Context, userID int64, project model.Project) (*model.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*model.Project, error)
	GetProjects(ctx context.Context, userID int64) ([]model.Project, error)
	GetProjectsByMember(ctx context.Context, userID, memberID int64) ([]model.Project, error)
	UpdateProject(ctx context.Context, id int64, patch model.ProjectPatch) (*model.Project, error)
	AssignTeamMembersToProject(ctx context.Context, projectID int64, memberIDs []int64) (*model.Project, error)
	DeleteProject(ctx context.Context, id int64) (*model.Project, error)

	// === Milestones ===

	CreateMilestone(ctx context.Context, userID, projectID int64, milestone model.Milestone) (*model.Milestone, error)
	GetMilestoneByID(ctx context.Context, id int64) (*model.Milestone, error)
	GetMilestones(ctx context.Context, userID int64) ([]model.Milestone, error)
	GetMilestonesByProject(ctx context.Context, projectID int64) ([]model.Milestone, error)
	UpdateMilestone(ctx context.Context, id int64, patch model.MilestonePatch) (*model.Milestone, error)
	DeleteMilestone(ctx context.Context, id int64) (*model.Milestone, error)

	// === Processes ===

	CreateProcess(ctx context.Context, userID, projectID int64, process model.Process) (*model.Process, error)
	GetProcessByID(ctx context.Context, id int64) (*model.Process, error)
	GetProcesses(ctx context.Context, userID int64) ([]model.Process, error)
	GetProcessesByProject(ctx context.Context, projectID int64) ([]model.Process, error)
	UpdateProcess(ctx context.Context, id int64, patch model.ProcessPatch) (*model.Process, error)
	DeleteProcess(ctx context.Context, id int64) (*model.Process, error)

	// === Availability ===

	CreateAvailability(ctx context.Context, userID, memberID int64, a model.Availability) (*model.Availability, error)
	GetAvailabilityByID(ctx context.Context, id int64) (*model.Availability, error)
	GetAvailability(ctx context.Context, userID int64) ([]model.Availability, error)
	GetAvailabilityByMember(ctx context.Context, userID, memberID int64, startDate, endDate string) ([]model.Availability, error)
	UpdateAvailability(ctx context.Context, id int64, patch model.AvailabilityPatch) (*model.Availability, error)
	DeleteAvailability(ctx context.Context, id int64) (*model.Availability, error)

	// === Personal tasks ===

	CreateTask(ctx context.Context, userID int64, task model.PersonalTask) (*model.PersonalTask, error)
	GetTaskByID(ctx context.Context, id int64) (*model.PersonalTask, error)
	GetTasks(ctx context.Context, userID int64) ([]model.PersonalTask, error)
	UpdateTask(ctx context.Context, id int64, patch model.TaskPatch) (*model.PersonalTask, error)
	DeleteTask(ctx context.Context, id int64) (*model.PersonalTask, error)
	GetRunRate(ctx context.Context, userID int64, from, to time.Time) (*model.RunRate, error)
}

var _ Store = (*SQLiteStore)(nil)
