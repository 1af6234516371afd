package service

import (
	"context"

	"kraken/internal/events"
	"kraken/internal/model"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ListByJoinedProject(ctx context.Context, projectID uuid.UUID) ([]model.User, error)
	SetToken(ctx context.Context, id uuid.UUID, token string) error
	SetPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	AddOwnedProject(ctx context.Context, id, projectID uuid.UUID) error
	RemoveOwnedProject(ctx context.Context, id, projectID uuid.UUID) error
	AddJoinedProject(ctx context.Context, id, projectID uuid.UUID) error
	RemoveJoinedProject(ctx context.Context, id, projectID uuid.UUID) error
	PullJoinedProject(ctx context.Context, projectID uuid.UUID) error
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Project, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type MilestoneRepository interface {
	Create(ctx context.Context, milestone *model.Milestone) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Milestone, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Milestone, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Milestone, error)
	Update(ctx context.Context, milestone *model.Milestone) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
	PullDependentMilestone(ctx context.Context, milestoneID uuid.UUID) error
	PullDependentTask(ctx context.Context, taskID uuid.UUID) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error)
	ListByMilestone(ctx context.Context, milestoneID uuid.UUID) ([]model.Task, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Task, error)
	UpdateFields(ctx context.Context, task *model.Task, columns []string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMilestone(ctx context.Context, milestoneID uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
	PullDependentMilestone(ctx context.Context, milestoneID uuid.UUID) error
	PullDependentTask(ctx context.Context, taskID uuid.UUID) error
	Unassign(ctx context.Context, projectID uuid.UUID, username string) error
}

type SprintRepository interface {
	Create(ctx context.Context, sprint *model.Sprint) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Sprint, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Sprint, error)
	Update(ctx context.Context, sprint *model.Sprint) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) error
	PullTask(ctx context.Context, taskID uuid.UUID) error
	PullMilestone(ctx context.Context, milestoneID uuid.UUID) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type TokenIssuer interface {
	Generate(userID string) (string, error)
}
