package service

import (
	"context"
	"errors"
	"time"

	"kraken/internal/events"
	"kraken/internal/model"
	"kraken/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SprintService struct {
	projects   ProjectRepository
	milestones MilestoneRepository
	tasks      TaskRepository
	sprints    SprintRepository
	events     EventPublisher
	log        *zap.Logger
}

func NewSprintService(
	projects ProjectRepository,
	milestones MilestoneRepository,
	tasks TaskRepository,
	sprints SprintRepository,
	events EventPublisher,
	log *zap.Logger,
) *SprintService {
	return &SprintService{
		projects:   projects,
		milestones: milestones,
		tasks:      tasks,
		sprints:    sprints,
		events:     events,
		log:        log,
	}
}

type SprintInput struct {
	ProjectID   uuid.UUID
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Tasks       []string
	Milestones  []string
}

// SprintView is a sprint with its tasks and milestones resolved. Ids that no
// longer resolve are left out.
type SprintView struct {
	Sprint     model.Sprint
	Tasks      []model.Task
	Milestones []model.Milestone
}

func (s *SprintService) Create(ctx context.Context, user *model.User, in SprintInput) (*model.Sprint, error) {
	if _, err := loadProject(ctx, s.projects, in.ProjectID); err != nil {
		return nil, err
	}
	if err := requireAccess(user, in.ProjectID); err != nil {
		return nil, err
	}

	sprint := &model.Sprint{
		ID:          uuid.New(),
		ProjectID:   in.ProjectID,
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Tasks:       model.NewIDList(in.Tasks...),
		Milestones:  model.NewIDList(in.Milestones...),
	}
	if err := s.sprints.Create(ctx, sprint); err != nil {
		return nil, Internal("Failed to create sprint", err)
	}
	return sprint, nil
}

func (s *SprintService) get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Sprint, error) {
	sprint, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		return nil, Internal("Failed to retrieve sprint", err)
	}
	if sprint == nil {
		return nil, NotFound(msgSprintNotFound)
	}
	if err := requireAccess(user, sprint.ProjectID); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (s *SprintService) View(ctx context.Context, user *model.User, id uuid.UUID) (*SprintView, error) {
	sprint, err := s.get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByIDs(ctx, sprint.Tasks)
	if err != nil {
		return nil, Internal("Failed to retrieve sprint tasks", err)
	}
	milestones, err := s.milestones.ListByIDs(ctx, sprint.Milestones)
	if err != nil {
		return nil, Internal("Failed to retrieve sprint milestones", err)
	}

	return &SprintView{
		Sprint:     *sprint,
		Tasks:      inListOrder(sprint.Tasks, tasks, func(t model.Task) string { return t.ID.String() }),
		Milestones: inListOrder(sprint.Milestones, milestones, func(m model.Milestone) string { return m.ID.String() }),
	}, nil
}

func (s *SprintService) Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.SprintPatch) (*model.Sprint, error) {
	sprint, err := s.get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(sprint)
	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, Internal("Failed to update sprint", err)
	}
	return sprint, nil
}

func (s *SprintService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	sprint, err := s.get(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.sprints.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSprintNotFound) {
			return NotFound(msgSprintNotFound)
		}
		return Internal("Failed to delete sprint", err)
	}

	publish(ctx, s.log, s.events, events.New(events.SprintDeleted, sprint.ProjectID.String(), id.String(), user.ID.String()))
	return nil
}
