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

type MilestoneService struct {
	projects   ProjectRepository
	milestones MilestoneRepository
	cascade    cascader
	events     EventPublisher
	log        *zap.Logger
}

func NewMilestoneService(
	projects ProjectRepository,
	milestones MilestoneRepository,
	tasks TaskRepository,
	sprints SprintRepository,
	events EventPublisher,
	log *zap.Logger,
) *MilestoneService {
	return &MilestoneService{
		projects:   projects,
		milestones: milestones,
		cascade:    cascader{milestones: milestones, tasks: tasks, sprints: sprints, log: log},
		events:     events,
		log:        log,
	}
}

type MilestoneInput struct {
	ProjectID           uuid.UUID
	Name                string
	Description         string
	DueDate             time.Time
	Status              model.Status
	DependentMilestones []string
	DependentTasks      []string
}

func (s *MilestoneService) Create(ctx context.Context, user *model.User, in MilestoneInput) (*model.Milestone, error) {
	if _, err := loadProject(ctx, s.projects, in.ProjectID); err != nil {
		return nil, err
	}
	if err := requireAccess(user, in.ProjectID); err != nil {
		return nil, err
	}

	milestone := &model.Milestone{
		ID:                  uuid.New(),
		ProjectID:           in.ProjectID,
		Name:                in.Name,
		Description:         in.Description,
		DueDate:             in.DueDate,
		Status:              in.Status,
		DependentMilestones: model.NewIDList(in.DependentMilestones...),
		DependentTasks:      model.NewIDList(in.DependentTasks...),
	}
	if milestone.Status == "" {
		milestone.Status = model.StatusToDo
	}

	if err := s.milestones.Create(ctx, milestone); err != nil {
		return nil, Internal("Failed to create milestone", err)
	}
	return milestone, nil
}

func (s *MilestoneService) Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Milestone, error) {
	milestone, err := s.milestones.GetByID(ctx, id)
	if err != nil {
		return nil, Internal("Failed to retrieve milestone", err)
	}
	if milestone == nil {
		return nil, NotFound(msgMilestoneNotFound)
	}
	if err := requireAccess(user, milestone.ProjectID); err != nil {
		return nil, err
	}
	return milestone, nil
}

func (s *MilestoneService) Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.MilestonePatch) (*model.Milestone, error) {
	milestone, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(milestone)
	if err := s.milestones.Update(ctx, milestone); err != nil {
		return nil, Internal("Failed to update milestone", err)
	}
	return milestone, nil
}

// Delete removes the milestone, then its tasks and every reference to either.
func (s *MilestoneService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	milestone, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.milestones.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrMilestoneNotFound) {
			return NotFound(msgMilestoneNotFound)
		}
		return Internal("Failed to delete milestone", err)
	}

	s.cascade.milestoneDeleted(ctx, id)
	publish(ctx, s.log, s.events, events.New(events.MilestoneDeleted, milestone.ProjectID.String(), id.String(), user.ID.String()))
	return nil
}
