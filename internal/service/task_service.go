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

type TaskService struct {
	projects   ProjectRepository
	milestones MilestoneRepository
	tasks      TaskRepository
	cascade    cascader
	events     EventPublisher
	log        *zap.Logger
}

func NewTaskService(
	projects ProjectRepository,
	milestones MilestoneRepository,
	tasks TaskRepository,
	sprints SprintRepository,
	events EventPublisher,
	log *zap.Logger,
) *TaskService {
	return &TaskService{
		projects:   projects,
		milestones: milestones,
		tasks:      tasks,
		cascade:    cascader{milestones: milestones, tasks: tasks, sprints: sprints, log: log},
		events:     events,
		log:        log,
	}
}

type TaskInput struct {
	ProjectID           uuid.UUID
	MilestoneID         uuid.UUID
	Name                string
	Description         string
	DueDate             time.Time
	Status              model.Status
	Priority            model.Priority
	AssignedTo          string
	QATask              model.QATask
	DependentMilestones []string
	DependentTasks      []string
}

func (s *TaskService) Create(ctx context.Context, user *model.User, in TaskInput) (*model.Task, error) {
	if _, err := loadProject(ctx, s.projects, in.ProjectID); err != nil {
		return nil, err
	}
	if err := requireAccess(user, in.ProjectID); err != nil {
		return nil, err
	}
	if err := s.checkMilestone(ctx, in.MilestoneID, in.ProjectID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:                  uuid.New(),
		ProjectID:           in.ProjectID,
		MilestoneID:         in.MilestoneID,
		Name:                in.Name,
		Description:         in.Description,
		DueDate:             in.DueDate,
		Status:              orStatus(in.Status),
		Priority:            orPriority(in.Priority),
		AssignedTo:          orUnassigned(in.AssignedTo),
		QATask:              in.QATask,
		DependentMilestones: model.NewIDList(in.DependentMilestones...),
		DependentTasks:      model.NewIDList(in.DependentTasks...),
	}
	task.QATask.Status = orStatus(task.QATask.Status)
	task.QATask.Priority = orPriority(task.QATask.Priority)
	task.QATask.AssignedTo = orUnassigned(task.QATask.AssignedTo)
	if task.QATask.CreatedAt.IsZero() {
		task.QATask.CreatedAt = now
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, Internal("Failed to create task", err)
	}
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, Internal("Failed to retrieve task", err)
	}
	if task == nil {
		return nil, NotFound(msgTaskNotFound)
	}
	if err := requireAccess(user, task.ProjectID); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the patch column by column. Moving a task to another project
// or milestone is checked the same way as creating it there.
func (s *TaskService) Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.TaskPatch) (*model.Task, error) {
	task, err := s.Get(ctx, user, id)
	if err != nil {
		return nil, err
	}

	if patch.ProjectID != nil || patch.MilestoneID != nil {
		projectID, milestoneID := task.ProjectID, task.MilestoneID
		if patch.ProjectID != nil {
			projectID = *patch.ProjectID
		}
		if patch.MilestoneID != nil {
			milestoneID = *patch.MilestoneID
		}

		if projectID != task.ProjectID {
			if err := requireAccess(user, projectID); err != nil {
				return nil, err
			}
			if _, err := loadProject(ctx, s.projects, projectID); err != nil {
				return nil, err
			}
		}
		if err := s.checkMilestone(ctx, milestoneID, projectID); err != nil {
			return nil, err
		}
	}

	columns := patch.Apply(task)
	if err := s.tasks.UpdateFields(ctx, task, columns); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, NotFound(msgTaskNotFound)
		}
		return nil, Internal("Failed to update task", err)
	}
	return task, nil
}

// Delete removes the task and every reference to it.
func (s *TaskService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	task, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return NotFound(msgTaskNotFound)
		}
		return Internal("Failed to delete task", err)
	}

	s.cascade.taskDeleted(ctx, id)
	publish(ctx, s.log, s.events, events.New(events.TaskDeleted, task.ProjectID.String(), id.String(), user.ID.String()))
	return nil
}

func (s *TaskService) checkMilestone(ctx context.Context, milestoneID, projectID uuid.UUID) error {
	milestone, err := s.milestones.GetByID(ctx, milestoneID)
	if err != nil {
		return Internal("Failed to retrieve milestone", err)
	}
	if milestone == nil {
		return NotFound(msgMilestoneNotFound)
	}
	if milestone.ProjectID != projectID {
		return BadRequest("Milestone does not belong to project")
	}
	return nil
}

func orStatus(s model.Status) model.Status {
	if s == "" {
		return model.StatusToDo
	}
	return s
}

func orPriority(p model.Priority) model.Priority {
	if p == "" {
		return model.PriorityLow
	}
	return p
}

func orUnassigned(username string) string {
	if username == "" {
		return model.Unassigned
	}
	return username
}
