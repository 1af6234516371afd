package service

import (
	"context"
	"errors"

	"kraken/internal/events"
	"kraken/internal/model"
	"kraken/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectService struct {
	projects   ProjectRepository
	users      UserRepository
	milestones MilestoneRepository
	tasks      TaskRepository
	sprints    SprintRepository
	events     EventPublisher
	log        *zap.Logger
}

func NewProjectService(
	projects ProjectRepository,
	users UserRepository,
	milestones MilestoneRepository,
	tasks TaskRepository,
	sprints SprintRepository,
	events EventPublisher,
	log *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		users:      users,
		milestones: milestones,
		tasks:      tasks,
		sprints:    sprints,
		events:     events,
		log:        log,
	}
}

// ProjectView is a project with everything that belongs to it.
type ProjectView struct {
	Project    model.Project
	Milestones []model.Milestone
	Tasks      []model.Task
	Sprints    []model.Sprint
}

// UserRef names a user by id, email or username, checked in that order.
type UserRef struct {
	UserID   uuid.UUID
	Email    string
	Username string
}

// Create inserts the project and makes user its owner.
func (s *ProjectService) Create(ctx context.Context, user *model.User, name, description string) (*model.Project, error) {
	project := &model.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, Internal("Failed to create project", err)
	}

	if err := s.users.AddOwnedProject(ctx, user.ID, project.ID); err != nil {
		return nil, Internal("Failed to update user", err)
	}
	if !model.HasID(user.OwnedProjects, project.ID.String()) {
		user.OwnedProjects = append(model.NewIDList(user.OwnedProjects...), project.ID.String())
	}

	publish(ctx, s.log, s.events, events.New(events.ProjectCreated, project.ID.String(), project.ID.String(), user.ID.String()))
	return project, nil
}

// List returns the projects the user owns or has joined.
func (s *ProjectService) List(ctx context.Context, user *model.User) ([]model.Project, error) {
	ids := append(append([]string{}, user.OwnedProjects...), user.JoinedProjects...)
	projects, err := s.projects.ListByIDs(ctx, ids)
	if err != nil {
		return nil, Internal("Failed to retrieve projects", err)
	}
	return projects, nil
}

func (s *ProjectService) View(ctx context.Context, user *model.User, id uuid.UUID) (*ProjectView, error) {
	if err := requireAccess(user, id); err != nil {
		return nil, err
	}
	project, err := loadProject(ctx, s.projects, id)
	if err != nil {
		return nil, err
	}

	view := &ProjectView{Project: *project}
	if view.Milestones, err = s.milestones.ListByProject(ctx, id); err != nil {
		return nil, Internal("Failed to retrieve milestones", err)
	}
	if view.Tasks, err = s.tasks.ListByProject(ctx, id); err != nil {
		return nil, Internal("Failed to retrieve tasks", err)
	}
	if view.Sprints, err = s.sprints.ListByProject(ctx, id); err != nil {
		return nil, Internal("Failed to retrieve sprints", err)
	}
	return view, nil
}

func (s *ProjectService) Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.ProjectPatch) (*model.Project, error) {
	project, err := loadProject(ctx, s.projects, id)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(user, id); err != nil {
		return nil, err
	}

	patch.Apply(project)
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, Internal("Failed to update project", err)
	}
	return project, nil
}

// Delete removes the project and everything in it. Steps run in order and
// the first failure stops the sequence; nothing is rolled back.
func (s *ProjectService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	if err := requireAdmin(user, id); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			// строки уже нет, но id остался у владельца
			if err := s.users.RemoveOwnedProject(ctx, user.ID, id); err != nil {
				s.log.Warn("failed to remove stale project from owner",
					zap.String("project_id", id.String()),
					zap.Error(err),
				)
			} else {
				user.OwnedProjects = model.WithoutID(user.OwnedProjects, id.String())
			}
			return NotFound(msgProjectNotFound)
		}
		return Internal("Failed to delete project", err)
	}

	steps := []struct {
		msg string
		run func() error
	}{
		{"Failed to delete project milestones", func() error { return s.milestones.DeleteByProject(ctx, id) }},
		{"Failed to delete project tasks", func() error { return s.tasks.DeleteByProject(ctx, id) }},
		{"Failed to delete project sprints", func() error { return s.sprints.DeleteByProject(ctx, id) }},
		{"Failed to remove project from owner", func() error { return s.users.RemoveOwnedProject(ctx, user.ID, id) }},
		{"Failed to remove project from members", func() error { return s.users.PullJoinedProject(ctx, id) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			s.log.Error(step.msg, zap.String("project_id", id.String()), zap.Error(err))
			return Internal(step.msg, err)
		}
	}
	user.OwnedProjects = model.WithoutID(user.OwnedProjects, id.String())

	publish(ctx, s.log, s.events, events.New(events.ProjectDeleted, id.String(), id.String(), user.ID.String()))
	return nil
}

// Join adds the project to the user's joined list.
func (s *ProjectService) Join(ctx context.Context, user *model.User, id uuid.UUID) (*model.User, error) {
	if _, err := loadProject(ctx, s.projects, id); err != nil {
		return nil, err
	}
	if user.CanAccess(id) {
		return nil, BadRequest("User already belongs to project")
	}

	if err := s.users.AddJoinedProject(ctx, user.ID, id); err != nil {
		return nil, Internal("Failed to join project", err)
	}
	user.JoinedProjects = append(model.NewIDList(user.JoinedProjects...), id.String())

	publish(ctx, s.log, s.events, events.New(events.MemberJoined, id.String(), "", user.ID.String()))
	return user, nil
}

// Leave removes the project from the user's joined list and unassigns the
// user's tasks in it.
func (s *ProjectService) Leave(ctx context.Context, user *model.User, id uuid.UUID) (*model.User, error) {
	if _, err := loadProject(ctx, s.projects, id); err != nil {
		return nil, err
	}
	if !user.IsMember(id) {
		return nil, BadRequest("User is not a member of project")
	}

	if err := s.users.RemoveJoinedProject(ctx, user.ID, id); err != nil {
		return nil, Internal("Failed to leave project", err)
	}
	user.JoinedProjects = model.WithoutID(user.JoinedProjects, id.String())

	s.unassign(ctx, id, user)
	return user, nil
}

func (s *ProjectService) ListUsers(ctx context.Context, admin *model.User, id uuid.UUID) ([]model.User, error) {
	if err := requireAdmin(admin, id); err != nil {
		return nil, err
	}
	if _, err := loadProject(ctx, s.projects, id); err != nil {
		return nil, err
	}

	users, err := s.users.ListByJoinedProject(ctx, id)
	if err != nil {
		return nil, Internal("Failed to retrieve project users", err)
	}
	return users, nil
}

// AddUser makes the referenced user a member of the project.
func (s *ProjectService) AddUser(ctx context.Context, admin *model.User, id uuid.UUID, ref UserRef) (*model.User, error) {
	if err := requireAdmin(admin, id); err != nil {
		return nil, err
	}
	if _, err := loadProject(ctx, s.projects, id); err != nil {
		return nil, err
	}

	target, err := s.findUser(ctx, ref)
	if err != nil {
		return nil, err
	}
	if target.CanAccess(id) {
		return nil, BadRequest("User already belongs to project")
	}

	if err := s.users.AddJoinedProject(ctx, target.ID, id); err != nil {
		return nil, Internal("Failed to add user to project", err)
	}
	target.JoinedProjects = append(model.NewIDList(target.JoinedProjects...), id.String())

	publish(ctx, s.log, s.events, events.New(events.MemberJoined, id.String(), "", target.ID.String()))
	return target, nil
}

// RemoveUser drops the referenced member from the project and unassigns
// their tasks in it.
func (s *ProjectService) RemoveUser(ctx context.Context, admin *model.User, id uuid.UUID, ref UserRef) (*model.User, error) {
	if err := requireAdmin(admin, id); err != nil {
		return nil, err
	}
	if _, err := loadProject(ctx, s.projects, id); err != nil {
		return nil, err
	}

	target, err := s.findUser(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !target.IsMember(id) {
		return nil, BadRequest("User is not a member of project")
	}

	if err := s.users.RemoveJoinedProject(ctx, target.ID, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NotFound(msgUserNotFound)
		}
		return nil, Internal("Failed to remove user from project", err)
	}
	target.JoinedProjects = model.WithoutID(target.JoinedProjects, id.String())

	s.unassign(ctx, id, target)
	return target, nil
}

func (s *ProjectService) unassign(ctx context.Context, projectID uuid.UUID, user *model.User) {
	if err := s.tasks.Unassign(ctx, projectID, user.Username); err != nil {
		s.log.Warn("failed to unassign tasks",
			zap.String("project_id", projectID.String()),
			zap.String("username", user.Username),
			zap.Error(err),
		)
	}
	publish(ctx, s.log, s.events, events.New(events.MemberLeft, projectID.String(), "", user.ID.String()))
}

func (s *ProjectService) findUser(ctx context.Context, ref UserRef) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case ref.UserID != uuid.Nil:
		user, err = s.users.GetByID(ctx, ref.UserID)
	case ref.Email != "":
		user, err = s.users.FindByEmail(ctx, NormalizeEmail(ref.Email))
	case ref.Username != "":
		user, err = s.users.FindByUsername(ctx, ref.Username)
	default:
		return nil, BadRequest("userId, email or username is required")
	}
	if err != nil {
		return nil, Internal("Failed to retrieve user", err)
	}
	if user == nil {
		return nil, NotFound(msgUserNotFound)
	}
	return user, nil
}
