package service_test

import (
	"context"

	"kraken/internal/events"
	"kraken/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Моки репозиториев и внешних зависимостей

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) ListByJoinedProject(ctx context.Context, projectID uuid.UUID) ([]model.User, error) {
	args := m.Called(ctx, projectID)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) SetToken(ctx context.Context, id uuid.UUID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockUserRepository) SetPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return m.Called(ctx, id, hashedPassword).Error(0)
}

func (m *MockUserRepository) AddOwnedProject(ctx context.Context, id, projectID uuid.UUID) error {
	return m.Called(ctx, id, projectID).Error(0)
}

func (m *MockUserRepository) RemoveOwnedProject(ctx context.Context, id, projectID uuid.UUID) error {
	return m.Called(ctx, id, projectID).Error(0)
}

func (m *MockUserRepository) AddJoinedProject(ctx context.Context, id, projectID uuid.UUID) error {
	return m.Called(ctx, id, projectID).Error(0)
}

func (m *MockUserRepository) RemoveJoinedProject(ctx context.Context, id, projectID uuid.UUID) error {
	return m.Called(ctx, id, projectID).Error(0)
}

func (m *MockUserRepository) PullJoinedProject(ctx context.Context, projectID uuid.UUID) error {
	return m.Called(ctx, projectID).Error(0)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, id)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Project, error) {
	args := m.Called(ctx, ids)
	projects, _ := args.Get(0).([]model.Project)
	return projects, args.Error(1)
}

func (m *MockProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *MockProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockMilestoneRepository struct {
	mock.Mock
}

func (m *MockMilestoneRepository) Create(ctx context.Context, milestone *model.Milestone) error {
	return m.Called(ctx, milestone).Error(0)
}

func (m *MockMilestoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Milestone, error) {
	args := m.Called(ctx, id)
	milestone, _ := args.Get(0).(*model.Milestone)
	return milestone, args.Error(1)
}

func (m *MockMilestoneRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Milestone, error) {
	args := m.Called(ctx, projectID)
	milestones, _ := args.Get(0).([]model.Milestone)
	return milestones, args.Error(1)
}

func (m *MockMilestoneRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Milestone, error) {
	args := m.Called(ctx, ids)
	milestones, _ := args.Get(0).([]model.Milestone)
	return milestones, args.Error(1)
}

func (m *MockMilestoneRepository) Update(ctx context.Context, milestone *model.Milestone) error {
	return m.Called(ctx, milestone).Error(0)
}

func (m *MockMilestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMilestoneRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *MockMilestoneRepository) PullDependentMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return m.Called(ctx, milestoneID).Error(0)
}

func (m *MockMilestoneRepository) PullDependentTask(ctx context.Context, taskID uuid.UUID) error {
	return m.Called(ctx, taskID).Error(0)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*model.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, projectID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) ListByMilestone(ctx context.Context, milestoneID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, milestoneID)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Task, error) {
	args := m.Called(ctx, ids)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) UpdateFields(ctx context.Context, task *model.Task, columns []string) error {
	return m.Called(ctx, task, columns).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTaskRepository) DeleteByMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return m.Called(ctx, milestoneID).Error(0)
}

func (m *MockTaskRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *MockTaskRepository) PullDependentMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return m.Called(ctx, milestoneID).Error(0)
}

func (m *MockTaskRepository) PullDependentTask(ctx context.Context, taskID uuid.UUID) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *MockTaskRepository) Unassign(ctx context.Context, projectID uuid.UUID, username string) error {
	return m.Called(ctx, projectID, username).Error(0)
}

type MockSprintRepository struct {
	mock.Mock
}

func (m *MockSprintRepository) Create(ctx context.Context, sprint *model.Sprint) error {
	return m.Called(ctx, sprint).Error(0)
}

func (m *MockSprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Sprint, error) {
	args := m.Called(ctx, id)
	sprint, _ := args.Get(0).(*model.Sprint)
	return sprint, args.Error(1)
}

func (m *MockSprintRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Sprint, error) {
	args := m.Called(ctx, projectID)
	sprints, _ := args.Get(0).([]model.Sprint)
	return sprints, args.Error(1)
}

func (m *MockSprintRepository) Update(ctx context.Context, sprint *model.Sprint) error {
	return m.Called(ctx, sprint).Error(0)
}

func (m *MockSprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSprintRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return m.Called(ctx, projectID).Error(0)
}

func (m *MockSprintRepository) PullTask(ctx context.Context, taskID uuid.UUID) error {
	return m.Called(ctx, taskID).Error(0)
}

func (m *MockSprintRepository) PullMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return m.Called(ctx, milestoneID).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Generate(userID string) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Locked(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockLimiter) Fail(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *MockLimiter) Reset(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

// eventOfType matches a published event by its routing key.
func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e events.Event) bool { return e.Type == eventType })
}
