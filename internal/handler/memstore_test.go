package handler_test

import (
	"context"

	"kraken/internal/model"
	"kraken/internal/repository"

	"github.com/google/uuid"
)

// In-memory stores with the same contract as the gorm repositories: reads
// return copies, missing rows on reads are (nil, nil).

func cloneUser(u *model.User) *model.User {
	cp := *u
	cp.OwnedProjects = model.NewIDList(u.OwnedProjects...)
	cp.JoinedProjects = model.NewIDList(u.JoinedProjects...)
	return &cp
}

type memUsers struct {
	rows map[uuid.UUID]*model.User
}

func (s *memUsers) Create(_ context.Context, user *model.User) error {
	s.rows[user.ID] = cloneUser(user)
	return nil
}

func (s *memUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := s.rows[id]; ok {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (s *memUsers) find(match func(*model.User) bool) *model.User {
	for _, u := range s.rows {
		if match(u) {
			return cloneUser(u)
		}
	}
	return nil
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (s *memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return s.find(func(u *model.User) bool { return u.Username == username }), nil
}

func (s *memUsers) ListByJoinedProject(_ context.Context, projectID uuid.UUID) ([]model.User, error) {
	var out []model.User
	for _, u := range s.rows {
		if u.IsMember(projectID) {
			out = append(out, *cloneUser(u))
		}
	}
	return out, nil
}

func (s *memUsers) update(id uuid.UUID, apply func(*model.User)) error {
	u, ok := s.rows[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	apply(u)
	return nil
}

func (s *memUsers) SetToken(_ context.Context, id uuid.UUID, token string) error {
	return s.update(id, func(u *model.User) { u.Token = token })
}

func (s *memUsers) SetPassword(_ context.Context, id uuid.UUID, hash string) error {
	return s.update(id, func(u *model.User) { u.HashedPassword = hash })
}

func (s *memUsers) AddOwnedProject(_ context.Context, id, projectID uuid.UUID) error {
	return s.update(id, func(u *model.User) {
		if !u.IsAdmin(projectID) {
			u.OwnedProjects = append(u.OwnedProjects, projectID.String())
		}
	})
}

func (s *memUsers) RemoveOwnedProject(_ context.Context, id, projectID uuid.UUID) error {
	return s.update(id, func(u *model.User) { u.OwnedProjects = model.WithoutID(u.OwnedProjects, projectID.String()) })
}

func (s *memUsers) AddJoinedProject(_ context.Context, id, projectID uuid.UUID) error {
	return s.update(id, func(u *model.User) {
		if !u.IsMember(projectID) {
			u.JoinedProjects = append(u.JoinedProjects, projectID.String())
		}
	})
}

func (s *memUsers) RemoveJoinedProject(_ context.Context, id, projectID uuid.UUID) error {
	return s.update(id, func(u *model.User) { u.JoinedProjects = model.WithoutID(u.JoinedProjects, projectID.String()) })
}

func (s *memUsers) PullJoinedProject(_ context.Context, projectID uuid.UUID) error {
	for _, u := range s.rows {
		u.JoinedProjects = model.WithoutID(u.JoinedProjects, projectID.String())
	}
	return nil
}

type memProjects struct {
	rows map[uuid.UUID]model.Project
}

func (s *memProjects) Create(_ context.Context, p *model.Project) error {
	s.rows[p.ID] = *p
	return nil
}

func (s *memProjects) GetByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	if p, ok := s.rows[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (s *memProjects) ListByIDs(_ context.Context, ids []string) ([]model.Project, error) {
	out := []model.Project{}
	for _, id := range ids {
		if parsed, err := uuid.Parse(id); err == nil {
			if p, ok := s.rows[parsed]; ok {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func (s *memProjects) Update(_ context.Context, p *model.Project) error {
	s.rows[p.ID] = *p
	return nil
}

func (s *memProjects) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(s.rows, id)
	return nil
}

type memMilestones struct {
	rows map[uuid.UUID]model.Milestone
}

func (s *memMilestones) Create(_ context.Context, m *model.Milestone) error {
	s.rows[m.ID] = *m
	return nil
}

func (s *memMilestones) GetByID(_ context.Context, id uuid.UUID) (*model.Milestone, error) {
	if m, ok := s.rows[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (s *memMilestones) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Milestone, error) {
	out := []model.Milestone{}
	for _, m := range s.rows {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memMilestones) ListByIDs(_ context.Context, ids []string) ([]model.Milestone, error) {
	out := []model.Milestone{}
	for _, id := range ids {
		if parsed, err := uuid.Parse(id); err == nil {
			if m, ok := s.rows[parsed]; ok {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (s *memMilestones) Update(_ context.Context, m *model.Milestone) error {
	s.rows[m.ID] = *m
	return nil
}

func (s *memMilestones) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrMilestoneNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memMilestones) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	for id, m := range s.rows {
		if m.ProjectID == projectID {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *memMilestones) PullDependentMilestone(_ context.Context, milestoneID uuid.UUID) error {
	for id, m := range s.rows {
		m.DependentMilestones = model.WithoutID(m.DependentMilestones, milestoneID.String())
		s.rows[id] = m
	}
	return nil
}

func (s *memMilestones) PullDependentTask(_ context.Context, taskID uuid.UUID) error {
	for id, m := range s.rows {
		m.DependentTasks = model.WithoutID(m.DependentTasks, taskID.String())
		s.rows[id] = m
	}
	return nil
}

type memTasks struct {
	rows map[uuid.UUID]model.Task
}

func (s *memTasks) Create(_ context.Context, t *model.Task) error {
	s.rows[t.ID] = *t
	return nil
}

func (s *memTasks) GetByID(_ context.Context, id uuid.UUID) (*model.Task, error) {
	if t, ok := s.rows[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (s *memTasks) filter(match func(model.Task) bool) []model.Task {
	out := []model.Task{}
	for _, t := range s.rows {
		if match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (s *memTasks) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Task, error) {
	return s.filter(func(t model.Task) bool { return t.ProjectID == projectID }), nil
}

func (s *memTasks) ListByMilestone(_ context.Context, milestoneID uuid.UUID) ([]model.Task, error) {
	return s.filter(func(t model.Task) bool { return t.MilestoneID == milestoneID }), nil
}

func (s *memTasks) ListByIDs(_ context.Context, ids []string) ([]model.Task, error) {
	return s.filter(func(t model.Task) bool { return model.HasID(model.NewIDList(ids...), t.ID.String()) }), nil
}

func (s *memTasks) UpdateFields(_ context.Context, t *model.Task, columns []string) error {
	if _, ok := s.rows[t.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	if len(columns) > 0 {
		s.rows[t.ID] = *t
	}
	return nil
}

func (s *memTasks) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memTasks) deleteWhere(match func(model.Task) bool) {
	for id, t := range s.rows {
		if match(t) {
			delete(s.rows, id)
		}
	}
}

func (s *memTasks) DeleteByMilestone(_ context.Context, milestoneID uuid.UUID) error {
	s.deleteWhere(func(t model.Task) bool { return t.MilestoneID == milestoneID })
	return nil
}

func (s *memTasks) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	s.deleteWhere(func(t model.Task) bool { return t.ProjectID == projectID })
	return nil
}

func (s *memTasks) PullDependentMilestone(_ context.Context, milestoneID uuid.UUID) error {
	for id, t := range s.rows {
		t.DependentMilestones = model.WithoutID(t.DependentMilestones, milestoneID.String())
		s.rows[id] = t
	}
	return nil
}

func (s *memTasks) PullDependentTask(_ context.Context, taskID uuid.UUID) error {
	for id, t := range s.rows {
		t.DependentTasks = model.WithoutID(t.DependentTasks, taskID.String())
		s.rows[id] = t
	}
	return nil
}

func (s *memTasks) Unassign(_ context.Context, projectID uuid.UUID, username string) error {
	for id, t := range s.rows {
		if t.ProjectID != projectID {
			continue
		}
		if t.AssignedTo == username {
			t.AssignedTo = model.Unassigned
		}
		if t.QATask.AssignedTo == username {
			t.QATask.AssignedTo = model.Unassigned
		}
		s.rows[id] = t
	}
	return nil
}

type memSprints struct {
	rows map[uuid.UUID]model.Sprint
}

func (s *memSprints) Create(_ context.Context, sp *model.Sprint) error {
	s.rows[sp.ID] = *sp
	return nil
}

func (s *memSprints) GetByID(_ context.Context, id uuid.UUID) (*model.Sprint, error) {
	if sp, ok := s.rows[id]; ok {
		return &sp, nil
	}
	return nil, nil
}

func (s *memSprints) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Sprint, error) {
	out := []model.Sprint{}
	for _, sp := range s.rows {
		if sp.ProjectID == projectID {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (s *memSprints) Update(_ context.Context, sp *model.Sprint) error {
	s.rows[sp.ID] = *sp
	return nil
}

func (s *memSprints) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrSprintNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *memSprints) DeleteByProject(_ context.Context, projectID uuid.UUID) error {
	for id, sp := range s.rows {
		if sp.ProjectID == projectID {
			delete(s.rows, id)
		}
	}
	return nil
}

func (s *memSprints) PullTask(_ context.Context, taskID uuid.UUID) error {
	for id, sp := range s.rows {
		sp.Tasks = model.WithoutID(sp.Tasks, taskID.String())
		s.rows[id] = sp
	}
	return nil
}

func (s *memSprints) PullMilestone(_ context.Context, milestoneID uuid.UUID) error {
	for id, sp := range s.rows {
		sp.Milestones = model.WithoutID(sp.Milestones, milestoneID.String())
		s.rows[id] = sp
	}
	return nil
}
