package handler

import (
	"time"

	"kraken/internal/model"
	"kraken/internal/service"
)

// Users

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type UserResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	OwnedProjects  []string  `json:"ownedProjects"`
	JoinedProjects []string  `json:"joinedProjects"`
	CreatedAt      time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func toUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:             u.ID.String(),
		Username:       u.Username,
		Email:          u.Email,
		OwnedProjects:  ids(u.OwnedProjects),
		JoinedProjects: ids(u.JoinedProjects),
		CreatedAt:      u.CreatedAt,
	}
}

// Projects

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Description *string `json:"description"`
}

// MemberRequest names a user by id, email or username.
type MemberRequest struct {
	UserID   string `json:"userId" form:"userId" binding:"omitempty,uuid"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
	Username string `json:"username" form:"username"`
}

func (r MemberRequest) ref() service.UserRef {
	ref := service.UserRef{Email: r.Email, Username: r.Username}
	if id := optionalUUID(nonEmpty(r.UserID)); id != nil {
		ref.UserID = *id
	}
	return ref
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Milestones []MilestoneResponse `json:"milestones"`
	Tasks      []TaskResponse      `json:"tasks"`
	Sprints    []SprintResponse    `json:"sprints"`
}

func toProjectResponse(p *model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

// Milestones

type CreateMilestoneRequest struct {
	ProjectID           string       `json:"projectId" binding:"required,uuid"`
	Name                string       `json:"name" binding:"required"`
	Description         string       `json:"description"`
	DueDate             *Timestamp   `json:"dueDate" binding:"required"`
	Status              model.Status `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	DependentMilestones []string     `json:"dependentMilestones" binding:"omitempty,dive,uuid"`
	DependentTasks      []string     `json:"dependentTasks" binding:"omitempty,dive,uuid"`
}

type UpdateMilestoneRequest struct {
	Name                *string       `json:"name" binding:"omitempty,min=1"`
	Description         *string       `json:"description"`
	DueDate             *Timestamp    `json:"dueDate"`
	Status              *model.Status `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	DependentMilestones []string      `json:"dependentMilestones" binding:"omitempty,dive,uuid"`
	DependentTasks      []string      `json:"dependentTasks" binding:"omitempty,dive,uuid"`
}

func (r UpdateMilestoneRequest) patch() model.MilestonePatch {
	return model.MilestonePatch{
		Name:                r.Name,
		Description:         r.Description,
		DueDate:             r.DueDate.Ptr(),
		Status:              r.Status,
		DependentMilestones: r.DependentMilestones,
		DependentTasks:      r.DependentTasks,
	}
}

type MilestoneResponse struct {
	ID                  string       `json:"id"`
	ProjectID           string       `json:"projectId"`
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	DueDate             time.Time    `json:"dueDate"`
	Status              model.Status `json:"status"`
	DependentMilestones []string     `json:"dependentMilestones"`
	DependentTasks      []string     `json:"dependentTasks"`
	CreatedAt           time.Time    `json:"createdAt"`
}

func toMilestoneResponse(m *model.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:                  m.ID.String(),
		ProjectID:           m.ProjectID.String(),
		Name:                m.Name,
		Description:         m.Description,
		DueDate:             m.DueDate,
		Status:              m.Status,
		DependentMilestones: ids(m.DependentMilestones),
		DependentTasks:      ids(m.DependentTasks),
		CreatedAt:           m.CreatedAt,
	}
}

func toMilestoneResponses(ms []model.Milestone) []MilestoneResponse {
	out := make([]MilestoneResponse, 0, len(ms))
	for i := range ms {
		out = append(out, toMilestoneResponse(&ms[i]))
	}
	return out
}

// Tasks

type QATaskRequest struct {
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
	DueDate     *Timestamp     `json:"dueDate"`
	Status      model.Status   `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Priority    model.Priority `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssignedTo  string         `json:"assignedTo"`
}

type CreateTaskRequest struct {
	ProjectID           string         `json:"projectId" binding:"required,uuid"`
	MilestoneID         string         `json:"milestoneId" binding:"required,uuid"`
	Name                string         `json:"name" binding:"required"`
	Description         string         `json:"description"`
	DueDate             *Timestamp     `json:"dueDate" binding:"required"`
	Status              model.Status   `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Priority            model.Priority `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssignedTo          string         `json:"assignedTo"`
	QATask              *QATaskRequest `json:"qaTask" binding:"required"`
	DependentMilestones []string       `json:"dependentMilestones" binding:"omitempty,dive,uuid"`
	DependentTasks      []string       `json:"dependentTasks" binding:"omitempty,dive,uuid"`
}

func (r CreateTaskRequest) input() service.TaskInput {
	due := r.DueDate.OrZero()
	qaDue := due
	if r.QATask.DueDate != nil {
		qaDue = r.QATask.DueDate.Time
	}
	return service.TaskInput{
		ProjectID:   *optionalUUID(&r.ProjectID),
		MilestoneID: *optionalUUID(&r.MilestoneID),
		Name:        r.Name,
		Description: r.Description,
		DueDate:     due,
		Status:      r.Status,
		Priority:    r.Priority,
		AssignedTo:  r.AssignedTo,
		QATask: model.QATask{
			Name:        r.QATask.Name,
			Description: r.QATask.Description,
			DueDate:     qaDue,
			Status:      r.QATask.Status,
			Priority:    r.QATask.Priority,
			AssignedTo:  r.QATask.AssignedTo,
		},
		DependentMilestones: r.DependentMilestones,
		DependentTasks:      r.DependentTasks,
	}
}

type UpdateQATaskRequest struct {
	Name        *string         `json:"name" binding:"omitempty,min=1"`
	Description *string         `json:"description"`
	DueDate     *Timestamp      `json:"dueDate"`
	Status      *model.Status   `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Priority    *model.Priority `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssignedTo  *string         `json:"assignedTo"`
}

type UpdateTaskRequest struct {
	ProjectID           *string              `json:"projectId" binding:"omitempty,uuid"`
	MilestoneID         *string              `json:"milestoneId" binding:"omitempty,uuid"`
	Name                *string              `json:"name" binding:"omitempty,min=1"`
	Description         *string              `json:"description"`
	DueDate             *Timestamp           `json:"dueDate"`
	Status              *model.Status        `json:"status" binding:"omitempty,oneof='To Do' 'In Progress' 'Completed'"`
	Priority            *model.Priority      `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	AssignedTo          *string              `json:"assignedTo"`
	QATask              *UpdateQATaskRequest `json:"qaTask"`
	DependentMilestones []string             `json:"dependentMilestones" binding:"omitempty,dive,uuid"`
	DependentTasks      []string             `json:"dependentTasks" binding:"omitempty,dive,uuid"`
}

func (r UpdateTaskRequest) patch() model.TaskPatch {
	p := model.TaskPatch{
		ProjectID:           optionalUUID(r.ProjectID),
		MilestoneID:         optionalUUID(r.MilestoneID),
		Name:                r.Name,
		Description:         r.Description,
		DueDate:             r.DueDate.Ptr(),
		Status:              r.Status,
		Priority:            r.Priority,
		AssignedTo:          r.AssignedTo,
		DependentMilestones: r.DependentMilestones,
		DependentTasks:      r.DependentTasks,
	}
	if qa := r.QATask; qa != nil {
		p.QATask = &model.QATaskPatch{
			Name:        qa.Name,
			Description: qa.Description,
			DueDate:     qa.DueDate.Ptr(),
			Status:      qa.Status,
			Priority:    qa.Priority,
			AssignedTo:  qa.AssignedTo,
		}
	}
	return p
}

type QATaskResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	DueDate     time.Time      `json:"dueDate"`
	Status      model.Status   `json:"status"`
	Priority    model.Priority `json:"priority"`
	AssignedTo  string         `json:"assignedTo"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type TaskResponse struct {
	ID                  string         `json:"id"`
	ProjectID           string         `json:"projectId"`
	MilestoneID         string         `json:"milestoneId"`
	Name                string         `json:"name"`
	Description         string         `json:"description"`
	DueDate             time.Time      `json:"dueDate"`
	Status              model.Status   `json:"status"`
	Priority            model.Priority `json:"priority"`
	AssignedTo          string         `json:"assignedTo"`
	QATask              QATaskResponse `json:"qaTask"`
	DependentMilestones []string       `json:"dependentMilestones"`
	DependentTasks      []string       `json:"dependentTasks"`
	CreatedAt           time.Time      `json:"createdAt"`
}

func toTaskResponse(t *model.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		ProjectID:   t.ProjectID.String(),
		MilestoneID: t.MilestoneID.String(),
		Name:        t.Name,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  t.AssignedTo,
		QATask: QATaskResponse{
			Name:        t.QATask.Name,
			Description: t.QATask.Description,
			DueDate:     t.QATask.DueDate,
			Status:      t.QATask.Status,
			Priority:    t.QATask.Priority,
			AssignedTo:  t.QATask.AssignedTo,
			CreatedAt:   t.QATask.CreatedAt,
		},
		DependentMilestones: ids(t.DependentMilestones),
		DependentTasks:      ids(t.DependentTasks),
		CreatedAt:           t.CreatedAt,
	}
}

func toTaskResponses(ts []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTaskResponse(&ts[i]))
	}
	return out
}

// Sprints

type CreateSprintRequest struct {
	ProjectID   string     `json:"projectId" binding:"required,uuid"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	StartDate   *Timestamp `json:"startDate" binding:"required"`
	EndDate     *Timestamp `json:"endDate" binding:"required"`
	Tasks       []string   `json:"tasks" binding:"omitempty,dive,uuid"`
	Milestones  []string   `json:"milestones" binding:"omitempty,dive,uuid"`
}

type UpdateSprintRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1"`
	Description *string    `json:"description"`
	StartDate   *Timestamp `json:"startDate"`
	EndDate     *Timestamp `json:"endDate"`
	Tasks       []string   `json:"tasks" binding:"omitempty,dive,uuid"`
	Milestones  []string   `json:"milestones" binding:"omitempty,dive,uuid"`
}

func (r UpdateSprintRequest) patch() model.SprintPatch {
	return model.SprintPatch{
		Name:        r.Name,
		Description: r.Description,
		StartDate:   r.StartDate.Ptr(),
		EndDate:     r.EndDate.Ptr(),
		Tasks:       r.Tasks,
		Milestones:  r.Milestones,
	}
}

type SprintResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Tasks       []string  `json:"tasks"`
	Milestones  []string  `json:"milestones"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SprintDetailResponse is a sprint with its tasks and milestones expanded.
type SprintDetailResponse struct {
	ID          string              `json:"id"`
	ProjectID   string              `json:"projectId"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	StartDate   time.Time           `json:"startDate"`
	EndDate     time.Time           `json:"endDate"`
	Tasks       []TaskResponse      `json:"tasks"`
	Milestones  []MilestoneResponse `json:"milestones"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func toSprintResponse(s *model.Sprint) SprintResponse {
	return SprintResponse{
		ID:          s.ID.String(),
		ProjectID:   s.ProjectID.String(),
		Name:        s.Name,
		Description: s.Description,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Tasks:       ids(s.Tasks),
		Milestones:  ids(s.Milestones),
		CreatedAt:   s.CreatedAt,
	}
}

func toSprintResponses(ss []model.Sprint) []SprintResponse {
	out := make([]SprintResponse, 0, len(ss))
	for i := range ss {
		out = append(out, toSprintResponse(&ss[i]))
	}
	return out
}

// ids renders a list as a JSON array, never null.
func ids(list model.IDList) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
