package handler

import (
	"context"
	"net/http"

	"kraken/internal/model"
	"kraken/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProjectService interface {
	Create(ctx context.Context, user *model.User, name, description string) (*model.Project, error)
	List(ctx context.Context, user *model.User) ([]model.Project, error)
	View(ctx context.Context, user *model.User, id uuid.UUID) (*service.ProjectView, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.ProjectPatch) (*model.Project, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
	Join(ctx context.Context, user *model.User, id uuid.UUID) (*model.User, error)
	Leave(ctx context.Context, user *model.User, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, admin *model.User, id uuid.UUID) ([]model.User, error)
	AddUser(ctx context.Context, admin *model.User, id uuid.UUID, ref service.UserRef) (*model.User, error)
	RemoveUser(ctx context.Context, admin *model.User, id uuid.UUID, ref service.UserRef) (*model.User, error)
}

type ProjectHandler struct {
	projects ProjectService
	log      *zap.Logger
}

func NewProjectHandler(projects ProjectService, log *zap.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, log: log}
}

// Create создает проект, владельцем становится текущий пользователь
// @Summary      Create a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateProjectRequest  true  "Project"
// @Success      201      {object}  ProjectResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /projects/ [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	project, err := h.projects.Create(c.Request.Context(), user, req.Name, req.Description)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// GetAll возвращает проекты, которыми пользователь владеет или в которых участвует
// @Summary      List my projects
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ProjectResponse
// @Router       /projects/ [get]
func (h *ProjectHandler) GetAll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	projects, err := h.projects.List(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		response = append(response, toProjectResponse(&projects[i]))
	}
	c.JSON(http.StatusOK, response)
}

// GetByID возвращает проект вместе с вехами, задачами и спринтами
// @Summary      Get a project
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  ProjectDetailResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.projects.View(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ProjectDetailResponse{
		ProjectResponse: toProjectResponse(&view.Project),
		Milestones:      toMilestoneResponses(view.Milestones),
		Tasks:           toTaskResponses(view.Tasks),
		Sprints:         toSprintResponses(view.Sprints),
	})
}

// Update
// @Summary      Update a project
// @Tags         Projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                true  "Project ID"
// @Param        request  body      UpdateProjectRequest  true  "Fields to change"
// @Success      200      {object}  ProjectResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /projects/{id} [patch]
func (h *ProjectHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	project, err := h.projects.Update(c.Request.Context(), user, id, model.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete удаляет проект со всем содержимым
// @Summary      Delete a project
// @Tags         Projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.projects.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

// Join
// @Summary      Join a project
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id}/join [post]
func (h *ProjectHandler) Join(c *gin.Context) {
	h.membership(c, h.projects.Join)
}

// Leave
// @Summary      Leave a project
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /projects/{id}/leave [delete]
func (h *ProjectHandler) Leave(c *gin.Context) {
	h.membership(c, h.projects.Leave)
}

func (h *ProjectHandler) membership(c *gin.Context, op func(context.Context, *model.User, uuid.UUID) (*model.User, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	updated, err := op(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(updated))
}

// GetUsers возвращает участников проекта
// @Summary      List project members
// @Tags         Members
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {array}   UserResponse
// @Failure      403  {object}  ErrorResponse
// @Router       /projects/{id}/users [get]
func (h *ProjectHandler) GetUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	users, err := h.projects.ListUsers(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, toUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, response)
}

// AddUser
// @Summary      Add a member
// @Tags         Members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true  "Project ID"
// @Param        request  body      MemberRequest  true  "User by email or username"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /projects/{id}/users [post]
func (h *ProjectHandler) AddUser(c *gin.Context) {
	h.member(c, h.projects.AddUser)
}

// RemoveUser
// @Summary      Remove a member
// @Tags         Members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string         true   "Project ID"
// @Param        userId   query     string         false  "User ID"
// @Param        request  body      MemberRequest  false  "User by id, email or username"
// @Success      200      {object}  UserResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Router       /projects/{id}/users [delete]
func (h *ProjectHandler) RemoveUser(c *gin.Context) {
	h.member(c, h.projects.RemoveUser)
}

func (h *ProjectHandler) member(c *gin.Context, op func(context.Context, *model.User, uuid.UUID, service.UserRef) (*model.User, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	// тело необязательно: DELETE обычно шлют с userId в query.
	// chunked-запрос приходит с ContentLength -1, поэтому смотрим и на Content-Type
	var req MemberRequest
	var err error
	if c.ContentType() == binding.MIMEJSON || c.Request.ContentLength > 0 {
		err = c.ShouldBindJSON(&req)
	} else {
		err = c.ShouldBindQuery(&req)
	}
	if err != nil {
		respondInvalid(c, err)
		return
	}

	target, err := op(c.Request.Context(), user, id, req.ref())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(target))
}
