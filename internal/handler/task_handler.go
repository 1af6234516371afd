package handler

import (
	"context"
	"net/http"

	"kraken/internal/model"
	"kraken/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TaskService interface {
	Create(ctx context.Context, user *model.User, in service.TaskInput) (*model.Task, error)
	Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Task, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
}

type TaskHandler struct {
	tasks TaskService
	log   *zap.Logger
}

func NewTaskHandler(tasks TaskService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, log: log}
}

// Create создает новую задачу вместе с QA-задачей
// @Summary      Create a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateTaskRequest  true  "Task"
// @Success      201      {object}  TaskResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /tasks/ [post]
func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), user, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// GetByID получает задачу по ID
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  TaskResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update обновляет только переданные поля, в том числе поля qaTask
// @Summary      Update a task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "Task ID"
// @Param        request  body      UpdateTaskRequest  true  "Fields to change"
// @Success      200      {object}  TaskResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), user, id, req.patch())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Delete удаляет задачу
// @Summary      Delete a task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
