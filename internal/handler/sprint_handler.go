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

type SprintService interface {
	Create(ctx context.Context, user *model.User, in service.SprintInput) (*model.Sprint, error)
	View(ctx context.Context, user *model.User, id uuid.UUID) (*service.SprintView, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.SprintPatch) (*model.Sprint, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
}

type SprintHandler struct {
	sprints SprintService
	log     *zap.Logger
}

func NewSprintHandler(sprints SprintService, log *zap.Logger) *SprintHandler {
	return &SprintHandler{sprints: sprints, log: log}
}

// Create
// @Summary      Create a sprint
// @Tags         Sprints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateSprintRequest  true  "Sprint"
// @Success      201      {object}  SprintResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /sprints/ [post]
func (h *SprintHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	sprint, err := h.sprints.Create(c.Request.Context(), user, service.SprintInput{
		ProjectID:   uuid.MustParse(req.ProjectID),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate.OrZero(),
		EndDate:     req.EndDate.OrZero(),
		Tasks:       req.Tasks,
		Milestones:  req.Milestones,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toSprintResponse(sprint))
}

// GetByID возвращает спринт с раскрытыми задачами и вехами
// @Summary      Get a sprint
// @Tags         Sprints
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sprint ID"
// @Success      200  {object}  SprintDetailResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /sprints/{id} [get]
func (h *SprintHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	view, err := h.sprints.View(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	s := view.Sprint
	c.JSON(http.StatusOK, SprintDetailResponse{
		ID:          s.ID.String(),
		ProjectID:   s.ProjectID.String(),
		Name:        s.Name,
		Description: s.Description,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		Tasks:       toTaskResponses(view.Tasks),
		Milestones:  toMilestoneResponses(view.Milestones),
		CreatedAt:   s.CreatedAt,
	})
}

// Update
// @Summary      Update a sprint
// @Tags         Sprints
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Sprint ID"
// @Param        request  body      UpdateSprintRequest  true  "Fields to change"
// @Success      200      {object}  SprintResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /sprints/{id} [patch]
func (h *SprintHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateSprintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	sprint, err := h.sprints.Update(c.Request.Context(), user, id, req.patch())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toSprintResponse(sprint))
}

// Delete
// @Summary      Delete a sprint
// @Tags         Sprints
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sprint ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /sprints/{id} [delete]
func (h *SprintHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.sprints.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sprint deleted successfully"})
}
