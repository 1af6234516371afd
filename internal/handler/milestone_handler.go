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

type MilestoneService interface {
	Create(ctx context.Context, user *model.User, in service.MilestoneInput) (*model.Milestone, error)
	Get(ctx context.Context, user *model.User, id uuid.UUID) (*model.Milestone, error)
	Update(ctx context.Context, user *model.User, id uuid.UUID, patch model.MilestonePatch) (*model.Milestone, error)
	Delete(ctx context.Context, user *model.User, id uuid.UUID) error
}

type MilestoneHandler struct {
	milestones MilestoneService
	log        *zap.Logger
}

func NewMilestoneHandler(milestones MilestoneService, log *zap.Logger) *MilestoneHandler {
	return &MilestoneHandler{milestones: milestones, log: log}
}

// Create создает веху в проекте
// @Summary      Create a milestone
// @Tags         Milestones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreateMilestoneRequest  true  "Milestone"
// @Success      201      {object}  MilestoneResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /milestones/ [post]
func (h *MilestoneHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	milestone, err := h.milestones.Create(c.Request.Context(), user, service.MilestoneInput{
		ProjectID:           uuid.MustParse(req.ProjectID),
		Name:                req.Name,
		Description:         req.Description,
		DueDate:             req.DueDate.OrZero(),
		Status:              req.Status,
		DependentMilestones: req.DependentMilestones,
		DependentTasks:      req.DependentTasks,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toMilestoneResponse(milestone))
}

// GetByID
// @Summary      Get a milestone
// @Tags         Milestones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Milestone ID"
// @Success      200  {object}  MilestoneResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /milestones/{id} [get]
func (h *MilestoneHandler) GetByID(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	milestone, err := h.milestones.Get(c.Request.Context(), user, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

// Update
// @Summary      Update a milestone
// @Tags         Milestones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                  true  "Milestone ID"
// @Param        request  body      UpdateMilestoneRequest  true  "Fields to change"
// @Success      200      {object}  MilestoneResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Router       /milestones/{id} [patch]
func (h *MilestoneHandler) Update(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	milestone, err := h.milestones.Update(c.Request.Context(), user, id, req.patch())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

// Delete удаляет веху и все ее задачи
// @Summary      Delete a milestone
// @Tags         Milestones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Milestone ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /milestones/{id} [delete]
func (h *MilestoneHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.milestones.Delete(c.Request.Context(), user, id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Milestone deleted successfully"})
}
