package handler

import (
	"context"
	"net/http"

	"kraken/internal/model"
	"kraken/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserService interface {
	Register(ctx context.Context, in service.RegisterInput) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
	ResetPassword(ctx context.Context, user *model.User, newPassword string) error
}

type UserHandler struct {
	users UserService
	log   *zap.Logger
}

func NewUserHandler(users UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// Register создает пользователя и сразу выдает ему токен
// @Summary      Register a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "Credentials"
// @Success      201      {object}  AuthResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{User: toUserResponse(user), Token: user.Token})
}

// Login проверяет учетные данные и выдает новый токен
// @Summary      Log in
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  AuthResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      429      {object}  ErrorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{User: toUserResponse(user), Token: user.Token})
}

// Me возвращает текущего пользователя
// @Summary      Current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// ResetPassword меняет пароль текущего пользователя
// @Summary      Change password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      ResetPasswordRequest  true  "New password"
// @Success      200      {object}  UserResponse
// @Failure      422      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /users/password/reset [patch]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, err)
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), user, req.NewPassword); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
