package service_test

import (
	"context"
	"testing"

	"kraken/internal/auth"
	"kraken/internal/model"
	"kraken/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupUserService() (*service.UserService, *MockUserRepository, *MockTokens, *MockLimiter) {
	users := new(MockUserRepository)
	tokens := new(MockTokens)
	limiter := new(MockLimiter)
	return service.NewUserService(users, tokens, limiter, zap.NewNop()), users, tokens, limiter
}

func TestUserService_Register_Success(t *testing.T) {
	// Arrange
	svc, users, tokens, _ := setupUserService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "alice").Return(nil, nil)
	users.On("FindByEmail", ctx, "alice@example.com").Return(nil, nil)
	tokens.On("Generate", mock.AnythingOfType("string")).Return("signed-token", nil)
	users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
		return u.Token == "signed-token" && u.OwnedProjects != nil && u.JoinedProjects != nil
	})).Return(nil)

	// Act
	user, err := svc.Register(ctx, service.RegisterInput{
		Username: "alice",
		Email:    "  Alice@Example.com ",
		Password: "password123",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "signed-token", user.Token)
	assert.NotEqual(t, "password123", user.HashedPassword)
	assert.True(t, auth.CheckPassword(user.HashedPassword, "password123"))
	assert.Empty(t, user.OwnedProjects)
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	svc, users, _, _ := setupUserService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "alice").Return(&model.User{Username: "alice"}, nil)

	_, err := svc.Register(ctx, service.RegisterInput{Username: "alice", Email: "a@example.com", Password: "password123"})

	assert.Equal(t, service.KindBadRequest, service.KindOf(err))
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, users, _, _ := setupUserService()
	ctx := context.Background()

	users.On("FindByUsername", ctx, "alice").Return(nil, nil)
	users.On("FindByEmail", ctx, "a@example.com").Return(&model.User{Email: "a@example.com"}, nil)

	_, err := svc.Register(ctx, service.RegisterInput{Username: "alice", Email: "A@example.com", Password: "password123"})

	assert.Equal(t, service.KindBadRequest, service.KindOf(err))
	assert.Equal(t, "Email already registered", service.MessageOf(err))
}

func TestUserService_Login_IssuesFreshToken(t *testing.T) {
	// Arrange
	svc, users, tokens, limiter := setupUserService()
	ctx := context.Background()

	hash, _ := auth.HashPassword("password123")
	stored := &model.User{ID: uuid.New(), Username: "alice", HashedPassword: hash, Token: "old-token"}

	limiter.On("Locked", ctx, "alice").Return(false, nil)
	limiter.On("Reset", ctx, "alice").Return(nil)
	users.On("FindByUsername", ctx, "alice").Return(stored, nil)
	tokens.On("Generate", stored.ID.String()).Return("new-token", nil)
	users.On("SetToken", ctx, stored.ID, "new-token").Return(nil)

	// Act
	user, err := svc.Login(ctx, "alice", "password123")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "new-token", user.Token)
	users.AssertExpectations(t)
	limiter.AssertExpectations(t)
}

func TestUserService_Login_WrongPasswordCountsFailure(t *testing.T) {
	svc, users, _, limiter := setupUserService()
	ctx := context.Background()

	hash, _ := auth.HashPassword("password123")
	limiter.On("Locked", ctx, "alice").Return(false, nil)
	limiter.On("Fail", ctx, "alice").Return(nil)
	users.On("FindByUsername", ctx, "alice").Return(&model.User{ID: uuid.New(), HashedPassword: hash}, nil)

	_, err := svc.Login(ctx, "alice", "wrong")

	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))
	limiter.AssertCalled(t, "Fail", ctx, "alice")
	users.AssertNotCalled(t, "SetToken", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_Login_UnknownUser(t *testing.T) {
	svc, users, _, limiter := setupUserService()
	ctx := context.Background()

	limiter.On("Locked", ctx, "ghost").Return(false, nil)
	limiter.On("Fail", ctx, "ghost").Return(nil)
	users.On("FindByUsername", ctx, "ghost").Return(nil, nil)

	_, err := svc.Login(ctx, "ghost", "password123")

	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))
}

func TestUserService_Login_Locked(t *testing.T) {
	svc, users, _, limiter := setupUserService()
	ctx := context.Background()

	limiter.On("Locked", ctx, "alice").Return(true, nil)

	_, err := svc.Login(ctx, "alice", "password123")

	assert.Equal(t, service.KindTooManyRequests, service.KindOf(err))
	users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
}

func TestUserService_Login_LimiterDownStillLogsIn(t *testing.T) {
	svc, users, tokens, limiter := setupUserService()
	ctx := context.Background()

	hash, _ := auth.HashPassword("password123")
	stored := &model.User{ID: uuid.New(), Username: "alice", HashedPassword: hash}

	// Redis недоступен: вход не блокируется
	limiter.On("Locked", ctx, "alice").Return(false, assert.AnError)
	limiter.On("Reset", ctx, "alice").Return(assert.AnError)
	users.On("FindByUsername", ctx, "alice").Return(stored, nil)
	tokens.On("Generate", stored.ID.String()).Return("tok", nil)
	users.On("SetToken", ctx, stored.ID, "tok").Return(nil)

	user, err := svc.Login(ctx, "alice", "password123")

	require.NoError(t, err)
	assert.Equal(t, "tok", user.Token)
}

func TestUserService_ResetPassword(t *testing.T) {
	svc, users, _, _ := setupUserService()
	ctx := context.Background()
	user := &model.User{ID: uuid.New()}

	users.On("SetPassword", ctx, user.ID, mock.AnythingOfType("string")).Return(nil)

	err := svc.ResetPassword(ctx, user, "newpassword")

	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(user.HashedPassword, "newpassword"))
}

func TestUserService_ResetPassword_WriteFailure(t *testing.T) {
	svc, users, _, _ := setupUserService()
	ctx := context.Background()
	user := &model.User{ID: uuid.New()}

	users.On("SetPassword", ctx, user.ID, mock.AnythingOfType("string")).Return(assert.AnError)

	err := svc.ResetPassword(ctx, user, "newpassword")

	assert.Equal(t, service.KindInternal, service.KindOf(err))
	assert.ErrorIs(t, err, assert.AnError)
}
