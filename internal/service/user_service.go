package service

import (
	"context"
	"strings"

	"kraken/internal/auth"
	"kraken/internal/model"
	"kraken/internal/ratelimit"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService struct {
	users   UserRepository
	tokens  TokenIssuer
	limiter ratelimit.LoginLimiter
	log     *zap.Logger
}

func NewUserService(users UserRepository, tokens TokenIssuer, limiter ratelimit.LoginLimiter, log *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, limiter: limiter, log: log}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates the user and signs it in. The returned user carries its
// token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := NormalizeEmail(in.Email)

	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, Internal("Failed to check username", err)
	}
	if existing != nil {
		return nil, BadRequest("Username already registered")
	}

	existing, err = s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, Internal("Failed to check email", err)
	}
	if existing != nil {
		return nil, BadRequest("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, Internal("Failed to hash password", err)
	}

	user := &model.User{
		ID:             uuid.New(),
		Username:       in.Username,
		Email:          email,
		HashedPassword: hash,
		OwnedProjects:  model.NewIDList(),
		JoinedProjects: model.NewIDList(),
	}

	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		return nil, Internal("Failed to generate token", err)
	}
	user.Token = token

	if err := s.users.Create(ctx, user); err != nil {
		return nil, Internal("Failed to create user", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// Login checks the credentials and issues a fresh token, which replaces the
// stored one.
func (s *UserService) Login(ctx context.Context, username, password string) (*model.User, error) {
	locked, err := s.limiter.Locked(ctx, username)
	if err != nil {
		s.log.Warn("login limiter unavailable", zap.Error(err))
	}
	if locked {
		return nil, TooManyRequests("Too many failed login attempts, try again later")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, Internal("Failed to retrieve user", err)
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, password) {
		if err := s.limiter.Fail(ctx, username); err != nil {
			s.log.Warn("failed to record login failure", zap.Error(err))
		}
		return nil, Unauthorized("Invalid username or password")
	}

	if err := s.limiter.Reset(ctx, username); err != nil {
		s.log.Warn("failed to reset login failures", zap.Error(err))
	}

	token, err := s.tokens.Generate(user.ID.String())
	if err != nil {
		return nil, Internal("Failed to generate token", err)
	}
	if err := s.users.SetToken(ctx, user.ID, token); err != nil {
		return nil, Internal("Failed to store token", err)
	}
	user.Token = token

	return user, nil
}

func (s *UserService) ResetPassword(ctx context.Context, user *model.User, newPassword string) error {
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return Internal("Failed to hash password", err)
	}
	if err := s.users.SetPassword(ctx, user.ID, hash); err != nil {
		return Internal("Failed to update password", err)
	}
	user.HashedPassword = hash
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
