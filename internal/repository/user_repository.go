package repository

import (
	"context"
	"errors"

	"kraken/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

// findOne returns nil, nil when no user matches.
func (r *UserRepository) findOne(ctx context.Context, query string, args ...interface{}) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByJoinedProject returns every user that joined the project.
func (r *UserRepository) ListByJoinedProject(ctx context.Context, projectID uuid.UUID) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("joined_projects @> ?::jsonb", jsonArray(projectID.String())).
		Order("username").
		Find(&users).Error
	return users, err
}

func (r *UserRepository) SetToken(ctx context.Context, id uuid.UUID, token string) error {
	return r.updateColumn(ctx, id, "token", token)
}

func (r *UserRepository) SetPassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.updateColumn(ctx, id, "hashed_password", hashedPassword)
}

func (r *UserRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update(column, value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AddOwnedProject records the user as the project's owner. Adding the same
// project twice is a no-op.
func (r *UserRepository) AddOwnedProject(ctx context.Context, id, projectID uuid.UUID) error {
	_, err := pushID(ctx, r.db, &model.User{}, id, "owned_projects", projectID.String())
	return err
}

func (r *UserRepository) RemoveOwnedProject(ctx context.Context, id, projectID uuid.UUID) error {
	_, err := pullID(ctx, r.db, &model.User{}, id, "owned_projects", projectID.String())
	return err
}

func (r *UserRepository) AddJoinedProject(ctx context.Context, id, projectID uuid.UUID) error {
	_, err := pushID(ctx, r.db, &model.User{}, id, "joined_projects", projectID.String())
	return err
}

func (r *UserRepository) RemoveJoinedProject(ctx context.Context, id, projectID uuid.UUID) error {
	affected, err := pullID(ctx, r.db, &model.User{}, id, "joined_projects", projectID.String())
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PullJoinedProject removes the project from every user's joined list.
func (r *UserRepository) PullJoinedProject(ctx context.Context, projectID uuid.UUID) error {
	return pullIDEverywhere(ctx, r.db, &model.User{}, "joined_projects", projectID.String())
}
