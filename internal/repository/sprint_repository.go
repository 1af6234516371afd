package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kraken/internal/model"
)

type SprintRepository struct {
	db *gorm.DB
}

func NewSprintRepository(db *gorm.DB) *SprintRepository {
	return &SprintRepository{db: db}
}

// Create adds a new sprint to the database
func (r *SprintRepository) Create(ctx context.Context, sprint *model.Sprint) error {
	return r.db.WithContext(ctx).Create(sprint).Error
}

// GetByID retrieves a sprint by its ID
func (r *SprintRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Sprint, error) {
	var sprint model.Sprint
	result := r.db.WithContext(ctx).First(&sprint, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &sprint, nil
}

// ListByProject retrieves all sprints for a specific project
func (r *SprintRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Sprint, error) {
	sprints := []model.Sprint{}
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("start_date").Find(&sprints)
	return sprints, result.Error
}

// Update updates an existing sprint
func (r *SprintRepository) Update(ctx context.Context, sprint *model.Sprint) error {
	return r.db.WithContext(ctx).Save(sprint).Error
}

// Delete removes a sprint by its ID
func (r *SprintRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Sprint{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSprintNotFound
	}
	return nil
}

// DeleteByProject removes every sprint of a project
func (r *SprintRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Sprint{}, "project_id = ?", projectID).Error
}

// PullTask detaches a task from every sprint
func (r *SprintRepository) PullTask(ctx context.Context, taskID uuid.UUID) error {
	return pullIDEverywhere(ctx, r.db, &model.Sprint{}, "tasks", taskID.String())
}

// PullMilestone detaches a milestone from every sprint
func (r *SprintRepository) PullMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return pullIDEverywhere(ctx, r.db, &model.Sprint{}, "milestones", milestoneID.String())
}
