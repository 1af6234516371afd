package repository

import (
	"context"
	"errors"

	"kraken/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneRepository struct {
	db *gorm.DB
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{db: db}
}

func (r *MilestoneRepository) Create(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Create(milestone).Error
}

func (r *MilestoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Milestone, error) {
	var milestone model.Milestone
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&milestone).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &milestone, nil
}

func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Milestone, error) {
	milestones := []model.Milestone{}
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("due_date").Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Milestone, error) {
	milestones := []model.Milestone{}
	ids = validUUIDs(ids)
	if len(ids) == 0 {
		return milestones, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("due_date").Find(&milestones).Error
	return milestones, err
}

func (r *MilestoneRepository) Update(ctx context.Context, milestone *model.Milestone) error {
	return r.db.WithContext(ctx).Save(milestone).Error
}

func (r *MilestoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Milestone{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMilestoneNotFound
	}
	return nil
}

func (r *MilestoneRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Milestone{}, "project_id = ?", projectID).Error
}

// PullDependentMilestone removes a milestone id from every milestone's dependency list.
func (r *MilestoneRepository) PullDependentMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return pullIDEverywhere(ctx, r.db, &model.Milestone{}, "dependent_milestones", milestoneID.String())
}

// PullDependentTask removes a task id from every milestone's dependency list.
func (r *MilestoneRepository) PullDependentTask(ctx context.Context, taskID uuid.UUID) error {
	return pullIDEverywhere(ctx, r.db, &model.Milestone{}, "dependent_tasks", taskID.String())
}
