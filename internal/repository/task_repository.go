package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kraken/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListByProject retrieves all tasks of a project
func (r *TaskRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Task, error) {
	tasks := []model.Task{}
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at").Find(&tasks)
	return tasks, result.Error
}

// ListByMilestone retrieves all tasks under a milestone
func (r *TaskRepository) ListByMilestone(ctx context.Context, milestoneID uuid.UUID) ([]model.Task, error) {
	tasks := []model.Task{}
	result := r.db.WithContext(ctx).Where("milestone_id = ?", milestoneID).Order("created_at").Find(&tasks)
	return tasks, result.Error
}

// ListByIDs retrieves the tasks among ids that still exist
func (r *TaskRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Task, error) {
	tasks := []model.Task{}
	ids = validUUIDs(ids)
	if len(ids) == 0 {
		return tasks, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Order("created_at").Find(&tasks)
	return tasks, result.Error
}

// UpdateFields writes only the named columns of task, so a partial QA
// update leaves the other qa_* columns alone.
func (r *TaskRepository) UpdateFields(ctx context.Context, task *model.Task, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	result := r.db.WithContext(ctx).Model(task).Select(columns).Updates(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task by its ID
func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteByMilestone removes every task of a milestone
func (r *TaskRepository) DeleteByMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, "milestone_id = ?", milestoneID).Error
}

// DeleteByProject removes every task of a project
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, "project_id = ?", projectID).Error
}

// PullDependentMilestone removes a milestone id from every task's dependency list
func (r *TaskRepository) PullDependentMilestone(ctx context.Context, milestoneID uuid.UUID) error {
	return pullIDEverywhere(ctx, r.db, &model.Task{}, "dependent_milestones", milestoneID.String())
}

// PullDependentTask removes a task id from every task's dependency list
func (r *TaskRepository) PullDependentTask(ctx context.Context, taskID uuid.UUID) error {
	return pullIDEverywhere(ctx, r.db, &model.Task{}, "dependent_tasks", taskID.String())
}

// Unassign hands every task and QA task of the project assigned to username
// back to model.Unassigned
func (r *TaskRepository) Unassign(ctx context.Context, projectID uuid.UUID, username string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).
			Where("project_id = ? AND assigned_to = ?", projectID, username).
			Update("assigned_to", model.Unassigned).Error; err != nil {
			return err
		}

		return tx.Model(&model.Task{}).
			Where("project_id = ? AND qa_assigned_to = ?", projectID, username).
			Update("qa_assigned_to", model.Unassigned).Error
	})
}
