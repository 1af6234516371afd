package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cascader removes references to deleted milestones and tasks. Every step is
// best effort: a failure is logged and the next step still runs.
type cascader struct {
	milestones MilestoneRepository
	tasks      TaskRepository
	sprints    SprintRepository
	log        *zap.Logger
}

func (c cascader) milestoneDeleted(ctx context.Context, milestoneID uuid.UUID) {
	log := c.log.With(zap.String("milestone_id", milestoneID.String()))

	c.warn(log, c.milestones.PullDependentMilestone(ctx, milestoneID), "failed to pull milestone from milestone dependencies")
	c.warn(log, c.tasks.PullDependentMilestone(ctx, milestoneID), "failed to pull milestone from task dependencies")
	c.warn(log, c.sprints.PullMilestone(ctx, milestoneID), "failed to pull milestone from sprints")

	// без списка задач ссылки на них не вычистить, но сами задачи удаляем
	tasks, err := c.tasks.ListByMilestone(ctx, milestoneID)
	if err != nil {
		log.Warn("failed to list milestone tasks", zap.Error(err))
		tasks = nil
	}
	if err := c.tasks.DeleteByMilestone(ctx, milestoneID); err != nil {
		log.Warn("failed to delete milestone tasks", zap.Error(err))
		return
	}
	for _, task := range tasks {
		c.taskDeleted(ctx, task.ID)
	}
}

func (c cascader) taskDeleted(ctx context.Context, taskID uuid.UUID) {
	log := c.log.With(zap.String("task_id", taskID.String()))

	c.warn(log, c.milestones.PullDependentTask(ctx, taskID), "failed to pull task from milestone dependencies")
	c.warn(log, c.tasks.PullDependentTask(ctx, taskID), "failed to pull task from task dependencies")
	c.warn(log, c.sprints.PullTask(ctx, taskID), "failed to pull task from sprints")
}

func (c cascader) warn(log *zap.Logger, err error, msg string) {
	if err != nil {
		log.Warn(msg, zap.Error(err))
	}
}
