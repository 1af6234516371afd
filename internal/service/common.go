package service

import (
	"context"

	"kraken/internal/events"
	"kraken/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgProjectNotFound   = "Project not found"
	msgMilestoneNotFound = "Milestone not found"
	msgTaskNotFound      = "Task not found"
	msgSprintNotFound    = "Sprint not found"
	msgUserNotFound      = "User not found"
	msgNoAccess          = "User does not have access to project"
	msgNotOwner          = "Only the project owner can do this"
)

func loadProject(ctx context.Context, projects ProjectRepository, id uuid.UUID) (*model.Project, error) {
	project, err := projects.GetByID(ctx, id)
	if err != nil {
		return nil, Internal("Failed to retrieve project", err)
	}
	if project == nil {
		return nil, NotFound(msgProjectNotFound)
	}
	return project, nil
}

func requireAccess(user *model.User, projectID uuid.UUID) error {
	if !user.CanAccess(projectID) {
		return Forbidden(msgNoAccess)
	}
	return nil
}

func requireAdmin(user *model.User, projectID uuid.UUID) error {
	if !user.IsAdmin(projectID) {
		return Forbidden(msgNotOwner)
	}
	return nil
}

// publish sends the event and only logs a failure.
func publish(ctx context.Context, log *zap.Logger, pub EventPublisher, event events.Event) {
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn("failed to publish event",
			zap.String("type", event.Type),
			zap.String("project_id", event.ProjectID),
			zap.Error(err),
		)
	}
}

// inListOrder returns items ordered as ids, skipping ids with no item.
func inListOrder[T any](ids []string, items []T, key func(T) string) []T {
	byID := make(map[string]T, len(items))
	for _, item := range items {
		byID[key(item)] = item
	}
	out := make([]T, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			out = append(out, item)
			delete(byID, id)
		}
	}
	return out
}
