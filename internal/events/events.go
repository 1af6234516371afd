package events

import (
	"context"
	"time"
)

const ExchangeName = "kraken.events"

// Routing keys.
const (
	ProjectCreated   = "project.created"
	ProjectDeleted   = "project.deleted"
	MilestoneDeleted = "milestone.deleted"
	TaskDeleted      = "task.deleted"
	SprintDeleted    = "sprint.deleted"
	MemberJoined     = "member.joined"
	MemberLeft       = "member.left"
)

type Event struct {
	Type       string    `json:"type"`
	ProjectID  string    `json:"projectId"`
	EntityID   string    `json:"entityId,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func New(eventType, projectID, entityID, userID string) Event {
	return Event{
		Type:       eventType,
		ProjectID:  projectID,
		EntityID:   entityID,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
