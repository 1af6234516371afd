package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username       string    `gorm:"uniqueIndex;not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string    `gorm:"not null"`
	OwnedProjects  IDList    `gorm:"type:jsonb;not null"`
	JoinedProjects IDList    `gorm:"type:jsonb;not null"`
	Token          string
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

// CanAccess reports whether the user owns or has joined the project.
func (u *User) CanAccess(projectID uuid.UUID) bool {
	return u.IsAdmin(projectID) || u.IsMember(projectID)
}

// IsAdmin reports whether the user owns the project.
func (u *User) IsAdmin(projectID uuid.UUID) bool {
	return HasID(u.OwnedProjects, projectID.String())
}

// IsMember reports whether the user has joined the project. Owners are not members.
func (u *User) IsMember(projectID uuid.UUID) bool {
	return HasID(u.JoinedProjects, projectID.String())
}
