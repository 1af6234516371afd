package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is owned by exactly one user (through User.OwnedProjects) and
// joined by any number of users (through User.JoinedProjects).
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
