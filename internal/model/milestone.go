package model

import (
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Name                string    `gorm:"not null"`
	Description         string
	DueDate             time.Time
	Status              Status    `gorm:"not null"`
	DependentMilestones IDList    `gorm:"type:jsonb;not null"`
	DependentTasks      IDList    `gorm:"type:jsonb;not null"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}
