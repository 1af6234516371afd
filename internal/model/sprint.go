package model

import (
	"time"

	"github.com/google/uuid"
)

// Sprint groups tasks and milestones of one project by id.
type Sprint struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"not null"`
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Tasks       IDList    `gorm:"type:jsonb;not null"`
	Milestones  IDList    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}
