package model

import (
	"time"

	"github.com/google/uuid"
)

// QATask is the review step embedded in every task. It has its own status
// and assignee and lives in the qa_* columns of the tasks table.
type QATask struct {
	Name        string
	Description string
	DueDate     time.Time
	Status      Status
	Priority    Priority
	AssignedTo  string
	CreatedAt   time.Time
}

type Task struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID           uuid.UUID `gorm:"type:uuid;not null;index"`
	MilestoneID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name                string    `gorm:"not null"`
	Description         string
	DueDate             time.Time
	Status              Status    `gorm:"not null"`
	Priority            Priority  `gorm:"not null"`
	AssignedTo          string    `gorm:"not null"`
	QATask              QATask    `gorm:"embedded;embeddedPrefix:qa_"`
	DependentMilestones IDList    `gorm:"type:jsonb;not null"`
	DependentTasks      IDList    `gorm:"type:jsonb;not null"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
}
