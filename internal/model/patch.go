package model

import (
	"time"

	"github.com/google/uuid"
)

// Patches carry only the fields present in a PATCH request. A nil field
// leaves the stored value untouched.

type ProjectPatch struct {
	Name        *string
	Description *string
}

func (p ProjectPatch) Apply(project *Project) {
	if p.Name != nil {
		project.Name = *p.Name
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
}

type MilestonePatch struct {
	Name                *string
	Description         *string
	DueDate             *time.Time
	Status              *Status
	DependentMilestones []string
	DependentTasks      []string
}

func (p MilestonePatch) Apply(m *Milestone) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.DueDate != nil {
		m.DueDate = *p.DueDate
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.DependentMilestones != nil {
		m.DependentMilestones = NewIDList(p.DependentMilestones...)
	}
	if p.DependentTasks != nil {
		m.DependentTasks = NewIDList(p.DependentTasks...)
	}
}

type SprintPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Tasks       []string
	Milestones  []string
}

func (p SprintPatch) Apply(s *Sprint) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.StartDate != nil {
		s.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		s.EndDate = *p.EndDate
	}
	if p.Tasks != nil {
		s.Tasks = NewIDList(p.Tasks...)
	}
	if p.Milestones != nil {
		s.Milestones = NewIDList(p.Milestones...)
	}
}

type QATaskPatch struct {
	Name        *string
	Description *string
	DueDate     *time.Time
	Status      *Status
	Priority    *Priority
	AssignedTo  *string
}

type TaskPatch struct {
	ProjectID           *uuid.UUID
	MilestoneID         *uuid.UUID
	Name                *string
	Description         *string
	DueDate             *time.Time
	Status              *Status
	Priority            *Priority
	AssignedTo          *string
	QATask              *QATaskPatch
	DependentMilestones []string
	DependentTasks      []string
}

// Apply merges the patch into t and returns the columns it touched. QA
// fields are flattened, so a partial qaTask only overwrites the qa_* columns
// it names.
func (p TaskPatch) Apply(t *Task) []string {
	var columns []string
	set := func(column string, apply func()) {
		apply()
		columns = append(columns, column)
	}

	if p.ProjectID != nil {
		set("project_id", func() { t.ProjectID = *p.ProjectID })
	}
	if p.MilestoneID != nil {
		set("milestone_id", func() { t.MilestoneID = *p.MilestoneID })
	}
	if p.Name != nil {
		set("name", func() { t.Name = *p.Name })
	}
	if p.Description != nil {
		set("description", func() { t.Description = *p.Description })
	}
	if p.DueDate != nil {
		set("due_date", func() { t.DueDate = *p.DueDate })
	}
	if p.Status != nil {
		set("status", func() { t.Status = *p.Status })
	}
	if p.Priority != nil {
		set("priority", func() { t.Priority = *p.Priority })
	}
	if p.AssignedTo != nil {
		set("assigned_to", func() { t.AssignedTo = *p.AssignedTo })
	}
	if p.DependentMilestones != nil {
		set("dependent_milestones", func() { t.DependentMilestones = NewIDList(p.DependentMilestones...) })
	}
	if p.DependentTasks != nil {
		set("dependent_tasks", func() { t.DependentTasks = NewIDList(p.DependentTasks...) })
	}

	if qa := p.QATask; qa != nil {
		if qa.Name != nil {
			set("qa_name", func() { t.QATask.Name = *qa.Name })
		}
		if qa.Description != nil {
			set("qa_description", func() { t.QATask.Description = *qa.Description })
		}
		if qa.DueDate != nil {
			set("qa_due_date", func() { t.QATask.DueDate = *qa.DueDate })
		}
		if qa.Status != nil {
			set("qa_status", func() { t.QATask.Status = *qa.Status })
		}
		if qa.Priority != nil {
			set("qa_priority", func() { t.QATask.Priority = *qa.Priority })
		}
		if qa.AssignedTo != nil {
			set("qa_assigned_to", func() { t.QATask.AssignedTo = *qa.AssignedTo })
		}
	}

	return columns
}
