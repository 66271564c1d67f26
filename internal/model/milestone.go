package model

import (
	"slices"
	"time"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	// MilestoneOverdue is derived by EffectiveStatus and never stored.
	MilestoneOverdue MilestoneStatus = "overdue"
)

// Stored reports whether s may be persisted.
func (s MilestoneStatus) Stored() bool {
	switch s {
	case MilestonePending, MilestoneInProgress, MilestoneCompleted:
		return true
	}
	return false
}

type Milestone struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	DueDate     time.Time       `json:"due_date"`
	Status      MilestoneStatus `json:"status"`
	AssignedTo  []string        `json:"assigned_to"`
	Progress    int             `json:"progress"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EffectiveStatus is the status shown to users: an unfinished milestone whose
// due date has passed is overdue.
func (m Milestone) EffectiveStatus(now time.Time) MilestoneStatus {
	if m.Status != MilestoneCompleted && now.After(m.DueDate) {
		return MilestoneOverdue
	}
	return m.Status
}

// ProgressExceeded reports progress above 100%, which is kept as entered.
func (m Milestone) ProgressExceeded() bool {
	return m.Progress > 100
}

func (m Milestone) Clone() Milestone {
	cp := m
	cp.AssignedTo = slices.Clone(m.AssignedTo)
	return cp
}
