package model

import "time"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

type Project struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	CompanyID     string            `json:"company_id"`
	Status        ProjectStatus     `json:"status"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       *time.Time        `json:"end_date,omitempty"`
	Budget        float64           `json:"budget"`
	CurrentSpent  float64           `json:"current_spent"`
	TargetRevenue *float64          `json:"target_revenue,omitempty"`
	Matrix        RealizationMatrix `json:"realization_matrix"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// BudgetState compares spend against budget. Spend is never clamped.
type BudgetState string

const (
	UnderBudget BudgetState = "under"
	AtBudget    BudgetState = "at"
	OverBudget  BudgetState = "over"
)

// BudgetUtilization is spend as a percentage of budget, unclamped.
// A zero budget yields 0.
func (p Project) BudgetUtilization() float64 {
	if p.Budget == 0 {
		return 0
	}
	return p.CurrentSpent / p.Budget * 100
}

func (p Project) BudgetState() BudgetState {
	switch {
	case p.CurrentSpent > p.Budget:
		return OverBudget
	case p.CurrentSpent == p.Budget:
		return AtBudget
	default:
		return UnderBudget
	}
}

// Remaining budget; negative when over budget.
func (p Project) Remaining() float64 {
	return p.Budget - p.CurrentSpent
}

// ROI is the expected return on the budget in percent. ok is false when the
// project has no target revenue or no budget.
func (p Project) ROI() (roi float64, ok bool) {
	if p.TargetRevenue == nil || p.Budget == 0 {
		return 0, false
	}
	return (*p.TargetRevenue - p.Budget) / p.Budget * 100, true
}

// Clone returns a deep copy.
func (p Project) Clone() Project {
	cp := p
	if p.EndDate != nil {
		end := *p.EndDate
		cp.EndDate = &end
	}
	if p.TargetRevenue != nil {
		rev := *p.TargetRevenue
		cp.TargetRevenue = &rev
	}
	cp.Matrix = p.Matrix.Clone()
	return cp
}
