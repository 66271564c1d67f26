package portfolio

import (
	"context"

	"gestorial/internal/model"
)

// ProjectStats summarises the portfolio. On-hold and cancelled projects count
// toward Total and the sums but toward none of the status buckets.
type ProjectStats struct {
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	Completed   int     `json:"completed"`
	Planning    int     `json:"planning"`
	TotalBudget float64 `json:"total_budget"`
	TotalSpent  float64 `json:"total_spent"`
}

// Utilization is portfolio spend as a percentage of budget, 0 without budget.
func (p ProjectStats) Utilization() float64 {
	if p.TotalBudget == 0 {
		return 0
	}
	return p.TotalSpent / p.TotalBudget * 100
}

// ComputeProjectStats recomputes the summary from the store on every call.
func (s *Service) ComputeProjectStats(ctx context.Context) (ProjectStats, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return ProjectStats{}, err
	}

	stats := ProjectStats{Total: len(projects)}
	for _, p := range projects {
		switch p.Status {
		case model.ProjectActive:
			stats.Active++
		case model.ProjectCompleted:
			stats.Completed++
		case model.ProjectPlanning:
			stats.Planning++
		}
		stats.TotalBudget += p.Budget
		stats.TotalSpent += p.CurrentSpent
	}
	return stats, nil
}

// MilestoneStatus is the status to display for m at the service's current time.
func (s *Service) MilestoneStatus(m model.Milestone) model.MilestoneStatus {
	return m.EffectiveStatus(s.now())
}

// OverdueMilestones lists the project's milestones that are past due and unfinished.
func (s *Service) OverdueMilestones(ctx context.Context, projectID string) ([]model.Milestone, error) {
	ms, err := s.store.ListMilestonesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := []model.Milestone{}
	for _, m := range ms {
		if m.EffectiveStatus(now) == model.MilestoneOverdue {
			out = append(out, m)
		}
	}
	return out, nil
}
