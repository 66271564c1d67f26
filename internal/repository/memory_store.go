package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"gestorial/internal/model"
)

const backendMemory = "memory"

// MemoryStore keeps every entity in insertion order. All reads return copies.
type MemoryStore struct {
	mu         sync.RWMutex
	companies  []model.Company
	projects   []model.Project
	milestones []model.Milestone
	metrics    []model.FinancialMetric
	activities []model.Activity
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Writer = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListProjects(_ context.Context) ([]model.Project, error) {
	defer observe("list_projects", backendMemory, time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *MemoryStore) GetProject(_ context.Context, id string) (*model.Project, error) {
	defer observe("get_project", backendMemory, time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.projectIndex(id); i >= 0 {
		p := s.projects[i].Clone()
		return &p, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListCompanies(_ context.Context) ([]model.Company, error) {
	defer observe("list_companies", backendMemory, time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Company{}, s.companies...), nil
}

func (s *MemoryStore) GetCompany(_ context.Context, id string) (*model.Company, error) {
	defer observe("get_company", backendMemory, time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.companyIndex(id); i >= 0 {
		c := s.companies[i]
		return &c, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListMilestonesByProject(_ context.Context, projectID string) ([]model.Milestone, error) {
	defer observe("list_milestones", backendMemory, time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Milestone{}
	for _, m := range s.milestones {
		if m.ProjectID == projectID {
			out = append(out, m.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) ListFinancialMetricsByProject(_ context.Context, projectID string) ([]model.FinancialMetric, error) {
	defer observe("list_financial_metrics", backendMemory, time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.FinancialMetric{}
	for _, f := range s.metrics {
		if f.ProjectID == projectID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateProjectMatrix(_ context.Context, projectID string, matrix model.RealizationMatrix, at time.Time) error {
	defer observe("update_matrix", backendMemory, time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.projectIndex(projectID)
	if i < 0 {
		return fmt.Errorf("project %s: %w", projectID, ErrNotFound)
	}
	s.projects[i].Matrix = matrix.Clone()
	s.projects[i].UpdatedAt = at
	return nil
}

func (s *MemoryStore) ListActivitiesByProject(_ context.Context, projectID string) ([]model.Activity, error) {
	defer observe("list_activities", backendMemory, time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Activity{}
	for _, a := range s.activities {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	// newest first; ties keep the later insert first
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b model.Activity) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) InsertActivity(_ context.Context, a model.Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectIndex(a.ProjectID) < 0 {
		return fmt.Errorf("activity %s: project %s: %w", a.ID, a.ProjectID, ErrUnknownProject)
	}
	if slices.ContainsFunc(s.activities, func(x model.Activity) bool { return x.ID == a.ID }) {
		return fmt.Errorf("activity %s: %w", a.ID, ErrDuplicateID)
	}
	s.activities = append(s.activities, a)
	return nil
}

func (s *MemoryStore) InsertCompany(_ context.Context, c model.Company) error {
	if err := validateCompany(c); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.companyIndex(c.ID) >= 0 {
		return fmt.Errorf("company %s: %w", c.ID, ErrDuplicateID)
	}
	s.companies = append(s.companies, c)
	return nil
}

func (s *MemoryStore) InsertProject(_ context.Context, p model.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.projectIndex(p.ID) >= 0 {
		return fmt.Errorf("project %s: %w", p.ID, ErrDuplicateID)
	}
	if s.companyIndex(p.CompanyID) < 0 {
		return fmt.Errorf("project %s: company %s: %w", p.ID, p.CompanyID, ErrUnknownCompany)
	}
	s.projects = append(s.projects, p.Clone())
	return nil
}

func (s *MemoryStore) InsertMilestone(_ context.Context, m model.Milestone) error {
	if err := validateMilestone(m); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.milestones, func(x model.Milestone) bool { return x.ID == m.ID }) {
		return fmt.Errorf("milestone %s: %w", m.ID, ErrDuplicateID)
	}
	if s.projectIndex(m.ProjectID) < 0 {
		return fmt.Errorf("milestone %s: project %s: %w", m.ID, m.ProjectID, ErrUnknownProject)
	}
	s.milestones = append(s.milestones, m.Clone())
	return nil
}

func (s *MemoryStore) InsertFinancialMetric(_ context.Context, f model.FinancialMetric) error {
	if err := validateFinancialMetric(f); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.metrics, func(x model.FinancialMetric) bool { return x.ID == f.ID }) {
		return fmt.Errorf("financial metric %s: %w", f.ID, ErrDuplicateID)
	}
	if s.projectIndex(f.ProjectID) < 0 {
		return fmt.Errorf("financial metric %s: project %s: %w", f.ID, f.ProjectID, ErrUnknownProject)
	}
	s.metrics = append(s.metrics, f)
	return nil
}

// caller holds mu
func (s *MemoryStore) projectIndex(id string) int {
	return slices.IndexFunc(s.projects, func(p model.Project) bool { return p.ID == id })
}

// caller holds mu
func (s *MemoryStore) companyIndex(id string) int {
	return slices.IndexFunc(s.companies, func(c model.Company) bool { return c.ID == id })
}
