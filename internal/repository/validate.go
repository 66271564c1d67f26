package repository

import (
	"fmt"

	"gestorial/internal/model"
)

func validateCompany(c model.Company) error {
	if c.ID == "" {
		return fmt.Errorf("company: empty id: %w", ErrInvalidValue)
	}
	return nil
}

func validateProject(p model.Project) error {
	if p.ID == "" {
		return fmt.Errorf("project: empty id: %w", ErrInvalidValue)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("project %s: status %q: %w", p.ID, p.Status, ErrInvalidValue)
	}
	return nil
}

func validateMilestone(m model.Milestone) error {
	if m.ID == "" {
		return fmt.Errorf("milestone: empty id: %w", ErrInvalidValue)
	}
	if !m.Status.Stored() {
		return fmt.Errorf("milestone %s: status %q: %w", m.ID, m.Status, ErrInvalidValue)
	}
	return nil
}

func validateFinancialMetric(f model.FinancialMetric) error {
	if f.ID == "" {
		return fmt.Errorf("financial metric: empty id: %w", ErrInvalidValue)
	}
	if !f.Valid() {
		return fmt.Errorf("financial metric %s: %w", f.ID, ErrInvalidValue)
	}
	return nil
}

func validateActivity(a model.Activity) error {
	if a.ID == "" {
		return fmt.Errorf("activity: empty id: %w", ErrInvalidValue)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("activity %s: type %q: %w", a.ID, a.Type, ErrInvalidValue)
	}
	return nil
}

// validateUser enforces that client roles carry a company and internal roles do not.
func validateUser(u model.User) error {
	if u.ID == "" || u.Email == "" {
		return fmt.Errorf("user: empty id or email: %w", ErrInvalidValue)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("user %s: role %q: %w", u.ID, u.Role, ErrInvalidValue)
	}
	if u.Role.Internal() != (u.CompanyID == nil) {
		return fmt.Errorf("user %s: company does not match role %s: %w", u.ID, u.Role, ErrInvalidValue)
	}
	return nil
}
