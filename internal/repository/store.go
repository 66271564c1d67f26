package repository

import (
	"context"
	"errors"
	"time"

	"gestorial/internal/model"
	"gestorial/pkg/metrics"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateID    = errors.New("duplicate id")
	ErrUnknownCompany = errors.New("unknown company")
	ErrUnknownProject = errors.New("unknown project")
	ErrInvalidValue   = errors.New("invalid value")
)

// Store is the read side used by the dashboard plus the few writes it makes.
// Lookups return nil (not an error) when nothing matches and list queries
// return an empty slice; errors are reserved for storage failures.
type Store interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListCompanies(ctx context.Context) ([]model.Company, error)
	GetCompany(ctx context.Context, id string) (*model.Company, error)
	ListMilestonesByProject(ctx context.Context, projectID string) ([]model.Milestone, error)
	ListFinancialMetricsByProject(ctx context.Context, projectID string) ([]model.FinancialMetric, error)

	// UpdateProjectMatrix returns ErrNotFound for an unknown project.
	UpdateProjectMatrix(ctx context.Context, projectID string, matrix model.RealizationMatrix, at time.Time) error

	// ListActivitiesByProject returns the feed newest first.
	ListActivitiesByProject(ctx context.Context, projectID string) ([]model.Activity, error)
	InsertActivity(ctx context.Context, a model.Activity) error
}

// Writer loads entities. Implementations validate references at insert time.
type Writer interface {
	InsertCompany(ctx context.Context, c model.Company) error
	InsertProject(ctx context.Context, p model.Project) error
	InsertMilestone(ctx context.Context, m model.Milestone) error
	InsertFinancialMetric(ctx context.Context, f model.FinancialMetric) error
}

func observe(op, backend string, start time.Time) {
	metrics.RecordStoreQuery(op, backend, time.Since(start))
}
