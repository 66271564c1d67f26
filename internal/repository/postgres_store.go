package repository

import (
	"context"
	"time"

	"gestorial/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const backendPostgres = "postgres"

// PostgresStore serves Store and Writer from the per-entity repositories.
type PostgresStore struct {
	Companies  *CompanyRepository
	Projects   *ProjectRepository
	Milestones *MilestoneRepository
	Metrics    *FinancialMetricRepository
	Activities *ActivityRepository
	Users      *UserRepository
}

var (
	_ Store  = (*PostgresStore)(nil)
	_ Writer = (*PostgresStore)(nil)
)

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		Companies:  NewCompanyRepository(db, logger),
		Projects:   NewProjectRepository(db, logger),
		Milestones: NewMilestoneRepository(db, logger),
		Metrics:    NewFinancialMetricRepository(db, logger),
		Activities: NewActivityRepository(db, logger),
		Users:      NewUserRepository(db, logger),
	}
}

func (s *PostgresStore) ListProjects(ctx context.Context) ([]model.Project, error) {
	defer observe("list_projects", backendPostgres, time.Now())
	return s.Projects.List(ctx)
}

func (s *PostgresStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	defer observe("get_project", backendPostgres, time.Now())
	return s.Projects.FindByID(ctx, id)
}

func (s *PostgresStore) ListCompanies(ctx context.Context) ([]model.Company, error) {
	defer observe("list_companies", backendPostgres, time.Now())
	return s.Companies.List(ctx)
}

func (s *PostgresStore) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	defer observe("get_company", backendPostgres, time.Now())
	return s.Companies.FindByID(ctx, id)
}

func (s *PostgresStore) ListMilestonesByProject(ctx context.Context, projectID string) ([]model.Milestone, error) {
	defer observe("list_milestones", backendPostgres, time.Now())
	return s.Milestones.ListByProject(ctx, projectID)
}

func (s *PostgresStore) ListFinancialMetricsByProject(ctx context.Context, projectID string) ([]model.FinancialMetric, error) {
	defer observe("list_financial_metrics", backendPostgres, time.Now())
	return s.Metrics.ListByProject(ctx, projectID)
}

func (s *PostgresStore) UpdateProjectMatrix(ctx context.Context, projectID string, matrix model.RealizationMatrix, at time.Time) error {
	defer observe("update_matrix", backendPostgres, time.Now())
	return s.Projects.UpdateMatrix(ctx, projectID, matrix, at)
}

func (s *PostgresStore) ListActivitiesByProject(ctx context.Context, projectID string) ([]model.Activity, error) {
	defer observe("list_activities", backendPostgres, time.Now())
	return s.Activities.ListByProject(ctx, projectID)
}

func (s *PostgresStore) InsertActivity(ctx context.Context, a model.Activity) error {
	if err := validateActivity(a); err != nil {
		return err
	}
	return s.Activities.Insert(ctx, a)
}

func (s *PostgresStore) InsertCompany(ctx context.Context, c model.Company) error {
	if err := validateCompany(c); err != nil {
		return err
	}
	return s.Companies.Insert(ctx, c)
}

func (s *PostgresStore) InsertProject(ctx context.Context, p model.Project) error {
	if err := validateProject(p); err != nil {
		return err
	}
	return s.Projects.Insert(ctx, p)
}

func (s *PostgresStore) InsertMilestone(ctx context.Context, m model.Milestone) error {
	if err := validateMilestone(m); err != nil {
		return err
	}
	return s.Milestones.Insert(ctx, m)
}

func (s *PostgresStore) InsertFinancialMetric(ctx context.Context, f model.FinancialMetric) error {
	if err := validateFinancialMetric(f); err != nil {
		return err
	}
	return s.Metrics.Insert(ctx, f)
}
