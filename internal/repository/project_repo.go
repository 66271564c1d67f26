package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gestorial/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		logger: logger,
	}
}

const projectColumns = `id, name, description, company_id, status, start_date, end_date,
        budget, current_spent, target_revenue, matrix, created_at, updated_at`

func (r *ProjectRepository) Insert(ctx context.Context, p model.Project) error {
	r.logger.Debug("Inserting project",
		zap.String("id", p.ID),
		zap.String("company_id", p.CompanyID),
		zap.String("status", string(p.Status)),
	)

	matrix, err := json.Marshal(p.Matrix)
	if err != nil {
		return fmt.Errorf("encode matrix for project %s: %w", p.ID, err)
	}

	query := `
        INSERT INTO projects (` + projectColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err = r.db.Exec(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.CompanyID,
		string(p.Status),
		p.StartDate,
		p.EndDate,
		p.Budget,
		p.CurrentSpent,
		p.TargetRevenue,
		matrix,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert project", zap.String("id", p.ID), zap.Error(err))
		return mapInsertError("project", p.ID, err, ErrUnknownCompany)
	}

	r.logger.Info("Project inserted successfully",
		zap.String("id", p.ID),
		zap.String("company_id", p.CompanyID),
	)
	return nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	r.logger.Debug("Listing projects")

	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY seq`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			r.logger.Error("Failed to scan project", zap.Error(err))
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate projects", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Listed projects", zap.Int("count", len(projects)))
	return projects, nil
}

// FindByID returns nil when no project has the id.
func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	r.logger.Debug("Finding project by ID", zap.String("id", id))

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(r.db.QueryRow(ctx, query, id))
	if isNoRows(err) {
		r.logger.Debug("Project not found", zap.String("id", id))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find project", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// UpdateMatrix replaces the matrix and bumps updated_at. It returns
// ErrNotFound when the project does not exist.
func (r *ProjectRepository) UpdateMatrix(ctx context.Context, id string, matrix model.RealizationMatrix, at time.Time) error {
	r.logger.Debug("Updating project matrix", zap.String("id", id))

	raw, err := json.Marshal(matrix)
	if err != nil {
		return fmt.Errorf("encode matrix for project %s: %w", id, err)
	}

	query := `
        UPDATE projects
        SET matrix = $1, updated_at = $2
        WHERE id = $3
    `
	tag, err := r.db.Exec(ctx, query, raw, at, id)
	if err != nil {
		r.logger.Error("Failed to update project matrix", zap.String("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("Project matrix update matched no rows", zap.String("id", id))
		return fmt.Errorf("project %s: %w", id, ErrNotFound)
	}

	r.logger.Info("Project matrix updated", zap.String("id", id))
	return nil
}

func scanProject(row pgx.Row) (model.Project, error) {
	var (
		p      model.Project
		status string
		matrix []byte
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.CompanyID,
		&status,
		&p.StartDate,
		&p.EndDate,
		&p.Budget,
		&p.CurrentSpent,
		&p.TargetRevenue,
		&matrix,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}
	p.Status = model.ProjectStatus(status)
	if err := json.Unmarshal(matrix, &p.Matrix); err != nil {
		return model.Project{}, fmt.Errorf("decode matrix for project %s: %w", p.ID, err)
	}
	return p, nil
}
