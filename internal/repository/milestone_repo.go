package repository

import (
	"context"

	"gestorial/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type MilestoneRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMilestoneRepository(db *pgxpool.Pool, logger *zap.Logger) *MilestoneRepository {
	return &MilestoneRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MilestoneRepository) Insert(ctx context.Context, m model.Milestone) error {
	r.logger.Debug("Inserting milestone",
		zap.String("id", m.ID),
		zap.String("project_id", m.ProjectID),
		zap.String("status", string(m.Status)),
	)

	assigned := m.AssignedTo
	if assigned == nil {
		assigned = []string{}
	}

	query := `
        INSERT INTO milestones (id, project_id, title, description, due_date, status,
                                assigned_to, progress, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.ProjectID,
		m.Title,
		m.Description,
		m.DueDate,
		string(m.Status),
		assigned,
		m.Progress,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert milestone", zap.String("id", m.ID), zap.Error(err))
		return mapInsertError("milestone", m.ID, err, ErrUnknownProject)
	}

	r.logger.Info("Milestone inserted successfully",
		zap.String("id", m.ID),
		zap.String("project_id", m.ProjectID),
	)
	return nil
}

func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID string) ([]model.Milestone, error) {
	r.logger.Debug("Listing milestones for project", zap.String("project_id", projectID))

	query := `
        SELECT id, project_id, title, description, due_date, status,
               assigned_to, progress, created_at, updated_at
        FROM milestones
        WHERE project_id = $1
        ORDER BY seq
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list milestones", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	milestones := []model.Milestone{}
	for rows.Next() {
		var (
			m      model.Milestone
			status string
		)
		if err := rows.Scan(
			&m.ID,
			&m.ProjectID,
			&m.Title,
			&m.Description,
			&m.DueDate,
			&status,
			&m.AssignedTo,
			&m.Progress,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan milestone", zap.Error(err))
			return nil, err
		}
		m.Status = model.MilestoneStatus(status)
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate milestones", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Listed milestones",
		zap.String("project_id", projectID),
		zap.Int("count", len(milestones)),
	)
	return milestones, nil
}
