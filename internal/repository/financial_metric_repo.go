package repository

import (
	"context"

	"gestorial/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type FinancialMetricRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFinancialMetricRepository(db *pgxpool.Pool, logger *zap.Logger) *FinancialMetricRepository {
	return &FinancialMetricRepository{
		db:     db,
		logger: logger,
	}
}

func (r *FinancialMetricRepository) Insert(ctx context.Context, f model.FinancialMetric) error {
	r.logger.Debug("Inserting financial metric",
		zap.String("id", f.ID),
		zap.String("project_id", f.ProjectID),
		zap.String("category", string(f.Category)),
	)

	query := `
        INSERT INTO financial_metrics (id, project_id, category, name, current_value,
                                       target_value, unit, period, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, query,
		f.ID,
		f.ProjectID,
		string(f.Category),
		f.Name,
		f.CurrentValue,
		f.TargetValue,
		string(f.Unit),
		string(f.Period),
		f.CreatedAt,
		f.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert financial metric", zap.String("id", f.ID), zap.Error(err))
		return mapInsertError("financial metric", f.ID, err, ErrUnknownProject)
	}

	r.logger.Info("Financial metric inserted successfully",
		zap.String("id", f.ID),
		zap.String("project_id", f.ProjectID),
	)
	return nil
}

func (r *FinancialMetricRepository) ListByProject(ctx context.Context, projectID string) ([]model.FinancialMetric, error) {
	r.logger.Debug("Listing financial metrics for project", zap.String("project_id", projectID))

	query := `
        SELECT id, project_id, category, name, current_value, target_value,
               unit, period, created_at, updated_at
        FROM financial_metrics
        WHERE project_id = $1
        ORDER BY seq
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list financial metrics", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	metrics := []model.FinancialMetric{}
	for rows.Next() {
		var (
			f                      model.FinancialMetric
			category, unit, period string
		)
		if err := rows.Scan(
			&f.ID,
			&f.ProjectID,
			&category,
			&f.Name,
			&f.CurrentValue,
			&f.TargetValue,
			&unit,
			&period,
			&f.CreatedAt,
			&f.UpdatedAt,
		); err != nil {
			r.logger.Error("Failed to scan financial metric", zap.Error(err))
			return nil, err
		}
		f.Category = model.MetricCategory(category)
		f.Unit = model.MetricUnit(unit)
		f.Period = model.MetricPeriod(period)
		metrics = append(metrics, f)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate financial metrics", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Listed financial metrics",
		zap.String("project_id", projectID),
		zap.Int("count", len(metrics)),
	)
	return metrics, nil
}
