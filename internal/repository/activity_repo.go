package repository

import (
	"context"

	"gestorial/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ActivityRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewActivityRepository(db *pgxpool.Pool, logger *zap.Logger) *ActivityRepository {
	return &ActivityRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ActivityRepository) Insert(ctx context.Context, a model.Activity) error {
	r.logger.Debug("Inserting activity",
		zap.String("id", a.ID),
		zap.String("project_id", a.ProjectID),
		zap.String("type", string(a.Type)),
	)

	query := `
        INSERT INTO activities (id, project_id, user_id, author, type, content, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.ProjectID,
		a.UserID,
		a.Author,
		string(a.Type),
		a.Content,
		a.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert activity", zap.String("id", a.ID), zap.Error(err))
		return mapInsertError("activity", a.ID, err, ErrUnknownProject)
	}

	r.logger.Info("Activity inserted successfully",
		zap.String("id", a.ID),
		zap.String("project_id", a.ProjectID),
	)
	return nil
}

// ListByProject returns the feed newest first.
func (r *ActivityRepository) ListByProject(ctx context.Context, projectID string) ([]model.Activity, error) {
	r.logger.Debug("Listing activities for project", zap.String("project_id", projectID))

	query := `
        SELECT id, project_id, user_id, author, type, content, created_at
        FROM activities
        WHERE project_id = $1
        ORDER BY created_at DESC, seq DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to list activities", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		var (
			a   model.Activity
			typ string
		)
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.UserID, &a.Author, &typ, &a.Content, &a.CreatedAt); err != nil {
			r.logger.Error("Failed to scan activity", zap.Error(err))
			return nil, err
		}
		a.Type = model.ActivityType(typ)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate activities", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Listed activities",
		zap.String("project_id", projectID),
		zap.Int("count", len(activities)),
	)
	return activities, nil
}
