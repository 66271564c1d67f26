package repository

import (
	"context"

	"gestorial/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CompanyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCompanyRepository(db *pgxpool.Pool, logger *zap.Logger) *CompanyRepository {
	return &CompanyRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CompanyRepository) Insert(ctx context.Context, c model.Company) error {
	r.logger.Debug("Inserting company", zap.String("id", c.ID), zap.String("name", c.Name))

	query := `
        INSERT INTO companies (id, name, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert company", zap.String("id", c.ID), zap.Error(err))
		return mapInsertError("company", c.ID, err, ErrInvalidValue)
	}

	r.logger.Info("Company inserted successfully", zap.String("id", c.ID))
	return nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]model.Company, error) {
	r.logger.Debug("Listing companies")

	query := `
        SELECT id, name, description, created_at, updated_at
        FROM companies
        ORDER BY seq
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list companies", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			r.logger.Error("Failed to scan company", zap.Error(err))
			return nil, err
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate companies", zap.Error(err))
		return nil, err
	}

	r.logger.Debug("Listed companies", zap.Int("count", len(companies)))
	return companies, nil
}

// FindByID returns nil when no company has the id.
func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*model.Company, error) {
	r.logger.Debug("Finding company by ID", zap.String("id", id))

	query := `
        SELECT id, name, description, created_at, updated_at
        FROM companies
        WHERE id = $1
    `
	var c model.Company
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if isNoRows(err) {
		r.logger.Debug("Company not found", zap.String("id", id))
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find company", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return &c, nil
}
