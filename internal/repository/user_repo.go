package repository

import (
	"context"

	"gestorial/internal/model"
	"gestorial/pkg/rbac"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a user with an already hashed password.
func (r *UserRepository) Insert(ctx context.Context, c model.Credential) error {
	u := c.User
	r.logger.Debug("Inserting user", zap.String("id", u.ID), zap.String("role", string(u.Role)))

	if err := validateUser(u); err != nil {
		return err
	}

	query := `
        INSERT INTO users (id, name, email, password_hash, role, company_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.db.Exec(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		c.PasswordHash,
		string(u.Role),
		u.CompanyID,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert user", zap.String("id", u.ID), zap.Error(err))
		return mapInsertError("user", u.ID, err, ErrUnknownCompany)
	}

	r.logger.Info("User inserted successfully", zap.String("id", u.ID))
	return nil
}

// FindByEmail matches the email exactly. It returns nil when no user has it.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.Credential, error) {
	r.logger.Debug("Finding user by email")

	query := `
        SELECT id, name, email, password_hash, role, company_id, created_at, updated_at
        FROM users
        WHERE email = $1
    `
	var (
		c    model.Credential
		role string
	)
	err := r.db.QueryRow(ctx, query, email).Scan(
		&c.User.ID,
		&c.User.Name,
		&c.User.Email,
		&c.PasswordHash,
		&role,
		&c.User.CompanyID,
		&c.User.CreatedAt,
		&c.User.UpdatedAt,
	)
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to find user by email", zap.Error(err))
		return nil, err
	}

	parsed, err := rbac.ParseRole(role)
	if err != nil {
		r.logger.Error("Stored user has unknown role",
			zap.String("id", c.User.ID),
			zap.String("role", role),
		)
		return nil, err
	}
	c.User.Role = parsed
	return &c, nil
}
