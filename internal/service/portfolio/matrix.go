package portfolio

import (
	"context"
	"errors"
	"fmt"

	contracts "gestorial/contracts/mq"
	"gestorial/internal/model"
	"gestorial/internal/repository"
	"gestorial/pkg/rbac"

	"go.uber.org/zap"
)

var ErrProjectNotFound = errors.New("project not found")

// Authorizer answers whether the caller may edit a project of the given company.
// auth.Session satisfies it.
type Authorizer interface {
	CanEditProject(ctx context.Context, projectCompanyID string) bool
}

// identified is implemented by authorizers that know who the caller is.
type identified interface {
	CurrentIdentity(ctx context.Context) *model.User
}

func callerID(ctx context.Context, authz Authorizer) string {
	if id, ok := authz.(identified); ok {
		if u := id.CurrentIdentity(ctx); u != nil {
			return u.ID
		}
	}
	return ""
}

// EditMatrix applies edits, in order, to the project's realization matrix and
// stores the result. With no edits the project is returned unchanged. A nil
// authz, or a nil *auth.Session, is denied.
func (s *Service) EditMatrix(ctx context.Context, authz Authorizer, projectID string, edits ...model.MatrixEdit) (*model.Project, error) {
	log := s.log(ctx).With(zap.String("project_id", projectID))

	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	userID := callerID(ctx, authz)
	if authz == nil || !authz.CanEditProject(ctx, p.CompanyID) {
		log.Info("Matrix edit denied", zap.String("user_id", userID))
		return nil, &rbac.PermissionDeniedError{
			UserID:     userID,
			Permission: rbac.PermissionEditMatrix,
			Resource:   "project:" + projectID,
		}
	}

	matrix := p.Matrix.Clone()
	fields := make([]string, 0, len(edits))
	for _, e := range edits {
		// zero MatrixEdit values edit nothing
		if e.Field() == "" {
			continue
		}
		e.Apply(&matrix)
		fields = append(fields, e.Field())
	}
	if len(fields) == 0 {
		return p, nil
	}

	at := s.now()
	if err := s.store.UpdateProjectMatrix(ctx, projectID, matrix, at); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
		}
		log.Error("Failed to store matrix", zap.Error(err))
		return nil, err
	}

	p.Matrix = matrix
	p.UpdatedAt = at
	log.Info("Matrix updated", zap.String("user_id", userID), zap.Strings("fields", fields))

	s.publish(ctx, contracts.RoutingKeyMatrixUpdated, contracts.MatrixUpdatedPayload{
		ProjectID: projectID,
		CompanyID: p.CompanyID,
		UserID:    userID,
		Fields:    fields,
		At:        at,
	})
	return p, nil
}
