package portfolio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contracts "gestorial/contracts/mq"
	"gestorial/internal/model"
	"gestorial/pkg/rbac"

	"go.uber.org/zap"
)

var ErrEmptyComment = errors.New("comment is empty")

// canSee is true for internal roles and for clients of the owning company.
func canSee(u model.User, p model.Project) bool {
	if u.Role.Internal() {
		return true
	}
	return u.CompanyID != nil && *u.CompanyID == p.CompanyID
}

// AddComment appends a comment by author to the project's activity feed.
func (s *Service) AddComment(ctx context.Context, author *model.User, projectID, content string) (*model.Activity, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}

	p, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}

	if author == nil || !rbac.HasPermission(author.Role, rbac.PermissionComment) || !canSee(*author, *p) {
		denied := &rbac.PermissionDeniedError{Permission: rbac.PermissionComment, Resource: "project:" + projectID}
		if author != nil {
			denied.UserID = author.ID
		}
		return nil, denied
	}

	a := model.Activity{
		ID:        s.newID(),
		ProjectID: projectID,
		UserID:    author.ID,
		Author:    author.Name,
		Type:      model.ActivityComment,
		Content:   content,
		CreatedAt: s.now(),
	}
	if err := s.store.InsertActivity(ctx, a); err != nil {
		s.log(ctx).Error("Failed to store comment", zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	s.log(ctx).Info("Comment added",
		zap.String("project_id", projectID),
		zap.String("activity_id", a.ID),
		zap.String("user_id", author.ID),
	)
	s.publish(ctx, contracts.RoutingKeyCommentAdded, contracts.CommentAddedPayload{
		ActivityID: a.ID,
		ProjectID:  projectID,
		UserID:     author.ID,
		Author:     author.Name,
		At:         a.CreatedAt,
	})
	return &a, nil
}

// ListActivity returns the project's feed newest first.
func (s *Service) ListActivity(ctx context.Context, projectID string) ([]model.Activity, error) {
	return s.store.ListActivitiesByProject(ctx, projectID)
}
