// Package portfolio answers the dashboard's questions about companies,
// projects, milestones and financial metrics, and applies the few edits the
// dashboard makes.
package portfolio

import (
	"context"
	"time"

	"gestorial/internal/model"
	"gestorial/internal/repository"
	"gestorial/pkg/logger"
	"gestorial/pkg/mq"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	store     repository.Store
	publisher mq.EventPublisher
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

type Option func(*Service)

func WithPublisher(p mq.EventPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock sets the time used for overdue checks and edit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func NewService(store repository.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		publisher: mq.NopPublisher{},
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.store.ListProjects(ctx)
}

// GetProject returns nil when the id matches nothing.
func (s *Service) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return s.store.GetProject(ctx, id)
}

func (s *Service) ListCompanies(ctx context.Context) ([]model.Company, error) {
	return s.store.ListCompanies(ctx)
}

// GetCompany returns nil when the id matches nothing.
func (s *Service) GetCompany(ctx context.Context, id string) (*model.Company, error) {
	return s.store.GetCompany(ctx, id)
}

func (s *Service) ListMilestonesForProject(ctx context.Context, projectID string) ([]model.Milestone, error) {
	return s.store.ListMilestonesByProject(ctx, projectID)
}

func (s *Service) ListFinancialMetricsForProject(ctx context.Context, projectID string) ([]model.FinancialMetric, error) {
	return s.store.ListFinancialMetricsByProject(ctx, projectID)
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.WithTrace(ctx, s.logger)
}

func (s *Service) publish(ctx context.Context, routingKey string, payload any) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		s.log(ctx).Warn("Failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}
