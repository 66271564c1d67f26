// Package auth holds the per-client session: login, logout, identity
// rehydration and the authorization questions asked of the current identity.
package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	contracts "gestorial/contracts/mq"
	"gestorial/internal/model"
	"gestorial/internal/sessionstore"
	"gestorial/pkg/logger"
	"gestorial/pkg/metrics"
	"gestorial/pkg/mq"
	"gestorial/pkg/rbac"
	"gestorial/pkg/token"

	"go.uber.org/zap"
)

// Session is one client's identity. It starts anonymous; Login and Logout are
// the only calls that change it or touch the persisted record.
type Session struct {
	verifier     CredentialVerifier
	store        sessionstore.Store
	key          string
	issuer       *token.Issuer
	publisher    mq.EventPublisher
	logger       *zap.Logger
	loginTimeout time.Duration
	now          func() time.Time

	mu      sync.RWMutex
	current *model.User
	// bumped by Login and Logout; rehydration only applies while unchanged
	gen uint64
}

type Option func(*Session)

// WithKey sets the persistence key, for running several sessions against one store.
func WithKey(key string) Option {
	return func(s *Session) { s.key = key }
}

// WithIssuer signs persisted records. Without it records carry no token and
// rehydration trusts the store.
func WithIssuer(i *token.Issuer) Option {
	return func(s *Session) { s.issuer = i }
}

func WithPublisher(p mq.EventPublisher) Option {
	return func(s *Session) { s.publisher = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithLoginTimeout bounds the credential check. Zero means no bound.
func WithLoginTimeout(d time.Duration) Option {
	return func(s *Session) { s.loginTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func NewSession(verifier CredentialVerifier, store sessionstore.Store, opts ...Option) *Session {
	s := &Session{
		verifier:  verifier,
		store:     store,
		key:       sessionstore.DefaultKey,
		publisher: mq.NopPublisher{},
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the credentials and, on success, caches and persists the
// identity. Wrong credentials return ErrInvalidCredentials and leave the
// session as it was; a failed check returns an error wrapping ErrAuthUnavailable.
func (s *Session) Login(ctx context.Context, email, password string) (*model.User, error) {
	log := logger.WithTrace(ctx, s.logger)

	if s.loginTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.loginTimeout)
		defer cancel()
	}

	user, err := s.verifier.Verify(ctx, email, password)
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		metrics.IncrementLogin("invalid")
		log.Info("Login rejected")
		return nil, ErrInvalidCredentials
	case err != nil:
		metrics.IncrementLogin("unavailable")
		log.Warn("Login could not be verified", zap.Error(err))
		if errors.Is(err, ErrAuthUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAuthUnavailable, err)
	case user == nil:
		metrics.IncrementLogin("unavailable")
		return nil, fmt.Errorf("%w: verifier returned no identity", ErrAuthUnavailable)
	}

	rec := sessionstore.Record{
		Version: sessionstore.CurrentVersion,
		User:    user.Clone(),
		SavedAt: s.now(),
	}
	if s.issuer != nil {
		tok, err := s.issuer.Issue(subjectOf(*user))
		if err != nil {
			metrics.IncrementLogin("unavailable")
			return nil, fmt.Errorf("%w: issue token: %w", ErrAuthUnavailable, err)
		}
		rec.Token = tok
	}

	s.mu.Lock()
	s.current = ptrClone(*user)
	s.gen++
	s.mu.Unlock()

	// The identity stays usable in memory even if it could not be persisted.
	if err := s.persist(ctx, rec); err != nil {
		log.Warn("Failed to persist session", zap.String("user_id", user.ID), zap.Error(err))
	}

	metrics.IncrementLogin("success")
	log.Info("User logged in",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	s.publish(ctx, log, contracts.RoutingKeySessionLoggedIn, contracts.SessionLoggedInPayload{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		CompanyID: user.CompanyIDOrEmpty(),
		At:        rec.SavedAt,
	})

	out := user.Clone()
	return &out, nil
}

// Logout clears the in-memory and persisted identity. Calling it while
// anonymous is a no-op. The returned error only reports a failed delete of
// the persisted record; the in-memory identity is cleared regardless.
func (s *Session) Logout(ctx context.Context) error {
	log := logger.WithTrace(ctx, s.logger)

	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.gen++
	s.mu.Unlock()

	if err := s.store.Delete(ctx, s.key); err != nil {
		log.Warn("Failed to delete persisted session", zap.Error(err))
		return fmt.Errorf("delete session: %w", err)
	}

	if prev != nil {
		log.Info("User logged out", zap.String("user_id", prev.ID))
		s.publish(ctx, log, contracts.RoutingKeySessionLoggedOut, contracts.SessionLoggedOutPayload{
			UserID: prev.ID,
			At:     s.now(),
		})
	}
	return nil
}

// CurrentIdentity returns the cached identity or rehydrates it from the
// store. Every failure to rehydrate yields nil. A nil Session is anonymous.
func (s *Session) CurrentIdentity(ctx context.Context) *model.User {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	cur, gen := s.current, s.gen
	s.mu.RUnlock()
	if cur != nil {
		return ptrClone(*cur)
	}

	u := s.rehydrate(ctx, gen)

	s.mu.Lock()
	if s.gen == gen && s.current == nil && u != nil {
		s.current = u
	}
	cur = s.current
	s.mu.Unlock()
	if cur == nil {
		return nil
	}
	return ptrClone(*cur)
}

// HasMinimumRole is false while anonymous.
func (s *Session) HasMinimumRole(ctx context.Context, required rbac.Role) bool {
	u := s.CurrentIdentity(ctx)
	allowed := u != nil && rbac.AtLeast(u.Role, required)
	metrics.RecordDecision("minimum_role", allowed)
	return allowed
}

// CanEditProject applies the ownership rule to the current identity.
func (s *Session) CanEditProject(ctx context.Context, projectCompanyID string) bool {
	u := s.CurrentIdentity(ctx)
	allowed := u != nil && rbac.CanEditProject(u.Role, u.CompanyID, projectCompanyID)
	metrics.RecordDecision("edit_project", allowed)
	return allowed
}

func (s *Session) HasPermission(ctx context.Context, perm rbac.Permission) bool {
	u := s.CurrentIdentity(ctx)
	allowed := u != nil && rbac.HasPermission(u.Role, perm)
	metrics.RecordDecision("permission", allowed)
	return allowed
}

func (s *Session) persist(ctx context.Context, rec sessionstore.Record) error {
	data, err := sessionstore.Encode(rec)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, s.key, data)
}

func (s *Session) rehydrate(ctx context.Context, gen uint64) *model.User {
	log := logger.WithTrace(ctx, s.logger)

	data, err := s.store.Load(ctx, s.key)
	if errors.Is(err, sessionstore.ErrNotFound) {
		metrics.IncrementRehydration("missing")
		return nil
	}
	if err != nil {
		metrics.IncrementRehydration("unavailable")
		log.Warn("Session store unavailable", zap.Error(err))
		return nil
	}

	rec, err := sessionstore.Decode(data)
	if err != nil {
		metrics.IncrementRehydration("corrupt")
		log.Warn("Discarding unreadable session record", zap.Error(err))
		s.discard(ctx, log, gen)
		return nil
	}
	if rec.Version != sessionstore.CurrentVersion {
		metrics.IncrementRehydration("stale")
		log.Info("Discarding session record with old version", zap.Int("version", rec.Version))
		s.discard(ctx, log, gen)
		return nil
	}
	if s.issuer != nil {
		claims, err := s.issuer.Parse(rec.Token)
		if err != nil || !claims.Matches(subjectOf(rec.User)) {
			metrics.IncrementRehydration("invalid_token")
			log.Warn("Discarding session record with invalid token",
				zap.String("user_id", rec.User.ID),
				zap.Error(err),
			)
			s.discard(ctx, log, gen)
			return nil
		}
	}

	metrics.IncrementRehydration("restored")
	log.Debug("Session restored", zap.String("user_id", rec.User.ID))
	return ptrClone(rec.User)
}

// discard deletes the stored record unless a Login or Logout has happened
// since gen was read.
func (s *Session) discard(ctx context.Context, log *zap.Logger, gen uint64) {
	s.mu.RLock()
	changed := s.gen != gen
	s.mu.RUnlock()
	if changed {
		return
	}
	if err := s.store.Delete(ctx, s.key); err != nil {
		log.Warn("Failed to delete session record", zap.Error(err))
	}
}

func (s *Session) publish(ctx context.Context, log *zap.Logger, routingKey string, payload any) {
	if err := s.publisher.Publish(ctx, routingKey, payload); err != nil {
		log.Warn("Failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}

func subjectOf(u model.User) token.Subject {
	return token.Subject{
		UserID:    u.ID,
		Role:      string(u.Role),
		CompanyID: u.CompanyIDOrEmpty(),
	}
}

func ptrClone(u model.User) *model.User {
	cp := u.Clone()
	return &cp
}
