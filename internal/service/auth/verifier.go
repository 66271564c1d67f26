package auth

import (
	"context"
	"errors"
	"fmt"

	"gestorial/internal/model"
	"gestorial/pkg/circuitbreaker"
	"gestorial/pkg/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAuthUnavailable    = errors.New("authentication service unavailable")
)

// CredentialVerifier checks an email/password pair. A wrong pair yields
// ErrInvalidCredentials; any other error means the check could not be made.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*model.User, error)
}

// FixtureVerifier is the demo credential table: a fixed set of accounts that
// all share one password. It must not be used outside demos.
type FixtureVerifier struct {
	users map[string]model.User
	hash  string
}

func NewFixtureVerifier(users []model.User, sharedPassword string) (*FixtureVerifier, error) {
	if sharedPassword == "" {
		return nil, errors.New("fixture verifier: empty shared password")
	}
	hash, err := util.HashPassword(sharedPassword)
	if err != nil {
		return nil, fmt.Errorf("fixture verifier: %w", err)
	}
	byEmail := make(map[string]model.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u.Clone()
	}
	return &FixtureVerifier{users: byEmail, hash: hash}, nil
}

func (v *FixtureVerifier) Verify(ctx context.Context, email, password string) (*model.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u, ok := v.users[email]
	// compare even for unknown emails so both failures take the same time
	match := util.CheckPassword(password, v.hash)
	if !ok || !match {
		return nil, ErrInvalidCredentials
	}
	out := u.Clone()
	return &out, nil
}

// CredentialFinder looks up a stored credential by exact email, nil when absent.
type CredentialFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Credential, error)
}

// StoreVerifier checks per-user bcrypt hashes.
type StoreVerifier struct {
	finder CredentialFinder
}

func NewStoreVerifier(finder CredentialFinder) *StoreVerifier {
	return &StoreVerifier{finder: finder}
}

func (v *StoreVerifier) Verify(ctx context.Context, email, password string) (*model.User, error) {
	cred, err := v.finder.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup credential: %w", err)
	}
	if cred == nil || !util.CheckPassword(password, cred.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	u := cred.User.Clone()
	return &u, nil
}

// BreakerVerifier stops calling next after repeated transport failures.
// Wrong credentials and caller cancellation do not count as failures.
type BreakerVerifier struct {
	next CredentialVerifier
	cb   *circuitbreaker.CircuitBreaker
}

func NewBreakerVerifier(next CredentialVerifier, cfg circuitbreaker.Config, opts ...circuitbreaker.Option) *BreakerVerifier {
	opts = append([]circuitbreaker.Option{circuitbreaker.WithFailureClassifier(isTransportFailure)}, opts...)
	return &BreakerVerifier{next: next, cb: circuitbreaker.New(cfg, opts...)}
}

func (v *BreakerVerifier) Verify(ctx context.Context, email, password string) (*model.User, error) {
	var user *model.User
	err := v.cb.Execute(func() error {
		u, err := v.next.Verify(ctx, email, password)
		user = u
		return err
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return nil, fmt.Errorf("%w: %w", ErrAuthUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// State exposes the breaker state for health reporting.
func (v *BreakerVerifier) State() circuitbreaker.State {
	return v.cb.State()
}

func isTransportFailure(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrInvalidCredentials) &&
		!errors.Is(err, context.Canceled)
}
