// Package app wires the portfolio core from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"gestorial/internal/config"
	"gestorial/internal/repository"
	"gestorial/internal/service/auth"
	"gestorial/internal/service/portfolio"
	"gestorial/internal/sessionstore"
	"gestorial/pkg/circuitbreaker"
	"gestorial/pkg/db"
	"gestorial/pkg/logger"
	"gestorial/pkg/mq"
	redispkg "gestorial/pkg/redis"
	"gestorial/pkg/token"

	"go.uber.org/zap"
)

type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Store        repository.Store
	Portfolio    *portfolio.Service
	Verifier     auth.CredentialVerifier
	SessionStore sessionstore.Store
	Issuer       *token.Issuer
	Publisher    mq.EventPublisher

	closers []func()
}

// New builds every component cfg selects. On error, whatever was already
// opened is closed.
func New(ctx context.Context, cfg *config.Config) (a *App, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	a = &App{Config: cfg, Logger: log}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	var users auth.CredentialFinder
	switch cfg.Store.Backend {
	case config.StorePostgres:
		pool, err := db.NewConnection(ctx, cfg.DB, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		pg := repository.NewPostgresStore(pool, log)
		a.Store = pg
		users = pg.Users
	default:
		a.Store = repository.NewFixtureStore()
	}

	switch cfg.Auth.Verifier {
	case config.VerifierDatabase:
		if users == nil {
			return nil, errors.New("database verifier needs the postgres store")
		}
		a.Verifier = auth.NewBreakerVerifier(auth.NewStoreVerifier(users), circuitbreaker.Config{
			FailureThreshold: cfg.Auth.BreakerFailures,
			Timeout:          cfg.Auth.BreakerTimeout,
		})
	default:
		log.Warn("Using the demo credential table with a shared password")
		a.Verifier, err = auth.NewFixtureVerifier(repository.DemoUsers(), cfg.Auth.DemoPassword)
		if err != nil {
			return nil, err
		}
	}

	switch cfg.Session.Backend {
	case config.SessionFile:
		a.SessionStore, err = sessionstore.NewFileStore(cfg.Session.Dir)
		if err != nil {
			return nil, err
		}
	case config.SessionRedis:
		rdb := redispkg.NewRedisClient(cfg.Redis)
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		if err := redispkg.Ping(ctx, rdb); err != nil {
			return nil, err
		}
		a.SessionStore = sessionstore.NewRedisStore(rdb, cfg.Session.TTL)
	default:
		a.SessionStore = sessionstore.NewMemoryStore()
	}

	a.Issuer, err = token.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return nil, err
	}

	a.Publisher = mq.NopPublisher{}
	if cfg.MQ.URL != "" {
		pub, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			// events are best effort; the core works without a broker
			log.Warn("Event publishing disabled", zap.Error(err))
		} else {
			a.closers = append(a.closers, pub.Close)
			a.Publisher = pub
		}
	}

	a.Portfolio = portfolio.NewService(a.Store,
		portfolio.WithPublisher(a.Publisher),
		portfolio.WithLogger(log.Named("portfolio")),
	)

	log.Info("Gestorial core ready",
		zap.String("store", cfg.Store.Backend),
		zap.String("verifier", cfg.Auth.Verifier),
		zap.String("session", cfg.Session.Backend),
	)
	return a, nil
}

// NewSession starts an anonymous session persisted under key. An empty key
// uses the default single-client key.
func (a *App) NewSession(key string) *auth.Session {
	if key == "" {
		key = sessionstore.DefaultKey
	}
	return auth.NewSession(a.Verifier, a.SessionStore,
		auth.WithKey(key),
		auth.WithIssuer(a.Issuer),
		auth.WithPublisher(a.Publisher),
		auth.WithLogger(a.Logger.Named("auth")),
		auth.WithLoginTimeout(a.Config.Auth.LoginTimeout),
	)
}

// Close releases connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.Logger.Sync()
}
