package config

import (
	"fmt"
	"strings"
	"time"

	"gestorial/pkg/config"
)

const (
	StoreFixture  = "fixture"
	StorePostgres = "postgres"

	VerifierFixture  = "fixture"
	VerifierDatabase = "database"

	SessionMemory = "memory"
	SessionFile   = "file"
	SessionRedis  = "redis"
)

type Config struct {
	Log     config.LogConfig     `yaml:"log"`
	Store   config.StoreConfig   `yaml:"store"`
	DB      config.DBConfig      `yaml:"db"`
	Redis   config.RedisConfig   `yaml:"redis"`
	MQ      config.MQConfig      `yaml:"mq"`
	JWT     config.JWTConfig     `yaml:"jwt"`
	Auth    config.AuthConfig    `yaml:"auth"`
	Session config.SessionConfig `yaml:"session"`
}

// Default is a self-contained setup: demo fixtures, demo credentials and
// in-memory sessions.
func Default() *Config {
	return &Config{
		Log:   config.LogConfig{Level: "info"},
		Store: config.StoreConfig{Backend: StoreFixture},
		JWT:   config.JWTConfig{Secret: "gestorial-demo-secret", TTL: 24 * time.Hour},
		Auth: config.AuthConfig{
			Verifier:        VerifierFixture,
			LoginTimeout:    5 * time.Second,
			DemoPassword:    "demo123",
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Session: config.SessionConfig{Backend: SessionMemory},
	}
}

// Load reads <dir>/base.yaml and <dir>/<env>.yaml, then applies environment
// overrides and validates the result.
func Load(env, dir string) (*Config, error) {
	raw, err := config.LoadConfig(env, dir)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := config.Decode(raw, cfg); err != nil {
		return nil, err
	}

	config.OverrideLogFromEnv(&cfg.Log)
	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideJWTFromEnv(&cfg.JWT)
	config.OverrideSessionFromEnv(&cfg.Session)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func unresolved(s string) bool {
	return strings.Contains(s, "${")
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case StoreFixture, StorePostgres:
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}

	switch c.Auth.Verifier {
	case VerifierFixture:
		if c.Auth.DemoPassword == "" {
			return fmt.Errorf("auth.demo_password is required with the fixture verifier")
		}
	case VerifierDatabase:
		if c.Store.Backend != StorePostgres {
			return fmt.Errorf("auth.verifier %q needs store.backend %q", VerifierDatabase, StorePostgres)
		}
	default:
		return fmt.Errorf("auth.verifier: unknown verifier %q", c.Auth.Verifier)
	}

	switch c.Session.Backend {
	case SessionMemory, SessionRedis:
	case SessionFile:
		if c.Session.Dir == "" {
			return fmt.Errorf("session.dir is required with the file backend")
		}
	default:
		return fmt.Errorf("session.backend: unknown backend %q", c.Session.Backend)
	}

	if c.JWT.Secret == "" || unresolved(c.JWT.Secret) {
		return fmt.Errorf("jwt.secret is not set")
	}
	if c.Store.Backend == StorePostgres && unresolved(c.DB.Password) {
		return fmt.Errorf("db.password placeholder was not resolved")
	}
	if unresolved(c.MQ.URL) {
		return fmt.Errorf("mq.url placeholder was not resolved")
	}
	return nil
}
