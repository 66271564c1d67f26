// Command seed creates the PostgreSQL schema and loads the demo portfolio
// and accounts into it.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gestorial/internal/config"
	"gestorial/internal/model"
	"gestorial/internal/repository"
	pkgconfig "gestorial/pkg/config"
	"gestorial/pkg/db"
	"gestorial/pkg/logger"
	"gestorial/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load(pkgconfig.GetConfigEnv(), pkgconfig.GetEnv("CONFIG_DIR", "config"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewConnection(ctx, cfg.DB, logger)
	if err != nil {
		logger.Fatal("DB initialization failed", zap.Error(err))
	}
	defer pool.Close()

	if err := repository.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("Schema migration failed", zap.Error(err))
	}

	store := repository.NewPostgresStore(pool, logger)

	missing, err := repository.DemoFixtures().Missing(ctx, store)
	if err != nil {
		logger.Fatal("Failed to inspect demo portfolio", zap.Error(err))
	}
	if missing.Len() == 0 {
		logger.Info("Demo portfolio already present, skipping")
	} else {
		if err := missing.Load(ctx, store); err != nil {
			logger.Fatal("Failed to load demo portfolio", zap.Error(err))
		}
		logger.Info("Demo portfolio loaded",
			zap.Int("companies", len(missing.Companies)),
			zap.Int("projects", len(missing.Projects)),
			zap.Int("milestones", len(missing.Milestones)),
			zap.Int("metrics", len(missing.Metrics)),
		)
	}

	for _, u := range repository.DemoUsers() {
		if err := seedUser(ctx, store.Users, u); err != nil {
			logger.Fatal("Failed to seed user", zap.String("email", u.Email), zap.Error(err))
		}
	}
}

// seedUser stores u with the password from SEED_PASSWORD_<id>, or a random
// one printed once to stdout. Existing users are left alone.
func seedUser(ctx context.Context, users *repository.UserRepository, u model.User) error {
	existing, err := users.FindByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	envKey := "SEED_PASSWORD_" + u.ID
	password := os.Getenv(envKey)
	generated := password == ""
	if generated {
		password = uuid.NewString()
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}
	if err := users.Insert(ctx, model.Credential{User: u, PasswordHash: hash}); err != nil {
		return err
	}

	if generated {
		fmt.Printf("%s\t%s\t(set %s to choose it)\n", u.Email, password, envKey)
	}
	return nil
}
