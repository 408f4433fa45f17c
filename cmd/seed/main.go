// Command seed fills the database with demo marketplace data.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/ruchelocale/marketplace-api/internal/config"
	postgresRepo "github.com/ruchelocale/marketplace-api/internal/domain/repository/postgres"
	"github.com/ruchelocale/marketplace-api/internal/infrastructure/database/postgres"
	"github.com/ruchelocale/marketplace-api/internal/infrastructure/security"
	"github.com/ruchelocale/marketplace-api/internal/seed"
	"github.com/ruchelocale/marketplace-api/internal/utils/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	if cfg.Database.MigrationsUp {
		if err := postgres.RunMigrations(cfg.Database, "migrations"); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
	}

	pool, err := postgres.NewDBPool(ctx, cfg.Database)
	if err != nil {
		zapLogger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	hasher, err := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		zapLogger.Fatal("password hasher failed", zap.Error(err))
	}

	// Demo data only makes sense on a clean slate.
	if _, err := pool.Exec(ctx, `
		TRUNCATE order_items, orders, products, shop_customizations, shop_themes,
		         shops, sessions, users, categories, locations CASCADE
	`); err != nil {
		zapLogger.Fatal("truncate failed", zap.Error(err))
	}

	seeder := seed.NewSeeder(
		postgresRepo.NewUserRepositoryPostgres(pool),
		postgresRepo.NewLocationRepositoryPostgres(pool),
		postgresRepo.NewCategoryRepositoryPostgres(pool),
		postgresRepo.NewShopRepositoryPostgres(pool),
		postgresRepo.NewProductRepositoryPostgres(pool),
		hasher,
		zapLogger,
	)

	if err := seeder.Run(ctx); err != nil {
		zapLogger.Fatal("seeding failed", zap.Error(err))
	}
}
