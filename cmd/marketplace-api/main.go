package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/ruchelocale/marketplace-api/internal/config"
	postgresRepo "github.com/ruchelocale/marketplace-api/internal/domain/repository/postgres"
	redisRepo "github.com/ruchelocale/marketplace-api/internal/domain/repository/redis"
	"github.com/ruchelocale/marketplace-api/internal/events"
	"github.com/ruchelocale/marketplace-api/internal/events/kafka"
	httpHandler "github.com/ruchelocale/marketplace-api/internal/handler/http"
	"github.com/ruchelocale/marketplace-api/internal/infrastructure/database/postgres"
	"github.com/ruchelocale/marketplace-api/internal/infrastructure/security"
	"github.com/ruchelocale/marketplace-api/internal/service"
	"github.com/ruchelocale/marketplace-api/internal/utils/logger"
)

const sessionReapInterval = time.Hour

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

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("service exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.MigrationsUp {
		if err := postgres.RunMigrations(cfg.Database, "migrations"); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		zapLogger.Info("migrations applied")
	}

	pool, err := postgres.NewDBPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	var sessionCache service.SessionCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer redisClient.Close()
		sessionCache = redisRepo.NewSessionCache(redisClient, zapLogger, cfg.Auth.SessionTTL)
		zapLogger.Info("session cache enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicPrefix, zapLogger)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		defer producer.Close()
		publisher = producer
		zapLogger.Info("event publishing enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	hasher, err := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}
	tokens, err := security.NewTokenService(cfg.Auth.TokenSecret, cfg.Auth.TokenIssuer)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	userRepo := postgresRepo.NewUserRepositoryPostgres(pool)
	sessionRepo := postgresRepo.NewSessionRepositoryPostgres(pool)
	productRepo := postgresRepo.NewProductRepositoryPostgres(pool)
	categoryRepo := postgresRepo.NewCategoryRepositoryPostgres(pool)
	shopRepo := postgresRepo.NewShopRepositoryPostgres(pool)
	orderRepo := postgresRepo.NewOrderRepositoryPostgres(pool)

	authService := service.NewAuthService(
		userRepo, sessionRepo, sessionCache, hasher, tokens, publisher, zapLogger, cfg.Auth.SessionTTL,
	)
	productService := service.NewProductService(productRepo, categoryRepo, zapLogger)
	categoryService := service.NewCategoryService(categoryRepo)
	shopService := service.NewShopService(shopRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo, publisher, zapLogger)

	router := httpHandler.SetupRouter(httpHandler.Services{
		Auth:     authService,
		Product:  productService,
		Category: categoryService,
		Shop:     shopService,
		Order:    orderService,
	}, pool, cfg, zapLogger)

	// Backstop reaper behind the delete-on-access path.
	go func() {
		ticker := time.NewTicker(sessionReapInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := authService.PurgeExpiredSessions(ctx); err != nil {
					zapLogger.Warn("session purge failed", zap.Error(err))
				}
			}
		}
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("http server listening", zap.Int("port", cfg.HTTP.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
