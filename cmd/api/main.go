package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"

	_ "github.com/aprovame/integrations-api/docs"
	"github.com/aprovame/integrations-api/internal/api"
	"github.com/aprovame/integrations-api/internal/api/handler"
	"github.com/aprovame/integrations-api/internal/core/service"
	"github.com/aprovame/integrations-api/internal/infrastructure/config"
	"github.com/aprovame/integrations-api/internal/infrastructure/db/mongo"
	"github.com/aprovame/integrations-api/internal/infrastructure/db/redis"
	"github.com/aprovame/integrations-api/internal/infrastructure/http/handlers"
	"github.com/aprovame/integrations-api/internal/infrastructure/queue"
	"github.com/aprovame/integrations-api/internal/infrastructure/security"
	"github.com/aprovame/integrations-api/internal/infrastructure/token"
	"github.com/aprovame/integrations-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                       Integrations API
// @version                     1.0
// @description                 Payables, assignors and operator permissions.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "integrations-api",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	sentryEnabled := cfg.SentryDSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.Env,
			ServerName:       "integrations-api",
			AttachStacktrace: true,
		}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "integrations-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	assignorRepo := mongo.NewAssignorRepository(db)
	payableRepo := mongo.NewPayableRepository(db)
	if err := mongo.EnsureIndexes(ctx, userRepo, assignorRepo, payableRepo); err != nil {
		return err
	}

	// --- Audit trail ---
	auditLog := logger.Component("audit")
	auditService := service.NewAuditService(mongo.NewAuditRepository(db), auditLog)
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, auditLog)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// --- Services ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens, err := token.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		stopWorkers()
		return err
	}
	throttle := redis.NewLoginThrottle(rdb, cfg.Auth.MaxFailures, cfg.Auth.FailureWindow)

	userService := service.NewUserService(userRepo, hasher, dispatcher, log)
	authService := service.NewAuthService(userRepo, hasher, tokens, throttle, dispatcher, log)
	assignorService := service.NewAssignorService(assignorRepo, payableRepo, dispatcher, log)
	payableService := service.NewPayableService(payableRepo, assignorRepo, dispatcher, log)

	if cfg.Seed.Login != "" {
		created, err := userService.EnsureAdmin(ctx, cfg.Seed.Login, cfg.Seed.Password)
		if err != nil {
			stopWorkers()
			return err
		}
		log.Info().Str("login", cfg.Seed.Login).Bool("created", created).Msg("admin seed checked")
	}

	e := api.NewRouter(api.Deps{
		Log:       logger.Component("http"),
		Verifier:  tokens,
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(userService),
		Assignors: handler.NewAssignorHandler(assignorService),
		Payables:  handler.NewPayableHandler(payableService),
		Readiness: handlers.NewReadinessHandler(map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		}),
		AssignorPublic:     cfg.AssignorPublic,
		LoginRatePerMinute: cfg.Auth.LoginRatePerMinute,
		SentryEnabled:      sentryEnabled,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			stopWorkers()
			dispatcher.Wait()
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("audit dispatcher drained")
	return nil
}
