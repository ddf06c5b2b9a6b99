package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	httpadapter "userauth/internal/adapters/http"
	"userauth/internal/adapters/http/request"
	"userauth/internal/adapters/http/response"
	"userauth/internal/adapters/memory"
	"userauth/internal/adapters/postgres"
	"userauth/internal/adapters/redis"
	"userauth/internal/application/audit"
	"userauth/internal/application/auth"
	"userauth/internal/config"
	"userauth/internal/domain"
	"userauth/internal/event"
	"userauth/internal/logger"
	"userauth/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.New(cfg)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	startedAt := time.Now()
	reg := prometheus.DefaultRegisterer
	authMetrics := metrics.NewAuthMetrics(reg)
	httpMetrics := metrics.NewHTTPMetrics(reg)

	var userRepo domain.UserRepository
	if cfg.DatabaseURL != "" {
		if cfg.AutoMigrate {
			if err := postgres.MigrateUp(cfg.DatabaseURL); err != nil {
				return err
			}
			log.Info("postgres: migrations applied")
		}

		dbPool, err := postgres.InitDB(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return fmt.Errorf("failed to init DB: %w", err)
		}
		defer dbPool.Close()

		userRepo = postgres.NewUserRepository(dbPool)
	} else {
		log.Warn("DATABASE_URL not set, users are kept in memory")
		userRepo = memory.NewUserRepository()
	}

	var limiter domain.LoginLimiter
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to init redis: %w", err)
		}
		defer client.Close()

		limiter = redis.NewLoginLimiter(client, cfg.LoginMaxAttempts, cfg.LoginLockout)
		log.Info("redis: login lockout enabled",
			"max_attempts", cfg.LoginMaxAttempts,
			"window", cfg.LoginLockout,
		)
	}

	bus := event.New(log)
	audit.Register(bus, log)

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost, cfg.HashConcurrency, authMetrics)
	if err != nil {
		return err
	}

	tokens, err := auth.NewJWTIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		return err
	}

	authService, err := auth.NewService(ctx, auth.ServiceDeps{
		Repo:    userRepo,
		Hasher:  hasher,
		Tokens:  tokens,
		Limiter: limiter,
		Metrics: authMetrics,
		Events:  bus,
		Log:     log.With("component", "auth"),
	})
	if err != nil {
		return err
	}

	writer := response.NewJSONWriter(log)
	decoder := request.NewJSONDecoder(request.DefaultMaxBodyBytes)

	router := httpadapter.NewRouter(cfg, &httpadapter.RouterDeps{
		Auth:           httpadapter.NewAuthHandler(authService, log, decoder, writer),
		System:         httpadapter.NewSystemHandler(writer, startedAt),
		Tokens:         tokens,
		Writer:         writer,
		Metrics:        httpMetrics,
		Log:            log,
		MetricsHandler: promhttp.Handler(),
	})

	srv := httpadapter.NewServer(router, cfg.Address)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http: starting server", "address", cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http: server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http: server shutdown error: %w", err)
		}
		return nil
	})

	return g.Wait()
}
