// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/uni-events/internal/admin"
	"github.com/carterperez-dev/uni-events/internal/auth"
	"github.com/carterperez-dev/uni-events/internal/bootstrap"
	"github.com/carterperez-dev/uni-events/internal/comment"
	"github.com/carterperez-dev/uni-events/internal/config"
	"github.com/carterperez-dev/uni-events/internal/core"
	"github.com/carterperez-dev/uni-events/internal/event"
	"github.com/carterperez-dev/uni-events/internal/health"
	"github.com/carterperez-dev/uni-events/internal/metrics"
	"github.com/carterperez-dev/uni-events/internal/middleware"
	"github.com/carterperez-dev/uni-events/internal/rso"
	"github.com/carterperez-dev/uni-events/internal/server"
	"github.com/carterperez-dev/uni-events/internal/university"
	"github.com/carterperez-dev/uni-events/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return err
		}
		logger.Info("database schema applied")
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	reg := metrics.New()

	userSvc := user.NewService(user.NewRepository(db.DB))
	universitySvc := university.NewService(university.NewRepository(db.DB))
	rsoSvc := rso.NewService(
		rso.NewRepository(db.DB),
		userSvc,
		cfg.RSO.MinMembers,
		reg,
	)
	eventSvc := event.NewService(event.NewRepository(db.DB), rsoSvc, reg)
	commentSvc := comment.NewService(comment.NewRepository(db.DB), eventSvc)

	authSvc := auth.NewService(
		jwtManager,
		userSvc,
		universitySvc,
		auth.NewRedisDenylist(redis.Client),
		auth.WithMembershipLinker(rsoSvc),
		auth.WithMetrics(reg),
		auth.WithLogger(logger),
	)

	if _, err := bootstrap.Run(ctx, cfg.Bootstrap, universitySvc, authSvc, logger); err != nil {
		return err
	}

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis, Optional: true},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:      db.Stats,
		RedisStats:   redis.PoolStats,
		DBPing:       db.Ping,
		RedisPing:    redis.Ping,
		Users:        userSvc,
		Universities: universitySvc,
		Events:       eventSvc,
		Comments:     commentSvc,
		RSOs:         rsoSvc,
		Logger:       logger,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(reg))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, reg.Handler())
	}

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	superAdminOnly := middleware.RequireSuperAdmin

	router.Route("/api", func(r chi.Router) {
		auth.NewHandler(authSvc).RegisterRoutes(r, authenticator)
		university.NewHandler(universitySvc).RegisterRoutes(r, authenticator)
		rso.NewHandler(rsoSvc).RegisterRoutes(r, authenticator)
		event.NewHandler(eventSvc).RegisterRoutes(r, authenticator)
		comment.NewHandler(commentSvc).RegisterRoutes(r, authenticator)

		user.NewHandler(userSvc).RegisterAdminRoutes(r, authenticator, superAdminOnly)
		adminHandler.RegisterRoutes(r, authenticator, superAdminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
