package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/growly/growly-web/api/controllers"
	"github.com/growly/growly-web/api/routes"
	"github.com/growly/growly-web/api/views"
	"github.com/growly/growly-web/internal/auth"
	"github.com/growly/growly-web/internal/dashboard"
	"github.com/growly/growly-web/internal/growth"
	"github.com/growly/growly-web/internal/orders"
	"github.com/growly/growly-web/internal/plans"
	"github.com/growly/growly-web/internal/posts"
	"github.com/growly/growly-web/internal/reviews"
	"github.com/growly/growly-web/internal/subscribers"
	"github.com/growly/growly-web/internal/tickets"
	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/auth/session"
	"github.com/growly/growly-web/pkg/config"
	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/enums"
	"github.com/growly/growly-web/pkg/env"
	"github.com/growly/growly-web/pkg/logger"
	"github.com/growly/growly-web/pkg/metrics"
	"github.com/growly/growly-web/pkg/migrate"
	"github.com/growly/growly-web/pkg/redis"
	"github.com/growly/growly-web/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if err := run(cfg, logg); err != nil {
		logg.Error(context.Background(), "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logg *logger.Logger) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, dbClient.Close()) }()

	if err := migrate.MaybeRun(ctx, cfg, logg, dbClient); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		registry    session.Registry
	)
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return err
		}
		defer func() { err = multierr.Append(err, redisClient.Close()) }()
		registry = redisClient
	} else {
		logg.Warn(ctx, "redis disabled: no session registry and no auth rate limiting")
	}

	sessions, err := session.NewManager(cfg.Session, registry)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deletePolicy, err := enums.ParseDeletePolicy(cfg.Users.DeletePolicy)
	if err != nil {
		return err
	}

	conn := dbClient.DB()
	hasher := security.NewHasher(cfg.Password)
	userRepo := users.NewRepository(conn)
	orderRepo := orders.NewRepository(conn)
	ticketRepo := tickets.NewRepository(conn)
	subRepo := subscribers.NewRepository(conn)

	userSvc, err := users.NewService(users.ServiceParams{Repo: userRepo, Tx: dbClient, Hasher: hasher, DeletePolicy: deletePolicy})
	if err != nil {
		return err
	}
	authSvc, err := auth.NewService(auth.ServiceParams{
		UserRepo: userRepo,
		Accounts: userSvc,
		Hasher:   hasher,
		Policy:   sessions.Policy(),
		Metrics:  metrics.NewAuthMetrics(reg),
	})
	if err != nil {
		return err
	}
	postSvc, err := posts.NewService(posts.NewRepository(conn), dbClient)
	if err != nil {
		return err
	}
	planSvc, err := plans.NewService(plans.NewRepository(conn))
	if err != nil {
		return err
	}
	orderSvc, err := orders.NewService(orderRepo, dbClient, orders.PlaceholderGateway{})
	if err != nil {
		return err
	}
	ticketSvc, err := tickets.NewService(ticketRepo, dbClient)
	if err != nil {
		return err
	}
	subSvc, err := subscribers.NewService(subRepo)
	if err != nil {
		return err
	}
	growthSvc, err := growth.NewService(dbClient)
	if err != nil {
		return err
	}
	dashSvc, err := dashboard.NewService(dashboard.ServiceParams{Users: userRepo, Orders: orderRepo, Tickets: ticketRepo, Subscribers: subRepo})
	if err != nil {
		return err
	}

	if cfg.Admin.Enabled() {
		admin, created, err := userSvc.EnsureAdmin(ctx, cfg.Admin)
		if err != nil {
			return err
		}
		logg.Info(logg.WithFields(ctx, map[string]any{"user_id": admin.ID, "created": created}), "admin account ready")
	}

	rnd, err := views.New()
	if err != nil {
		return err
	}
	ui, err := controllers.NewUI(rnd, logg)
	if err != nil {
		return err
	}

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		UI:          ui,
		DB:          dbClient,
		Redis:       redisClient,
		Sessions:    sessions,
		Registry:    reg,
		Metrics:     metrics.NewHTTPMetrics(reg),
		Auth:        authSvc,
		Users:       userSvc,
		Posts:       postSvc,
		Plans:       planSvc,
		Orders:      orderSvc,
		Tickets:     ticketSvc,
		Subscribers: subSvc,
		Reviews:     reviews.NewRepository(conn),
		Growth:      growthSvc,
		Dashboard:   dashSvc,
	})

	addr := ":" + env.Get("PORT", cfg.App.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	srvCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	errCh := make(chan error, 1)
	go func() {
		logg.Info(srvCtx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info(srvCtx, "shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
