package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "bodydry/internal/adapter/http"
	"bodydry/internal/adapter/memory"
	"bodydry/internal/adapter/postgres"
	"bodydry/internal/app"
	"bodydry/internal/config"
	"bodydry/internal/domain"
	"bodydry/internal/scheduler"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// store is everything the services need from a storage backend.
type store interface {
	domain.UserRepository
	domain.WeightRepository
	domain.WaterRepository
	domain.ProfileRepository
	domain.FoodRepository
	domain.DiaryRepository
	domain.SubscriptionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err.Error())
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	if err := run(cfg); err != nil {
		slog.Error("fatal", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		db       store
		sessions domain.SessionRepository
	)
	switch cfg.Storage {
	case config.StorageMemory:
		mem := memory.New()
		db, sessions = mem, mem.NewSessionRepo()
		slog.Warn("storage", "backend", "memory", "note", "data is lost on restart")
	default:
		pg, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() { _ = pg.Close() }()
		db, sessions = pg, postgres.NewSessionRepo(pg)
		slog.Info("storage", "backend", "postgres")
	}

	users, err := db.Count(ctx)
	if err != nil {
		return err
	}
	slog.Info("storage_ready", "users", users)

	authSvc := app.NewAuthService(db, sessions).WithSessionTTL(cfg.SessionTTL)
	profileSvc := app.NewProfileService(db)
	diarySvc := app.NewDiaryService(db, db, profileSvc)

	srv := adapthttp.New(adapthttp.Services{
		Auth:         authSvc,
		Profile:      profileSvc,
		Foods:        app.NewFoodService(db),
		Diary:        diarySvc,
		Water:        app.NewWaterService(db, profileSvc),
		Weight:       app.NewWeightService(db, profileSvc),
		Charts:       app.NewChartsService(db, db, diarySvc),
		Subscription: app.NewSubscriptionService(db),
	}).
		WithAdminToken(cfg.AdminToken).
		WithCORSOrigins(cfg.CORSOrigins).
		WithLoginRateLimit(cfg.LoginPerMinute)

	if cfg.OIDC.Enabled() {
		oidcCfg, err := setupOIDC(ctx, cfg.OIDC)
		if err != nil {
			return err
		}
		srv.WithOIDC(oidcCfg)
		slog.Info("sso_enabled", "issuer", cfg.OIDC.Issuer)
	}

	jobs, err := scheduler.New(authSvc)
	if err != nil {
		return err
	}
	jobs.Start()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	jobs.Stop(shutdownCtx)
	return httpServer.Shutdown(shutdownCtx)
}

func setupOIDC(ctx context.Context, c config.OIDC) (adapthttp.OIDCConfig, error) {
	provider, err := oidc.NewProvider(ctx, c.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}
