package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fitcoach-backend-go/internal/config"
	"fitcoach-backend-go/internal/db"
	httpapi "fitcoach-backend-go/internal/http"
	"fitcoach-backend-go/internal/logger"
	"fitcoach-backend-go/internal/metrics"
	"fitcoach-backend-go/internal/migrations"
	"fitcoach-backend-go/internal/services"
	"fitcoach-backend-go/internal/store"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closeLogs, err := logger.Init(logger.Options{Env: cfg.Env, Dir: cfg.LogDir, RetentionDays: cfg.LogRetentionDays})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer closeLogs()
	log := zap.L()

	database, err := openAndMigrate(cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	m := metrics.New()
	svc := services.New(store.New(database), services.TokenService{
		Secret: []byte(cfg.JWTSecret),
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.TokenTTL,
	}, services.Options{
		StrictOwnership: cfg.StrictOwnership,
		MediaRoot:       cfg.MediaStoragePath,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		Log:             log,
		Events:          m,
	})

	server := httpapi.NewServer(svc, cfg, log, m)
	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("shutdown complete")
	return nil
}

func openAndMigrate(cfg config.Config, log *zap.Logger) (*sqlx.DB, error) {
	database, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}
	applied, err := migrations.Apply(database)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	for _, name := range applied {
		log.Info("migration applied", zap.String("name", name))
	}
	return database, nil
}
