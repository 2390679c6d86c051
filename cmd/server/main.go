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

	"disclosure_backend/internal/app/config"
	"disclosure_backend/internal/app/di"
	"disclosure_backend/internal/app/router"
	assistanthandler "disclosure_backend/internal/feature/assistant/transport/handler"
	disclosurehandler "disclosure_backend/internal/feature/disclosure/transport/handler"
	similarhandler "disclosure_backend/internal/feature/similarcompany/transport/handler"
	infradb "disclosure_backend/internal/platform/db"
	"disclosure_backend/internal/platform/http/handler"
	"disclosure_backend/internal/platform/logging"
	infraredis "disclosure_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.Open(cfg.DB)
	if err != nil {
		return err
	}

	// Redis（未設定または接続できない場合はキャッシュなしで動作）
	rdb, err := infraredis.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		rdb = nil
	}
	if rdb != nil {
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Usecase
	svc, err := di.NewServices(cfg, db, rdb, logger)
	if err != nil {
		return err
	}

	readiness := map[string]handler.Pinger{"database": infradb.NewPinger(db)}
	if rdb != nil {
		readiness["redis"] = infraredis.NewPinger(rdb)
	}

	// ルータ生成
	r := router.NewRouter(router.Handlers{
		Disclosure:     disclosurehandler.NewDisclosureHandler(svc.Search, svc.Ratios),
		SimilarCompany: similarhandler.NewSimilarCompanyHandler(svc.SimilarCompany, svc.Elaborators),
		Assistant:      assistanthandler.NewAssistantHandler(svc.Assistant),
	}, router.Options{JWTSecret: cfg.JWTSecret, Readiness: readiness})

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set. /v1 endpoints are unauthenticated.")
	}
	if cfg.LLMAPIKey == "" {
		slog.Info("no default LLM key; elaboration requires the X-LLM-API-Key header", "provider", cfg.LLMProvider)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
