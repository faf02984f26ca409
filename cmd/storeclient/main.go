// Package main запускает локальный фасад клиента системы управления магазинами.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pwrstore/storeclient/internal/api"
	"github.com/pwrstore/storeclient/internal/cache"
	"github.com/pwrstore/storeclient/internal/cart"
	"github.com/pwrstore/storeclient/internal/checkout"
	"github.com/pwrstore/storeclient/internal/config"
	"github.com/pwrstore/storeclient/internal/gateway"
	"github.com/pwrstore/storeclient/internal/service"
	"github.com/pwrstore/storeclient/internal/session"
	"github.com/pwrstore/storeclient/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	store, err := storage.NewFileStorage(cfg.StateDir)
	if err != nil {
		sugar.Fatalw("state storage initialization error", "error", err.Error())
	}

	sessions := session.NewStore(store, logger)
	cartStore := cart.NewStore(store, logger)

	client := api.NewClient(cfg.APIBaseURL, sessions, logger)
	client.OnUnauthorized(func() {
		sugar.Infow("session expired, login required")
	})

	svc := service.NewService(client, cache.New(), logger)
	orch := checkout.NewOrchestrator(svc, cartStore, logger)

	h := gateway.NewHandler(client, svc, sessions, cartStore, orch, logger)
	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера фасада
	g.Go(func() error {
		sugar.Infow("starting store client facade", "addr", cfg.RunAddress, "api", cfg.APIBaseURL)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down facade...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("facade stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
