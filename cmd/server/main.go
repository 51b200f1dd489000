package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quotekeeper/internal/app/server/api"
	"quotekeeper/internal/app/server/catalog"
	"quotekeeper/internal/app/server/config"
	"quotekeeper/internal/utils/logger"
)

func main() {
	cfg := config.MustLoad()
	log := logger.New(cfg.Env)

	mux := api.New(cfg, catalog.New(), log)
	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("сервер запущен", "address", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("сервер остановился с ошибкой", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("ошибка остановки сервера", "error", err)
		os.Exit(1)
	}
	log.Info("сервер остановлен")
}
