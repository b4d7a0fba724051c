package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "bella-vista/activity-svc/internal/api/http"
	"bella-vista/activity-svc/internal/service"
	"bella-vista/activity-svc/internal/storage"
	"bella-vista/config"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if os.Getenv("HTTP_ADDR") == "" {
		cfg.HTTPAddr = ":8083"
	}
	logger := config.NewLogger(cfg, "activity-svc")
	defer logger.Sync()

	db, err := config.OpenPostgres(cfg.Postgres)
	if err != nil {
		logger.Fatal("postgres unavailable", zap.Error(err))
	}
	defer db.Close()

	rdb, err := config.OpenRedis(cfg.Redis)
	if err != nil {
		logger.Fatal("redis unavailable", zap.Error(err))
	}
	defer rdb.Close()

	store := storage.NewStore(db, rdb)
	if err := store.EnsureSchema(context.Background()); err != nil {
		logger.Fatal("schema setup failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := config.NewKafkaReader(cfg.Kafka)
	defer reader.Close()
	consumer := service.NewConsumer(reader, store, logger)
	go consumer.Start(ctx)

	handler := httpapi.NewHandler(service.NewActivityService(store, logger), logger)
	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler))

	go func() {
		logger.Info("activity-svc starting", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("activity-svc stopped")
}
