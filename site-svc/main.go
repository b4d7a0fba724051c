package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bella-vista/client"
	"bella-vista/config"
	"bella-vista/site-svc/internal/gateway"
	"bella-vista/site-svc/internal/sections"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	if os.Getenv("HTTP_ADDR") == "" {
		cfg.HTTPAddr = ":8080"
	}
	// Bookings must reach content-svc; the mirror only backs reads here.
	cfg.Client.Backend = client.BackendRemote

	logger := config.NewLogger(cfg, "site-svc")
	defer logger.Sync()

	resources, err := client.New(cfg, logger)
	if err != nil {
		logger.Fatal("client setup failed", zap.Error(err))
	}
	defer resources.Close()

	gw := gateway.NewGateway(gateway.Config{
		ContentSvcURL:  cfg.ContentSvcURL,
		ActivitySvcURL: cfg.ActivitySvcURL,
	}, &http.Client{Timeout: 30 * time.Second}, logger)

	secs := sections.NewSections(
		sections.NewFallbackReaders(resources.Set, resources.Mirror, logger),
		resources.Reservations,
		logger,
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(gw, sections.NewHandler(secs, logger)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("site-svc starting", zap.String("addr", cfg.HTTPAddr))
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
	logger.Info("site-svc stopped")
}

func newRouter(gw *gateway.Gateway, sectionsHandler *sections.Handler) http.Handler {
	r := mux.NewRouter()
	sectionsHandler.RegisterRoutes(r)
	gw.RegisterRoutes(r)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}
