package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bella-vista/config"
	httpapi "bella-vista/content-svc/internal/api/http"
	"bella-vista/content-svc/internal/service"
	"bella-vista/content-svc/internal/storage"
	"bella-vista/domain"

	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg, "content-svc")
	defer logger.Sync()

	mongoClient := storage.NewMongoClient(cfg.Mongo)
	if err := mongoClient.Ping(context.Background()); err != nil {
		// Requests still answer 503 until the database becomes reachable.
		logger.Warn("mongo not reachable at startup", zap.Error(err))
	}

	deps := service.Deps{Logger: logger}

	if rdb, err := config.OpenRedis(cfg.Redis); err != nil {
		logger.Warn("list cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		deps.Cache = storage.NewRedisListCache(rdb, cfg.ListCacheTTL)
	}

	writer := config.NewKafkaWriter(cfg.Kafka)
	defer writer.Close()
	deps.Publisher = storage.NewKafkaPublisher(writer)

	handler := buildHandler(cfg, mongoClient, deps)
	handler.Logger = logger

	server := httpapi.NewServer(cfg.HTTPAddr, httpapi.NewRouter(handler))

	go func() {
		logger.Info("content-svc starting", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Error("mongo disconnect failed", zap.Error(err))
	}
	logger.Info("content-svc stopped")
}

func buildHandler(cfg *config.Config, client *storage.MongoClient, deps service.Deps) *httpapi.Handler {
	menu := service.NewMenuService(storage.NewMongoCollection[domain.MenuItem](client, domain.ResourceMenu), deps)
	reservations := service.NewReservationService(
		storage.NewMongoCollection[domain.Reservation](client, domain.ResourceReservations),
		service.DefaultQRGenerator{BaseURL: cfg.SiteBaseURL},
		deps,
	)
	gallery := service.NewGalleryService(storage.NewMongoCollection[domain.GalleryItem](client, domain.ResourceGallery), deps)
	testimonials := service.NewTestimonialService(storage.NewMongoCollection[domain.Testimonial](client, domain.ResourceTestimonials), deps)

	handler := httpapi.NewHandler(menu, reservations, gallery, testimonials)
	handler.UploadDir = cfg.UploadDir
	return handler
}
