package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/api"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/config"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/logger"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/repository"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/service"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/storage"
)

func main() {
	appLogger := logger.New(nil)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// Support CONFIG_PATH environment variable for deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	qdrantRepo, err := repository.NewQdrantRepository(&repository.QdrantConnectionConfig{
		Host:       cfg.Qdrant.Host,
		Port:       cfg.Qdrant.Port,
		Collection: cfg.Qdrant.Collection,
		APIKey:     cfg.Qdrant.APIKey,
		UseTLS:     cfg.Qdrant.UseTLS,
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to Qdrant")
	}
	defer qdrantRepo.Close()

	ctx := context.Background()
	if err := qdrantRepo.EnsureCollection(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure collection")
	}

	photoStorage, err := storage.NewStorage(ctx, &cfg.Photos)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize photo storage")
	}

	visionService := service.NewVisionService(&service.VisionServiceConfig{
		APIKey:    cfg.Vision.APIKey,
		BaseURL:   cfg.Vision.BaseURL,
		MaxTokens: cfg.Vision.MaxTokens,
	})

	embeddingService := service.NewEmbeddingService(&service.EmbeddingServiceConfig{
		APIKey:  cfg.Embedding.APIKey,
		BaseURL: cfg.Embedding.BaseURL,
	})

	index := service.NewPhotoIndex(qdrantRepo, visionService, embeddingService, photoStorage, appLogger)

	router := api.SetupRouter(index, service.FixedRate(cfg.Pricing.USDPLNRate), &cfg.Server)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
