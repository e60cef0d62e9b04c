package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/config"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/logger"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/repository"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/service"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/storage"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func main() {
	var (
		dir              = flag.String("dir", "", "Directory with photos to ingest (required)")
		model            = flag.String("model", domain.ModelSimple, "Model alias: simple, medium or advanced")
		renameDuplicates = flag.Bool("rename-duplicates", false, "Ingest already-indexed names as renamed duplicates instead of skipping")
		configPath       = flag.String("config", "", "Path to config file")
		estimateOnly     = flag.Bool("estimate", false, "Print the cost estimate and exit without ingesting")
	)
	flag.Parse()

	appLogger := logger.New(nil)
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	if *dir == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	paths, err := collectImages(*dir)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to scan directory")
	}
	if len(paths) == 0 {
		appLogger.WithField("dir", *dir).Info("No image files found")
		return
	}

	ctx := context.Background()

	if *estimateOnly {
		rate := service.FixedRate(cfg.Pricing.USDPLNRate)
		estimate := service.EstimateCost(ctx, len(paths), *model, rate)
		fmt.Printf("Photos: %d, model: %s\n", len(paths), domain.ResolveModel(*model).ModelID)
		fmt.Printf("Estimated cost: %.2f PLN (generation %.2f, embeddings %.2f, rate %.4f)\n",
			estimate.TotalPLN, estimate.Breakdown.GenerationPLN, estimate.Breakdown.EmbeddingPLN, estimate.Breakdown.USDPLNRate)
		fmt.Println(estimate.Note)
		return
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

	if err := index.EnsureCollection(ctx); err != nil {
		appLogger.WithError(err).Fatal("Failed to ensure collection")
	}

	var (
		files   []service.IncomingPhoto
		skipped int
	)
	for _, p := range paths {
		name := filepath.Base(p)
		exists := index.Exists(ctx, name)
		if exists && !*renameDuplicates {
			appLogger.WithField(logger.FieldPhoto, name).Info("Already indexed, skipping")
			skipped++
			continue
		}

		data, err := os.ReadFile(p)
		if err != nil {
			appLogger.WithError(err).WithField(logger.FieldPhoto, name).Error("Failed to read file")
			continue
		}

		files = append(files, service.IncomingPhoto{
			Data:             data,
			Filename:         name,
			TreatAsDuplicate: exists,
		})
	}

	results, err := index.IngestBatch(ctx, files, *model)
	if err != nil {
		appLogger.WithError(err).Fatal("Ingest failed")
	}

	succeeded := len(service.Successes(results))
	appLogger.WithFields(logger.Fields{
		"found":     len(paths),
		"skipped":   skipped,
		"succeeded": succeeded,
		"failed":    len(results) - succeeded,
	}).Info("Ingest finished")

	for _, r := range results {
		if r.Status == service.FileStatusFailed {
			appLogger.WithField(logger.FieldPhoto, r.Filename).Error("Not indexed: " + r.Reason)
		}
	}

	if len(results)-succeeded > 0 {
		os.Exit(1)
	}
}

// collectImages returns the image files directly inside dir, sorted by name.
func collectImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
