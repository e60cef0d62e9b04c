package storage

import (
	"context"
	"fmt"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/config"
)

// NewStorage creates a PhotoStorage from configuration. The local backend
// is the default; "s3" selects any S3-compatible service.
func NewStorage(ctx context.Context, cfg *config.PhotosConfig) (PhotoStorage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStorage(cfg.OutputDir)
	case "s3":
		s3Store, err := NewS3Storage(&S3Config{
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			UseSSL:    cfg.UseSSL,
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			PublicURL: cfg.PublicURL,
		})
		if err != nil {
			return nil, err
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return s3Store, nil
	default:
		return nil, fmt.Errorf("unknown photo storage backend: %s", cfg.Backend)
	}
}
