package service

import (
	"context"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/repository"
)

// VisionProvider generates a natural-language description for an image.
type VisionProvider interface {
	Describe(ctx context.Context, imageData []byte, filename, modelAlias string) (string, error)
}

// EmbeddingProvider turns text into a fixed-length vector.
type EmbeddingProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// VectorStore is the collection-scoped CRUD + similarity search surface the
// index needs from the vector database.
type VectorStore interface {
	EnsureCollection(ctx context.Context) error
	Upsert(ctx context.Context, id uint64, vector []float32, payload *repository.PhotoPayload) error
	ScrollAll(ctx context.Context, limit uint32) ([]repository.StoredPhoto, error)
	Search(ctx context.Context, vector []float32, k int) ([]repository.ScoredPhoto, error)
	DeleteByIDs(ctx context.Context, ids []uint64) error
	DropCollection(ctx context.Context) error
}

// RateProvider supplies the USD to PLN conversion rate for cost estimates.
// Fetching a live rate is the caller's concern; the core only consumes it.
type RateProvider interface {
	USDToPLN(ctx context.Context) float64
}

// FixedRate is a RateProvider that always returns the same rate.
type FixedRate float64

func (r FixedRate) USDToPLN(context.Context) float64 {
	return float64(r)
}
