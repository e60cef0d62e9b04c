package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	"github.com/go-resty/resty/v2"
)

// EmbeddingService generates text embeddings through an OpenAI-compatible
// embeddings endpoint. The model and its dimensionality are fixed: the
// collection is created to match and never changes.
type EmbeddingService struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

// EmbeddingServiceConfig holds configuration for the embedding service.
type EmbeddingServiceConfig struct {
	APIKey  string
	BaseURL string
}

// NewEmbeddingService creates a new embedding service.
func NewEmbeddingService(cfg *EmbeddingServiceConfig) *EmbeddingService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(30 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &EmbeddingService{
		client:   client,
		apiKey:   cfg.APIKey,
		endpoint: baseURL + "/embeddings",
	}
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Embed generates an embedding for the given text. Every call is a live
// request; there is no caching or local fallback. Empty text is passed
// through unchanged and embeds under the provider's own rules.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if s.apiKey == "" {
		return nil, domain.ErrMissingCredential
	}

	req := embeddingRequest{
		Model: domain.EmbeddingModelID,
		Input: text,
	}

	var resp embeddingResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	if httpResp.StatusCode() != 200 {
		if resp.Error != nil {
			return nil, fmt.Errorf("embedding request failed: HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return nil, fmt.Errorf("embedding request failed: HTTP %d", httpResp.StatusCode())
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding in response")
	}

	embedding := resp.Data[0].Embedding
	if len(embedding) != domain.EmbeddingDimensions {
		return nil, fmt.Errorf("unexpected embedding length: got %d, want %d", len(embedding), domain.EmbeddingDimensions)
	}
	return embedding, nil
}
