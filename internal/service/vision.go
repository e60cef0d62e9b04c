package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/domain"
	"github.com/Lukasz6855/wyszukiwarka-zdjec/internal/prompts"
	"github.com/go-resty/resty/v2"
)

// VisionService generates image descriptions through an OpenAI-compatible
// chat completions endpoint.
type VisionService struct {
	client    *resty.Client
	apiKey    string
	endpoint  string
	maxTokens int
}

// VisionServiceConfig holds configuration for the vision service.
type VisionServiceConfig struct {
	APIKey    string
	BaseURL   string
	MaxTokens int
}

// NewVisionService creates a new vision service.
func NewVisionService(cfg *VisionServiceConfig) *VisionService {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(60 * time.Second)

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 300
	}

	return &VisionService{
		client:    client,
		apiKey:    cfg.APIKey,
		endpoint:  baseURL + "/chat/completions",
		maxTokens: maxTokens,
	}
}

// OpenAI-compatible chat completion request/response structures
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []interface{} `json:"content"`
}

type chatTextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatImageContent struct {
	Type     string       `json:"type"`
	ImageURL chatImageURL `json:"image_url"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Describe generates a description for an image. The filename is used only
// to guess the MIME type; the model alias is resolved through the catalog
// with unknown aliases falling back to the simple model.
//
// An unparsable response shape (no choices, empty content) degrades to an
// empty description rather than an error so one odd response does not fail
// the whole ingest. Transport and HTTP failures are errors naming the
// resolved model.
func (s *VisionService) Describe(ctx context.Context, imageData []byte, filename, modelAlias string) (string, error) {
	if s.apiKey == "" {
		return "", domain.ErrMissingCredential
	}

	model := domain.ResolveModel(modelAlias)
	mimeType := mimeFromExt(filepath.Ext(filename))
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	req := chatRequest{
		Model: model.ModelID,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []interface{}{
					chatTextContent{Type: "text", Text: prompts.DescribePrompt},
					chatImageContent{Type: "image_url", ImageURL: chatImageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens: s.maxTokens,
	}

	var resp chatResponse
	httpResp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		Post(s.endpoint)
	if err != nil {
		return "", fmt.Errorf("vision request failed (model %s): %w", model.ModelID, err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("vision request failed (model %s): HTTP %d: %s", model.ModelID, httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("vision request failed (model %s): HTTP %d: %s", model.ModelID, httpResp.StatusCode(), string(httpResp.Body()))
	}

	// Unexpected shape degrades to an empty description
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// mimeFromExt maps a filename extension to the MIME type sent with the
// inlined image. Unknown extensions default to JPEG.
func mimeFromExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
