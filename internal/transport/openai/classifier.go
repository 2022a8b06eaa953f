// Package openai implements the image classifier on an
// OpenAI-compatible vision chat API.
package openai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/dishcovery/internal/domain"
	"github.com/kailas-cloud/dishcovery/internal/metrics"
)

// conceptPrompt instructs the model to emit the concept list as bare JSON.
const conceptPrompt = `You are a food image tagging system. List the food concepts ` +
	`visible in the image as a JSON array of objects with fields "label" (a single ` +
	`lowercase word or short phrase, e.g. "pizza", "sushi", "cheese") and "confidence" ` +
	`(0.0 to 1.0). Return up to 20 concepts ordered by confidence, most confident first. ` +
	`Respond with the JSON array only, no prose.`

// Classifier labels food images using an OpenAI-compatible vision model.
type Classifier struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the classifier provider settings.
type Config struct {
	APIKey   string
	BaseURL  string
	Model    string
	User     string
	Provider string
	Logger   *zap.Logger
}

// NewClassifier creates an OpenAI-compatible vision classifier.
func NewClassifier(cfg *Config) *Classifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Classifier{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    cfg.Model,
		user:     cfg.User,
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// Classify sends the image to the vision model and returns scored
// concepts, most confident first.
func (c *Classifier) Classify(ctx context.Context, image []byte) ([]domain.ConceptScore, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		User:  c.user,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: conceptPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURI(image),
							Detail: openai.ImageURLDetailLow,
						},
					},
				},
			},
		},
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ClassifierRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		metrics.ClassifierErrorsTotal.WithLabelValues(c.provider, c.model, "api_error").Inc()
		return nil, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.ClassifierRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		metrics.ClassifierErrorsTotal.WithLabelValues(c.provider, c.model, "empty_response").Inc()
		return nil, fmt.Errorf("empty classifier response: %w", domain.ErrClassifierUnavailable)
	}

	concepts, err := parseConcepts(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.ClassifierRequestsTotal.WithLabelValues(c.provider, c.model, "error").Inc()
		metrics.ClassifierErrorsTotal.WithLabelValues(c.provider, c.model, "malformed_response").Inc()
		return nil, fmt.Errorf("%w: %w", err, domain.ErrClassifierUnavailable)
	}

	metrics.ClassifierRequestsTotal.WithLabelValues(c.provider, c.model, "success").Inc()
	metrics.ClassifierRequestDuration.WithLabelValues(c.provider, c.model).Observe(duration.Seconds())

	if c.logger != nil {
		c.logger.Debug("image classified",
			zap.Int("concepts", len(concepts)),
			zap.Duration("duration", duration),
		)
	}

	return concepts, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Classifier) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// dataURI encodes the image bytes as a base64 data URI with a sniffed
// content type.
func dataURI(image []byte) string {
	mime := http.DetectContentType(image)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(image)
}

// parseConcepts decodes the model output. Code fences around the JSON
// array are tolerated.
func parseConcepts(content string) ([]domain.ConceptScore, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var concepts []domain.ConceptScore
	if err := json.Unmarshal([]byte(content), &concepts); err != nil {
		return nil, fmt.Errorf("parse concepts: %w", err)
	}
	return concepts, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrClassifierUnavailable for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrClassifierUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("classifier API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("classifier API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("classifier API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("classifier request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
