// Package openai provides the remote embedding provider. It speaks the
// OpenAI embeddings API through any compatible gateway via a configurable
// base URL.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "text-embedding-3-small"
	defaultTimeout = 30 * time.Second

	// maxInputChars bounds how much text is sent per request.
	maxInputChars = 8000
)

// Config configures the remote embeddings client.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

// Client is a remote embeddings client implementing the Embedder interface.
// It is safe for concurrent use: queries may embed through a shared client
// while a store is being searched in parallel.
type Client struct {
	client    *openai.Client
	model     string
	timeout   time.Duration
	dimension atomic.Int64
}

// NewClient creates a remote embeddings client. A missing or placeholder
// API key is a construction-time error; callers are expected to fall back
// to the hash embedder in that case.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "OPENAI_API_KEY"
	}
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" || strings.HasPrefix(key, "your_") {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	cc := openai.DefaultConfig(key)
	cc.BaseURL = cfg.BaseURL
	return &Client{
		client:  openai.NewClientWithConfig(cc),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return "openai" }

// Dimension returns the dimensionality of produced vectors. It is zero
// until the first successful Embed call reveals the provider's dimension.
func (c *Client) Dimension() int { return int(c.dimension.Load()) }

// Embed requests an embedding for at most the first maxInputChars
// characters of text. Every call is bounded by the configured timeout.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{truncate(text, maxInputChars)},
		Model: openai.EmbeddingModel(c.model),
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("no embedding returned")
	}
	raw := resp.Data[0].Embedding
	vec := make([]float64, len(raw))
	for i, v := range raw {
		vec[i] = float64(v)
	}
	c.dimension.CompareAndSwap(0, int64(len(vec)))
	return vec, nil
}

func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
