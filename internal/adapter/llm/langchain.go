package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"medquiz/internal/config"
	"medquiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// langchainGenerator adapts any langchaingo model to domain.TextGenerator.
type langchainGenerator struct {
	name  string
	model llms.Model
}

// NewOpenAIGenerator builds the OpenAI chat-completions backend.
func NewOpenAIGenerator(cfg config.ProviderConfig) (domain.TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai API key is required")
	}
	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return &langchainGenerator{name: ProviderOpenAI, model: model}, nil
}

// NewOllamaGenerator builds a backend for a self-hosted Ollama server.
func NewOllamaGenerator(cfg config.ProviderConfig) (domain.TextGenerator, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("ollama server URL is required")
	}
	model, err := ollama.New(
		ollama.WithServerURL(cfg.BaseURL),
		ollama.WithModel(cfg.Model),
		ollama.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return &langchainGenerator{name: ProviderOllama, model: model}, nil
}

func (g *langchainGenerator) Name() string {
	return g.name
}

func (g *langchainGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	messages := make([]llms.MessageContent, 0, 2)
	if req.System != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, req.User))

	opts := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := g.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("%s generate: %w", g.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", g.name)
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
