package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"medquiz/internal/config"
	"medquiz/internal/domain"

	openai "github.com/sashabaranov/go-openai"
)

// compatGenerator talks to OpenAI-compatible chat-completions APIs
// (Mistral, Groq) through go-openai with a custom base URL.
type compatGenerator struct {
	name   string
	client *openai.Client
	model  string
}

// NewMistralGenerator builds the Mistral backend.
func NewMistralGenerator(cfg config.ProviderConfig) (domain.TextGenerator, error) {
	return newCompatGenerator(ProviderMistral, cfg)
}

// NewGroqGenerator builds the Groq backend.
func NewGroqGenerator(cfg config.ProviderConfig) (domain.TextGenerator, error) {
	return newCompatGenerator(ProviderGroq, cfg)
}

func newCompatGenerator(name string, cfg config.ProviderConfig) (*compatGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%s base URL is required", name)
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &compatGenerator{
		name:   name,
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

func (g *compatGenerator) Name() string {
	return g.name
}

func (g *compatGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.User,
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("%s: status %d: %w", g.name, apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("%s: %w", g.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", g.name)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
