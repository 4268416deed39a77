package llm

import (
	"context"

	"medquiz/internal/config"
	"medquiz/internal/domain"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMistral   = "mistral"
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// BuildGenerators returns the configured backends in chain order:
// openai, gemini, mistral, groq, anthropic, ollama. Entries without
// credentials are skipped; an entry whose client cannot be constructed is
// logged and skipped as well. Each backend is wrapped with tracing.
func BuildGenerators(ctx context.Context, cfg config.ProvidersConfig) []domain.TextGenerator {
	type entry struct {
		name       string
		configured bool
		build      func() (domain.TextGenerator, error)
	}
	entries := []entry{
		{ProviderOpenAI, cfg.OpenAI.APIKey != "", func() (domain.TextGenerator, error) { return NewOpenAIGenerator(cfg.OpenAI) }},
		{ProviderGemini, cfg.Gemini.APIKey != "", func() (domain.TextGenerator, error) { return NewGeminiGenerator(ctx, cfg.Gemini) }},
		{ProviderMistral, cfg.Mistral.APIKey != "", func() (domain.TextGenerator, error) { return NewMistralGenerator(cfg.Mistral) }},
		{ProviderGroq, cfg.Groq.APIKey != "", func() (domain.TextGenerator, error) { return NewGroqGenerator(cfg.Groq) }},
		{ProviderAnthropic, cfg.Anthropic.APIKey != "", func() (domain.TextGenerator, error) { return NewAnthropicGenerator(cfg.Anthropic) }},
		{ProviderOllama, cfg.Ollama.BaseURL != "", func() (domain.TextGenerator, error) { return NewOllamaGenerator(cfg.Ollama) }},
	}

	l := logger.Get()
	generators := make([]domain.TextGenerator, 0, len(entries))
	for _, e := range entries {
		if !e.configured {
			l.Debug("Provider not configured, skipping", zap.String("provider", e.name))
			continue
		}
		g, err := e.build()
		if err != nil {
			l.Warn("Failed to initialize provider, skipping", zap.String("provider", e.name), zap.Error(err))
			continue
		}
		generators = append(generators, WithTracing(g))
		l.Info("Provider initialized", zap.String("provider", e.name))
	}
	return generators
}
