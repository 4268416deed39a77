package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medquiz/internal/config"
	"medquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerator_Generate(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	defer server.Close()

	g, err := NewOpenAIGenerator(config.ProviderConfig{
		APIKey:  "sk-test",
		Model:   "gpt-4o-mini",
		BaseURL: server.URL,
		Timeout: 5 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, g.Name())

	text, err := g.Generate(context.Background(), domain.GenerationRequest{
		System:      "notes system",
		User:        "Write study notes on this topic for MBBS/Nursing students: Asthma",
		MaxTokens:   1500,
		Temperature: 0.5,
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"q"}]`, text)
	assert.Equal(t, "gpt-4o-mini", captured["model"])
}

func TestOpenAIGenerator_RequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator(config.ProviderConfig{Model: "gpt-4o-mini"})
	assert.Error(t, err)
}

func TestOllamaGenerator_RequiresServerURL(t *testing.T) {
	_, err := NewOllamaGenerator(config.ProviderConfig{Model: "qwen3:0.6b"})
	assert.Error(t, err)
}

func TestOllamaGenerator_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"qwen3:0.6b","created_at":"2024-01-01T00:00:00Z","message":{"role":"assistant","content":"Asthma notes"},"done":true}`))
	}))
	defer server.Close()

	g, err := NewOllamaGenerator(config.ProviderConfig{BaseURL: server.URL, Model: "qwen3:0.6b", Timeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, ProviderOllama, g.Name())

	text, err := g.Generate(context.Background(), domain.GenerationRequest{User: "notes please", Temperature: 0.5})
	require.NoError(t, err)
	assert.Equal(t, "Asthma notes", text)
}
