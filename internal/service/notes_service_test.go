package service

import (
	"context"
	"errors"
	"testing"

	"medquiz/internal/adapter/llm/llmtest"
	"medquiz/internal/domain"
	"medquiz/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesService_GenerateNotes_Auto(t *testing.T) {
	openai := llmtest.NewGenerator("openai", llmtest.Response{Err: errors.New("rate limited")})
	gemini := llmtest.NewGenerator("gemini", llmtest.Response{Text: "## Asthma\nChronic airway inflammation."})
	svc := NewNotesService(NewProviderChain(openai, gemini))

	resp, err := svc.GenerateNotes(context.Background(), &dto.GenerateNotesRequest{Topic: "Asthma", Provider: "auto"})
	require.NoError(t, err)
	assert.Equal(t, &dto.NotesResponse{Title: "Asthma", Content: "## Asthma\nChronic airway inflammation.", Source: "gemini"}, resp)
	assert.Equal(t, 1, openai.CallCount())
}

func TestNotesService_GenerateNotes_SingleProvider(t *testing.T) {
	openai := llmtest.NewGenerator("openai", llmtest.Response{Text: "openai notes"})
	groq := llmtest.NewGenerator("groq", llmtest.Response{Text: "groq notes"})
	svc := NewNotesService(NewProviderChain(openai, groq))

	resp, err := svc.GenerateNotes(context.Background(), &dto.GenerateNotesRequest{Topic: "Asthma", Provider: " GROQ "})
	require.NoError(t, err)
	assert.Equal(t, "groq", resp.Source)
	assert.Equal(t, "groq notes", resp.Content)
	assert.Equal(t, 0, openai.CallCount())
}

func TestNotesService_GenerateNotes_TemplateFallback(t *testing.T) {
	groq := llmtest.NewGenerator("groq", llmtest.Response{Text: "groq notes"})
	svc := NewNotesService(NewProviderChain(groq))

	resp, err := svc.GenerateNotes(context.Background(), &dto.GenerateNotesRequest{Topic: "Diabetes", Provider: "anthropic"})
	require.NoError(t, err)
	assert.Equal(t, SourceTemplate, resp.Source)
	assert.Equal(t, "Diabetes", resp.Title)
	assert.Equal(t, TemplateNotes("Diabetes"), resp.Content)
	assert.Contains(t, resp.Content, "# Diabetes\n\n## Definition\nDiabetes is an important topic")
	assert.Equal(t, 0, groq.CallCount())
}

func TestNotesService_GenerateNotes_NilChain(t *testing.T) {
	resp, err := NewNotesService(nil).GenerateNotes(context.Background(), &dto.GenerateNotesRequest{Topic: "Shock"})
	require.NoError(t, err)
	assert.Equal(t, SourceTemplate, resp.Source)
}

func TestNotesService_GenerateNotes_MissingTopic(t *testing.T) {
	_, err := NewNotesService(nil).GenerateNotes(context.Background(), &dto.GenerateNotesRequest{Topic: "  "})
	var validationErrs domain.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "topic", validationErrs[0].Field)
}
