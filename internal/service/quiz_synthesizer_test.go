package service

import (
	"context"
	"errors"
	"testing"

	"medquiz/internal/adapter/llm/llmtest"
	"medquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const providerMCQ = `Here you go:
[
 {"question":"Which valve lies between the left atrium and ventricle?","options":["Mitral","Aortic","Tricuspid","Pulmonary"],"correctIndex":0,"explanation":"Mitral."},
 {"question":"Normal adult heart rate?","options":["60-100","20-40"],"correctIndex":"0"}
]
Hope this helps`

func TestQuizSynthesizer_ProviderPath(t *testing.T) {
	gen := llmtest.NewGenerator("openai", llmtest.Response{Text: providerMCQ})
	s := NewQuizSynthesizer(NewProviderChain(gen))

	quiz := s.Synthesize(context.Background(), cardioNotes, domain.DifficultyHard, domain.StyleMCQ)
	assert.Equal(t, "openai", quiz.Source)
	assert.Equal(t, domain.StyleMCQ, quiz.Batch.Style)
	require.Len(t, quiz.Batch.Questions, 2)

	second := quiz.Batch.Questions[1].(*domain.MultipleChoiceQuestion)
	assert.Equal(t, [4]string{"60-100", "20-40", "Option C", "Option D"}, second.Options)

	prompt := gen.Calls[0].System
	assert.Contains(t, prompt, "exactly 5 multiple-choice questions")
	assert.Contains(t, prompt, domain.DifficultyHard.Instruction())
	assert.Contains(t, prompt, "ONLY the JSON array")
	assert.Equal(t, cardioNotes, gen.Calls[0].User)
}

func TestQuizSynthesizer_WrittenPrompt(t *testing.T) {
	gen := llmtest.NewGenerator("groq", llmtest.Response{Text: `[{"question":"Define shock","expectedAnswer":"inadequate perfusion"}]`})
	quiz := NewQuizSynthesizer(NewProviderChain(gen)).Synthesize(context.Background(), cardioNotes, domain.DifficultyEasy, domain.StyleWritten)

	require.Len(t, quiz.Batch.Questions, 1)
	assert.Equal(t, domain.StyleWritten, quiz.Batch.Questions[0].Style())
	assert.Contains(t, gen.Calls[0].System, "expectedAnswer")
}

func TestQuizSynthesizer_FallsBackToTemplate(t *testing.T) {
	tests := []struct {
		name string
		gens []domain.TextGenerator
	}{
		{name: "no providers"},
		{name: "all fail", gens: []domain.TextGenerator{
			llmtest.NewGenerator("openai", llmtest.Response{Err: errors.New("503")}),
			llmtest.NewGenerator("ollama", llmtest.Response{Text: "no json here"}),
		}},
		{name: "empty array", gens: []domain.TextGenerator{
			llmtest.NewGenerator("openai", llmtest.Response{Text: "[]"}),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewQuizSynthesizer(NewProviderChain(tt.gens...))
			quiz := s.Synthesize(context.Background(), cardioNotes, domain.DifficultyNormal, domain.StyleMCQ)
			assert.Equal(t, SourceTemplate, quiz.Source)
			assert.Len(t, quiz.Batch.Questions, 3)
		})
	}
}

func TestQuizSynthesizer_EmptyArraySkipsToNextProvider(t *testing.T) {
	s := NewQuizSynthesizer(NewProviderChain(
		llmtest.NewGenerator("openai", llmtest.Response{Text: "[]"}),
		llmtest.NewGenerator("mistral", llmtest.Response{Text: providerMCQ}),
	))

	quiz := s.Synthesize(context.Background(), cardioNotes, domain.DifficultyNormal, domain.StyleMCQ)
	assert.Equal(t, "mistral", quiz.Source)
	assert.Len(t, quiz.Batch.Questions, 2)
}

func TestQuizSynthesizer_NilChain(t *testing.T) {
	quiz := NewQuizSynthesizer(nil).Synthesize(context.Background(), "", domain.DifficultyNormal, domain.StyleWritten)
	assert.Equal(t, SourceTemplate, quiz.Source)
	require.Len(t, quiz.Batch.Questions, 1)
	assert.Equal(t, domain.StyleWritten, quiz.Batch.Style)
}
