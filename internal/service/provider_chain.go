package service

import (
	"context"
	"errors"
	"strings"

	"medquiz/internal/domain"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

const (
	// MaxPromptNoteRunes bounds the note text forwarded to providers for quiz generation.
	MaxPromptNoteRunes = 4000

	quizTemperature  = 0.3
	quizMaxTokens    = 2000
	notesTemperature = 0.5
	notesMaxTokens   = 1500

	notesSystemPrompt = "You are a medical education assistant for MBBS and Nursing students. " +
		"Given a topic name, write clear, structured study notes suitable for revision. " +
		"Include key definitions, important points, and clinical relevance. " +
		"Write only the notes content, no preamble."
	notesUserPrefix = "Write study notes on this topic for MBBS/Nursing students: "

	tutorTemperature  = 0.3
	tutorMaxTokens    = 1000
	tutorSystemPrompt = "You are a medical education assistant for MBBS and Nursing students. " +
		"Explain concepts simply, exam-oriented, and clinically relevant."
)

var (
	errEmptyCompletion = errors.New("empty completion")
	errEmptyQuiz       = errors.New("no questions in answer")
)

// ProviderChain tries text-generation backends in order and returns the first
// acceptable answer. Each backend gets exactly one attempt per call.
type ProviderChain struct {
	generators []domain.TextGenerator
}

func NewProviderChain(generators ...domain.TextGenerator) *ProviderChain {
	return &ProviderChain{generators: generators}
}

// Providers lists the backend names in chain order.
func (c *ProviderChain) Providers() []string {
	names := make([]string, 0, len(c.generators))
	for _, g := range c.generators {
		names = append(names, g.Name())
	}
	return names
}

// GenerateNotes asks for study notes on topic. allowed restricts which
// backends may answer; an empty list allows all of them. The returned bool is
// false when every allowed backend failed.
func (c *ProviderChain) GenerateNotes(ctx context.Context, topic string, allowed ...string) (notes string, provider string, ok bool) {
	req := domain.GenerationRequest{
		System:      notesSystemPrompt,
		User:        notesUserPrefix + topic,
		MaxTokens:   notesMaxTokens,
		Temperature: notesTemperature,
	}
	return c.run(ctx, "notes", req, allowed, func(text string) error { return nil })
}

// GenerateQuiz sends the quiz system prompt and the (truncated) note text and
// returns the questions decoded from the first backend whose answer holds a
// JSON array with at least one usable question of the given style.
func (c *ProviderChain) GenerateQuiz(ctx context.Context, systemPrompt, noteText string, style domain.QuestionStyle) ([]domain.Question, string, bool) {
	req := domain.GenerationRequest{
		System:      systemPrompt,
		User:        TruncateRunes(noteText, MaxPromptNoteRunes),
		MaxTokens:   quizMaxTokens,
		Temperature: quizTemperature,
	}

	var questions []domain.Question
	_, provider, ok := c.run(ctx, "quiz", req, nil, func(text string) error {
		raw, err := ExtractJSONArray(text)
		if err != nil {
			return err
		}
		decoded, err := domain.DecodeQuestions(style, raw)
		if err != nil {
			return err
		}
		if len(decoded) == 0 {
			return errEmptyQuiz
		}
		questions = decoded
		return nil
	})
	if !ok {
		return nil, "", false
	}
	return questions, provider, true
}

// AskTutor sends a student's doubt, with any notes they are revising from,
// and returns the first non-empty explanation.
func (c *ProviderChain) AskTutor(ctx context.Context, question, notes string) (answer string, provider string, ok bool) {
	req := domain.GenerationRequest{
		System:      tutorSystemPrompt,
		User:        "Student doubt: " + question + "\nNotes: " + TruncateRunes(notes, MaxPromptNoteRunes),
		MaxTokens:   tutorMaxTokens,
		Temperature: tutorTemperature,
	}
	return c.run(ctx, "tutor", req, nil, func(text string) error { return nil })
}

func (c *ProviderChain) run(
	ctx context.Context,
	purpose string,
	req domain.GenerationRequest,
	allowed []string,
	accept func(text string) error,
) (string, string, bool) {
	for _, g := range c.generators {
		if !providerAllowed(g.Name(), allowed) {
			continue
		}
		if err := ctx.Err(); err != nil {
			logger.Get().Warn("Provider chain stopped", zap.String("purpose", purpose), zap.Error(err))
			return "", "", false
		}

		text, err := g.Generate(ctx, req)
		text = strings.TrimSpace(text)
		if err == nil && text == "" {
			err = errEmptyCompletion
		}
		if err == nil {
			err = accept(text)
		}
		if err != nil {
			unavailable := &domain.ProviderUnavailableError{Provider: g.Name(), Err: err}
			logger.Get().Warn("Provider failed, trying next",
				zap.String("purpose", purpose),
				zap.String("provider", g.Name()),
				zap.Error(unavailable))
			continue
		}

		logger.Get().Info("Provider answered",
			zap.String("purpose", purpose),
			zap.String("provider", g.Name()),
			zap.Int("chars", len(text)))
		return text, g.Name(), true
	}

	logger.Get().Warn("All providers exhausted", zap.String("purpose", purpose), zap.Strings("allowed", allowed))
	return "", "", false
}

func providerAllowed(name string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == name {
			return true
		}
	}
	return false
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
