package service

import (
	"context"
	"fmt"

	"medquiz/internal/domain"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

// SourceTemplate names the provider-less generator in responses and logs.
const SourceTemplate = "template"

// ProviderQuestionCount is how many questions providers are asked for.
const ProviderQuestionCount = 5

// SynthesizedQuiz is a question batch plus the backend that produced it.
type SynthesizedQuiz struct {
	Batch  domain.QuestionBatch
	Source string
}

// QuizSynthesizer turns note text into a question batch, first through the
// provider chain and otherwise through TemplateQuestions.
type QuizSynthesizer struct {
	chain *ProviderChain
}

func NewQuizSynthesizer(chain *ProviderChain) *QuizSynthesizer {
	return &QuizSynthesizer{chain: chain}
}

// Synthesize never returns an empty batch, and the batch style always equals style.
func (s *QuizSynthesizer) Synthesize(ctx context.Context, noteText string, difficulty domain.Difficulty, style domain.QuestionStyle) SynthesizedQuiz {
	if s.chain != nil {
		questions, provider, ok := s.chain.GenerateQuiz(ctx, QuizSystemPrompt(difficulty, style), noteText, style)
		if ok {
			return SynthesizedQuiz{
				Batch:  domain.QuestionBatch{Style: style, Questions: questions},
				Source: provider,
			}
		}
	}

	questions := TemplateQuestions(noteText, style)
	logger.Get().Info("Using template quiz",
		zap.String("style", string(style)),
		zap.Int("questions", len(questions)))
	return SynthesizedQuiz{
		Batch:  domain.QuestionBatch{Style: style, Questions: questions},
		Source: SourceTemplate,
	}
}

// QuizSystemPrompt is the instruction sent with the note text.
func QuizSystemPrompt(difficulty domain.Difficulty, style domain.QuestionStyle) string {
	var kind, shape string
	if style == domain.StyleWritten {
		kind = "short written-answer"
		shape = `Each item must be an object: {"question": string, "expectedAnswer": string (a short phrase or sentence), "explanation": string}.`
	} else {
		kind = "multiple-choice"
		shape = `Each item must be an object: {"question": string, "options": [exactly 4 strings], "correctIndex": number from 0 to 3, "explanation": string}.`
	}
	return fmt.Sprintf(
		"You are a medical quiz generator for MBBS and Nursing students. "+
			"From the notes provided, create exactly %d %s questions. %s\n%s\n"+
			"Respond with ONLY the JSON array of questions. No markdown, no commentary.",
		ProviderQuestionCount, kind, difficulty.Instruction(), shape,
	)
}
