package service

import (
	"context"
	"strings"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

// TutorFallbackAnswer is returned when no provider answers a doubt.
const TutorFallbackAnswer = "The AI tutor is unavailable right now. " +
	"Look this up in your notes and standard textbooks, then try asking again in a few minutes."

// TutorService answers students' doubts through the provider chain.
type TutorService interface {
	Ask(ctx context.Context, req *dto.TutorRequest) (*dto.TutorResponse, error)
}

type tutorService struct {
	chain *ProviderChain
}

func NewTutorService(chain *ProviderChain) TutorService {
	return &tutorService{chain: chain}
}

func (s *tutorService) Ask(ctx context.Context, req *dto.TutorRequest) (*dto.TutorResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("question")}
	}

	if s.chain != nil {
		if answer, provider, ok := s.chain.AskTutor(ctx, question, strings.TrimSpace(req.Notes)); ok {
			return &dto.TutorResponse{Answer: answer, Source: provider}, nil
		}
	}

	logger.Get().Info("Tutor providers exhausted, using fallback answer", zap.Int("question_chars", len(question)))
	return &dto.TutorResponse{Answer: TutorFallbackAnswer, Source: SourceTemplate}, nil
}
