package service

import (
	"context"
	"fmt"
	"strings"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

// ProviderAuto lets every configured provider answer a notes request.
const ProviderAuto = "auto"

// NotesService generates standalone study notes.
type NotesService interface {
	GenerateNotes(ctx context.Context, req *dto.GenerateNotesRequest) (*dto.NotesResponse, error)
}

type notesService struct {
	chain *ProviderChain
}

func NewNotesService(chain *ProviderChain) NotesService {
	return &notesService{chain: chain}
}

// GenerateNotes implements NotesService. When no allowed provider answers the
// response carries a markdown outline for the topic.
func (s *notesService) GenerateNotes(ctx context.Context, req *dto.GenerateNotesRequest) (*dto.NotesResponse, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("topic")}
	}

	var allowed []string
	if p := strings.ToLower(strings.TrimSpace(req.Provider)); p != "" && p != ProviderAuto {
		allowed = []string{p}
	}

	if s.chain != nil {
		if content, provider, ok := s.chain.GenerateNotes(ctx, topic, allowed...); ok {
			return &dto.NotesResponse{Title: topic, Content: content, Source: provider}, nil
		}
	}

	logger.Get().Info("Using template notes", zap.String("topic", topic), zap.Strings("allowed", allowed))
	return &dto.NotesResponse{Title: topic, Content: TemplateNotes(topic), Source: SourceTemplate}, nil
}

// TemplateNotes is a markdown outline for topic.
func TemplateNotes(topic string) string {
	return fmt.Sprintf(`# %[1]s

## Definition
%[1]s is an important topic in medical and nursing education. Review your textbooks and lectures for accurate definitions and scope.

## Key points
- Core concept 1: revise from your notes
- Core concept 2: revise from your notes
- Clinical relevance: apply to practice

## Summary
Use this as a starting outline. Add details from your course materials, and generate a quiz from this note to test yourself.`, topic)
}
