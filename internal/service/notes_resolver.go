package service

import (
	"context"
	"fmt"
	"strings"

	"medquiz/internal/domain"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

// NoteSource is what the user supplied to build a quiz from.
type NoteSource struct {
	NoteText string
	Topic    string
}

// NotesResolver turns a NoteSource into the note body a quiz is built from.
type NotesResolver struct {
	chain *ProviderChain
}

func NewNotesResolver(chain *ProviderChain) *NotesResolver {
	return &NotesResolver{chain: chain}
}

// Resolve returns the trimmed note text when present. Otherwise notes are
// generated for the topic; if no provider answers, a one-line stub naming the
// topic is used so quiz generation can continue.
func (r *NotesResolver) Resolve(ctx context.Context, src NoteSource) (string, error) {
	if text := strings.TrimSpace(src.NoteText); text != "" {
		return text, nil
	}

	topic := strings.TrimSpace(src.Topic)
	if topic == "" {
		return "", domain.NewMissingInputError()
	}

	if r.chain != nil {
		if notes, provider, ok := r.chain.GenerateNotes(ctx, topic); ok {
			logger.Get().Debug("Resolved notes from topic", zap.String("topic", topic), zap.String("provider", provider))
			return notes, nil
		}
	}
	return TopicStub(topic), nil
}

// TopicStub is the note body used for a topic when no provider is available.
func TopicStub(topic string) string {
	return fmt.Sprintf("Topic: %s. Revise from standard textbooks.", topic)
}
