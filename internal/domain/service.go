package domain

import "context"

// GenerationRequest is a single prompt sent to a text-generation backend.
type GenerationRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// TextGenerator is one third-party text-generation backend.
type TextGenerator interface {
	// Name identifies the backend in logs and provider filters ("openai", "groq", ...).
	Name() string
	// Generate returns the raw completion text.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// AttemptRepository persists graded quiz attempts.
type AttemptRepository interface {
	// SaveAttempt stores the attempt. ID and CompletedAt are assigned when empty.
	SaveAttempt(ctx context.Context, attempt *QuizAttempt) error

	// ListAttemptsByUser returns a user's attempts, newest first.
	ListAttemptsByUser(ctx context.Context, userID string, limit int) ([]QuizAttempt, error)
}
