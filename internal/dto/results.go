package dto

import (
	"encoding/json"
	"time"

	"medquiz/internal/domain"
)

const (
	SaveStatusSkipped  = "skipped"
	SaveStatusNotSaved = "not_saved"
)

// SaveResultRequest is the raw body of a quiz result submission. Field types
// are checked by the attempt service, so everything arrives undecoded.
// @Description Request body for saving a graded quiz
type SaveResultRequest struct {
	SourceType json.RawMessage `json:"sourceType" swaggertype:"string"`
	Topic      json.RawMessage `json:"topic" swaggertype:"string"`
	NoteID     json.RawMessage `json:"noteId,omitempty" swaggertype:"string"`
	Score      json.RawMessage `json:"score" swaggertype:"number"`
	Total      json.RawMessage `json:"total" swaggertype:"number"`
	Questions  json.RawMessage `json:"questions" swaggertype:"array,object"`
}

// SaveResultResponse reports whether a graded quiz was stored
// @Description Result of saving a graded quiz
type SaveResultResponse struct {
	Saved     bool   `json:"saved"`
	AttemptID string `json:"attemptId,omitempty"`
	Status    string `json:"status,omitempty"`
	ResultID  string `json:"resultId,omitempty"`
}

// AttemptResponse is one stored attempt
// @Description A graded quiz attempt
type AttemptResponse struct {
	ID          string                `json:"id"`
	SourceType  string                `json:"sourceType"`
	Topic       string                `json:"topic"`
	NoteID      string                `json:"noteId,omitempty"`
	Score       float64               `json:"score"`
	Total       float64               `json:"total"`
	Percentage  int                   `json:"percentage"`
	Questions   []domain.GradedAnswer `json:"questions"`
	CompletedAt time.Time             `json:"completedAt"`
}

// AttemptHistoryResponse lists a user's attempts, newest first
// @Description A user's quiz history
type AttemptHistoryResponse struct {
	Attempts []AttemptResponse `json:"attempts"`
}

// HistoryQuery holds the query parameters of the history endpoint.
type HistoryQuery struct {
	Limit int `query:"limit"`
}

// AnonymousResult is a graded quiz held in the cache for a signed-out user.
// @Description Cached result of an anonymous quiz
type AnonymousResult struct {
	ResultID    string                `json:"resultId"`
	SourceType  string                `json:"sourceType"`
	Topic       string                `json:"topic"`
	NoteID      string                `json:"noteId,omitempty"`
	Score       float64               `json:"score"`
	Total       float64               `json:"total"`
	Percentage  int                   `json:"percentage"`
	Questions   []domain.GradedAnswer `json:"questions"`
	CompletedAt time.Time             `json:"completedAt"`
}

// NewAttemptResponse converts a stored attempt for the API.
func NewAttemptResponse(a *domain.QuizAttempt) AttemptResponse {
	questions := a.Questions
	if questions == nil {
		questions = []domain.GradedAnswer{}
	}
	return AttemptResponse{
		ID:          a.ID,
		SourceType:  string(a.SourceType),
		Topic:       a.Topic,
		NoteID:      a.NoteID,
		Score:       a.Score,
		Total:       a.Total,
		Percentage:  domain.RoundedPercentage(a.Score, a.Total),
		Questions:   questions,
		CompletedAt: a.CompletedAt,
	}
}
