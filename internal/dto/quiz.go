package dto

import (
	"encoding/json"

	"medquiz/internal/domain"
)

// GenerateQuizRequest represents a quiz generation request
// @Description Request body for generating a quiz from notes or a topic
type GenerateQuizRequest struct {
	NoteText      string `json:"noteText"`
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`    // easy | normal | hard | expert
	QuestionStyle string `json:"questionStyle"` // mcq | written
}

// GenerateQuizResponse represents a generated quiz
// @Description Generated questions; every question matches questionStyle
type GenerateQuizResponse struct {
	Questions     []domain.Question `json:"questions" swaggertype:"array,object"`
	QuestionStyle string            `json:"questionStyle"`
	Source        string            `json:"source"` // provider name or "template"
}

// GradeQuizRequest represents a filled-in quiz submitted for grading
// @Description Request body for grading a quiz
type GradeQuizRequest struct {
	QuestionStyle string                  `json:"questionStyle"`
	Questions     json.RawMessage         `json:"questions" swaggertype:"array,object"`
	Responses     []domain.Response       `json:"responses"`
	History       []domain.AttemptSummary `json:"history,omitempty"`
}

// GradeQuizResponse represents a graded quiz
// @Description Grading result with a feedback message
type GradeQuizResponse struct {
	Score      int                   `json:"score"`
	Total      int                   `json:"total"`
	Percentage int                   `json:"percentage"`
	Feedback   string                `json:"feedback"`
	Answers    []domain.GradedAnswer `json:"answers"`
}
