package domain

import (
	"math"
	"time"
)

type SourceType string

const (
	SourceTopic SourceType = "topic"
	SourceNote  SourceType = "note"
)

// ParseSourceType maps "note" to SourceNote and anything else to SourceTopic.
func ParseSourceType(s string) SourceType {
	if s == string(SourceNote) {
		return SourceNote
	}
	return SourceTopic
}

// GradedAnswer is one question of a finished quiz together with what the
// user submitted. Index fields use -1 for "not applicable".
type GradedAnswer struct {
	Question          string   `json:"question"`
	Options           []string `json:"options"`
	CorrectIndex      int      `json:"correctIndex"`
	UserAnswerIndex   int      `json:"userAnswerIndex"`
	Correct           bool     `json:"correct"`
	Explanation       string   `json:"explanation"`
	ExpectedAnswer    string   `json:"expectedAnswer"`
	UserWrittenAnswer string   `json:"userWrittenAnswer"`
}

// QuizAttempt is a persisted, graded quiz.
type QuizAttempt struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	SourceType  SourceType     `json:"sourceType"`
	Topic       string         `json:"topic"`
	NoteID      string         `json:"noteId,omitempty"`
	Score       float64        `json:"score"`
	Total       float64        `json:"total"`
	Questions   []GradedAnswer `json:"questions"`
	CompletedAt time.Time      `json:"completedAt"`
}

// Summary reduces an attempt to what feedback selection needs.
func (a *QuizAttempt) Summary() AttemptSummary {
	return AttemptSummary{
		Score:       a.Score,
		Total:       a.Total,
		Topic:       a.Topic,
		CompletedAt: a.CompletedAt,
	}
}

type AttemptSummary struct {
	Score       float64   `json:"score"`
	Total       float64   `json:"total"`
	Topic       string    `json:"topic,omitempty"`
	CompletedAt time.Time `json:"completedAt,omitempty"`
}

// Percentage is score/total*100, or 0 when total is 0.
func (s AttemptSummary) Percentage() float64 {
	if s.Total == 0 {
		return 0
	}
	return s.Score / s.Total * 100
}

// RoundedPercentage rounds half away from zero, like the grading screen shows
// it. Client-reported scores can be anything, so the result is clamped to 0..100.
func RoundedPercentage(score, total float64) int {
	if total <= 0 {
		return 0
	}
	pct := math.Round(score / total * 100)
	switch {
	case math.IsNaN(pct), pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return int(pct)
}
