package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medquiz/internal/domain"
)

// QuizAttempt is a row of QUIZ_ATTEMPTS.
type QuizAttempt struct {
	ID          string         `db:"ID"`          // ULID
	UserID      string         `db:"USER_ID"`     // owner, from the access token
	SourceType  string         `db:"SOURCE_TYPE"` // "topic" or "note"
	Topic       sql.NullString `db:"TOPIC"`
	NoteID      sql.NullString `db:"NOTE_ID"` // set when the quiz came from a saved note
	Score       float64        `db:"SCORE"`
	Total       float64        `db:"TOTAL"`
	Questions   GradedAnswers  `db:"QUESTIONS"` // JSON stored in a CLOB
	CompletedAt time.Time      `db:"COMPLETED_AT"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// GradedAnswers stores the per-question breakdown as a JSON array.
type GradedAnswers []domain.GradedAnswer

// Value implements the driver.Valuer interface
func (g GradedAnswers) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]domain.GradedAnswer(g))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (g *GradedAnswers) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*g = GradedAnswers{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("GradedAnswers Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(data) == 0 || string(data) == "null" {
		*g = GradedAnswers{}
		return nil
	}
	return json.Unmarshal(data, (*[]domain.GradedAnswer)(g))
}
