package repository

import (
	"context"
	"fmt"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/repository/models"
	"medquiz/internal/util"
)

const attemptColumns = "ID, USER_ID, SOURCE_TYPE, TOPIC, NOTE_ID, SCORE, TOTAL, QUESTIONS, COMPLETED_AT, CREATED_AT"

// sqlxAttemptRepository implements domain.AttemptRepository on Oracle through sqlx.
type sqlxAttemptRepository struct {
	db DBTX
}

// NewAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewAttemptRepository(db DBTX) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toDomainAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	questions := []domain.GradedAnswer(m.Questions)
	if questions == nil {
		questions = []domain.GradedAnswer{}
	}
	return &domain.QuizAttempt{
		ID:          m.ID,
		UserID:      m.UserID,
		SourceType:  domain.ParseSourceType(m.SourceType),
		Topic:       util.NullStringValue(m.Topic),
		NoteID:      util.NullStringValue(m.NoteID),
		Score:       m.Score,
		Total:       m.Total,
		Questions:   questions,
		CompletedAt: m.CompletedAt,
	}
}

func fromDomainAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	return &models.QuizAttempt{
		ID:          a.ID,
		UserID:      a.UserID,
		SourceType:  string(domain.ParseSourceType(string(a.SourceType))),
		Topic:       util.StringToNullString(a.Topic),
		NoteID:      util.StringToNullString(a.NoteID),
		Score:       a.Score,
		Total:       a.Total,
		Questions:   models.GradedAnswers(a.Questions),
		CompletedAt: a.CompletedAt,
	}
}

// SaveAttempt inserts the attempt, assigning ID and CompletedAt when they are empty.
func (r *sqlxAttemptRepository) SaveAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	if attempt == nil {
		return fmt.Errorf("save attempt: nil attempt")
	}
	if attempt.UserID == "" {
		return fmt.Errorf("save attempt: user id is required")
	}
	if attempt.ID == "" {
		attempt.ID = util.NewULID()
	}
	now := time.Now().UTC()
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = now
	}

	m := fromDomainAttempt(attempt)
	m.CreatedAt = now

	query := `INSERT INTO quiz_attempts (` + attemptColumns + `)
	          VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9, :10)`

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.UserID,
		m.SourceType,
		m.Topic,
		m.NoteID,
		m.Score,
		m.Total,
		m.Questions,
		m.CompletedAt,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert quiz attempt %s: %w", m.ID, err)
	}
	return nil
}

// ListAttemptsByUser returns up to limit attempts for userID, newest first.
func (r *sqlxAttemptRepository) ListAttemptsByUser(ctx context.Context, userID string, limit int) ([]domain.QuizAttempt, error) {
	if limit <= 0 {
		limit = 10
	}

	// Oracle: ROW_NUMBER() keeps the limit a bind variable.
	query := `SELECT ` + attemptColumns + ` FROM (
	            SELECT ` + attemptColumns + `, ROW_NUMBER() OVER (ORDER BY COMPLETED_AT DESC, ID DESC) AS RN
	            FROM quiz_attempts WHERE USER_ID = :1
	          ) WHERE RN <= :2 ORDER BY RN`

	var rows []models.QuizAttempt
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts for user %s: %w", userID, err)
	}

	attempts := make([]domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, *toDomainAttempt(&rows[i]))
	}
	return attempts, nil
}
