package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/logger"
	"medquiz/internal/util"

	"go.uber.org/zap"
)

const (
	// MaxHistoryLimit caps how many attempts the history endpoint returns.
	MaxHistoryLimit = 50
)

// AttemptService records graded quizzes and reads them back.
type AttemptService interface {
	// Record stores a graded quiz. userID is empty for signed-out users, whose
	// results go to the short-lived cache instead. A storage failure is
	// reported in the response, not as an error.
	Record(ctx context.Context, userID string, req *dto.SaveResultRequest) (*dto.SaveResultResponse, error)
	ListAttempts(ctx context.Context, userID string, limit int) (*dto.AttemptHistoryResponse, error)
	RecentHistory(ctx context.Context, userID string) ([]domain.AttemptSummary, error)
	GetAnonymousResult(ctx context.Context, resultID string) (*dto.AnonymousResult, error)
}

type attemptService struct {
	repo        domain.AttemptRepository
	resultCache AnonymousResultCacheService
}

func NewAttemptService(repo domain.AttemptRepository, resultCache AnonymousResultCacheService) AttemptService {
	if resultCache == nil {
		resultCache = &noopAnonymousResultCacheService{}
	}
	return &attemptService{repo: repo, resultCache: resultCache}
}

func (s *attemptService) Record(ctx context.Context, userID string, req *dto.SaveResultRequest) (*dto.SaveResultResponse, error) {
	attempt, err := DecodeAttemptPayload(req)
	if err != nil {
		return nil, err
	}
	attempt.UserID = userID

	if userID == "" {
		return s.recordAnonymous(ctx, attempt), nil
	}

	if s.repo == nil {
		logger.Get().Error("Attempt repository not configured, result not saved", zap.String("userID", userID))
		return &dto.SaveResultResponse{Saved: false, Status: dto.SaveStatusNotSaved}, nil
	}
	if err := s.repo.SaveAttempt(ctx, attempt); err != nil {
		logger.Get().Error("Failed to save quiz attempt",
			zap.String("userID", userID),
			zap.Error(domain.NewPersistenceFailureError(err)))
		return &dto.SaveResultResponse{Saved: false, Status: dto.SaveStatusNotSaved}, nil
	}

	logger.Get().Info("Quiz attempt saved",
		zap.String("userID", userID),
		zap.String("attemptID", attempt.ID),
		zap.Float64("score", attempt.Score),
		zap.Float64("total", attempt.Total))
	return &dto.SaveResultResponse{Saved: true, AttemptID: attempt.ID}, nil
}

func (s *attemptService) recordAnonymous(ctx context.Context, attempt *domain.QuizAttempt) *dto.SaveResultResponse {
	resultID := util.NewULID()
	result := &dto.AnonymousResult{
		ResultID:    resultID,
		SourceType:  string(attempt.SourceType),
		Topic:       attempt.Topic,
		NoteID:      attempt.NoteID,
		Score:       attempt.Score,
		Total:       attempt.Total,
		Percentage:  domain.RoundedPercentage(attempt.Score, attempt.Total),
		Questions:   attempt.Questions,
		CompletedAt: time.Now().UTC(),
	}

	resp := &dto.SaveResultResponse{Saved: false, Status: dto.SaveStatusSkipped}
	if err := s.resultCache.Put(ctx, resultID, result); err != nil {
		logger.Get().Warn("Anonymous result not cached", zap.Error(err))
		return resp
	}
	resp.ResultID = resultID
	return resp
}

func (s *attemptService) ListAttempts(ctx context.Context, userID string, limit int) (*dto.AttemptHistoryResponse, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("Sign in to view your quiz history.")
	}
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	if s.repo == nil {
		return nil, domain.NewInternalError("Failed to load quiz history.", fmt.Errorf("attempt repository not configured"))
	}

	attempts, err := s.repo.ListAttemptsByUser(ctx, userID, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz history.", err)
	}

	resp := &dto.AttemptHistoryResponse{Attempts: make([]dto.AttemptResponse, 0, len(attempts))}
	for i := range attempts {
		resp.Attempts = append(resp.Attempts, dto.NewAttemptResponse(&attempts[i]))
	}
	return resp, nil
}

// RecentHistory returns the user's latest attempts for feedback selection.
func (s *attemptService) RecentHistory(ctx context.Context, userID string) ([]domain.AttemptSummary, error) {
	if userID == "" || s.repo == nil {
		return nil, nil
	}
	attempts, err := s.repo.ListAttemptsByUser(ctx, userID, FeedbackHistoryLimit)
	if err != nil {
		return nil, domain.NewInternalError("failed to load recent attempts", err)
	}
	summaries := make([]domain.AttemptSummary, 0, len(attempts))
	for i := range attempts {
		summaries = append(summaries, attempts[i].Summary())
	}
	return summaries, nil
}

func (s *attemptService) GetAnonymousResult(ctx context.Context, resultID string) (*dto.AnonymousResult, error) {
	result, err := s.resultCache.Get(ctx, resultID)
	if errors.Is(err, ErrAnonymousResultNotFound) {
		return nil, domain.NewNotFoundError("Quiz result not found or expired.")
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DecodeAttemptPayload checks a result submission and fills per-question
// defaults. score and total must be JSON numbers and questions a JSON array;
// anything else is an INVALID_GRADING_PAYLOAD error.
func DecodeAttemptPayload(req *dto.SaveResultRequest) (*domain.QuizAttempt, error) {
	if req == nil {
		return nil, domain.NewInvalidGradingPayloadError("empty body")
	}

	score, ok := jsonNumber(req.Score)
	if !ok {
		return nil, domain.NewInvalidGradingPayloadError("score must be a number")
	}
	total, ok := jsonNumber(req.Total)
	if !ok {
		return nil, domain.NewInvalidGradingPayloadError("total must be a number")
	}

	var items []json.RawMessage
	if !isJSONArray(req.Questions) || json.Unmarshal(req.Questions, &items) != nil {
		return nil, domain.NewInvalidGradingPayloadError("questions must be an array")
	}

	sourceType, _ := jsonString(req.SourceType)
	topic, _ := jsonString(req.Topic)
	noteID, _ := jsonString(req.NoteID)

	questions := make([]domain.GradedAnswer, 0, len(items))
	for _, item := range items {
		questions = append(questions, decodeGradedAnswer(item))
	}

	return &domain.QuizAttempt{
		SourceType: domain.ParseSourceType(sourceType),
		Topic:      topic,
		NoteID:     noteID,
		Score:      score,
		Total:      total,
		Questions:  questions,
	}, nil
}

func decodeGradedAnswer(raw json.RawMessage) domain.GradedAnswer {
	var fields map[string]interface{}
	_ = json.Unmarshal(raw, &fields)

	answer := domain.GradedAnswer{
		Options:         []string{},
		CorrectIndex:    -1,
		UserAnswerIndex: -1,
		Correct:         truthy(fields["correct"]),
	}
	if v, ok := fields["question"]; ok && v != nil {
		answer.Question = fmt.Sprint(v)
	}
	if opts, ok := fields["options"].([]interface{}); ok {
		for _, o := range opts {
			if o == nil {
				answer.Options = append(answer.Options, "")
				continue
			}
			answer.Options = append(answer.Options, fmt.Sprint(o))
		}
	}
	if n, ok := fields["correctIndex"].(float64); ok {
		answer.CorrectIndex = int(n)
	}
	if n, ok := fields["userAnswerIndex"].(float64); ok {
		answer.UserAnswerIndex = int(n)
	}
	if truthy(fields["explanation"]) {
		answer.Explanation = fmt.Sprint(fields["explanation"])
	}
	if s, ok := fields["expectedAnswer"].(string); ok {
		answer.ExpectedAnswer = s
	}
	if s, ok := fields["userWrittenAnswer"].(string); ok {
		answer.UserWrittenAnswer = s
	}
	return answer
}

func jsonNumber(raw json.RawMessage) (float64, bool) {
	var v interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func jsonString(raw json.RawMessage) (string, bool) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return "", false
	}
	return s, true
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// truthy follows the usual loose-typing rules: false, 0, "", null and a
// missing value are false, everything else is true.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
