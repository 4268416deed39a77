package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func saveRequest(t *testing.T, body string) *dto.SaveResultRequest {
	t.Helper()
	var req dto.SaveResultRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

const validResultBody = `{
  "sourceType": "note",
  "topic": "Cardiology",
  "noteId": "note-1",
  "score": 1,
  "total": 2,
  "questions": [
    {"question": "Which valve?", "options": ["Mitral", "Aortic", "Option C", "Option D"], "correctIndex": 0, "userAnswerIndex": 0, "correct": true, "explanation": "Left side"},
    {"question": "Define shock", "expectedAnswer": "inadequate perfusion", "userWrittenAnswer": "low bp", "correct": 0}
  ]
}`

func assertPayloadError(t *testing.T, err error) {
	t.Helper()
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	assert.Equal(t, domain.CodeInvalidGradingPayload, domainErr.Code)
}

func TestDecodeAttemptPayload(t *testing.T) {
	attempt, err := service.DecodeAttemptPayload(saveRequest(t, validResultBody))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceNote, attempt.SourceType)
	assert.Equal(t, "Cardiology", attempt.Topic)
	assert.Equal(t, "note-1", attempt.NoteID)
	assert.Equal(t, 1.0, attempt.Score)
	assert.Equal(t, 2.0, attempt.Total)
	require.Len(t, attempt.Questions, 2)

	mcq := attempt.Questions[0]
	assert.Equal(t, []string{"Mitral", "Aortic", "Option C", "Option D"}, mcq.Options)
	assert.True(t, mcq.Correct)
	assert.Equal(t, "Left side", mcq.Explanation)

	written := attempt.Questions[1]
	assert.Equal(t, []string{}, written.Options)
	assert.Equal(t, -1, written.CorrectIndex)
	assert.Equal(t, -1, written.UserAnswerIndex)
	assert.False(t, written.Correct)
	assert.Equal(t, "", written.Explanation)
	assert.Equal(t, "inadequate perfusion", written.ExpectedAnswer)
	assert.Equal(t, "low bp", written.UserWrittenAnswer)
}

func TestDecodeAttemptPayload_Defaults(t *testing.T) {
	attempt, err := service.DecodeAttemptPayload(saveRequest(t,
		`{"sourceType":"upload","topic":42,"score":0,"total":0,"questions":[{"correct":"yes","options":"abc","correctIndex":"1"}, 7]}`))
	require.NoError(t, err)

	assert.Equal(t, domain.SourceTopic, attempt.SourceType)
	assert.Equal(t, "", attempt.Topic)
	require.Len(t, attempt.Questions, 2)
	assert.True(t, attempt.Questions[0].Correct)
	assert.Equal(t, []string{}, attempt.Questions[0].Options)
	assert.Equal(t, -1, attempt.Questions[0].CorrectIndex)
	assert.False(t, attempt.Questions[1].Correct)
}

func TestDecodeAttemptPayload_Invalid(t *testing.T) {
	bodies := map[string]string{
		"score as string":   `{"score":"1","total":2,"questions":[]}`,
		"missing total":     `{"score":1,"questions":[]}`,
		"null score":        `{"score":null,"total":2,"questions":[]}`,
		"questions object":  `{"score":1,"total":2,"questions":{}}`,
		"questions missing": `{"score":1,"total":2}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			_, err := service.DecodeAttemptPayload(saveRequest(t, body))
			assertPayloadError(t, err)
		})
	}

	_, err := service.DecodeAttemptPayload(nil)
	assertPayloadError(t, err)
}

func TestAttemptService_Record_SignedIn(t *testing.T) {
	repo := new(MockAttemptRepository)
	svc := service.NewAttemptService(repo, nil)

	repo.On("SaveAttempt", mock.Anything, mock.MatchedBy(func(a *domain.QuizAttempt) bool {
		return a.UserID == "user-1" && a.Score == 1 && len(a.Questions) == 2
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.QuizAttempt).ID = "01HZXATTEMPT"
	}).Return(nil).Once()

	resp, err := svc.Record(context.Background(), "user-1", saveRequest(t, validResultBody))
	require.NoError(t, err)
	assert.Equal(t, &dto.SaveResultResponse{Saved: true, AttemptID: "01HZXATTEMPT"}, resp)
	repo.AssertExpectations(t)
}

func TestAttemptService_Record_PersistenceFailure(t *testing.T) {
	repo := new(MockAttemptRepository)
	svc := service.NewAttemptService(repo, nil)
	repo.On("SaveAttempt", mock.Anything, mock.Anything).Return(errors.New("ORA-03113")).Once()

	resp, err := svc.Record(context.Background(), "user-1", saveRequest(t, validResultBody))
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	assert.Equal(t, dto.SaveStatusNotSaved, resp.Status)
	repo.AssertExpectations(t)
}

func TestAttemptService_Record_Anonymous(t *testing.T) {
	repo := new(MockAttemptRepository)
	var cachedKey string
	var cached dto.AnonymousResult
	mockCache := &ManualMockCache{SetFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
		cachedKey = key
		return json.Unmarshal([]byte(value), &cached)
	}}
	svc := service.NewAttemptService(repo, service.NewAnonymousResultCacheService(mockCache, time.Hour))

	resp, err := svc.Record(context.Background(), "", saveRequest(t, validResultBody))
	require.NoError(t, err)
	assert.False(t, resp.Saved)
	assert.Equal(t, dto.SaveStatusSkipped, resp.Status)
	require.NotEmpty(t, resp.ResultID)
	assert.Equal(t, "medquiz:anonymous:result:"+resp.ResultID, cachedKey)
	assert.Equal(t, 50, cached.Percentage)
	assert.Equal(t, "Cardiology", cached.Topic)
	repo.AssertNotCalled(t, "SaveAttempt", mock.Anything, mock.Anything)
}

func TestAttemptService_Record_AnonymousHugeScoreClamped(t *testing.T) {
	var cached dto.AnonymousResult
	mockCache := &ManualMockCache{SetFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
		return json.Unmarshal([]byte(value), &cached)
	}}
	svc := service.NewAttemptService(nil, service.NewAnonymousResultCacheService(mockCache, time.Hour))

	body := `{"sourceType":"topic","topic":"Renal","score":1e300,"total":1,"questions":[]}`
	resp, err := svc.Record(context.Background(), "", saveRequest(t, body))
	require.NoError(t, err)
	require.NotEmpty(t, resp.ResultID)
	assert.Equal(t, 100, cached.Percentage)
}

func TestAttemptService_Record_AnonymousCacheFailure(t *testing.T) {
	mockCache := &ManualMockCache{SetFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
		return errors.New("redis down")
	}}
	svc := service.NewAttemptService(nil, service.NewAnonymousResultCacheService(mockCache, time.Hour))

	resp, err := svc.Record(context.Background(), "", saveRequest(t, validResultBody))
	require.NoError(t, err)
	assert.Equal(t, dto.SaveStatusSkipped, resp.Status)
	assert.Empty(t, resp.ResultID)
}

func TestAttemptService_Record_InvalidPayload(t *testing.T) {
	repo := new(MockAttemptRepository)
	_, err := service.NewAttemptService(repo, nil).Record(context.Background(), "user-1", saveRequest(t, `{"score":"x"}`))
	assertPayloadError(t, err)
	repo.AssertNotCalled(t, "SaveAttempt", mock.Anything, mock.Anything)
}

func TestAttemptService_ListAttempts(t *testing.T) {
	repo := new(MockAttemptRepository)
	svc := service.NewAttemptService(repo, nil)
	completed := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	repo.On("ListAttemptsByUser", mock.Anything, "user-1", 50).Return([]domain.QuizAttempt{
		{ID: "a2", UserID: "user-1", SourceType: domain.SourceTopic, Topic: "Renal", Score: 2, Total: 3, CompletedAt: completed},
	}, nil).Twice()

	resp, err := svc.ListAttempts(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, resp.Attempts, 1)
	assert.Equal(t, "a2", resp.Attempts[0].ID)
	assert.Equal(t, 67, resp.Attempts[0].Percentage)
	assert.NotNil(t, resp.Attempts[0].Questions)

	_, err = svc.ListAttempts(context.Background(), "user-1", 500)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAttemptService_ListAttempts_Errors(t *testing.T) {
	repo := new(MockAttemptRepository)
	svc := service.NewAttemptService(repo, nil)

	_, err := svc.ListAttempts(context.Background(), "", 10)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)

	repo.On("ListAttemptsByUser", mock.Anything, "user-1", 10).Return(nil, errors.New("db down")).Once()
	_, err = svc.ListAttempts(context.Background(), "user-1", 10)
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
}

func TestAttemptService_RecentHistory(t *testing.T) {
	repo := new(MockAttemptRepository)
	svc := service.NewAttemptService(repo, nil)

	history, err := svc.RecentHistory(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, history)

	repo.On("ListAttemptsByUser", mock.Anything, "user-1", service.FeedbackHistoryLimit).Return([]domain.QuizAttempt{
		{Score: 1, Total: 5, Topic: "Renal"},
		{Score: 4, Total: 5, Topic: "Cardio"},
	}, nil).Once()

	history, err = svc.RecentHistory(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 20.0, history[0].Percentage())
	assert.Equal(t, "Cardio", history[1].Topic)
	repo.AssertExpectations(t)
}

func TestAttemptService_GetAnonymousResult(t *testing.T) {
	stored := sampleAnonymousResult("res-1")
	data, _ := json.Marshal(stored)
	mockCache := &ManualMockCache{GetFunc: func(ctx context.Context, key string) (string, error) {
		if key == "medquiz:anonymous:result:res-1" {
			return string(data), nil
		}
		return "", domain.ErrCacheMiss
	}}
	svc := service.NewAttemptService(nil, service.NewAnonymousResultCacheService(mockCache, time.Hour))

	got, err := svc.GetAnonymousResult(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, stored, got)

	_, err = svc.GetAnonymousResult(context.Background(), "missing")
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}
