package handler_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"medquiz/internal/config"
	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/handler"
	"medquiz/internal/logger"
	"medquiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Env: "test", Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	code := m.Run()
	_ = logger.Sync()
	os.Exit(code)
}

// --- Manual Mocks ---

type MockQuizService struct {
	GenerateQuizFunc func(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	GradeQuizFunc    func(ctx context.Context, userID string, req *dto.GradeQuizRequest) (*dto.GradeQuizResponse, error)
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	if m.GenerateQuizFunc != nil {
		return m.GenerateQuizFunc(ctx, req)
	}
	panic("MockQuizService.GenerateQuizFunc not implemented")
}

func (m *MockQuizService) GradeQuiz(ctx context.Context, userID string, req *dto.GradeQuizRequest) (*dto.GradeQuizResponse, error) {
	if m.GradeQuizFunc != nil {
		return m.GradeQuizFunc(ctx, userID, req)
	}
	panic("MockQuizService.GradeQuizFunc not implemented")
}

type MockAttemptService struct {
	RecordFunc             func(ctx context.Context, userID string, req *dto.SaveResultRequest) (*dto.SaveResultResponse, error)
	ListAttemptsFunc       func(ctx context.Context, userID string, limit int) (*dto.AttemptHistoryResponse, error)
	GetAnonymousResultFunc func(ctx context.Context, resultID string) (*dto.AnonymousResult, error)
}

func (m *MockAttemptService) Record(ctx context.Context, userID string, req *dto.SaveResultRequest) (*dto.SaveResultResponse, error) {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, userID, req)
	}
	panic("MockAttemptService.RecordFunc not implemented")
}

func (m *MockAttemptService) ListAttempts(ctx context.Context, userID string, limit int) (*dto.AttemptHistoryResponse, error) {
	if m.ListAttemptsFunc != nil {
		return m.ListAttemptsFunc(ctx, userID, limit)
	}
	panic("MockAttemptService.ListAttemptsFunc not implemented")
}

func (m *MockAttemptService) RecentHistory(ctx context.Context, userID string) ([]domain.AttemptSummary, error) {
	panic("MockAttemptService.RecentHistory not implemented")
}

func (m *MockAttemptService) GetAnonymousResult(ctx context.Context, resultID string) (*dto.AnonymousResult, error) {
	if m.GetAnonymousResultFunc != nil {
		return m.GetAnonymousResultFunc(ctx, resultID)
	}
	panic("MockAttemptService.GetAnonymousResultFunc not implemented")
}

type MockNotesService struct {
	GenerateNotesFunc func(ctx context.Context, req *dto.GenerateNotesRequest) (*dto.NotesResponse, error)
}

func (m *MockNotesService) GenerateNotes(ctx context.Context, req *dto.GenerateNotesRequest) (*dto.NotesResponse, error) {
	if m.GenerateNotesFunc != nil {
		return m.GenerateNotesFunc(ctx, req)
	}
	panic("MockNotesService.GenerateNotesFunc not implemented")
}

type MockTutorService struct {
	AskFunc func(ctx context.Context, req *dto.TutorRequest) (*dto.TutorResponse, error)
}

func (m *MockTutorService) Ask(ctx context.Context, req *dto.TutorRequest) (*dto.TutorResponse, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, req)
	}
	panic("MockTutorService.AskFunc not implemented")
}

// MockAuthService accepts exactly one token.
type MockAuthService struct {
	ValidToken string
	UserID     string
}

func (m *MockAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if tokenString == m.ValidToken {
		return &dto.AuthClaims{UserID: m.UserID, TokenType: "access"}, nil
	}
	return nil, errors.New("invalid token")
}

type MockCache struct {
	PingErr error
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return nil
}
func (m *MockCache) Delete(ctx context.Context, key string) error { return nil }
func (m *MockCache) Ping(ctx context.Context) error               { return m.PingErr }

const (
	testToken  = "good-token"
	testUserID = "user-42"
)

type testDeps struct {
	quiz     *MockQuizService
	attempts *MockAttemptService
	notes    *MockNotesService
	tutor    *MockTutorService
	cache    *MockCache
}

func newTestApp(deps testDeps) *fiber.App {
	if deps.quiz == nil {
		deps.quiz = &MockQuizService{}
	}
	if deps.attempts == nil {
		deps.attempts = &MockAttemptService{}
	}
	if deps.notes == nil {
		deps.notes = &MockNotesService{}
	}
	if deps.tutor == nil {
		deps.tutor = &MockTutorService{}
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	h := handler.Handlers{
		Quiz:    handler.NewQuizHandler(deps.quiz),
		Results: handler.NewResultsHandler(deps.attempts),
		Notes:   handler.NewNotesHandler(deps.notes),
		Tutor:   handler.NewTutorHandler(deps.tutor),
	}
	if deps.cache != nil {
		h.Health = handler.NewHealthHandler([]string{"openai", "groq"}, deps.cache)
	} else {
		h.Health = handler.NewHealthHandler(nil, nil)
	}
	handler.RegisterRoutes(app.Group("/api"), h, &MockAuthService{ValidToken: testToken, UserID: testUserID})
	return app
}
