package service

import (
	"context"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
	GradeQuiz(ctx context.Context, userID string, req *dto.GradeQuizRequest) (*dto.GradeQuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	resolver    *NotesResolver
	synthesizer *QuizSynthesizer
	attempts    AttemptService
}

// NewQuizService creates a new instance of quizService
func NewQuizService(resolver *NotesResolver, synthesizer *QuizSynthesizer, attempts AttemptService) QuizService {
	return &quizService{
		resolver:    resolver,
		synthesizer: synthesizer,
		attempts:    attempts,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	noteText, err := s.resolver.Resolve(ctx, NoteSource{NoteText: req.NoteText, Topic: req.Topic})
	if err != nil {
		return nil, err
	}

	difficulty := domain.ParseDifficulty(req.Difficulty)
	style := domain.ParseQuestionStyle(req.QuestionStyle)
	quiz := s.synthesizer.Synthesize(ctx, noteText, difficulty, style)

	logger.Get().Info("Quiz generated",
		zap.String("source", quiz.Source),
		zap.String("difficulty", string(difficulty)),
		zap.String("style", string(style)),
		zap.Int("questions", len(quiz.Batch.Questions)))

	return &dto.GenerateQuizResponse{
		Questions:     quiz.Batch.Questions,
		QuestionStyle: string(quiz.Batch.Style),
		Source:        quiz.Source,
	}, nil
}

// GradeQuiz implements QuizService. When the caller is signed in and sends no
// history, the latest stored attempts are used for feedback.
func (s *quizService) GradeQuiz(ctx context.Context, userID string, req *dto.GradeQuizRequest) (*dto.GradeQuizResponse, error) {
	style := domain.ParseQuestionStyle(req.QuestionStyle)
	questions, err := domain.DecodeQuestions(style, req.Questions)
	if err != nil {
		return nil, domain.NewInvalidGradingPayloadError("questions must be an array of question objects")
	}

	result := Grade(domain.QuestionBatch{Style: style, Questions: questions}, req.Responses)

	history := req.History
	if history == nil && userID != "" && s.attempts != nil {
		recent, err := s.attempts.RecentHistory(ctx, userID)
		if err != nil {
			logger.Get().Warn("Grading without history", zap.String("userID", userID), zap.Error(err))
		}
		history = recent
	}

	return &dto.GradeQuizResponse{
		Score:      result.Score,
		Total:      result.Total,
		Percentage: domain.RoundedPercentage(float64(result.Score), float64(result.Total)),
		Feedback:   FeedbackMessage(result.Score, result.Total, history),
		Answers:    result.Answers,
	}, nil
}
