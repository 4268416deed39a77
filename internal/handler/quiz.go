package handler

import (
	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/middleware"
	"medquiz/internal/service"
	"medquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation and grading requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Builds questions from pasted notes, or from notes generated for a topic. Falls back to template questions when no provider answers.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Notes or topic"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body must be JSON.")
	}
	if errs := h.validator.ValidateGenerateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GradeQuiz godoc
// @Summary Grade a quiz
// @Description Scores the submitted responses and picks a feedback message. Signed-in users get feedback against their recent attempts.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GradeQuizRequest true "Questions and responses"
// @Success 200 {object} dto.GradeQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/grade [post]
func (h *QuizHandler) GradeQuiz(c *fiber.Ctx) error {
	var req dto.GradeQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidGradingPayloadError("body must be a JSON object")
	}

	resp, err := h.service.GradeQuiz(c.UserContext(), middleware.UserID(c), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
