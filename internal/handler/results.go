package handler

import (
	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/logger"
	"medquiz/internal/middleware"
	"medquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ResultsHandler handles saving and listing graded quizzes
type ResultsHandler struct {
	attempts service.AttemptService
}

// NewResultsHandler creates a new ResultsHandler instance
func NewResultsHandler(attempts service.AttemptService) *ResultsHandler {
	return &ResultsHandler{attempts: attempts}
}

// SaveResult godoc
// @Summary Save a graded quiz
// @Description Stores the attempt for signed-in users. Anonymous results are held briefly in the cache and a resultId is returned. A storage failure still answers 200 with saved=false.
// @Tags results
// @Accept json
// @Produce json
// @Param request body dto.SaveResultRequest true "Graded quiz"
// @Success 200 {object} dto.SaveResultResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/results [post]
func (h *ResultsHandler) SaveResult(c *fiber.Ctx) error {
	var req dto.SaveResultRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidGradingPayloadError("body must be a JSON object")
	}

	userID := middleware.UserID(c)
	resp, err := h.attempts.Record(c.UserContext(), userID, &req)
	if err != nil {
		return err
	}
	if !resp.Saved && resp.Status == dto.SaveStatusNotSaved {
		logger.Get().Warn("Quiz result not saved", zap.String("userID", userID))
	}
	return c.JSON(resp)
}

// ListResults godoc
// @Summary List my quiz history
// @Description Returns the caller's attempts, newest first.
// @Tags results
// @Produce json
// @Param limit query int false "Maximum attempts to return (1-50)"
// @Success 200 {object} dto.AttemptHistoryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /quiz/results [get]
func (h *ResultsHandler) ListResults(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.ValidatedLimitKey).(int)

	resp, err := h.attempts.ListAttempts(c.UserContext(), middleware.UserID(c), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetAnonymousResult godoc
// @Summary Fetch an anonymous result
// @Description Returns a result saved without signing in, while it is still cached.
// @Tags results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} dto.AnonymousResult
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/results/anonymous/{id} [get]
func (h *ResultsHandler) GetAnonymousResult(c *fiber.Ctx) error {
	id, _ := c.Locals(middleware.ValidatedResultIDKey).(string)
	if id == "" {
		id = c.Params("id")
	}

	result, err := h.attempts.GetAnonymousResult(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
