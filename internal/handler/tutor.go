package handler

import (
	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/service"
	"medquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TutorHandler struct {
	service   service.TutorService
	validator *validation.Validator
}

func NewTutorHandler(service service.TutorService) *TutorHandler {
	return &TutorHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Ask godoc
// @Summary Ask the AI tutor
// @Description Explains a student's doubt, using the supplied notes as context. A fixed answer is returned when no provider responds.
// @Tags tutor
// @Accept json
// @Produce json
// @Param request body dto.TutorRequest true "Doubt and optional notes"
// @Success 200 {object} dto.TutorResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /tutor/ask [post]
func (h *TutorHandler) Ask(c *fiber.Ctx) error {
	var req dto.TutorRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body must be JSON.")
	}
	if errs := h.validator.ValidateTutorRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Ask(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
