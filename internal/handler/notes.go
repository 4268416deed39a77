package handler

import (
	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/service"
	"medquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type NotesHandler struct {
	service   service.NotesService
	validator *validation.Validator
}

func NewNotesHandler(service service.NotesService) *NotesHandler {
	return &NotesHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateNotes godoc
// @Summary Generate study notes
// @Description Writes markdown notes for a topic. provider restricts which backend may answer; a template outline is returned when none does.
// @Tags notes
// @Accept json
// @Produce json
// @Param request body dto.GenerateNotesRequest true "Topic"
// @Success 200 {object} dto.NotesResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /notes/generate [post]
func (h *NotesHandler) GenerateNotes(c *fiber.Ctx) error {
	var req dto.GenerateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Request body must be JSON.")
	}
	if errs := h.validator.ValidateGenerateNotesRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GenerateNotes(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
