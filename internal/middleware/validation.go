package middleware

import (
	"medquiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedLimitKey    = "validated_limit"
	ValidatedResultIDKey = "validated_result_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateHistoryQuery validates the optional limit query parameter
func (vm *ValidationMiddleware) ValidateHistoryQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, errs := vm.validator.ValidateHistoryLimit(c.Query("limit"))
		if len(errs) > 0 {
			return errs // handled by ErrorHandler
		}
		c.Locals(ValidatedLimitKey, limit)
		return c.Next()
	}
}

// ValidateResultID validates the :id path parameter of anonymous result lookups
func (vm *ValidationMiddleware) ValidateResultID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errs := vm.validator.ValidateResultID(id); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedResultIDKey, id)
		return c.Next()
	}
}
