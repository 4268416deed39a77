package middleware

import (
	"errors"
	"net/http"

	"medquiz/internal/domain"
	"medquiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected request field.
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

var domainErrorStatus = map[domain.ErrorCode]int{
	domain.CodeNotFound:              http.StatusNotFound,
	domain.CodeUnauthorized:          http.StatusUnauthorized,
	domain.CodeInvalidInput:          http.StatusBadRequest,
	domain.CodeMissingInput:          http.StatusBadRequest,
	domain.CodeInvalidGradingPayload: http.StatusBadRequest,
	domain.CodeValidation:            http.StatusBadRequest,
	domain.CodeMissingField:          http.StatusBadRequest,
	domain.CodeInvalidFormat:         http.StatusBadRequest,
	domain.CodeOutOfRange:            http.StatusBadRequest,
}

// ErrorHandler turns handler errors into JSON responses. Provider and storage
// causes are logged but never written to the client.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			return writeValidationErrors(c, validationErrs)
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return writeDomainError(c, domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Get().Warn("Fiber error occurred",
				zap.String("path", c.Path()),
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		logger.Get().Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func writeValidationErrors(c *fiber.Ctx, errs domain.ValidationErrors) error {
	logger.Get().Warn("Request validation failed",
		zap.String("path", c.Path()),
		zap.Int("error_count", len(errs)),
	)
	return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
		Code:    string(domain.CodeValidation),
		Message: "Request validation failed",
		Status:  http.StatusBadRequest,
		Errors:  errs,
	})
}

func writeDomainError(c *fiber.Ctx, err *domain.DomainError) error {
	status := mapDomainErrorToHTTPStatus(err)
	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("code", string(err.Code)),
		zap.Int("status", status),
		zap.Error(err.Err),
	}
	if status >= http.StatusInternalServerError {
		logger.Get().Error("Request failed", fields...)
	} else {
		logger.Get().Warn("Request rejected", fields...)
	}

	resp := ErrorResponse{Code: string(err.Code), Message: err.Message, Status: status}
	if len(err.Context) > 0 {
		resp.Details = err.Context
	}
	return c.Status(status).JSON(resp)
}

// mapDomainErrorToHTTPStatus falls back to 500 for codes without an entry.
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	if status, ok := domainErrorStatus[err.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
