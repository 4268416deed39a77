package middleware

import (
	"strings"

	"medquiz/internal/logger"
	"medquiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// bearerToken returns the token of a "Bearer <token>" header, or a reason code
// when the header is unusable.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get(AuthorizationHeader)
	if authHeader == "" {
		return "", "MISSING_AUTH_HEADER"
	}
	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", "INVALID_AUTH_SCHEME"
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
	if token == "" {
		return "", "EMPTY_TOKEN"
	}
	return token, ""
}

// Protected requires a valid access token and stores its user id under UserIDKey.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, reason := bearerToken(c)
		if reason != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    reason,
				Message: "Sign in to continue.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := authService.ValidateJWT(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Session expired or invalid. Sign in again.",
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// OptionalAuth stores the user id when a valid access token is present and
// otherwise lets the request through as anonymous.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, reason := bearerToken(c)
		if reason != "" {
			if reason != "MISSING_AUTH_HEADER" {
				logger.Get().Debug("OptionalAuth: unusable Authorization header, proceeding as anonymous", zap.String("reason", reason))
			}
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.Context(), token)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous", zap.Error(err))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}
