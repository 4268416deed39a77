package dto

import (
	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims defines the custom claims for JWT.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status    string   `json:"status"`
	Providers []string `json:"providers"`
	Cache     string   `json:"cache"`
}
