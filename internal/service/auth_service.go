package service

import (
	"context"
	"errors"
	"fmt"

	"medquiz/internal/config"
	"medquiz/internal/dto"
	"medquiz/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const tokenTypeAccess = "access"

var (
	ErrInvalidJWTToken  = errors.New("invalid jwt token")
	ErrNotAnAccessToken = errors.New("not an access token")
	ErrAuthDisabled     = errors.New("token verification is not configured")
)

// AuthService verifies bearer tokens issued by the account service. Tokens are
// HMAC-signed with the shared JWT secret.
type AuthService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	secret []byte
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(cfg config.JWTConfig) (AuthService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{secret: []byte(cfg.SecretKey)}, nil
}

// anonymousAuthService rejects every token, so all requests are anonymous.
type anonymousAuthService struct{}

// NewAnonymousAuthService is used when no JWT secret is configured.
func NewAnonymousAuthService() AuthService {
	return anonymousAuthService{}
}

func (anonymousAuthService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	return nil, ErrAuthDisabled
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		} else {
			appLogger.Warn("JWT validation failed",
				zap.Error(err),
				zap.String("token_snippet", tokenString[:min(len(tokenString), 20)]+"..."))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, ErrNotAnAccessToken
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidJWTToken)
	}
	return claims, nil
}
