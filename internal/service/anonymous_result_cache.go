package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"medquiz/internal/cache"
	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/logger"

	"go.uber.org/zap"
)

// ErrAnonymousResultNotFound is returned when a cached result is not found.
var ErrAnonymousResultNotFound = errors.New("anonymous result not found in cache")

// AnonymousResultCacheService holds graded results of signed-out users for a
// limited time so the client can fetch them back.
type AnonymousResultCacheService interface {
	Put(ctx context.Context, resultID string, result *dto.AnonymousResult) error
	Get(ctx context.Context, resultID string) (*dto.AnonymousResult, error)
}

type anonymousResultCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewAnonymousResultCacheService creates a new instance of anonymousResultCacheServiceImpl.
func NewAnonymousResultCacheService(cache domain.Cache, ttl time.Duration) AnonymousResultCacheService {
	if cache == nil {
		logger.Get().Warn("AnonymousResultCacheService initialized with nil cache. Service will be no-op.")
		return &noopAnonymousResultCacheService{}
	}
	return &anonymousResultCacheServiceImpl{
		cache: cache,
		ttl:   ttl,
	}
}

func (s *anonymousResultCacheServiceImpl) generateKey(resultID string) string {
	return cache.GenerateCacheKey("anonymous", "result", resultID)
}

// Put stores the graded result under resultID.
func (s *anonymousResultCacheServiceImpl) Put(ctx context.Context, resultID string, result *dto.AnonymousResult) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil result")
	}

	key := s.generateKey(resultID)
	data, err := json.Marshal(result)
	if err != nil {
		logger.Get().Error("Failed to marshal anonymous result for caching", zap.Error(err), zap.String("resultID", resultID))
		return domain.NewInternalError("failed to marshal result for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache anonymous result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set anonymous result to cache for key %s", key), err)
	}
	logger.Get().Debug("Successfully cached anonymous result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

// Get retrieves the graded result stored under resultID.
func (s *anonymousResultCacheServiceImpl) Get(ctx context.Context, resultID string) (*dto.AnonymousResult, error) {
	key := s.generateKey(resultID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Anonymous result cache miss", zap.String("key", key))
			return nil, ErrAnonymousResultNotFound
		}
		logger.Get().Error("Failed to get anonymous result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get anonymous result from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrAnonymousResultNotFound
	}

	var result dto.AnonymousResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		logger.Get().Error("Failed to unmarshal anonymous result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal result from cache for key %s", key), err)
	}
	return &result, nil
}

// noopAnonymousResultCacheService is used when no cache is configured.
type noopAnonymousResultCacheService struct{}

func (s *noopAnonymousResultCacheService) Put(ctx context.Context, resultID string, result *dto.AnonymousResult) error {
	logger.Get().Debug("No-op AnonymousResultCacheService: Put called", zap.String("resultID", resultID))
	return nil
}

func (s *noopAnonymousResultCacheService) Get(ctx context.Context, resultID string) (*dto.AnonymousResult, error) {
	logger.Get().Debug("No-op AnonymousResultCacheService: Get called", zap.String("resultID", resultID))
	return nil, ErrAnonymousResultNotFound
}
