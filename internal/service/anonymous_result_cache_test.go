package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/dto"
	"medquiz/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnonymousResult(id string) *dto.AnonymousResult {
	return &dto.AnonymousResult{
		ResultID:   id,
		SourceType: "topic",
		Topic:      "Asthma",
		Score:      2,
		Total:      3,
		Percentage: 67,
		Questions: []domain.GradedAnswer{
			{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1, UserAnswerIndex: 1, Correct: true},
		},
		CompletedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAnonymousResultCacheServiceImpl_Put(t *testing.T) {
	mockCache := &ManualMockCache{}
	ttl := 5 * time.Minute
	cacheService := service.NewAnonymousResultCacheService(mockCache, ttl)
	ctx := context.Background()

	resultID := "res123"
	result := sampleAnonymousResult(resultID)
	expectedKey := "medquiz:anonymous:result:" + resultID
	expectedJSON, _ := json.Marshal(result)

	mockCache.SetFunc = func(ctx context.Context, key string, value string, duration time.Duration) error {
		assert.Equal(t, expectedKey, key)
		assert.Equal(t, string(expectedJSON), value)
		assert.Equal(t, ttl, duration)
		return nil
	}

	assert.NoError(t, cacheService.Put(ctx, resultID, result))

	err := cacheService.Put(ctx, resultID, nil)
	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
}

func TestAnonymousResultCacheServiceImpl_PutCacheError(t *testing.T) {
	mockCache := &ManualMockCache{SetFunc: func(ctx context.Context, key, value string, ttl time.Duration) error {
		return errors.New("redis down")
	}}
	err := service.NewAnonymousResultCacheService(mockCache, time.Minute).Put(context.Background(), "x", sampleAnonymousResult("x"))

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInternal, domainErr.Code)
	assert.Contains(t, err.Error(), "redis down")
}

func TestAnonymousResultCacheServiceImpl_Get(t *testing.T) {
	mockCache := &ManualMockCache{}
	cacheService := service.NewAnonymousResultCacheService(mockCache, 5*time.Minute)
	ctx := context.Background()

	resultID := "res123"
	expectedResult := sampleAnonymousResult(resultID)
	expectedKey := "medquiz:anonymous:result:" + resultID

	t.Run("Cache Hit", func(t *testing.T) {
		data, _ := json.Marshal(expectedResult)
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			assert.Equal(t, expectedKey, key)
			return string(data), nil
		}

		result, err := cacheService.Get(ctx, resultID)
		assert.NoError(t, err)
		assert.Equal(t, expectedResult, result)
	})

	t.Run("Cache Miss", func(t *testing.T) {
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			return "", domain.ErrCacheMiss
		}

		result, err := cacheService.Get(ctx, resultID)
		assert.Nil(t, result)
		assert.Equal(t, service.ErrAnonymousResultNotFound, err)
	})

	t.Run("Empty Data", func(t *testing.T) {
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			return "", nil
		}

		result, err := cacheService.Get(ctx, resultID)
		assert.Nil(t, result)
		assert.Equal(t, service.ErrAnonymousResultNotFound, err)
	})

	t.Run("Cache Error", func(t *testing.T) {
		expectedErr := errors.New("some cache system error")
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			return "", expectedErr
		}

		result, err := cacheService.Get(ctx, resultID)
		assert.Nil(t, result)
		var domainErr *domain.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, domain.CodeInternal, domainErr.Code)
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("Deserialization Error", func(t *testing.T) {
		mockCache.GetFunc = func(ctx context.Context, key string) (string, error) {
			return "{score:0.5", nil
		}

		result, err := cacheService.Get(ctx, resultID)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "failed to unmarshal result")
	})
}

func TestNewAnonymousResultCacheService_NilCache(t *testing.T) {
	cacheService := service.NewAnonymousResultCacheService(nil, 5*time.Minute)
	ctx := context.Background()

	assert.NoError(t, cacheService.Put(ctx, "reqNoCache", sampleAnonymousResult("reqNoCache")))

	result, err := cacheService.Get(ctx, "reqNoCache")
	assert.Nil(t, result)
	assert.Equal(t, service.ErrAnonymousResultNotFound, err)
}
