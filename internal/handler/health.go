package handler

import (
	"context"
	"time"

	"medquiz/internal/domain"
	"medquiz/internal/dto"

	"github.com/gofiber/fiber/v2"
)

const cachePingTimeout = time.Second

// HealthHandler reports liveness plus which backends are configured.
type HealthHandler struct {
	providers []string
	cache     domain.Cache
}

// NewHealthHandler takes the provider names in chain order. cache may be nil.
func NewHealthHandler(providers []string, cache domain.Cache) *HealthHandler {
	if providers == nil {
		providers = []string{}
	}
	return &HealthHandler{providers: providers, cache: cache}
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	cacheStatus := "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), cachePingTimeout)
		defer cancel()
		cacheStatus = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			cacheStatus = "unavailable"
		}
	}
	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Providers: h.providers,
		Cache:     cacheStatus,
	})
}
