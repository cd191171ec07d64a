package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/langmarket/api/database"
	"github.com/langmarket/api/utils/cache"
	"github.com/langmarket/api/utils/response"
)

// HealthHandler reports store and cache status
type HealthHandler struct {
	store database.Storage
	cache *cache.RedisCache
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store database.Storage, redisCache *cache.RedisCache) *HealthHandler {
	return &HealthHandler{
		store: store,
		cache: redisCache,
	}
}

// Check handles GET /ping. The store is required; the cache is reported but
// never fails the check since reads degrade to the store without it.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.store.HealthCheck(); err != nil {
		return response.ServiceUnavailable(c, "Database unavailable")
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.GetClient().Ping(c.Context()).Err(); err != nil {
			cacheStatus = "unavailable"
		}
	}

	return response.Success(c, fiber.Map{
		"database": "ok",
		"cache":    cacheStatus,
	})
}
