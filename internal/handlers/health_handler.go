package handlers

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/database"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Pinger is satisfied by the stats cache.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    *gorm.DB
	cache Pinger
}

// NewHealthHandler builds the handler; cache may be nil when caching is off.
func NewHealthHandler(db *gorm.DB, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	dbStatus := "ok"
	if err := database.Ping(ctx, h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
		status = "degraded"
	}

	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(ctx); err != nil {
			cacheStatus = "unhealthy: " + err.Error()
		}
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}
