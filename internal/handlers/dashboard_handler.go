package handlers

import (
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatsResponse{Success: true, Stats: stats})
}

func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	activities, err := h.dashboard.RecentActivity(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ActivityResponse{Success: true, Activities: activities})
}
