package handlers

import (
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminUserHandler struct {
	users *services.UserService
}

func NewAdminUserHandler(users *services.UserService) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

func (h *AdminUserHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.UserListResponse{Success: true, Users: users})
}

func (h *AdminUserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "User deleted"})
}
