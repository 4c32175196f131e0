package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/services"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/session"
	"github.com/gofiber/fiber/v2"
)

// respondError maps a service error onto the JSON error envelope.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var verr *services.ValidationError
	var derr *services.DuplicateFieldError

	switch {
	case errors.As(err, &verr), errors.As(err, &derr):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidUserID),
		errors.Is(err, services.ErrInvalidModelID),
		errors.Is(err, services.ErrInvalidBookingID),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidStatus):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, session.ErrNoSession):
		status, message = fiber.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrNotOwner):
		status, message = fiber.StatusForbidden, err.Error()
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrModelNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrInvalidTransition):
		status, message = fiber.StatusConflict, err.Error()
	default:
		slog.Error("request failed", "method", c.Method(), "path", c.Path(),
			"request_id", requestID(c), "error", err.Error())
	}

	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Success: false, Message: message})
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

// currentSession resolves the caller and answers 401 when there is none.
func currentSession(c *fiber.Ctx) (*session.Session, error) {
	sess, err := session.FromContext(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}
	return sess, nil
}
