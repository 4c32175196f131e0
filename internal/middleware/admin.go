package middleware

import (
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/session"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired lets the request through only when the verified token
// belongs to an admin account. It must run after JWTProtected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := session.FromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Unauthorized",
			})
		}
		if !sess.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
