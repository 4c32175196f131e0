package handlers

import (
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

func (h *BookingHandler) Create(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	booking, err := h.bookings.Create(c.UserContext(), sess.UserID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BookingResponse{Success: true, Booking: booking})
}

func (h *BookingHandler) List(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	bookings, err := h.bookings.List(c.UserContext(), sess)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BookingListResponse{Success: true, Bookings: bookings})
}

func (h *BookingHandler) Get(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	booking, err := h.bookings.Get(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BookingResponse{Success: true, Booking: booking})
}

func (h *BookingHandler) UpdateStatus(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	var req dto.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	booking, err := h.bookings.UpdateStatus(c.UserContext(), sess, c.Params("id"), req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.BookingResponse{Success: true, Booking: booking})
}

func (h *BookingHandler) Delete(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	if err := h.bookings.Delete(c.UserContext(), sess, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Success: true, Message: "Booking deleted"})
}
