package handlers

import (
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ModelHandler struct {
	catalog *services.CatalogService
}

func NewModelHandler(catalog *services.CatalogService) *ModelHandler {
	return &ModelHandler{catalog: catalog}
}

func (h *ModelHandler) ListLocal(c *fiber.Ctx) error {
	return h.list(c, models.CategoryLocal)
}

func (h *ModelHandler) ListForeign(c *fiber.Ctx) error {
	return h.list(c, models.CategoryForeign)
}

func (h *ModelHandler) list(c *fiber.Ctx, category models.Category) error {
	onlyAvailable := c.QueryBool("available", false)
	result, err := h.catalog.List(c.UserContext(), category, onlyAvailable)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// ListAll backs the admin panel, which shows both categories together.
func (h *ModelHandler) ListAll(c *fiber.Ctx) error {
	result, err := h.catalog.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

func (h *ModelHandler) Get(c *fiber.Ctx) error {
	model, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(model)
}

func (h *ModelHandler) CreateLocal(c *fiber.Ctx) error {
	return h.create(c, models.CategoryLocal)
}

func (h *ModelHandler) CreateForeign(c *fiber.Ctx) error {
	return h.create(c, models.CategoryForeign)
}

func (h *ModelHandler) create(c *fiber.Ctx, category models.Category) error {
	var req dto.CreateModelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	model, err := h.catalog.Create(c.UserContext(), category, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ModelResponse{
		Message: string(category) + " model created successfully", Model: model,
	})
}

func (h *ModelHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateModelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	model, err := h.catalog.Update(c.UserContext(), c.Params("id"), &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ModelResponse{Message: "Model updated successfully", Model: model})
}

func (h *ModelHandler) Delete(c *fiber.Ctx) error {
	model, err := h.catalog.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ModelResponse{Message: "Model deleted successfully", Model: model})
}
