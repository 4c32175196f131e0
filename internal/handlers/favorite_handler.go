package handlers

import (
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/services"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FavoriteHandler struct {
	favorites *services.FavoriteService
}

func NewFavoriteHandler(favorites *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// targetUser resolves whose favorites the request acts on. An empty id means
// the caller; any other user requires an admin session.
func targetUser(sess *session.Session, raw string) (uuid.UUID, error) {
	if raw == "" {
		return sess.UserID, nil
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, services.ErrInvalidUserID
	}
	if !sess.CanAccess(userID) {
		return uuid.Nil, services.ErrNotOwner
	}
	return userID, nil
}

func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	var req dto.AddFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	userID, err := targetUser(sess, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	added, err := h.favorites.Add(c.UserContext(), userID, &req)
	if err != nil {
		return respondError(c, err)
	}

	message := "Model added to favorites"
	if !added {
		message = "Model already in favorites"
	}
	return c.JSON(fiber.Map{"message": message})
}

func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	var req dto.RemoveFavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	userID, err := targetUser(sess, req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	removed, err := h.favorites.Remove(c.UserContext(), userID, req.ModelID)
	if err != nil {
		return respondError(c, err)
	}

	message := "Model removed from favorites"
	if !removed {
		message = "Model was not in favorites"
	}
	return c.JSON(fiber.Map{"message": message})
}

func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	sess, err := currentSession(c)
	if sess == nil {
		return err
	}

	raw := c.Params("userId")
	if raw == "" {
		return respondError(c, services.ErrInvalidUserID)
	}
	userID, err := targetUser(sess, raw)
	if err != nil {
		return respondError(c, err)
	}

	favorites, err := h.favorites.List(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(favorites)
}

func (h *FavoriteHandler) Reconcile(c *fiber.Ctx) error {
	updated, err := h.favorites.Reconcile(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{Success: true, Updated: updated})
}
