package session

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no authenticated session")

// Session is the authenticated caller, decoded once from the verified JWT
// that the auth middleware stored in fiber locals.
type Session struct {
	UserID   uuid.UUID
	Username string
	Role     string
	IsAdmin  bool
}

// CanAccess reports whether the session may act on data owned by ownerID.
func (s *Session) CanAccess(ownerID uuid.UUID) bool {
	return s.IsAdmin || s.UserID == ownerID
}

// FromClaims builds a Session from token claims.
func FromClaims(claims jwt.MapClaims) (*Session, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid sub claim")
	}

	s := &Session{UserID: userID}
	s.Username, _ = claims["username"].(string)
	s.Role, _ = claims["role"].(string)
	isAdmin, _ := claims["is_admin"].(bool)
	s.IsAdmin = isAdmin && (s.Role == models.RoleAdmin || s.Role == models.RoleSuperAdmin)
	return s, nil
}

// FromContext extracts the caller's session from the JWT stored in context.
func FromContext(c *fiber.Ctx) (*Session, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return FromClaims(claims)
}
