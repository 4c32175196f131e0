package session

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ForOwner returns a GORM scope that filters by user_id.
func ForOwner(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// Visible narrows a query to rows the session may see: admins see all rows.
func (s *Session) Visible() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.IsAdmin {
			return db
		}
		return db.Scopes(ForOwner(s.UserID))
	}
}
