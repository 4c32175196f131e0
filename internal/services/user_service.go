package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService backs the admin panel's user management.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) List(ctx context.Context) ([]dto.UserResponse, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	result := make([]dto.UserResponse, len(users))
	for i := range users {
		result[i] = ToUserResponse(&users[i])
	}
	return result, nil
}

// Delete removes the user and their favorites, releasing each favorite's
// count on the model. Bookings are kept and keep their snapshot.
func (s *UserService) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return ErrInvalidUserID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var modelIDs []string
		if err := tx.Model(&models.Favorite{}).Scopes(session.ForOwner(userID)).Pluck("model_id", &modelIDs).Error; err != nil {
			return err
		}
		for _, raw := range modelIDs {
			modelID, err := uuid.Parse(raw)
			if err != nil {
				continue
			}
			if err := tx.Model(&models.Model{}).Where("id = ?", modelID).
				UpdateColumn("favorites_count", gorm.Expr(decrementFavorites)).Error; err != nil {
				return err
			}
		}

		if err := tx.Scopes(session.ForOwner(userID)).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user deleted", "action", "user.delete", "user_id", userID.String())
	return nil
}
