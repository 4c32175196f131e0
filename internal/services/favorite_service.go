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
	"gorm.io/gorm/clause"
)

const decrementFavorites = "CASE WHEN favorites_count > 0 THEN favorites_count - 1 ELSE 0 END"

// FavoriteService keeps a user's favorites and the per-model favoritesCount
// in step. Both writes happen in one transaction.
type FavoriteService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewFavoriteService(db *gorm.DB, catalog *CatalogService) *FavoriteService {
	return &FavoriteService{db: db, catalog: catalog}
}

// Add stores a favorite for the model. A second add for the same model is a
// no-op, even when the snapshot differs; added reports whether a row was written.
func (s *FavoriteService) Add(ctx context.Context, userID uuid.UUID, req *dto.AddFavoriteRequest) (added bool, err error) {
	modelID, err := ParseModelID(req.ModelID)
	if err != nil {
		return false, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return false, err
	}

	fav := models.Favorite{
		UserID:   userID,
		ModelID:  modelID.String(),
		Name:     req.Name,
		Username: req.Username,
		ImageURL: req.ImageURL,
		Category: req.Category,
	}
	if model, err := s.catalog.Get(ctx, fav.ModelID); err == nil {
		if fav.Name == "" {
			fav.Name = model.Name
		}
		if fav.ImageURL == "" {
			fav.ImageURL = model.ImageURL
		}
		if fav.Category == "" {
			fav.Category = string(model.Category)
		}
	} else if !errors.Is(err, ErrModelNotFound) {
		return false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		added = true
		// No matching model leaves the counter untouched.
		return tx.Model(&models.Model{}).Where("id = ?", modelID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + 1")).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	if added {
		slog.Info("favorite added", "action", "favorite.add", "user_id", userID.String(), "model_id", fav.ModelID)
	}
	return added, nil
}

// Remove deletes the user's favorite for the model. The counter is only
// decremented when a favorite was actually removed and never drops below zero.
func (s *FavoriteService) Remove(ctx context.Context, userID uuid.UUID, rawModelID string) (removed bool, err error) {
	modelID, err := ParseModelID(rawModelID)
	if err != nil {
		return false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND model_id = ?", userID, modelID.String()).Delete(&models.Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&models.Model{}).Where("id = ?", modelID).
			UpdateColumn("favorites_count", gorm.Expr(decrementFavorites)).Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}

	if removed {
		slog.Info("favorite removed", "action", "favorite.remove", "user_id", userID.String(), "model_id", modelID.String())
	}
	return removed, nil
}

// List resolves the user's favorites against the live catalog. Favorites
// whose model has been deleted are omitted; their rows are kept.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID) ([]dto.EnrichedFavorite, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	var favorites []models.Favorite
	if err := db.Scopes(session.ForOwner(userID)).Order("added_at ASC").Find(&favorites).Error; err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(favorites))
	for _, f := range favorites {
		if id, err := uuid.Parse(f.ModelID); err == nil {
			ids = append(ids, id)
		}
	}

	live := make(map[string]models.Model, len(ids))
	if len(ids) > 0 {
		var found []models.Model
		if err := db.Where("id IN ?", ids).Find(&found).Error; err != nil {
			return nil, err
		}
		for _, m := range found {
			live[m.ID.String()] = m
		}
	}

	result := make([]dto.EnrichedFavorite, 0, len(favorites))
	for _, f := range favorites {
		m, ok := live[f.ModelID]
		if !ok {
			continue
		}
		result = append(result, dto.EnrichedFavorite{
			ModelID:        f.ModelID,
			Name:           m.Name,
			ImageURL:       m.ImageURL,
			Category:       m.Category,
			Available:      m.Available,
			FavoritesCount: m.FavoritesCount,
			AddedAt:        f.AddedAt,
		})
	}
	return result, nil
}

// Reconcile recomputes every model's favorites_count from the favorites
// table and returns how many models were corrected.
func (s *FavoriteService) Reconcile(ctx context.Context) (int64, error) {
	const count = "(SELECT COUNT(*) FROM favorites WHERE favorites.model_id = CAST(models.id AS TEXT))"
	result := s.db.WithContext(ctx).Exec(
		"UPDATE models SET favorites_count = " + count + " WHERE favorites_count <> " + count,
	)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to reconcile favorites: %w", result.Error)
	}

	slog.Info("favorite counts reconciled", "action", "favorite.reconcile", "updated", result.RowsAffected)
	return result.RowsAffected, nil
}

func (s *FavoriteService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
