package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
)

// AddFavoriteRequest carries the snapshot the client shows for the model.
// Empty snapshot fields are filled from the live model.
type AddFavoriteRequest struct {
	UserID   string `json:"userId"`
	ModelID  string `json:"modelId"`
	Name     string `json:"name"`
	Username string `json:"username"`
	ImageURL string `json:"imageUrl"`
	Category string `json:"category"`
}

type RemoveFavoriteRequest struct {
	UserID  string `json:"userId"`
	ModelID string `json:"modelId"`
}

// EnrichedFavorite is a stored favorite resolved against the live model.
type EnrichedFavorite struct {
	ModelID        string          `json:"modelId"`
	Name           string          `json:"name"`
	ImageURL       string          `json:"imageUrl"`
	Category       models.Category `json:"category"`
	Available      bool            `json:"available"`
	FavoritesCount int             `json:"favoritesCount"`
	AddedAt        time.Time       `json:"addedAt"`
}

type ReconcileResponse struct {
	Success bool  `json:"success"`
	Updated int64 `json:"updated"`
}
