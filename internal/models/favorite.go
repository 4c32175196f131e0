package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite is a snapshot of a model taken when a user favorited it.
// ModelID is a plain reference; the model may since have been deleted.
type Favorite struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_model" json:"userId"`
	ModelID  string    `gorm:"size:36;not null;uniqueIndex:idx_favorites_user_model;index" json:"modelId"`
	Name     string    `gorm:"size:100" json:"name"`
	Username string    `gorm:"size:30" json:"username"`
	ImageURL string    `gorm:"type:text" json:"imageUrl"`
	Category string    `gorm:"size:10" json:"category"`
	AddedAt  time.Time `gorm:"not null" json:"addedAt"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.AddedAt.IsZero() {
		f.AddedAt = time.Now().UTC()
	}
	return nil
}
