package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Category discriminates the two catalog sections that share the models table.
type Category string

const (
	CategoryLocal   Category = "Local"
	CategoryForeign Category = "Foreign"
)

func (c Category) Valid() bool {
	return c == CategoryLocal || c == CategoryForeign
}

// Model is a bookable talent profile.
type Model struct {
	ID             uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	Category       Category                    `gorm:"size:10;not null;index" json:"category"`
	Name           string                      `gorm:"size:100;not null" json:"name"`
	Age            int                         `json:"age"`
	Description    string                      `gorm:"type:text" json:"description"`
	Height         string                      `gorm:"size:20" json:"height"`
	Weight         string                      `gorm:"size:20" json:"weight"`
	ImageURL       string                      `gorm:"type:text;not null" json:"imageUrl"`
	GalleryImages  datatypes.JSONSlice[string] `json:"galleryImages"`
	Available      bool                        `gorm:"not null" json:"available"`
	FavoritesCount int                         `gorm:"not null;default:0" json:"favoritesCount"`
	CreatedAt      time.Time                   `gorm:"index" json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.GalleryImages == nil {
		m.GalleryImages = datatypes.JSONSlice[string]{}
	}
	return nil
}
