package dto

import "github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"

type CreateModelRequest struct {
	Name          string   `json:"name"`
	Age           int      `json:"age"`
	Description   string   `json:"description"`
	Height        string   `json:"height"`
	Weight        string   `json:"weight"`
	ImageURL      string   `json:"imageUrl"`
	GalleryImages []string `json:"galleryImages"`
	Available     *bool    `json:"available"`
}

type UpdateModelRequest struct {
	Name          *string   `json:"name"`
	Age           *int      `json:"age"`
	Description   *string   `json:"description"`
	Height        *string   `json:"height"`
	Weight        *string   `json:"weight"`
	ImageURL      *string   `json:"imageUrl"`
	GalleryImages *[]string `json:"galleryImages"`
	Available     *bool     `json:"available"`
}

type ModelResponse struct {
	Message string        `json:"message"`
	Model   *models.Model `json:"model"`
}
