package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/dto"
	"github.com/ahmetcoskunkizilkaya/talent-booking/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ParseModelID validates a model id taken from a path or body. Anything that
// looks like a path segment is rejected before it is parsed.
func ParseModelID(id string) (uuid.UUID, error) {
	if id == "" || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return uuid.Nil, ErrInvalidModelID
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrInvalidModelID
	}
	return parsed, nil
}

// List returns every model in one category, newest first. When onlyAvailable
// is set, unavailable models are left out.
func (s *CatalogService) List(ctx context.Context, category models.Category, onlyAvailable bool) ([]models.Model, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}

	query := s.db.WithContext(ctx).Where("category = ?", category)
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}

	result := make([]models.Model, 0)
	if err := query.Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Model, error) {
	result := make([]models.Model, 0)
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Model, error) {
	modelID, err := ParseModelID(id)
	if err != nil {
		return nil, err
	}

	var model models.Model
	if err := s.db.WithContext(ctx).First(&model, "id = ?", modelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return &model, nil
}

func (s *CatalogService) Create(ctx context.Context, category models.Category, req *dto.CreateModelRequest) (*models.Model, error) {
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, validationf("Model name is required")
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, validationf("Main image is required")
	}
	if req.Age < 0 {
		return nil, validationf("Age must not be negative")
	}

	model := models.Model{
		Category:      category,
		Name:          strings.TrimSpace(req.Name),
		Age:           req.Age,
		Description:   req.Description,
		Height:        req.Height,
		Weight:        req.Weight,
		ImageURL:      strings.TrimSpace(req.ImageURL),
		GalleryImages: galleryOf(req.GalleryImages),
		Available:     true,
	}
	if req.Available != nil {
		model.Available = *req.Available
	}

	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	slog.Info("model created", "action", "model.create", "model_id", model.ID.String(), "category", string(category))
	return &model, nil
}

func (s *CatalogService) Update(ctx context.Context, id string, req *dto.UpdateModelRequest) (*models.Model, error) {
	model, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validationf("Model name must not be empty")
		}
		model.Name = strings.TrimSpace(*req.Name)
	}
	if req.ImageURL != nil {
		if strings.TrimSpace(*req.ImageURL) == "" {
			return nil, validationf("Main image must not be empty")
		}
		model.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Age != nil {
		if *req.Age < 0 {
			return nil, validationf("Age must not be negative")
		}
		model.Age = *req.Age
	}
	if req.Description != nil {
		model.Description = *req.Description
	}
	if req.Height != nil {
		model.Height = *req.Height
	}
	if req.Weight != nil {
		model.Weight = *req.Weight
	}
	if req.GalleryImages != nil {
		model.GalleryImages = galleryOf(*req.GalleryImages)
	}
	if req.Available != nil {
		model.Available = *req.Available
	}

	// favorites_count is owned by the favorites service and is not written here.
	if err := s.db.WithContext(ctx).Model(model).Select(
		"name", "age", "description", "height", "weight", "image_url", "gallery_images", "available", "updated_at",
	).Updates(model).Error; err != nil {
		return nil, fmt.Errorf("failed to update model: %w", err)
	}

	slog.Info("model updated", "action", "model.update", "model_id", model.ID.String())
	return model, nil
}

// Delete removes the model. Favorites and bookings that reference it are
// left in place and are expected to tolerate the dangling id.
func (s *CatalogService) Delete(ctx context.Context, id string) (*models.Model, error) {
	model, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(model).Error; err != nil {
		return nil, fmt.Errorf("failed to delete model: %w", err)
	}

	slog.Info("model deleted", "action", "model.delete", "model_id", model.ID.String())
	return model, nil
}

func galleryOf(images []string) datatypes.JSONSlice[string] {
	gallery := make(datatypes.JSONSlice[string], 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			gallery = append(gallery, img)
		}
	}
	return gallery
}
