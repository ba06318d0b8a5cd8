package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skin-diagnosis-api/internal/models"
)

// ImageRepository stores raw image blobs keyed by generated ids
type ImageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new image repository
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// Save stores the image bytes and returns the generated blob id
func (r *ImageRepository) Save(ctx context.Context, image *models.Image) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to save image: %w", err)
	}
	return image.ID, nil
}

// GetByID retrieves a stored image by id
func (r *ImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	var image models.Image
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&image).Error; err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return &image, nil
}
