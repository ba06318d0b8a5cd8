package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skin-diagnosis-api/internal/models"
)

// APIKeyRepository handles access-key database operations
type APIKeyRepository struct {
	db *gorm.DB
}

// NewAPIKeyRepository creates a new API key repository
func NewAPIKeyRepository(db *gorm.DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create inserts a new access key. The unique index on doctor_id makes a
// concurrent double-allocate fail with gorm.ErrDuplicatedKey instead of
// producing two keys.
func (r *APIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	if err := r.db.WithContext(ctx).Create(key).Error; err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

// GetByDoctorID retrieves the access key for a doctor
func (r *APIKeyRepository) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) (*models.APIKey, error) {
	var key models.APIKey
	if err := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID).First(&key).Error; err != nil {
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}
	return &key, nil
}
