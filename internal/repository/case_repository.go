package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skin-diagnosis-api/internal/models"
)

// CaseRepository handles case database operations
type CaseRepository struct {
	db *gorm.DB
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

// Create inserts a new case record
func (r *CaseRepository) Create(ctx context.Context, c *models.Case) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

// GetByID retrieves a case by id
func (r *CaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	var c models.Case
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to get case: %w", err)
	}
	return &c, nil
}

// GetByDoctorID retrieves all cases submitted by a doctor
func (r *CaseRepository) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]models.Case, error) {
	var cases []models.Case
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to get cases for doctor: %w", err)
	}
	return cases, nil
}

// GetByPatientID retrieves all cases for a patient
func (r *CaseRepository) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]models.Case, error) {
	var cases []models.Case
	if err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to get cases for patient: %w", err)
	}
	return cases, nil
}
