package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skin-diagnosis-api/internal/models"
)

// PatientRepository handles patient database operations
type PatientRepository struct {
	db *gorm.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// Create inserts a new patient. A duplicate patient number surfaces as
// gorm.ErrDuplicatedKey via the unique index.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetByNumber retrieves a patient by the caller-assigned patient number
func (r *PatientRepository) GetByNumber(ctx context.Context, patientNumber int64) (*models.Patient, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).Where("patient_number = ?", patientNumber).First(&patient).Error; err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// GetID is a thin projection returning only the patient id for a patient
// number. Used by the case workflow.
func (r *PatientRepository) GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error) {
	var patient models.Patient
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("patient_number = ?", patientNumber).
		First(&patient).Error; err != nil {
		return uuid.Nil, fmt.Errorf("failed to get patient id: %w", err)
	}
	return patient.ID, nil
}

// List retrieves all patients
func (r *PatientRepository) List(ctx context.Context) ([]models.Patient, error) {
	var patients []models.Patient
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}
