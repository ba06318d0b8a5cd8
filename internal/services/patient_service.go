package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/models"
)

// PatientStore is the persistence interface for patients.
type PatientStore interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByNumber(ctx context.Context, patientNumber int64) (*models.Patient, error)
	GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error)
	List(ctx context.Context) ([]models.Patient, error)
}

// PatientService handles patient registration and lookups.
type PatientService struct {
	patients PatientStore
}

// NewPatientService creates a new patient service
func NewPatientService(patients PatientStore) *PatientService {
	return &PatientService{patients: patients}
}

// Register creates a patient record. The caller-assigned patient number must
// be positive and unique across all patients; text fields are trimmed and
// title-cased and the date of birth is canonicalized to YYYY-MM-DD.
func (s *PatientService) Register(ctx context.Context, req models.RegisterPatientRequest) (*models.Patient, error) {
	if req.PatientNumber <= 0 {
		return nil, apperrors.New(apperrors.KindValidation, "Invalid patient number.")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Patient name is required.")
	}

	dob, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		return nil, apperrors.New(apperrors.KindValidation, "Invalid date_of_birth format. Expected YYYY-MM-DD.")
	}

	notes := req.Notes
	if notes == nil {
		notes = []string{}
	}

	patient := &models.Patient{
		PatientNumber: req.PatientNumber,
		Name:          titleCase(req.Name),
		DateOfBirth:   dob.Format("2006-01-02"),
		Gender:        strings.ToLower(strings.TrimSpace(req.Gender)),
		Country:       titleCase(req.Country),
		Occupation:    titleCase(req.Occupation),
		Ethnicity:     titleCase(req.Ethnicity),
		Notes:         notes,
	}

	if err := s.patients.Create(ctx, patient); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Wrap(apperrors.KindConflict,
				fmt.Sprintf("Patient number %d already exists.", req.PatientNumber), err)
		}
		return nil, apperrors.Internal("Error creating patient.", err)
	}

	log.Info().
		Str("patient_id", patient.ID.String()).
		Int64("patient_number", patient.PatientNumber).
		Msg("Patient created")
	return patient, nil
}

// GetByNumber retrieves a patient by patient number.
func (s *PatientService) GetByNumber(ctx context.Context, patientNumber int64) (*models.Patient, error) {
	if patientNumber <= 0 {
		return nil, apperrors.New(apperrors.KindValidation, "Invalid patient number.")
	}
	patient, err := s.patients.GetByNumber(ctx, patientNumber)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "Patient not found.", err)
		}
		return nil, apperrors.Internal("Unexpected error retrieving patient.", err)
	}
	return patient, nil
}

// GetID resolves a patient number to the patient id.
func (s *PatientService) GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error) {
	id, err := s.patients.GetID(ctx, patientNumber)
	if err != nil {
		if isNotFound(err) {
			return uuid.Nil, apperrors.Wrap(apperrors.KindNotFound, "Patient not found.", err)
		}
		return uuid.Nil, apperrors.Internal("Error retrieving patient ID.", err)
	}
	return id, nil
}

// List retrieves all patients.
func (s *PatientService) List(ctx context.Context) ([]models.Patient, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Unexpected error retrieving patients.", err)
	}
	return patients, nil
}
