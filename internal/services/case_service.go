package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/models"
)

// allowedExtensions lists the accepted upload file types.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// CaseStore is the persistence interface for cases.
type CaseStore interface {
	Create(ctx context.Context, c *models.Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error)
	GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]models.Case, error)
	GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]models.Case, error)
}

// ImageStore persists raw lesion images.
type ImageStore interface {
	Save(ctx context.Context, image *models.Image) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

// PatientIDResolver resolves a patient number to the patient id.
type PatientIDResolver interface {
	GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error)
}

// KeyProvider returns a doctor's access key for the diagnosis service.
type KeyProvider interface {
	Get(ctx context.Context, doctorID uuid.UUID) (string, error)
}

// Diagnoser submits an image to the external classifier.
type Diagnoser interface {
	Diagnose(ctx context.Context, imageBytes []byte, filename, apiKey string) (*models.DiagnosisResult, error)
}

// CreateCaseInput is the validated input of the case creation workflow.
type CreateCaseInput struct {
	PatientNumber int64
	Notes         []string
	ImageBytes    []byte
	Filename      string
	DoctorID      uuid.UUID
}

// CaseService orchestrates the diagnosis workflow and serves case lookups.
type CaseService struct {
	cases     CaseStore
	images    ImageStore
	patients  PatientIDResolver
	keys      KeyProvider
	diagnoser Diagnoser
}

// NewCaseService creates a new case service
func NewCaseService(cases CaseStore, images ImageStore, patients PatientIDResolver, keys KeyProvider, diagnoser Diagnoser) *CaseService {
	return &CaseService{
		cases:     cases,
		images:    images,
		patients:  patients,
		keys:      keys,
		diagnoser: diagnoser,
	}
}

// Create runs the case creation pipeline: validate the upload, resolve the
// patient, fetch the caller's access key, store the image, obtain a
// diagnosis and persist the case. The first failing step aborts the rest; no
// partial case is ever written.
func (s *CaseService) Create(ctx context.Context, in CreateCaseInput) (*models.Case, error) {
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if !allowedExtensions[ext] {
		return nil, apperrors.New(apperrors.KindUnsupportedMedia,
			fmt.Sprintf("Unsupported file format '%s'. Allowed formats: PNG, JPG, JPEG.", in.Filename))
	}

	patientID, err := s.patients.GetID(ctx, in.PatientNumber)
	if err != nil {
		return nil, err
	}

	apiKey, err := s.keys.Get(ctx, in.DoctorID)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.Wrap(apperrors.KindForbidden, "Doctor API key missing or invalid.", err)
		}
		return nil, err
	}

	imageName := generateImageName(ext)
	imageID, err := s.images.Save(ctx, &models.Image{Name: imageName, Data: in.ImageBytes})
	if err != nil {
		return nil, apperrors.Internal("Error uploading image.", err)
	}
	log.Info().Str("image_id", imageID.String()).Msg("Image stored")

	diagnosis, err := s.diagnoser.Diagnose(ctx, in.ImageBytes, imageName, apiKey)
	if err != nil {
		return nil, err
	}

	notes := in.Notes
	if len(notes) == 0 {
		notes = []string{""}
	}

	c := &models.Case{
		DoctorID:  in.DoctorID,
		PatientID: patientID,
		Diagnosis: *diagnosis,
		Notes:     notes,
		ImageID:   imageID.String(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return nil, apperrors.Internal("Database insert failed.", err)
	}

	log.Info().Str("case_id", c.ID.String()).Msg("Case created")
	return c, nil
}

// GetByID retrieves a single case. Lookup is by exact id only; ownership is
// not checked, so any authenticated doctor can read any case by id.
func (s *CaseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "Case not found", err)
		}
		return nil, apperrors.Internal("Error retrieving case.", err)
	}
	return c, nil
}

// GetByDoctor retrieves all cases submitted by a doctor. An empty result is
// an empty list, not an error.
func (s *CaseService) GetByDoctor(ctx context.Context, doctorID uuid.UUID) ([]models.Case, error) {
	cases, err := s.cases.GetByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal("Error retrieving cases.", err)
	}
	if cases == nil {
		cases = []models.Case{}
	}
	return cases, nil
}

// GetByPatient retrieves all cases for a patient. An empty result is an
// empty list, not an error.
func (s *CaseService) GetByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Case, error) {
	cases, err := s.cases.GetByPatientID(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal("Error retrieving cases.", err)
	}
	if cases == nil {
		cases = []models.Case{}
	}
	return cases, nil
}

// GetImage retrieves the raw bytes of a stored lesion image.
func (s *CaseService) GetImage(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "Image not found.", err)
		}
		return nil, apperrors.Internal("Error retrieving image.", err)
	}
	return image, nil
}

// generateImageName builds a unique blob name from a UTC timestamp and a
// random suffix.
func generateImageName(ext string) string {
	timestamp := time.Now().UTC().Format("20060102150405")
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("image_%s_%s%s", timestamp, suffix, ext)
}
