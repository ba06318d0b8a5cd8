package handlers

import (
	"context"

	"github.com/google/uuid"

	"skin-diagnosis-api/internal/models"
	"skin-diagnosis-api/internal/services"
)

// Function-field stubs for the service store interfaces, so the handlers can
// be exercised through real service instances without a database.

type stubDoctorStore struct {
	CreateFunc     func(ctx context.Context, doctor *models.Doctor) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.Doctor, error)
	ListFunc       func(ctx context.Context) ([]models.Doctor, error)
}

var _ services.DoctorStore = (*stubDoctorStore)(nil)

func (s *stubDoctorStore) Create(ctx context.Context, doctor *models.Doctor) error {
	return s.CreateFunc(ctx, doctor)
}

func (s *stubDoctorStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	return s.GetByIDFunc(ctx, id)
}

func (s *stubDoctorStore) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return s.GetByEmailFunc(ctx, email)
}

func (s *stubDoctorStore) List(ctx context.Context) ([]models.Doctor, error) {
	return s.ListFunc(ctx)
}

type stubPatientStore struct {
	CreateFunc      func(ctx context.Context, patient *models.Patient) error
	GetByNumberFunc func(ctx context.Context, patientNumber int64) (*models.Patient, error)
	GetIDFunc       func(ctx context.Context, patientNumber int64) (uuid.UUID, error)
	ListFunc        func(ctx context.Context) ([]models.Patient, error)
}

var _ services.PatientStore = (*stubPatientStore)(nil)

func (s *stubPatientStore) Create(ctx context.Context, patient *models.Patient) error {
	return s.CreateFunc(ctx, patient)
}

func (s *stubPatientStore) GetByNumber(ctx context.Context, patientNumber int64) (*models.Patient, error) {
	return s.GetByNumberFunc(ctx, patientNumber)
}

func (s *stubPatientStore) GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error) {
	return s.GetIDFunc(ctx, patientNumber)
}

func (s *stubPatientStore) List(ctx context.Context) ([]models.Patient, error) {
	return s.ListFunc(ctx)
}

type stubCaseStore struct {
	CreateFunc         func(ctx context.Context, c *models.Case) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Case, error)
	GetByDoctorIDFunc  func(ctx context.Context, doctorID uuid.UUID) ([]models.Case, error)
	GetByPatientIDFunc func(ctx context.Context, patientID uuid.UUID) ([]models.Case, error)
}

var _ services.CaseStore = (*stubCaseStore)(nil)

func (s *stubCaseStore) Create(ctx context.Context, c *models.Case) error {
	return s.CreateFunc(ctx, c)
}

func (s *stubCaseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	return s.GetByIDFunc(ctx, id)
}

func (s *stubCaseStore) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]models.Case, error) {
	return s.GetByDoctorIDFunc(ctx, doctorID)
}

func (s *stubCaseStore) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]models.Case, error) {
	return s.GetByPatientIDFunc(ctx, patientID)
}

type stubImageStore struct {
	SaveFunc    func(ctx context.Context, image *models.Image) (uuid.UUID, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

var _ services.ImageStore = (*stubImageStore)(nil)

func (s *stubImageStore) Save(ctx context.Context, image *models.Image) (uuid.UUID, error) {
	return s.SaveFunc(ctx, image)
}

func (s *stubImageStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	return s.GetByIDFunc(ctx, id)
}

type stubKeyProvider struct {
	GetFunc func(ctx context.Context, doctorID uuid.UUID) (string, error)
}

var _ services.KeyProvider = (*stubKeyProvider)(nil)

func (s *stubKeyProvider) Get(ctx context.Context, doctorID uuid.UUID) (string, error) {
	return s.GetFunc(ctx, doctorID)
}

type stubPatientResolver struct {
	GetIDFunc func(ctx context.Context, patientNumber int64) (uuid.UUID, error)
}

var _ services.PatientIDResolver = (*stubPatientResolver)(nil)

func (s *stubPatientResolver) GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error) {
	return s.GetIDFunc(ctx, patientNumber)
}

type stubDiagnoser struct {
	DiagnoseFunc func(ctx context.Context, imageBytes []byte, filename, apiKey string) (*models.DiagnosisResult, error)
}

var _ services.Diagnoser = (*stubDiagnoser)(nil)

func (s *stubDiagnoser) Diagnose(ctx context.Context, imageBytes []byte, filename, apiKey string) (*models.DiagnosisResult, error) {
	return s.DiagnoseFunc(ctx, imageBytes, filename, apiKey)
}

type stubHasher struct{}

var _ services.PasswordHasher = (*stubHasher)(nil)

func (stubHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func (stubHasher) Verify(plain, digest string) bool { return digest == "hashed:"+plain }

type stubTokenIssuer struct{}

var _ services.TokenIssuer = (*stubTokenIssuer)(nil)

func (stubTokenIssuer) Issue(doctorID uuid.UUID, email string) (string, error) {
	return "signed-token", nil
}

type stubKeyAllocator struct{}

var _ services.KeyAllocator = (*stubKeyAllocator)(nil)

func (stubKeyAllocator) Allocate(ctx context.Context, doctorID uuid.UUID) (string, error) {
	return "allocated-key", nil
}
