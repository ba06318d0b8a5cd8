package services

import (
	"context"

	"github.com/google/uuid"

	"skin-diagnosis-api/internal/models"
)

type mockDoctorStore struct {
	CreateFunc     func(ctx context.Context, doctor *models.Doctor) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.Doctor, error)
	ListFunc       func(ctx context.Context) ([]models.Doctor, error)
}

var _ DoctorStore = (*mockDoctorStore)(nil)

func (m *mockDoctorStore) Create(ctx context.Context, doctor *models.Doctor) error {
	return m.CreateFunc(ctx, doctor)
}

func (m *mockDoctorStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockDoctorStore) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockDoctorStore) List(ctx context.Context) ([]models.Doctor, error) {
	return m.ListFunc(ctx)
}

type mockHasher struct {
	HashFunc   func(plain string) (string, error)
	VerifyFunc func(plain, digest string) bool
}

var _ PasswordHasher = (*mockHasher)(nil)

func (m *mockHasher) Hash(plain string) (string, error) {
	return m.HashFunc(plain)
}

func (m *mockHasher) Verify(plain, digest string) bool {
	return m.VerifyFunc(plain, digest)
}

type mockTokenIssuer struct {
	IssueFunc func(doctorID uuid.UUID, email string) (string, error)
}

var _ TokenIssuer = (*mockTokenIssuer)(nil)

func (m *mockTokenIssuer) Issue(doctorID uuid.UUID, email string) (string, error) {
	return m.IssueFunc(doctorID, email)
}

type mockKeyAllocator struct {
	AllocateFunc func(ctx context.Context, doctorID uuid.UUID) (string, error)
}

var _ KeyAllocator = (*mockKeyAllocator)(nil)

func (m *mockKeyAllocator) Allocate(ctx context.Context, doctorID uuid.UUID) (string, error) {
	return m.AllocateFunc(ctx, doctorID)
}

type mockAPIKeyStore struct {
	CreateFunc        func(ctx context.Context, key *models.APIKey) error
	GetByDoctorIDFunc func(ctx context.Context, doctorID uuid.UUID) (*models.APIKey, error)
}

var _ APIKeyStore = (*mockAPIKeyStore)(nil)

func (m *mockAPIKeyStore) Create(ctx context.Context, key *models.APIKey) error {
	return m.CreateFunc(ctx, key)
}

func (m *mockAPIKeyStore) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) (*models.APIKey, error) {
	return m.GetByDoctorIDFunc(ctx, doctorID)
}

type mockPatientStore struct {
	CreateFunc      func(ctx context.Context, patient *models.Patient) error
	GetByNumberFunc func(ctx context.Context, patientNumber int64) (*models.Patient, error)
	GetIDFunc       func(ctx context.Context, patientNumber int64) (uuid.UUID, error)
	ListFunc        func(ctx context.Context) ([]models.Patient, error)
}

var _ PatientStore = (*mockPatientStore)(nil)

func (m *mockPatientStore) Create(ctx context.Context, patient *models.Patient) error {
	return m.CreateFunc(ctx, patient)
}

func (m *mockPatientStore) GetByNumber(ctx context.Context, patientNumber int64) (*models.Patient, error) {
	return m.GetByNumberFunc(ctx, patientNumber)
}

func (m *mockPatientStore) GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error) {
	return m.GetIDFunc(ctx, patientNumber)
}

func (m *mockPatientStore) List(ctx context.Context) ([]models.Patient, error) {
	return m.ListFunc(ctx)
}

type mockCaseStore struct {
	CreateFunc         func(ctx context.Context, c *models.Case) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Case, error)
	GetByDoctorIDFunc  func(ctx context.Context, doctorID uuid.UUID) ([]models.Case, error)
	GetByPatientIDFunc func(ctx context.Context, patientID uuid.UUID) ([]models.Case, error)
}

var _ CaseStore = (*mockCaseStore)(nil)

func (m *mockCaseStore) Create(ctx context.Context, c *models.Case) error {
	return m.CreateFunc(ctx, c)
}

func (m *mockCaseStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Case, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockCaseStore) GetByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]models.Case, error) {
	return m.GetByDoctorIDFunc(ctx, doctorID)
}

func (m *mockCaseStore) GetByPatientID(ctx context.Context, patientID uuid.UUID) ([]models.Case, error) {
	return m.GetByPatientIDFunc(ctx, patientID)
}

type mockImageStore struct {
	SaveFunc    func(ctx context.Context, image *models.Image) (uuid.UUID, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*models.Image, error)
}

var _ ImageStore = (*mockImageStore)(nil)

func (m *mockImageStore) Save(ctx context.Context, image *models.Image) (uuid.UUID, error) {
	return m.SaveFunc(ctx, image)
}

func (m *mockImageStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	return m.GetByIDFunc(ctx, id)
}

type mockPatientIDResolver struct {
	GetIDFunc func(ctx context.Context, patientNumber int64) (uuid.UUID, error)
}

var _ PatientIDResolver = (*mockPatientIDResolver)(nil)

func (m *mockPatientIDResolver) GetID(ctx context.Context, patientNumber int64) (uuid.UUID, error) {
	return m.GetIDFunc(ctx, patientNumber)
}

type mockKeyProvider struct {
	GetFunc func(ctx context.Context, doctorID uuid.UUID) (string, error)
}

var _ KeyProvider = (*mockKeyProvider)(nil)

func (m *mockKeyProvider) Get(ctx context.Context, doctorID uuid.UUID) (string, error) {
	return m.GetFunc(ctx, doctorID)
}

type mockDiagnoser struct {
	DiagnoseFunc func(ctx context.Context, imageBytes []byte, filename, apiKey string) (*models.DiagnosisResult, error)
}

var _ Diagnoser = (*mockDiagnoser)(nil)

func (m *mockDiagnoser) Diagnose(ctx context.Context, imageBytes []byte, filename, apiKey string) (*models.DiagnosisResult, error) {
	return m.DiagnoseFunc(ctx, imageBytes, filename, apiKey)
}
