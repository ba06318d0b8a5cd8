package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/models"
)

// DoctorStore is the persistence interface for doctor accounts.
type DoctorStore interface {
	Create(ctx context.Context, doctor *models.Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	List(ctx context.Context) ([]models.Doctor, error)
}

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer signs bearer tokens for authenticated doctors.
type TokenIssuer interface {
	Issue(doctorID uuid.UUID, email string) (string, error)
}

// KeyAllocator allocates access keys at registration time.
type KeyAllocator interface {
	Allocate(ctx context.Context, doctorID uuid.UUID) (string, error)
}

// DoctorService handles doctor registration, authentication and lookups.
type DoctorService struct {
	doctors DoctorStore
	hasher  PasswordHasher
	tokens  TokenIssuer
	keys    KeyAllocator
}

// NewDoctorService creates a new doctor service
func NewDoctorService(doctors DoctorStore, hasher PasswordHasher, tokens TokenIssuer, keys KeyAllocator) *DoctorService {
	return &DoctorService{doctors: doctors, hasher: hasher, tokens: tokens, keys: keys}
}

// Register creates a doctor account and allocates its access key. The email
// is normalized to lowercase and must be globally unique.
func (s *DoctorService) Register(ctx context.Context, req models.RegisterDoctorRequest) (*models.RegisteredDoctor, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Name, email and password are required.")
	}

	// Fast path only; the unique index is the correctness mechanism.
	if _, err := s.doctors.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.New(apperrors.KindConflict, "Email is already registered.")
	} else if !isNotFound(err) {
		return nil, apperrors.Internal("Error creating doctor.", err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal("Error creating doctor.", err)
	}

	doctor := &models.Doctor{
		Email:    email,
		Name:     titleCase(req.Name),
		Password: digest,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.Wrap(apperrors.KindConflict, "Email is already registered.", err)
		}
		return nil, apperrors.Internal("Error creating doctor.", err)
	}

	apiKey, err := s.keys.Allocate(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}

	log.Info().Str("doctor_id", doctor.ID.String()).Msg("Doctor created")
	return &models.RegisteredDoctor{
		DoctorID:  doctor.ID,
		Email:     doctor.Email,
		Name:      doctor.Name,
		CreatedAt: doctor.CreatedAt,
		APIKey:    apiKey,
	}, nil
}

// Login authenticates a doctor and returns a fresh bearer token.
func (s *DoctorService) Login(ctx context.Context, req models.LoginRequest) (*models.TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperrors.New(apperrors.KindValidation, "Email and password are required.")
	}

	doctor, err := s.doctors.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if isNotFound(err) {
			log.Warn().Str("email", req.Email).Msg("Login failed: unknown email")
			return nil, apperrors.Wrap(apperrors.KindUnauthorized, "Invalid email or password.", err)
		}
		return nil, apperrors.Internal("Error during authentication.", err)
	}

	if !s.hasher.Verify(req.Password, doctor.Password) {
		log.Warn().Str("email", doctor.Email).Msg("Login failed: bad password")
		return nil, apperrors.New(apperrors.KindUnauthorized, "Invalid password.")
	}

	token, err := s.tokens.Issue(doctor.ID, doctor.Email)
	if err != nil {
		return nil, apperrors.Internal("Error during authentication.", err)
	}

	log.Info().Str("email", doctor.Email).Msg("Doctor authenticated")
	return &models.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// GetByID retrieves a doctor profile. The password hash never leaves the
// service.
func (s *DoctorService) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	doctor, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.Wrap(apperrors.KindNotFound, "Doctor not found.", err)
		}
		return nil, apperrors.Internal("Error retrieving doctor.", err)
	}
	doctor.Password = ""
	return doctor, nil
}

// List retrieves all doctors, without password hashes.
func (s *DoctorService) List(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("Error retrieving doctors.", err)
	}
	for i := range doctors {
		doctors[i].Password = ""
	}
	return doctors, nil
}
