package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"skin-diagnosis-api/internal/apperrors"
	"skin-diagnosis-api/internal/models"
)

// APIKeyStore is the persistence interface for access keys.
type APIKeyStore interface {
	Create(ctx context.Context, key *models.APIKey) error
	GetByDoctorID(ctx context.Context, doctorID uuid.UUID) (*models.APIKey, error)
}

// APIKeyService manages the per-doctor access keys used to call the external
// diagnosis service.
type APIKeyService struct {
	keys        APIKeyStore
	ttl         time.Duration
	usageBudget int
}

// NewAPIKeyService creates a new API key service
func NewAPIKeyService(keys APIKeyStore, ttl time.Duration, usageBudget int) *APIKeyService {
	return &APIKeyService{keys: keys, ttl: ttl, usageBudget: usageBudget}
}

// Allocate returns the doctor's access key, generating and persisting one on
// first allocation. Allocation is idempotent: an existing key is returned
// unchanged, and a lost insert race resolves by re-reading the winner's row.
func (s *APIKeyService) Allocate(ctx context.Context, doctorID uuid.UUID) (string, error) {
	existing, err := s.keys.GetByDoctorID(ctx, doctorID)
	if err == nil {
		log.Debug().Str("doctor_id", doctorID.String()).Msg("API key already allocated")
		return existing.Key, nil
	}
	if !isNotFound(err) {
		return "", apperrors.Internal("Error retrieving API key.", err)
	}

	secret, err := generateKey()
	if err != nil {
		return "", apperrors.Internal("API key allocation error.", err)
	}

	now := time.Now().UTC()
	key := &models.APIKey{
		DoctorID:  doctorID,
		Key:       secret,
		Usage:     s.usageBudget,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.keys.Create(ctx, key); err != nil {
		if isDuplicate(err) {
			// Concurrent allocate: first insert wins, return its key.
			winner, getErr := s.keys.GetByDoctorID(ctx, doctorID)
			if getErr != nil {
				return "", apperrors.Internal("API key allocation failed.", getErr)
			}
			return winner.Key, nil
		}
		return "", apperrors.Internal("API key allocation failed.", err)
	}

	log.Info().Str("doctor_id", doctorID.String()).Msg("API key allocated")
	return secret, nil
}

// Get returns the doctor's access key. Expiry and usage budget are stored
// policy fields, not enforced here.
func (s *APIKeyService) Get(ctx context.Context, doctorID uuid.UUID) (string, error) {
	key, err := s.keys.GetByDoctorID(ctx, doctorID)
	if err != nil {
		if isNotFound(err) {
			return "", apperrors.Wrap(apperrors.KindNotFound, "API key not found.", err)
		}
		return "", apperrors.Internal("Error retrieving API key.", err)
	}
	return key.Key, nil
}

// generateKey returns 256 bits of randomness, hex-encoded to 64 characters.
func generateKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate key material: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
