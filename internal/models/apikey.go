package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// APIKey is the long-lived per-doctor secret used to call the external
// diagnosis service. At most one key exists per doctor, enforced by the
// unique index on doctor_id. Expiry and usage budget are recorded but not
// enforced on read.
type APIKey struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"api_key_id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"doctor_id"`
	Key       string    `gorm:"type:varchar(64);not null" json:"api_key"`
	Usage     int       `gorm:"not null" json:"usage"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expired_date"`
}

// TableName overrides the table name
func (APIKey) TableName() string {
	return "api_keys"
}

// BeforeCreate hook
func (k *APIKey) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}
