package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient represents a patient registered by a doctor. The caller-assigned
// patient number is unique across all patients, enforced by the index.
type Patient struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"patient_id"`
	PatientNumber int64     `gorm:"not null;uniqueIndex" json:"patient_number"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth   string    `gorm:"type:varchar(10);not null" json:"date_of_birth"` // canonical YYYY-MM-DD
	Gender        string    `gorm:"type:varchar(20);not null" json:"gender"`
	Country       string    `gorm:"type:varchar(100)" json:"country,omitempty"`
	Occupation    string    `gorm:"type:varchar(100)" json:"occupation,omitempty"`
	Ethnicity     string    `gorm:"type:varchar(100)" json:"ethnicity,omitempty"`
	Notes         []string  `gorm:"serializer:json;type:jsonb" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// BeforeCreate hook
func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// RegisterPatientRequest represents a patient registration payload
type RegisterPatientRequest struct {
	PatientNumber int64    `json:"patient_number" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	DateOfBirth   string   `json:"date_of_birth" binding:"required"`
	Gender        string   `json:"gender" binding:"required"`
	Country       string   `json:"country,omitempty"`
	Occupation    string   `json:"occupation,omitempty"`
	Ethnicity     string   `json:"ethnicity,omitempty"`
	Notes         []string `json:"notes,omitempty"`
}
