package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiagnosisResult is the canonical classifier output: a probability pair.
// The probabilities are independent and either may be absent.
type DiagnosisResult struct {
	Malignant *float64 `json:"malignant"`
	Benign    *float64 `json:"benign"`
}

// Case links a patient, the submitting doctor, the stored lesion image and
// the diagnosis result. Cases are immutable after creation.
type Case struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"case_id"`
	DoctorID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	Diagnosis DiagnosisResult `gorm:"serializer:json;type:jsonb" json:"diagnosis"`
	Notes     []string        `gorm:"serializer:json;type:jsonb" json:"notes"`
	ImageID   string          `gorm:"type:varchar(64)" json:"image_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName overrides the table name
func (Case) TableName() string {
	return "cases"
}

// BeforeCreate hook
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
