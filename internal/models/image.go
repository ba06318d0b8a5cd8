package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image holds the raw bytes of an uploaded lesion image, keyed by a generated
// id. Name is the generated unique filename assigned at upload time.
type Image struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"image_id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Data      []byte    `gorm:"type:bytea;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Image) TableName() string {
	return "images"
}

// BeforeCreate hook
func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
