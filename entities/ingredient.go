package entities

import (
	"github.com/google/uuid"
)

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"size:200;index" json:"name"`
	MeasurementUnit string    `gorm:"size:16" json:"measurement_unit"`

	Timestamp
}
