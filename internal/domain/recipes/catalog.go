package recipes

import (
	"github.com/google/uuid"
)

// Ingredient is catalog reference data. Names are not unique: two rows may
// share a name and differ only in unit, and they stay distinct everywhere.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"size:200;not null;index;column:name" json:"name"`
	MeasurementUnit string    `gorm:"size:100;not null;column:measurement_unit" json:"measurement_unit"`
}

func (Ingredient) TableName() string { return "ingredient" }

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name  string    `gorm:"size:100;not null;uniqueIndex;column:name" json:"name"`
	Color string    `gorm:"size:7;not null;uniqueIndex;column:color" json:"color"`
	Slug  string    `gorm:"size:100;not null;uniqueIndex;column:slug" json:"slug"`
}

func (Tag) TableName() string { return "tag" }
