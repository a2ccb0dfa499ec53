package models

// Ingredient is a catalog entry loaded from data/ingredients.json.
// The same name may appear with different measurement units.
type Ingredient struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:128;index;uniqueIndex:idx_ingredient_name_unit;not null"`
	MeasurementUnit string `gorm:"size:64;uniqueIndex:idx_ingredient_name_unit;not null"`
}
