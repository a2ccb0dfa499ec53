package services

import (
	"errors"
	"strings"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListIngredients returns the catalog ordered by name, optionally narrowed
// to a case-insensitive name prefix. The list is not paginated.
func ListIngredients(namePrefix string) ([]models.Ingredient, error) {
	q := config.DB.Order("name")
	if namePrefix != "" {
		pattern := strings.ToLower(namePrefix) + "%"
		q = q.Where("LOWER(name) LIKE ?", pattern)
	}

	var out []models.Ingredient
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func GetIngredient(id uint) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := config.DB.First(&ing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ing, nil
}

// ImportIngredients bulk-inserts catalog entries, skipping rows that
// collide with the (name, measurement_unit) unique index. It returns the
// number of newly stored rows.
func ImportIngredients(items []models.Ingredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := config.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&items)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
