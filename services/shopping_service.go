package services

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
)

// ShoppingReportFilename is the attachment name for the exported cart.
const ShoppingReportFilename = "grocery_list.txt"

type ingredientTotal struct {
	Name string
	Unit string
	Sum  int
}

// BuildShoppingReport renders the user's shopping cart as a plain-text
// grocery list: ingredient amounts aggregated across recipes by
// (name, unit), followed by the contributing recipe names.
func BuildShoppingReport(userID uint, now time.Time) (string, error) {
	var cart []models.ShoppingList
	if err := config.DB.Where("user_id = ?", userID).Find(&cart).Error; err != nil {
		return "", err
	}

	recipeIDs := make([]uint, 0, len(cart))
	for _, item := range cart {
		recipeIDs = append(recipeIDs, item.RecipeID)
	}

	totals := map[string]*ingredientTotal{}
	recipeNames := map[string]struct{}{}

	if len(recipeIDs) > 0 {
		var recipes []models.Recipe
		err := config.DB.
			Preload("Ingredients.Ingredient").
			Find(&recipes, recipeIDs).Error
		if err != nil {
			return "", err
		}
		for _, r := range recipes {
			recipeNames[r.Name] = struct{}{}
			for _, ri := range r.Ingredients {
				key := ri.Ingredient.Name + "\x00" + ri.Ingredient.MeasurementUnit
				if t, ok := totals[key]; ok {
					t.Sum += ri.Amount
				} else {
					totals[key] = &ingredientTotal{
						Name: ri.Ingredient.Name,
						Unit: ri.Ingredient.MeasurementUnit,
						Sum:  ri.Amount,
					}
				}
			}
		}
	}

	sorted := make([]*ingredientTotal, 0, len(totals))
	for _, t := range totals {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Unit < sorted[j].Unit
	})

	names := make([]string, 0, len(recipeNames))
	for name := range recipeNames {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Shopping list (%s):\n", now.Format("2006-01-02"))
	b.WriteString("Ingredients:\n")
	for i, t := range sorted {
		fmt.Fprintf(&b, "%d. %s (%s) — %d\n", i+1, capitalize(t.Name), t.Unit, t.Sum)
	}
	b.WriteString("\nRecipes:\n")
	for i, name := range names {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}
	return b.String(), nil
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
