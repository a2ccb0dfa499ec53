package services

import (
	"testing"

	"github.com/ZhatkinVyacheslav/foodgram-st/models"
)

func TestImportIngredientsSkipsDuplicates(t *testing.T) {
	setupTestDB(t)

	batch := []models.Ingredient{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "milk", MeasurementUnit: "ml"},
	}
	n, err := ImportIngredients(batch)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}

	// Same name with a different unit is a distinct catalog entry.
	again := []models.Ingredient{
		{Name: "salt", MeasurementUnit: "g"},
		{Name: "salt", MeasurementUnit: "tsp"},
	}
	n, err = ImportIngredients(again)
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 new row, got %d", n)
	}

	all, err := ListIngredients("")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 ingredients, got %d", len(all))
	}
}

func TestListIngredientsPrefixFilter(t *testing.T) {
	setupTestDB(t)

	createTestIngredient(t, "Sugar", "g")
	createTestIngredient(t, "sunflower oil", "ml")
	createTestIngredient(t, "flour", "g")

	got, err := ListIngredients("su")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for prefix 'su', got %d", len(got))
	}
	// Ordered by name.
	if got[0].Name != "Sugar" && got[1].Name != "Sugar" {
		t.Fatalf("expected Sugar in the matches, got %+v", got)
	}

	got, err = ListIngredients("zzz")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestGetIngredientNotFound(t *testing.T) {
	setupTestDB(t)

	if _, err := GetIngredient(404); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
