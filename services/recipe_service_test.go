package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
)

func TestCreateRecipe(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "cook@example.com", "cook")
	salt := createTestIngredient(t, "salt", "g")
	milk := createTestIngredient(t, "milk", "ml")

	mediaRoot := t.TempDir()
	recipe, err := CreateRecipe(author.ID, mediaRoot, RecipeInput{
		Name:        "Porridge",
		Text:        "Boil the milk, add everything else.",
		CookingTime: 15,
		Image:       testImage,
		Ingredients: []RecipeIngredientInput{
			{ID: salt.ID, Amount: 5},
			{ID: milk.ID, Amount: 200},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if recipe.Author.ID != author.ID {
		t.Fatalf("expected author %d, got %d", author.ID, recipe.Author.ID)
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(recipe.Ingredients))
	}
	for _, ing := range recipe.Ingredients {
		if ing.Name == "" || ing.MeasurementUnit == "" {
			t.Fatalf("ingredient not resolved: %+v", ing)
		}
	}

	// The image landed under the media root.
	rel := recipe.Image[len("/media/"):]
	if _, err := os.Stat(filepath.Join(mediaRoot, filepath.FromSlash(rel))); err != nil {
		t.Fatalf("stored image missing: %v", err)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "cook@example.com", "cook")
	salt := createTestIngredient(t, "salt", "g")

	var ve *ValidationError
	cases := []struct {
		name  string
		items []RecipeIngredientInput
	}{
		{"empty ingredient list", nil},
		{"duplicate ingredient", []RecipeIngredientInput{{ID: salt.ID, Amount: 1}, {ID: salt.ID, Amount: 2}}},
		{"zero amount", []RecipeIngredientInput{{ID: salt.ID, Amount: 0}}},
		{"amount above limit", []RecipeIngredientInput{{ID: salt.ID, Amount: MaxIngredientAmount + 1}}},
		{"unknown ingredient", []RecipeIngredientInput{{ID: 9999, Amount: 1}}},
	}
	for _, tc := range cases {
		_, err := CreateRecipe(author.ID, t.TempDir(), RecipeInput{
			Name:        "Bad",
			Text:        "x",
			CookingTime: 1,
			Image:       testImage,
			Ingredients: tc.items,
		})
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestUpdateRecipeReplacesIngredients(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "cook@example.com", "cook")
	other := createTestUser(t, "guest@example.com", "guest")
	salt := createTestIngredient(t, "salt", "g")
	milk := createTestIngredient(t, "milk", "ml")

	recipe := createTestRecipe(t, author.ID, "Porridge",
		[]RecipeIngredientInput{{ID: salt.ID, Amount: 5}})

	update := RecipeInput{
		Name:        "Better porridge",
		Text:        "Now with milk.",
		CookingTime: 20,
		Ingredients: []RecipeIngredientInput{{ID: milk.ID, Amount: 300}},
	}

	if _, err := UpdateRecipe(recipe.ID, other.ID, t.TempDir(), update); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor for foreign update, got %v", err)
	}

	updated, err := UpdateRecipe(recipe.ID, author.ID, t.TempDir(), update)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Better porridge" || updated.CookingTime != 20 {
		t.Fatalf("fields not updated: %+v", updated)
	}
	if len(updated.Ingredients) != 1 || updated.Ingredients[0].ID != milk.ID {
		t.Fatalf("ingredient set not replaced: %+v", updated.Ingredients)
	}

	var rows int64
	config.DB.Model(&models.RecipeIngredient{}).Where("recipe_id = ?", recipe.ID).Count(&rows)
	if rows != 1 {
		t.Fatalf("expected 1 ingredient row, got %d", rows)
	}
}

func TestDeleteRecipeCleansUp(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "cook@example.com", "cook")
	other := createTestUser(t, "guest@example.com", "guest")
	salt := createTestIngredient(t, "salt", "g")

	recipe := createTestRecipe(t, author.ID, "Soup",
		[]RecipeIngredientInput{{ID: salt.ID, Amount: 3}})

	if _, err := AddFavorite(other.ID, recipe.ID); err != nil {
		t.Fatalf("favorite failed: %v", err)
	}
	if _, err := AddToCart(other.ID, recipe.ID); err != nil {
		t.Fatalf("cart failed: %v", err)
	}

	if err := DeleteRecipe(recipe.ID, other.ID, t.TempDir()); !errors.Is(err, ErrNotAuthor) {
		t.Fatalf("expected ErrNotAuthor for foreign delete, got %v", err)
	}
	if err := DeleteRecipe(recipe.ID, author.ID, t.TempDir()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := GetRecipe(recipe.ID, 0); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	for _, model := range []interface{}{&models.RecipeIngredient{}, &models.Favorite{}, &models.ShoppingList{}} {
		var rows int64
		config.DB.Model(model).Where("recipe_id = ?", recipe.ID).Count(&rows)
		if rows != 0 {
			t.Fatalf("expected no %T rows after delete, got %d", model, rows)
		}
	}
}

func TestFavoriteAndCartToggles(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "cook@example.com", "cook")
	user := createTestUser(t, "guest@example.com", "guest")
	salt := createTestIngredient(t, "salt", "g")
	recipe := createTestRecipe(t, author.ID, "Soup",
		[]RecipeIngredientInput{{ID: salt.ID, Amount: 3}})

	compact, err := AddFavorite(user.ID, recipe.ID)
	if err != nil {
		t.Fatalf("favorite failed: %v", err)
	}
	if compact.ID != recipe.ID || compact.Name != "Soup" {
		t.Fatalf("unexpected compact recipe: %+v", compact)
	}
	if _, err := AddFavorite(user.ID, recipe.ID); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	detail, err := GetRecipe(recipe.ID, user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !detail.IsFavorited || detail.IsInShoppingCart {
		t.Fatalf("unexpected flags: %+v", detail)
	}

	if err := RemoveFavorite(user.ID, recipe.ID); err != nil {
		t.Fatalf("unfavorite failed: %v", err)
	}
	if err := RemoveFavorite(user.ID, recipe.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat removal, got %v", err)
	}

	if _, err := AddToCart(user.ID, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown recipe, got %v", err)
	}
}

func TestListRecipesFilters(t *testing.T) {
	setupTestDB(t)

	author := createTestUser(t, "cook@example.com", "cook")
	other := createTestUser(t, "guest@example.com", "guest")
	salt := createTestIngredient(t, "salt", "g")

	soup := createTestRecipe(t, author.ID, "Soup",
		[]RecipeIngredientInput{{ID: salt.ID, Amount: 3}})
	createTestRecipe(t, other.ID, "Salad",
		[]RecipeIngredientInput{{ID: salt.ID, Amount: 1}})

	all, count, err := ListRecipes(0, RecipeFilter{}, PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if count != 2 || len(all) != 2 {
		t.Fatalf("expected 2 recipes, got count=%d len=%d", count, len(all))
	}

	byAuthor, count, err := ListRecipes(0, RecipeFilter{AuthorID: author.ID}, PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("list by author failed: %v", err)
	}
	if count != 1 || byAuthor[0].ID != soup.ID {
		t.Fatalf("author filter broken: count=%d", count)
	}

	if _, err := AddFavorite(other.ID, soup.ID); err != nil {
		t.Fatalf("favorite failed: %v", err)
	}
	favs, count, err := ListRecipes(other.ID, RecipeFilter{Favorited: true}, PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("favorited list failed: %v", err)
	}
	if count != 1 || favs[0].ID != soup.ID || !favs[0].IsFavorited {
		t.Fatalf("favorited filter broken: count=%d", count)
	}

	// The favorited filter is a no-op for anonymous callers.
	_, count, err = ListRecipes(0, RecipeFilter{Favorited: true}, PageParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("anonymous list failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("anonymous favorited filter should not narrow, got %d", count)
	}
}
