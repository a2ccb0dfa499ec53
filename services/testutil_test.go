package services

import (
	"testing"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
	"github.com/ZhatkinVyacheslav/foodgram-st/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// base64 for a 1x1 transparent PNG.
const testImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

// setupTestDB points the global connection at a fresh in-memory SQLite
// database for the duration of one test.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		sqlDB.Close()
	})
}

func createTestUser(t *testing.T, email, username string) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword("supersecret")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Email:     email,
		Username:  username,
		Password:  hashed,
		FirstName: "Test",
		LastName:  "User",
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func createTestIngredient(t *testing.T, name, unit string) *models.Ingredient {
	t.Helper()

	ing := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := config.DB.Create(&ing).Error; err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	return &ing
}

func createTestRecipe(t *testing.T, authorID uint, name string, items []RecipeIngredientInput) *RecipeDetail {
	t.Helper()

	recipe, err := CreateRecipe(authorID, t.TempDir(), RecipeInput{
		Name:        name,
		Text:        "Mix and cook.",
		CookingTime: 10,
		Image:       testImage,
		Ingredients: items,
	})
	if err != nil {
		t.Fatalf("create recipe %q: %v", name, err)
	}
	return recipe
}
