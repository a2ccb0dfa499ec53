package models

import (
	"gorm.io/gorm"
)

type Recipe struct {
	gorm.Model
	Name        string `gorm:"size:256;not null"`
	Text        string `gorm:"not null"`
	Image       string `gorm:"not null"` // relative path under the media root
	AuthorID    uint   `gorm:"index;not null"`
	Author      User
	CookingTime int                `gorm:"not null"` // minutes, >= 1
	Ingredients []RecipeIngredient `gorm:"constraint:OnDelete:CASCADE"`
}

// RecipeIngredient stores the amount of one ingredient in one recipe.
type RecipeIngredient struct {
	ID           uint `gorm:"primaryKey"`
	RecipeID     uint `gorm:"uniqueIndex:idx_recipe_ingredient;not null"`
	IngredientID uint `gorm:"uniqueIndex:idx_recipe_ingredient;not null"`
	Ingredient   Ingredient
	Amount       int `gorm:"not null"`
}

type Favorite struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex:idx_favorite_user_recipe;not null"`
	RecipeID uint `gorm:"uniqueIndex:idx_favorite_user_recipe;not null"`
}

type ShoppingList struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex:idx_cart_user_recipe;not null"`
	RecipeID uint `gorm:"uniqueIndex:idx_cart_user_recipe;not null"`
}
