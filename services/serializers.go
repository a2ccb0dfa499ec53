package services

import (
	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
	"github.com/ZhatkinVyacheslav/foodgram-st/utils"
)

// UserPublic is the profile representation returned by the users endpoints.
type UserPublic struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Avatar       string `json:"avatar"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// SubscribedAuthor extends UserPublic with the author's recipes for the
// subscriptions listing.
type SubscribedAuthor struct {
	UserPublic
	Recipes      []RecipeCompact `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// RecipeCompact is the short recipe form used in favorites, the cart and
// subscription listings.
type RecipeCompact struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// IngredientAmount is one ingredient row inside a recipe representation.
type IngredientAmount struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeDetail is the full recipe representation.
type RecipeDetail struct {
	ID               uint               `json:"id"`
	Name             string             `json:"name"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	Image            string             `json:"image"`
	Author           UserPublic         `json:"author"`
	Ingredients      []IngredientAmount `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
}

// serializeUser builds the public profile. viewerID 0 means anonymous.
func serializeUser(u *models.User, viewerID uint) UserPublic {
	out := UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    utils.MediaURL(u.Avatar),
	}
	if viewerID != 0 && viewerID != u.ID {
		var n int64
		config.DB.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ?", viewerID, u.ID).
			Count(&n)
		out.IsSubscribed = n > 0
	}
	return out
}

func serializeCompactRecipe(r *models.Recipe) RecipeCompact {
	return RecipeCompact{
		ID:          r.ID,
		Name:        r.Name,
		Image:       utils.MediaURL(r.Image),
		CookingTime: r.CookingTime,
	}
}

// serializeRecipe builds the full representation; the recipe must have
// Author and Ingredients.Ingredient preloaded.
func serializeRecipe(r *models.Recipe, viewerID uint) RecipeDetail {
	out := RecipeDetail{
		ID:          r.ID,
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Image:       utils.MediaURL(r.Image),
		Author:      serializeUser(&r.Author, viewerID),
		Ingredients: make([]IngredientAmount, 0, len(r.Ingredients)),
	}
	for _, ri := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, IngredientAmount{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	if viewerID != 0 {
		var n int64
		config.DB.Model(&models.Favorite{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, r.ID).Count(&n)
		out.IsFavorited = n > 0
		config.DB.Model(&models.ShoppingList{}).
			Where("user_id = ? AND recipe_id = ?", viewerID, r.ID).Count(&n)
		out.IsInShoppingCart = n > 0
	}
	return out
}
