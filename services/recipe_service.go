package services

import (
	"errors"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
	"github.com/ZhatkinVyacheslav/foodgram-st/utils"

	"gorm.io/gorm"
)

const (
	MinIngredientAmount = 1
	MaxIngredientAmount = 32000
)

type RecipeIngredientInput struct {
	ID     uint `json:"id" binding:"required"`
	Amount int  `json:"amount" binding:"required"`
}

type RecipeInput struct {
	Name        string                  `json:"name" binding:"required,max=256"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time" binding:"required,min=1"`
	Image       string                  `json:"image"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// RecipeFilter narrows the recipe listing. Favorited and InCart only apply
// to authenticated callers.
type RecipeFilter struct {
	AuthorID  uint
	Favorited bool
	InCart    bool
}

func recipeQuery(viewerID uint, f RecipeFilter) *gorm.DB {
	q := config.DB.Model(&models.Recipe{})
	if f.AuthorID != 0 {
		q = q.Where("author_id = ?", f.AuthorID)
	}
	if viewerID != 0 {
		if f.Favorited {
			q = q.Joins("JOIN favorites ON favorites.recipe_id = recipes.id AND favorites.user_id = ?", viewerID)
		}
		if f.InCart {
			q = q.Joins("JOIN shopping_lists ON shopping_lists.recipe_id = recipes.id AND shopping_lists.user_id = ?", viewerID)
		}
	}
	return q.Session(&gorm.Session{})
}

// ListRecipes returns one page of recipes, newest first.
func ListRecipes(viewerID uint, f RecipeFilter, p PageParams) ([]RecipeDetail, int64, error) {
	base := recipeQuery(viewerID, f)

	var count int64
	if err := base.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var recipes []models.Recipe
	err := base.
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]RecipeDetail, 0, len(recipes))
	for i := range recipes {
		out = append(out, serializeRecipe(&recipes[i], viewerID))
	}
	return out, count, nil
}

func GetRecipe(id, viewerID uint) (*RecipeDetail, error) {
	recipe, err := loadRecipe(id)
	if err != nil {
		return nil, err
	}
	out := serializeRecipe(recipe, viewerID)
	return &out, nil
}

// CreateRecipe validates the input, stores the image and creates the recipe
// with its ingredient rows in one transaction.
func CreateRecipe(authorID uint, mediaRoot string, in RecipeInput) (*RecipeDetail, error) {
	if err := validateIngredients(in.Ingredients); err != nil {
		return nil, err
	}
	if in.Image == "" {
		return nil, validationf("image is required")
	}

	imagePath, err := utils.SaveBase64Image(mediaRoot, "recipes", in.Image)
	if err != nil {
		return nil, validationf("%s", err)
	}

	recipe := models.Recipe{
		Name:        in.Name,
		Text:        in.Text,
		Image:       imagePath,
		AuthorID:    authorID,
		CookingTime: in.CookingTime,
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return saveIngredients(tx, recipe.ID, in.Ingredients)
	})
	if err != nil {
		utils.RemoveImage(mediaRoot, imagePath)
		return nil, err
	}

	return GetRecipe(recipe.ID, authorID)
}

// UpdateRecipe replaces the recipe's fields and its whole ingredient set.
// Only the author may update; the image is kept when the input omits it.
func UpdateRecipe(id, callerID uint, mediaRoot string, in RecipeInput) (*RecipeDetail, error) {
	recipe, err := loadRecipe(id)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != callerID {
		return nil, ErrNotAuthor
	}
	if err := validateIngredients(in.Ingredients); err != nil {
		return nil, err
	}

	oldImage := ""
	imagePath := recipe.Image
	if in.Image != "" {
		imagePath, err = utils.SaveBase64Image(mediaRoot, "recipes", in.Image)
		if err != nil {
			return nil, validationf("%s", err)
		}
		oldImage = recipe.Image
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":         in.Name,
			"text":         in.Text,
			"image":        imagePath,
			"cooking_time": in.CookingTime,
		}
		if err := tx.Model(&models.Recipe{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return saveIngredients(tx, id, in.Ingredients)
	})
	if err != nil {
		if oldImage != "" {
			utils.RemoveImage(mediaRoot, imagePath)
		}
		return nil, err
	}
	if oldImage != "" {
		utils.RemoveImage(mediaRoot, oldImage)
	}

	return GetRecipe(id, callerID)
}

// DeleteRecipe removes the recipe, its ingredient rows and any favorite or
// cart references, then deletes the stored image.
func DeleteRecipe(id, callerID uint, mediaRoot string) error {
	recipe, err := loadRecipe(id)
	if err != nil {
		return err
	}
	if recipe.AuthorID != callerID {
		return ErrNotAuthor
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.ShoppingList{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return err
	}

	utils.RemoveImage(mediaRoot, recipe.Image)
	return nil
}

// AddFavorite bookmarks the recipe; ErrAlreadyExists on a repeat.
func AddFavorite(userID, recipeID uint) (*RecipeCompact, error) {
	return addRelation(userID, recipeID, func(u, r uint) interface{} {
		return &models.Favorite{UserID: u, RecipeID: r}
	})
}

func RemoveFavorite(userID, recipeID uint) error {
	return removeRelation(userID, recipeID, &models.Favorite{})
}

// AddToCart puts the recipe into the user's shopping cart.
func AddToCart(userID, recipeID uint) (*RecipeCompact, error) {
	return addRelation(userID, recipeID, func(u, r uint) interface{} {
		return &models.ShoppingList{UserID: u, RecipeID: r}
	})
}

func RemoveFromCart(userID, recipeID uint) error {
	return removeRelation(userID, recipeID, &models.ShoppingList{})
}

func loadRecipe(id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := config.DB.
		Preload("Author").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func validateIngredients(items []RecipeIngredientInput) error {
	if len(items) == 0 {
		return validationf("add at least one ingredient")
	}

	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.Amount < MinIngredientAmount {
			return validationf("ingredient amount must be positive")
		}
		if item.Amount > MaxIngredientAmount {
			return validationf("ingredient amount may not exceed %d", MaxIngredientAmount)
		}
		if _, dup := seen[item.ID]; dup {
			return validationf("duplicate ingredient in recipe")
		}
		seen[item.ID] = struct{}{}
		ids = append(ids, item.ID)
	}

	var known int64
	if err := config.DB.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&known).Error; err != nil {
		return err
	}
	if known != int64(len(ids)) {
		return validationf("unknown ingredient id")
	}
	return nil
}

func saveIngredients(tx *gorm.DB, recipeID uint, items []RecipeIngredientInput) error {
	rows := make([]models.RecipeIngredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return tx.Create(&rows).Error
}

func addRelation(userID, recipeID uint, build func(u, r uint) interface{}) (*RecipeCompact, error) {
	var recipe models.Recipe
	if err := config.DB.First(&recipe, recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	row := build(userID, recipeID)
	var n int64
	config.DB.Model(row).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n)
	if n > 0 {
		return nil, ErrAlreadyExists
	}
	if err := config.DB.Create(row).Error; err != nil {
		return nil, err
	}

	out := serializeCompactRecipe(&recipe)
	return &out, nil
}

func removeRelation(userID, recipeID uint, model interface{}) error {
	res := config.DB.
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
