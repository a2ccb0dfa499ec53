package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/services"

	"github.com/gin-gonic/gin"
)

func recipeFilterFromQuery(c *gin.Context) services.RecipeFilter {
	var f services.RecipeFilter
	if v, err := strconv.ParseUint(c.Query("author"), 10, 32); err == nil {
		f.AuthorID = uint(v)
	}
	f.Favorited = c.Query("is_favorited") == "1"
	f.InCart = c.Query("is_in_shopping_cart") == "1"
	return f
}

// ListRecipes returns one page of recipes, newest first.
func ListRecipes(c *gin.Context) {
	p := services.ParsePageParams(c.Request.URL.Query())
	recipes, count, err := services.ListRecipes(currentUserID(c), recipeFilterFromQuery(c), p)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.BuildPage(count, recipes, c.Request.URL.Path, p))
}

// GetRecipe returns the full representation of one recipe.
func GetRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := services.GetRecipe(id, currentUserID(c))
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe stores a new recipe for the caller.
func CreateRecipe(c *gin.Context) {
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := services.CreateRecipe(currentUserID(c), config.App.MediaRoot, input)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe replaces the recipe's fields and ingredient set.
func UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input services.RecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := services.UpdateRecipe(id, currentUserID(c), config.App.MediaRoot, input)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes the caller's recipe.
func DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := services.DeleteRecipe(id, currentUserID(c), config.App.MediaRoot); err != nil {
		abortServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFavorite bookmarks the recipe for the caller.
func AddFavorite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := services.AddFavorite(currentUserID(c), id)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// RemoveFavorite drops the bookmark.
func RemoveFavorite(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := services.RemoveFavorite(currentUserID(c), id); err != nil {
		abortServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddToCart puts the recipe into the caller's shopping cart.
func AddToCart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	recipe, err := services.AddToCart(currentUserID(c), id)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// RemoveFromCart drops the recipe from the cart.
func RemoveFromCart(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := services.RemoveFromCart(currentUserID(c), id); err != nil {
		abortServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart exports the cart as a text attachment.
func DownloadShoppingCart(c *gin.Context) {
	report, err := services.BuildShoppingReport(currentUserID(c), time.Now())
	if err != nil {
		abortServiceError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", services.ShoppingReportFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}
