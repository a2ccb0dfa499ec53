package controllers

import (
	"net/http"

	"github.com/ZhatkinVyacheslav/foodgram-st/services"

	"github.com/gin-gonic/gin"
)

type ingredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ListIngredients returns the catalog, optionally narrowed by name prefix.
func ListIngredients(c *gin.Context) {
	items, err := services.ListIngredients(c.Query("name"))
	if err != nil {
		abortServiceError(c, err)
		return
	}

	out := make([]ingredientResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ingredientResponse{
			ID:              item.ID,
			Name:            item.Name,
			MeasurementUnit: item.MeasurementUnit,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetIngredient returns one catalog entry.
func GetIngredient(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	item, err := services.GetIngredient(id)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredientResponse{
		ID:              item.ID,
		Name:            item.Name,
		MeasurementUnit: item.MeasurementUnit,
	})
}
