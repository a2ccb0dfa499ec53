// Command loaddata imports the ingredient catalog from a JSON file:
//
//	[{"name": "...", "measurement_unit": "..."}, ...]
//
// Rows already present (same name and unit) are skipped.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/models"
	"github.com/ZhatkinVyacheslav/foodgram-st/services"
)

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	path := flag.String("file", "data/ingredients.json", "path to the ingredients JSON file")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("file not found: %v", err)
	}

	var records []ingredientRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("malformed JSON: %v", err)
	}

	items := make([]models.Ingredient, 0, len(records))
	for _, rec := range records {
		if rec.Name == "" || rec.MeasurementUnit == "" {
			log.Fatalf("record with empty name or measurement_unit in %s", *path)
		}
		items = append(items, models.Ingredient{
			Name:            rec.Name,
			MeasurementUnit: rec.MeasurementUnit,
		})
	}

	config.InitDB()

	imported, err := services.ImportIngredients(items)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %d of %d records", imported, len(items))
}
