package main

import (
	"log"

	"github.com/ZhatkinVyacheslav/foodgram-st/config"
	"github.com/ZhatkinVyacheslav/foodgram-st/routes"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	config.InitDB()

	r := routes.SetupRouter(settings)
	if err := r.Run(":" + settings.HTTPPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
