package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/vlatan/video-scribe/internal/app"
	"github.com/vlatan/video-scribe/internal/config"
)

func main() {

	// Load the .env file if present, the environment wins otherwise
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded; using the process environment")
	}

	// Build the app and serve
	if err := app.New(config.New()).RegisterRoutes().Run(); err != nil {
		log.Fatalf("http server error: %v", err)
	}
}
