package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/conectapro/backend/internal/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	log.Println("connecting to database...")
	if err := database.Initialize(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	log.Println("running migrations...")
	if err := database.Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	log.Println("migrations completed")
}
