package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/scms/backend/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db.Connect()

	log.Println("Running database migrations...")
	db.AutoMigrate()

	log.Println("Database migrations completed successfully")
}
