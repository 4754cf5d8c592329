package main

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/scms/backend/internal/db"
	"github.com/scms/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the admin account from ADMIN_USERNAME / ADMIN_PASSWORD /
// ADMIN_EMAIL. Provisioning happens here, at deploy time, never lazily
// inside the login path. Safe to run repeatedly.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	db.Connect()

	log.Println("Running database migrations...")
	db.AutoMigrate()

	if err := seedAdmin(); err != nil {
		log.Fatalf("Error seeding admin user: %v", err)
	}

	log.Println("Database seeding completed successfully")
}

func seedAdmin() error {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_PASSWORD must be set; refusing to seed a default credential")
	}
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@scms.local"
	}

	var existing models.User
	err := db.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		log.Printf("Admin user already exists: %s", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created admin user: %s", username)
	return nil
}
