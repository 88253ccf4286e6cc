package database

import (
	"log"
	"os"

	"company-portal/internal/domain/billing"
	"company-portal/internal/domain/companies"
	"company-portal/internal/domain/plans"
	"company-portal/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		&companies.Company{},
		&users.User{},
		&plans.Plan{},
		&billing.Transaction{},
		&billing.UserSubscription{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	log.Println("Connected and migrated successfully")
}
