package database

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"taxifit/models"
)

var DB *gorm.DB

func InitDatabase(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = DB.AutoMigrate(&models.Analysis{})
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}
