package config

import (
	"fmt"
	"os"
	"time"

	"github.com/marcdejesus/fitness/logger"
	"github.com/marcdejesus/fitness/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// LoadEnv reads .env if present. A missing file is fine in deployed
// environments where config comes from the process environment.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file loaded; using process environment")
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database: " + err.Error())
	}

	if err := Migrate(DB); err != nil {
		logger.Fatal("AutoMigrate failed: " + err.Error())
	}
}

// Migrate applies the schema. Shared with the test databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserProfile{},
		&models.UserSettings{},
		&models.LocalCredential{},
		&models.FoodCategory{},
		&models.FoodItem{},
		&models.UserFoodItem{},
		&models.NutritionGoal{},
		&models.MealType{},
		&models.MealEntry{},
		&models.Exercise{},
		&models.Workout{},
		&models.WorkoutSet{},
	)
}

// Location returns the time zone used for daily windows (APP_TIMEZONE,
// falling back to the server's local zone).
func Location() *time.Location {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("invalid APP_TIMEZONE, falling back to local: " + name)
		return time.Local
	}
	return loc
}
