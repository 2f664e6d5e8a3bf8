package services

import (
	"testing"
	"time"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB points the global handle at a fresh in-memory database.
// A single connection keeps every query on the same :memory: instance.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	prev := config.DB
	config.DB = db
	t.Cleanup(func() {
		config.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

func seedFood(t *testing.T, name string, calories, protein, carbs, fat float64) models.FoodItem {
	t.Helper()
	food := models.FoodItem{
		Name:       name,
		Calories:   calories,
		Protein:    protein,
		Carbs:      carbs,
		Fat:        fat,
		IsVerified: true,
	}
	require.NoError(t, config.DB.Create(&food).Error)
	return food
}

func seedMealType(t *testing.T, name string, order int) models.MealType {
	t.Helper()
	mt := models.MealType{Name: name, SortOrder: order}
	require.NoError(t, config.DB.Create(&mt).Error)
	return mt
}

func seedEntry(t *testing.T, userID string, food models.FoodItem, mt models.MealType, date time.Time, servings float64) models.MealEntry {
	t.Helper()
	entry := models.MealEntry{
		UserID:     userID,
		FoodItemID: food.ID,
		MealTypeID: mt.ID,
		Date:       date,
		Time:       date,
		Servings:   servings,
		Calories:   food.Calories * servings,
		Protein:    food.Protein * servings,
		Carbs:      food.Carbs * servings,
		Fat:        food.Fat * servings,
		Fiber:      food.Fiber * servings,
		Sugar:      food.Sugar * servings,
		Sodium:     food.Sodium * servings,
	}
	require.NoError(t, config.DB.Create(&entry).Error)
	return entry
}
