package models

import (
	"time"

	"gorm.io/gorm"
)

type FoodCategory struct {
	gorm.Model
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// FoodItem is reference/master data: nutrient values are per serving.
// (Name, Brand) is deliberately not unique; custom rows record a creator.
type FoodItem struct {
	gorm.Model
	Name        string        `gorm:"size:200;index;not null" json:"name"`
	Brand       string        `gorm:"size:200" json:"brand"`
	CategoryID  *uint         `json:"category_id"`
	Category    *FoodCategory `json:"category,omitempty"`
	ServingSize float64       `json:"serving_size"`
	ServingUnit string        `gorm:"size:50" json:"serving_unit"` // g, ml, oz, ...

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"` // g
	Carbs    float64 `json:"carbs"`   // g
	Fat      float64 `json:"fat"`     // g
	Fiber    float64 `json:"fiber"`   // g
	Sugar    float64 `json:"sugar"`   // g
	Sodium   float64 `json:"sodium"`  // mg

	IsVerified bool   `json:"is_verified"`
	IsCustom   bool   `json:"is_custom"`
	CreatedBy  string `gorm:"type:varchar(255)" json:"created_by"` // subject id
	Barcode    string `gorm:"size:100;index" json:"barcode"`
}

// UserFoodItem links a user to a food (favorites, notes).
type UserFoodItem struct {
	gorm.Model
	UserID     string   `gorm:"type:varchar(255);uniqueIndex:idx_user_food;not null" json:"user_id"`
	FoodItemID uint     `gorm:"uniqueIndex:idx_user_food;not null" json:"food_item_id"`
	FoodItem   FoodItem `json:"food_item"`
	IsFavorite bool     `json:"is_favorite"`
	Notes      string   `gorm:"type:text" json:"notes"`
}

// NutritionGoal holds a user's daily nutrient targets. One row per user,
// lazily created with defaults on first access.
type NutritionGoal struct {
	gorm.Model
	UserID        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"user_id"`
	CalorieTarget float64 `json:"calorie_target"`
	ProteinTarget float64 `json:"protein_target"` // g
	CarbsTarget   float64 `json:"carbs_target"`   // g
	FatTarget     float64 `json:"fat_target"`     // g
	FiberTarget   float64 `json:"fiber_target"`   // g
	SugarTarget   float64 `json:"sugar_target"`   // g
	SodiumTarget  float64 `json:"sodium_target"`  // mg
	GoalType      string  `gorm:"size:10;default:maintain" json:"goal_type"` // lose | maintain | gain
}

type MealType struct {
	gorm.Model
	Name      string `gorm:"size:100;not null" json:"name"`
	SortOrder int    `gorm:"index" json:"order"`
}

// MealEntry is one logged consumption event. The nutrient fields are a
// snapshot computed at creation from the referenced food's per-serving
// values times Servings; they are never re-derived afterwards, so the
// entry keeps the nutrition as logged even if the food row changes.
type MealEntry struct {
	gorm.Model
	UserID     string    `gorm:"type:varchar(255);index:idx_entry_user_date;not null" json:"user_id"`
	FoodItemID uint      `gorm:"not null" json:"food_item_id"`
	FoodItem   FoodItem  `json:"food_item"`
	MealTypeID uint      `gorm:"index;not null" json:"meal_type_id"`
	MealType   MealType  `json:"meal_type"`
	Date       time.Time `gorm:"index:idx_entry_user_date;not null" json:"date"` // truncated to midnight
	Time       time.Time `json:"time"`
	Servings   float64   `gorm:"default:1" json:"servings"`

	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
	Sodium   float64 `json:"sodium"`

	Notes string `gorm:"type:text" json:"notes"`
}
