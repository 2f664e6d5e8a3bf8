package services

import (
	"strings"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FoodService struct{}

func NewFoodService() *FoodService { return &FoodService{} }

// visibleFoods scopes food queries to what a user may see: the verified
// catalog plus their own custom foods.
func visibleFoods(userID string) *gorm.DB {
	return config.DB.Model(&models.FoodItem{}).
		Where("is_verified = ? OR created_by = ?", true, userID)
}

func (s *FoodService) Get(userID string, foodID uint) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := visibleFoods(userID).Preload("Category").First(&food, foodID).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

// Search matches the catalog by name or brand, case-insensitively.
// LOWER + LIKE rather than ILIKE so the same query runs on every
// supported driver.
func (s *FoodService) Search(userID, query string, limit int) ([]models.FoodItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 25
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var foods []models.FoodItem
	err := visibleFoods(userID).
		Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", pattern, pattern).
		Order("is_verified DESC, name ASC").
		Limit(limit).
		Find(&foods).Error
	return foods, err
}

func (s *FoodService) LookupBarcode(userID, barcode string) (*models.FoodItem, error) {
	var food models.FoodItem
	err := visibleFoods(userID).Where("barcode = ?", barcode).First(&food).Error
	if err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) ListCategories() ([]models.FoodCategory, error) {
	var out []models.FoodCategory
	err := config.DB.Order("name ASC").Find(&out).Error
	return out, err
}

type FoodInput struct {
	Name        string  `json:"name" binding:"required"`
	Brand       string  `json:"brand"`
	CategoryID  *uint   `json:"category_id"`
	ServingSize float64 `json:"serving_size" binding:"gte=0"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories" binding:"gte=0"`
	Protein     float64 `json:"protein" binding:"gte=0"`
	Carbs       float64 `json:"carbs" binding:"gte=0"`
	Fat         float64 `json:"fat" binding:"gte=0"`
	Fiber       float64 `json:"fiber" binding:"gte=0"`
	Sugar       float64 `json:"sugar" binding:"gte=0"`
	Sodium      float64 `json:"sodium" binding:"gte=0"`
	Barcode     string  `json:"barcode"`
}

// CreateCustom adds a user-owned food. Custom foods never enter the
// verified catalog; only their creator sees them.
func (s *FoodService) CreateCustom(userID string, in FoodInput) (*models.FoodItem, error) {
	food := models.FoodItem{
		Name:        in.Name,
		Brand:       in.Brand,
		CategoryID:  in.CategoryID,
		ServingSize: in.ServingSize,
		ServingUnit: in.ServingUnit,
		Calories:    in.Calories,
		Protein:     in.Protein,
		Carbs:       in.Carbs,
		Fat:         in.Fat,
		Fiber:       in.Fiber,
		Sugar:       in.Sugar,
		Sodium:      in.Sodium,
		Barcode:     in.Barcode,
		IsVerified:  false,
		IsCustom:    true,
		CreatedBy:   userID,
	}
	if err := config.DB.Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) UpdateCustom(userID string, foodID uint, in FoodInput) (*models.FoodItem, error) {
	var food models.FoodItem
	err := config.DB.
		Where("id = ? AND is_custom = ? AND created_by = ?", foodID, true, userID).
		First(&food).Error
	if err != nil {
		return nil, err
	}

	food.Name = in.Name
	food.Brand = in.Brand
	food.CategoryID = in.CategoryID
	food.ServingSize = in.ServingSize
	food.ServingUnit = in.ServingUnit
	food.Calories = in.Calories
	food.Protein = in.Protein
	food.Carbs = in.Carbs
	food.Fat = in.Fat
	food.Fiber = in.Fiber
	food.Sugar = in.Sugar
	food.Sodium = in.Sodium
	food.Barcode = in.Barcode

	if err := config.DB.Save(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) DeleteCustom(userID string, foodID uint) error {
	var food models.FoodItem
	err := config.DB.
		Where("id = ? AND is_custom = ? AND created_by = ?", foodID, true, userID).
		First(&food).Error
	if err != nil {
		return err
	}
	return config.DB.Delete(&food).Error
}

func (s *FoodService) ListCustom(userID string) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	err := config.DB.
		Where("is_custom = ? AND created_by = ?", true, userID).
		Order("name ASC").
		Find(&foods).Error
	return foods, err
}

// --- favorites ---

func (s *FoodService) Favorite(userID string, foodID uint) error {
	var food models.FoodItem
	if err := visibleFoods(userID).First(&food, foodID).Error; err != nil {
		return err
	}
	fav := models.UserFoodItem{UserID: userID, FoodItemID: food.ID, IsFavorite: true}
	return config.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "food_item_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"is_favorite": true}),
		}).
		Create(&fav).Error
}

func (s *FoodService) Unfavorite(userID string, foodID uint) error {
	var fav models.UserFoodItem
	err := config.DB.
		Where("user_id = ? AND food_item_id = ?", userID, foodID).
		First(&fav).Error
	if err != nil {
		return err
	}
	fav.IsFavorite = false
	return config.DB.Save(&fav).Error
}

func (s *FoodService) ListFavorites(userID string) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	err := config.DB.
		Joins("JOIN user_food_items ON user_food_items.food_item_id = food_items.id").
		Where("user_food_items.user_id = ? AND user_food_items.is_favorite = ? AND user_food_items.deleted_at IS NULL", userID, true).
		Order("food_items.name ASC").
		Find(&foods).Error
	return foods, err
}
