package services

import (
	"math"
	"time"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"
	"github.com/marcdejesus/fitness/utils"

	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

// Defaults applied when a user's goal row is lazily created.
const (
	defaultCalorieTarget = 2000
	defaultProteinTarget = 150
	defaultCarbsTarget   = 200
	defaultFatTarget     = 65
	defaultFiberTarget   = 25
	defaultSugarTarget   = 50
	defaultSodiumTarget  = 2300
)

type NutritionService struct{}

func NewNutritionService() *NutritionService { return &NutritionService{} }

// --- goals ---

// CurrentGoal fetches the user's goal, creating it with defaults on first
// access. The insert is an upsert on the unique user_id column, so
// concurrent first accesses still yield one row.
func (s *NutritionService) CurrentGoal(userID string) (*models.NutritionGoal, error) {
	goal := models.NutritionGoal{
		UserID:        userID,
		CalorieTarget: defaultCalorieTarget,
		ProteinTarget: defaultProteinTarget,
		CarbsTarget:   defaultCarbsTarget,
		FatTarget:     defaultFatTarget,
		FiberTarget:   defaultFiberTarget,
		SugarTarget:   defaultSugarTarget,
		SodiumTarget:  defaultSodiumTarget,
		GoalType:      "maintain",
	}
	err := config.DB.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&goal).Error
	if err != nil {
		return nil, err
	}

	var out models.NutritionGoal
	if err := config.DB.Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// GoalInput replaces all seven targets wholesale: a field left out of the
// request body zeroes that target (and its progress, via the pct guard).
// Clients send the full goal, as the goal endpoint returns it.
type GoalInput struct {
	CalorieTarget float64 `json:"calorie_target" binding:"gte=0"`
	ProteinTarget float64 `json:"protein_target" binding:"gte=0"`
	CarbsTarget   float64 `json:"carbs_target" binding:"gte=0"`
	FatTarget     float64 `json:"fat_target" binding:"gte=0"`
	FiberTarget   float64 `json:"fiber_target" binding:"gte=0"`
	SugarTarget   float64 `json:"sugar_target" binding:"gte=0"`
	SodiumTarget  float64 `json:"sodium_target" binding:"gte=0"`
	GoalType      string  `json:"goal_type" binding:"omitempty,oneof=lose maintain gain"`
}

func (s *NutritionService) UpdateGoal(userID string, in GoalInput) (*models.NutritionGoal, error) {
	goal, err := s.CurrentGoal(userID)
	if err != nil {
		return nil, err
	}
	goal.CalorieTarget = in.CalorieTarget
	goal.ProteinTarget = in.ProteinTarget
	goal.CarbsTarget = in.CarbsTarget
	goal.FatTarget = in.FatTarget
	goal.FiberTarget = in.FiberTarget
	goal.SugarTarget = in.SugarTarget
	goal.SodiumTarget = in.SodiumTarget
	if in.GoalType != "" {
		goal.GoalType = in.GoalType
	}
	if err := config.DB.Save(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// --- meal types ---

func (s *NutritionService) ListMealTypes() ([]models.MealType, error) {
	var out []models.MealType
	err := config.DB.Order("sort_order ASC, name ASC").Find(&out).Error
	return out, err
}

// SeedMealTypes creates the default meal types once. Returns true when it
// actually seeded.
func (s *NutritionService) SeedMealTypes() (bool, error) {
	var count int64
	if err := config.DB.Model(&models.MealType{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	defaults := []models.MealType{
		{Name: "Breakfast", SortOrder: 1},
		{Name: "Lunch", SortOrder: 2},
		{Name: "Dinner", SortOrder: 3},
		{Name: "Snack", SortOrder: 4},
	}
	if err := config.DB.Create(&defaults).Error; err != nil {
		return false, err
	}
	return true, nil
}

// --- meal entries ---

type MealEntryInput struct {
	FoodItemID uint    `json:"food_item_id" binding:"required"`
	MealTypeID uint    `json:"meal_type_id" binding:"required"`
	Date       string  `json:"date"` // YYYY-MM-DD, defaults to today
	Servings   float64 `json:"servings"`
	Notes      string  `json:"notes"`

	// Optional explicit nutrient values (e.g. from a label scan). Any
	// field left at zero is derived from the food instead.
	Calories float64 `json:"calories" binding:"gte=0"`
	Protein  float64 `json:"protein" binding:"gte=0"`
	Carbs    float64 `json:"carbs" binding:"gte=0"`
	Fat      float64 `json:"fat" binding:"gte=0"`
	Fiber    float64 `json:"fiber" binding:"gte=0"`
	Sugar    float64 `json:"sugar" binding:"gte=0"`
	Sodium   float64 `json:"sodium" binding:"gte=0"`
}

// LogEntry records a consumption event. The nutrient snapshot is computed
// here, once, from the food's per-serving values times the multiplier;
// reads never re-derive it.
func (s *NutritionService) LogEntry(userID string, in MealEntryInput) (*models.MealEntry, error) {
	date, err := s.parseDateOrToday(in.Date)
	if err != nil {
		return nil, err
	}

	var food models.FoodItem
	if err := visibleFoods(userID).First(&food, in.FoodItemID).Error; err != nil {
		return nil, err
	}
	var mealType models.MealType
	if err := config.DB.First(&mealType, in.MealTypeID).Error; err != nil {
		return nil, err
	}

	servings := in.Servings
	if servings <= 0 {
		servings = 1
	}

	entry := models.MealEntry{
		UserID:     userID,
		FoodItemID: food.ID,
		MealTypeID: mealType.ID,
		Date:       date,
		Time:       time.Now().In(config.Location()),
		Servings:   servings,
		Calories:   snapshotValue(in.Calories, food.Calories, servings),
		Protein:    snapshotValue(in.Protein, food.Protein, servings),
		Carbs:      snapshotValue(in.Carbs, food.Carbs, servings),
		Fat:        snapshotValue(in.Fat, food.Fat, servings),
		Fiber:      snapshotValue(in.Fiber, food.Fiber, servings),
		Sugar:      snapshotValue(in.Sugar, food.Sugar, servings),
		Sodium:     snapshotValue(in.Sodium, food.Sodium, servings),
		Notes:      in.Notes,
	}
	if err := config.DB.Create(&entry).Error; err != nil {
		return nil, err
	}

	return s.GetEntry(userID, entry.ID)
}

type MealEntryUpdate struct {
	MealTypeID *uint   `json:"meal_type_id"`
	Date       *string `json:"date"`
	Notes      *string `json:"notes"`
}

// UpdateEntry edits the mutable fields of an entry. The nutrient snapshot
// stays frozen: it represents the nutrition as logged.
func (s *NutritionService) UpdateEntry(userID string, entryID uint, in MealEntryUpdate) (*models.MealEntry, error) {
	var entry models.MealEntry
	if err := config.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return nil, err
	}

	if in.MealTypeID != nil {
		var mealType models.MealType
		if err := config.DB.First(&mealType, *in.MealTypeID).Error; err != nil {
			return nil, err
		}
		entry.MealTypeID = mealType.ID
	}
	if in.Date != nil {
		date, err := s.parseDateOrToday(*in.Date)
		if err != nil {
			return nil, err
		}
		entry.Date = date
	}
	if in.Notes != nil {
		entry.Notes = *in.Notes
	}

	if err := config.DB.Save(&entry).Error; err != nil {
		return nil, err
	}
	return s.GetEntry(userID, entry.ID)
}

func (s *NutritionService) GetEntry(userID string, entryID uint) (*models.MealEntry, error) {
	var entry models.MealEntry
	err := config.DB.
		Preload("FoodItem").
		Preload("MealType").
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *NutritionService) DeleteEntry(userID string, entryID uint) error {
	var entry models.MealEntry
	if err := config.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return err
	}
	return config.DB.Delete(&entry).Error
}

// DailyEntries lists the user's entries for one date, in entry order.
func (s *NutritionService) DailyEntries(userID, dateStr string) ([]models.MealEntry, error) {
	date, err := s.parseDateOrToday(dateStr)
	if err != nil {
		return nil, err
	}
	var entries []models.MealEntry
	err = config.DB.
		Preload("FoodItem").
		Preload("MealType").
		Where("user_id = ? AND date = ?", userID, date).
		Order("id ASC").
		Find(&entries).Error
	return entries, err
}

// --- aggregation ---

// DailySummary is consumption totals for one date expressed against the
// user's goal, with entries grouped by meal-type name.
type DailySummary struct {
	Date string `json:"date"`

	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
	TotalFiber    float64 `json:"total_fiber"`
	TotalSugar    float64 `json:"total_sugar"`
	TotalSodium   float64 `json:"total_sodium"`

	CalorieGoal float64 `json:"calorie_goal"`
	ProteinGoal float64 `json:"protein_goal"`
	CarbsGoal   float64 `json:"carbs_goal"`
	FatGoal     float64 `json:"fat_goal"`

	CalorieProgress int `json:"calorie_progress"`
	ProteinProgress int `json:"protein_progress"`
	CarbsProgress   int `json:"carbs_progress"`
	FatProgress     int `json:"fat_progress"`

	Meals map[string][]models.MealEntry `json:"meals"`
}

func (s *NutritionService) DailySummary(userID, dateStr string) (*DailySummary, error) {
	date, err := s.parseDateOrToday(dateStr)
	if err != nil {
		return nil, err
	}

	goal, err := s.CurrentGoal(userID)
	if err != nil {
		return nil, err
	}

	var entries []models.MealEntry
	err = config.DB.
		Preload("FoodItem").
		Preload("MealType").
		Where("user_id = ? AND date = ?", userID, date).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	out := &DailySummary{
		Date:        date.Format(dateLayout),
		CalorieGoal: goal.CalorieTarget,
		ProteinGoal: goal.ProteinTarget,
		CarbsGoal:   goal.CarbsTarget,
		FatGoal:     goal.FatTarget,
		Meals:       map[string][]models.MealEntry{},
	}
	for _, e := range entries {
		out.TotalCalories += e.Calories
		out.TotalProtein += e.Protein
		out.TotalCarbs += e.Carbs
		out.TotalFat += e.Fat
		out.TotalFiber += e.Fiber
		out.TotalSugar += e.Sugar
		out.TotalSodium += e.Sodium

		name := e.MealType.Name
		out.Meals[name] = append(out.Meals[name], e)
	}

	out.CalorieProgress = progressPct(out.TotalCalories, goal.CalorieTarget)
	out.ProteinProgress = progressPct(out.TotalProtein, goal.ProteinTarget)
	out.CarbsProgress = progressPct(out.TotalCarbs, goal.CarbsTarget)
	out.FatProgress = progressPct(out.TotalFat, goal.FatTarget)

	return out, nil
}

// DayTotals is one day of the weekly summary: macros only, no goal.
type DayTotals struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// WeeklySummary covers the trailing 7 calendar days ending today,
// inclusive. Always exactly 7 entries in ascending date order; days
// without logged entries are zero-filled rather than omitted.
func (s *NutritionService) WeeklySummary(userID string) ([]DayTotals, error) {
	loc := config.Location()
	end := dayStart(time.Now().In(loc))
	start := end.AddDate(0, 0, -6)

	var entries []models.MealEntry
	err := config.DB.
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	byDate := map[string]*DayTotals{}
	for _, e := range entries {
		// Drivers return stored times in their own zone (UTC for sqlite);
		// bucket on the configured zone so keys match the window's dates.
		key := e.Date.In(loc).Format(dateLayout)
		t := byDate[key]
		if t == nil {
			t = &DayTotals{Date: key}
			byDate[key] = t
		}
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fat += e.Fat
	}

	out := make([]DayTotals, 0, 7)
	for i := 0; i < 7; i++ {
		key := start.AddDate(0, 0, i).Format(dateLayout)
		if t := byDate[key]; t != nil {
			out = append(out, *t)
		} else {
			out = append(out, DayTotals{Date: key})
		}
	}
	return out, nil
}

// FrequentFoods ranks the foods the user logged in the trailing 30 days
// by total servings consumed, not occurrence count: one entry at 3.0
// servings outranks three entries at 0.5. Ties break on food id so the
// order is stable across calls.
func (s *NutritionService) FrequentFoods(userID string, limit int) ([]models.FoodItem, error) {
	if limit <= 0 {
		limit = 10
	}
	since := dayStart(time.Now().In(config.Location())).AddDate(0, 0, -30)

	type rankedFood struct {
		FoodItemID uint
		Total      float64
	}
	var rows []rankedFood
	err := config.DB.
		Model(&models.MealEntry{}).
		Select("food_item_id, SUM(servings) AS total").
		Where("user_id = ? AND date >= ?", userID, since).
		Group("food_item_id").
		Order("total DESC, food_item_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []models.FoodItem{}, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.FoodItemID)
	}
	var foods []models.FoodItem
	if err := config.DB.Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.FoodItem, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}
	out := make([]models.FoodItem, 0, len(rows))
	for _, r := range rows {
		if f, ok := byID[r.FoodItemID]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

// --- helpers ---

// snapshotValue picks an explicit nutrient value when the caller gave
// one, otherwise derives it from the food's per-serving value.
func snapshotValue(explicit, perServing, servings float64) float64 {
	if explicit > 0 {
		return explicit
	}
	return perServing * servings
}

// progressPct is the integer-rounded percentage of target consumed; zero
// when the target is not positive, so there is no division by zero.
func progressPct(total, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(total / target * 100))
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *NutritionService) parseDateOrToday(dateStr string) (time.Time, error) {
	loc := config.Location()
	if dateStr == "" {
		return dayStart(time.Now().In(loc)), nil
	}
	date, err := time.ParseInLocation(dateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, utils.NewValidationError("date", "invalid date format, expected YYYY-MM-DD")
	}
	return date, nil
}
