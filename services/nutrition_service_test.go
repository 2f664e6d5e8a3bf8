package services

import (
	"testing"
	"time"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/models"
	"github.com/marcdejesus/fitness/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func today() time.Time {
	return dayStart(time.Now().In(config.Location()))
}

func TestCurrentGoalLazyDefaults(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	goal, err := svc.CurrentGoal("u1")
	require.NoError(t, err)
	assert.Equal(t, float64(2000), goal.CalorieTarget)
	assert.Equal(t, float64(150), goal.ProteinTarget)
	assert.Equal(t, float64(200), goal.CarbsTarget)
	assert.Equal(t, float64(65), goal.FatTarget)
	assert.Equal(t, float64(25), goal.FiberTarget)
	assert.Equal(t, float64(50), goal.SugarTarget)
	assert.Equal(t, float64(2300), goal.SodiumTarget)
	assert.Equal(t, "maintain", goal.GoalType)

	// Second read must not create a second row.
	again, err := svc.CurrentGoal("u1")
	require.NoError(t, err)
	assert.Equal(t, goal.ID, again.ID)
}

func TestDailySummaryEmptyDay(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	summary, err := svc.DailySummary("u1", "")
	require.NoError(t, err)
	assert.Zero(t, summary.TotalCalories)
	assert.Zero(t, summary.CalorieProgress)
	assert.Empty(t, summary.Meals)
	assert.Equal(t, float64(2000), summary.CalorieGoal)
}

func TestDailySummaryTotalsAndProgress(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	food := seedFood(t, "Oats", 500, 20, 60, 10)
	breakfast := seedMealType(t, "Breakfast", 1)
	lunch := seedMealType(t, "Lunch", 2)
	seedEntry(t, "u1", food, breakfast, today(), 1)
	seedEntry(t, "u1", food, lunch, today(), 1)
	// Another user's entry must not leak in.
	seedEntry(t, "u2", food, lunch, today(), 5)

	summary, err := svc.DailySummary("u1", today().Format("2006-01-02"))
	require.NoError(t, err)
	assert.Equal(t, float64(1000), summary.TotalCalories)
	assert.Equal(t, float64(40), summary.TotalProtein)

	// 1000 of 2000 kcal
	assert.Equal(t, 50, summary.CalorieProgress)
	// 40 of 150 g protein, rounded from 26.67
	assert.Equal(t, 27, summary.ProteinProgress)

	require.Len(t, summary.Meals["Breakfast"], 1)
	require.Len(t, summary.Meals["Lunch"], 1)
}

func TestDailySummaryZeroTargetProgress(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	_, err := svc.CurrentGoal("u1")
	require.NoError(t, err)
	_, err = svc.UpdateGoal("u1", GoalInput{CalorieTarget: 0})
	require.NoError(t, err)

	food := seedFood(t, "Rice", 300, 5, 65, 1)
	mt := seedMealType(t, "Dinner", 3)
	seedEntry(t, "u1", food, mt, today(), 1)

	summary, err := svc.DailySummary("u1", "")
	require.NoError(t, err)
	assert.Equal(t, float64(300), summary.TotalCalories)
	assert.Equal(t, 0, summary.CalorieProgress)
}

func TestDailySummaryBadDate(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	_, err := svc.DailySummary("u1", "03/15/2026")
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "date")
}

func TestWeeklySummaryZeroFilledAscending(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	food := seedFood(t, "Eggs", 150, 12, 1, 10)
	mt := seedMealType(t, "Breakfast", 1)
	seedEntry(t, "u1", food, mt, today(), 2)
	seedEntry(t, "u1", food, mt, today().AddDate(0, 0, -3), 1)
	// Outside the window.
	seedEntry(t, "u1", food, mt, today().AddDate(0, 0, -10), 4)

	days, err := svc.WeeklySummary("u1")
	require.NoError(t, err)
	require.Len(t, days, 7)

	for i := 1; i < 7; i++ {
		assert.True(t, days[i-1].Date < days[i].Date, "days must ascend")
	}
	assert.Equal(t, today().Format("2006-01-02"), days[6].Date)
	assert.Equal(t, float64(300), days[6].Calories)
	assert.Equal(t, float64(150), days[3].Calories)
	assert.Zero(t, days[0].Calories)
}

func TestWeeklySummaryBucketsInConfiguredZone(t *testing.T) {
	setupTestDB(t)
	t.Setenv("APP_TIMEZONE", "Asia/Tokyo")
	svc := NewNutritionService()

	loc := config.Location()
	start := dayStart(time.Now().In(loc)).AddDate(0, 0, -6)
	midweek := start.AddDate(0, 0, 3)

	food := seedFood(t, "Natto", 200, 17, 12, 10)
	mt := seedMealType(t, "Breakfast", 1)
	// Stored times come back from the driver as UTC instants. Tokyo
	// midnight is 15:00 UTC the previous calendar day, so bucketing on
	// the returned zone would shift this entry into the prior day's
	// totals.
	seedEntry(t, "u1", food, mt, midweek.UTC(), 1)

	days, err := svc.WeeklySummary("u1")
	require.NoError(t, err)
	require.Len(t, days, 7)
	assert.Equal(t, midweek.Format("2006-01-02"), days[3].Date)
	assert.Equal(t, float64(200), days[3].Calories)
	assert.Zero(t, days[2].Calories)
}

func TestFrequentFoodsRanksByServings(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	foodA := seedFood(t, "Apple", 95, 0, 25, 0)
	foodB := seedFood(t, "Banana", 105, 1, 27, 0)
	mt := seedMealType(t, "Snack", 4)

	// A: three entries of 0.5 servings. B: one entry of 3 servings.
	// B outranks A on total servings despite fewer entries.
	for i := 0; i < 3; i++ {
		seedEntry(t, "u1", foodA, mt, today().AddDate(0, 0, -i), 0.5)
	}
	seedEntry(t, "u1", foodB, mt, today(), 3)

	foods, err := svc.FrequentFoods("u1", 0)
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Banana", foods[0].Name)
	assert.Equal(t, "Apple", foods[1].Name)
}

func TestFrequentFoodsTieBreakIsStable(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	foodA := seedFood(t, "Apple", 95, 0, 25, 0)
	foodB := seedFood(t, "Banana", 105, 1, 27, 0)
	mt := seedMealType(t, "Snack", 4)
	seedEntry(t, "u1", foodA, mt, today(), 2)
	seedEntry(t, "u1", foodB, mt, today(), 2)

	for i := 0; i < 3; i++ {
		foods, err := svc.FrequentFoods("u1", 10)
		require.NoError(t, err)
		require.Len(t, foods, 2)
		// Equal totals: lower id first, every time.
		assert.Equal(t, foodA.ID, foods[0].ID)
		assert.Equal(t, foodB.ID, foods[1].ID)
	}
}

func TestLogEntrySnapshotFrozen(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	food := seedFood(t, "Yogurt", 100, 10, 5, 2)
	mt := seedMealType(t, "Breakfast", 1)

	entry, err := svc.LogEntry("u1", MealEntryInput{
		FoodItemID: food.ID,
		MealTypeID: mt.ID,
		Servings:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(200), entry.Calories)
	assert.Equal(t, float64(20), entry.Protein)

	// Editing the food afterwards must not change the logged snapshot.
	require.NoError(t, config.DB.Model(&models.FoodItem{}).
		Where("id = ?", food.ID).Update("calories", 999).Error)

	reread, err := svc.GetEntry("u1", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(200), reread.Calories)
}

func TestLogEntryDefaultsServingsToOne(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	food := seedFood(t, "Toast", 80, 3, 15, 1)
	mt := seedMealType(t, "Breakfast", 1)

	entry, err := svc.LogEntry("u1", MealEntryInput{
		FoodItemID: food.ID,
		MealTypeID: mt.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1), entry.Servings)
	assert.Equal(t, float64(80), entry.Calories)
}

func TestEntryOwnershipHidesOtherUsers(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	food := seedFood(t, "Pasta", 400, 14, 75, 2)
	mt := seedMealType(t, "Dinner", 3)
	entry := seedEntry(t, "u1", food, mt, today(), 1)

	_, err := svc.GetEntry("u2", entry.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteEntry("u2", entry.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Still there for the owner.
	_, err = svc.GetEntry("u1", entry.ID)
	assert.NoError(t, err)
}

func TestUpdateEntryKeepsSnapshot(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	food := seedFood(t, "Chicken", 250, 40, 0, 8)
	breakfast := seedMealType(t, "Breakfast", 1)
	dinner := seedMealType(t, "Dinner", 3)

	entry, err := svc.LogEntry("u1", MealEntryInput{
		FoodItemID: food.ID,
		MealTypeID: breakfast.ID,
		Servings:   1,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateEntry("u1", entry.ID, MealEntryUpdate{
		MealTypeID: &dinner.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, dinner.ID, updated.MealTypeID)
	assert.Equal(t, float64(250), updated.Calories)
}

func TestSeedMealTypesIdempotent(t *testing.T) {
	setupTestDB(t)
	svc := NewNutritionService()

	seeded, err := svc.SeedMealTypes()
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = svc.SeedMealTypes()
	require.NoError(t, err)
	assert.False(t, seeded)

	types, err := svc.ListMealTypes()
	require.NoError(t, err)
	require.Len(t, types, 4)
	assert.Equal(t, "Breakfast", types[0].Name)
	assert.Equal(t, "Snack", types[3].Name)
}
