package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/marcdejesus/fitness/config"
	"github.com/marcdejesus/fitness/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupGoalRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	asUser := func(c *gin.Context) { c.Set("userID", "u1") }
	r := gin.New()
	r.GET("/nutrition/goal", asUser, GetNutritionGoal)
	r.PUT("/nutrition/goal", asUser, UpdateNutritionGoal)
	return r
}

func putGoal(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/nutrition/goal", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpdateGoalRejectsNegativeTargets(t *testing.T) {
	r := setupGoalRouter(t)

	w := putGoal(r, `{"calorie_target": -100, "protein_target": 150}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "calorietarget")

	// Nothing persisted: the goal still carries its lazy defaults.
	goal, err := services.NewNutritionService().CurrentGoal("u1")
	require.NoError(t, err)
	assert.Equal(t, float64(2000), goal.CalorieTarget)
}

func TestUpdateGoalIsFullReplace(t *testing.T) {
	r := setupGoalRouter(t)

	w := putGoal(r, `{"calorie_target": 1800, "protein_target": 120, "goal_type": "lose"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	goal, err := services.NewNutritionService().CurrentGoal("u1")
	require.NoError(t, err)
	assert.Equal(t, float64(1800), goal.CalorieTarget)
	assert.Equal(t, float64(120), goal.ProteinTarget)
	assert.Equal(t, "lose", goal.GoalType)
	// Omitted targets are zeroed, not preserved.
	assert.Zero(t, goal.CarbsTarget)
	assert.Zero(t, goal.SodiumTarget)
}
