package routes

import (
	"net/http"
	"os"

	"github.com/marcdejesus/fitness/controllers"
	"github.com/marcdejesus/fitness/middlewares"
	"github.com/marcdejesus/fitness/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.Metrics())

	identity := services.NewIdentityService(os.Getenv("PROVIDER_JWT_SECRET"))
	controllers.Hub = services.NewRealtimeHub()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/password-reset", controllers.RequestPasswordReset)
		auth.POST("/password-reset/confirm", controllers.ConfirmPasswordReset)
		auth.GET("/test", middlewares.RequireAuth(identity), controllers.AuthTest)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.RequireAuth(identity))
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.GET("/settings", controllers.GetSettings)
		user.PUT("/settings", controllers.UpdateSettings)
	}

	// Workout tracking
	workouts := r.Group("/workouts")
	workouts.Use(middlewares.RequireAuth(identity))
	{
		workouts.GET("", controllers.ListWorkouts)
		workouts.POST("", controllers.CreateWorkout)
		workouts.GET("/stats", controllers.GetWorkoutStats)
		workouts.GET("/history", controllers.GetWorkoutHistory)
		workouts.GET("/exercises", controllers.ListExercises)
		workouts.POST("/exercises", controllers.CreateExercise)
		workouts.GET("/exercises/:id", controllers.GetExercise)
		workouts.GET("/:id", controllers.GetWorkout)
		workouts.PUT("/:id", controllers.UpdateWorkout)
		workouts.DELETE("/:id", controllers.DeleteWorkout)
		workouts.POST("/:id/sets", controllers.AddWorkoutSet)
		workouts.DELETE("/:id/sets/:setID", controllers.DeleteWorkoutSet)
	}

	// Nutrition tracking
	nutrition := r.Group("/nutrition")
	nutrition.Use(middlewares.RequireAuth(identity))
	{
		nutrition.GET("/goal", controllers.GetNutritionGoal)
		nutrition.PUT("/goal", controllers.UpdateNutritionGoal)

		nutrition.GET("/meal-types", controllers.ListMealTypes)
		nutrition.POST("/meal-types/seed", controllers.SeedMealTypes)

		nutrition.GET("/foods/search", controllers.SearchFoods)
		nutrition.GET("/foods/categories", controllers.ListFoodCategories)
		nutrition.GET("/foods/custom", controllers.ListCustomFoods)
		nutrition.POST("/foods/custom", controllers.CreateCustomFood)
		nutrition.PUT("/foods/custom/:id", controllers.UpdateCustomFood)
		nutrition.DELETE("/foods/custom/:id", controllers.DeleteCustomFood)
		nutrition.GET("/foods/favorites", controllers.ListFavoriteFoods)
		nutrition.POST("/foods/:id/favorite", controllers.FavoriteFood)
		nutrition.DELETE("/foods/:id/favorite", controllers.UnfavoriteFood)
		nutrition.GET("/foods/barcode", controllers.LookupBarcode)
		nutrition.GET("/foods/:id", controllers.GetFood)

		nutrition.POST("/meals", controllers.LogMealEntry)
		nutrition.GET("/meals/daily", controllers.ListDailyEntries)
		nutrition.GET("/meals/summary", controllers.GetDailySummary)
		nutrition.GET("/meals/weekly", controllers.GetWeeklySummary)
		nutrition.GET("/meals/frequently-used", controllers.GetFrequentFoods)
		nutrition.GET("/meals/:id", controllers.GetMealEntry)
		nutrition.PUT("/meals/:id", controllers.UpdateMealEntry)
		nutrition.DELETE("/meals/:id", controllers.DeleteMealEntry)
	}

	// Realtime
	realtime := r.Group("/realtime")
	realtime.Use(middlewares.RequireAuth(identity))
	{
		realtime.GET("/ws", controllers.RealtimeWS)
	}

	return r
}
