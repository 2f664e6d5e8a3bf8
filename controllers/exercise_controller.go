package controllers

import (
	"net/http"

	"github.com/marcdejesus/fitness/services"
	"github.com/marcdejesus/fitness/utils"

	"github.com/gin-gonic/gin"
)

func ListExercises(c *gin.Context) {
	userID := c.GetString("userID")

	var cardioOnly *bool
	if raw := c.Query("is_cardio"); raw != "" {
		v := raw == "true" || raw == "1"
		cardioOnly = &v
	}

	exercises, err := services.NewWorkoutService().
		ListExercises(userID, c.Query("muscle_group"), c.Query("q"), cardioOnly)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exercises": exercises})
}

func GetExercise(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	exercise, err := services.NewWorkoutService().GetExercise(userID, id)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func CreateExercise(c *gin.Context) {
	userID := c.GetString("userID")

	var body services.ExerciseInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	exercise, err := services.NewWorkoutService().CreateExercise(userID, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}
