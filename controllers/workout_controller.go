package controllers

import (
	"net/http"
	"strconv"

	"github.com/marcdejesus/fitness/services"
	"github.com/marcdejesus/fitness/utils"

	"github.com/gin-gonic/gin"
)

func ListWorkouts(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	workouts, err := services.NewWorkoutService().ListWorkouts(userID, limit, offset)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}

func CreateWorkout(c *gin.Context) {
	userID := c.GetString("userID")

	var body services.WorkoutInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	workout, err := services.NewWorkoutService().CreateWorkout(userID, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, workout)
}

func GetWorkout(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	workout, err := services.NewWorkoutService().GetWorkout(userID, id)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func UpdateWorkout(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body services.WorkoutInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	workout, err := services.NewWorkoutService().UpdateWorkout(userID, id, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

func DeleteWorkout(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.NewWorkoutService().DeleteWorkout(userID, id); err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func AddWorkoutSet(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body services.SetInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	set, err := services.NewWorkoutService().AddSet(userID, id, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

func DeleteWorkoutSet(c *gin.Context) {
	userID := c.GetString("userID")
	workoutID, ok := pathID(c, "id")
	if !ok {
		return
	}
	setID, ok := pathID(c, "setID")
	if !ok {
		return
	}

	if err := services.NewWorkoutService().DeleteSet(userID, workoutID, setID); err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func GetWorkoutStats(c *gin.Context) {
	userID := c.GetString("userID")
	days, _ := strconv.Atoi(c.Query("days"))

	stats, err := services.NewWorkoutService().Stats(userID, days)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func GetWorkoutHistory(c *gin.Context) {
	userID := c.GetString("userID")
	days, _ := strconv.Atoi(c.Query("days"))

	workouts, err := services.NewWorkoutService().History(userID, days)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workouts": workouts})
}
