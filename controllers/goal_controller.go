package controllers

import (
	"net/http"

	"github.com/marcdejesus/fitness/services"
	"github.com/marcdejesus/fitness/utils"

	"github.com/gin-gonic/gin"
)

func GetNutritionGoal(c *gin.Context) {
	userID := c.GetString("userID")

	goal, err := services.NewNutritionService().CurrentGoal(userID)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func UpdateNutritionGoal(c *gin.Context) {
	userID := c.GetString("userID")

	var body services.GoalInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	goal, err := services.NewNutritionService().UpdateGoal(userID, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}
