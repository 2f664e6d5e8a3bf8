package controllers

import (
	"net/http"
	"strconv"

	"github.com/marcdejesus/fitness/services"
	"github.com/marcdejesus/fitness/utils"

	"github.com/gin-gonic/gin"
)

// Hub is the process-wide realtime hub, set once at startup.
var Hub *services.RealtimeHub

// pushProgress recomputes today's summary and broadcasts it. Failures are
// swallowed: the write that triggered it already succeeded.
func pushProgress(userID string) {
	if Hub == nil {
		return
	}
	summary, err := services.NewNutritionService().DailySummary(userID, "")
	if err != nil {
		return
	}
	Hub.BroadcastProgress(userID, summary)
}

func LogMealEntry(c *gin.Context) {
	userID := c.GetString("userID")

	var body services.MealEntryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	entry, err := services.NewNutritionService().LogEntry(userID, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	pushProgress(userID)
	c.JSON(http.StatusCreated, entry)
}

func GetMealEntry(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	entry, err := services.NewNutritionService().GetEntry(userID, id)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func UpdateMealEntry(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body services.MealEntryUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	entry, err := services.NewNutritionService().UpdateEntry(userID, id, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	pushProgress(userID)
	c.JSON(http.StatusOK, entry)
}

func DeleteMealEntry(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.NewNutritionService().DeleteEntry(userID, id); err != nil {
		utils.AbortForError(c, err)
		return
	}
	pushProgress(userID)
	c.Status(http.StatusNoContent)
}

// ListDailyEntries lists the caller's entries for ?date=YYYY-MM-DD,
// today when omitted.
func ListDailyEntries(c *gin.Context) {
	userID := c.GetString("userID")

	entries, err := services.NewNutritionService().DailyEntries(userID, c.Query("date"))
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func GetDailySummary(c *gin.Context) {
	userID := c.GetString("userID")

	summary, err := services.NewNutritionService().DailySummary(userID, c.Query("date"))
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func GetWeeklySummary(c *gin.Context) {
	userID := c.GetString("userID")

	days, err := services.NewNutritionService().WeeklySummary(userID)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func GetFrequentFoods(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.Query("limit"))

	foods, err := services.NewNutritionService().FrequentFoods(userID, limit)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}
