package controllers

import (
	"net/http"

	"github.com/marcdejesus/fitness/services"
	"github.com/marcdejesus/fitness/utils"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	userID := c.GetString("userID")

	profile, err := services.NewUserService().Profile(userID)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func UpdateProfile(c *gin.Context) {
	userID := c.GetString("userID")

	var body services.ProfileUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	profile, err := services.NewUserService().UpdateProfile(userID, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func GetSettings(c *gin.Context) {
	userID := c.GetString("userID")

	settings, err := services.NewUserService().Settings(userID)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func UpdateSettings(c *gin.Context) {
	userID := c.GetString("userID")

	var body services.SettingsUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	settings, err := services.NewUserService().UpdateSettings(userID, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
