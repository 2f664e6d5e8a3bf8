package controllers

import (
	"net/http"

	"github.com/marcdejesus/fitness/services"
	"github.com/marcdejesus/fitness/utils"

	"github.com/gin-gonic/gin"
)

func ListMealTypes(c *gin.Context) {
	types, err := services.NewNutritionService().ListMealTypes()
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_types": types})
}

// SeedMealTypes installs the default meal types when none exist yet.
func SeedMealTypes(c *gin.Context) {
	seeded, err := services.NewNutritionService().SeedMealTypes()
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	if !seeded {
		c.JSON(http.StatusOK, gin.H{"message": "meal types already present"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "meal types seeded"})
}
