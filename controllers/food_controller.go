package controllers

import (
	"net/http"
	"strconv"

	"github.com/marcdejesus/fitness/services"
	"github.com/marcdejesus/fitness/utils"

	"github.com/gin-gonic/gin"
)

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		utils.AbortBadRequest(c, utils.NewValidationError(name, "must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

func SearchFoods(c *gin.Context) {
	userID := c.GetString("userID")
	limit, _ := strconv.Atoi(c.Query("limit"))

	foods, err := services.NewFoodService().Search(userID, c.Query("q"), limit)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func GetFood(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	food, err := services.NewFoodService().Get(userID, id)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func LookupBarcode(c *gin.Context) {
	userID := c.GetString("userID")
	barcode := c.Query("code")
	if barcode == "" {
		utils.AbortBadRequest(c, utils.NewValidationError("code", "this field is required"))
		return
	}

	food, err := services.NewFoodService().LookupBarcode(userID, barcode)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func ListFoodCategories(c *gin.Context) {
	categories, err := services.NewFoodService().ListCategories()
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func ListCustomFoods(c *gin.Context) {
	userID := c.GetString("userID")

	foods, err := services.NewFoodService().ListCustom(userID)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func CreateCustomFood(c *gin.Context) {
	userID := c.GetString("userID")

	var body services.FoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	food, err := services.NewFoodService().CreateCustom(userID, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusCreated, food)
}

func UpdateCustomFood(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body services.FoodInput
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.AbortBadRequest(c, err)
		return
	}

	food, err := services.NewFoodService().UpdateCustom(userID, id, body)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, food)
}

func DeleteCustomFood(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.NewFoodService().DeleteCustom(userID, id); err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func ListFavoriteFoods(c *gin.Context) {
	userID := c.GetString("userID")

	foods, err := services.NewFoodService().ListFavorites(userID)
	if err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func FavoriteFood(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.NewFoodService().Favorite(userID, id); err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorited"})
}

func UnfavoriteFood(c *gin.Context) {
	userID := c.GetString("userID")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := services.NewFoodService().Unfavorite(userID, id); err != nil {
		utils.AbortForError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
