package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/glycofit/backend/internal/food"
	"github.com/glycofit/backend/internal/models"
)

const defaultNutritionGrams = 100

// FoodCatalog is the read side of the reference food table.
type FoodCatalog interface {
	Search(query string, limit int) []models.FoodItem
	Suggestions(partial string) []string
	DiabeticFriendly(limit int) []models.FoodItem
	Compute(name string, grams float64) (food.Nutrition, bool)
}

type FoodHandler struct {
	catalog FoodCatalog
}

func NewFoodHandler(catalog FoodCatalog) *FoodHandler {
	return &FoodHandler{catalog: catalog}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.GET("/search", h.Search)
		foods.GET("/suggestions", h.Suggestions)
		foods.GET("/diabetic-friendly", h.DiabeticFriendly)
		foods.GET("/nutrition", h.Nutrition)
	}
}

func (h *FoodHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	foods := h.catalog.Search(c.Query("q"), limit)
	c.JSON(http.StatusOK, gin.H{"foods": foods, "count": len(foods)})
}

func (h *FoodHandler) Suggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": h.catalog.Suggestions(c.Query("q"))})
}

func (h *FoodHandler) DiabeticFriendly(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	foods := h.catalog.DiabeticFriendly(limit)
	c.JSON(http.StatusOK, gin.H{"foods": foods, "count": len(foods)})
}

// Nutrition previews the nutrients of a quantity without logging it.
func (h *FoodHandler) Nutrition(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	grams := float64(defaultNutritionGrams)
	if raw := c.Query("grams"); raw != "" {
		g, err := strconv.ParseFloat(raw, 64)
		if err != nil || g <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "grams must be a positive number"})
			return
		}
		grams = g
	}

	n, ok := h.catalog.Compute(name, grams)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
		return
	}
	c.JSON(http.StatusOK, n)
}
