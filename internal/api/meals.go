package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glycofit/backend/internal/middleware"
	"github.com/glycofit/backend/internal/service"
	"github.com/glycofit/backend/internal/types"
)

type MealHandler struct {
	ledger  service.ILedgerService
	limiter *middleware.RateLimiter
}

// NewMealHandler creates the meal handler; limiter may be nil.
func NewMealHandler(ledger service.ILedgerService, limiter *middleware.RateLimiter) *MealHandler {
	return &MealHandler{ledger: ledger, limiter: limiter}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		if h.limiter != nil {
			meals.POST("", h.limiter.RateLimitMiddleware(), h.LogMeal)
		} else {
			meals.POST("", h.LogMeal)
		}
		meals.GET("/today", h.TodayMeals)
	}
}

func (h *MealHandler) LogMeal(c *gin.Context) {
	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.ledger.LogMeal(c.Request.Context(), middleware.UserID(c), req.FoodName, req.Quantity, req.MealType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *MealHandler) TodayMeals(c *gin.Context) {
	logs, err := h.ledger.TodayLogs(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meals": logs, "count": len(logs)})
}
