package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glycofit/backend/internal/middleware"
	"github.com/glycofit/backend/internal/service"
)

// Subscriber upgrades a request into a leaderboard update stream.
type Subscriber interface {
	ServeWS(w http.ResponseWriter, r *http.Request) error
}

type LeaderboardHandler struct {
	leaderboard service.ILeaderboardService
	hub         Subscriber
}

// NewLeaderboardHandler creates the handler; hub may be nil when live updates are disabled.
func NewLeaderboardHandler(leaderboard service.ILeaderboardService, hub Subscriber) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard, hub: hub}
}

func (h *LeaderboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/leaderboard", h.GetLeaderboard)
	router.GET("/ws/leaderboard", h.Subscribe)
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.leaderboard.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	userID := middleware.UserID(c)
	var me *service.LeaderboardRow
	for i := range rows {
		if rows[i].UserID == userID {
			me = &rows[i]
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"entries": rows, "me": me})
}

func (h *LeaderboardHandler) Subscribe(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live leaderboard is disabled"})
		return
	}
	if err := h.hub.ServeWS(c.Writer, c.Request); err != nil {
		// the upgrader has already written the response
		_ = c.Error(err)
	}
}
