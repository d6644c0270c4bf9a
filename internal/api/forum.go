package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glycofit/backend/internal/middleware"
	"github.com/glycofit/backend/internal/models"
	"github.com/glycofit/backend/internal/service"
	"github.com/glycofit/backend/internal/types"
)

type ForumHandler struct {
	forum   service.IForumService
	limiter *middleware.RateLimiter
}

// NewForumHandler creates the forum handler; limiter may be nil.
func NewForumHandler(forum service.IForumService, limiter *middleware.RateLimiter) *ForumHandler {
	return &ForumHandler{forum: forum, limiter: limiter}
}

func (h *ForumHandler) RegisterRoutes(router *gin.RouterGroup) {
	forum := router.Group("/forum")
	{
		forum.GET("/categories", h.Categories)
		forum.GET("/threads", h.ListThreads)
		if h.limiter != nil {
			forum.POST("/threads", h.limiter.RateLimitMiddleware(), h.CreateThread)
		} else {
			forum.POST("/threads", h.CreateThread)
		}
		forum.GET("/threads/:id", h.GetThread)
		forum.POST("/threads/:id/replies", h.Reply)
		forum.POST("/likes", h.ToggleLike)
	}
}

func (h *ForumHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": service.Categories()})
}

func (h *ForumHandler) ListThreads(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	var (
		threads []models.ForumThread
		err     error
	)
	if q := c.Query("q"); q != "" {
		threads, err = h.forum.SearchThreads(c.Request.Context(), q, limit)
	} else {
		threads, err = h.forum.ListThreads(c.Request.Context(), c.DefaultQuery("category", service.CategoryAll), limit)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

func (h *ForumHandler) CreateThread(c *gin.Context) {
	var req types.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	thread, err := h.forum.CreateThread(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

func threadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid thread id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *ForumHandler) GetThread(c *gin.Context) {
	id, ok := threadID(c)
	if !ok {
		return
	}
	detail, err := h.forum.GetThread(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ForumHandler) Reply(c *gin.Context) {
	id, ok := threadID(c)
	if !ok {
		return
	}
	var req types.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	reply, err := h.forum.Reply(c.Request.Context(), middleware.UserID(c), id, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (h *ForumHandler) ToggleLike(c *gin.Context) {
	var req types.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.forum.ToggleLike(c.Request.Context(), middleware.UserID(c), uuid.MustParse(req.ItemID), req.ItemType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
