package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/glycofit/backend/internal/middleware"
	"github.com/glycofit/backend/internal/service"
	"github.com/glycofit/backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
}

func NewProfileHandler(profileService service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.POST("", h.CreateProfile)
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.POST("/blood-sugar", h.RecordBloodSugar)
		profile.GET("/blood-sugar", h.BloodSugarHistory)
		profile.GET("/progress", h.GetProgress)
	}
}

// CreateProfile creates the caller's profile on first sign-in. Missing fields
// fall back to the token's username and email.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req types.CreateProfileRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.DisplayName == "" {
		req.DisplayName = c.GetString(middleware.ContextUsername)
	}
	if req.Email == "" {
		req.Email = c.GetString(middleware.ContextEmail)
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), middleware.UserID(c), req.DisplayName, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile.View())
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile.View())
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile.View())
}

func (h *ProfileHandler) RecordBloodSugar(c *gin.Context) {
	var req types.BloodSugarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.profileService.RecordBloodSugar(c.Request.Context(), middleware.UserID(c), req.Fbs, req.Ppbs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile": res.Profile.View(),
		"targets": res.Targets,
	})
}

func (h *ProfileHandler) BloodSugarHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	readings, err := h.profileService.BloodSugarHistory(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"readings": readings})
}

func (h *ProfileHandler) GetProgress(c *gin.Context) {
	progress, err := h.profileService.GetDailyProgress(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
