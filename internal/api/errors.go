package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glycofit/backend/internal/nutrition"
	"github.com/glycofit/backend/internal/service"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrFoodNotFound):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrThreadNotFound),
		errors.Is(err, service.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPartialWrite), errors.Is(err, service.ErrStoreFailure):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for err. Server-side failures are
// recorded on the context for the request logger and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error()}

	var inputErr *nutrition.InputError
	if errors.As(err, &inputErr) {
		body["field"] = inputErr.Field
	}
	switch status {
	case http.StatusServiceUnavailable:
		_ = c.Error(err)
		body["error"] = "storage temporarily unavailable, please retry"
		if errors.Is(err, service.ErrPartialWrite) {
			body["partial"] = true
		}
	case http.StatusInternalServerError:
		_ = c.Error(err)
		body["error"] = "Internal Server Error"
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
}
