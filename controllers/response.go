package controllers

import (
	"errors"
	"net/http"

	"simpleshop/auth"
	"simpleshop/logger"
	"simpleshop/repository"
	"simpleshop/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgMissingFields      = "Missing required fields"
	msgInvalidBody        = "Invalid request body"
	msgBodyTooLarge       = "Request body too large"
	msgNotFound           = "Not found"
	msgInternal           = "internal server error"
	msgInvalidCredentials = "Invalid credentials"
)

// bindError answers a failed ShouldBindJSON. Oversized bodies get 413,
// everything else is the client's fault.
func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": msgBodyTooLarge})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingFields})
}

// respondError maps a repository or service error onto a status code.
// Unknown errors are logged and reported as a bare 500.
func respondError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, auth.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": msgInvalidCredentials})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgNotFound})
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, services.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": services.ErrUsernameTaken.Error()})
	default:
		_ = c.Error(err)
		logger.FromCtx(c.Request.Context()).Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
	}
}

func deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}
