package controllers

import (
	"errors"
	"net/http"

	"simpleshop/auth"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	checker auth.Checker
}

func NewAdminController(checker auth.Checker) *AdminController {
	return &AdminController{checker: checker}
}

type adminCheckRequest struct {
	Password string `json:"password"`
}

// Check compares the submitted password with the shared admin secret.
func (ac *AdminController) Check(c *gin.Context) {
	var body adminCheckRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	_, err := ac.checker.Check(c.Request.Context(), auth.Credentials{Password: body.Password})
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Wrong password"})
		return
	}
	if err != nil {
		respondError(c, err, "admin check")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
