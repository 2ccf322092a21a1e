package controllers

import (
	"errors"
	"net/http"

	"simpleshop/auth"
	"simpleshop/models"
	"simpleshop/repository"
	"simpleshop/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	svc  services.UserService
	repo repository.UserRepository
}

func NewUserController(svc services.UserService, repo repository.UserRepository) *UserController {
	return &UserController{svc: svc, repo: repo}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Presence and length of these are checked by the service so that a short
// new password is rejected before anything else.
type changePasswordRequest struct {
	Username        string `json:"username"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// List never exposes passwords; models.User omits them from JSON.
func (uc *UserController) List(c *gin.Context) {
	users, err := uc.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) Register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	user, err := uc.svc.Register(c.Request.Context(), services.RegisterInput{
		Username: body.Username,
		Password: body.Password,
		Name:     body.Name,
		Role:     body.Role,
	})
	if err != nil {
		respondError(c, err, "register user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (uc *UserController) Login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	user, err := uc.svc.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		respondError(c, err, "login")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (uc *UserController) ChangePassword(c *gin.Context) {
	var body changePasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	err := uc.svc.ChangePassword(c.Request.Context(), services.ChangePasswordInput{
		Username:        body.Username,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     body.NewPassword,
	})
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Current password is incorrect"})
		return
	}
	if err != nil {
		respondError(c, err, "change password")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (uc *UserController) Update(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	user, err := uc.repo.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UserController) Delete(c *gin.Context) {
	if err := uc.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete user")
		return
	}
	deleted(c)
}
