package controllers

import (
	"net/http"

	"simpleshop/models"
	"simpleshop/repository"

	"github.com/gin-gonic/gin"
)

// FeedbackController is append-only: there is no update or delete.
type FeedbackController struct {
	repo repository.FeedbackRepository
}

func NewFeedbackController(repo repository.FeedbackRepository) *FeedbackController {
	return &FeedbackController{repo: repo}
}

type createFeedbackRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Text  string `json:"text" binding:"required"`
	Date  string `json:"date" binding:"required"`
}

func (fc *FeedbackController) List(c *gin.Context) {
	feedback, err := fc.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list feedback")
		return
	}
	c.JSON(http.StatusOK, feedback)
}

func (fc *FeedbackController) Create(c *gin.Context) {
	var body createFeedbackRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	fb := &models.Feedback{
		Name:  body.Name,
		Email: body.Email,
		Text:  body.Text,
		Date:  body.Date,
	}
	if err := fc.repo.Create(c.Request.Context(), fb); err != nil {
		respondError(c, err, "create feedback")
		return
	}
	c.JSON(http.StatusOK, fb)
}
