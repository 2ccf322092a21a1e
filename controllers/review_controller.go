package controllers

import (
	"net/http"

	"simpleshop/models"
	"simpleshop/repository"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	repo repository.ReviewRepository
}

func NewReviewController(repo repository.ReviewRepository) *ReviewController {
	return &ReviewController{repo: repo}
}

type createReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Text      string `json:"text" binding:"required"`
	Rating    int    `json:"rating"`
}

// List returns every review, or only those of ?productId= when given.
func (rc *ReviewController) List(c *gin.Context) {
	var (
		reviews []models.Review
		err     error
	)
	if productID := c.Query("productId"); productID != "" {
		reviews, err = rc.repo.ListByProduct(c.Request.Context(), productID)
	} else {
		reviews, err = rc.repo.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (rc *ReviewController) Create(c *gin.Context) {
	var body createReviewRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	review := &models.Review{
		ProductID: body.ProductID,
		Username:  body.Username,
		Text:      body.Text,
		Rating:    body.Rating,
	}
	if err := rc.repo.Create(c.Request.Context(), review); err != nil {
		respondError(c, err, "create review")
		return
	}
	c.JSON(http.StatusOK, review)
}

func (rc *ReviewController) Update(c *gin.Context) {
	var patch models.ReviewPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	review, err := rc.repo.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update review")
		return
	}
	c.JSON(http.StatusOK, review)
}

func (rc *ReviewController) Delete(c *gin.Context) {
	if err := rc.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete review")
		return
	}
	deleted(c)
}
