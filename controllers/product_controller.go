package controllers

import (
	"net/http"

	"simpleshop/models"
	"simpleshop/repository"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	repo repository.ProductRepository
}

// NewProductController expects the cached repository in production so that
// every write below invalidates the product list.
func NewProductController(repo repository.ProductRepository) *ProductController {
	return &ProductController{repo: repo}
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
}

func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (pc *ProductController) Create(c *gin.Context) {
	var body productRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	product := &models.Product{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Image:       body.Image,
		Category:    body.Category,
	}
	if err := pc.repo.Create(c.Request.Context(), product); err != nil {
		respondError(c, err, "create product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) Update(c *gin.Context) {
	var patch models.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	product, err := pc.repo.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (pc *ProductController) Delete(c *gin.Context) {
	if err := pc.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete product")
		return
	}
	deleted(c)
}
