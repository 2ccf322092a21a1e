package controllers

import (
	"net/http"

	"simpleshop/models"
	"simpleshop/repository"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	repo repository.OrderRepository
}

func NewOrderController(repo repository.OrderRepository) *OrderController {
	return &OrderController{repo: repo}
}

// Items must decode as a JSON array; an empty array is accepted. Status is
// not taken from the client: every order starts as new.
type createOrderRequest struct {
	Name  string        `json:"name" binding:"required"`
	Phone string        `json:"phone" binding:"required"`
	Items []interface{} `json:"items" binding:"required"`
	Total float64       `json:"total"`
}

func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list orders")
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (oc *OrderController) Create(c *gin.Context) {
	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		bindError(c, err)
		return
	}

	order := &models.Order{
		Name:   body.Name,
		Phone:  body.Phone,
		Items:  body.Items,
		Total:  body.Total,
		Status: models.OrderStatusNew,
	}
	if err := oc.repo.Create(c.Request.Context(), order); err != nil {
		respondError(c, err, "create order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) Update(c *gin.Context) {
	var patch models.OrderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}

	order, err := oc.repo.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "update order")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (oc *OrderController) Delete(c *gin.Context) {
	if err := oc.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "delete order")
		return
	}
	deleted(c)
}
