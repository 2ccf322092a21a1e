package routes

import (
	"net/http"

	"simpleshop/controllers"

	"github.com/gin-gonic/gin"
)

// Deps carries everything the routes dispatch to.
type Deps struct {
	Products *controllers.ProductController
	Orders   *controllers.OrderController
	Users    *controllers.UserController
	Reviews  *controllers.ReviewController
	Feedback *controllers.FeedbackController
	Admin    *controllers.AdminController

	// AuthLimit guards the credential endpoints. Nil disables limiting.
	AuthLimit gin.HandlerFunc
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	limit := d.AuthLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", d.Products.List)
		api.POST("/products", d.Products.Create)
		api.PUT("/products/:id", d.Products.Update)
		api.DELETE("/products/:id", d.Products.Delete)

		api.GET("/orders", d.Orders.List)
		api.POST("/orders", d.Orders.Create)
		api.PUT("/orders/:id", d.Orders.Update)
		api.DELETE("/orders/:id", d.Orders.Delete)

		api.GET("/users", d.Users.List)
		api.POST("/users", d.Users.Register)
		api.POST("/users/login", limit, d.Users.Login)
		api.POST("/users/change-password", limit, d.Users.ChangePassword)
		api.PUT("/users/:id", d.Users.Update)
		api.DELETE("/users/:id", d.Users.Delete)

		api.GET("/reviews", d.Reviews.List)
		api.POST("/reviews", d.Reviews.Create)
		api.PUT("/reviews/:id", d.Reviews.Update)
		api.DELETE("/reviews/:id", d.Reviews.Delete)

		api.GET("/feedback", d.Feedback.List)
		api.POST("/feedback", d.Feedback.Create)

		api.POST("/admin/check", limit, d.Admin.Check)
	}
}
