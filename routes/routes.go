package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoppyglobe/shoppyglobe-api/controllers"
	"github.com/shoppyglobe/shoppyglobe-api/middleware"
)

// Register wires the full HTTP surface. Cart routes sit behind the auth
// guard; catalog and auth routes are public.
func Register(
	r *gin.Engine,
	auth *controllers.AuthController,
	products *controllers.ProductController,
	cart *controllers.CartController,
	tokens middleware.TokenVerifier,
) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ShoppyGlobe API running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	r.GET("/products", products.GetProducts)
	r.GET("/products/:id", products.GetProductByID)

	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)

	protected := r.Group("/cart")
	protected.Use(middleware.RequireAuth(tokens))
	{
		protected.GET("", cart.GetCart)
		protected.POST("", cart.AddItem)
		protected.PUT("/:productId", cart.UpdateItem)
		protected.DELETE("/:productId", cart.RemoveItem)
	}
}
