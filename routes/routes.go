package routes

import (
	"net/http"
	"time"

	"sparklewash/handlers"
	"sparklewash/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers auth endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/me", hb.User.Me)
	}
}

// RegisterShopRoutes registers the shop catalog and the owner-side
// schedule management endpoints.
func RegisterShopRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/shops")
	{
		// Public catalog endpoints.
		api.GET("/:shopID", hb.Shop.GetShop)
		api.GET("/:shopID/services", hb.Shop.GetShopServices)
		api.GET("/:shopID/schedule", hb.Shop.GetSchedule)

		// Schedule management requires an authenticated owner.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.PUT("/:shopID/schedule", hb.Shop.PublishSchedule)
		protected.DELETE("/:shopID/schedule/ranges/:rangeID", hb.Shop.DeleteRange)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm SparkleWash"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterShopRoutes(r, hb)
	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
}
