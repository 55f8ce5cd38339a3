package handler

import (
	"net/http"

	"drinkcatalog/pkg/logger"
	"drinkcatalog/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "drinks-service"

type Handlers struct {
	Catalog  *CatalogHandler
	Votes    *VoteHandler
	Featured *FeaturedHandler
	Ratings  *RatingHandler
	Reviews  *ReviewHandler
}

func SetupRoutes(h Handlers, authMiddleware *AuthMiddleware, voteLimiter *UserRateLimiter) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowWildcard:    true,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader},
		ExposeHeaders:    []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := authMiddleware.Authenticate()

	router.GET("/drinks", h.Catalog.SearchDrinks)
	router.GET("/drinks/:id", h.Catalog.GetDrink)
	router.POST("/drinks", auth, authMiddleware.RequireRole(RoleManager, RoleAdmin), h.Catalog.CreateDrink)
	router.GET("/drinks/:id/ratings", h.Ratings.ListForDrink)
	router.GET("/drinks/:id/rating", h.Ratings.AverageForDrink)
	router.GET("/brands", h.Catalog.ListBrands)
	router.GET("/categories", h.Catalog.ListCategories)

	votes := router.Group("/votes", auth)
	{
		votes.POST("", voteLimiter.Middleware(), h.Votes.CastVote)
		votes.GET("/me", h.Votes.GetMyVote)
	}

	router.GET("/featured", h.Featured.GetFeatured)
	router.POST("/featured/rotate", auth, authMiddleware.RequireRole(RoleAdmin), h.Featured.Rotate)

	ratings := router.Group("/ratings", auth)
	{
		ratings.POST("", h.Ratings.CreateRating)
		ratings.PATCH("/:id", h.Ratings.UpdateRating)
		ratings.DELETE("/:id", h.Ratings.DeleteRating)
	}
	router.GET("/ratings/:id/reviews", h.Reviews.ListForRating)

	reviews := router.Group("/reviews", auth)
	{
		reviews.POST("", h.Reviews.AddReview)
		reviews.PATCH("/:id", h.Reviews.UpdateReview)
		reviews.DELETE("/:id", h.Reviews.DeleteReview)
	}

	return router
}
