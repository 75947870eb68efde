package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "itinerary/internal/config"
	h "itinerary/internal/http/handlers"
	"itinerary/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     env.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))
	r.Use(middleware.AuthOptional(env.JWTSecret))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Itinerary (legacy flat paths)
		api.GET("/trip-details", h.GetTripDetails)
		api.POST("/save-trip-item", h.SaveTripItem)

		// Itinerary (newer paths onto the same handlers)
		api.POST("/trip-items", h.SaveTripItem)
		bookings := api.Group("/bookings")
		bookings.GET("/:code/itinerary", h.GetBookingItinerary)
		bookings.GET("/:code/itinerary-pdf", h.GetItineraryPDF)
	}

	h.SetRouter(r)
	return r
}
