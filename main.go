package main

import (
	"net/http"
	"os"

	"github.com/bookify/reservations-api/config"
	"github.com/bookify/reservations-api/mailer"
	"github.com/bookify/reservations-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	config.Load()
	config.InitDB(getEnv("DATABASE_DSN", "bookify.db"))
	mailer.Init()

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Bookify Reservations API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Bookify Reservations API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"CUSTOMER", "STAFF", "OWNER", "SUPPORT"},
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	port := getEnv("PORT", "8080")
	logrus.WithField("port", port).Info("server starting")
	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
