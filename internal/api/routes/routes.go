package routes

import (
	"license-manager/internal/api/handlers"
	"license-manager/internal/api/middleware"
	"license-manager/internal/config"
	"license-manager/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(db, cfg)
	userService := services.NewUserService(db)
	computerService := services.NewComputerService(db)
	licenseService := services.NewLicenseService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	computerHandler := handlers.NewComputerHandler(computerService)
	licenseHandler := handlers.NewLicenseHandler(licenseService, computerService)
	roomHandler := handlers.NewRoomHandler(licenseService)

	// Middleware
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"data": gin.H{
				"message": "License Manager API",
				"version": "1.0",
				"endpoints": gin.H{
					"auth":      []string{"/auth/login", "/auth/register"},
					"users":     []string{"/users"},
					"computers": []string{"/computers"},
					"licenses":  []string{"/licenses", "/licenses/search", "/licenses/stats"},
					"rooms":     []string{"/rooms"},
				},
			},
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "License Manager API is running",
		})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	users := r.Group("/users")
	{
		users.GET("", userHandler.GetUsers)
		// POST /users is an alias for registration kept for the frontend
		users.POST("", authHandler.Register)
	}

	computers := r.Group("/computers")
	{
		computers.GET("", computerHandler.GetComputers)
		computers.POST("", computerHandler.CreateComputer)
		computers.DELETE("/:id", computerHandler.DeleteComputer)
	}

	licenses := r.Group("/licenses")
	{
		licenses.GET("", licenseHandler.GetLicenses)
		licenses.POST("", licenseHandler.CreateLicense)
		licenses.GET("/search", licenseHandler.SearchLicenses)
		licenses.GET("/stats", licenseHandler.GetStats)
		licenses.POST("/by-room", licenseHandler.CreateLicenseByRoom)
		licenses.PUT("/by-details", licenseHandler.UpdateLicenseByDetails)
		licenses.PUT("/:id", licenseHandler.UpdateLicense)
		licenses.DELETE("/:id", licenseHandler.DeleteLicense)
	}

	rooms := r.Group("/rooms")
	{
		rooms.GET("", roomHandler.GetRooms)
		rooms.GET("/:room/licenses", roomHandler.GetRoomLicenses)
		rooms.GET("/:room/computers/:name/licenses", roomHandler.GetComputerLicenses)
	}

	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "error": "endpoint not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(405, gin.H{"success": false, "error": "method not allowed"})
	})
}
