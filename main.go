package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vinayak3788/mvps-print-api/config"
	"github.com/vinayak3788/mvps-print-api/controllers"
	"github.com/vinayak3788/mvps-print-api/middleware"
	"github.com/vinayak3788/mvps-print-api/models"
	"github.com/vinayak3788/mvps-print-api/services"
)

func main() {
	log.Println("Starting MVPS Print & Stationery API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Order{},
		&models.StationeryProduct{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	if _, err := services.InitStorageService(); err != nil {
		log.Fatalf("Failed to initialize storage service: %v", err)
	}
	services.InitMailerService()
	services.InitOTPService()

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.GET("/health", healthCheck)

		// Orders
		api.POST("/submit-order", controllers.SubmitOrder)
		api.POST("/submit-stationery-order", controllers.SubmitStationeryOrder)
		api.POST("/confirm-payment", controllers.ConfirmPayment)
		api.GET("/get-orders", controllers.GetOrders)
		api.POST("/update-order-status", controllers.UpdateOrderStatus)
		api.GET("/get-signed-url", controllers.GetSignedURL)

		// Users and profiles
		api.POST("/ensure-user", controllers.EnsureUser)
		api.GET("/get-role", controllers.GetRole)
		api.GET("/get-profile", controllers.GetProfile)
		api.POST("/update-profile", controllers.UpdateProfile)

		// OTP verification
		api.POST("/send-otp", controllers.SendOTP)
		api.POST("/verify-otp", controllers.VerifyOTP)

		// Payments and enquiries
		api.GET("/payment/upi", controllers.GetUPIPayment)
		api.POST("/send-enquiry", controllers.SendEnquiry)

		// Storefront
		api.GET("/stationery/products", controllers.ListProducts)

		// Admin dashboard
		admin := api.Group("/admin")
		if cfg.Auth0Domain != "" {
			admin.Use(middleware.EnsureValidToken(cfg), middleware.RequireAdmin())
		} else {
			log.Println("AUTH0_DOMAIN not set, admin routes are unprotected")
		}
		{
			admin.GET("/users", controllers.ListUsers)
			admin.POST("/update-role", controllers.UpdateRole)
			admin.POST("/block-user", controllers.BlockUser)
			admin.POST("/unblock-user", controllers.UnblockUser)
			admin.DELETE("/delete-user", controllers.DeleteUser)

			admin.POST("/stationery/add", controllers.AddProduct)
			admin.PUT("/stationery/update/:id", controllers.UpdateProduct)
			admin.DELETE("/stationery/delete/:id", controllers.DeleteProduct)
			admin.PUT("/stationery/product/:id/sku", controllers.UpdateProductSKU)
			admin.PUT("/stationery/product/:id/quantity", controllers.UpdateProductQuantity)

			admin.POST("/orders/cleanup", controllers.CleanupOldOrders)
		}
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "MVPS Print & Stationery API is running",
	})
}
