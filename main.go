package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jansahayak/aadhaar-extraction-server/client"
	"github.com/jansahayak/aadhaar-extraction-server/config"
	"github.com/jansahayak/aadhaar-extraction-server/handler"
	"github.com/jansahayak/aadhaar-extraction-server/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize OnDemand API client
	onDemandClient := client.NewOnDemandClient(cfg.OnDemandBaseURL, cfg.OnDemandAPIKey)

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	extractionService := service.NewExtractionService(onDemandClient, pdfProcessor)

	// Initialize handler layer
	extractHandler := handler.NewExtractHandler(extractionService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()
	router.Use(cors.Default())

	// Cap multipart memory at the upload limit
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Jan Sahayak Server is running",
		})
	})

	// API routes
	router.POST("/api/extract-aadhar", extractHandler.ExtractAadhaar)

	// Start server
	log.Printf("Starting Jan Sahayak extraction server on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
