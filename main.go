package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/payparse/pcda-payslip-ocr/client"
	"github.com/payparse/pcda-payslip-ocr/config"
	"github.com/payparse/pcda-payslip-ocr/handler"
	"github.com/payparse/pcda-payslip-ocr/service"
	"github.com/payparse/pcda-payslip-ocr/utils/pcda"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize OCR clients
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	paddleClient, err := client.NewPaddleClient(cfg.PaddleAPIURL)
	if err != nil {
		log.Fatalf("Failed to initialize PaddleOCR client: %v", err)
	}

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize the extraction core
	extractor := pcda.NewExtractor(pcda.Options{
		LegacyAmountMode:   cfg.LegacyAmountMode,
		MaxPlausibleAmount: cfg.MaxPlausibleAmount,
	})

	// Initialize service layer
	payslipService := service.NewPayslipService(tesseractClient, pdfProcessor, paddleClient, extractor)

	// Initialize handler layer
	payslipHandler := handler.NewPayslipHandler(payslipService)

	// Setup Gin router
	router := gin.Default()

	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "PCDA Payslip Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		payslip := api.Group("/payslip")
		{
			payslip.POST("/extract", payslipHandler.Extract)
			payslip.POST("/extract-text", payslipHandler.ExtractText)
		}
	}

	// Start server
	log.Printf("Starting PCDA Payslip Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
