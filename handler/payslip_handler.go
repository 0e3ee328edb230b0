package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/payparse/pcda-payslip-ocr/dto"
	"github.com/payparse/pcda-payslip-ocr/service"
)

type PayslipHandler struct {
	payslipService *service.PayslipService
}

func NewPayslipHandler(payslipService *service.PayslipService) *PayslipHandler {
	return &PayslipHandler{
		payslipService: payslipService,
	}
}

// Extract handles POST /payslip/extract: a multipart PDF or image upload
func (h *PayslipHandler) Extract(c *gin.Context) {
	log.Println("Received payslip extraction request")

	var request dto.PayslipExtractionRequest
	if err := c.ShouldBind(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	log.Printf("Processing payslip file %s (%d bytes)", request.File.Filename, request.File.Size)

	payslip, err := h.payslipService.ExtractFromUpload(&request)
	if err != nil {
		if errors.Is(err, dto.ErrNotMilitaryPayslip) {
			h.sendError(c, http.StatusUnprocessableEntity, "Document is not a military payslip", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to extract payslip", err)
		return
	}

	log.Println("Payslip extraction completed successfully")
	c.JSON(http.StatusOK, dto.PayslipExtractionResponse{
		Payslip:     *payslip,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// ExtractText handles POST /payslip/extract-text: pre-extracted text with
// optional positioned fragments, for callers that render PDFs themselves
func (h *PayslipHandler) ExtractText(c *gin.Context) {
	var request dto.TextExtractionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	payslip, err := h.payslipService.ExtractFromText(request.Text, request.Fragments)
	if err != nil {
		if errors.Is(err, dto.ErrNotMilitaryPayslip) {
			h.sendError(c, http.StatusUnprocessableEntity, "Document is not a military payslip", err)
			return
		}
		h.sendError(c, http.StatusInternalServerError, "Failed to extract payslip", err)
		return
	}
	h.payslipService.VerifyName(payslip, request.ExpectedName)

	c.JSON(http.StatusOK, dto.PayslipExtractionResponse{
		Payslip:     *payslip,
		ProcessedAt: time.Now().Format(time.RFC3339),
	})
}

// sendError sends a structured error response
func (h *PayslipHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "EXTRACTION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
