package dto

import (
	"errors"
	"mime/multipart"

	"github.com/payparse/pcda-payslip-ocr/utils/pcda"
)

// PayslipExtractionRequest carries one uploaded payslip PDF. ExpectedName
// optionally cross-checks the account holder the caller believes the slip
// belongs to against the extracted name.
type PayslipExtractionRequest struct {
	File         *multipart.FileHeader `form:"file" binding:"required"`
	Password     string                `form:"password"`
	ExpectedName string                `form:"expected_name"`
}

// Validate performs basic validation on the request.
func (r *PayslipExtractionRequest) Validate() error {
	if r.File == nil {
		return errors.New("payslip file is required")
	}
	return nil
}

// TextExtractionRequest carries pre-extracted text, optionally with the
// positioned fragments the renderer produced, for callers that run their own
// PDF or OCR pipeline upstream.
type TextExtractionRequest struct {
	Text         string              `json:"text" binding:"required"`
	Fragments    []pcda.TextFragment `json:"fragments,omitempty"`
	ExpectedName string              `json:"expected_name,omitempty"`
}
