package dto

import "errors"

// ErrNotMilitaryPayslip signals that the document should be routed to a
// different extractor family; it is a routing outcome, not a failure.
var ErrNotMilitaryPayslip = errors.New("document is not a PCDA military payslip")

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PayslipExtractionResponse is the final response structure.
type PayslipExtractionResponse struct {
	Payslip     PayslipData `json:"payslip"`
	ProcessedAt string      `json:"processed_at"`
}
