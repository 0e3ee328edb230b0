package dto

// PayslipMetadata is the personnel block printed outside the earnings/
// deductions table. It comes from a simple pattern-matching parser, not from
// the table extraction core.
type PayslipMetadata struct {
	Name          string `json:"name,omitempty"`
	Rank          string `json:"rank,omitempty"`
	ServiceNumber string `json:"service_number,omitempty"`
	PayMonth      string `json:"pay_month,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	PAN           string `json:"pan,omitempty"`
}

// DocumentQuality scores how trustworthy the extracted text is. Vector PDFs
// get maximal scores; scanned slips inherit the OCR engine's word
// confidences.
type DocumentQuality struct {
	ResolutionScore float64  `json:"resolution_score"`
	OcrConfidence   float64  `json:"ocr_confidence"`
	FinalScore      float64  `json:"final_score"`
	Issues          []string `json:"issues,omitempty"`
}

// PayslipData is the assembled output for one PCDA payslip document.
type PayslipData struct {
	Metadata        PayslipMetadata    `json:"metadata"`
	Earnings        map[string]float64 `json:"earnings"`
	Deductions      map[string]float64 `json:"deductions"`
	Credits         float64            `json:"credits"`
	Debits          float64            `json:"debits"`
	NetRemittance   float64            `json:"net_remittance"`
	FormatEra       string             `json:"format_era"`
	DigitallySigned bool               `json:"digitally_signed"`
	Quality         DocumentQuality    `json:"quality"`
}
