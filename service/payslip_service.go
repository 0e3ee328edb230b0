package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/payparse/pcda-payslip-ocr/client"
	"github.com/payparse/pcda-payslip-ocr/dto"
	"github.com/payparse/pcda-payslip-ocr/utils"
	"github.com/payparse/pcda-payslip-ocr/utils/pcda"
)

type PayslipService struct {
	tesseractClient *client.TesseractClient
	pdfProcessor    PDFProcessor
	paddleClient    *client.PaddleClient
	extractor       *pcda.Extractor
	formats         *pcda.FormatDetector
}

func NewPayslipService(
	tesseractClient *client.TesseractClient,
	pdfProcessor PDFProcessor,
	paddleClient *client.PaddleClient,
	extractor *pcda.Extractor,
) *PayslipService {
	return &PayslipService{
		tesseractClient: tesseractClient,
		pdfProcessor:    pdfProcessor,
		paddleClient:    paddleClient,
		extractor:       extractor,
		formats:         pcda.NewFormatDetector(),
	}
}

// ExtractFromUpload processes an uploaded payslip document end to end:
// text extraction, OCR fallback for scanned slips, table extraction and
// metadata assembly.
func (s *PayslipService) ExtractFromUpload(req *dto.PayslipExtractionRequest) (*dto.PayslipData, error) {
	f, err := req.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", req.File.Filename, err)
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", req.File.Filename, err)
	}

	var text string
	var fragments []pcda.TextFragment
	var quality dto.DocumentQuality
	var signed bool

	isPDF := strings.HasSuffix(strings.ToLower(req.File.Filename), ".pdf")

	if isPDF {
		text, err = s.pdfProcessor.ExtractText(fileBytes, req.Password)
		if err != nil {
			log.Printf("PDF text extraction failed for %s: %v", req.File.Filename, err)
			quality.Issues = append(quality.Issues, "pdf_text_extraction_failed")
		}

		if evaluateTextQuality(text) < 50 {
			// Scanned or image-only PDF, OCR the page images instead
			log.Printf("PDF %s has weak embedded text, attempting image-based OCR", req.File.Filename)
			text, quality, signed = s.ocrScannedPDF(fileBytes, req.Password, quality)
		} else {
			// Vector PDF, positioned fragments enable spatial table detection
			fragments, err = s.pdfProcessor.ExtractFragments(fileBytes, req.Password)
			if err != nil {
				log.Printf("Fragment extraction failed for %s: %v", req.File.Filename, err)
			}
			quality.OcrConfidence = 100.0
			quality.ResolutionScore = 100.0
			quality.FinalScore = 100.0

			images, imgErr := s.pdfProcessor.ExtractImages(fileBytes, req.Password)
			if imgErr == nil {
				signed = hasDigitalSignatureQR(images)
			}
		}
	} else {
		text, quality = s.ocrImageUpload(req, fileBytes)

		if img, _, decErr := image.Decode(bytes.NewReader(fileBytes)); decErr == nil {
			signed = hasDigitalSignatureQR([]image.Image{img})
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text could be extracted from the document")
	}

	payslip, err := s.ExtractFromText(text, fragments)
	if err != nil {
		return nil, err
	}

	payslip.Quality = quality
	payslip.DigitallySigned = signed
	s.VerifyName(payslip, req.ExpectedName)
	return payslip, nil
}

// VerifyName cross-checks a caller-supplied expected account holder against
// the extracted name. A mismatch is recorded as a quality issue rather than
// an error; the extraction itself is still valid.
func (s *PayslipService) VerifyName(payslip *dto.PayslipData, expected string) {
	if expected == "" || payslip.Metadata.Name == "" {
		return
	}
	if !utils.CompareNames(payslip.Metadata.Name, expected) {
		log.Printf("Extracted name %q does not match expected %q", payslip.Metadata.Name, expected)
		payslip.Quality.Issues = append(payslip.Quality.Issues, "name_mismatch")
	}
}

// ExtractFromText runs table extraction and metadata parsing on already
// extracted text. Fragments are optional and unlock the spatial strategies.
func (s *PayslipService) ExtractFromText(text string, fragments []pcda.TextFragment) (*dto.PayslipData, error) {
	if !s.formats.IsMilitaryPayslip(text) {
		return nil, dto.ErrNotMilitaryPayslip
	}

	result := s.extractor.Extract(text, fragments)

	credits := result.TotalCredits()
	debits := result.TotalDebits()

	payslip := &dto.PayslipData{
		Metadata:      utils.ParsePayslipMetadata(text),
		Earnings:      result.Earnings,
		Deductions:    result.Deductions,
		Credits:       credits,
		Debits:        debits,
		NetRemittance: credits - debits,
		FormatEra:     s.formats.DetectEra(text).String(),
	}

	return payslip, nil
}

// ocrScannedPDF renders the PDF's page images and OCRs them, PaddleOCR
// first with a Tesseract fallback per page.
func (s *PayslipService) ocrScannedPDF(fileBytes []byte, password string, quality dto.DocumentQuality) (string, dto.DocumentQuality, bool) {
	images, err := s.pdfProcessor.ExtractImages(fileBytes, password)
	if err != nil || len(images) == 0 {
		log.Printf("Failed to extract images from PDF: %v", err)
		quality.Issues = append(quality.Issues, "pdf_image_extraction_failed")

		// Last resort: hand the whole PDF to the PaddleOCR HTTP API, which
		// rasterizes server-side.
		text, apiErr := s.paddleClient.ExtractTextFromPDFBytes(fileBytes)
		if apiErr != nil {
			log.Printf("PaddleOCR API fallback failed: %v", apiErr)
			quality.Issues = append(quality.Issues, "scanned_pdf_ocr_failed")
			return "", quality, false
		}
		quality.OcrConfidence = 75.0
		quality.ResolutionScore = 80.0
		quality.FinalScore = (quality.OcrConfidence + quality.ResolutionScore) / 2
		return text, quality, false
	}

	signed := hasDigitalSignatureQR(images)

	var combinedText strings.Builder
	var totalConfidence float64
	var imageCount int

	for _, img := range images {
		tempImgFile, err := saveImageToTempFile(img)
		if err != nil {
			log.Printf("Failed to save temporary image for OCR: %v", err)
			continue
		}

		pageText, ocrErr := s.paddleClient.ExtractTextFromFile(tempImgFile)
		var pageConf float64 = 75.0

		if ocrErr != nil || len(strings.TrimSpace(pageText)) < 10 {
			pageText, pageConf, ocrErr = s.tesseractClient.ExtractTextAndQuality(tempImgFile)
		}
		os.Remove(tempImgFile)
		if ocrErr != nil {
			log.Printf("OCR failed for a page: %v", ocrErr)
			continue
		}

		combinedText.WriteString(pageText)
		combinedText.WriteString("\n")
		totalConfidence += pageConf
		imageCount++
	}

	if imageCount == 0 {
		quality.Issues = append(quality.Issues, "scanned_pdf_ocr_failed")
		return "", quality, signed
	}

	quality.OcrConfidence = totalConfidence / float64(imageCount)
	quality.ResolutionScore = 80.0
	quality.FinalScore = (quality.OcrConfidence + quality.ResolutionScore) / 2
	if quality.FinalScore < 60 {
		quality.Issues = append(quality.Issues, "low_quality_document")
	}

	return combinedText.String(), quality, signed
}

// ocrImageUpload OCRs a directly uploaded image, PaddleOCR first.
func (s *PayslipService) ocrImageUpload(req *dto.PayslipExtractionRequest, fileBytes []byte) (string, dto.DocumentQuality) {
	var quality dto.DocumentQuality

	if img, _, err := image.Decode(bytes.NewReader(fileBytes)); err == nil {
		if paddleText, paddleErr := s.paddleClient.ExtractText(img); paddleErr == nil && len(strings.TrimSpace(paddleText)) > 5 {
			quality.OcrConfidence = 75.0
			quality.ResolutionScore = 80.0
			quality.FinalScore = (quality.OcrConfidence + quality.ResolutionScore) / 2
			return paddleText, quality
		}
	}

	text, conf, err := s.tesseractClient.ExtractTextAndQualityFromFile(req.File)
	if err != nil {
		log.Printf("Image OCR failed for %s: %v", req.File.Filename, err)
		quality.Issues = append(quality.Issues, "image_ocr_failed")
		return "", quality
	}

	quality.OcrConfidence = conf
	quality.ResolutionScore = 80.0
	quality.FinalScore = (quality.OcrConfidence + quality.ResolutionScore) / 2
	if quality.FinalScore < 60 {
		quality.Issues = append(quality.Issues, "low_quality_document")
	}
	return text, quality
}

// hasDigitalSignatureQR reports whether any page image carries a decodable
// QR code. SPARSH and recent PCDA slips stamp one next to the signature
// block, so a readable QR is a strong digitally-signed hint.
func hasDigitalSignatureQR(images []image.Image) bool {
	reader := qrcode.NewQRCodeReader()
	for _, img := range images {
		bmp, err := gozxing.NewBinaryBitmapFromImage(img)
		if err != nil {
			continue
		}
		if result, err := reader.Decode(bmp, nil); err == nil && result.GetText() != "" {
			return true
		}
	}
	return false
}

// saveImageToTempFile saves an image.Image to a temporary PNG file.
func saveImageToTempFile(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "payslip-img-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp image file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		return "", fmt.Errorf("failed to encode image to PNG: %w", err)
	}

	return tempFile.Name(), nil
}

// evaluateTextQuality scores extracted text from 0 to 100 based on length
// and payslip keyword presence. Below 50 the document is treated as scanned.
func evaluateTextQuality(text string) float64 {
	if text == "" {
		return 0.0
	}

	score := 0.0

	textLen := len(strings.TrimSpace(text))
	if textLen > 500 {
		score += 40.0
	} else if textLen > 100 {
		score += 20.0
	} else if textLen > 20 {
		score += 10.0
	}

	keywords := []string{
		"pay", "defence", "account", "credit", "debit",
		"dsop", "agif", "remittance", "deduction",
	}

	textLower := strings.ToLower(text)
	keywordCount := 0
	for _, keyword := range keywords {
		if strings.Contains(textLower, keyword) {
			keywordCount++
		}
	}

	score += float64(keywordCount) * 6.67

	if score > 100.0 {
		score = 100.0
	}

	return score
}
