package client

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"strings"
)

// PaddleClient wraps PaddleOCR for text extraction from payslip images.
// Payslips are processed with the English model only.
type PaddleClient struct {
	modelDir string
	apiURL   string
}

// NewPaddleClient creates a new PaddleOCR client
func NewPaddleClient(apiURL string) (*PaddleClient, error) {
	modelDir := os.Getenv("PADDLE_OCR_EN_MODEL_DIR")
	if modelDir == "" {
		modelDir = "/opt/paddleocr/models/en"
	}

	log.Printf("PaddleOCR initialized with EN model: %s", modelDir)

	return &PaddleClient{
		modelDir: modelDir,
		apiURL:   apiURL,
	}, nil
}

// ExtractText extracts text from an image using the PaddleOCR CLI
func (p *PaddleClient) ExtractText(img image.Image) (string, error) {
	tempFile, err := saveTempImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to save temp image: %w", err)
	}
	defer os.Remove(tempFile)

	return p.ExtractTextFromFile(tempFile)
}

// ExtractTextFromFile extracts text from an image file on disk
func (p *PaddleClient) ExtractTextFromFile(imagePath string) (string, error) {
	text, err := p.runPaddleOCR(imagePath)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("PaddleOCR extracted no text from image")
	}

	log.Printf("PaddleOCR extracted %d characters", len(text))
	return text, nil
}

// ExtractTextFromPDFBytes extracts text from PDF bytes using the PaddleOCR
// HTTP API. Used when a scanned slip cannot be rendered to page images.
func (p *PaddleClient) ExtractTextFromPDFBytes(pdfBytes []byte) (string, error) {
	apiURL := p.apiURL
	if apiURL == "" {
		apiURL = "http://paddleocr:8866/predict/ocr_system"
	}

	encodedPDF := base64.StdEncoding.EncodeToString(pdfBytes)

	payload := map[string]interface{}{
		"images": []string{encodedPDF},
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := http.Post(apiURL, "application/json", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("failed to call PaddleOCR API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("PaddleOCR API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results [][]struct {
			Text       string  `json:"text"`
			Confidence float64 `json:"confidence"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode PaddleOCR response: %w", err)
	}

	var textBuilder strings.Builder
	if len(result.Results) > 0 {
		for _, line := range result.Results[0] {
			textBuilder.WriteString(line.Text)
			textBuilder.WriteString("\n")
		}
	}

	extractedText := textBuilder.String()
	if extractedText == "" {
		return "", fmt.Errorf("PaddleOCR extracted no text from PDF")
	}

	log.Printf("PaddleOCR HTTP API extracted %d characters", len(extractedText))
	return extractedText, nil
}

// runPaddleOCR executes the PaddleOCR Python CLI
func (p *PaddleClient) runPaddleOCR(imagePath string) (string, error) {
	cmd := exec.Command("python3", "-c", fmt.Sprintf(`
import sys
from paddleocr import PaddleOCR
import warnings
warnings.filterwarnings('ignore')

ocr = PaddleOCR(
    use_angle_cls=True,
    lang='en',
    det_model_dir='%s/det',
    rec_model_dir='%s/rec',
    cls_model_dir='%s/cls',
    use_gpu=False,
    show_log=False
)

result = ocr.ocr('%s', cls=True)
if result and result[0]:
    for line in result[0]:
        if line and len(line) > 1:
            print(line[1][0])
`, p.modelDir, p.modelDir, p.modelDir, imagePath))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", fmt.Errorf("PaddleOCR command failed: %v, stderr: %s", err, stderr.String())
	}

	return stdout.String(), nil
}

// saveTempImage saves an image.Image to a temporary PNG file
func saveTempImage(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "paddle-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer tempFile.Close()

	if err := png.Encode(tempFile, img); err != nil {
		os.Remove(tempFile.Name())
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return tempFile.Name(), nil
}
