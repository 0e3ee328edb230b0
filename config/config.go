package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort        string
	TesseractDataPath string
	PaddleAPIURL      string
	MaxFileSize       int64

	// LegacyAmountMode selects the historical comma-strip numeric parsing
	// instead of the Unicode-aware normalizer.
	LegacyAmountMode bool

	// MaxPlausibleAmount bounds single pay components; larger figures are
	// treated as token misalignment. Zero keeps the built-in default.
	MaxPlausibleAmount float64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/4.00/tessdata"
	}

	paddleAPIURL := os.Getenv("PADDLEOCR_API_URL")
	if paddleAPIURL == "" {
		paddleAPIURL = "http://paddleocr:8866/predict/ocr_system"
	}

	legacyAmounts := false
	if v := os.Getenv("LEGACY_AMOUNT_MODE"); v == "1" || v == "true" {
		legacyAmounts = true
	}

	var maxAmount float64
	if v := os.Getenv("MAX_PLAUSIBLE_AMOUNT"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			maxAmount = parsed
		}
	}

	return &Config{
		ServerPort:         serverPort,
		TesseractDataPath:  tesseractDataPath,
		PaddleAPIURL:       paddleAPIURL,
		MaxFileSize:        10 * 1024 * 1024, // 10 MB
		LegacyAmountMode:   legacyAmounts,
		MaxPlausibleAmount: maxAmount,
	}
}
