package service

import (
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/payparse/pcda-payslip-ocr/client"
	"github.com/payparse/pcda-payslip-ocr/dto"
	"github.com/payparse/pcda-payslip-ocr/utils/pcda"
)

func newTestService() *PayslipService {
	return NewPayslipService(nil, nil, nil, pcda.NewExtractor(pcda.Options{}))
}

const slipPreamble = "Principal Controller of Defence Accounts (Officers)\n" +
	"Name: Arjun Mehta  Rank: Major  Service No: IC-56789\n" +
	"Statement of Account for February 2023\n"

func TestExtractFromTextRejectsNonMilitaryDocument(t *testing.T) {
	s := newTestService()

	_, err := s.ExtractFromText("Invoice No 4492\nTotal Due 13500", nil)

	assert.ErrorIs(t, err, dto.ErrNotMilitaryPayslip)
}

func TestExtractFromTextAssemblesPayslip(t *testing.T) {
	s := newTestService()

	text := slipPreamble +
		"Basic Pay DA MSP 136400 57722 15500\n" +
		"DSOPF Subn AGIF 40000 10000\n"

	payslip, err := s.ExtractFromText(text, nil)

	assert.NoError(t, err)
	assert.Equal(t, map[string]float64{
		"Basic Pay": 136400,
		"DA":        57722,
		"MSP":       15500,
	}, payslip.Earnings)
	assert.Equal(t, map[string]float64{
		"DSOPF Subn": 40000,
		"AGIF":       10000,
	}, payslip.Deductions)
	assert.InDelta(t, 209622, payslip.Credits, 0.01)
	assert.InDelta(t, 50000, payslip.Debits, 0.01)
	assert.InDelta(t, 159622, payslip.NetRemittance, 0.01)
}

func TestExtractFromTextFillsMetadataAndEra(t *testing.T) {
	s := newTestService()

	text := slipPreamble + "Basic Pay DA MSP 136400 57722 15500\n"

	payslip, err := s.ExtractFromText(text, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Major", payslip.Metadata.Rank)
	assert.Equal(t, "IC-56789", payslip.Metadata.ServiceNumber)
	assert.Equal(t, "February 2023", payslip.Metadata.PayMonth)
	assert.NotEmpty(t, payslip.FormatEra)
}

func TestExtractFromTextUsesFragmentsForSpatialLayout(t *testing.T) {
	s := newTestService()

	frag := func(text string, x, y float64) pcda.TextFragment {
		return pcda.TextFragment{
			Text: text,
			Box:  pcda.Rect{X: x, Y: y, Width: 40, Height: 10},
		}
	}
	fragments := []pcda.TextFragment{
		frag("CREDIT", 110, 700), frag("DEBIT", 310, 700),
		frag("Basic Pay", 10, 680), frag("136400", 110, 680),
		frag("DSOPF Subn", 210, 680), frag("40000", 310, 680),
		frag("DA", 10, 660), frag("57722", 110, 660),
		frag("AGIF", 210, 660), frag("10000", 310, 660),
	}

	payslip, err := s.ExtractFromText(slipPreamble, fragments)

	assert.NoError(t, err)
	assert.Equal(t, 136400.0, payslip.Earnings["Basic Pay"])
	assert.Equal(t, 40000.0, payslip.Deductions["DSOPF Subn"])
}

func TestVerifyNameRecordsMismatch(t *testing.T) {
	s := newTestService()

	payslip, err := s.ExtractFromText(slipPreamble+"Basic Pay 136400\n", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Arjun Mehta", payslip.Metadata.Name)

	s.VerifyName(payslip, "ARJUN MEHTA")
	assert.NotContains(t, payslip.Quality.Issues, "name_mismatch")

	s.VerifyName(payslip, "Rohan Gupta")
	assert.Contains(t, payslip.Quality.Issues, "name_mismatch")
}

func TestVerifyNameSkipsWhenNothingToCompare(t *testing.T) {
	s := newTestService()

	payslip := &dto.PayslipData{}
	s.VerifyName(payslip, "Rohan Gupta")
	s.VerifyName(payslip, "")

	assert.Empty(t, payslip.Quality.Issues)
}

// failingImageProcessor simulates a PDF whose page images pdfcpu cannot
// extract.
type failingImageProcessor struct{}

func (failingImageProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	return "", nil
}

func (failingImageProcessor) ExtractFragments(pdfData []byte, password string) ([]pcda.TextFragment, error) {
	return nil, nil
}

func (failingImageProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	return nil, errors.New("no image streams")
}

func TestScannedPDFFallsBackToPaddleAPI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"results":[[{"text":"Basic Pay 136400","confidence":0.91}]]}`)
	}))
	defer server.Close()

	paddle, err := client.NewPaddleClient(server.URL)
	assert.NoError(t, err)

	s := NewPayslipService(nil, failingImageProcessor{}, paddle, pcda.NewExtractor(pcda.Options{}))

	text, quality, signed := s.ocrScannedPDF([]byte("%PDF-1.4"), "", dto.DocumentQuality{})

	assert.Contains(t, text, "Basic Pay 136400")
	assert.Contains(t, quality.Issues, "pdf_image_extraction_failed")
	assert.NotContains(t, quality.Issues, "scanned_pdf_ocr_failed")
	assert.InDelta(t, 77.5, quality.FinalScore, 0.01)
	assert.False(t, signed)
}

func TestScannedPDFRecordsFailureWhenAPIUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	paddle, err := client.NewPaddleClient(server.URL)
	assert.NoError(t, err)

	s := NewPayslipService(nil, failingImageProcessor{}, paddle, pcda.NewExtractor(pcda.Options{}))

	text, quality, _ := s.ocrScannedPDF([]byte("%PDF-1.4"), "", dto.DocumentQuality{})

	assert.Empty(t, text)
	assert.Contains(t, quality.Issues, "pdf_image_extraction_failed")
	assert.Contains(t, quality.Issues, "scanned_pdf_ocr_failed")
}

func TestEvaluateTextQuality(t *testing.T) {
	assert.Equal(t, 0.0, evaluateTextQuality(""))

	weak := evaluateTextQuality("short")
	assert.Less(t, weak, 50.0)

	strong := evaluateTextQuality(slipPreamble +
		"CREDIT side lists pay and allowances, DEBIT side lists DSOP fund and AGIF deductions. " +
		"Net remittance is credited to the account after all deductions are applied to the defence pay account. " +
		"This statement covers basic pay, dearness allowance and military service pay for the month together with " +
		"the recovery schedule issued by the defence accounts department for the same period of service.")
	assert.GreaterOrEqual(t, strong, 50.0)
}
