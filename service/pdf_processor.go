package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/payparse/pcda-payslip-ocr/utils/pcda"
)

// PDFProcessor is the rendering collaborator for the extraction core: it
// turns a payslip PDF into raw text, positioned text fragments for spatial
// analysis, and page images for the scanned-document OCR path.
type PDFProcessor interface {
	ExtractText(pdfData []byte, password string) (string, error)
	ExtractFragments(pdfData []byte, password string) ([]pcda.TextFragment, error)
	ExtractImages(pdfData []byte, password string) ([]image.Image, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func (p *pdfProcessor) ExtractText(pdfData []byte, password string) (string, error) {
	data, err := p.decryptIfNeeded(pdfData, password)
	if err != nil {
		return "", err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var textBuilder bytes.Buffer
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for i, word := range row.Content {
				if i > 0 {
					textBuilder.WriteString(" ")
				}
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
	}
	return textBuilder.String(), nil
}

// ExtractFragments returns every positioned text run of the document with
// its bounding box, merging immediately adjacent runs on the same baseline
// so a word split across show-string operators comes out whole.
func (p *pdfProcessor) ExtractFragments(pdfData []byte, password string) ([]pcda.TextFragment, error) {
	data, err := p.decryptIfNeeded(pdfData, password)
	if err != nil {
		return nil, err
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var fragments []pcda.TextFragment
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		fragments = append(fragments, fragmentsFromContent(page.Content().Text)...)
	}
	return fragments, nil
}

// fragmentsFromContent merges consecutive runs that share a baseline and sit
// within a fraction of the font size of each other. A gap wider than that
// starts a new fragment, which is what keeps table columns apart.
func fragmentsFromContent(texts []pdf.Text) []pcda.TextFragment {
	var fragments []pcda.TextFragment
	var current *pcda.TextFragment
	var lastEnd, lastY float64

	flush := func() {
		if current != nil && current.Text != "" {
			fragments = append(fragments, *current)
		}
		current = nil
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}
		size := t.FontSize
		if size <= 0 {
			size = 10
		}

		sameBaseline := current != nil && abs(t.Y-lastY) < size*0.5
		adjacent := sameBaseline && t.X >= lastEnd-size*0.1 && t.X-lastEnd < size*0.6

		if adjacent {
			if t.X-lastEnd > size*0.15 {
				current.Text += " "
			}
			current.Text += t.S
			current.Box.Width = t.X + t.W - current.Box.X
		} else {
			flush()
			current = &pcda.TextFragment{
				Text: t.S,
				Box:  pcda.Rect{X: t.X, Y: t.Y, Width: t.W, Height: size},
			}
		}

		lastEnd = t.X + t.W
		lastY = t.Y
	}
	flush()
	return fragments
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// decryptIfNeeded strips password protection via pdfcpu so the text reader
// can open the document. ledongthuc/pdf cannot read encrypted files itself.
func (p *pdfProcessor) decryptIfNeeded(pdfData []byte, password string) ([]byte, error) {
	if password == "" {
		return pdfData, nil
	}

	inFile, err := os.CreateTemp("", "payslip-in-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(inFile.Name())

	if _, err := inFile.Write(pdfData); err != nil {
		inFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	inFile.Close()

	outFile := inFile.Name() + ".dec.pdf"
	defer os.Remove(outFile)

	conf := model.NewDefaultConfiguration()
	conf.UserPW = password
	if err := api.DecryptFile(inFile.Name(), outFile, conf); err != nil {
		return nil, fmt.Errorf("failed to decrypt pdf: %w", err)
	}

	return os.ReadFile(outFile)
}

func (p *pdfProcessor) ExtractImages(pdfData []byte, password string) ([]image.Image, error) {
	tempDir, err := os.MkdirTemp("", "payslip_images")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFile, err := os.CreateTemp("", "payslip-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if _, err := tempFile.Write(pdfData); err != nil {
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	tempFile.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
	}

	// nil selectedPages extracts from every page
	if err := api.ExtractImagesFile(tempFile.Name(), tempDir, nil, conf); err != nil {
		return nil, fmt.Errorf("failed to extract images: %w", err)
	}

	var images []image.Image
	files, err := os.ReadDir(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		imgFile, err := os.Open(filepath.Join(tempDir, file.Name()))
		if err != nil {
			continue
		}

		img, _, err := image.Decode(imgFile)
		imgFile.Close()
		if err != nil {
			continue
		}
		images = append(images, img)
	}

	return images, nil
}
