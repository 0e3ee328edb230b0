package pcda

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// AmountParser normalizes locale-formatted amount strings ("₹1,36,400",
// "Rs. 57,722/-", "(1,830)") into plain float64 values.
//
// Two modes exist. The modern mode folds Unicode punctuation (NFKC), strips
// currency markers and separators, and parses through shopspring/decimal.
// The legacy mode reproduces the original comma-strip + ParseFloat behavior
// and is kept selectable for backward compatibility; the modes intentionally
// disagree on some Unicode edge cases (e.g. the U+2212 minus sign).
type AmountParser struct {
	legacy bool
}

// NewAmountParser returns a parser in modern or legacy mode.
func NewAmountParser(legacy bool) *AmountParser {
	return &AmountParser{legacy: legacy}
}

var currencyMarkers = []string{"₹", "$", "Rs.", "RS.", "Rs", "RS", "rs.", "rs", "INR", "inr"}

var unicodeSpaces = []string{
	" ", // no-break space
	" ", // thin space
	" ", // hair space
	" ", // en space
	" ", // em space
}

var unicodeDashes = []string{
	"–", // en dash
	"—", // em dash
	"−", // minus sign
}

// Parse converts a raw amount string into a float64. The second return is
// false for empty strings, strings with no decimal digit, and strings that
// survive cleaning but still fail to parse.
func (p *AmountParser) Parse(raw string) (float64, bool) {
	if p.legacy {
		return p.parseLegacy(raw)
	}

	s := norm.NFKC.String(raw)
	for _, sp := range unicodeSpaces {
		s = strings.ReplaceAll(s, sp, " ")
	}
	for _, d := range unicodeDashes {
		s = strings.ReplaceAll(s, d, "-")
	}
	for _, c := range currencyMarkers {
		s = strings.ReplaceAll(s, c, "")
	}
	s = strings.ReplaceAll(s, "/-", "")
	s = strings.ReplaceAll(s, ",", "")
	// Space variants act as thousands separators in OCR output, so after
	// folding they are removed like commas, not just trimmed.
	s = strings.ReplaceAll(s, " ", "")

	if !hasDigit(s) {
		return 0, false
	}

	// Accounting negatives: (1,234) means -1234.
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	if negative {
		d = d.Neg()
	}
	return d.InexactFloat64(), true
}

// parseLegacy is the original behavior: strip commas, bare ParseFloat.
func (p *AmountParser) parseLegacy(raw string) (float64, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if !hasDigit(s) {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
