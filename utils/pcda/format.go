package pcda

import "strings"

// Era identifies which historical PCDA layout generation a document most
// resembles. Detection is best-effort: the era only promotes a preferred
// strategy to the front of the fallback chain, it never replaces the chain.
type Era int

const (
	EraUnknown Era = iota
	EraPre2020
	EraStructured // 2020-2022 bordered CREDIT/DEBIT tables
	EraTabulatedFeb2023
	EraMultiLineOct2023
	EraPostNov2023
	EraTransactionLog
)

// String names the era for diagnostics.
func (e Era) String() string {
	switch e {
	case EraPre2020:
		return "pre-2020"
	case EraStructured:
		return "structured-2020"
	case EraTabulatedFeb2023:
		return "tabulated-feb-2023"
	case EraMultiLineOct2023:
		return "multi-line-oct-2023"
	case EraPostNov2023:
		return "post-nov-2023"
	case EraTransactionLog:
		return "transaction-log"
	}
	return "unknown"
}

// FormatDetector decides whether text is a military payslip at all, and
// which layout era it most resembles.
type FormatDetector struct{}

// NewFormatDetector returns a detector over the fixed marker sets.
func NewFormatDetector() *FormatDetector {
	return &FormatDetector{}
}

// IsMilitaryPayslip reports whether the text looks like a PCDA payslip:
// any institution marker, or at least three hits from the military
// terminology set.
func (d *FormatDetector) IsMilitaryPayslip(text string) bool {
	u := strings.ToUpper(text)

	for _, m := range institutionMarkers {
		if strings.Contains(u, m) {
			return true
		}
	}

	hits := 0
	for _, term := range militaryTerms {
		if strings.Contains(u, term) {
			hits++
			if hits >= 3 {
				return true
			}
		}
	}
	return false
}

// DetectEra inspects format-specific literal markers. Later generations are
// checked first because their markers are the most specific.
func (d *FormatDetector) DetectEra(text string) Era {
	u := strings.ToUpper(text)

	switch {
	case strings.Contains(u, "DETAILS OF TRANSACTIONS"):
		return EraTransactionLog
	case strings.Contains(u, "BASIC PAY DA MSP"):
		return EraTabulatedFeb2023
	case strings.Contains(u, "/ CREDIT /") && strings.Contains(u, "/ DEBIT /"):
		return EraStructured
	case strings.Contains(u, "EARNINGS") && strings.Contains(u, "DEDUCTIONS"):
		return EraPostNov2023
	case strings.Contains(u, "CREDIT") && strings.Contains(u, "DEBIT"):
		// Plain CREDIT/DEBIT headers without the slash framing show up in
		// the Oct-2023 revision where rows wrap across two lines.
		return EraMultiLineOct2023
	case strings.Contains(u, "STATEMENT OF ACCOUNT"):
		return EraPre2020
	}
	return EraUnknown
}
