package pcda

import "strings"

// Class is the classification of a pay-component code.
type Class int

const (
	ClassUnknown Class = iota
	ClassCredit
	ClassDebit
)

// Classifier decides whether a code is an earning or a deduction. Checks run
// in a fixed order: exact vocabulary, then deduction substrings, then earning
// substrings. The deduction-before-earning precedence is deliberate: generic
// earning keywords like "PAY" hide inside many deduction compounds.
type Classifier struct{}

// NewClassifier returns a classifier over the frozen vocabularies.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify labels a code by vocabulary and keyword checks alone.
func (c *Classifier) Classify(code string) Class {
	u := strings.ToUpper(strings.TrimSpace(code))
	if u == "" {
		return ClassUnknown
	}

	if debitCodes[u] {
		return ClassDebit
	}
	if creditCodes[u] {
		return ClassCredit
	}

	// Substring heuristics. Deductions first; see vocabulary.go.
	for _, kw := range debitKeywords {
		if strings.Contains(u, kw) {
			return ClassDebit
		}
	}
	for _, kw := range creditKeywords {
		if strings.Contains(u, kw) {
			return ClassCredit
		}
	}

	return ClassUnknown
}

// ClassifyWithAmount adds the amount-magnitude heuristic as a last resort
// for codes the vocabularies miss. Large amounts empirically sit on the
// earnings side, mid-size on deductions, and anything smaller is discarded.
// This reflects payslip convention, not a correctness property.
func (c *Classifier) ClassifyWithAmount(code string, amount float64) Class {
	if cls := c.Classify(code); cls != ClassUnknown {
		return cls
	}
	if amount > creditMagnitudeFloor {
		return ClassCredit
	}
	if amount > debitMagnitudeFloor {
		return ClassDebit
	}
	return ClassUnknown
}

// side converts a Class to the output Side.
func (cl Class) side() Side {
	switch cl {
	case ClassCredit:
		return SideCredit
	case ClassDebit:
		return SideDebit
	}
	return SideUnknown
}

// matchesVocabulary reports whether a known code of the given side appears
// in the text. Multi-word codes match by substring; single-word codes must
// match a whole token, otherwise short codes like LIC or DA fire inside
// ordinary words. Used by the column parser and the spatial detector to
// confirm that a column really holds pay components.
func (c *Classifier) matchesVocabulary(text string, side Side) bool {
	u := strings.ToUpper(text)
	var vocab map[string]bool
	switch side {
	case SideCredit:
		vocab = creditCodes
	case SideDebit:
		vocab = debitCodes
	default:
		return false
	}

	fields := strings.Fields(u)
	for code := range vocab {
		if strings.Contains(code, " ") {
			if strings.Contains(u, code) {
				return true
			}
			continue
		}
		for _, f := range fields {
			if f == code {
				return true
			}
		}
	}
	return false
}
