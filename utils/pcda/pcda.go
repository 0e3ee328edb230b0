// Package pcda extracts structured earnings and deductions from the text of
// Indian military (PCDA) payslips. The input is either the raw extracted text
// of a payslip page, a set of positioned text fragments from a PDF renderer,
// or both. The package is pure: no I/O, no shared state, every call builds
// its own result, so concurrent extractions need no locking.
package pcda

// Rect is a fragment bounding box in whatever units the PDF renderer uses.
// Only relative positions matter for clustering; no calibration is assumed.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// TextFragment is one lexical unit with its page position, produced by an
// external PDF rendering collaborator.
type TextFragment struct {
	Text string `json:"text"`
	Box  Rect   `json:"bounding_box"`
}

// Side tells which half of the payslip a component belongs to.
type Side int

const (
	SideUnknown Side = iota
	SideCredit
	SideDebit
)

// String returns "credit", "debit" or "unknown".
func (s Side) String() string {
	switch s {
	case SideCredit:
		return "credit"
	case SideDebit:
		return "debit"
	}
	return "unknown"
}

// PayComponent is the atomic output unit: one named amount on one side.
// Amount is always strictly positive; zero or negative values are never
// emitted by any parser in this package.
type PayComponent struct {
	Name   string
	Amount float64
	Side   Side
}

// Result is the final output of an extraction: two maps keyed by component
// name. Duplicate names are last-write-wins.
type Result struct {
	Earnings   map[string]float64
	Deductions map[string]float64
}

// NewResult returns an empty result with both maps allocated.
func NewResult() Result {
	return Result{
		Earnings:   make(map[string]float64),
		Deductions: make(map[string]float64),
	}
}

// Empty reports whether neither side holds any component.
func (r Result) Empty() bool {
	return len(r.Earnings) == 0 && len(r.Deductions) == 0
}

// Add inserts a component into the map for its side. Components with an
// unknown side or a non-positive amount are dropped.
func (r Result) Add(c PayComponent) {
	if c.Amount <= 0 {
		return
	}
	switch c.Side {
	case SideCredit:
		r.Earnings[c.Name] = c.Amount
	case SideDebit:
		r.Deductions[c.Name] = c.Amount
	}
}

// TotalCredits returns the sum of all earnings.
func (r Result) TotalCredits() float64 {
	var sum float64
	for _, v := range r.Earnings {
		sum += v
	}
	return sum
}

// TotalDebits returns the sum of all deductions.
func (r Result) TotalDebits() float64 {
	var sum float64
	for _, v := range r.Deductions {
		sum += v
	}
	return sum
}
