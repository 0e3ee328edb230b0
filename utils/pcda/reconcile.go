package pcda

import (
	"log"
	"math"
	"regexp"
)

// reconcileTolerance is how far a calculated sum may drift from a stated
// total before an adjustment is made. Paisa rounding never exceeds one unit.
const reconcileTolerance = 1.0

// otherComponentName labels the adjustment entry inserted when a stated
// total exceeds the extracted sum.
const otherComponentName = "OTHER"

// grossPayComponentName and totalDeductionsComponentName seed an otherwise
// empty side from its stated total.
const (
	grossPayComponentName        = "GROSS PAY"
	totalDeductionsComponentName = "TOTAL DEDUCTIONS"
)

var (
	totalCreditRe   = regexp.MustCompile(`(?i)(?:total\s+credits?|gross\s+pay)\s*[:\-]?\s*(?:Rs\.?|₹|INR)?\s*([0-9][0-9,]*(?:\.\d+)?)`)
	totalDebitRe    = regexp.MustCompile(`(?i)(?:total\s+debits?|total\s+deductions?)\s*[:\-]?\s*(?:Rs\.?|₹|INR)?\s*([0-9][0-9,]*(?:\.\d+)?)`)
	netRemittanceRe = regexp.MustCompile(`(?i)net\s+remittance\s*[:\-]?\s*(?:Rs\.?|₹|INR)?\s*([0-9][0-9,]*(?:\.\d+)?)`)
)

// Reconciler cross-checks extracted component sums against explicit totals
// stated in the source text. The correction is best-effort: downstream
// consumers must treat totals as advisory, not guaranteed.
type Reconciler struct {
	amounts *AmountParser
}

// NewReconciler returns a reconciler using the given normalizer for the
// stated-total figures.
func NewReconciler(amounts *AmountParser) *Reconciler {
	return &Reconciler{amounts: amounts}
}

// Reconcile adjusts both sides of the result in place against any stated
// totals found in the text and returns the same result.
func (r *Reconciler) Reconcile(res Result, text string) Result {
	if total, ok := r.findTotal(totalCreditRe, text); ok {
		r.reconcileSide(res.Earnings, total, "credit", grossPayComponentName)
	} else if net, ok := r.findTotal(netRemittanceRe, text); ok && len(res.Earnings) == 0 && len(res.Deductions) > 0 {
		// No gross figure, but net remittance plus known deductions pins
		// down the credit side.
		res.Earnings[grossPayComponentName] = net + res.TotalDebits()
	}

	if total, ok := r.findTotal(totalDebitRe, text); ok {
		r.reconcileSide(res.Deductions, total, "debit", totalDeductionsComponentName)
	}
	return res
}

// reconcileSide applies the correction rules to one side: seed when empty,
// add an OTHER entry when the stated total exceeds the sum, trim the largest
// component when the sum exceeds the stated total.
func (r *Reconciler) reconcileSide(side map[string]float64, total float64, label, seedName string) {
	if total <= 0 {
		return
	}

	if len(side) == 0 {
		side[seedName] = total
		return
	}

	var sum float64
	for _, v := range side {
		sum += v
	}
	diff := total - sum
	if math.Abs(diff) <= reconcileTolerance {
		return
	}

	if diff > 0 {
		log.Printf("pcda: %s sum %.2f short of stated total %.2f, adding %s adjustment", label, sum, total, otherComponentName)
		side[otherComponentName] = diff
		return
	}

	// Name-ordered tie-break keeps the adjustment deterministic across runs.
	largest := ""
	for name, v := range side {
		if largest == "" || v > side[largest] || (v == side[largest] && name < largest) {
			largest = name
		}
	}
	log.Printf("pcda: %s sum %.2f exceeds stated total %.2f, trimming %q", label, sum, total, largest)
	side[largest] += diff
	if side[largest] <= 0 {
		delete(side, largest)
	}
}

func (r *Reconciler) findTotal(re *regexp.Regexp, text string) (float64, bool) {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return 0, false
	}
	v, ok := r.amounts.Parse(m[1])
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}
