package pcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestReconciler() *Reconciler {
	return NewReconciler(NewAmountParser(false))
}

func TestReconcileAddsOtherAdjustment(t *testing.T) {
	r := newTestReconciler()

	res := NewResult()
	res.Earnings["BPAY"] = 50000

	res = r.Reconcile(res, "Gross Pay 60000")

	assert.Equal(t, 50000.0, res.Earnings["BPAY"])
	assert.Equal(t, 10000.0, res.Earnings["OTHER"])
	assert.Equal(t, 60000.0, res.TotalCredits())
}

func TestReconcileSeedsEmptyEarnings(t *testing.T) {
	r := newTestReconciler()

	res := r.Reconcile(NewResult(), "Total Credit: Rs. 2,49,622")

	assert.Equal(t, 249622.0, res.Earnings["GROSS PAY"])
}

func TestReconcileTrimsLargestComponent(t *testing.T) {
	r := newTestReconciler()

	res := NewResult()
	res.Earnings["BPAY"] = 50000
	res.Earnings["DA"] = 20000

	res = r.Reconcile(res, "Gross Pay 65000")

	// Sum exceeded the stated total by 5000; the largest component absorbs it.
	assert.Equal(t, 45000.0, res.Earnings["BPAY"])
	assert.Equal(t, 20000.0, res.Earnings["DA"])
	assert.Equal(t, 65000.0, res.TotalCredits())
}

func TestReconcileWithinTolerance(t *testing.T) {
	r := newTestReconciler()

	res := NewResult()
	res.Earnings["BPAY"] = 59999.5

	res = r.Reconcile(res, "Gross Pay 60000")

	assert.Len(t, res.Earnings, 1)
	assert.Equal(t, 59999.5, res.Earnings["BPAY"])
}

func TestReconcileDebitSide(t *testing.T) {
	r := newTestReconciler()

	res := NewResult()
	res.Deductions["AGIF"] = 10000

	res = r.Reconcile(res, "Total Debit 12500")

	assert.Equal(t, 2500.0, res.Deductions["OTHER"])
	assert.Equal(t, 12500.0, res.TotalDebits())
}

func TestReconcileSeedsEmptyDeductions(t *testing.T) {
	r := newTestReconciler()

	res := r.Reconcile(NewResult(), "Total Deductions: 1,09,971")

	// The debit-side seed is named for what it is, never GROSS PAY.
	assert.Equal(t, 109971.0, res.Deductions["TOTAL DEDUCTIONS"])
	assert.NotContains(t, res.Deductions, "GROSS PAY")
}

func TestReconcileNetRemittanceSeedsGross(t *testing.T) {
	r := newTestReconciler()

	res := NewResult()
	res.Deductions["DSOPF Subn"] = 40000
	res.Deductions["AGIF"] = 10000

	res = r.Reconcile(res, "Net Remittance: 1,36,919")

	assert.Equal(t, 186919.0, res.Earnings["GROSS PAY"])
}

func TestReconcileNoTotalsNoChange(t *testing.T) {
	r := newTestReconciler()

	res := NewResult()
	res.Earnings["BPAY"] = 50000

	res = r.Reconcile(res, "no totals anywhere in this text")

	assert.Len(t, res.Earnings, 1)
	assert.Empty(t, res.Deductions)
}
