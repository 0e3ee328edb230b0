package pcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyExactVocabulary(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, ClassCredit, c.Classify("BASIC PAY"))
	assert.Equal(t, ClassCredit, c.Classify("msp"))
	assert.Equal(t, ClassCredit, c.Classify("DA"))
	assert.Equal(t, ClassDebit, c.Classify("DSOPF SUBN"))
	assert.Equal(t, ClassDebit, c.Classify("AGIF"))
	assert.Equal(t, ClassDebit, c.Classify("Incm Tax"))
}

// A code carrying both a deduction and an earning keyword must land on the
// deductions side: deduction substrings are checked first, always.
func TestClassifyDeductionPrecedence(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, ClassDebit, c.Classify("TAXPAY"))
	assert.Equal(t, ClassDebit, c.Classify("PAY RECOVERY"))
	assert.Equal(t, ClassDebit, c.Classify("LICENCE FEE PAY"))
}

func TestClassifyKeywords(t *testing.T) {
	c := NewClassifier()

	assert.Equal(t, ClassCredit, c.Classify("SPECIAL DUTY ALLOWANCE"))
	assert.Equal(t, ClassDebit, c.Classify("BICYCLE ADV"))
	assert.Equal(t, ClassUnknown, c.Classify("XYZQ"))
	assert.Equal(t, ClassUnknown, c.Classify(""))
}

func TestClassifyWithAmountMagnitude(t *testing.T) {
	c := NewClassifier()

	// Unrecognized codes fall back to amount size.
	assert.Equal(t, ClassCredit, c.ClassifyWithAmount("XYZQ", 5000))
	assert.Equal(t, ClassDebit, c.ClassifyWithAmount("XYZQ", 500))
	assert.Equal(t, ClassUnknown, c.ClassifyWithAmount("XYZQ", 50))

	// Vocabulary always beats magnitude.
	assert.Equal(t, ClassDebit, c.ClassifyWithAmount("AGIF", 50000))
}
