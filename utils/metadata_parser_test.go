package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleSlipText = `Principal Controller of Defence Accounts (Officers)
Name: Arjun Mehta
Rank: Lt Col  Army No: IC-56789
Statement of Account for March 2023
A/C No 301002345671  PAN AFZPK7190K`

func TestParsePayslipMetadata(t *testing.T) {
	meta := ParsePayslipMetadata(sampleSlipText)

	assert.Equal(t, "Arjun Mehta", meta.Name)
	assert.Equal(t, "Lt Col", meta.Rank)
	assert.Equal(t, "IC-56789", meta.ServiceNumber)
	assert.Equal(t, "March 2023", meta.PayMonth)
	assert.Equal(t, "301002345671", meta.AccountNumber)
	assert.Equal(t, "AFZPK7190K", meta.PAN)
}

func TestExtractRankPrefersLongerRank(t *testing.T) {
	assert.Equal(t, "Major General", extractRank("Rank: Major General"))
	assert.Equal(t, "Major", extractRank("Rank: Major"))
	assert.Equal(t, "Naib Subedar", extractRank("pay statement for Naib Subedar for the month"))
	assert.Equal(t, "", extractRank("no military words here"))
}

func TestExtractServiceNumber(t *testing.T) {
	assert.Equal(t, "JC-123456", extractServiceNumber("Service No: JC 123456"))
	assert.Equal(t, "IC-56789", extractServiceNumber("officer IC-56789 of the corps"))
	assert.Equal(t, "", extractServiceNumber("nothing that looks right"))
}

func TestExtractPayMonthFormats(t *testing.T) {
	assert.Equal(t, "February 2023", extractPayMonth("Pay for February 2023"))
	assert.Equal(t, "Feb", extractPayMonth("Pay slip Feb"))
	assert.Equal(t, "02/2023", extractPayMonth("Period 02/2023"))
	assert.Equal(t, "", extractPayMonth("no date at all"))
}

func TestExtractAccountNumberCascade(t *testing.T) {
	assert.Equal(t, "123456789012", extractAccountNumber("Account No: 123456789012"))
	assert.Equal(t, "6323", extractAccountNumber("remitted to XXXXXXXX6323"))
	assert.Equal(t, "9876543210", extractAccountNumber("bank 9876543210 branch"))
	assert.Equal(t, "", extractAccountNumber("Cust ID 123456789 only"))
}

func TestExtractPAN(t *testing.T) {
	assert.Equal(t, "AFZPK7190K", extractPAN("pan afzpk7190k stated"))
	assert.Equal(t, "", extractPAN("AFZPK719K is one digit short"))
}

func TestExtractNameStopsAtLabelNoise(t *testing.T) {
	assert.Equal(t, "Arjun Mehta", extractName("Name: Arjun Mehta Rank: Major"))
	assert.Equal(t, "", extractName("no labels present"))
}

func TestCompareNames(t *testing.T) {
	assert.True(t, CompareNames("Arjun Mehta", "ARJUN MEHTA"))
	assert.True(t, CompareNames("Arjun Mehta", "Arjun K Mehta"))
	assert.False(t, CompareNames("Arjun Mehta", "Rohan Gupta"))
	assert.False(t, CompareNames("", "Arjun Mehta"))
}
