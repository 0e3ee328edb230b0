package pcda

// This file is data, not code: the code vocabularies, keyword lists, token
// patterns and stop words accumulated from real PCDA payslip samples across
// the known layout generations. New payslip quirks are added here rather
// than as new conditionals in the parsers.

// Calibration constants. These thresholds are empirically tuned against real
// documents, not derived from any principle; changing them needs a labeled
// regression corpus.
const (
	// amountFloor separates amount tokens from small numerals that belong to
	// descriptions ("Part II", "HRA 3" etc).
	amountFloor = 100.0

	// defaultMaxPlausibleAmount discards amounts that indicate token
	// misalignment rather than real pay figures.
	defaultMaxPlausibleAmount = 10_000_000.0

	// creditMagnitudeFloor and debitMagnitudeFloor drive the last-resort
	// classification of unrecognized codes by amount size.
	creditMagnitudeFloor = 1000.0
	debitMagnitudeFloor  = 100.0
)

// institutionMarkers make a document a military payslip on their own.
var institutionMarkers = []string{
	"PCDA",
	"PRINCIPAL CONTROLLER OF DEFENCE ACCOUNTS",
	"DEFENCE ACCOUNTS DEPARTMENT",
}

// militaryTerms count toward applicability; three or more hits qualify.
var militaryTerms = []string{
	"RANK",
	"SERVICE NO",
	"AFPPF",
	"ARMY",
	"NAVY",
	"AIR FORCE",
	"BATTALION",
	"REGIMENT",
	"CORPS",
	"PAY CODE",
	"DEFENCE",
}

// creditCodes is the frozen exact-match vocabulary for the earnings side.
var creditCodes = map[string]bool{
	"PAY":               true,
	"BPAY":              true,
	"BASIC PAY":         true,
	"GRADE PAY":         true,
	"DA":                true,
	"MSP":               true,
	"MIL SERVICE PAY":   true,
	"HRA":               true,
	"CEA":               true,
	"NPA":               true,
	"TPT":               true,
	"TPTA":              true,
	"TPTADA":            true,
	"TPT ALLCE":         true,
	"X PAY":             true,
	"X GROUP PAY":       true,
	"CLASS PAY":         true,
	"FLYING PAY":        true,
	"SUBMARINE PAY":     true,
	"PARA PAY":          true,
	"COMMANDO PAY":      true,
	"QUAL PAY":          true,
	"TECH PAY":          true,
	"GOOD SERVICE PAY":  true,
	"DRESS ALLCE":       true,
	"RATION ALLCE":      true,
	"KIT MAINT ALLCE":   true,
	"HIGH ALT ALLCE":    true,
	"SIACHEN ALLCE":     true,
	"FIELD AREA ALLCE":  true,
	"MOD FD AREA ALLCE": true,
	"CI OPS ALLCE":      true,
	"SPL DUTY ALLCE":    true,
	"WASHING ALLCE":     true,
	"LRA":               true,
	"ARR-BPAY":          true,
	"ARR-DA":            true,
	"ARR-MSP":           true,
	"ARR-HRA":           true,
	"A/O PAY":           true,
}

// debitCodes is the frozen exact-match vocabulary for the deductions side.
var debitCodes = map[string]bool{
	"DSOP":            true,
	"DSOPF":           true,
	"DSOP FUND":       true,
	"DSOPF SUBN":      true,
	"AGIF":            true,
	"AFPP":            true,
	"AFPPF":           true,
	"AFPPF SUBN":      true,
	"ITAX":            true,
	"I TAX":           true,
	"INCM TAX":        true,
	"INCOME TAX":      true,
	"EDUC CESS":       true,
	"E CESS":          true,
	"CESS":            true,
	"SURCHARGE":       true,
	"CGHS":            true,
	"CGEIS":           true,
	"AFMSD":           true,
	"AOBF":            true,
	"AOCBF":           true,
	"AWWA":            true,
	"ACWF":            true,
	"NGIF":            true,
	"NWWA":            true,
	"AFWWA":           true,
	"PLI":             true,
	"LIC":             true,
	"LIC FEE":         true,
	"L FEE":           true,
	"LF":              true,
	"FUR":             true,
	"FURN":            true,
	"WATER":           true,
	"ELEC":            true,
	"ELECT":           true,
	"ELKT":            true,
	"R/O":             true,
	"RO DEMAND":       true,
	"HBA":             true,
	"PCA":             true,
	"MCA":             true,
	"LOAN":            true,
	"ADVANCE":         true,
	"MESS":            true,
	"CSD":             true,
	"NGO CLUB":        true,
	"BARRACK DAMAGES": true,
}

// debitKeywords are substring heuristics, checked BEFORE creditKeywords: a
// compound token carrying both a deduction and an earning keyword (say
// "TAXPAY") must land on the deductions side. Do not reorder.
var debitKeywords = []string{
	"TAX",
	"CESS",
	"FUND",
	"FEE",
	"RECOVERY",
	"LOAN",
	"ADV",
	"SUBN",
	"SUBSCRIPTION",
	"INSURANCE",
	"DSOP",
	"AGIF",
	"RENT",
	"WATER",
	"ELEC",
	"DEMAND",
	"MESS",
	"CLUB",
	"CHARGES",
	"LICENCE",
	"BARRACK",
}

// creditKeywords are substring heuristics for the earnings side, applied
// only after every debit keyword has missed.
var creditKeywords = []string{
	"PAY",
	"ALLCE",
	"ALLOWANCE",
	"SALARY",
	"WAGES",
	"ARREAR",
	"ARR-",
	"BONUS",
	"RELIEF",
	"GRANT",
	"STIPEND",
	"DA",
	"MSP",
	"HRA",
}

// noiseMarkers flag a line as header/footer rather than component data.
// GROSS and NET keep stated-total lines out of the component maps; they are
// picked up separately by reconciliation.
var noiseMarkers = []string{
	"DESCRIPTION",
	"AMOUNT",
	"TOTAL",
	"REMITTANCE",
	"GROSS",
	"NET",
}

// debitStopWords end debit-side amount collection so voucher references and
// Part II order trails are not swallowed as amounts.
var debitStopWords = map[string]bool{
	"CR":     true,
	"DT.":    true,
	"DT":     true,
	"AMT":    true,
	"PART":   true,
	"II":     true,
	"ORDERS": true,
}

// tokenPattern maps an uppercased token sequence to the token counts of the
// canonical names it represents. A pattern with several name lengths stands
// for several codes sharing one line of amounts ("DA MSP" is two components,
// one amount each). Emitted names keep the source casing of the matched
// tokens; matching is longest-sequence-first.
type tokenPattern struct {
	tokens   []string
	nameLens []int
}

var condensedPatterns = []tokenPattern{
	// Feb-2023 tabulated header row collapses into this exact run.
	{tokens: []string{"BASIC", "PAY", "DA", "MSP"}, nameLens: []int{2, 1, 1}},
	{tokens: []string{"BPAY", "DA", "MSP"}, nameLens: []int{1, 1, 1}},
	{tokens: []string{"MIL", "SERVICE", "PAY"}, nameLens: []int{3}},
	{tokens: []string{"MOD", "FD", "AREA", "ALLCE"}, nameLens: []int{4}},
	{tokens: []string{"HIGH", "ALT", "ALLCE"}, nameLens: []int{3}},
	{tokens: []string{"FIELD", "AREA", "ALLCE"}, nameLens: []int{3}},
	{tokens: []string{"KIT", "MAINT", "ALLCE"}, nameLens: []int{3}},
	{tokens: []string{"SPL", "DUTY", "ALLCE"}, nameLens: []int{3}},
	{tokens: []string{"CI", "OPS", "ALLCE"}, nameLens: []int{3}},
	{tokens: []string{"GOOD", "SERVICE", "PAY"}, nameLens: []int{3}},
	{tokens: []string{"DA", "MSP"}, nameLens: []int{1, 1}},
	{tokens: []string{"BASIC", "PAY"}, nameLens: []int{2}},
	{tokens: []string{"GRADE", "PAY"}, nameLens: []int{2}},
	{tokens: []string{"X", "PAY"}, nameLens: []int{2}},
	{tokens: []string{"FLYING", "PAY"}, nameLens: []int{2}},
	{tokens: []string{"PARA", "PAY"}, nameLens: []int{2}},
	{tokens: []string{"TECH", "PAY"}, nameLens: []int{2}},
	{tokens: []string{"DRESS", "ALLCE"}, nameLens: []int{2}},
	{tokens: []string{"RATION", "ALLCE"}, nameLens: []int{2}},
	{tokens: []string{"SIACHEN", "ALLCE"}, nameLens: []int{2}},
	{tokens: []string{"WASHING", "ALLCE"}, nameLens: []int{2}},
	{tokens: []string{"TPT", "ALLCE"}, nameLens: []int{2}},
	{tokens: []string{"DSOPF", "SUBN"}, nameLens: []int{2}},
	{tokens: []string{"DSOP", "FUND"}, nameLens: []int{2}},
	{tokens: []string{"AFPPF", "SUBN"}, nameLens: []int{2}},
	{tokens: []string{"INCM", "TAX"}, nameLens: []int{2}},
	{tokens: []string{"INCOME", "TAX"}, nameLens: []int{2}},
	{tokens: []string{"I", "TAX"}, nameLens: []int{2}},
	{tokens: []string{"EDUC", "CESS"}, nameLens: []int{2}},
	{tokens: []string{"E", "CESS"}, nameLens: []int{2}},
	{tokens: []string{"L", "FEE"}, nameLens: []int{2}},
	{tokens: []string{"LIC", "FEE"}, nameLens: []int{2}},
	{tokens: []string{"RO", "DEMAND"}, nameLens: []int{2}},
	{tokens: []string{"NGO", "CLUB"}, nameLens: []int{2}},
	{tokens: []string{"BARRACK", "DAMAGES"}, nameLens: []int{2}},
	{tokens: []string{"DA"}, nameLens: []int{1}},
	{tokens: []string{"MSP"}, nameLens: []int{1}},
	{tokens: []string{"HRA"}, nameLens: []int{1}},
	{tokens: []string{"NPA"}, nameLens: []int{1}},
	{tokens: []string{"CEA"}, nameLens: []int{1}},
	{tokens: []string{"TPTA"}, nameLens: []int{1}},
	{tokens: []string{"AGIF"}, nameLens: []int{1}},
	{tokens: []string{"DSOPF"}, nameLens: []int{1}},
	{tokens: []string{"AFPPF"}, nameLens: []int{1}},
	{tokens: []string{"CGHS"}, nameLens: []int{1}},
	{tokens: []string{"CGEIS"}, nameLens: []int{1}},
	{tokens: []string{"AWWA"}, nameLens: []int{1}},
	{tokens: []string{"ACWF"}, nameLens: []int{1}},
	{tokens: []string{"PLI"}, nameLens: []int{1}},
	{tokens: []string{"FUR"}, nameLens: []int{1}},
	{tokens: []string{"WATER"}, nameLens: []int{1}},
	{tokens: []string{"ELEC"}, nameLens: []int{1}},
	{tokens: []string{"ITAX"}, nameLens: []int{1}},
}
