package pcda

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func frag(text string, x, y, w, h float64) TextFragment {
	return TextFragment{Text: text, Box: Rect{X: x, Y: y, Width: w, Height: h}}
}

// pcdaFragments lays out the classic 4-column slip in PDF coordinates (Y
// grows upward, so the header row has the largest Y).
func pcdaFragments() []TextFragment {
	return []TextFragment{
		frag("CREDIT", 110, 700, 40, 10),
		frag("DEBIT", 310, 700, 40, 10),
		frag("Basic Pay", 10, 680, 60, 10),
		frag("136400", 110, 680, 40, 10),
		frag("DSOPF Subn", 210, 680, 70, 10),
		frag("40000", 310, 680, 40, 10),
		frag("DA", 10, 660, 20, 10),
		frag("57722", 110, 660, 40, 10),
		frag("AGIF", 210, 660, 40, 10),
		frag("10000", 310, 660, 40, 10),
	}
}

func TestDetectGridFourColumns(t *testing.T) {
	a := NewSpatialAnalyzer(NewClassifier())

	grid := a.DetectGrid(pcdaFragments())

	assert.NotNil(t, grid)
	assert.Equal(t, 3, grid.Rows())
	assert.Equal(t, 4, grid.Cols())
	assert.Equal(t, 0, grid.HeaderRow)
}

func TestDetectGridRejectsSparseInput(t *testing.T) {
	a := NewSpatialAnalyzer(NewClassifier())

	assert.Nil(t, a.DetectGrid(nil))
	assert.Nil(t, a.DetectGrid([]TextFragment{frag("Basic Pay", 0, 0, 50, 10)}))

	// One row is not a table.
	assert.Nil(t, a.DetectGrid([]TextFragment{
		frag("Basic Pay", 10, 700, 60, 10),
		frag("136400", 110, 700, 40, 10),
		frag("DSOPF Subn", 210, 700, 70, 10),
		frag("40000", 310, 700, 40, 10),
	}))
}

func TestDetectGridRejectsNonPayslipTable(t *testing.T) {
	a := NewSpatialAnalyzer(NewClassifier())

	// A well-formed grid without pay-component vocabulary is some other
	// table and must defer to the fallback chain.
	assert.Nil(t, a.DetectGrid([]TextFragment{
		frag("Name", 10, 700, 40, 10),
		frag("Phone", 110, 700, 40, 10),
		frag("Alice", 10, 680, 40, 10),
		frag("12345", 110, 680, 40, 10),
	}))
}

func TestAssociateMergesCellFragments(t *testing.T) {
	a := NewSpatialAnalyzer(NewClassifier())

	frags := append(pcdaFragments(),
		// A description split into two fragments within one cell.
		frag("Subn", 44, 640, 30, 10),
		frag("DSOPF", 10, 640, 30, 10),
		frag("40000", 110, 640, 40, 10),
		frag("Educ Cess", 210, 640, 60, 10),
		frag("1830", 310, 640, 30, 10),
	)

	grid := a.DetectGrid(frags)
	assert.NotNil(t, grid)
	cells := a.Associate(frags, grid)

	assert.Equal(t, "DSOPF Subn", cells[3][0].Text)
	assert.Equal(t, "Educ Cess", cells[3][2].Text)
}

func TestIsPCDALayout(t *testing.T) {
	a := NewSpatialAnalyzer(NewClassifier())

	frags := pcdaFragments()
	grid := a.DetectGrid(frags)
	assert.NotNil(t, grid)
	cells := a.Associate(frags, grid)

	assert.True(t, a.IsPCDALayout(cells, grid))
}

func TestIsPCDALayoutWithoutHeader(t *testing.T) {
	a := NewSpatialAnalyzer(NewClassifier())

	// No header row: vocabulary in columns 0 and 2 still confirms.
	frags := pcdaFragments()[2:]
	grid := a.DetectGrid(frags)
	assert.NotNil(t, grid)
	assert.Equal(t, -1, grid.HeaderRow)

	cells := a.Associate(frags, grid)
	assert.True(t, a.IsPCDALayout(cells, grid))
}

func TestIsPCDALayoutRejectsTwoColumns(t *testing.T) {
	a := NewSpatialAnalyzer(NewClassifier())

	frags := []TextFragment{
		frag("Basic Pay", 10, 700, 60, 10),
		frag("136400", 110, 700, 40, 10),
		frag("AGIF", 10, 680, 40, 10),
		frag("10000", 110, 680, 40, 10),
	}
	grid := a.DetectGrid(frags)
	assert.NotNil(t, grid)
	cells := a.Associate(frags, grid)

	assert.False(t, a.IsPCDALayout(cells, grid))
}
