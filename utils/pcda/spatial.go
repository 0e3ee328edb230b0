package pcda

import (
	"math"
	"sort"
	"strings"
)

// Band is a half-open interval of page coordinates covered by one grid row
// or column.
type Band struct {
	Lo float64
	Hi float64
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v float64) bool { return v >= b.Lo && v < b.Hi }

// TableGrid is a row/column structure inferred from fragment positions,
// independent of reading order. HeaderRow is -1 when no header row was
// recognized.
type TableGrid struct {
	RowBands  []Band
	ColBands  []Band
	HeaderRow int
}

// Rows returns the number of grid rows.
func (g *TableGrid) Rows() int { return len(g.RowBands) }

// Cols returns the number of grid columns.
func (g *TableGrid) Cols() int { return len(g.ColBands) }

// Cell is the merged text of all fragments that fall into one grid cell.
type Cell struct {
	Row  int
	Col  int
	Text string
}

// SpatialAnalyzer infers table structure from fragment bounding boxes and
// assigns fragments to grid cells. Rows are fragments whose vertical centers
// fall within the same tolerance band; columns are clusters of left edges.
type SpatialAnalyzer struct {
	rowTolerance float64
	colTolerance float64
	classifier   *Classifier
}

// NewSpatialAnalyzer returns an analyzer with default tolerances. The row
// tolerance adapts upward to the median fragment height so that renderer
// units do not matter.
func NewSpatialAnalyzer(classifier *Classifier) *SpatialAnalyzer {
	return &SpatialAnalyzer{
		rowTolerance: 3.0,
		colTolerance: 12.0,
		classifier:   classifier,
	}
}

// DetectGrid infers a grid from fragment positions. It returns nil, which
// triggers the next strategy in the chain, when fewer than 2 rows or 2
// columns emerge or when no fragment shows pay-component vocabulary.
func (a *SpatialAnalyzer) DetectGrid(fragments []TextFragment) *TableGrid {
	if len(fragments) < 4 {
		return nil
	}

	rowTol := a.rowTolerance
	if h := medianHeight(fragments); h*0.6 > rowTol {
		rowTol = h * 0.6
	}

	rowBands := clusterCenters(verticalCenters(fragments), rowTol)
	colBands := clusterLeftEdges(fragments, a.colTolerance)

	if len(rowBands) < 2 || len(colBands) < 2 {
		return nil
	}

	// At least one fragment must look like a pay component, otherwise this
	// is some other table (contact blocks, transaction logs, addresses).
	hasVocab := false
	for _, f := range fragments {
		if a.classifier.matchesVocabulary(f.Text, SideCredit) ||
			a.classifier.matchesVocabulary(f.Text, SideDebit) {
			hasVocab = true
			break
		}
	}
	if !hasVocab {
		return nil
	}

	grid := &TableGrid{RowBands: rowBands, ColBands: colBands, HeaderRow: -1}
	grid.HeaderRow = a.findHeaderRow(fragments, grid)
	return grid
}

// Associate assigns every fragment to the cell containing its center,
// concatenating co-located fragments in left-to-right order. The result is
// a dense Rows x Cols matrix; cells no fragment hit stay empty.
func (a *SpatialAnalyzer) Associate(fragments []TextFragment, grid *TableGrid) [][]Cell {
	cells := make([][]Cell, grid.Rows())
	for r := range cells {
		cells[r] = make([]Cell, grid.Cols())
		for c := range cells[r] {
			cells[r][c] = Cell{Row: r, Col: c}
		}
	}

	ordered := make([]TextFragment, len(fragments))
	copy(ordered, fragments)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Box.X < ordered[j].Box.X
	})

	for _, f := range ordered {
		row := findBand(grid.RowBands, f.Box.CenterY())
		col := findBand(grid.ColBands, f.Box.CenterX())
		if row < 0 || col < 0 {
			continue
		}
		cell := &cells[row][col]
		if cell.Text != "" {
			cell.Text += " "
		}
		cell.Text += strings.TrimSpace(f.Text)
	}

	return cells
}

// IsPCDALayout reports whether an associated grid is the PCDA 4-column
// layout: exactly four columns, confirmed either by a CREDIT/DEBIT header
// row or by code vocabulary in the description columns (0 and 2).
func (a *SpatialAnalyzer) IsPCDALayout(cells [][]Cell, grid *TableGrid) bool {
	if grid.Cols() != 4 {
		return false
	}
	if grid.HeaderRow >= 0 {
		return true
	}

	creditSeen, debitSeen := false, false
	for _, row := range cells {
		if a.classifier.matchesVocabulary(row[0].Text, SideCredit) {
			creditSeen = true
		}
		if a.classifier.matchesVocabulary(row[2].Text, SideDebit) {
			debitSeen = true
		}
	}
	return creditSeen && debitSeen
}

// findHeaderRow returns the index of the first row band whose joined text
// carries both side headers, or -1.
func (a *SpatialAnalyzer) findHeaderRow(fragments []TextFragment, grid *TableGrid) int {
	rowText := make([]string, grid.Rows())
	for _, f := range fragments {
		if r := findBand(grid.RowBands, f.Box.CenterY()); r >= 0 {
			rowText[r] += " " + strings.ToUpper(f.Text)
		}
	}
	for i, t := range rowText {
		if (strings.Contains(t, "CREDIT") && strings.Contains(t, "DEBIT")) ||
			(strings.Contains(t, "EARNINGS") && strings.Contains(t, "DEDUCTIONS")) {
			return i
		}
	}
	return -1
}

func findBand(bands []Band, v float64) int {
	for i, b := range bands {
		if b.Contains(v) {
			return i
		}
	}
	return -1
}

func verticalCenters(fragments []TextFragment) []float64 {
	vs := make([]float64, 0, len(fragments))
	for _, f := range fragments {
		vs = append(vs, f.Box.CenterY())
	}
	return vs
}

// clusterCenters groups sorted values whose gaps stay within the tolerance,
// returning one band per cluster. Bands come out top-first: PDF coordinates
// grow upward, so larger Y values are earlier rows.
func clusterCenters(values []float64, tolerance float64) []Band {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var bands []Band
	lo, hi := sorted[0], sorted[0]
	for _, v := range sorted[1:] {
		if hi-v > tolerance && lo-v > tolerance {
			bands = append(bands, Band{Lo: hi - tolerance, Hi: lo + tolerance})
			lo, hi = v, v
			continue
		}
		if v < hi {
			hi = v
		}
	}
	bands = append(bands, Band{Lo: hi - tolerance, Hi: lo + tolerance})
	return bands
}

// clusterLeftEdges clusters fragment left edges into column bands. Each band
// spans from its cluster's left edge to the start of the next cluster, so a
// fragment's center lands in the column it starts in. A column boundary
// needs support from at least two fragments; lone edges are continuation
// fragments inside a cell, not column starts.
func clusterLeftEdges(fragments []TextFragment, tolerance float64) []Band {
	xs := make([]float64, 0, len(fragments))
	for _, f := range fragments {
		xs = append(xs, f.Box.X)
	}
	sort.Float64s(xs)

	var starts []float64
	var counts []int
	for _, x := range xs {
		if len(starts) == 0 || x-starts[len(starts)-1] > tolerance {
			starts = append(starts, x)
			counts = append(counts, 1)
			continue
		}
		counts[len(counts)-1]++
	}

	supported := starts[:0]
	for i, s := range starts {
		if counts[i] >= 2 {
			supported = append(supported, s)
		}
	}
	if len(supported) >= 2 {
		starts = supported
	}
	if len(starts) == 0 {
		return nil
	}

	bands := make([]Band, len(starts))
	for i, s := range starts {
		hi := math.Inf(1)
		if i+1 < len(starts) {
			hi = starts[i+1]
		}
		bands[i] = Band{Lo: s - tolerance, Hi: hi}
	}
	return bands
}

func medianHeight(fragments []TextFragment) float64 {
	hs := make([]float64, 0, len(fragments))
	for _, f := range fragments {
		if f.Box.Height > 0 {
			hs = append(hs, f.Box.Height)
		}
	}
	if len(hs) == 0 {
		return 0
	}
	sort.Float64s(hs)
	return hs[len(hs)/2]
}
