package pcda

import (
	"log"
	"regexp"
	"strings"
)

// Options configure an Extractor. The zero value gives current behavior.
type Options struct {
	// LegacyAmountMode selects the historical comma-strip numeric parsing.
	LegacyAmountMode bool
	// MaxPlausibleAmount overrides the misalignment bound; 0 means default.
	MaxPlausibleAmount float64
}

// Extractor runs the strategy fallback chain over one payslip document.
// All sub-services are constructed explicitly and hold only static lookup
// tables, so a single Extractor is safe for concurrent use.
type Extractor struct {
	amounts    *AmountParser
	formats    *FormatDetector
	classifier *Classifier
	spatial    *SpatialAnalyzer
	rows       *RowParser
	condensed  *CondensedParser
	reconciler *Reconciler
	strategies []strategy
}

// strategy is one extraction attempt. Spatial strategies are skipped when no
// fragments were supplied; each strategy either produces components or
// defers to the next; there is no retry and no merging across strategies.
type strategy struct {
	name    string
	spatial bool
	run     func(text string, fragments []TextFragment) []PayComponent
}

// NewExtractor builds an extractor with default sub-services.
func NewExtractor(opts Options) *Extractor {
	amounts := NewAmountParser(opts.LegacyAmountMode)
	classifier := NewClassifier()

	e := &Extractor{
		amounts:    amounts,
		formats:    NewFormatDetector(),
		classifier: classifier,
		spatial:    NewSpatialAnalyzer(classifier),
		rows:       NewRowParser(amounts, classifier),
		condensed:  NewCondensedParser(amounts, classifier, opts.MaxPlausibleAmount),
		reconciler: NewReconciler(amounts),
	}

	e.strategies = []strategy{
		{name: "pcda-spatial", spatial: true, run: e.runPCDASpatial},
		{name: "generic-spatial", spatial: true, run: e.runGenericSpatial},
		{name: "text-table", run: e.runTextTable},
		{name: "condensed", run: e.runCondensed},
		{name: "line-regex", run: e.runLineRegex},
	}
	return e
}

// Extract reconstructs the earnings and deductions maps for one document.
// Non-military text short-circuits to an empty result without touching any
// parsing strategy. A document no strategy can read also yields empty maps:
// absence of data is an expected outcome for OCR-derived text, never an
// error.
func (e *Extractor) Extract(text string, fragments []TextFragment) Result {
	res := NewResult()

	if !e.formats.IsMilitaryPayslip(text) {
		return res
	}

	era := e.formats.DetectEra(text)

	for _, s := range e.orderFor(era) {
		if s.spatial && len(fragments) == 0 {
			continue
		}
		components := s.run(text, fragments)
		if len(components) == 0 {
			continue
		}
		log.Printf("pcda: strategy %q extracted %d components (era %s)", s.name, len(components), era)
		for _, c := range components {
			res.Add(c)
		}
		if !res.Empty() {
			break
		}
	}

	return e.reconciler.Reconcile(res, text)
}

// orderFor keeps the fixed chain but promotes the era-preferred text
// strategy ahead of its peers. Spatial strategies always stay first: a
// reliable grid beats any text heuristic.
func (e *Extractor) orderFor(era Era) []strategy {
	preferred := ""
	switch era {
	case EraTabulatedFeb2023, EraMultiLineOct2023:
		preferred = "condensed"
	case EraStructured, EraPostNov2023:
		preferred = "text-table"
	case EraTransactionLog:
		preferred = "line-regex"
	}
	if preferred == "" {
		return e.strategies
	}

	ordered := make([]strategy, 0, len(e.strategies))
	var deferred []strategy
	for _, s := range e.strategies {
		switch {
		case s.spatial || s.name == preferred:
			ordered = append(ordered, s)
		default:
			deferred = append(deferred, s)
		}
	}
	return append(ordered, deferred...)
}

// runPCDASpatial applies the strict 4-column row contract to a detected
// PCDA-shaped grid.
func (e *Extractor) runPCDASpatial(_ string, fragments []TextFragment) []PayComponent {
	grid := e.spatial.DetectGrid(fragments)
	if grid == nil {
		return nil
	}
	cells := e.spatial.Associate(fragments, grid)
	if !e.spatial.IsPCDALayout(cells, grid) {
		return nil
	}

	var components []PayComponent
	for r, row := range cells {
		if r == grid.HeaderRow {
			continue
		}
		parsed := e.rows.ParseRow([4]string{row[0].Text, row[1].Text, row[2].Text, row[3].Text})
		if parsed == nil {
			continue
		}
		if parsed.Credit != nil {
			components = append(components, PayComponent{Name: parsed.Credit.Name, Amount: parsed.Credit.Amount, Side: SideCredit})
		}
		if parsed.Debit != nil {
			components = append(components, PayComponent{Name: parsed.Debit.Name, Amount: parsed.Debit.Amount, Side: SideDebit})
		}
	}
	return components
}

// runGenericSpatial walks any detected grid row by row, pairing each
// description cell with the first numeric cell to its right.
func (e *Extractor) runGenericSpatial(_ string, fragments []TextFragment) []PayComponent {
	grid := e.spatial.DetectGrid(fragments)
	if grid == nil {
		return nil
	}
	cells := e.spatial.Associate(fragments, grid)

	var components []PayComponent
	for r, row := range cells {
		if r == grid.HeaderRow {
			continue
		}
		pendingDesc := ""
		for _, cell := range row {
			text := strings.TrimSpace(cell.Text)
			if text == "" {
				continue
			}
			if v, ok := e.amounts.Parse(text); ok {
				if pendingDesc != "" && v > 0 {
					side := e.classifier.ClassifyWithAmount(pendingDesc, v).side()
					if side != SideUnknown {
						components = append(components, PayComponent{Name: pendingDesc, Amount: v, Side: side})
					}
				}
				pendingDesc = ""
				continue
			}
			pendingDesc = text
		}
	}
	return components
}

// runTextTable delegates to the header/footer-bounded table parser.
func (e *Extractor) runTextTable(text string, _ []TextFragment) []PayComponent {
	return e.rows.ParseTableText(text)
}

// runCondensed delegates to the clustering parser.
func (e *Extractor) runCondensed(text string, _ []TextFragment) []PayComponent {
	return e.condensed.ParseText(text)
}

var lineCodeAmountRe = regexp.MustCompile(`^\s*([A-Za-z][A-Za-z0-9 ./&()'-]{1,40}?)\s*[:\-]?\s+(?:Rs\.?|₹|INR)?\s*([0-9][0-9,]*(?:\.\d{1,2})?)(?:\s*/-)?\s*$`)

// runLineRegex is the last resort: one code and one amount per line.
func (e *Extractor) runLineRegex(text string, _ []TextFragment) []PayComponent {
	var components []PayComponent
	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		noisy := false
		for _, marker := range noiseMarkers {
			if strings.Contains(upper, marker) {
				noisy = true
				break
			}
		}
		if noisy {
			continue
		}

		m := lineCodeAmountRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		v, ok := e.amounts.Parse(m[2])
		if !ok || v <= 0 {
			continue
		}
		name := strings.TrimSpace(m[1])
		side := e.classifier.ClassifyWithAmount(name, v).side()
		if side == SideUnknown {
			continue
		}
		components = append(components, PayComponent{Name: name, Amount: v, Side: side})
	}
	return components
}
