package pcda

import (
	"regexp"
	"strings"
)

// Entry is one (description, amount) pair on one side of a PCDA row.
type Entry struct {
	Name   string
	Amount float64
}

// PCDARow is a semantic table row with up to one credit and one debit pair.
// Either side may be nil; a present side always carries a positive amount.
type PCDARow struct {
	Credit *Entry
	Debit  *Entry
}

// RowParser consumes the strict PCDA 4-column layout:
//
//	credit description | credit amount | debit description | debit amount
//
// It trades recall for precision: a side is accepted only when the
// description matches the side's vocabulary and the amount normalizes to a
// positive value, and rows that do not fit the contract are rejected rather
// than guessed. It is the preferred parser whenever the spatial detector
// succeeds.
type RowParser struct {
	amounts    *AmountParser
	classifier *Classifier
}

// NewRowParser returns a parser over the given normalizer and classifier.
func NewRowParser(amounts *AmountParser, classifier *Classifier) *RowParser {
	return &RowParser{amounts: amounts, classifier: classifier}
}

// ParseRow validates one 4-column row. It returns nil when fewer than 4
// columns are populated in a way that yields neither side, or when a
// populated description has no positive amount.
func (p *RowParser) ParseRow(cells [4]string) *PCDARow {
	row := &PCDARow{
		Credit: p.parseSide(cells[0], cells[1], SideCredit),
		Debit:  p.parseSide(cells[2], cells[3], SideDebit),
	}
	if row.Credit == nil && row.Debit == nil {
		return nil
	}
	return row
}

// parseSide validates one (description, amount) column pair against the
// vocabulary of the given side.
func (p *RowParser) parseSide(desc, amount string, side Side) *Entry {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return nil
	}
	if !p.classifier.matchesVocabulary(desc, side) {
		return nil
	}
	v, ok := p.amounts.Parse(amount)
	if !ok || v <= 0 {
		return nil
	}
	return &Entry{Name: desc, Amount: v}
}

var (
	headerLineRe = regexp.MustCompile(`(?i)(CREDIT.*DEBIT|EARNINGS.*DEDUCTIONS|\bCr\.?\b.*\bDr\.?\b)`)
	footerLineRe = regexp.MustCompile(`(?i)\b(TOTAL|NET\s+PAY|GRAND\s+TOTAL|SUMMARY)\b`)
	cellSplitRe  = regexp.MustCompile(`\s{2,}|\t+`)
)

// ParseTableText is the text-mode table strategy: it bounds the table by a
// header line (CREDIT & DEBIT, EARNINGS & DEDUCTIONS, or Cr./Dr.) and a
// terminator line (TOTAL, NET PAY, GRAND TOTAL, SUMMARY, or a blank line),
// splits the bounded rows into cells on runs of whitespace, and applies the
// 4-column contract. Rows that collapse to a single description/amount pair
// are classified individually.
func (p *RowParser) ParseTableText(text string) []PayComponent {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if headerLineRe.MatchString(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var components []PayComponent
	for _, line := range lines[start+1:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || footerLineRe.MatchString(trimmed) {
			break
		}

		cells := splitCells(trimmed)
		switch {
		case len(cells) >= 4:
			row := p.ParseRow([4]string{cells[0], cells[1], cells[2], cells[3]})
			if row == nil {
				continue
			}
			if row.Credit != nil {
				components = append(components, PayComponent{Name: row.Credit.Name, Amount: row.Credit.Amount, Side: SideCredit})
			}
			if row.Debit != nil {
				components = append(components, PayComponent{Name: row.Debit.Name, Amount: row.Debit.Amount, Side: SideDebit})
			}
		case len(cells) == 2:
			v, ok := p.amounts.Parse(cells[1])
			if !ok || v <= 0 {
				continue
			}
			side := p.classifier.ClassifyWithAmount(cells[0], v).side()
			if side == SideUnknown {
				continue
			}
			components = append(components, PayComponent{Name: strings.TrimSpace(cells[0]), Amount: v, Side: side})
		}
	}
	return components
}

func splitCells(line string) []string {
	parts := cellSplitRe.Split(line, -1)
	cells := parts[:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			cells = append(cells, s)
		}
	}
	return cells
}
