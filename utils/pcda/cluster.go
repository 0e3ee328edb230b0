package pcda

import (
	"regexp"
	"strings"
)

// CondensedParser handles the formats where PDF text extraction has lost the
// column breaks: a single run-on line carrying all description tokens
// followed by all amount tokens ("Basic Pay DA MSP 136400 57722 15500").
//
// It locates known description-token sequences, locates the amount run that
// follows, and aligns the two by count, using the multi-token pattern
// dictionary to disambiguate runs where descriptions outnumber amounts or
// vice versa. The whole thing is heuristic; every ambiguous split resolves
// to strict positional 1:1 pairing so the output is deterministic.
type CondensedParser struct {
	amounts    *AmountParser
	classifier *Classifier
	maxAmount  float64
}

// NewCondensedParser returns a parser with the given plausibility bound;
// maxAmount <= 0 selects the default.
func NewCondensedParser(amounts *AmountParser, classifier *Classifier, maxAmount float64) *CondensedParser {
	if maxAmount <= 0 {
		maxAmount = defaultMaxPlausibleAmount
	}
	return &CondensedParser{amounts: amounts, classifier: classifier, maxAmount: maxAmount}
}

var (
	dateTokenRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	yearTokenRe = regexp.MustCompile(`^(19|20)\d{2}$`)
)

var monthNames = map[string]bool{
	"JANUARY": true, "FEBRUARY": true, "MARCH": true, "APRIL": true,
	"MAY": true, "JUNE": true, "JULY": true, "AUGUST": true,
	"SEPTEMBER": true, "OCTOBER": true, "NOVEMBER": true, "DECEMBER": true,
	"JAN": true, "FEB": true, "MAR": true, "APR": true, "JUN": true,
	"JUL": true, "AUG": true, "SEP": true, "OCT": true, "NOV": true,
	"DEC": true,
}

// segment is one prospective component name built from description tokens.
type segment struct {
	name        string
	fromPattern bool
}

// ParseLine extracts components from one condensed line. It returns nil for
// header/footer lines (noise markers) and for lines with no amount run.
func (p *CondensedParser) ParseLine(line string) []PayComponent {
	upper := strings.ToUpper(line)
	for _, marker := range noiseMarkers {
		if strings.Contains(upper, marker) {
			return nil
		}
	}

	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil
	}

	var components []PayComponent
	idx := 0

	// At most two description/amount runs per line: the credit side, then
	// (when present) the debit side in the remainder of the token stream.
	for run := 0; run < 2 && idx < len(tokens); run++ {
		descStart := idx
		amountStart := -1
		stopped := false

		for i := idx; i < len(tokens); i++ {
			if run > 0 && p.isStopToken(tokens[i]) {
				stopped = true
				break
			}
			if isMonthYearToken(tokens, i) {
				continue
			}
			if v, ok := p.amounts.Parse(tokens[i]); ok && v > amountFloor {
				amountStart = i
				break
			}
		}
		if stopped || amountStart < 0 {
			break
		}

		descTokens := tokens[descStart:amountStart]

		// Collect the consecutive numeric run. Stop words and date-shaped
		// tokens cut amount collection so disbursement-voucher trailers are
		// not swallowed.
		var amounts []float64
		j := amountStart
		for ; j < len(tokens); j++ {
			if p.isStopToken(tokens[j]) {
				break
			}
			v, ok := p.amounts.Parse(tokens[j])
			if !ok {
				break
			}
			amounts = append(amounts, v)
		}

		components = append(components, p.alignRun(descTokens, amounts)...)
		idx = j
	}

	if len(components) == 0 {
		return nil
	}
	return components
}

// ParseText applies the condensed parser line by line. A line holding only
// description tokens followed by a line holding only amounts (the Oct-2023
// multi-line layout splits rows that way) is joined and parsed as one.
func (p *CondensedParser) ParseText(text string) []PayComponent {
	lines := strings.Split(text, "\n")
	var components []PayComponent

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if i+1 < len(lines) && p.isDescriptionOnly(line) {
			next := strings.TrimSpace(lines[i+1])
			if p.isAmountOnly(next) {
				if parsed := p.ParseLine(line + " " + next); parsed != nil {
					components = append(components, parsed...)
					i++
					continue
				}
			}
		}

		components = append(components, p.ParseLine(line)...)
	}
	return components
}

// alignRun aligns one description-token run with one amount run and
// classifies the resulting pairs.
func (p *CondensedParser) alignRun(descTokens []string, amounts []float64) []PayComponent {
	if len(descTokens) == 0 || len(amounts) == 0 {
		return nil
	}

	segments := p.segmentDescriptions(descTokens)

	// More segments than amounts: multi-word names were split. Merge
	// adjacent non-pattern tokens pairwise until the counts meet.
	for len(segments) > len(amounts) {
		merged := false
		for i := 0; i+1 < len(segments); i++ {
			if !segments[i].fromPattern && !segments[i+1].fromPattern {
				segments[i] = segment{name: segments[i].name + " " + segments[i+1].name}
				segments = append(segments[:i+1], segments[i+2:]...)
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}

	// Remaining mismatch either way resolves by strict positional pairing;
	// trailing leftovers on either side are dropped, never guessed.
	n := len(segments)
	if len(amounts) < n {
		n = len(amounts)
	}

	var components []PayComponent
	for i := 0; i < n; i++ {
		amount := amounts[i]
		if amount <= 0 || amount > p.maxAmount {
			continue
		}
		side := p.classifier.ClassifyWithAmount(segments[i].name, amount).side()
		if side == SideUnknown {
			continue
		}
		components = append(components, PayComponent{
			Name:   segments[i].name,
			Amount: amount,
			Side:   side,
		})
	}
	return components
}

// segmentDescriptions cuts a description-token run into prospective names,
// longest dictionary sequences first. Tokens no pattern covers become
// single-token segments that the caller may merge.
func (p *CondensedParser) segmentDescriptions(tokens []string) []segment {
	upper := make([]string, len(tokens))
	for i, t := range tokens {
		upper[i] = strings.ToUpper(t)
	}

	var segments []segment
	i := 0
	for i < len(tokens) {
		if pat := longestPatternAt(upper, i); pat != nil {
			j := i
			for _, nameLen := range pat.nameLens {
				segments = append(segments, segment{
					name:        strings.Join(tokens[j:j+nameLen], " "),
					fromPattern: true,
				})
				j += nameLen
			}
			i += len(pat.tokens)
			continue
		}
		segments = append(segments, segment{name: tokens[i]})
		i++
	}
	return segments
}

// longestPatternAt returns the dictionary pattern with the most tokens that
// matches the uppercased token stream at position i, or nil.
func longestPatternAt(upper []string, i int) *tokenPattern {
	var best *tokenPattern
	for k := range condensedPatterns {
		pat := &condensedPatterns[k]
		if best != nil && len(pat.tokens) <= len(best.tokens) {
			continue
		}
		if i+len(pat.tokens) > len(upper) {
			continue
		}
		match := true
		for j, pt := range pat.tokens {
			if upper[i+j] != pt {
				match = false
				break
			}
		}
		if match {
			best = pat
		}
	}
	return best
}

// isMonthYearToken reports a 4-digit year directly following a month name.
// Statement-period text like "February 2023" is date context, not an amount,
// and must not start an amount run.
func isMonthYearToken(tokens []string, i int) bool {
	if i == 0 || !yearTokenRe.MatchString(tokens[i]) {
		return false
	}
	prev := strings.ToUpper(strings.Trim(tokens[i-1], ",."))
	return monthNames[prev]
}

// isStopToken reports whether a token ends debit-side collection: defined
// stop words and date-shaped tokens, which mark the voucher/order trailer
// rather than component data.
func (p *CondensedParser) isStopToken(token string) bool {
	if dateTokenRe.MatchString(token) {
		return true
	}
	return debitStopWords[strings.ToUpper(token)]
}

// isDescriptionOnly reports a line with alphabetic tokens and no amount-size
// numeric token.
func (p *CondensedParser) isDescriptionOnly(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	for _, t := range tokens {
		if v, ok := p.amounts.Parse(t); ok && v > amountFloor {
			return false
		}
	}
	return true
}

// isAmountOnly reports a line where every token parses as a number and at
// least one clears the amount floor.
func (p *CondensedParser) isAmountOnly(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}
	cleared := false
	for _, t := range tokens {
		v, ok := p.amounts.Parse(t)
		if !ok {
			return false
		}
		if v > amountFloor {
			cleared = true
		}
	}
	return cleared
}
