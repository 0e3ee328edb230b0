package utils

import (
	"regexp"
	"strings"

	"github.com/payparse/pcda-payslip-ocr/dto"
)

// ParsePayslipMetadata extracts identity fields from payslip OCR text
func ParsePayslipMetadata(ocrText string) dto.PayslipMetadata {
	return dto.PayslipMetadata{
		Name:          extractName(ocrText),
		Rank:          extractRank(ocrText),
		ServiceNumber: extractServiceNumber(ocrText),
		PayMonth:      extractPayMonth(ocrText),
		AccountNumber: extractAccountNumber(ocrText),
		PAN:           extractPAN(ocrText),
	}
}

// ranks as printed on PCDA slips, compound ranks first so "Naib Subedar"
// wins over "Subedar" and "Lt Col" over "Colonel"
var ranks = []string{
	"Lieutenant General", "Major General", "Subedar Major",
	"Lieutenant Colonel", "Lt Col", "Naib Subedar",
	"Lance Naik", "Hony Capt", "Hony Lt",
	"Brigadier", "Colonel", "Major", "Captain", "Lieutenant",
	"Subedar", "Havildar", "Naik", "Sepoy",
}

func extractRank(text string) string {
	// Label form first: "Rank: Major"
	re := regexp.MustCompile(`(?i)rank\s*[:\-]?\s*([A-Za-z ]{2,25})`)
	if matches := re.FindStringSubmatch(text); len(matches) > 1 {
		candidate := strings.TrimSpace(matches[1])
		for _, r := range ranks {
			if strings.EqualFold(candidate, r) || strings.HasPrefix(strings.ToLower(candidate), strings.ToLower(r)) {
				return r
			}
		}
	}

	// Otherwise scan for a known rank word anywhere
	lower := strings.ToLower(text)
	for _, r := range ranks {
		if strings.Contains(lower, strings.ToLower(r)) {
			return r
		}
	}
	return ""
}

// extractServiceNumber matches army-style service numbers like "IC-56789"
// or "JC 123456", falling back to a labelled numeric form.
func extractServiceNumber(text string) string {
	re := regexp.MustCompile(`\b([A-Z]{1,3}[- ]?\d{4,6}[A-Z]?)\b`)
	labelled := regexp.MustCompile(`(?i)(?:army|service|personal)\s*no\.?\s*[:\-]?\s*([A-Z0-9\-/ ]{4,15})`)

	if matches := labelled.FindStringSubmatch(text); len(matches) > 1 {
		candidate := strings.TrimSpace(matches[1])
		if m := re.FindString(candidate); m != "" {
			return strings.ReplaceAll(m, " ", "-")
		}
		if regexp.MustCompile(`^\d{5,8}$`).MatchString(candidate) {
			return candidate
		}
	}

	if m := re.FindString(text); m != "" {
		return strings.ReplaceAll(m, " ", "-")
	}
	return ""
}

// extractPayMonth extracts the statement month from text
func extractPayMonth(text string) string {
	months := []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
		"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	}

	textLower := strings.ToLower(text)
	for _, month := range months {
		if strings.Contains(textLower, strings.ToLower(month)) {
			// Try to extract year as well
			yearRegex := regexp.MustCompile(`(?i)` + month + `[\s\-,]*(\d{4})`)
			if matches := yearRegex.FindStringSubmatch(text); len(matches) > 1 {
				return month + " " + matches[1]
			}
			return month
		}
	}

	// Try date format MM/YYYY or MM-YYYY
	dateRegex := regexp.MustCompile(`(\d{1,2})[/-](\d{4})`)
	if matches := dateRegex.FindStringSubmatch(text); len(matches) > 2 {
		return matches[1] + "/" + matches[2]
	}

	return ""
}

// extractAccountNumber extracts the remittance bank account number
func extractAccountNumber(text string) string {
	cleaned := strings.ReplaceAll(text, "—", "-")
	cleaned = strings.ReplaceAll(cleaned, ":", " ")
	cleaned = strings.ReplaceAll(cleaned, "|", " ")
	cleaned = strings.ToLower(cleaned)

	// Explicit account number labels first
	explicitPatterns := []string{
		`account\s*no[\s\-]*([0-9]{9,18})`,
		`accountnumber[\s\-]*([0-9]{9,18})`,
		`a/c\s*no[\s\-]*([0-9]{9,18})`,
		`ac\s*no[\s\-]*([0-9]{9,18})`,
		`acc\s*no[\s\-]*([0-9]{9,18})`,
	}

	for _, p := range explicitPatterns {
		re := regexp.MustCompile(p)
		if matches := re.FindStringSubmatch(cleaned); len(matches) > 1 {
			return matches[1]
		}
	}

	// Masked formats like XXXXXXXX6323
	masked := regexp.MustCompile(`x{4,}[0-9]{3,6}`)
	if m := masked.FindString(cleaned); m != "" {
		digits := regexp.MustCompile(`[0-9]+`).FindString(m)
		if len(digits) >= 4 {
			return digits
		}
	}

	// Fallback: long digit runs, excluding customer id fields
	fallback := regexp.MustCompile(`([0-9]{9,18})`)
	candidates := fallback.FindAllString(cleaned, -1)

	for _, c := range candidates {
		if strings.Contains(cleaned, "cust id "+c) ||
			strings.Contains(cleaned, "customer id "+c) ||
			strings.Contains(cleaned, "cif "+c) ||
			strings.Contains(cleaned, "custid "+c) {
			continue
		}

		if len(c) >= 10 {
			return c
		}
	}

	return ""
}

// extractName extracts the officer's name, preferring the labelled form
func extractName(text string) string {
	lines := strings.Split(text, "\n")

	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "name") {
			continue
		}

		re := regexp.MustCompile(`(?i)name\s*[:\-]\s*([A-Za-z .]+)`)
		if matches := re.FindStringSubmatch(line); len(matches) > 1 {
			name := cleanName(matches[1])
			if validName(name) {
				return name
			}
		}
	}

	// Fallback: honorific prefixed names anywhere in the slip
	prefixRegex := regexp.MustCompile(`(?m)(?i)\b(MR|MRS|MS|SHRI|SMT|MAJ|CAPT|COL|LT)\.?\s+[A-Z][A-Z\s]{2,50}`)
	if match := prefixRegex.FindString(text); match != "" {
		parts := strings.Fields(match)
		if len(parts) >= 2 {
			name := cleanName(strings.Join(parts[1:], " "))
			if validName(name) {
				return name
			}
		}
	}

	return ""
}

func cleanName(s string) string {
	if s == "" {
		return s
	}
	parts := strings.Fields(s)

	stopWords := map[string]bool{
		"rank":    true,
		"army":    true,
		"account": true,
		"acc":     true,
		"bank":    true,
		"credit":  true,
		"debit":   true,
		"amount":  true,
		"no":      true,
		"pan":     true,
	}

	clean := []string{}
	for _, p := range parts {
		l := strings.ToLower(strings.Trim(p, "."))
		if stopWords[l] {
			break
		}
		clean = append(clean, p)
		if len(clean) == 3 {
			break
		}
	}

	return strings.Join(clean, " ")
}

func validName(n string) bool {
	return len(n) > 2 && len(n) < 50
}

var panRe = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)

func extractPAN(text string) string {
	return panRe.FindString(strings.ToUpper(text))
}

// NormalizeString normalizes a string for comparison (lowercase, remove spaces)
func NormalizeString(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}

// CompareNames compares two names for matching
func CompareNames(name1, name2 string) bool {
	if name1 == "" || name2 == "" {
		return false
	}

	norm1 := NormalizeString(name1)
	norm2 := NormalizeString(name2)

	if norm1 == norm2 {
		return true
	}

	if strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1) {
		return true
	}

	words1 := strings.Fields(strings.ToLower(name1))
	words2 := strings.Fields(strings.ToLower(name2))

	if len(words1) > len(words2) {
		words1, words2 = words2, words1
	}

	matchCount := 0
	for _, w1 := range words1 {
		for _, w2 := range words2 {
			if strings.Contains(w2, w1) || strings.Contains(w1, w2) {
				matchCount++
				break
			}
		}
	}

	return float64(matchCount)/float64(len(words1)) >= 0.5
}
