package common

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumericRegex = regexp.MustCompile(`[^0-9.]`)

// CleanDecimal parses a string into a decimal.Decimal, removing non-numeric
// characters (currency symbols, comma grouping, OCR stragglers).
func CleanDecimal(text string) (decimal.Decimal, error) {
	cleanText := nonNumericRegex.ReplaceAllString(text, "")
	if cleanText == "" {
		return decimal.Zero, nil
	}
	// OCR sometimes glues two periods into a number; keep the first decimal
	// point and drop the rest.
	if strings.Count(cleanText, ".") > 1 {
		first := strings.Index(cleanText, ".")
		cleanText = cleanText[:first+1] + strings.ReplaceAll(cleanText[first+1:], ".", "")
	}
	amount, err := decimal.NewFromString(cleanText)
	if err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// SplitLines splits raw OCR text into trimmed, non-empty lines. The returned
// slice is the canonical line sequence every other layer indexes into.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// IsUpperLine reports whether a line is an ALL-CAPS multi-word line, the
// shape OCR gives to printed names on receipts. Digits disqualify a line so
// amounts and account rows are not mistaken for names.
func IsUpperLine(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || !strings.Contains(line, " ") {
		return false
	}
	hasLetter := false
	for _, r := range line {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		}
	}
	return hasLetter
}
