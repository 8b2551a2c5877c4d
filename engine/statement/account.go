package statement

import (
	"regexp"
	"strings"

	"github.com/hisaabkit/hisaab/engine/common"
)

var (
	fullAccountRe    = regexp.MustCompile(`^PK\d{2}[A-Z]{4}\d{10,}$`)
	partialAccountRe = regexp.MustCompile(`^PK\d{2}[A-Z]{4}\d{0,9}$`)
	digitRunRe       = regexp.MustCompile(`\d{2,}`)
)

// ResolveAccount returns the account number for a token, attempting
// multi-line reconstruction when OCR truncated an IBAN-style account across
// a line break. The token's own value is kept when no combination of nearby
// digit runs validates; a partial account is better than none.
func ResolveAccount(lines []string, t common.Token, window int) string {
	value := strings.ReplaceAll(t.Value, " ", "")
	if fullAccountRe.MatchString(value) {
		return value
	}
	if !partialAccountRe.MatchString(value) {
		// masked or bare numeric accounts pass through untouched
		return value
	}

	if rebuilt, ok := reassemble(lines, t.Line, value, window); ok {
		return rebuilt
	}
	return value
}

// reassemble searches the following lines for numeric continuations and
// tries prefix+suffix combinations until one matches the full account
// pattern. Runs on consecutive lines are also tried joined, since OCR can
// split the digit body itself more than once.
func reassemble(lines []string, lineIdx int, prefix string, window int) (string, bool) {
	end := lineIdx + window
	if end > len(lines)-1 {
		end = len(lines) - 1
	}

	var runs []string
	for i := lineIdx + 1; i <= end; i++ {
		runs = append(runs, digitRunRe.FindAllString(lines[i], -1)...)
	}

	for i, run := range runs {
		candidate := prefix + run
		if fullAccountRe.MatchString(candidate) {
			return candidate, true
		}
		// try gluing the next run on as well
		if i+1 < len(runs) {
			candidate = prefix + run + runs[i+1]
			if fullAccountRe.MatchString(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}
