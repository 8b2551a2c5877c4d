// Package patterns is the pattern-extraction layer of the engine: a pure
// scan of every OCR line against a fixed battery of regular expressions per
// semantic category. It performs no disambiguation and no deduplication;
// a category with zero matches simply yields no tokens.
package patterns

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/hisaabkit/hisaab/engine/common"
)

// Fixed heuristic weights per pattern specificity. These are not learned;
// a more specific, less ambiguous pattern earns a higher weight.
const (
	ConfidenceSpecific = 0.9
	ConfidenceStrong   = 0.85
	ConfidenceLoose    = 0.8
	ConfidenceGeneric  = 0.75
	ConfidenceWeak     = 0.7
)

type def struct {
	re         *regexp.Regexp
	confidence float64
}

var (
	datePatterns = []def{
		// 01-Jan-2024: unambiguous month token
		{regexp.MustCompile(`(?i)\b(\d{1,2}-(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*-\d{2,4})\b`), ConfidenceSpecific},
		// 15 Jan 2024
		{regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{2,4})\b`), ConfidenceLoose},
		// 15/01/2024 or 15/01/24
		{regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`), ConfidenceLoose},
		// 2024-01-15
		{regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`), ConfidenceLoose},
	}

	amountPatterns = []def{
		// 1,234,567.89: comma grouping with 2 decimals
		{regexp.MustCompile(`\b\d{1,3}(?:,\d{3})+\.\d{2}\b`), ConfidenceSpecific},
		// 1234.56
		{regexp.MustCompile(`\b\d+\.\d{2}\b`), ConfidenceLoose},
		// bare digit run that could be a whole-rupee amount
		{regexp.MustCompile(`\b\d{1,9}\b`), ConfidenceWeak},
	}

	accountPatterns = []def{
		// full IBAN-style account: PK + check digits + bank code + body
		{regexp.MustCompile(`\bPK\d{2}[A-Z]{4}\d{10,}\b`), ConfidenceSpecific},
		// masked account on receipts: PK****1234 or ****1234
		{regexp.MustCompile(`\bPK\*{2,}\d*|\*{3,}\d{2,6}`), ConfidenceLoose},
		// truncated IBAN prefix, split across lines by OCR
		{regexp.MustCompile(`\bPK\d{2}[A-Z]{4}\d{0,9}\b`), ConfidenceLoose},
		// bare long digit run
		{regexp.MustCompile(`\b\d{10,16}\b`), ConfidenceWeak},
	}

	phonePatterns = []def{
		{regexp.MustCompile(`\b03\d{9}\b`), ConfidenceSpecific},
		// masked phone: 0300***1234
		{regexp.MustCompile(`\b03\d{2}\*{2,}\d{2,4}\b`), ConfidenceGeneric},
	}

	referencePatterns = []def{
		// labelled reference: TID: 123456, Ref# ABC123, Transaction ID 9F2...
		{regexp.MustCompile(`(?i)\b(?:TID|Trx\s?ID|Transaction\s?ID|Ref|Reference|ID)\s*[#:.]?\s*([A-Za-z0-9-]{5,})`), ConfidenceStrong},
		// bare alphanumeric code carrying at least one digit
		{regexp.MustCompile(`\b(?:[A-Z]+\d|\d+[A-Z])[A-Z0-9]{6,}\b`), ConfidenceWeak},
	}

	branchPattern = def{regexp.MustCompile(`(?i)\b([A-Za-z][A-Za-z .-]{2,40}branch)\b`), ConfidenceLoose}
)

// TokenSet is the flat result of one scan, with range/category lookups the
// segmenter and reconstructor need for proximity search.
type TokenSet struct {
	tokens []common.Token
}

// All returns every token, in scan order (line order, category battery order
// within a line).
func (ts TokenSet) All() []common.Token {
	return ts.tokens
}

// Category returns all tokens of one category in scan order.
func (ts TokenSet) Category(c common.Category) []common.Token {
	var out []common.Token
	for _, t := range ts.tokens {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// InRange returns all tokens of one category whose source line falls in
// [start, end].
func (ts TokenSet) InRange(c common.Category, start, end int) []common.Token {
	var out []common.Token
	for _, t := range ts.tokens {
		if t.Category == c && t.Line >= start && t.Line <= end {
			out = append(out, t)
		}
	}
	return out
}

// Best returns the highest-confidence token of a category. Ties resolve to
// the earliest line so results are deterministic.
func (ts TokenSet) Best(c common.Category) (common.Token, bool) {
	return best(ts.Category(c))
}

// BestInRange is Best restricted to a line range.
func (ts TokenSet) BestInRange(c common.Category, start, end int) (common.Token, bool) {
	return best(ts.InRange(c, start, end))
}

func best(tokens []common.Token) (common.Token, bool) {
	if len(tokens) == 0 {
		return common.Token{}, false
	}
	b := tokens[0]
	for _, t := range tokens[1:] {
		if t.Confidence > b.Confidence {
			b = t
		}
	}
	return b, true
}

// Scan runs the full battery over every line and returns the flat token
// list. A line may yield several tokens of the same category; overlapping
// matches between loose and specific variants are all emitted.
func Scan(lines []string) TokenSet {
	tables := LoadTables()
	phonePrefix := viper.GetString("engine.phone_prefix")
	if phonePrefix == "" {
		phonePrefix = "03"
	}

	var tokens []common.Token
	emit := func(t common.Token) {
		tokens = append(tokens, t)
	}

	for i, line := range lines {
		lower := strings.ToLower(line)

		for _, d := range datePatterns {
			for _, m := range d.re.FindAllString(line, -1) {
				emit(common.Token{Category: common.CategoryDate, Raw: m, Value: m, Line: i, Confidence: d.confidence})
			}
		}

		for _, d := range amountPatterns {
			for _, m := range d.re.FindAllString(line, -1) {
				amt, err := common.CleanDecimal(m)
				if err != nil {
					continue
				}
				emit(common.Token{Category: common.CategoryAmount, Raw: m, Value: amt.String(), Amount: amt, Line: i, Confidence: d.confidence})
			}
		}

		for _, d := range accountPatterns {
			for _, m := range d.re.FindAllString(line, -1) {
				// an 11-digit run starting with the phone prefix is a phone,
				// not an account; the phone battery will claim it
				if len(m) == 11 && strings.HasPrefix(m, phonePrefix) {
					continue
				}
				emit(common.Token{Category: common.CategoryAccountNumber, Raw: m, Value: m, Line: i, Confidence: d.confidence})
			}
		}

		for _, d := range phonePatterns {
			for _, m := range d.re.FindAllString(line, -1) {
				emit(common.Token{Category: common.CategoryPhoneNumber, Raw: m, Value: m, Line: i, Confidence: d.confidence})
			}
		}

		for _, d := range referencePatterns {
			for _, m := range d.re.FindAllStringSubmatch(line, -1) {
				value := m[0]
				if len(m) > 1 && m[1] != "" {
					value = m[1]
				}
				emit(common.Token{Category: common.CategoryReference, Raw: m[0], Value: value, Line: i, Confidence: d.confidence})
			}
		}

		if m := branchPattern.re.FindStringSubmatch(line); m != nil {
			emit(common.Token{Category: common.CategoryBranch, Raw: m[0], Value: strings.TrimSpace(m[1]), Line: i, Confidence: branchPattern.confidence})
		}

		for _, kw := range tables.TypeSpecific {
			if containsWord(lower, kw) {
				emit(common.Token{Category: common.CategoryTransactionType, Raw: kw, Value: strings.ToUpper(kw), Line: i, Confidence: ConfidenceSpecific})
			}
		}
		for _, kw := range tables.TypeGeneric {
			if containsWord(lower, kw) {
				emit(common.Token{Category: common.CategoryTransactionType, Raw: kw, Value: capitalize(kw), Line: i, Confidence: ConfidenceGeneric})
			}
		}

		// map iteration order is randomized; sorted keys keep re-runs
		// byte-identical
		for _, kw := range sortedKeys(tables.BankFull) {
			if strings.Contains(lower, kw) {
				emit(common.Token{Category: common.CategoryBankName, Raw: kw, Value: tables.BankFull[kw], Line: i, Confidence: ConfidenceSpecific})
			}
		}
		for _, kw := range sortedKeys(tables.BankAbbrev) {
			if containsWord(lower, kw) {
				emit(common.Token{Category: common.CategoryBankName, Raw: kw, Value: tables.BankAbbrev[kw], Line: i, Confidence: ConfidenceGeneric})
			}
		}
	}

	return TokenSet{tokens: tokens}
}

// containsWord reports whether needle occurs in haystack on word boundaries.
// Plain substring matching would fire the "mcb" abbreviation inside codes
// like "MCB123X".
func containsWord(haystack, needle string) bool {
	idx := 0
	for {
		j := strings.Index(haystack[idx:], needle)
		if j < 0 {
			return false
		}
		start := idx + j
		end := start + len(needle)
		beforeOK := start == 0 || !isWordChar(haystack[start-1])
		afterOK := end == len(haystack) || !isWordChar(haystack[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
