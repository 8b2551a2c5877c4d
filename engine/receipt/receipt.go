// Package receipt implements the mobile-payment path: provider
// classification from keyword evidence, provider-specific label-relative
// extractors and a generic position-based fallback. A completely
// unrecognized receipt still returns a record with whatever fields the
// fallback could populate; nothing in this package fails a document.
package receipt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/segment"
)

// Closed set of provider labels.
const (
	ServiceJazzCash  = "JazzCash"
	ServiceEasyPaisa = "EasyPaisa"
	ServiceMeezan    = "Meezan Bank"
	ServiceAlfalah   = "Alfalah Bank"
	ServiceUnknown   = "Unknown"
)

// providerRule binds one provider label to a keyword list. Rules are checked
// in order, so explicit brand keywords come before generic transfer-scheme
// vocabulary: a receipt mentioning both "JazzCash" and "RAAST" is a JazzCash
// receipt.
type providerRule struct {
	Name     string
	Keywords []string
}

var defaultProviderRules = []providerRule{
	{ServiceJazzCash, []string{"jazzcash", "jazz cash"}},
	{ServiceEasyPaisa, []string{"easypaisa", "easy paisa"}},
	{ServiceMeezan, []string{"meezan"}},
	{ServiceAlfalah, []string{"alfalah"}},
	{ServiceJazzCash, []string{"mobilink microfinance"}},
	{ServiceEasyPaisa, []string{"telenor microfinance"}},
	{ServiceMeezan, []string{"raast"}},
	{ServiceAlfalah, []string{"alfa wallet"}},
}

func loadProviderRules() []providerRule {
	raw, ok := viper.Get("engine.providers").([]interface{})
	if !ok || len(raw) == 0 {
		return defaultProviderRules
	}
	rules := make([]providerRule, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		rule := providerRule{}
		if name, ok := m["name"].(string); ok {
			rule.Name = name
		}
		if kws, ok := m["keywords"].([]interface{}); ok {
			for _, kw := range kws {
				if s, ok := kw.(string); ok {
					rule.Keywords = append(rule.Keywords, strings.ToLower(s))
				}
			}
		}
		if rule.Name != "" && len(rule.Keywords) > 0 {
			rules = append(rules, rule)
		}
	}
	if len(rules) == 0 {
		return defaultProviderRules
	}
	return rules
}

// Detect classifies the issuing service from the joined, lower-cased text.
func Detect(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range loadProviderRules() {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				return rule.Name
			}
		}
	}
	return ServiceUnknown
}

// Extractor is a provider-specific receipt extractor.
type Extractor interface {
	Extract(lines []string) common.Receipt
}

// For returns the extractor for a provider label; unrecognized providers get
// the generic position-based fallback.
func For(service string) Extractor {
	switch service {
	case ServiceJazzCash:
		return &JazzCashExtractor{}
	case ServiceEasyPaisa:
		return &EasyPaisaExtractor{}
	case ServiceMeezan:
		return &MeezanExtractor{}
	case ServiceAlfalah:
		return &AlfalahExtractor{}
	default:
		return &GenericExtractor{}
	}
}

// Extract classifies and extracts a receipt in one call.
func Extract(lines []string) common.Receipt {
	service := Detect(strings.Join(lines, "\n"))
	r := For(service).Extract(lines)
	r.Service = service
	if r.Currency == "" {
		r.Currency = viper.GetString("engine.currency")
		if r.Currency == "" {
			r.Currency = "PKR"
		}
	}
	return r
}

// ---- shared label-relative helpers ----

var (
	moneyRe  = regexp.MustCompile(`(?i)(?:PKR|Rs\.?)\s*([\d,]+(?:\.\d{1,2})?)`)
	bareNumRe = regexp.MustCompile(`([\d,]+(?:\.\d{1,2})?)`)
	timeRe   = regexp.MustCompile(`\b(\d{1,2}:\d{2}(?::\d{2})?(?:\s*[APap][Mm])?)\b`)
	dateRe   = regexp.MustCompile(`(?i)\b(\d{1,2}[-/ ](?:\d{1,2}|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*[-/ ]\d{2,4})\b`)
	phoneRe  = regexp.MustCompile(`\b03\d{9}\b|\b03\d{2}\*{2,}\d{2,4}\b`)
	accountRe = regexp.MustCompile(`\bPK\d{2}[A-Z]{4}\d{10,}\b|\bPK\*{2,}\d*|\*{3,}\d{2,6}|\b\d{10,16}\b`)
	tidRe    = regexp.MustCompile(`(?i)\b(?:TID|Trx\s?ID|Transaction\s?ID|ID\s?#|Ref\s?#|Reference)\s*[#:.]?\s*([A-Za-z0-9-]{5,})`)

	successWords = []string{"successful", "success", "completed", "paid", "transferred"}
	failureWords = []string{"failed", "declined", "reversed", "unsuccessful"}
)

// labelValue returns the text following any of the labels on the same line,
// or the next line's text when the label stands alone. This is the
// label-relative extraction every provider layout reduces to.
func labelValue(lines []string, labels ...string) string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, label := range labels {
			idx := labelIndex(lower, label)
			if idx < 0 {
				continue
			}
			rest := strings.TrimSpace(line[idx+len(label):])
			rest = strings.TrimLeft(rest, ":#. ")
			if rest != "" {
				return rest
			}
			if i+1 < len(lines) {
				return strings.TrimSpace(lines[i+1])
			}
		}
	}
	return ""
}

// labelIndex locates a label on word boundaries. Short labels like "to"
// otherwise fire mid-word inside "Total" or "Customer" and swallow the rest
// of that line as the value.
func labelIndex(lower, label string) int {
	idx := 0
	for {
		j := strings.Index(lower[idx:], label)
		if j < 0 {
			return -1
		}
		start := idx + j
		end := start + len(label)
		beforeOK := start == 0 || !isAlnum(lower[start-1])
		afterOK := end == len(lower) || !isAlnum(lower[end])
		if beforeOK && afterOK {
			return start
		}
		idx = start + 1
	}
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// moneyOn parses the first monetary value on a line, with or without a
// currency marker.
func moneyOn(line string) (decimal.Decimal, bool) {
	if m := moneyRe.FindStringSubmatch(line); m != nil {
		if amt, err := common.CleanDecimal(m[1]); err == nil {
			return amt, true
		}
	}
	if m := bareNumRe.FindStringSubmatch(line); m != nil {
		if amt, err := common.CleanDecimal(m[1]); err == nil {
			return amt, true
		}
	}
	return decimal.Zero, false
}

// moneyNear finds the first money figure on a line containing any of the
// given labels, looking one line ahead when the label line has no figure.
func moneyNear(lines []string, labels ...string) decimal.Decimal {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, label := range labels {
			if !strings.Contains(lower, label) {
				continue
			}
			if amt, ok := moneyOn(line); ok && amt.IsPositive() {
				return amt
			}
			if i+1 < len(lines) {
				if amt, ok := moneyOn(lines[i+1]); ok && amt.IsPositive() {
					return amt
				}
			}
		}
	}
	return decimal.Zero
}

// firstMoney returns the first currency-marked amount anywhere in the
// document.
func firstMoney(lines []string) decimal.Decimal {
	for _, line := range lines {
		if m := moneyRe.FindStringSubmatch(line); m != nil {
			if amt, err := common.CleanDecimal(m[1]); err == nil && amt.IsPositive() {
				return amt
			}
		}
	}
	return decimal.Zero
}

func findDate(lines []string) string {
	for _, line := range lines {
		if m := dateRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func findTime(lines []string) string {
	for _, line := range lines {
		if m := timeRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func findTID(lines []string) string {
	for _, line := range lines {
		if m := tidRe.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}

func findStatus(lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, w := range failureWords {
			if strings.Contains(lower, w) {
				return "Failed"
			}
		}
		for _, w := range successWords {
			if strings.Contains(lower, w) {
				return "Successful"
			}
		}
	}
	return ""
}

// located is a phone or account occurrence with its source line, kept so
// role assignment can reason about marker positions.
type located struct {
	value string
	line  int
}

func findPhones(lines []string) []located {
	var out []located
	for i, line := range lines {
		for _, m := range phoneRe.FindAllString(line, -1) {
			out = append(out, located{value: m, line: i})
		}
	}
	return out
}

func findAccounts(lines []string) []located {
	var out []located
	for i, line := range lines {
		for _, m := range accountRe.FindAllString(line, -1) {
			// 11-digit runs starting 03 are phones
			if len(m) == 11 && strings.HasPrefix(m, "03") {
				continue
			}
			out = append(out, located{value: m, line: i})
		}
	}
	return out
}

// assignPair distributes located values to from/to roles: section-relative
// position wins when markers exist, otherwise first-seen goes to "from" and
// second-seen to "to".
func assignPair(sec segment.Sections, items []located) (from, to string) {
	for _, it := range items {
		switch roleFor(sec, it.line) {
		case "to":
			if to == "" {
				to = it.value
			}
		case "from":
			if from == "" {
				from = it.value
			}
		default:
			if from == "" {
				from = it.value
			} else if to == "" && it.value != from {
				to = it.value
			}
		}
	}
	return from, to
}

// roleFor scans backward from a line to the nearest preceding section
// marker.
func roleFor(sec segment.Sections, line int) string {
	if sec.To >= 0 && line >= sec.To {
		return "to"
	}
	if sec.From >= 0 && line >= sec.From {
		return "from"
	}
	return ""
}
