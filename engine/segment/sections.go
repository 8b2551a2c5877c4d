package segment

import (
	"regexp"
	"strings"
)

// Sections holds the line indices of the literal section markers on a
// payment receipt. An index of -1 means the marker was not found. The
// half-open intervals between markers decide which names, phones and
// accounts belong to the "from" role and which to the "to" role.
type Sections struct {
	From   int
	To     int
	Amount int
	Date   int
	TID    int
}

var (
	fromMarkers = []string{"from", "sent by", "sender", "paid by"}
	toMarkers   = []string{"to", "sent to", "receiver", "received by", "paid to"}

	amountMarkerRe = regexp.MustCompile(`(?i)\b(?:PKR|Rs\.?|Amount)\b`)
	dateMarkerRe   = regexp.MustCompile(`(?i)\b(?:date|\d{1,2}[-/ ](?:\d{1,2}|[A-Za-z]{3})[-/ ]\d{2,4})\b`)
	tidMarkerRe    = regexp.MustCompile(`(?i)\b(?:TID|Trx\s?ID|Transaction\s?ID|ID\s?#|Ref\s?#)`)
)

// FindSections locates the first occurrence of each marker group.
func FindSections(lines []string) Sections {
	s := Sections{From: -1, To: -1, Amount: -1, Date: -1, TID: -1}

	for i, line := range lines {
		lower := strings.ToLower(strings.TrimSpace(line))

		if s.From == -1 && isMarkerLine(lower, fromMarkers) {
			s.From = i
		}
		if s.To == -1 && isMarkerLine(lower, toMarkers) {
			// "To" sections follow "From" sections on every provider layout;
			// a "to" hit on the same line as the from marker is noise
			if s.From == -1 || i != s.From {
				s.To = i
			}
		}
		if s.Amount == -1 && amountMarkerRe.MatchString(line) {
			s.Amount = i
		}
		if s.Date == -1 && dateMarkerRe.MatchString(line) {
			s.Date = i
		}
		if s.TID == -1 && tidMarkerRe.MatchString(line) {
			s.TID = i
		}
	}
	return s
}

// isMarkerLine matches a bare section label: the whole line is the marker,
// optionally followed by a colon. "From" matches; "From Account 1234" does
// not, because that line already carries the value.
func isMarkerLine(lower string, markers []string) bool {
	lower = strings.TrimSuffix(lower, ":")
	lower = strings.TrimSpace(lower)
	for _, m := range markers {
		if lower == m {
			return true
		}
	}
	return false
}
