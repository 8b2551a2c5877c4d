package segment

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/patterns"
)

func TestBoundaryStrategy_StartsMonotonicAndSeparated(t *testing.T) {
	lines := []string{
		"01-Jan-2024 RAAST Transfer",  // 0: candidate
		"TID 12345678",                // 1
		"63,024.00",                   // 2: candidate but too close
		"some narration text",         // 3
		"more narration",              // 4
		"even more",                   // 5
		"02-Jan-2024 IBFT",            // 6: candidate, 6-0 > 5
		"55,000.00",                   // 7
		"trailing line",               // 8
	}

	s := NewBoundaryStrategy()
	boundaries := s.Segment(lines, patterns.Scan(lines))

	if assert.Len(t, boundaries, 2) {
		assert.Equal(t, 0, boundaries[0].Start)
		assert.Equal(t, 5, boundaries[0].End)
		assert.Equal(t, 6, boundaries[1].Start)
		assert.Equal(t, 8, boundaries[1].End)
	}

	last := -1000
	for _, b := range boundaries {
		assert.Greater(t, b.Start-last, s.MinSeparation)
		assert.LessOrEqual(t, b.Start, b.End)
		last = b.Start
	}
}

func TestBoundaryStrategy_ExcludesHeaderLines(t *testing.T) {
	lines := []string{
		"Statement Date 01-Jan-2024", // header despite the specific date
		"filler",
		"filler",
		"filler",
		"filler",
		"filler",
		"02-Jan-2024 ATM Withdrawal",
	}

	s := NewBoundaryStrategy()
	boundaries := s.Segment(lines, patterns.Scan(lines))

	if assert.Len(t, boundaries, 1) {
		assert.Equal(t, 6, boundaries[0].Start)
	}
}

func TestBoundaryStrategy_LowConfidenceNotCandidate(t *testing.T) {
	// a loose slash date (0.8) is not above the 0.8 cutoff
	lines := []string{"15/11/2024 something"}

	s := NewBoundaryStrategy()
	boundaries := s.Segment(lines, patterns.Scan(lines))
	assert.Empty(t, boundaries)
}

func TestBoundaryStrategy_BalanceBandAmountNotCandidate(t *testing.T) {
	lines := []string{"1,250,000.00"}

	s := NewBoundaryStrategy()
	boundaries := s.Segment(lines, patterns.Scan(lines))
	assert.Empty(t, boundaries)
}

func TestProximityStrategy_TokensClaimedOnce(t *testing.T) {
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[5] = "5,500.00"
	lines[8] = "01-Jan-2024"
	lines[30] = "9,900.00"

	s := NewProximityStrategy()
	boundaries := s.Segment(lines, patterns.Scan(lines))

	assert.Len(t, boundaries, 2)

	seen := map[string]int{}
	for _, b := range boundaries {
		for _, tok := range b.Tokens {
			key := string(tok.Category) + "|" + tok.Raw + "|" + strconv.Itoa(tok.Line)
			seen[key]++
		}
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, "token %s claimed by %d clusters", key, count)
	}
}

func TestProximityStrategy_FirstSeenWins(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "filler"
	}
	lines[4] = "5,500.00"
	lines[6] = "01-Jan-2024"
	lines[9] = "7,700.00"

	s := NewProximityStrategy()
	boundaries := s.Segment(lines, patterns.Scan(lines))

	// the date at line 6 is within both windows; the earlier amount claims it
	if assert.NotEmpty(t, boundaries) {
		var hasDate bool
		for _, tok := range boundaries[0].Tokens {
			if tok.Category == common.CategoryDate {
				hasDate = true
			}
		}
		assert.True(t, hasDate)
	}
}

func TestFindSections_AllMarkers(t *testing.T) {
	lines := []string{
		"From",
		"ALI KHAN",
		"To",
		"SARA BUTT",
		"PKR 5,000",
		"TID: 987654321",
	}

	sec := FindSections(lines)
	assert.Equal(t, 0, sec.From)
	assert.Equal(t, 2, sec.To)
	assert.Equal(t, 4, sec.Amount)
	assert.Equal(t, 5, sec.TID)
}

func TestFindSections_MarkerWithColon(t *testing.T) {
	sec := FindSections([]string{"Sent by:", "ALI KHAN"})
	assert.Equal(t, 0, sec.From)
	assert.Equal(t, -1, sec.To)
}

func TestFindSections_LabelWithValueIsNotMarker(t *testing.T) {
	sec := FindSections([]string{"From Account 1234"})
	assert.Equal(t, -1, sec.From)
}

func TestFindSections_Missing(t *testing.T) {
	sec := FindSections([]string{"nothing here"})
	assert.Equal(t, -1, sec.From)
	assert.Equal(t, -1, sec.To)
	assert.Equal(t, -1, sec.TID)
}
