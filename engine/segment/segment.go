// Package segment partitions the OCR line sequence into candidate
// transaction boundaries. OCR order does not follow table-row order, so
// segmentation reconstructs logical groupings from weak positional signals
// instead of fixed column offsets.
package segment

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/patterns"
)

// Strategy is a segmentation algorithm. Boundary detection and proximity
// clustering are alternatives selected by document shape.
type Strategy interface {
	Segment(lines []string, tokens patterns.TokenSet) []common.Boundary
}

var defaultHeaderMarkers = []string{
	"statement date",
	"statement period",
	"statement of account",
	"txn. type",
	"txn type",
	"value date",
	"withdrawal deposit",
	"debit credit balance",
	"account no",
	"account number",
	"account title",
	"opening balance",
	"closing balance",
	"running balance",
	"page no",
}

// BoundaryStrategy detects transaction-start lines from high-confidence
// tokens and cuts the document at them.
type BoundaryStrategy struct {
	MinSeparation int
	MinConfidence float64
	DepositMin    decimal.Decimal
	BalanceMin    decimal.Decimal
	HeaderMarkers []string
}

// NewBoundaryStrategy builds the strategy from viper configuration with the
// engine defaults filled in.
func NewBoundaryStrategy() *BoundaryStrategy {
	s := &BoundaryStrategy{
		MinSeparation: viper.GetInt("engine.segmentation.min_separation"),
		MinConfidence: viper.GetFloat64("engine.segmentation.min_confidence"),
		DepositMin:    decimal.NewFromInt(viper.GetInt64("engine.thresholds.deposit_min")),
		BalanceMin:    decimal.NewFromInt(viper.GetInt64("engine.thresholds.balance_min")),
		HeaderMarkers: viper.GetStringSlice("engine.header_markers"),
	}
	if s.MinSeparation == 0 {
		s.MinSeparation = 5
	}
	if s.MinConfidence == 0 {
		s.MinConfidence = 0.8
	}
	if s.DepositMin.IsZero() {
		s.DepositMin = decimal.NewFromInt(1000)
	}
	if s.BalanceMin.IsZero() {
		s.BalanceMin = decimal.NewFromInt(1000000)
	}
	if len(s.HeaderMarkers) == 0 {
		s.HeaderMarkers = defaultHeaderMarkers
	}
	return s
}

// Segment returns non-overlapping boundaries whose starts are strictly
// increasing and pairwise separated by more than MinSeparation lines.
func (s *BoundaryStrategy) Segment(lines []string, tokens patterns.TokenSet) []common.Boundary {
	candidateSet := map[int]bool{}

	for _, t := range tokens.All() {
		if t.Confidence <= s.MinConfidence {
			continue
		}
		switch t.Category {
		case common.CategoryDate, common.CategoryTransactionType:
			// qualifies as-is
		case common.CategoryAmount:
			// only amounts in the deposit magnitude band signal a row start;
			// balances and zero amounts appear on header and carry-over lines
			if t.Amount.LessThan(s.DepositMin) || t.Amount.GreaterThanOrEqual(s.BalanceMin) {
				continue
			}
		default:
			continue
		}
		if s.isHeaderLine(lines[t.Line]) {
			continue
		}
		candidateSet[t.Line] = true
	}

	candidates := make([]int, 0, len(candidateSet))
	for idx := range candidateSet {
		candidates = append(candidates, idx)
	}
	sort.Ints(candidates)

	// de-noise: a candidate too close to the previous accepted start belongs
	// to the same physical transaction
	starts := make([]int, 0, len(candidates))
	for _, idx := range candidates {
		if len(starts) > 0 && idx-starts[len(starts)-1] <= s.MinSeparation {
			continue
		}
		starts = append(starts, idx)
	}

	boundaries := make([]common.Boundary, 0, len(starts))
	for i, start := range starts {
		end := len(lines) - 1
		if i+1 < len(starts) {
			end = starts[i+1] - 1
		}
		boundaries = append(boundaries, common.Boundary{
			Start:  start,
			End:    end,
			Tokens: tokensInRange(tokens, start, end),
		})
	}
	return boundaries
}

func (s *BoundaryStrategy) isHeaderLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range s.HeaderMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ProximityStrategy seeds a cluster on each amount token and absorbs every
// unconsumed token within a symmetric line-distance window. Single-pass
// greedy assignment: the first-seen amount wins ties, and a token claimed by
// one cluster is never claimed by another.
type ProximityStrategy struct {
	Radius int
}

// NewProximityStrategy builds the strategy from viper configuration.
func NewProximityStrategy() *ProximityStrategy {
	s := &ProximityStrategy{Radius: viper.GetInt("engine.segmentation.cluster_radius")}
	if s.Radius == 0 {
		s.Radius = 12
	}
	return s
}

// Segment implements Strategy.
func (s *ProximityStrategy) Segment(lines []string, tokens patterns.TokenSet) []common.Boundary {
	all := tokens.All()
	consumed := make([]bool, len(all))

	var boundaries []common.Boundary
	for i, seed := range all {
		if seed.Category != common.CategoryAmount || consumed[i] {
			continue
		}

		start := seed.Line - s.Radius
		if start < 0 {
			start = 0
		}
		end := seed.Line + s.Radius
		if end > len(lines)-1 {
			end = len(lines) - 1
		}

		var members []common.Token
		for j, t := range all {
			if consumed[j] || t.Line < start || t.Line > end {
				continue
			}
			consumed[j] = true
			members = append(members, t)
		}

		boundaries = append(boundaries, common.Boundary{Start: start, End: end, Tokens: members})
	}
	return boundaries
}

func tokensInRange(tokens patterns.TokenSet, start, end int) []common.Token {
	var out []common.Token
	for _, t := range tokens.All() {
		if t.Line >= start && t.Line <= end {
			out = append(out, t)
		}
	}
	return out
}
