package receipt

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/segment"
)

// GenericExtractor is the position-based fallback for unrecognized
// providers. It recovers party names from ALL-CAPS candidate lines and
// assigns them to roles by section-marker position, falling back to
// document order when no markers exist.
type GenericExtractor struct{}

var defaultNameExclusions = []string{
	"BANK",
	"JAZZCASH",
	"EASYPAISA",
	"MEEZAN",
	"ALFALAH",
	"RAAST",
	"IBFT",
	"PKR",
	"AMOUNT",
	"TOTAL",
	"FEE",
	"TRANSACTION",
	"TRANSFER",
	"PAYMENT",
	"RECEIPT",
	"ACCOUNT",
	"MOBILE",
	"LIMITED",
	"SUCCESSFUL",
	"WALLET",
}

// Extract implements Extractor.
func (e *GenericExtractor) Extract(lines []string) common.Receipt {
	sec := segment.FindSections(lines)

	r := common.Receipt{
		TransactionID: findTID(lines),
		Date:          findDate(lines),
		Time:          findTime(lines),
		Status:        findStatus(lines),
		Amount:        firstMoney(lines),
		Fee:           moneyNear(lines, "fee", "charges"),
		TotalAmount:   moneyNear(lines, "total"),
	}

	r.FromName, r.ToName = AssignNameRoles(sec, nameCandidates(lines))
	r.FromPhone, r.ToPhone = assignPair(sec, findPhones(lines))
	r.FromAccount, r.ToAccount = assignPair(sec, findAccounts(lines))

	if r.TotalAmount.IsZero() && r.Amount.IsPositive() {
		r.TotalAmount = r.Amount.Add(r.Fee)
	}
	return r
}

// nameCandidates returns the ALL-CAPS multi-word lines that are plausibly
// person names, with their line indices.
func nameCandidates(lines []string) []located {
	exclusions := viper.GetStringSlice("engine.name_exclusions")
	if len(exclusions) == 0 {
		exclusions = defaultNameExclusions
	}

	var out []located
	for i, line := range lines {
		if !common.IsUpperLine(line) {
			continue
		}
		upper := strings.ToUpper(line)
		excluded := false
		for _, w := range exclusions {
			if strings.Contains(upper, w) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, located{value: strings.TrimSpace(line), line: i})
		}
	}
	return out
}

// AssignNameRoles is the explicit role-assignment policy for recovered
// names. With both section markers present, position between and after the
// markers decides the role. With a single marker, the first candidate after
// it takes that marker's role and the next candidate, wherever it sits,
// takes the other. With no markers, document order decides: first seen is
// the sender, second the receiver.
func AssignNameRoles(sec segment.Sections, candidates []located) (from, to string) {
	switch {
	case sec.From >= 0 && sec.To >= 0:
		for _, c := range candidates {
			if c.line > sec.To {
				if to == "" {
					to = c.value
				}
			} else if c.line > sec.From {
				if from == "" {
					from = c.value
				}
			}
		}
	case sec.From >= 0:
		for _, c := range candidates {
			if from == "" && c.line > sec.From {
				from = c.value
			} else if to == "" && c.value != from {
				to = c.value
			}
		}
	case sec.To >= 0:
		for _, c := range candidates {
			if to == "" && c.line > sec.To {
				to = c.value
			} else if from == "" && c.value != to {
				from = c.value
			}
		}
	default:
		for _, c := range candidates {
			if from == "" {
				from = c.value
			} else if to == "" && c.value != from {
				to = c.value
			}
		}
	}
	return from, to
}
