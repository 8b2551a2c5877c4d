package receipt

import (
	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/segment"
)

// JazzCashExtractor handles JazzCash wallet receipts. The layout puts the
// sender block before the receiver block, names on the line after the
// section label, and the transaction id behind a "TID" label.
type JazzCashExtractor struct{}

// Extract implements Extractor.
func (e *JazzCashExtractor) Extract(lines []string) common.Receipt {
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

	if name := labelValue(lines, "sender name", "sent by", "from"); name != "" && !looksNumeric(name) {
		r.FromName = name
	}
	if name := labelValue(lines, "receiver name", "sent to", "to"); name != "" && !looksNumeric(name) {
		r.ToName = name
	}

	r.FromPhone, r.ToPhone = assignPair(sec, findPhones(lines))
	r.FromAccount, r.ToAccount = assignPair(sec, findAccounts(lines))

	if r.TotalAmount.IsZero() && r.Amount.IsPositive() {
		r.TotalAmount = r.Amount.Add(r.Fee)
	}
	return r
}

// looksNumeric guards the name slots against label-adjacent numbers.
func looksNumeric(s string) bool {
	digits := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			digits++
		}
	}
	return digits > len(s)/2
}
