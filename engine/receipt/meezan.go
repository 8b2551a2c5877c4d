package receipt

import (
	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/segment"
)

// MeezanExtractor handles Meezan Bank transfer confirmations, including
// Raast payments. Meezan prints full IBAN-style accounts under each party
// block and uses "From" / "To" section headings.
type MeezanExtractor struct{}

// Extract implements Extractor.
func (e *MeezanExtractor) Extract(lines []string) common.Receipt {
	sec := segment.FindSections(lines)

	r := common.Receipt{
		TransactionID: findTID(lines),
		Date:          findDate(lines),
		Time:          findTime(lines),
		Status:        findStatus(lines),
		Amount:        firstMoney(lines),
		Fee:           moneyNear(lines, "fee", "fed", "charges"),
		TotalAmount:   moneyNear(lines, "total"),
	}

	// Party names sit on the line under the section heading; account rows
	// follow the name rows inside the same block.
	if sec.From >= 0 {
		r.FromName = capsLineAfter(lines, sec.From)
	}
	if sec.To >= 0 {
		r.ToName = capsLineAfter(lines, sec.To)
	}
	if r.FromName == "" {
		if name := labelValue(lines, "from account title", "sender"); name != "" && !looksNumeric(name) {
			r.FromName = name
		}
	}
	if r.ToName == "" {
		if name := labelValue(lines, "beneficiary", "to account title"); name != "" && !looksNumeric(name) {
			r.ToName = name
		}
	}

	r.FromAccount, r.ToAccount = assignPair(sec, findAccounts(lines))
	r.FromPhone, r.ToPhone = assignPair(sec, findPhones(lines))

	if r.TotalAmount.IsZero() && r.Amount.IsPositive() {
		r.TotalAmount = r.Amount.Add(r.Fee)
	}
	return r
}
