package receipt

import (
	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/segment"
)

// AlfalahExtractor handles Bank Alfalah app receipts. Alfalah labels the
// parties "Paid by" / "Paid to", masks accounts, and prefixes the reference
// with "Ref#".
type AlfalahExtractor struct{}

// Extract implements Extractor.
func (e *AlfalahExtractor) Extract(lines []string) common.Receipt {
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

	if name := labelValue(lines, "paid by", "from"); name != "" && !looksNumeric(name) {
		r.FromName = name
	}
	if name := labelValue(lines, "paid to", "beneficiary", "to"); name != "" && !looksNumeric(name) {
		r.ToName = name
	}
	if r.FromName == "" && sec.From >= 0 {
		r.FromName = capsLineAfter(lines, sec.From)
	}
	if r.ToName == "" && sec.To >= 0 {
		r.ToName = capsLineAfter(lines, sec.To)
	}

	r.FromAccount, r.ToAccount = assignPair(sec, findAccounts(lines))
	r.FromPhone, r.ToPhone = assignPair(sec, findPhones(lines))

	if r.TotalAmount.IsZero() && r.Amount.IsPositive() {
		r.TotalAmount = r.Amount.Add(r.Fee)
	}
	return r
}
