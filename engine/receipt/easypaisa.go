package receipt

import (
	"strings"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/segment"
)

// EasyPaisaExtractor handles EasyPaisa receipts. EasyPaisa labels the
// parties "Sent by" / "Sent to" and spells out a long "Transaction ID".
type EasyPaisaExtractor struct{}

// Extract implements Extractor.
func (e *EasyPaisaExtractor) Extract(lines []string) common.Receipt {
	sec := segment.FindSections(lines)

	r := common.Receipt{
		TransactionID: findTID(lines),
		Date:          findDate(lines),
		Time:          findTime(lines),
		Status:        findStatus(lines),
		Amount:        firstMoney(lines),
		Fee:           moneyNear(lines, "fee", "charges"),
		TotalAmount:   moneyNear(lines, "total amount", "total"),
	}

	if name := labelValue(lines, "sent by", "sender"); name != "" && !looksNumeric(name) {
		r.FromName = name
	}
	if name := labelValue(lines, "sent to", "receiver"); name != "" && !looksNumeric(name) {
		r.ToName = name
	}

	// Some EasyPaisa layouts print names as bare ALL-CAPS lines directly
	// under the section markers instead of behind labels.
	if r.FromName == "" && sec.From >= 0 {
		r.FromName = capsLineAfter(lines, sec.From)
	}
	if r.ToName == "" && sec.To >= 0 {
		r.ToName = capsLineAfter(lines, sec.To)
	}

	r.FromPhone, r.ToPhone = assignPair(sec, findPhones(lines))
	r.FromAccount, r.ToAccount = assignPair(sec, findAccounts(lines))

	if r.TotalAmount.IsZero() && r.Amount.IsPositive() {
		r.TotalAmount = r.Amount.Add(r.Fee)
	}
	return r
}

// capsLineAfter returns the first ALL-CAPS line following idx, giving up
// after a couple of lines so one section cannot bleed into the next.
func capsLineAfter(lines []string, idx int) string {
	for i := idx + 1; i < len(lines) && i <= idx+3; i++ {
		if common.IsUpperLine(lines[i]) {
			return strings.TrimSpace(lines[i])
		}
	}
	return ""
}
