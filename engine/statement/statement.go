// Package statement implements the bank-statement extraction path: boundary
// segmentation, per-boundary field reconstruction, document header fields
// and the summary aggregation.
package statement

import (
	"log"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/patterns"
	"github.com/hisaabkit/hisaab/engine/segment"
)

type config struct {
	DepositMin       decimal.Decimal
	BalanceMin       decimal.Decimal
	ReassemblyWindow int
	Currency         string
}

func loadConfig() config {
	cfg := config{
		DepositMin:       decimal.NewFromInt(viper.GetInt64("engine.thresholds.deposit_min")),
		BalanceMin:       decimal.NewFromInt(viper.GetInt64("engine.thresholds.balance_min")),
		ReassemblyWindow: viper.GetInt("engine.reassembly_window"),
		Currency:         viper.GetString("engine.currency"),
	}
	if cfg.DepositMin.IsZero() {
		cfg.DepositMin = decimal.NewFromInt(1000)
	}
	if cfg.BalanceMin.IsZero() {
		cfg.BalanceMin = decimal.NewFromInt(1000000)
	}
	if cfg.ReassemblyWindow == 0 {
		cfg.ReassemblyWindow = 3
	}
	if cfg.Currency == "" {
		cfg.Currency = "PKR"
	}
	return cfg
}

// Extract runs the full bank-statement pipeline over normalized OCR lines
// using boundary-based segmentation.
func Extract(source string, lines []string) common.StatementResult {
	return ExtractUsing(segment.NewBoundaryStrategy(), source, lines)
}

// ExtractUsing runs the pipeline with an explicit segmentation strategy.
func ExtractUsing(strategy segment.Strategy, source string, lines []string) common.StatementResult {
	cfg := loadConfig()
	tokens := patterns.Scan(lines)
	boundaries := strategy.Segment(lines, tokens)
	log.Printf("\t%d lines, %d tokens, %d candidate boundaries", len(lines), len(tokens.All()), len(boundaries))

	transactions := []common.Transaction{}
	for _, b := range boundaries {
		if tx, ok := reconstruct(cfg, lines, b); ok {
			transactions = append(transactions, tx)
		}
	}

	return common.StatementResult{
		Source:       source,
		AccountInfo:  extractAccountInfo(cfg, lines, tokens),
		Transactions: transactions,
		Summary:      Summarize(transactions),
		RawText:      strings.Join(lines, "\n"),
	}
}

// reconstruct assembles one Transaction from a boundary. A boundary whose
// amounts are all zero resolves to no transaction at all.
func reconstruct(cfg config, lines []string, b common.Boundary) (common.Transaction, bool) {
	tx := common.Transaction{
		Withdrawal: decimal.Zero,
		Deposit:    decimal.Zero,
		Balance:    decimal.Zero,
		RawLine:    strings.Join(lines[b.Start:b.End+1], " | "),
	}

	// Dates: highest confidence wins; value date defaults to the
	// transaction date when the boundary holds no second date.
	dates := byConfidence(tokensOf(b, common.CategoryDate))
	if len(dates) > 0 {
		tx.TxnDate = dates[0].Value
		tx.ValueDate = dates[0].Value
		for _, d := range dates[1:] {
			if d.Value != dates[0].Value {
				tx.ValueDate = d.Value
				break
			}
		}
	}

	// Transaction type and bank name: specific patterns carry higher
	// confidence than generic vocabulary, so best-by-confidence implements
	// the specific-over-generic preference.
	if t, ok := bestOf(b, common.CategoryTransactionType); ok {
		tx.TxnType = t.Value
	}
	if t, ok := bestOf(b, common.CategoryBankName); ok {
		tx.RemitterBank = t.Value
	}
	if t, ok := bestOf(b, common.CategoryBranch); ok {
		tx.BranchName = t.Value
	}

	// References: best token becomes the transaction ref; every reference
	// in document order lands in the narration so free text stays
	// searchable even when attribution is lossy.
	refs := tokensOf(b, common.CategoryReference)
	if r, ok := best(refs); ok {
		tx.TransactionRef = r.Value
	}
	if len(refs) > 0 {
		parts := make([]string, 0, len(refs))
		for _, r := range refs {
			parts = append(parts, r.Raw)
		}
		tx.Narration = strings.Join(parts, " | ")
	}

	// Amount categorization by magnitude. First-seen token per category
	// wins; later tokens in the same band are echoes of the same figure.
	assigned := map[string]bool{}
	for _, t := range dedupeAmounts(tokensOf(b, common.CategoryAmount), b.Tokens) {
		switch category := categorizeAmount(cfg, t.Amount); category {
		case "balance":
			if !assigned[category] {
				tx.Balance = t.Amount
				assigned[category] = true
			}
		case "deposit":
			if !assigned[category] {
				tx.Deposit = t.Amount
				assigned[category] = true
			}
		default:
			if !assigned[category] {
				tx.Withdrawal = t.Amount
				assigned[category] = true
			}
		}
	}

	// Accounts: first resolved account is the source, second the
	// destination. Partials are pushed through split reconstruction first.
	var accounts []string
	for _, t := range tokensOf(b, common.CategoryAccountNumber) {
		v := ResolveAccount(lines, t, cfg.ReassemblyWindow)
		if v == "" || contains(accounts, v) {
			continue
		}
		accounts = append(accounts, v)
	}
	if len(accounts) > 0 {
		tx.SourceAccount = accounts[0]
	}
	if len(accounts) > 1 {
		tx.DestinationAccount = accounts[1]
	}

	return tx, tx.Meaningful()
}

// categorizeAmount is the magnitude heuristic: local-currency balances are
// typically large, deposits mid-sized, and zero rows are empty withdrawal
// columns. Thresholds are injected configuration, not semantics recovered
// from the OCR text.
func categorizeAmount(cfg config, amount decimal.Decimal) string {
	switch {
	case amount.GreaterThanOrEqual(cfg.BalanceMin):
		return "balance"
	case amount.GreaterThanOrEqual(cfg.DepositMin):
		return "deposit"
	default:
		return "withdrawal"
	}
}

// dedupeAmounts drops amount tokens that are fragments of a longer match on
// the same line: "63" and "024" inside "63,024.00", or "2024" inside the
// date "01-Jan-2024". The scan layer emits everything; disambiguation
// belongs here.
func dedupeAmounts(amounts, all []common.Token) []common.Token {
	var out []common.Token
	for _, t := range amounts {
		fragment := false
		for _, other := range all {
			if other.Line != t.Line || len(other.Raw) <= len(t.Raw) {
				continue
			}
			if strings.Contains(other.Raw, t.Raw) {
				fragment = true
				break
			}
		}
		if !fragment {
			out = append(out, t)
		}
	}
	return out
}

// extractAccountInfo fills the document-level header fields from the
// highest-confidence tokens, independent of the transaction list.
func extractAccountInfo(cfg config, lines []string, tokens patterns.TokenSet) common.AccountInfo {
	info := common.AccountInfo{Currency: cfg.Currency}

	if t, ok := tokens.Best(common.CategoryAccountNumber); ok {
		info.AccountNumber = ResolveAccount(lines, t, cfg.ReassemblyWindow)
	}
	if t, ok := tokens.Best(common.CategoryBankName); ok {
		info.BankName = t.Value
	}
	if t, ok := tokens.Best(common.CategoryBranch); ok {
		info.BranchName = t.Value
	}

	dates := tokens.Category(common.CategoryDate)
	if len(dates) > 0 {
		info.FromDate = dates[0].Value
		info.ToDate = dates[len(dates)-1].Value
		if t, ok := best(dates); ok {
			info.StatementDate = t.Value
		}
	}

	info.AccountTitle = findAccountTitle(lines)
	return info
}

// findAccountTitle looks for the account holder's printed name: an ALL-CAPS
// multi-word line in the header region that is not bank or label vocabulary.
func findAccountTitle(lines []string) string {
	tables := patterns.LoadTables()
	limit := 15
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if !common.IsUpperLine(line) {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "statement") || strings.Contains(lower, "account") || strings.Contains(lower, "branch") {
			continue
		}
		bankWord := false
		for kw := range tables.BankFull {
			if strings.Contains(lower, kw) {
				bankWord = true
				break
			}
		}
		if !bankWord {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// Summarize is a pure reduction over the final transaction list. Opening and
// closing balances are the min and max of the positive balances observed,
// not the chronological first and last.
func Summarize(transactions []common.Transaction) common.Summary {
	s := common.Summary{
		TotalTransactions: len(transactions),
		TotalDeposits:     decimal.Zero,
		TotalWithdrawals:  decimal.Zero,
		OpeningBalance:    decimal.Zero,
		ClosingBalance:    decimal.Zero,
	}
	for _, tx := range transactions {
		s.TotalDeposits = s.TotalDeposits.Add(tx.Deposit)
		s.TotalWithdrawals = s.TotalWithdrawals.Add(tx.Withdrawal)
		if tx.Balance.IsPositive() {
			if s.OpeningBalance.IsZero() || tx.Balance.LessThan(s.OpeningBalance) {
				s.OpeningBalance = tx.Balance
			}
			if tx.Balance.GreaterThan(s.ClosingBalance) {
				s.ClosingBalance = tx.Balance
			}
		}
	}
	return s
}

func tokensOf(b common.Boundary, c common.Category) []common.Token {
	var out []common.Token
	for _, t := range b.Tokens {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

func bestOf(b common.Boundary, c common.Category) (common.Token, bool) {
	return best(tokensOf(b, c))
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

func byConfidence(tokens []common.Token) []common.Token {
	out := make([]common.Token, len(tokens))
	copy(out, tokens)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
