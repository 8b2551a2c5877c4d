package statement

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/hisaabkit/hisaab/engine/common"
	"github.com/hisaabkit/hisaab/engine/patterns"
)

var statementLines = []string{
	"MEEZAN BANK LIMITED",
	"MUHAMMAD ALI RAZA",
	"Account No: PK36MEZN0001234567890123",
	"Gulberg Branch Lahore",
	"01-Jan-2024 RAAST Transfer",
	"TID: 9845123076",
	"0.00",
	"63,024.00",
	"1,250,000.00",
}

func TestExtract_FullStatement(t *testing.T) {
	result := Extract("statement.txt", statementLines)

	assert.Equal(t, "statement.txt", result.Source)
	assert.Equal(t, "PK36MEZN0001234567890123", result.AccountInfo.AccountNumber)
	assert.Equal(t, "Meezan Bank", result.AccountInfo.BankName)
	assert.Equal(t, "Gulberg Branch", result.AccountInfo.BranchName)
	assert.Equal(t, "MUHAMMAD ALI RAZA", result.AccountInfo.AccountTitle)
	assert.Equal(t, "PKR", result.AccountInfo.Currency)

	if assert.Len(t, result.Transactions, 1) {
		tx := result.Transactions[0]
		assert.Equal(t, "01-Jan-2024", tx.TxnDate)
		assert.Equal(t, "01-Jan-2024", tx.ValueDate)
		assert.Equal(t, "RAAST", tx.TxnType)
		assert.Equal(t, "9845123076", tx.TransactionRef)
		assert.Equal(t, "0", tx.Withdrawal.String())
		assert.Equal(t, "63024", tx.Deposit.String())
		assert.Equal(t, "1250000", tx.Balance.String())
	}

	assert.Equal(t, 1, result.Summary.TotalTransactions)
	assert.Equal(t, "63024", result.Summary.TotalDeposits.String())
	assert.Equal(t, "1250000", result.Summary.OpeningBalance.String())
	assert.Equal(t, "1250000", result.Summary.ClosingBalance.String())
}

func TestExtract_AllZeroBoundaryDropped(t *testing.T) {
	result := Extract("x.txt", []string{
		"01-Jan-2024 ATM Withdrawal",
		"0.00",
	})

	assert.Empty(t, result.Transactions)
	assert.Equal(t, 0, result.Summary.TotalTransactions)
}

func TestExtract_Idempotent(t *testing.T) {
	first := Extract("statement.txt", statementLines)
	second := Extract("statement.txt", statementLines)

	a, err := json.Marshal(first)
	assert.NoError(t, err)
	b, err := json.Marshal(second)
	assert.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCategorizeAmount_Bands(t *testing.T) {
	cfg := loadConfig()

	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "withdrawal"},
		{999, "withdrawal"},
		{1000, "deposit"},
		{999999, "deposit"},
		{1000000, "balance"},
		{5250000, "balance"},
	}

	for _, test := range tests {
		got := categorizeAmount(cfg, decimal.NewFromInt(test.amount))
		assert.Equal(t, test.expected, got, "amount %d", test.amount)
	}
}

func TestResolveAccount_SplitAcrossLines(t *testing.T) {
	lines := []string{
		"IBAN PK54BAHL",
		"1234567890",
	}
	tokens := scanTokens(t, lines)

	got := ResolveAccount(lines, tokens[0], 3)
	assert.Equal(t, "PK54BAHL1234567890", got)
}

func TestResolveAccount_GluesTwoRuns(t *testing.T) {
	lines := []string{
		"IBAN PK54BAHL",
		"12345",
		"67890",
	}
	tokens := scanTokens(t, lines)

	got := ResolveAccount(lines, tokens[0], 3)
	assert.Equal(t, "PK54BAHL1234567890", got)
}

func TestResolveAccount_PartialKeptWhenNoContinuation(t *testing.T) {
	lines := []string{"IBAN PK54BAHL", "no digits here"}
	tokens := scanTokens(t, lines)

	got := ResolveAccount(lines, tokens[0], 3)
	assert.Equal(t, "PK54BAHL", got)
}

func TestSummarize_MinMaxBalances(t *testing.T) {
	txs := []common.Transaction{
		{Balance: decimal.NewFromInt(5000000), Deposit: decimal.NewFromInt(1000), Withdrawal: decimal.Zero},
		{Balance: decimal.NewFromInt(2000000), Deposit: decimal.Zero, Withdrawal: decimal.NewFromInt(500)},
		{Balance: decimal.Zero, Deposit: decimal.NewFromInt(3000), Withdrawal: decimal.Zero},
	}

	s := Summarize(txs)
	assert.Equal(t, 3, s.TotalTransactions)
	assert.Equal(t, "4000", s.TotalDeposits.String())
	assert.Equal(t, "500", s.TotalWithdrawals.String())
	assert.Equal(t, "2000000", s.OpeningBalance.String())
	assert.Equal(t, "5000000", s.ClosingBalance.String())
}

func scanTokens(t *testing.T, lines []string) []common.Token {
	t.Helper()
	tokens := patterns.Scan(lines).Category(common.CategoryAccountNumber)
	if len(tokens) == 0 {
		t.Fatal("expected at least one account token")
	}
	return tokens
}
