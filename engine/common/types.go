package common

import (
	"github.com/shopspring/decimal"
)

// Category identifies the semantic class of a pattern match.
type Category string

const (
	CategoryDate            Category = "date"
	CategoryAmount          Category = "amount"
	CategoryTransactionType Category = "transactionType"
	CategoryBankName        Category = "bankName"
	CategoryAccountNumber   Category = "accountNumber"
	CategoryPhoneNumber     Category = "phoneNumber"
	CategoryReference       Category = "reference"
	CategoryBranch          Category = "branch"
)

// Token is a single regex match extracted from one line of OCR text.
// Tokens are produced by the pattern layer and never mutated afterwards.
type Token struct {
	Category   Category
	Raw        string
	Value      string          // normalized value (canonical bank name, cleaned number, ...)
	Amount     decimal.Decimal // set for amount tokens only
	Line       int             // zero-based source line index
	Confidence float64
}

// Boundary is a line-index range believed to correspond to one logical
// transaction, together with the tokens that fall inside it.
type Boundary struct {
	Start  int
	End    int
	Tokens []Token
}

// Transaction is a reconstructed bank-statement row. Field names are part of
// the output contract consumed by the reconciliation matcher downstream.
type Transaction struct {
	TxnDate            string          `json:"txnDate"`
	ValueDate          string          `json:"valueDate"`
	TxnType            string          `json:"txnType"`
	TransactionRef     string          `json:"transactionRef"`
	BranchName         string          `json:"branchName"`
	Narration          string          `json:"narration"`
	Withdrawal         decimal.Decimal `json:"withdrawal"`
	Deposit            decimal.Decimal `json:"deposit"`
	Balance            decimal.Decimal `json:"balance"`
	RemitterBank       string          `json:"remitterBank"`
	SourceAccount      string          `json:"sourceAccount"`
	DestinationAccount string          `json:"destinationAccount"`
	RawLine            string          `json:"rawLine"`
}

// Meaningful reports whether the transaction carries at least one nonzero
// amount. All-zero records are OCR noise and never surface in output.
func (t Transaction) Meaningful() bool {
	return t.Withdrawal.IsPositive() || t.Deposit.IsPositive() || t.Balance.IsPositive()
}

// AccountInfo holds the document-level header fields of a statement,
// populated once per document independently of the transaction list.
type AccountInfo struct {
	AccountNumber string `json:"accountNumber"`
	AccountTitle  string `json:"accountTitle"`
	Currency      string `json:"currency"`
	BankName      string `json:"bankName"`
	BranchName    string `json:"branchName"`
	FromDate      string `json:"fromDate"`
	ToDate        string `json:"toDate"`
	StatementDate string `json:"statementDate"`
}

// Summary is derived from the final transaction list.
type Summary struct {
	TotalTransactions int             `json:"totalTransactions"`
	TotalDeposits     decimal.Decimal `json:"totalDeposits"`
	TotalWithdrawals  decimal.Decimal `json:"totalWithdrawals"`
	OpeningBalance    decimal.Decimal `json:"openingBalance"`
	ClosingBalance    decimal.Decimal `json:"closingBalance"`
}

// StatementResult is the full output of the bank-statement path.
type StatementResult struct {
	Source       string        `json:"source,omitempty"`
	AccountInfo  AccountInfo   `json:"accountInfo"`
	Transactions []Transaction `json:"transactions"`
	Summary      Summary       `json:"summary"`
	RawText      string        `json:"rawText"`
}

// Receipt is the flat record produced by the mobile-payment path.
type Receipt struct {
	Service       string          `json:"service"`
	TransactionID string          `json:"transactionId"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	Amount        decimal.Decimal `json:"amount"`
	Fee           decimal.Decimal `json:"fee"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	FromName      string          `json:"fromName"`
	FromPhone     string          `json:"fromPhone"`
	FromAccount   string          `json:"fromAccount"`
	ToName        string          `json:"toName"`
	ToPhone       string          `json:"toPhone"`
	ToAccount     string          `json:"toAccount"`
	Status        string          `json:"status"`
	Currency      string          `json:"currency"`
}
