package postgres

import (
	"context"
	"fmt"

	"github.com/hisaabkit/hisaab/engine/common"
)

// StatementExists checks if a statement already exists using the natural key
// (account_number, statement_date).
func (db *DB) StatementExists(ctx context.Context, accountNumber, statementDate string) (bool, string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM statements
		WHERE account_number = $1 AND statement_date = $2
	`, accountNumber, statementDate).Scan(&id)

	if err != nil {
		if err.Error() == "no rows in result set" {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to check statement: %w", err)
	}

	return true, id, nil
}

// DeleteStatement removes a statement and its transactions (cascade).
func (db *DB) DeleteStatement(ctx context.Context, id string) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM statements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete statement: %w", err)
	}
	return nil
}

// CreateStatement inserts a statement record and returns its id.
func (db *DB) CreateStatement(ctx context.Context, result common.StatementResult) (string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO statements (
			source, account_number, account_title, bank_name, branch_name,
			currency, from_date, to_date, statement_date,
			total_deposits, total_withdrawals, opening_balance, closing_balance,
			raw_text
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id
	`,
		result.Source, result.AccountInfo.AccountNumber, result.AccountInfo.AccountTitle,
		result.AccountInfo.BankName, result.AccountInfo.BranchName,
		result.AccountInfo.Currency, result.AccountInfo.FromDate, result.AccountInfo.ToDate,
		result.AccountInfo.StatementDate,
		result.Summary.TotalDeposits, result.Summary.TotalWithdrawals,
		result.Summary.OpeningBalance, result.Summary.ClosingBalance,
		result.RawText,
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create statement: %w", err)
	}
	return id, nil
}

// CreateTransactions inserts the transactions of one statement.
func (db *DB) CreateTransactions(ctx context.Context, statementID string, transactions []common.Transaction) error {
	for i, tx := range transactions {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO transactions (
				statement_id, sequence, txn_date, value_date, txn_type,
				transaction_ref, branch_name, narration,
				withdrawal, deposit, balance,
				remitter_bank, source_account, destination_account, raw_line
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			ON CONFLICT (statement_id, sequence) DO NOTHING
		`,
			statementID, i+1, tx.TxnDate, tx.ValueDate, tx.TxnType,
			tx.TransactionRef, tx.BranchName, tx.Narration,
			tx.Withdrawal, tx.Deposit, tx.Balance,
			tx.RemitterBank, tx.SourceAccount, tx.DestinationAccount, tx.RawLine,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %d: %w", i+1, err)
		}
	}
	return nil
}

// CreateReceipt inserts a receipt; receipts with a provider transaction id
// are deduplicated via the partial unique index.
func (db *DB) CreateReceipt(ctx context.Context, source string, r common.Receipt) (inserted bool, err error) {
	tag, err := db.Pool.Exec(ctx, `
		INSERT INTO receipts (
			source, service, transaction_ref, txn_date, txn_time,
			amount, fee, total_amount,
			from_name, from_phone, from_account,
			to_name, to_phone, to_account,
			status, currency
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (service, transaction_ref) WHERE transaction_ref <> '' DO NOTHING
	`,
		source, r.Service, r.TransactionID, r.Date, r.Time,
		r.Amount, r.Fee, r.TotalAmount,
		r.FromName, r.FromPhone, r.FromAccount,
		r.ToName, r.ToPhone, r.ToAccount,
		r.Status, r.Currency,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert receipt: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
