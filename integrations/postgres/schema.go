package postgres

import (
	"context"
	"fmt"
)

// Dates stay as text columns on purpose: the engine emits the raw OCR date
// forms and makes no promise they parse.
const ddl = `
-- Extracted bank statements
CREATE TABLE IF NOT EXISTS statements (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    source VARCHAR(255) NOT NULL,
    account_number VARCHAR(64) NOT NULL,
    account_title VARCHAR(255) DEFAULT '',
    bank_name VARCHAR(255) DEFAULT '',
    branch_name VARCHAR(255) DEFAULT '',
    currency VARCHAR(10) DEFAULT 'PKR',
    from_date VARCHAR(32) DEFAULT '',
    to_date VARCHAR(32) DEFAULT '',
    statement_date VARCHAR(32) DEFAULT '',
    total_deposits NUMERIC(18,2) NOT NULL DEFAULT 0,
    total_withdrawals NUMERIC(18,2) NOT NULL DEFAULT 0,
    opening_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
    closing_balance NUMERIC(18,2) NOT NULL DEFAULT 0,
    raw_text TEXT DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW(),

    -- Natural key for deduplication
    UNIQUE(account_number, statement_date)
);

-- Reconstructed transactions
CREATE TABLE IF NOT EXISTS transactions (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    statement_id UUID NOT NULL REFERENCES statements(id) ON DELETE CASCADE,
    sequence INTEGER NOT NULL,
    txn_date VARCHAR(32) DEFAULT '',
    value_date VARCHAR(32) DEFAULT '',
    txn_type VARCHAR(64) DEFAULT '',
    transaction_ref VARCHAR(255) DEFAULT '',
    branch_name VARCHAR(255) DEFAULT '',
    narration TEXT DEFAULT '',
    withdrawal NUMERIC(18,2) NOT NULL DEFAULT 0,
    deposit NUMERIC(18,2) NOT NULL DEFAULT 0,
    balance NUMERIC(18,2) NOT NULL DEFAULT 0,
    remitter_bank VARCHAR(255) DEFAULT '',
    source_account VARCHAR(64) DEFAULT '',
    destination_account VARCHAR(64) DEFAULT '',
    raw_line TEXT DEFAULT '',
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(statement_id, sequence)
);

-- Extracted payment receipts
CREATE TABLE IF NOT EXISTS receipts (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    source VARCHAR(255) NOT NULL,
    service VARCHAR(64) NOT NULL,
    transaction_ref VARCHAR(255) DEFAULT '',
    txn_date VARCHAR(32) DEFAULT '',
    txn_time VARCHAR(32) DEFAULT '',
    amount NUMERIC(18,2) NOT NULL DEFAULT 0,
    fee NUMERIC(18,2) NOT NULL DEFAULT 0,
    total_amount NUMERIC(18,2) NOT NULL DEFAULT 0,
    from_name VARCHAR(255) DEFAULT '',
    from_phone VARCHAR(32) DEFAULT '',
    from_account VARCHAR(64) DEFAULT '',
    to_name VARCHAR(255) DEFAULT '',
    to_phone VARCHAR(32) DEFAULT '',
    to_account VARCHAR(64) DEFAULT '',
    status VARCHAR(32) DEFAULT '',
    currency VARCHAR(10) DEFAULT 'PKR',
    created_at TIMESTAMPTZ DEFAULT NOW()
);

-- Dedup receipts that carry a provider transaction id
CREATE UNIQUE INDEX IF NOT EXISTS receipts_service_ref_idx
    ON receipts(service, transaction_ref)
    WHERE transaction_ref <> '';
`

// EnsureSchema creates the tables if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
