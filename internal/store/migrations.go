package store

import (
	"context"
	"database/sql"
	"fmt"
)

func (s *Store) migrate(ctx context.Context) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		)
	`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var version int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version < 1 {
		if err := migrateV1(ctx, tx); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return tx.Commit()
}

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		// Chart of accounts, one row per owner and account number.
		`CREATE TABLE IF NOT EXISTS accounts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id   TEXT NOT NULL,
			number     TEXT NOT NULL,
			name       TEXT NOT NULL,
			class      INTEGER NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
			UNIQUE (owner_id, number)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_owner ON accounts(owner_id)`,

		// Employees, suppliers, and customers referenced by transactions.
		`CREATE TABLE IF NOT EXISTS contacts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id   TEXT NOT NULL,
			kind       TEXT NOT NULL CHECK (kind IN ('employee','supplier','customer')),
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_owner ON contacts(owner_id)`,

		// Transaction headers.
		`CREATE TABLE IF NOT EXISTS transactions (
			id             TEXT PRIMARY KEY,
			owner_id       TEXT NOT NULL,
			txn_date       TEXT NOT NULL,
			description    TEXT NOT NULL,
			gross_amount   TEXT NOT NULL,
			comment        TEXT NOT NULL DEFAULT '',
			attachment_ref TEXT NOT NULL DEFAULT '',
			contact_id     INTEGER REFERENCES contacts(id),
			finalized      INTEGER NOT NULL DEFAULT 0,
			created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_owner ON transactions(owner_id, txn_date)`,

		// Posting lines. Amounts are exact decimal strings.
		`CREATE TABLE IF NOT EXISTS entries (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			transaction_id TEXT NOT NULL REFERENCES transactions(id),
			account_id     INTEGER NOT NULL REFERENCES accounts(id),
			debit          TEXT NOT NULL DEFAULT '0',
			credit         TEXT NOT NULL DEFAULT '0',
			label          TEXT NOT NULL DEFAULT '',
			created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_txn ON entries(transaction_id)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_account ON entries(account_id)`,

		// One side per line.
		`CREATE TRIGGER IF NOT EXISTS trg_entry_one_side
		BEFORE INSERT ON entries
		WHEN CAST(NEW.debit AS REAL) != 0 AND CAST(NEW.credit AS REAL) != 0
		BEGIN
			SELECT RAISE(ABORT, 'entry has both debit and credit');
		END`,

		// Refuse to finalize an unbalanced transaction.
		`CREATE TRIGGER IF NOT EXISTS trg_check_balance
		BEFORE UPDATE OF finalized ON transactions
		WHEN NEW.finalized = 1
		BEGIN
			SELECT CASE
				WHEN ABS((
					SELECT COALESCE(SUM(CAST(debit AS REAL) - CAST(credit AS REAL)), 0)
					FROM entries
					WHERE transaction_id = NEW.id
				)) > 0.0001
				THEN RAISE(ABORT, 'transaction does not balance: debits != credits')
			END;
		END`,

		// Finalized transactions are immutable.
		`CREATE TRIGGER IF NOT EXISTS trg_immutable_entries_insert
		BEFORE INSERT ON entries
		WHEN (SELECT finalized FROM transactions WHERE id = NEW.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot add entries to a finalized transaction');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_entries_delete
		BEFORE DELETE ON entries
		WHEN (SELECT finalized FROM transactions WHERE id = OLD.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot remove entries from a finalized transaction');
		END`,

		`CREATE TRIGGER IF NOT EXISTS trg_immutable_entries_update
		BEFORE UPDATE ON entries
		WHEN (SELECT finalized FROM transactions WHERE id = OLD.transaction_id) = 1
		BEGIN
			SELECT RAISE(ABORT, 'cannot modify entries of a finalized transaction');
		END`,

		`INSERT INTO schema_version (version) VALUES (1)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:60], err)
		}
	}

	return nil
}
