package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/klingberg/bokfor/internal/ledger"
)

// EnsureChart seeds the base BAS chart for an owner. Already-seeded
// accounts are left alone, so this is safe to call on every request.
func (s *Store) EnsureChart(ctx context.Context, ownerID string) error {
	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO accounts (owner_id, number, name, class) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, e := range ledger.BaseChart {
		if _, err := stmt.ExecContext(ctx, ownerID, e.Number, e.Name, int(ledger.ClassOf(e.Number))); err != nil {
			return fmt.Errorf("seed account %s: %w", e.Number, err)
		}
	}
	return tx.Commit()
}

// CreateAccount adds a custom account to an owner's chart.
func (s *Store) CreateAccount(ctx context.Context, ownerID string, acct *ledger.Account) error {
	acct.Class = ledger.ClassOf(acct.Number)
	if err := acct.Validate(); err != nil {
		return err
	}
	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO accounts (owner_id, number, name, class) VALUES (?, ?, ?, ?)`,
		ownerID, acct.Number, acct.Name, int(acct.Class),
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	acct.ID, _ = res.LastInsertId()
	return nil
}

// ResolveAccount maps an account number to the owner's storage
// identifier. The chart is immutable reference data during a posting, so
// no locking beyond the connection pool is needed.
func (s *Store) ResolveAccount(ctx context.Context, ownerID, number string) (int64, error) {
	return resolveAccount(ctx, s.reader, ownerID, number)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func resolveAccount(ctx context.Context, q querier, ownerID, number string) (int64, error) {
	if !ledger.ValidAccountNumber(number) {
		return 0, fmt.Errorf("%w: %q", ledger.ErrMalformedAccountNumber, number)
	}
	var id int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE owner_id = ? AND number = ?`, ownerID, number,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("%w: %s", ledger.ErrUnknownAccount, number)
	}
	if err != nil {
		return 0, fmt.Errorf("resolve account %s: %w", number, err)
	}
	return id, nil
}

// GetAccount looks up one account by number within an owner's chart.
func (s *Store) GetAccount(ctx context.Context, ownerID, number string) (*ledger.Account, error) {
	var acct ledger.Account
	var class int
	err := s.reader.QueryRowContext(ctx,
		`SELECT id, number, name, class FROM accounts WHERE owner_id = ? AND number = ?`,
		ownerID, number,
	).Scan(&acct.ID, &acct.Number, &acct.Name, &class)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ledger.ErrUnknownAccount, number)
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	acct.Class = ledger.Class(class)
	return &acct, nil
}

// ListAccounts returns an owner's chart ordered by account number.
func (s *Store) ListAccounts(ctx context.Context, ownerID string) ([]ledger.Account, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT id, number, name, class FROM accounts WHERE owner_id = ? ORDER BY number`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []ledger.Account
	for rows.Next() {
		var acct ledger.Account
		var class int
		if err := rows.Scan(&acct.ID, &acct.Number, &acct.Name, &class); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		acct.Class = ledger.Class(class)
		accounts = append(accounts, acct)
	}
	return accounts, rows.Err()
}
