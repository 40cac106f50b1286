package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/klingberg/bokfor/internal/ledger"
)

// CommitTransaction atomically persists a transaction header and all its
// posting lines. The transaction is validated and every account number
// resolved before anything is written; any failure after that rolls the
// whole unit back, leaving the ledger unchanged.
func (s *Store) CommitTransaction(ctx context.Context, txn *ledger.Transaction) error {
	if txn.ID == "" {
		txn.ID = uuid.Must(uuid.NewV7()).String()
	}
	if txn.CreatedAt.IsZero() {
		txn.CreatedAt = time.Now().UTC()
	}
	if txn.Date.IsZero() {
		txn.Date = txn.CreatedAt
	}

	if err := txn.Validate(); err != nil {
		return err
	}

	tx, err := s.writer.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", ledger.ErrPersistence, err)
	}
	defer tx.Rollback()

	// Resolve every posting line to a storage identifier first; an
	// unknown account aborts before any write.
	accountIDs := make([]int64, len(txn.Lines))
	for i, l := range txn.Lines {
		id, err := resolveAccount(ctx, tx, txn.OwnerID, l.AccountNumber)
		if err != nil {
			return err
		}
		accountIDs[i] = id
	}

	var contactID any
	if txn.ContactID != 0 {
		contactID = txn.ContactID
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO transactions (id, owner_id, txn_date, description, gross_amount, comment, attachment_ref, contact_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.OwnerID, txn.Date.Format("2006-01-02"), txn.Description,
		txn.GrossAmount.String(), txn.Comment, txn.AttachmentRef, contactID,
		txn.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: insert transaction: %v", ledger.ErrPersistence, err)
	}

	for i := range txn.Lines {
		txn.Lines[i].TransactionID = txn.ID
		_, err = tx.ExecContext(ctx,
			`INSERT INTO entries (transaction_id, account_id, debit, credit, label) VALUES (?, ?, ?, ?, ?)`,
			txn.ID, accountIDs[i], txn.Lines[i].Debit.String(), txn.Lines[i].Credit.String(), txn.Lines[i].Label,
		)
		if err != nil {
			return fmt.Errorf("%w: insert entry %d: %v", ledger.ErrPersistence, i, err)
		}
	}

	// Finalize; the balance trigger backstops the validator.
	_, err = tx.ExecContext(ctx, `UPDATE transactions SET finalized = 1 WHERE id = ?`, txn.ID)
	if err != nil {
		return fmt.Errorf("%w: finalize transaction: %v", ledger.ErrPersistence, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ledger.ErrPersistence, err)
	}

	txn.Finalized = true
	return nil
}

// GetTransaction loads one committed transaction with its lines, scoped
// to the owner.
func (s *Store) GetTransaction(ctx context.Context, ownerID, id string) (*ledger.Transaction, error) {
	var txn ledger.Transaction
	var txnDate, gross, createdAt string
	var contactID sql.NullInt64
	var finalized int

	err := s.reader.QueryRowContext(ctx,
		`SELECT id, owner_id, txn_date, description, gross_amount, comment, attachment_ref, contact_id, finalized, created_at
		 FROM transactions WHERE id = ? AND owner_id = ?`, id, ownerID,
	).Scan(&txn.ID, &txn.OwnerID, &txnDate, &txn.Description, &gross,
		&txn.Comment, &txn.AttachmentRef, &contactID, &finalized, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	txn.Finalized = finalized == 1
	if txn.Date, err = time.Parse("2006-01-02", txnDate); err != nil {
		return nil, fmt.Errorf("transaction %s: parse date %q: %w", id, txnDate, err)
	}
	if txn.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("transaction %s: parse created_at %q: %w", id, createdAt, err)
	}
	if txn.GrossAmount, err = decimal.NewFromString(gross); err != nil {
		return nil, fmt.Errorf("transaction %s: parse gross amount %q: %w", id, gross, err)
	}
	if contactID.Valid {
		txn.ContactID = contactID.Int64
	}

	lines, err := s.getLinesForTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	txn.Lines = lines

	return &txn, nil
}

// ListTransactions returns an owner's committed transactions, newest
// first, optionally filtered to those touching one account.
func (s *Store) ListTransactions(ctx context.Context, ownerID string, filter TxnFilter) ([]ledger.Transaction, error) {
	query := `SELECT DISTINCT t.id FROM transactions t`
	args := []any{}

	if filter.AccountNumber != "" {
		query += ` JOIN entries e ON e.transaction_id = t.id
			JOIN accounts a ON a.id = e.account_id
			WHERE a.number = ? AND t.owner_id = ?`
		args = append(args, filter.AccountNumber, ownerID)
	} else {
		query += ` WHERE t.owner_id = ?`
		args = append(args, ownerID)
	}

	query += ` AND t.finalized = 1 ORDER BY t.txn_date DESC, t.created_at DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, filter.Offset)
		}
	}

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan transaction id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var txns []ledger.Transaction
	for _, id := range ids {
		txn, err := s.GetTransaction(ctx, ownerID, id)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	return txns, nil
}

func (s *Store) getLinesForTransaction(ctx context.Context, txnID string) ([]ledger.PostingLine, error) {
	rows, err := s.reader.QueryContext(ctx,
		`SELECT e.id, e.transaction_id, a.number, e.debit, e.credit, e.label, e.created_at
		 FROM entries e JOIN accounts a ON a.id = e.account_id
		 WHERE e.transaction_id = ? ORDER BY e.id`, txnID)
	if err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}
	defer rows.Close()

	var lines []ledger.PostingLine
	for rows.Next() {
		var l ledger.PostingLine
		var debit, credit, createdAt string
		if err := rows.Scan(&l.ID, &l.TransactionID, &l.AccountNumber, &debit, &credit, &l.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if l.Debit, err = decimal.NewFromString(debit); err != nil {
			return nil, fmt.Errorf("entry %d: parse debit %q: %w", l.ID, debit, err)
		}
		if l.Credit, err = decimal.NewFromString(credit); err != nil {
			return nil, fmt.Errorf("entry %d: parse credit %q: %w", l.ID, credit, err)
		}
		if l.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("entry %d: parse created_at %q: %w", l.ID, createdAt, err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
