package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/klingberg/bokfor/internal/ledger"
)

// Contact is an employee, supplier, or customer an owner can reference
// from a transaction (reimbursements and invoices).
type Contact struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CreateContact adds a contact to an owner's register.
func (s *Store) CreateContact(ctx context.Context, c *Contact) error {
	if c.Name == "" {
		return fmt.Errorf("contact name is required")
	}
	switch c.Kind {
	case "employee", "supplier", "customer":
	default:
		return fmt.Errorf("invalid contact kind %q", c.Kind)
	}
	res, err := s.writer.ExecContext(ctx,
		`INSERT INTO contacts (owner_id, kind, name) VALUES (?, ?, ?)`,
		c.OwnerID, c.Kind, c.Name)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return nil
}

// GetContact loads a contact by id and verifies it belongs to the owner.
// A contact owned by someone else is an ownership violation, not a miss.
func (s *Store) GetContact(ctx context.Context, ownerID string, id int64) (*Contact, error) {
	var c Contact
	var createdAt string
	err := s.reader.QueryRowContext(ctx,
		`SELECT id, owner_id, kind, name, created_at FROM contacts WHERE id = ?`, id,
	).Scan(&c.ID, &c.OwnerID, &c.Kind, &c.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ledger.ErrContactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get contact: %w", err)
	}
	if c.OwnerID != ownerID {
		return nil, fmt.Errorf("%w: contact %d", ledger.ErrOwnership, id)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &c, nil
}

// ListContacts returns an owner's contacts, optionally filtered by kind.
func (s *Store) ListContacts(ctx context.Context, ownerID string, filter ContactFilter) ([]Contact, error) {
	query := `SELECT id, owner_id, kind, name, created_at FROM contacts WHERE owner_id = ?`
	args := []any{ownerID}
	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, filter.Kind)
	}
	query += ` ORDER BY name`

	rows, err := s.reader.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		var createdAt string
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Kind, &c.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
