package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PostingLine is one debit-or-credit entry against one ledger account.
// Exactly one side is non-zero; zero-zero lines are elided before commit.
type PostingLine struct {
	ID            int64           `json:"id,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	AccountNumber string          `json:"account_number"`
	Label         string          `json:"label"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// Validate checks line invariants: a valid account number, non-negative
// amounts, and at most one non-zero side.
func (l PostingLine) Validate() error {
	if !ValidAccountNumber(l.AccountNumber) {
		return fmt.Errorf("%w: %q", ErrMalformedAccountNumber, l.AccountNumber)
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return fmt.Errorf("line %s: amounts must be non-negative", l.AccountNumber)
	}
	if !l.Debit.IsZero() && !l.Credit.IsZero() {
		return fmt.Errorf("line %s: debit and credit are both non-zero", l.AccountNumber)
	}
	return nil
}

// IsZero reports whether both sides are zero.
func (l PostingLine) IsZero() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// Transaction is a committed ledger transaction: one header plus its
// posting lines. Immutable once finalized; corrections are posted as new
// reversing transactions.
type Transaction struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"owner_id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	Comment       string          `json:"comment,omitempty"`
	AttachmentRef string          `json:"attachment_ref,omitempty"`
	ContactID     int64           `json:"contact_id,omitempty"`
	Lines         []PostingLine   `json:"lines"`
	Finalized     bool            `json:"finalized"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// Validate checks transaction invariants: description present, at least
// two lines, every line valid, debits equal credits within tolerance.
func (t *Transaction) Validate() error {
	if t.Description == "" {
		return ErrEmptyDescription
	}
	if len(t.Lines) < 2 {
		return fmt.Errorf("%w: need at least 2 lines", ErrEmptyPosting)
	}
	for _, l := range t.Lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	return ValidateBalance(t.Lines)
}

// ValidateBalance verifies that total debits equal total credits within
// the balance tolerance of 0.0001.
func ValidateBalance(lines []PostingLine) error {
	var totalDebit, totalCredit decimal.Decimal
	for _, l := range lines {
		totalDebit = totalDebit.Add(l.Debit)
		totalCredit = totalCredit.Add(l.Credit)
	}
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceTolerance) {
		return fmt.Errorf("%w: debit %s != credit %s",
			ErrUnbalancedPosting, totalDebit.StringFixed(2), totalCredit.StringFixed(2))
	}
	return nil
}
