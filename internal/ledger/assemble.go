package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Posting is an assembled, balance-checked set of posting lines ready to
// commit, plus display-only figures surfaced to the caller.
type Posting struct {
	Lines []PostingLine `json:"lines"`

	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`

	// Schablon carries the representation rule's flat-rate comparison
	// figure when applicable.
	Schablon decimal.Decimal `json:"schablon,omitempty"`
}

// Assemble produces the posting for a preset, gross amount, and mode.
// Special presets dispatch to their registered rule; generic presets run
// every account row through the transformer and the amount calculator.
// Zero-zero lines are dropped and the balance invariant is verified
// before anything is returned.
func Assemble(p *Preset, gross decimal.Decimal, mode Mode, in RuleInput) (*Posting, error) {
	if p == nil {
		return nil, ErrUnknownPreset
	}
	if p.Special != SpecialImport && !gross.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, gross)
	}

	var (
		lines    []PostingLine
		schablon decimal.Decimal
	)

	if p.Special != SpecialNone {
		fn, err := RuleFor(p.Special)
		if err != nil {
			return nil, err
		}
		res, err := fn(gross, p.VATRate, mode, in)
		if err != nil {
			return nil, err
		}
		lines = res.Lines
		schablon = res.Schablon
		for i := range lines {
			lines[i].AccountNumber = TransformAccount(lines[i].AccountNumber, mode)
		}
	} else {
		for _, row := range p.Rows {
			if err := row.Validate(); err != nil {
				return nil, err
			}
			number := TransformAccount(row.Number, mode)
			line := PostingLine{AccountNumber: number, Label: row.Label}
			if row.Debit {
				line.Debit = DebitAmount(number, gross, p.VATRate, mode)
			}
			if row.Credit {
				line.Credit = CreditAmount(number, gross, p.VATRate, mode)
			}
			lines = append(lines, line)
		}
	}

	kept := lines[:0]
	for _, l := range lines {
		if l.IsZero() {
			continue
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		kept = append(kept, l)
	}
	if len(kept) == 0 {
		return nil, ErrEmptyPosting
	}

	if err := ValidateBalance(kept); err != nil {
		return nil, err
	}

	posting := &Posting{Lines: kept, Schablon: schablon}
	for _, l := range kept {
		posting.TotalDebit = posting.TotalDebit.Add(l.Debit)
		posting.TotalCredit = posting.TotalCredit.Add(l.Credit)
	}
	return posting, nil
}
