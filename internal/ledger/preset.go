package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PresetType classifies what flow a preset represents.
type PresetType string

const (
	PresetPurchase PresetType = "purchase"
	PresetSale     PresetType = "sale"
	PresetPayroll  PresetType = "payroll"
	PresetFinance  PresetType = "finance"
)

// SpecialType tags a preset whose posting is produced by a special rule
// instead of the generic per-row calculation.
type SpecialType string

const (
	SpecialNone           SpecialType = ""
	SpecialLoan           SpecialType = "loan"
	SpecialReverseCharge  SpecialType = "reverse-charge"
	SpecialImport         SpecialType = "import"
	SpecialRepresentation SpecialType = "representation"
	SpecialPayroll        SpecialType = "payroll"
)

// AccountRow is one template row of a generic preset. A row participates
// in at most one side; the engine computes the amount for that side.
type AccountRow struct {
	Number string `json:"number" yaml:"number"`
	Label  string `json:"label" yaml:"label"`
	Debit  bool   `json:"debit" yaml:"debit"`
	Credit bool   `json:"credit" yaml:"credit"`
}

// Validate checks row invariants.
func (r AccountRow) Validate() error {
	if !ValidAccountNumber(r.Number) {
		return fmt.Errorf("%w: %q", ErrMalformedAccountNumber, r.Number)
	}
	if r.Debit && r.Credit {
		return fmt.Errorf("%w: %s", ErrRowBothSides, r.Number)
	}
	return nil
}

// Preset is an immutable transaction template. A preset is either generic
// (posted row by row through the amount calculator) or special (posted by
// the rule registered for Special); the assembler dispatches on the tag
// exactly once.
type Preset struct {
	ID       string          `json:"id" yaml:"id"`
	Name     string          `json:"name" yaml:"name"`
	Category string          `json:"category" yaml:"category"`
	Type     PresetType      `json:"type" yaml:"type"`
	VATRate  decimal.Decimal `json:"vat_rate" yaml:"vat_rate"`
	Special  SpecialType     `json:"special,omitempty" yaml:"special,omitempty"`
	Rows     []AccountRow    `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Validate checks preset invariants.
func (p *Preset) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("preset id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("preset %s: name is required", p.ID)
	}
	if p.VATRate.IsNegative() || p.VATRate.GreaterThanOrEqual(one) {
		return fmt.Errorf("preset %s: vat rate %s out of range", p.ID, p.VATRate)
	}
	if p.Special == SpecialNone && len(p.Rows) == 0 {
		return fmt.Errorf("preset %s: generic preset needs account rows", p.ID)
	}
	if p.Special != SpecialNone {
		if _, err := RuleFor(p.Special); err != nil {
			return fmt.Errorf("preset %s: %w", p.ID, err)
		}
	}
	for _, r := range p.Rows {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("preset %s: %w", p.ID, err)
		}
	}
	return nil
}

// IsSale reports whether the preset represents revenue. Drives the VAT
// side and the settlement account choice in the amount calculator.
func (p *Preset) IsSale() bool {
	if p.Type == PresetSale {
		return true
	}
	for _, r := range p.Rows {
		if r.Credit && ClassOf(r.Number) == ClassRevenue {
			return true
		}
	}
	return false
}
