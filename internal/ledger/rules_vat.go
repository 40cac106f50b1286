package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// reverseChargeRule posts an EU/foreign purchase under reverse-charge
// VAT. The buyer self-assesses VAT: output VAT and calculated input VAT
// cancel in the ledger but stay visible for the VAT return, and the
// assessment base is booked against a contra account so the expense is
// carried only once.
//
//	debit  expense account        amount
//	debit  4515/4535 (base)       amount
//	credit 4599 (contra)          amount
//	debit  2645 calc. input VAT   vat
//	credit 2614 output VAT r.c.   vat
//	credit cash/payable           amount
//
// where vat = amount * vatRate.
func reverseChargeRule(gross, vatRate decimal.Decimal, _ Mode, in RuleInput) (RuleResult, error) {
	expense := in.ExpenseAccount
	if expense == "" {
		expense = "4010"
	}
	if !ValidAccountNumber(expense) {
		return RuleResult{}, fmt.Errorf("%w: expense account %q", ErrInvalidRuleInput, expense)
	}

	base := AccountEUServices
	baseLabel := "Inköp tjänster EU"
	if in.Goods {
		base = AccountEUGoods
		baseLabel = "Inköp varor EU"
	}

	vat := gross.Mul(vatRate).Round(2)
	return RuleResult{Lines: []PostingLine{
		{AccountNumber: expense, Label: "Inköp", Debit: gross},
		{AccountNumber: base, Label: baseLabel, Debit: gross},
		{AccountNumber: AccountReverseChargeAdj, Label: "Justering omvänd moms", Credit: gross},
		{AccountNumber: AccountCalculatedInputVAT, Label: "Beräknad ingående moms", Debit: vat},
		{AccountNumber: AccountOutputVATReverse, Label: "Utgående moms omvänd skattskyldighet", Credit: vat},
		{AccountNumber: AccountCompanyCash, Label: "Betalning", Credit: gross},
	}}, nil
}

// Deductible share of the customs sub-amount: an approximation of the
// VAT embedded in customs and forwarding fees.
var customsVATShare = decimal.RequireFromString("0.20")

// Multiplier from the fictive VAT amount to the import assessment base
// (25% VAT: base = 4 * vat).
var importBaseMultiplier = decimal.NewFromInt(4)

// importRule posts an import of goods. The operator enters three
// sub-amounts: the customs/freight invoice including VAT, VAT-free other
// costs, and the fictive (notional) VAT amount from the customs bill.
// That the gross amount equals customs + other is a caller-side
// precondition; the rule only uses the sub-amounts.
func importRule(_, _ decimal.Decimal, _ Mode, in RuleInput) (RuleResult, error) {
	c, o, f := in.CustomsInclVAT, in.OtherVATFree, in.FictiveVAT
	if c.IsNegative() || o.IsNegative() || f.IsNegative() {
		return RuleResult{}, fmt.Errorf("%w: import sub-amounts must be non-negative", ErrInvalidRuleInput)
	}
	if c.Add(o).Add(f).IsZero() {
		return RuleResult{}, fmt.Errorf("%w: import sub-amounts are all zero", ErrInvalidRuleInput)
	}

	customsVAT := c.Mul(customsVATShare).Round(2)
	assessmentBase := f.Mul(importBaseMultiplier)

	return RuleResult{Lines: []PostingLine{
		{AccountNumber: AccountOutputVATImport, Label: "Utgående moms import", Credit: f},
		{AccountNumber: AccountInputVAT, Label: "Ingående moms import", Debit: f.Add(customsVAT)},
		{AccountNumber: AccountImportBase, Label: "Beskattningsunderlag import", Debit: assessmentBase},
		{AccountNumber: AccountImportBaseAdj, Label: "Motkonto beskattningsunderlag", Credit: assessmentBase},
		{AccountNumber: AccountFreightCustoms, Label: "Tull och frakt", Debit: c.Sub(customsVAT).Add(o)},
		{AccountNumber: AccountCompanyCash, Label: "Betalning", Credit: c.Add(o)},
	}}, nil
}
