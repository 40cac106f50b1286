package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RuleInput carries the free-form per-rule fields collected from the
// caller. Each rule validates the fields it needs and ignores the rest.
type RuleInput struct {
	// loan
	InterestPortion decimal.Decimal `json:"interest_portion,omitempty"`

	// reverse-charge
	Goods          bool   `json:"goods,omitempty"`
	ExpenseAccount string `json:"expense_account,omitempty"`

	// import
	CustomsInclVAT decimal.Decimal `json:"customs_incl_vat,omitempty"`
	OtherVATFree   decimal.Decimal `json:"other_vat_free,omitempty"`
	FictiveVAT     decimal.Decimal `json:"fictive_vat,omitempty"`

	// representation
	Headcount      int             `json:"headcount,omitempty"`
	FoodInclVAT    decimal.Decimal `json:"food_incl_vat,omitempty"`
	AlcoholInclVAT decimal.Decimal `json:"alcohol_incl_vat,omitempty"`

	// payroll
	WithheldTax decimal.Decimal `json:"withheld_tax,omitempty"`
}

// RuleResult is a fully computed posting produced by a special rule. The
// lines still pass through the account transformer for the settlement
// placeholder, but their amounts are final.
type RuleResult struct {
	Lines []PostingLine `json:"lines"`

	// Schablon is the flat-rate comparison figure the representation
	// rule reports (46 per person). Display only, never posted.
	Schablon decimal.Decimal `json:"schablon,omitempty"`
}

// RuleFunc computes the posting for one special type. Rules are pure:
// same inputs, same lines.
type RuleFunc func(gross, vatRate decimal.Decimal, mode Mode, in RuleInput) (RuleResult, error)

// ruleRegistry is resolved once at startup; an unregistered tag fails
// fast at preset validation instead of at posting time.
var ruleRegistry = map[SpecialType]RuleFunc{
	SpecialLoan:           loanRule,
	SpecialReverseCharge:  reverseChargeRule,
	SpecialImport:         importRule,
	SpecialRepresentation: representationRule,
	SpecialPayroll:        payrollRule,
}

// RuleFor returns the rule registered for a special type.
func RuleFor(t SpecialType) (RuleFunc, error) {
	fn, ok := ruleRegistry[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecialRule, t)
	}
	return fn, nil
}

// loanRule splits a loan payment into principal and interest: principal
// reduces the long-term debt, interest is expensed, the full amount
// settles against cash or payable depending on mode.
func loanRule(gross, _ decimal.Decimal, _ Mode, in RuleInput) (RuleResult, error) {
	if in.InterestPortion.IsNegative() || in.InterestPortion.GreaterThan(gross) {
		return RuleResult{}, fmt.Errorf("%w: interest portion %s outside [0, %s]",
			ErrInvalidRuleInput, in.InterestPortion, gross)
	}
	principal := gross.Sub(in.InterestPortion)
	return RuleResult{Lines: []PostingLine{
		{AccountNumber: AccountLongTermLoan, Label: "Amortering", Debit: principal},
		{AccountNumber: AccountInterestExpense, Label: "Ränta", Debit: in.InterestPortion},
		{AccountNumber: AccountCompanyCash, Label: "Betalning", Credit: gross},
	}}, nil
}

// payrollRule posts a salary run: gross salary and employer contributions
// are expensed, withheld tax and contributions become liabilities, the
// net salary settles against cash.
func payrollRule(gross, _ decimal.Decimal, _ Mode, in RuleInput) (RuleResult, error) {
	if in.WithheldTax.IsNegative() || in.WithheldTax.GreaterThan(gross) {
		return RuleResult{}, fmt.Errorf("%w: withheld tax %s outside [0, %s]",
			ErrInvalidRuleInput, in.WithheldTax, gross)
	}
	contrib := gross.Mul(employerContribRate).Round(2)
	net := gross.Sub(in.WithheldTax)
	return RuleResult{Lines: []PostingLine{
		{AccountNumber: AccountSalaries, Label: "Bruttolön", Debit: gross},
		{AccountNumber: AccountEmployerContrib, Label: "Arbetsgivaravgifter", Debit: contrib},
		{AccountNumber: AccountWithheldTax, Label: "Personalskatt", Credit: in.WithheldTax},
		{AccountNumber: AccountEmployerContribDue, Label: "Avräkning sociala avgifter", Credit: contrib},
		{AccountNumber: AccountCompanyCash, Label: "Nettolön", Credit: net},
	}}, nil
}

// Statutory employer contribution rate (arbetsgivaravgift).
var employerContribRate = decimal.RequireFromString("0.3142")
