package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// VAT on entertainment is deductible on at most 300 per person excluding
// VAT, for food and non-alcoholic drink only.
var representationCapPerHead = decimal.NewFromInt(300)

// Flat-rate alternative per person, reported for comparison only.
var schablonPerHead = decimal.NewFromInt(46)

// representationRule posts an entertainment (representation) expense.
// Deductible VAT and cost are computed proportionally against a cap of
// 300 per person excluding VAT on the food and non-alcoholic share;
// alcohol is never deductible and is excluded from the cap base. The
// disallowed remainder is posted to the non-deductible representation
// account. The flat-rate schablon (46 per person) is computed for
// display next to the proportional figure and never auto-applied.
func representationRule(gross, vatRate decimal.Decimal, _ Mode, in RuleInput) (RuleResult, error) {
	if in.Headcount <= 0 {
		return RuleResult{}, fmt.Errorf("%w: got %d", ErrZeroHeadcount, in.Headcount)
	}
	if gross.IsZero() || gross.IsNegative() {
		return RuleResult{}, fmt.Errorf("%w: representation total must be positive", ErrInvalidRuleInput)
	}

	alcohol := clampDecimal(in.AlcoholInclVAT, decimal.Zero, gross)
	food := clampDecimal(in.FoodInclVAT, decimal.Zero, gross.Sub(alcohol))

	capBase := representationCapPerHead.Mul(decimal.NewFromInt(int64(in.Headcount)))
	foodNet, foodVAT := ExtractVAT(food, vatRate)

	proportion := decimal.NewFromInt(1)
	if foodNet.GreaterThan(capBase) && !foodNet.IsZero() {
		proportion = capBase.Div(foodNet)
	}
	if foodNet.IsZero() {
		proportion = decimal.Zero
	}

	deductVAT := foodVAT.Mul(proportion).Round(2)
	deductNet := minDecimal(foodNet, capBase)
	disallowed := gross.Sub(deductVAT).Sub(deductNet)

	schablon := schablonPerHead.Mul(decimal.NewFromInt(int64(in.Headcount)))

	return RuleResult{
		Lines: []PostingLine{
			{AccountNumber: AccountInputVAT, Label: "Avdragsgill moms", Debit: deductVAT},
			{AccountNumber: AccountRepresentationDeductible, Label: "Representation avdragsgill", Debit: deductNet},
			{AccountNumber: AccountRepresentationNonDeductible, Label: "Representation ej avdragsgill", Debit: disallowed},
			{AccountNumber: AccountCompanyCash, Label: "Betalning", Credit: gross},
		},
		Schablon: schablon,
	}, nil
}
