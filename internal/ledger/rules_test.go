package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineFor(t *testing.T, lines []PostingLine, number string) PostingLine {
	t.Helper()
	for _, l := range lines {
		if l.AccountNumber == number {
			return l
		}
	}
	t.Fatalf("no line for account %s", number)
	return PostingLine{}
}

func sumSides(lines []PostingLine) (debit, credit decimal.Decimal) {
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

func TestLoanRule(t *testing.T) {
	res, err := loanRule(dec("10500"), decimal.Zero, Mode{Kind: ModeStandard},
		RuleInput{InterestPortion: dec("500")})
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)

	assert.True(t, lineFor(t, res.Lines, AccountLongTermLoan).Debit.Equal(dec("10000")))
	assert.True(t, lineFor(t, res.Lines, AccountInterestExpense).Debit.Equal(dec("500")))
	assert.True(t, lineFor(t, res.Lines, AccountCompanyCash).Credit.Equal(dec("10500")))

	debit, credit := sumSides(res.Lines)
	assert.True(t, debit.Equal(credit))
}

func TestLoanRuleRejectsBadInterest(t *testing.T) {
	_, err := loanRule(dec("100"), decimal.Zero, Mode{}, RuleInput{InterestPortion: dec("101")})
	assert.ErrorIs(t, err, ErrInvalidRuleInput)

	_, err = loanRule(dec("100"), decimal.Zero, Mode{}, RuleInput{InterestPortion: dec("-1")})
	assert.ErrorIs(t, err, ErrInvalidRuleInput)
}

func TestPayrollRule(t *testing.T) {
	res, err := payrollRule(dec("30000"), decimal.Zero, Mode{Kind: ModeStandard},
		RuleInput{WithheldTax: dec("7500")})
	require.NoError(t, err)
	require.Len(t, res.Lines, 5)

	// Employer contributions: 30000 * 0.3142 = 9426.
	assert.True(t, lineFor(t, res.Lines, AccountSalaries).Debit.Equal(dec("30000")))
	assert.True(t, lineFor(t, res.Lines, AccountEmployerContrib).Debit.Equal(dec("9426")))
	assert.True(t, lineFor(t, res.Lines, AccountWithheldTax).Credit.Equal(dec("7500")))
	assert.True(t, lineFor(t, res.Lines, AccountEmployerContribDue).Credit.Equal(dec("9426")))
	assert.True(t, lineFor(t, res.Lines, AccountCompanyCash).Credit.Equal(dec("22500")))

	debit, credit := sumSides(res.Lines)
	assert.True(t, debit.Equal(credit), "debit %s credit %s", debit, credit)
}

func TestReverseChargeRule(t *testing.T) {
	res, err := reverseChargeRule(dec("1000"), dec("0.25"), Mode{Kind: ModeStandard}, RuleInput{})
	require.NoError(t, err)
	require.Len(t, res.Lines, 6)

	// Reverse charge assesses VAT on the full amount, no extraction.
	assert.True(t, lineFor(t, res.Lines, "4010").Debit.Equal(dec("1000")))
	assert.True(t, lineFor(t, res.Lines, AccountEUServices).Debit.Equal(dec("1000")))
	assert.True(t, lineFor(t, res.Lines, AccountReverseChargeAdj).Credit.Equal(dec("1000")))
	assert.True(t, lineFor(t, res.Lines, AccountCalculatedInputVAT).Debit.Equal(dec("250")))
	assert.True(t, lineFor(t, res.Lines, AccountOutputVATReverse).Credit.Equal(dec("250")))
	assert.True(t, lineFor(t, res.Lines, AccountCompanyCash).Credit.Equal(dec("1000")))

	debit, credit := sumSides(res.Lines)
	assert.True(t, debit.Equal(dec("2250")), "debit %s", debit)
	assert.True(t, credit.Equal(dec("2250")), "credit %s", credit)
}

func TestReverseChargeRuleGoods(t *testing.T) {
	res, err := reverseChargeRule(dec("800"), dec("0.25"), Mode{},
		RuleInput{Goods: true, ExpenseAccount: "4545"})
	require.NoError(t, err)
	assert.True(t, lineFor(t, res.Lines, AccountEUGoods).Debit.Equal(dec("800")))
	assert.True(t, lineFor(t, res.Lines, "4545").Debit.Equal(dec("800")))
}

func TestReverseChargeRuleRejectsBadExpenseAccount(t *testing.T) {
	_, err := reverseChargeRule(dec("100"), dec("0.25"), Mode{}, RuleInput{ExpenseAccount: "99"})
	assert.ErrorIs(t, err, ErrInvalidRuleInput)
}

func TestImportRule(t *testing.T) {
	res, err := importRule(decimal.Zero, decimal.Zero, Mode{Kind: ModeStandard}, RuleInput{
		CustomsInclVAT: dec("1000"),
		OtherVATFree:   dec("200"),
		FictiveVAT:     dec("500"),
	})
	require.NoError(t, err)
	require.Len(t, res.Lines, 6)

	assert.True(t, lineFor(t, res.Lines, AccountOutputVATImport).Credit.Equal(dec("500")))
	// Input VAT: fictive + 20% of customs = 500 + 200.
	assert.True(t, lineFor(t, res.Lines, AccountInputVAT).Debit.Equal(dec("700")))
	// Assessment base: 4x the fictive VAT, posted and countered.
	assert.True(t, lineFor(t, res.Lines, AccountImportBase).Debit.Equal(dec("2000")))
	assert.True(t, lineFor(t, res.Lines, AccountImportBaseAdj).Credit.Equal(dec("2000")))
	// Freight/customs expense: customs minus its VAT share plus other fees.
	assert.True(t, lineFor(t, res.Lines, AccountFreightCustoms).Debit.Equal(dec("1000")))
	// Settlement: the actual invoice total, fictive VAT excluded.
	assert.True(t, lineFor(t, res.Lines, AccountCompanyCash).Credit.Equal(dec("1200")))

	debit, credit := sumSides(res.Lines)
	assert.True(t, debit.Equal(credit), "debit %s credit %s", debit, credit)
}

func TestImportRuleRejectsBadInput(t *testing.T) {
	_, err := importRule(decimal.Zero, decimal.Zero, Mode{}, RuleInput{CustomsInclVAT: dec("-1")})
	assert.ErrorIs(t, err, ErrInvalidRuleInput)

	_, err = importRule(decimal.Zero, decimal.Zero, Mode{}, RuleInput{})
	assert.ErrorIs(t, err, ErrInvalidRuleInput)
}

func TestRepresentationRuleUnderCap(t *testing.T) {
	// 2 people, food only, net under the 600 cap: everything except the
	// disallowed remainder of zero is deductible.
	res, err := representationRule(dec("500"), dec("0.12"), Mode{Kind: ModeStandard}, RuleInput{
		Headcount:   2,
		FoodInclVAT: dec("500"),
	})
	require.NoError(t, err)

	assert.True(t, lineFor(t, res.Lines, AccountInputVAT).Debit.Equal(dec("53.57")))
	assert.True(t, lineFor(t, res.Lines, AccountRepresentationDeductible).Debit.Equal(dec("446.43")))
	assert.True(t, lineFor(t, res.Lines, AccountRepresentationNonDeductible).Debit.IsZero())
	assert.True(t, lineFor(t, res.Lines, AccountCompanyCash).Credit.Equal(dec("500")))
	assert.True(t, res.Schablon.Equal(dec("92")))
}

func TestRepresentationRuleOverCap(t *testing.T) {
	// 4 people, 2000 food incl VAT at 12%: net 1785.71 exceeds the 1200
	// cap, so VAT is deducted proportionally and the rest is disallowed.
	res, err := representationRule(dec("2000"), dec("0.12"), Mode{Kind: ModeStandard}, RuleInput{
		Headcount:   4,
		FoodInclVAT: dec("2000"),
	})
	require.NoError(t, err)

	assert.True(t, lineFor(t, res.Lines, AccountInputVAT).Debit.Equal(dec("144")),
		"deductible vat: %s", lineFor(t, res.Lines, AccountInputVAT).Debit)
	assert.True(t, lineFor(t, res.Lines, AccountRepresentationDeductible).Debit.Equal(dec("1200")))
	assert.True(t, lineFor(t, res.Lines, AccountRepresentationNonDeductible).Debit.Equal(dec("656")))
	assert.True(t, lineFor(t, res.Lines, AccountCompanyCash).Credit.Equal(dec("2000")))
	assert.True(t, res.Schablon.Equal(dec("184")))

	debit, credit := sumSides(res.Lines)
	assert.True(t, debit.Equal(credit))
}

func TestRepresentationRuleAlcoholExcluded(t *testing.T) {
	// Alcohol never enters the deductible base; it lands in disallowed.
	res, err := representationRule(dec("1000"), dec("0.12"), Mode{Kind: ModeStandard}, RuleInput{
		Headcount:      2,
		FoodInclVAT:    dec("600"),
		AlcoholInclVAT: dec("400"),
	})
	require.NoError(t, err)

	// Food 600 at 12%: vat 64.29, net 535.71, under the 600 cap.
	assert.True(t, lineFor(t, res.Lines, AccountInputVAT).Debit.Equal(dec("64.29")))
	assert.True(t, lineFor(t, res.Lines, AccountRepresentationDeductible).Debit.Equal(dec("535.71")))
	assert.True(t, lineFor(t, res.Lines, AccountRepresentationNonDeductible).Debit.Equal(dec("400")))

	debit, credit := sumSides(res.Lines)
	assert.True(t, debit.Equal(credit))
}

func TestRepresentationRuleRejectsZeroHeadcount(t *testing.T) {
	_, err := representationRule(dec("100"), dec("0.12"), Mode{}, RuleInput{Headcount: 0})
	assert.ErrorIs(t, err, ErrZeroHeadcount)
}

func TestRuleFor(t *testing.T) {
	for _, special := range []SpecialType{
		SpecialLoan, SpecialReverseCharge, SpecialImport, SpecialRepresentation, SpecialPayroll,
	} {
		fn, err := RuleFor(special)
		require.NoError(t, err)
		require.NotNil(t, fn)
	}
	_, err := RuleFor(SpecialType("no-such-rule"))
	assert.ErrorIs(t, err, ErrUnknownSpecialRule)
}
