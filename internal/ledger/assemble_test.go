package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purchasePreset() *Preset {
	return &Preset{
		ID: "kontorsmaterial", Name: "Kontorsmaterial",
		Type: PresetPurchase, VATRate: dec("0.25"),
		Rows: []AccountRow{
			{Number: "6110", Label: "Kontorsmaterial", Debit: true},
			{Number: AccountInputVAT, Label: "Ingående moms", Debit: true},
			{Number: AccountCompanyCash, Label: "Betalning", Credit: true},
		},
	}
}

func salePreset() *Preset {
	return &Preset{
		ID: "forsaljning", Name: "Försäljning tjänster",
		Type: PresetSale, VATRate: dec("0.25"),
		Rows: []AccountRow{
			{Number: AccountCompanyCash, Label: "Inbetalning", Debit: true},
			{Number: "3041", Label: "Försäljning tjänster", Credit: true},
			{Number: AccountOutputVAT, Label: "Utgående moms", Credit: true},
		},
	}
}

func TestAssemblePurchaseStandard(t *testing.T) {
	p, err := Assemble(purchasePreset(), dec("1250"), Mode{Kind: ModeStandard}, RuleInput{})
	require.NoError(t, err)
	require.Len(t, p.Lines, 3)

	assert.True(t, lineFor(t, p.Lines, "6110").Debit.Equal(dec("1000")))
	assert.True(t, lineFor(t, p.Lines, AccountInputVAT).Debit.Equal(dec("250")))
	assert.True(t, lineFor(t, p.Lines, AccountCompanyCash).Credit.Equal(dec("1250")))
	assert.True(t, p.TotalDebit.Equal(dec("1250")))
	assert.True(t, p.TotalCredit.Equal(dec("1250")))
}

func TestAssemblePurchaseReimbursement(t *testing.T) {
	// Paid privately: the settlement lands on the employee payable
	// instead of cash.
	p, err := Assemble(purchasePreset(), dec("1250"), Mode{Kind: ModeReimbursement}, RuleInput{})
	require.NoError(t, err)

	assert.True(t, lineFor(t, p.Lines, AccountEmployeePayable).Credit.Equal(dec("1250")))
	for _, l := range p.Lines {
		assert.NotEqual(t, AccountCompanyCash, l.AccountNumber)
	}
}

func TestAssemblePurchaseSupplierInvoice(t *testing.T) {
	mode := ModeFor(ModeSupplierInvoice, purchasePreset())
	assert.False(t, mode.IsSale)

	p, err := Assemble(purchasePreset(), dec("1250"), mode, RuleInput{})
	require.NoError(t, err)
	assert.True(t, lineFor(t, p.Lines, AccountPayables).Credit.Equal(dec("1250")))
}

func TestAssembleSaleStandard(t *testing.T) {
	// Cash sale: money lands directly on the bank account.
	mode := ModeFor(ModeStandard, salePreset())
	assert.True(t, mode.IsSale)

	p, err := Assemble(salePreset(), dec("1250"), mode, RuleInput{})
	require.NoError(t, err)
	assert.True(t, lineFor(t, p.Lines, AccountCompanyCash).Debit.Equal(dec("1250")))
	assert.True(t, lineFor(t, p.Lines, "3041").Credit.Equal(dec("1000")))
	assert.True(t, lineFor(t, p.Lines, AccountOutputVAT).Credit.Equal(dec("250")))
}

func TestAssembleSaleCustomerInvoice(t *testing.T) {
	mode := ModeFor(ModeCustomerInvoice, salePreset())
	p, err := Assemble(salePreset(), dec("1250"), mode, RuleInput{})
	require.NoError(t, err)

	assert.True(t, lineFor(t, p.Lines, AccountReceivables).Debit.Equal(dec("1250")))
	assert.True(t, lineFor(t, p.Lines, "3041").Credit.Equal(dec("1000")))
	assert.True(t, lineFor(t, p.Lines, AccountOutputVAT).Credit.Equal(dec("250")))
	assert.True(t, p.TotalDebit.Equal(p.TotalCredit))
}

func TestAssembleSaleSupplierInvoiceUsesReceivable(t *testing.T) {
	// A sale routed through the supplier-invoice mode still settles on
	// the receivable side.
	mode := ModeFor(ModeSupplierInvoice, salePreset())
	assert.True(t, mode.IsSale)

	p, err := Assemble(salePreset(), dec("500"), mode, RuleInput{})
	require.NoError(t, err)
	assert.True(t, lineFor(t, p.Lines, AccountReceivables).Debit.Equal(dec("500")))
}

func TestAssembleZeroRateDropsVATLine(t *testing.T) {
	preset := purchasePreset()
	preset.VATRate = decimal.Zero

	p, err := Assemble(preset, dec("1000"), Mode{Kind: ModeStandard}, RuleInput{})
	require.NoError(t, err)
	require.Len(t, p.Lines, 2, "zero-amount VAT line must be elided")
	assert.True(t, lineFor(t, p.Lines, "6110").Debit.Equal(dec("1000")))
	assert.True(t, lineFor(t, p.Lines, AccountCompanyCash).Credit.Equal(dec("1000")))
}

func TestAssembleSpecialPreset(t *testing.T) {
	preset := &Preset{
		ID: "lan", Name: "Lån", Type: PresetFinance, Special: SpecialLoan,
	}
	p, err := Assemble(preset, dec("10500"), Mode{Kind: ModeStandard},
		RuleInput{InterestPortion: dec("500")})
	require.NoError(t, err)
	require.Len(t, p.Lines, 3)
	assert.True(t, p.TotalDebit.Equal(dec("10500")))
	assert.True(t, p.TotalCredit.Equal(dec("10500")))
}

func TestAssembleSpecialPresetTransformsSettlement(t *testing.T) {
	// The loan rule settles on the cash placeholder, which the supplier
	// invoice mode remaps to the payable.
	preset := &Preset{
		ID: "lan", Name: "Lån", Type: PresetFinance, Special: SpecialLoan,
	}
	p, err := Assemble(preset, dec("10500"), Mode{Kind: ModeSupplierInvoice},
		RuleInput{InterestPortion: dec("500")})
	require.NoError(t, err)
	assert.True(t, lineFor(t, p.Lines, AccountPayables).Credit.Equal(dec("10500")))
}

func TestAssembleErrors(t *testing.T) {
	_, err := Assemble(nil, dec("100"), Mode{}, RuleInput{})
	assert.ErrorIs(t, err, ErrUnknownPreset)

	_, err = Assemble(purchasePreset(), decimal.Zero, Mode{}, RuleInput{})
	assert.ErrorIs(t, err, ErrAmountNotPositive)

	_, err = Assemble(purchasePreset(), dec("-5"), Mode{}, RuleInput{})
	assert.ErrorIs(t, err, ErrAmountNotPositive)

	bogus := &Preset{ID: "x", Name: "x", Special: SpecialType("bogus")}
	_, err = Assemble(bogus, dec("100"), Mode{}, RuleInput{})
	assert.ErrorIs(t, err, ErrUnknownSpecialRule)
}
