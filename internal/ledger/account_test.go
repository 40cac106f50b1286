package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccountNumber(t *testing.T) {
	valid := []string{"1930", "2641", "9999", "1000"}
	for _, n := range valid {
		assert.True(t, ValidAccountNumber(n), n)
	}
	invalid := []string{"", "193", "19300", "0930", "19a0", " 1930", "1930 "}
	for _, n := range invalid {
		assert.False(t, ValidAccountNumber(n), "%q should be invalid", n)
	}
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, ClassAssets, ClassOf("1930"))
	assert.Equal(t, ClassLiabilities, ClassOf("2641"))
	assert.Equal(t, ClassRevenue, ClassOf("3041"))
	assert.Equal(t, Class(6), ClassOf("6110"))
	assert.Equal(t, Class(0), ClassOf("bogus"))
}

func TestChartCoversEngineAccounts(t *testing.T) {
	// Every account the engine writes to directly must exist in the base
	// chart, or commits would fail account resolution.
	engineAccounts := []string{
		AccountCompanyCash, AccountReceivables, AccountPayables, AccountEmployeePayable,
		AccountInputVAT, AccountOutputVAT, AccountOutputVATReverse, AccountOutputVATImport,
		AccountCalculatedInputVAT, AccountEUGoods, AccountEUServices, AccountReverseChargeAdj,
		AccountImportBase, AccountImportBaseAdj, AccountFreightCustoms,
		AccountLongTermLoan, AccountInterestExpense,
		AccountRepresentationDeductible, AccountRepresentationNonDeductible,
		AccountSalaries, AccountEmployerContrib, AccountWithheldTax, AccountEmployerContribDue,
	}
	for _, number := range engineAccounts {
		assert.NotNil(t, LookupChartEntry(number), "account %s missing from base chart", number)
	}
}

func TestPresetValidate(t *testing.T) {
	tests := []struct {
		name    string
		preset  Preset
		wantErr bool
	}{
		{"valid generic", *purchasePreset(), false},
		{"valid special", Preset{ID: "lan", Name: "Lån", Special: SpecialLoan}, false},
		{"missing id", Preset{Name: "x", Special: SpecialLoan}, true},
		{"missing name", Preset{ID: "x", Special: SpecialLoan}, true},
		{"generic without rows", Preset{ID: "x", Name: "x"}, true},
		{"vat rate out of range", Preset{ID: "x", Name: "x", VATRate: dec("1"), Special: SpecialLoan}, true},
		{"negative vat rate", Preset{ID: "x", Name: "x", VATRate: dec("-0.1"), Special: SpecialLoan}, true},
		{"unregistered special", Preset{ID: "x", Name: "x", Special: SpecialType("nope")}, true},
		{"row on both sides", Preset{ID: "x", Name: "x", Rows: []AccountRow{
			{Number: "6110", Debit: true, Credit: true},
		}}, true},
		{"malformed row number", Preset{ID: "x", Name: "x", Rows: []AccountRow{
			{Number: "61", Debit: true},
		}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.preset.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	txn := &Transaction{
		Description: "Kontorsmaterial",
		Lines: []PostingLine{
			{AccountNumber: "6110", Debit: dec("1000")},
			{AccountNumber: AccountInputVAT, Debit: dec("250")},
			{AccountNumber: AccountCompanyCash, Credit: dec("1250")},
		},
	}
	assert.NoError(t, txn.Validate())

	noDesc := *txn
	noDesc.Description = ""
	assert.ErrorIs(t, noDesc.Validate(), ErrEmptyDescription)

	short := *txn
	short.Lines = txn.Lines[:1]
	assert.ErrorIs(t, short.Validate(), ErrEmptyPosting)

	bothSides := *txn
	bothSides.Lines = []PostingLine{
		{AccountNumber: "6110", Debit: dec("10"), Credit: dec("10")},
		{AccountNumber: AccountCompanyCash, Credit: dec("0")},
	}
	assert.Error(t, bothSides.Validate())
}
