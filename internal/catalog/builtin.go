package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/klingberg/bokfor/internal/ledger"
)

var (
	vat25 = decimal.RequireFromString("0.25")
	vat12 = decimal.RequireFromString("0.12")
	vat6  = decimal.RequireFromString("0.06")
)

// Builtin is the list of predefined transaction presets. Generic presets
// list their account rows with the side each row participates in; the
// company cash placeholder 1930 is rewritten per posting mode. Special
// presets carry a rule tag instead.
var Builtin = []ledger.Preset{
	{
		ID: "kontorsmaterial", Name: "Kontorsmaterial", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat25,
		Rows: []ledger.AccountRow{
			{Number: "6110", Label: "Kontorsmaterial", Debit: true},
			{Number: ledger.AccountInputVAT, Label: "Ingående moms", Debit: true},
			{Number: ledger.AccountCompanyCash, Label: "Betalning", Credit: true},
		},
	},
	{
		ID: "mobil-internet", Name: "Mobil och internet", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat25,
		Rows: []ledger.AccountRow{
			{Number: "6212", Label: "Mobiltelefon", Debit: true},
			{Number: ledger.AccountInputVAT, Label: "Ingående moms", Debit: true},
			{Number: ledger.AccountCompanyCash, Label: "Betalning", Credit: true},
		},
	},
	{
		ID: "forbrukningsinventarier", Name: "Förbrukningsinventarier", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat25,
		Rows: []ledger.AccountRow{
			{Number: "5410", Label: "Förbrukningsinventarier", Debit: true},
			{Number: ledger.AccountInputVAT, Label: "Ingående moms", Debit: true},
			{Number: ledger.AccountCompanyCash, Label: "Betalning", Credit: true},
		},
	},
	{
		ID: "lokalhyra", Name: "Lokalhyra", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat25,
		Rows: []ledger.AccountRow{
			{Number: "5010", Label: "Lokalhyra", Debit: true},
			{Number: ledger.AccountInputVAT, Label: "Ingående moms", Debit: true},
			{Number: ledger.AccountCompanyCash, Label: "Betalning", Credit: true},
		},
	},
	{
		ID: "resor", Name: "Resor och biljetter", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat6,
		Rows: []ledger.AccountRow{
			{Number: "5810", Label: "Biljetter", Debit: true},
			{Number: ledger.AccountInputVAT, Label: "Ingående moms", Debit: true},
			{Number: ledger.AccountCompanyCash, Label: "Betalning", Credit: true},
		},
	},
	{
		ID: "forsaljning-tjanster", Name: "Försäljning tjänster", Category: "Försäljning",
		Type: ledger.PresetSale, VATRate: vat25,
		Rows: []ledger.AccountRow{
			{Number: ledger.AccountCompanyCash, Label: "Fordran", Debit: true},
			{Number: "3041", Label: "Försäljning tjänster", Credit: true},
			{Number: "2611", Label: "Utgående moms", Credit: true},
		},
	},
	{
		ID: "forsaljning-varor", Name: "Försäljning varor", Category: "Försäljning",
		Type: ledger.PresetSale, VATRate: vat25,
		Rows: []ledger.AccountRow{
			{Number: ledger.AccountCompanyCash, Label: "Fordran", Debit: true},
			{Number: "3051", Label: "Försäljning varor", Credit: true},
			{Number: "2611", Label: "Utgående moms", Credit: true},
		},
	},
	{
		ID: "lan-amortering", Name: "Amortering och ränta på lån", Category: "Finans",
		Type: ledger.PresetFinance, Special: ledger.SpecialLoan,
	},
	{
		ID: "eu-inkop", Name: "Inköp från EU (omvänd skattskyldighet)", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat25, Special: ledger.SpecialReverseCharge,
	},
	{
		ID: "import", Name: "Import av varor", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat25, Special: ledger.SpecialImport,
	},
	{
		ID: "representation", Name: "Representation", Category: "Inköp",
		Type: ledger.PresetPurchase, VATRate: vat12, Special: ledger.SpecialRepresentation,
	},
	{
		ID: "lon", Name: "Löneutbetalning", Category: "Personal",
		Type: ledger.PresetPayroll, Special: ledger.SpecialPayroll,
	},
}
