package ledger

import (
	"fmt"
	"regexp"
)

// Account numbers follow the Swedish BAS convention: four digits where the
// first digit places the account in a class.
//
//	1xxx assets
//	2xxx liabilities (including VAT accounts)
//	3xxx revenue
//	4xxx-8xxx costs and expenses
type Class int

const (
	ClassAssets      Class = 1
	ClassLiabilities Class = 2
	ClassRevenue     Class = 3
)

// Well-known BAS accounts the posting engine writes to directly.
const (
	// AccountCompanyCash is the generic company bank account used as the
	// settlement placeholder in presets. The account transformer rewrites
	// it depending on posting mode.
	AccountCompanyCash = "1930"

	AccountReceivables     = "1510" // kundfordringar
	AccountPayables        = "2440" // leverantörsskulder
	AccountEmployeePayable = "2890" // skuld till anställda (utlägg)

	AccountInputVAT           = "2641" // ingående moms
	AccountOutputVAT          = "2611" // utgående moms 25%
	AccountOutputVATReverse   = "2614" // utgående moms omvänd skattskyldighet
	AccountOutputVATImport    = "2615" // utgående moms varuimport
	AccountCalculatedInputVAT = "2645" // beräknad ingående moms på förvärv från utlandet

	AccountEUGoods          = "4515" // inköp av varor från annat EU-land
	AccountEUServices       = "4535" // inköp av tjänster från annat EU-land
	AccountReverseChargeAdj = "4599" // justering, omvänd moms
	AccountImportBase       = "4545" // import av varor, 25% moms (beskattningsunderlag)
	AccountImportBaseAdj    = "4549" // motkonto beskattningsunderlag import
	AccountFreightCustoms   = "5720" // tull- och speditionskostnader

	AccountLongTermLoan    = "2350" // andra långfristiga skulder till kreditinstitut
	AccountInterestExpense = "8410" // räntekostnader

	AccountRepresentationDeductible    = "6071" // representation, avdragsgill
	AccountRepresentationNonDeductible = "6072" // representation, ej avdragsgill

	AccountSalaries           = "7210" // löner till tjänstemän
	AccountEmployerContrib    = "7510" // arbetsgivaravgifter
	AccountWithheldTax        = "2710" // personalskatt
	AccountEmployerContribDue = "2731" // avräkning lagstadgade sociala avgifter
)

var accountNumberRe = regexp.MustCompile(`^[1-9][0-9]{3}$`)

// ValidAccountNumber reports whether s is a syntactically valid BAS
// account number (4 digits, non-zero leading digit).
func ValidAccountNumber(s string) bool {
	return accountNumberRe.MatchString(s)
}

// ClassOf returns the account class (first digit) of a 4-digit account
// number, or 0 if the number is malformed.
func ClassOf(number string) Class {
	if !ValidAccountNumber(number) {
		return 0
	}
	return Class(number[0] - '0')
}

// ClassLabel returns a human-readable label for an account class.
func ClassLabel(c Class) string {
	switch c {
	case ClassAssets:
		return "Assets"
	case ClassLiabilities:
		return "Liabilities"
	case ClassRevenue:
		return "Revenue"
	case 4, 5, 6, 7, 8:
		return "Expenses"
	default:
		return fmt.Sprintf("Class %d", c)
	}
}

// Account is a chart-of-accounts entry as stored per owner.
type Account struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Name   string `json:"name"`
	Class  Class  `json:"class"`
}

// Validate checks account invariants.
func (a *Account) Validate() error {
	if !ValidAccountNumber(a.Number) {
		return fmt.Errorf("%w: %q", ErrMalformedAccountNumber, a.Number)
	}
	if a.Name == "" {
		return fmt.Errorf("account name is required")
	}
	return nil
}
