package ledger

import "github.com/shopspring/decimal"

// DebitAmount computes the debit amount for a transformed account number.
// Mode-specific settlement accounts are checked before the class rules:
// invoice modes carry the full gross on their settlement account, the
// employee payable is never debited in reimbursement mode. Otherwise the
// account class decides: VAT accounts (2xxx) take the extracted VAT on
// purchases, expense accounts (4xxx-8xxx) take the net amount.
func DebitAmount(number string, gross, vatRate decimal.Decimal, mode Mode) decimal.Decimal {
	switch {
	case mode.Kind == ModeReimbursement && number == AccountEmployeePayable:
		return decimal.Zero
	case mode.Kind == ModeCustomerInvoice && number == AccountReceivables:
		return gross
	case mode.Kind == ModeSupplierInvoice && !mode.IsSale && number == AccountPayables:
		return gross
	case mode.Kind == ModeSupplierInvoice && mode.IsSale && number == AccountReceivables:
		return gross
	}

	net, vat := ExtractVAT(gross, vatRate)
	switch ClassOf(number) {
	case ClassAssets:
		// Money flows into cash/bank on a sale, never on a purchase.
		if mode.IsSale {
			return gross
		}
		return decimal.Zero
	case ClassLiabilities:
		if mode.IsSale {
			return decimal.Zero
		}
		return vat
	case ClassRevenue:
		return decimal.Zero
	case 4, 5, 6, 7, 8:
		return net
	default:
		return decimal.Zero
	}
}

// CreditAmount mirrors DebitAmount for the credit side: the settlement
// account (assets class or the employee payable) carries the full gross,
// VAT accounts take the extracted VAT on sales, revenue accounts the net.
func CreditAmount(number string, gross, vatRate decimal.Decimal, mode Mode) decimal.Decimal {
	switch {
	case mode.Kind == ModeReimbursement && number == AccountEmployeePayable:
		return gross
	case mode.Kind == ModeCustomerInvoice && number == AccountReceivables:
		return gross
	case mode.Kind == ModeSupplierInvoice && !mode.IsSale && number == AccountPayables:
		return gross
	case mode.Kind == ModeSupplierInvoice && mode.IsSale && number == AccountReceivables:
		return gross
	}

	net, vat := ExtractVAT(gross, vatRate)
	switch ClassOf(number) {
	case ClassAssets:
		return gross
	case ClassLiabilities:
		if mode.IsSale {
			return vat
		}
		return decimal.Zero
	case ClassRevenue:
		return net
	default:
		return decimal.Zero
	}
}
