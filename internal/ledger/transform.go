package ledger

// TransformAccount rewrites the company cash placeholder to the
// settlement account for the active posting mode. Every other account
// number passes through unchanged, so transforming an already
// mode-specific number is a no-op.
func TransformAccount(number string, mode Mode) string {
	if number != AccountCompanyCash {
		return number
	}
	switch mode.Kind {
	case ModeReimbursement:
		return AccountEmployeePayable
	case ModeCustomerInvoice:
		return AccountReceivables
	case ModeSupplierInvoice:
		if mode.IsSale {
			return AccountReceivables
		}
		return AccountPayables
	default:
		return number
	}
}
