package ledger

import "github.com/shopspring/decimal"

// balanceTolerance is the maximum allowed difference between total debits
// and total credits of a committed transaction.
var balanceTolerance = decimal.New(1, -4) // 0.0001

var one = decimal.NewFromInt(1)

// ExtractVAT splits a VAT-inclusive gross amount into its net and VAT
// parts: vat = gross * rate / (1 + rate), rounded to 2 decimals, and
// net = gross - vat. A zero rate returns the gross unchanged.
func ExtractVAT(gross, rate decimal.Decimal) (net, vat decimal.Decimal) {
	if rate.IsZero() {
		return gross, decimal.Zero
	}
	vat = gross.Mul(rate).Div(one.Add(rate)).Round(2)
	return gross.Sub(vat), vat
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func minDecimal(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func clampDecimal(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}
