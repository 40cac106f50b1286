package ledger

import "fmt"

// ModeKind selects which real-world flow a transaction represents. It
// controls how the settlement placeholder account is rewritten and how
// per-row amounts are computed.
type ModeKind int

const (
	ModeStandard ModeKind = iota
	ModeReimbursement
	ModeCustomerInvoice
	ModeSupplierInvoice
)

var modeNames = map[ModeKind]string{
	ModeStandard:        "standard",
	ModeReimbursement:   "reimbursement",
	ModeCustomerInvoice: "customer-invoice",
	ModeSupplierInvoice: "supplier-invoice",
}

func (k ModeKind) String() string {
	if s, ok := modeNames[k]; ok {
		return s
	}
	return fmt.Sprintf("mode(%d)", int(k))
}

// ParseModeKind parses the wire representation of a posting mode.
func ParseModeKind(s string) (ModeKind, error) {
	for k, name := range modeNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown posting mode %q", s)
}

// Mode is the posting mode passed by value through the whole pipeline.
// IsSale flips the VAT and settlement sides: revenue presets collect
// output VAT and settle against receivables instead of payables.
type Mode struct {
	Kind   ModeKind `json:"kind"`
	IsSale bool     `json:"is_sale"`
}

// ModeFor builds the Mode for a kind and preset, deriving IsSale from the
// preset metadata.
func ModeFor(kind ModeKind, p *Preset) Mode {
	m := Mode{Kind: kind}
	if p != nil {
		m.IsSale = p.IsSale()
	}
	return m
}
