package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/klingberg/bokfor/internal/client"
	"github.com/klingberg/bokfor/internal/ledger"
)

type wizardStep int

const (
	stepPreset wizardStep = iota
	stepMode
	stepFields
	stepPreview
)

var modeOptions = []struct {
	name  string
	label string
}{
	{"standard", "Standard (cash/bank settles now)"},
	{"reimbursement", "Reimbursement (paid privately, owed to employee)"},
	{"customer-invoice", "Customer invoice (settle later via 1510)"},
	{"supplier-invoice", "Supplier invoice (settle later via 2440)"},
}

type previewLoadedMsg struct {
	preview *client.Preview
	err     error
}

type txnPostedMsg struct {
	txn *ledger.Transaction
	err error
}

// fieldDef is one textinput in the dynamic field sequence. Which fields
// appear depends on the chosen preset's special rule.
type fieldDef struct {
	name        string
	label       string
	placeholder string
	initial     string
	optional    bool
	input       textinput.Model
}

type wizardModel struct {
	step    wizardStep
	presets []ledger.Preset

	presetCursor int
	modeCursor   int

	fields      []fieldDef
	fieldCursor int

	preview   *client.Preview
	posting   bool
	err       error
	done      bool
	cancelled bool
	statusMsg string
	width     int
}

func newWizard(presets []ledger.Preset) wizardModel {
	return wizardModel{step: stepPreset, presets: presets}
}

func (m wizardModel) preset() *ledger.Preset {
	if m.presetCursor < 0 || m.presetCursor >= len(m.presets) {
		return nil
	}
	return &m.presets[m.presetCursor]
}

func newField(name, label, placeholder, initial string, optional bool) fieldDef {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 80
	in.SetValue(initial)
	return fieldDef{name: name, label: label, placeholder: placeholder, initial: initial, optional: optional, input: in}
}

// buildFields assembles the input sequence for the chosen preset. The
// import rule derives the gross amount from customs + other, so it gets
// no amount field of its own.
func (m *wizardModel) buildFields() {
	p := m.preset()
	today := time.Now().Format("2006-01-02")

	var fs []fieldDef
	if p.Special != ledger.SpecialImport {
		fs = append(fs, newField("amount", "Amount (incl VAT)", "e.g. 1250.00", "", false))
	}
	fs = append(fs,
		newField("date", "Date", "YYYY-MM-DD", today, false),
		newField("description", "Description", "e.g. Kontorsstolar", "", false),
	)

	switch p.Special {
	case ledger.SpecialLoan:
		fs = append(fs, newField("interest", "Interest portion", "e.g. 500.00", "", false))
	case ledger.SpecialReverseCharge:
		fs = append(fs,
			newField("kind", "Goods or services", "goods / services", "services", false),
			newField("expense", "Expense account", "e.g. 4010", "4010", false),
		)
	case ledger.SpecialImport:
		fs = append(fs,
			newField("customs", "Customs incl VAT", "e.g. 1000.00", "", false),
			newField("other", "Other VAT-free fees", "e.g. 0.00", "0", false),
			newField("fictive", "Fictive VAT base", "e.g. 5000.00", "", false),
		)
	case ledger.SpecialRepresentation:
		fs = append(fs,
			newField("headcount", "Number of people", "e.g. 4", "", false),
			newField("food", "Food incl VAT", "e.g. 1000.00", "", false),
			newField("alcohol", "Alcohol incl VAT", "e.g. 0.00", "0", false),
		)
	case ledger.SpecialPayroll:
		fs = append(fs, newField("withheld", "Withheld tax", "e.g. 7500.00", "", false))
	}

	fs = append(fs, newField("comment", "Comment", "optional", "", true))

	m.fields = fs
	m.fieldCursor = 0
	m.fields[0].input.Focus()
}

func (m wizardModel) fieldValue(name string) string {
	for i := range m.fields {
		if m.fields[i].name == name {
			return strings.TrimSpace(m.fields[i].input.Value())
		}
	}
	return ""
}

// buildRequest validates the collected fields and builds the posting
// request. Decimal parsing failures surface as field errors before any
// round trip to the server.
func (m wizardModel) buildRequest() (*client.PostRequest, error) {
	p := m.preset()

	parseDec := func(name string) (decimal.Decimal, error) {
		raw := m.fieldValue(name)
		if raw == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%s: not a valid amount", name)
		}
		return d, nil
	}

	req := &client.PostRequest{
		PresetID:    p.ID,
		Date:        m.fieldValue("date"),
		Description: m.fieldValue("description"),
		Mode:        modeOptions[m.modeCursor].name,
		Comment:     m.fieldValue("comment"),
	}
	if req.Description == "" {
		return nil, fmt.Errorf("description is required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD")
	}

	var err error
	switch p.Special {
	case ledger.SpecialLoan:
		if req.GrossAmount, err = parseDec("amount"); err != nil {
			return nil, err
		}
		if req.RuleInput.InterestPortion, err = parseDec("interest"); err != nil {
			return nil, err
		}
	case ledger.SpecialReverseCharge:
		if req.GrossAmount, err = parseDec("amount"); err != nil {
			return nil, err
		}
		switch m.fieldValue("kind") {
		case "goods":
			req.RuleInput.Goods = true
		case "services", "":
		default:
			return nil, fmt.Errorf("kind must be goods or services")
		}
		req.RuleInput.ExpenseAccount = m.fieldValue("expense")
	case ledger.SpecialImport:
		if req.RuleInput.CustomsInclVAT, err = parseDec("customs"); err != nil {
			return nil, err
		}
		if req.RuleInput.OtherVATFree, err = parseDec("other"); err != nil {
			return nil, err
		}
		if req.RuleInput.FictiveVAT, err = parseDec("fictive"); err != nil {
			return nil, err
		}
		// The invoice total is exactly customs plus the VAT-free fees.
		req.GrossAmount = req.RuleInput.CustomsInclVAT.Add(req.RuleInput.OtherVATFree)
	case ledger.SpecialRepresentation:
		if req.GrossAmount, err = parseDec("amount"); err != nil {
			return nil, err
		}
		n, convErr := strconv.Atoi(m.fieldValue("headcount"))
		if convErr != nil || n <= 0 {
			return nil, fmt.Errorf("headcount must be a positive number")
		}
		req.RuleInput.Headcount = n
		if req.RuleInput.FoodInclVAT, err = parseDec("food"); err != nil {
			return nil, err
		}
		if req.RuleInput.AlcoholInclVAT, err = parseDec("alcohol"); err != nil {
			return nil, err
		}
	case ledger.SpecialPayroll:
		if req.GrossAmount, err = parseDec("amount"); err != nil {
			return nil, err
		}
		if req.RuleInput.WithheldTax, err = parseDec("withheld"); err != nil {
			return nil, err
		}
	default:
		if req.GrossAmount, err = parseDec("amount"); err != nil {
			return nil, err
		}
	}

	if p.Special != ledger.SpecialImport && !req.GrossAmount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	return req, nil
}

func (m wizardModel) update(msg tea.Msg, c *client.Client) (wizardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case previewLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.step = stepFields
			return m, nil
		}
		m.preview = msg.preview
		m.step = stepPreview
		return m, nil

	case txnPostedMsg:
		m.posting = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.done = true
		m.statusMsg = fmt.Sprintf("Posted verification %s", msg.txn.ID)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Escape) {
			switch m.step {
			case stepPreset:
				m.cancelled = true
			case stepMode:
				m.step = stepPreset
			case stepFields:
				m.step = stepMode
			case stepPreview:
				m.step = stepFields
				m.fields[m.fieldCursor].input.Focus()
			}
			m.err = nil
			return m, nil
		}

		switch m.step {
		case stepPreset:
			return m.updatePreset(msg)
		case stepMode:
			return m.updateMode(msg)
		case stepFields:
			return m.updateFields(msg, c)
		case stepPreview:
			return m.updatePreview(msg, c)
		}
	}
	return m, nil
}

func (m wizardModel) updatePreset(msg tea.KeyMsg) (wizardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.presetCursor > 0 {
			m.presetCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.presetCursor < len(m.presets)-1 {
			m.presetCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.presets) == 0 {
			m.err = fmt.Errorf("no presets loaded")
			return m, nil
		}
		m.err = nil
		m.step = stepMode
	}
	return m, nil
}

func (m wizardModel) updateMode(msg tea.KeyMsg) (wizardModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.modeCursor > 0 {
			m.modeCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.modeCursor < len(modeOptions)-1 {
			m.modeCursor++
		}
	case key.Matches(msg, keys.Enter):
		m.err = nil
		m.step = stepFields
		m.buildFields()
	}
	return m, nil
}

func (m wizardModel) updateFields(msg tea.KeyMsg, c *client.Client) (wizardModel, tea.Cmd) {
	if key.Matches(msg, keys.Enter) {
		cur := &m.fields[m.fieldCursor]
		if !cur.optional && strings.TrimSpace(cur.input.Value()) == "" {
			m.err = fmt.Errorf("%s is required", cur.label)
			return m, nil
		}
		m.err = nil

		if m.fieldCursor < len(m.fields)-1 {
			cur.input.Blur()
			m.fieldCursor++
			m.fields[m.fieldCursor].input.Focus()
			return m, nil
		}

		req, err := m.buildRequest()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, func() tea.Msg {
			pv, err := c.PreviewTransaction(context.Background(), req)
			return previewLoadedMsg{preview: pv, err: err}
		}
	}

	var cmd tea.Cmd
	m.fields[m.fieldCursor].input, cmd = m.fields[m.fieldCursor].input.Update(msg)
	return m, cmd
}

func (m wizardModel) updatePreview(msg tea.KeyMsg, c *client.Client) (wizardModel, tea.Cmd) {
	if m.posting {
		return m, nil
	}
	switch msg.String() {
	case "y", "Y", "enter":
		req, err := m.buildRequest()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.posting = true
		return m, func() tea.Msg {
			txn, err := c.PostTransaction(context.Background(), req)
			return txnPostedMsg{txn: txn, err: err}
		}
	case "n", "N":
		m.cancelled = true
	}
	return m, nil
}

func (m *wizardModel) view() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("New Verification"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Step %d of 4", int(m.step)+1)))
	b.WriteString("\n\n")

	switch m.step {
	case stepPreset:
		b.WriteString("  Select a posting preset:\n\n")
		for i, p := range m.presets {
			label := fmt.Sprintf("%-26s %s", p.ID, p.Name)
			if p.Special != ledger.SpecialNone {
				label += dimStyle.Render("  [" + string(p.Special) + "]")
			}
			if i == m.presetCursor {
				b.WriteString(selectedStyle.Render("  > "+label) + "\n")
			} else {
				b.WriteString("    " + label + "\n")
			}
		}

	case stepMode:
		p := m.preset()
		b.WriteString(fmt.Sprintf("  Preset: %s\n", p.Name))
		b.WriteString("  Select payment mode:\n\n")
		for i, opt := range modeOptions {
			if i == m.modeCursor {
				b.WriteString(selectedStyle.Render("  > "+opt.label) + "\n")
			} else {
				b.WriteString("    " + opt.label + "\n")
			}
		}
		b.WriteString("\n" + hintBoxStyle.Render(
			"The mode decides which account settles the entry:\n"+
				"cash/bank now, an employee payable, or an open invoice.",
		) + "\n")

	case stepFields:
		p := m.preset()
		b.WriteString(fmt.Sprintf("  Preset: %s | Mode: %s\n\n", p.Name, modeOptions[m.modeCursor].name))
		for i := range m.fields {
			f := &m.fields[i]
			marker := "  "
			if i == m.fieldCursor {
				marker = selectedStyle.Render("> ")
			}
			b.WriteString(fmt.Sprintf("  %s%s %s\n", marker, labelStyle.Render(f.label+":"), f.input.View()))
		}

	case stepPreview:
		b.WriteString(m.previewView())
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("  ✗ "+m.err.Error()) + "\n")
	}
	if m.done {
		b.WriteString("\n" + successStyle.Render("  ✓ "+m.statusMsg) + "\n")
	}
	return b.String()
}

func (m *wizardModel) previewView() string {
	var b strings.Builder
	b.WriteString("  Review the posting:\n\n")

	var rows strings.Builder
	rows.WriteString(fmt.Sprintf("%-7s %-30s %12s %12s\n", "KONTO", "TEXT", "DEBET", "KREDIT"))
	for _, ln := range m.preview.Lines {
		debit, credit := "", ""
		if ln.Debit.IsPositive() {
			debit = debitStyle.Render(ledger.FormatAmount(ln.Debit))
		}
		if ln.Credit.IsPositive() {
			credit = creditStyle.Render(ledger.FormatAmount(ln.Credit))
		}
		rows.WriteString(fmt.Sprintf("%-7s %-30s %12s %12s\n", ln.AccountNumber, ln.Label, debit, credit))
	}
	rows.WriteString(fmt.Sprintf("%-38s %12s %12s",
		"TOTAL", ledger.FormatAmount(m.preview.TotalDebit), ledger.FormatAmount(m.preview.TotalCredit)))
	b.WriteString(boxStyle.Render(rows.String()) + "\n")

	if m.preview.Schablon.IsPositive() {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf(
			"  Schablon (flat VAT deduction guideline): %s", ledger.FormatAmount(m.preview.Schablon))) + "\n")
	}

	if m.posting {
		b.WriteString("\n  Posting...\n")
	} else {
		b.WriteString("\n  Post this verification? " + dimStyle.Render("(y/n)") + "\n")
	}
	return b.String()
}
