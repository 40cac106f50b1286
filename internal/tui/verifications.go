package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/klingberg/bokfor/internal/client"
	"github.com/klingberg/bokfor/internal/ledger"
)

type txnsLoadedMsg struct {
	txns []ledger.Transaction
	err  error
}

type txnListModel struct {
	txns    []ledger.Transaction
	cursor  int
	showing bool // detail view of the selected verification
	loading bool
	err     error
	width   int
	height  int
}

func (m *txnListModel) init(c *client.Client) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		txns, err := c.ListTransactions(context.Background(), "")
		return txnsLoadedMsg{txns: txns, err: err}
	}
}

func (m txnListModel) update(msg tea.Msg) (txnListModel, tea.Cmd) {
	switch msg := msg.(type) {
	case txnsLoadedMsg:
		m.loading = false
		m.txns = msg.txns
		m.err = msg.err
		if m.cursor >= len(m.txns) {
			m.cursor = 0
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape):
			m.showing = false
		case key.Matches(msg, keys.Enter):
			if len(m.txns) > 0 {
				m.showing = true
			}
		case key.Matches(msg, keys.Up):
			if !m.showing && m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if !m.showing && m.cursor < len(m.txns)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *txnListModel) view() string {
	if m.loading {
		return "Loading verifications..."
	}
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if len(m.txns) == 0 {
		return dimStyle.Render("No verifications yet. Press 'n' to post one.")
	}
	if m.showing {
		return m.detailView()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Verifications"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-12s %-34s %12s  %s", "DATE", "DESCRIPTION", "AMOUNT", "ID")))
	b.WriteString("\n")

	maxRows := m.height - 4
	if maxRows < 1 {
		maxRows = 10
	}
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(m.txns) {
		end = len(m.txns)
	}

	for i := start; i < end; i++ {
		t := m.txns[i]
		desc := t.Description
		if len(desc) > 34 {
			desc = desc[:31] + "..."
		}
		line := fmt.Sprintf("  %-12s %-34s %12s  %s",
			t.Date.Format("2006-01-02"), desc, ledger.FormatAmount(t.GrossAmount), dimStyle.Render(t.ID))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}

func (m *txnListModel) detailView() string {
	t := m.txns[m.cursor]

	var b strings.Builder
	b.WriteString(titleStyle.Render("Verification " + t.ID))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Date:"), t.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Description:"), t.Description))
	if t.Comment != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Comment:"), t.Comment))
	}
	b.WriteString("\n")

	var rows strings.Builder
	rows.WriteString(fmt.Sprintf("%-7s %-30s %12s %12s\n", "KONTO", "TEXT", "DEBET", "KREDIT"))
	for _, ln := range t.Lines {
		debit, credit := "", ""
		if ln.Debit.IsPositive() {
			debit = debitStyle.Render(ledger.FormatAmount(ln.Debit))
		}
		if ln.Credit.IsPositive() {
			credit = creditStyle.Render(ledger.FormatAmount(ln.Credit))
		}
		rows.WriteString(fmt.Sprintf("%-7s %-30s %12s %12s\n", ln.AccountNumber, ln.Label, debit, credit))
	}
	b.WriteString(boxStyle.Render(strings.TrimRight(rows.String(), "\n")))
	b.WriteString("\n" + dimStyle.Render("  esc to go back") + "\n")
	return b.String()
}
