package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/klingberg/bokfor/internal/client"
	"github.com/klingberg/bokfor/internal/ledger"
)

type mode int

const (
	modeVerifications mode = iota
	modeWizard
)

type presetsLoadedMsg struct {
	presets []ledger.Preset
	err     error
}

// App is the top-level bubbletea model: a verification browser with a
// posting wizard layered on top.
type App struct {
	client        *client.Client
	mode          mode
	width, height int
	err           error
	statusMsg     string

	presets []ledger.Preset
	txnList txnListModel
	wizard  wizardModel
}

func NewApp(c *client.Client) *App {
	return &App{client: c, mode: modeVerifications}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.txnList.init(a.client),
		func() tea.Msg {
			presets, err := a.client.ListPresets(context.Background())
			return presetsLoadedMsg{presets: presets, err: err}
		},
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.txnList.width = msg.Width
		a.txnList.height = msg.Height - 6
		a.wizard.width = msg.Width
		return a, nil

	case presetsLoadedMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.presets = msg.presets
		return a, nil

	case txnsLoadedMsg:
		var cmd tea.Cmd
		a.txnList, cmd = a.txnList.update(msg)
		return a, cmd

	case previewLoadedMsg, txnPostedMsg:
		var cmd tea.Cmd
		a.wizard, cmd = a.wizard.update(msg, a.client)
		if a.wizard.done {
			a.statusMsg = a.wizard.statusMsg
			a.mode = modeVerifications
			return a, tea.Batch(cmd, a.txnList.init(a.client))
		}
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.mode == modeWizard {
			var cmd tea.Cmd
			a.wizard, cmd = a.wizard.update(msg, a.client)
			if a.wizard.cancelled {
				a.mode = modeVerifications
			}
			return a, cmd
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.New):
			a.wizard = newWizard(a.presets)
			a.mode = modeWizard
			a.statusMsg = ""
			return a, nil
		case key.Matches(msg, keys.Refresh):
			return a, a.txnList.init(a.client)
		default:
			var cmd tea.Cmd
			a.txnList, cmd = a.txnList.update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) View() string {
	var b strings.Builder

	tabs := []string{"Verifications", "New Entry"}
	var rendered []string
	for i, t := range tabs {
		active := (a.mode == modeVerifications && i == 0) || (a.mode == modeWizard && i == 1)
		if active {
			rendered = append(rendered, activeTabStyle.Render(t))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(t))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n\n")

	switch a.mode {
	case modeWizard:
		b.WriteString(a.wizard.view())
	default:
		b.WriteString(a.txnList.view())
	}

	var status string
	switch {
	case a.err != nil:
		status = errorStyle.Render("Error: " + a.err.Error())
	case a.statusMsg != "":
		status = successStyle.Render(a.statusMsg)
	case a.mode == modeWizard:
		status = "enter: next | esc: back | ctrl+c: quit"
	default:
		status = "n: new entry | enter: detail | r: refresh | q: quit"
	}
	b.WriteString("\n" + statusBarStyle.Render(status))
	return b.String()
}
