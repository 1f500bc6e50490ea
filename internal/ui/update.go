package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		m.ready = true
		return m, nil

	case spinner.TickMsg:
		if m.loading || m.refreshing {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case securitiesMsg:
		m.loading = false
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			m.log.Warn().Str("reason", m.loadErr).Msg("load failed")
			return m, nil
		}
		m.loadErr = ""
		m.all = msg.securities
		m.rebuildRows()
		return m, nil

	case refreshDoneMsg:
		m.refreshing = false
		if msg.err != nil {
			m.dialog = msg.err.Error()
			return m, nil
		}
		// Show the server's confirmation and pull fresh values behind the
		// dialog.
		m.dialog = msg.message
		return m, m.startLoad()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The acknowledgement dialog is modal: nothing else reacts until it is
	// dismissed.
	if m.dialog != "" {
		switch msg.String() {
		case "enter", "esc":
			m.dialog = ""
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if m.view == viewLogin {
		return m.handleLoginKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = (m.loginFocus + 1) % 2
		if m.loginFocus == 0 {
			m.urlInput.Blur()
			return m, m.tokenInput.Focus()
		}
		m.tokenInput.Blur()
		return m, m.urlInput.Focus()
	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.tokenInput, cmd = m.tokenInput.Update(msg)
	} else {
		m.urlInput, cmd = m.urlInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	token := strings.TrimSpace(m.tokenInput.Value())
	if token == "" {
		m.loginMsg = "Token cannot be empty"
		return m, nil
	}
	apiURL := strings.TrimSpace(m.urlInput.Value())
	if apiURL == "" {
		m.loginMsg = "API URL cannot be empty"
		return m, nil
	}
	if _, err := url.ParseRequestURI(apiURL); err != nil {
		m.loginMsg = "Invalid API URL"
		return m, nil
	}

	if err := m.store.SetToken(token); err != nil {
		m.loginMsg = fmt.Sprintf("Failed to save token: %v", err)
		return m, nil
	}
	if err := m.store.SetAPIURL(apiURL); err != nil {
		m.log.Warn().Err(err).Msg("failed to save API URL")
	}

	m.client.SetToken(token)
	m.client.SetBaseURL(apiURL)
	m.tokenInput.Reset()
	m.loginMsg = ""
	m.view = viewTable
	return m, m.startLoad()
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.search.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter", "esc":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.rebuildRows()
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Search):
		return m, m.search.Focus()

	case key.Matches(msg, keys.Back):
		if m.search.Value() != "" {
			m.search.Reset()
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		if m.refreshing {
			return m, nil
		}
		return m, m.startRefresh()

	case key.Matches(msg, keys.Logout):
		return m.logout()

	case key.Matches(msg, keys.Open):
		row := m.table.Cursor()
		if row < 0 || row >= len(m.visible) {
			return m, nil
		}
		return m, openQuote(m.visible[row].Ticker, m.log)

	case key.Matches(msg, keys.Sort):
		if idx := int(msg.String()[0] - '1'); idx >= 0 && idx < len(sortableColumns) {
			m.sortCfg = m.sortCfg.Click(sortableColumns[idx].key)
			m.rebuildRows()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// guard is the session check that runs before any network call: no stored
// token means back to the login screen, with nothing surfaced as an error.
func (m *Model) guard() bool {
	token, err := m.store.Token()
	if err != nil {
		m.log.Error().Err(err).Msg("failed to read stored token")
	}
	if token == "" {
		m.view = viewLogin
		m.loadErr = ""
		m.loginFocus = 0
		m.urlInput.Blur()
		m.tokenInput.Focus()
		return false
	}
	m.client.SetToken(token)
	return true
}

func (m *Model) startLoad() tea.Cmd {
	if !m.guard() {
		return nil
	}
	m.loading = true
	m.loadErr = ""
	return tea.Batch(m.spin.Tick, fetchSecurities(m.client))
}

func (m *Model) startRefresh() tea.Cmd {
	if !m.guard() {
		return nil
	}
	m.refreshing = true
	return tea.Batch(m.spin.Tick, refreshPrices(m.client))
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if err := m.store.ClearToken(); err != nil {
		m.log.Error().Err(err).Msg("failed to clear token")
	}
	m.client.SetToken("")
	m.all = nil
	m.visible = nil
	m.table.SetRows(nil)
	m.loadErr = ""
	m.search.Reset()
	m.view = viewLogin
	m.loginFocus = 0
	m.urlInput.Blur()
	return m, m.tokenInput.Focus()
}

func (m *Model) resize() {
	m.search.Width = m.width - 8
	// title + search + banner + footer plus a little breathing room
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	m.table.SetHeight(h)
	m.table.SetWidth(m.width)
	m.rebuildRows()
}
