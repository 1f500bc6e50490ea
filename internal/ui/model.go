package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"securities-admin/internal/api"
	"securities-admin/internal/securities"
	"securities-admin/internal/settings"
	"securities-admin/internal/theme"
)

// view identifies which screen the model renders.
type view int

const (
	viewLogin view = iota
	viewTable
)

type Model struct {
	client *api.Client
	store  *settings.Repository
	log    zerolog.Logger

	// Data
	all     []securities.Security
	visible []securities.Security

	// View state
	view       view
	loading    bool
	refreshing bool
	loadErr    string // persistent banner; cleared by the next successful load
	dialog     string // blocking acknowledgement overlay; "" when hidden
	sortCfg    securities.SortConfig
	loginMsg   string // validation feedback on the login screen
	loginFocus int    // 0 = token input, 1 = api url input
	width      int
	height     int
	ready      bool

	// Components
	table      table.Model
	search     textinput.Model
	tokenInput textinput.Model
	urlInput   textinput.Model
	spin       spinner.Model
	help       help.Model
}

// Messages

type securitiesMsg struct {
	securities []securities.Security
	err        error
}

type refreshDoneMsg struct {
	message string
	err     error
}

func NewModel(client *api.Client, store *settings.Repository, apiURL string, log zerolog.Logger) Model {
	t := theme.Default

	search := textinput.New()
	search.Placeholder = "ticker, company, sector, industry"
	search.Prompt = "/ "
	search.CharLimit = 64

	tokenInput := textinput.New()
	tokenInput.Placeholder = "bearer token"
	tokenInput.EchoMode = textinput.EchoPassword
	tokenInput.EchoCharacter = '•'
	tokenInput.CharLimit = 512

	urlInput := textinput.New()
	urlInput.Placeholder = "http://localhost:8000"
	urlInput.SetValue(apiURL)
	urlInput.CharLimit = 256

	m := Model{
		client:     client,
		store:      store,
		log:        log.With().Str("component", "ui").Logger(),
		sortCfg:    securities.DefaultSort(),
		search:     search,
		tokenInput: tokenInput,
		urlInput:   urlInput,
		spin: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(t.Primary)),
		),
		table: table.New(
			table.WithFocused(true),
			table.WithStyles(tableStyles(t)),
		),
		help: help.New(),
	}
	m.table.SetColumns(m.columns())

	// Session guard at startup: with a stored token go straight to the
	// table and load; without one, the login screen.
	if m.guard() {
		m.view = viewTable
		m.loading = true
	}

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.loading {
		cmds = append(cmds, m.spin.Tick, fetchSecurities(m.client))
	}
	return tea.Batch(cmds...)
}

// Commands

func fetchSecurities(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		secs, err := c.ListSecurities()
		return securitiesMsg{secs, err}
	}
}

func refreshPrices(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		message, err := c.UpdatePrices()
		return refreshDoneMsg{message, err}
	}
}

// Columns

// sortableColumns maps the number keys 1-6 onto sort keys, in display order.
// The trailing YF column is not sortable.
var sortableColumns = []struct {
	title string
	key   securities.SortKey
}{
	{"Ticker", securities.SortByTicker},
	{"Company", securities.SortByCompanyName},
	{"Sector", securities.SortBySector},
	{"Industry", securities.SortByIndustry},
	{"Price", securities.SortByPrice},
	{"Updated", securities.SortByLastUpdated},
}

const yfColumnWidth = 4

func (m Model) columns() []table.Column {
	return []table.Column{
		{Title: m.columnTitle(0), Width: 10},
		{Title: m.columnTitle(1), Width: m.companyWidth()},
		{Title: m.columnTitle(2), Width: 16},
		{Title: m.columnTitle(3), Width: 20},
		{Title: m.columnTitle(4), Width: 10},
		{Title: m.columnTitle(5), Width: 14},
		{Title: "YF", Width: yfColumnWidth},
	}
}

// companyWidth gives the company column whatever width the fixed columns
// leave over, with a floor so narrow terminals stay readable.
func (m Model) companyWidth() int {
	fixed := 10 + 16 + 20 + 10 + 14 + yfColumnWidth
	w := m.width - fixed - 16
	if w < 14 {
		w = 14
	}
	return w
}

// columnTitle prefixes the number key and marks the active sort column.
func (m Model) columnTitle(i int) string {
	c := sortableColumns[i]
	title := fmt.Sprintf("%d %s", i+1, c.title)
	if m.sortCfg.Key != c.key {
		return title
	}
	if m.sortCfg.Direction == securities.Ascending {
		return title + " ↑"
	}
	return title + " ↓"
}

// rebuildRows re-derives the visible rows from the raw collection, the
// search term and the sort config. The derivation runs in full on every
// change; nothing is cached.
func (m *Model) rebuildRows() {
	m.visible = securities.Sort(securities.Filter(m.all, m.search.Value()), m.sortCfg)

	now := time.Now()
	rows := make([]table.Row, 0, len(m.visible))
	for _, s := range m.visible {
		rows = append(rows, table.Row{
			s.Ticker,
			strOr(s.CompanyName),
			strOr(s.Sector),
			strOr(s.Industry),
			priceCell(s.Price),
			updatedCell(s, now),
			yfCell(s.AvailableOnYFinance),
		})
	}
	m.table.SetColumns(m.columns())
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

func strOr(v *string) string {
	if v == nil || *v == "" {
		return "—"
	}
	return *v
}

func priceCell(p *float64) string {
	if p == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *p)
}

// updatedCell prefers the backend's precomputed human-readable age and falls
// back to the raw timestamp. Stale rows get a trailing marker.
func updatedCell(s securities.Security, now time.Time) string {
	v := "—"
	if s.TimeAgo != nil && *s.TimeAgo != "" {
		v = *s.TimeAgo
	} else if s.LastUpdated != nil && *s.LastUpdated != "" {
		v = *s.LastUpdated
	}
	if s.Stale(now) {
		v += " !"
	}
	return v
}

func yfCell(available bool) string {
	if available {
		return "✓"
	}
	return "✗"
}
