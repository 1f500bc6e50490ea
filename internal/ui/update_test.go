package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"securities-admin/internal/api"
	"securities-admin/internal/database"
	"securities-admin/internal/securities"
	"securities-admin/internal/settings"
)

func floatPtr(f float64) *float64 { return &f }

func newTestStore(t *testing.T) *settings.Repository {
	t.Helper()

	db, err := database.Open("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := settings.NewRepository(db, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func newTestModel(t *testing.T, token string) Model {
	t.Helper()

	store := newTestStore(t)
	if token != "" {
		require.NoError(t, store.SetToken(token))
	}
	client := api.NewClient("http://localhost:8000", zerolog.Nop())
	return NewModel(client, store, "http://localhost:8000", zerolog.Nop())
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func sampleCollection() []securities.Security {
	return []securities.Security{
		{Ticker: "BBB", Price: floatPtr(5)},
		{Ticker: "AAA"},
		{Ticker: "CCC", Price: floatPtr(10)},
	}
}

func visibleTickers(m Model) []string {
	out := make([]string, len(m.visible))
	for i, s := range m.visible {
		out[i] = s.Ticker
	}
	return out
}

func TestNewModel_NoTokenShowsLogin(t *testing.T) {
	m := newTestModel(t, "")

	assert.Equal(t, viewLogin, m.view)
	assert.False(t, m.loading)
	assert.Empty(t, m.loadErr) // expected unauthenticated state, not a failure
	assert.Empty(t, m.all)
}

func TestNewModel_StoredTokenLoadsImmediately(t *testing.T) {
	m := newTestModel(t, "stored-token")

	assert.Equal(t, viewTable, m.view)
	assert.True(t, m.loading)
	assert.NotNil(t, m.Init())
}

func TestUpdate_LoadSuccessReplacesCollection(t *testing.T) {
	m := newTestModel(t, "tok")

	m, _ = update(t, m, securitiesMsg{securities: sampleCollection()})
	assert.False(t, m.loading)
	assert.Empty(t, m.loadErr)
	assert.Len(t, m.all, 3)
	// Default sort: ticker ascending.
	assert.Equal(t, []string{"AAA", "BBB", "CCC"}, visibleTickers(m))
}

func TestUpdate_LoadFailureSetsBannerUntilNextSuccess(t *testing.T) {
	m := newTestModel(t, "tok")

	m, _ = update(t, m, securitiesMsg{err: &api.FetchError{Status: 500, Message: "db down"}})
	assert.False(t, m.loading)
	assert.Equal(t, "db down", m.loadErr)

	// The banner persists across unrelated updates.
	m, _ = update(t, m, keyRunes("x"))
	assert.Equal(t, "db down", m.loadErr)

	m, _ = update(t, m, securitiesMsg{securities: sampleCollection()})
	assert.Empty(t, m.loadErr)
}

func TestUpdate_SearchDerivesRows(t *testing.T) {
	m := newTestModel(t, "tok")
	m, _ = update(t, m, securitiesMsg{securities: sampleCollection()})

	m, _ = update(t, m, keyRunes("/"))
	require.True(t, m.search.Focused())

	m, _ = update(t, m, keyRunes("b"))
	assert.Equal(t, []string{"BBB"}, visibleTickers(m))

	// esc blurs the input but keeps the term.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.search.Focused())
	assert.Equal(t, "b", m.search.Value())
	assert.Equal(t, []string{"BBB"}, visibleTickers(m))
}

func TestUpdate_SortKeyTransitions(t *testing.T) {
	m := newTestModel(t, "tok")
	m, _ = update(t, m, securitiesMsg{securities: sampleCollection()})

	// Price ascending: null price sorts last.
	m, _ = update(t, m, keyRunes("5"))
	assert.Equal(t, securities.SortByPrice, m.sortCfg.Key)
	assert.Equal(t, securities.Ascending, m.sortCfg.Direction)
	assert.Equal(t, []string{"BBB", "CCC", "AAA"}, visibleTickers(m))

	// Same column again: descending, null still last.
	m, _ = update(t, m, keyRunes("5"))
	assert.Equal(t, securities.Descending, m.sortCfg.Direction)
	assert.Equal(t, []string{"CCC", "BBB", "AAA"}, visibleTickers(m))

	// Another column, then back: price restarts ascending.
	m, _ = update(t, m, keyRunes("1"))
	m, _ = update(t, m, keyRunes("5"))
	assert.Equal(t, securities.SortByPrice, m.sortCfg.Key)
	assert.Equal(t, securities.Ascending, m.sortCfg.Direction)
}

func TestUpdate_RefreshFailureShowsGenericDialog(t *testing.T) {
	m := newTestModel(t, "tok")

	m, cmd := update(t, m, keyRunes("r"))
	assert.True(t, m.refreshing)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, refreshDoneMsg{err: &api.RefreshError{Status: 500}})
	assert.False(t, m.refreshing)
	assert.Equal(t, "Failed to update prices. Please try again later.", m.dialog)
}

func TestUpdate_RefreshSuccessShowsMessageAndReloads(t *testing.T) {
	m := newTestModel(t, "tok")

	m, cmd := update(t, m, refreshDoneMsg{message: "Price update started for 42 tickers"})
	assert.Equal(t, "Price update started for 42 tickers", m.dialog)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)
}

func TestUpdate_RefreshSuppressedWhileRefreshing(t *testing.T) {
	m := newTestModel(t, "tok")
	m.refreshing = true

	m, cmd := update(t, m, keyRunes("r"))
	assert.True(t, m.refreshing)
	assert.Nil(t, cmd)
}

func TestUpdate_DialogIsModal(t *testing.T) {
	m := newTestModel(t, "tok")
	m.dialog = "Price update started"

	// Other keys are swallowed while the dialog is up.
	m, cmd := update(t, m, keyRunes("r"))
	assert.Equal(t, "Price update started", m.dialog)
	assert.False(t, m.refreshing)
	assert.Nil(t, cmd)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, m.dialog)
}

func TestUpdate_RefreshWithoutTokenReturnsToLogin(t *testing.T) {
	m := newTestModel(t, "tok")
	require.NoError(t, m.store.ClearToken())

	m, cmd := update(t, m, keyRunes("r"))
	assert.Equal(t, viewLogin, m.view)
	assert.False(t, m.refreshing)
	assert.Empty(t, m.loadErr)
	assert.Nil(t, cmd)
}

func TestUpdate_Logout(t *testing.T) {
	m := newTestModel(t, "tok")
	m, _ = update(t, m, securitiesMsg{securities: sampleCollection()})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, viewLogin, m.view)
	assert.Empty(t, m.all)

	token, err := m.store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSubmitLogin_ValidationAndSuccess(t *testing.T) {
	m := newTestModel(t, "")
	require.Equal(t, viewLogin, m.view)

	// Empty token is rejected.
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewLogin, m.view)
	assert.Equal(t, "Token cannot be empty", m.loginMsg)

	m.tokenInput.SetValue("fresh-token")
	m.urlInput.SetValue("not a url")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewLogin, m.view)
	assert.Equal(t, "Invalid API URL", m.loginMsg)

	m.urlInput.SetValue("http://localhost:8000")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, viewTable, m.view)
	assert.True(t, m.loading)
	assert.NotNil(t, cmd)

	token, err := m.store.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
}
