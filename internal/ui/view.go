package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	figure "github.com/common-nighthawk/go-figure"

	"securities-admin/internal/theme"
)

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading..."
	}
	if m.dialog != "" {
		return m.viewDialog()
	}
	if m.view == viewLogin {
		return m.viewLogin()
	}
	return m.viewTable()
}

func (m Model) viewLogin() string {
	t := theme.Default

	banner := theme.GradientText(renderFiglet("Securities"), t.Primary, t.Accent)
	subtitle := lipgloss.NewStyle().Foreground(t.Muted).Render("admin console sign-in")
	label := lipgloss.NewStyle().Foreground(t.Subtext)

	form := lipgloss.JoinVertical(lipgloss.Left,
		label.Render("Bearer token"),
		m.tokenInput.View(),
		"",
		label.Render("API URL"),
		m.urlInput.View(),
	)

	status := " "
	if m.loginMsg != "" {
		status = lipgloss.NewStyle().Foreground(t.Error).Render(m.loginMsg)
	}

	hint := lipgloss.NewStyle().Foreground(t.Muted).
		Render("tab: switch field • enter: sign in • ctrl+c: quit")

	content := lipgloss.JoinVertical(lipgloss.Left,
		banner, "", subtitle, "", form, "", status, hint)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) viewTable() string {
	t := theme.Default

	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render("SECURITIES")
	status := ""
	switch {
	case m.refreshing:
		status = m.spin.View() + lipgloss.NewStyle().Foreground(t.Muted).Render(" updating prices...")
	case m.loading:
		status = m.spin.View() + lipgloss.NewStyle().Foreground(t.Muted).Render(" loading...")
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", status)

	// The banner line is always reserved so the table doesn't jump when an
	// error appears.
	banner := " "
	if m.loadErr != "" {
		banner = lipgloss.NewStyle().Foreground(t.Error).
			Render(ansi.Truncate("✗ "+m.loadErr, m.width-2, "…"))
	}

	counts := lipgloss.NewStyle().Foreground(t.Subtext).
		Render(fmt.Sprintf("%d/%d securities", len(m.visible), len(m.all)))
	footer := lipgloss.JoinHorizontal(lipgloss.Top, counts, "   ", m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.search.View(),
		banner,
		m.table.View(),
		footer,
	)
}

func (m Model) viewDialog() string {
	t := theme.Default

	w := 48
	if w > m.width-8 {
		w = m.width - 8
	}
	text := lipgloss.NewStyle().Foreground(t.Text).Width(w).Render(m.dialog)
	hint := lipgloss.NewStyle().Foreground(t.Muted).Render("enter: ok")
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, text, "", hint))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderFiglet renders text in an ASCII banner font.
func renderFiglet(text string) string {
	fig := figure.NewFigure(text, "small", false)
	return strings.Join(fig.Slicify(), "\n")
}

func tableStyles(t theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(t.Subtext)
	s.Selected = s.Selected.
		Foreground(t.Text).
		Background(t.Overlay).
		Bold(false)
	return s
}
