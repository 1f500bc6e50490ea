package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// quoteURL is the per-row external link target.
const quoteURL = "https://finance.yahoo.com/quote/%s"

// openQuote opens the ticker's Yahoo Finance page in the default browser.
// Failures are logged, not surfaced; the table is left as it was.
func openQuote(ticker string, log zerolog.Logger) tea.Cmd {
	target := fmt.Sprintf(quoteURL, ticker)
	return func() tea.Msg {
		if err := browserCommand(target).Start(); err != nil {
			log.Warn().Err(err).Str("url", target).Msg("failed to open browser")
		}
		return nil
	}
}

func browserCommand(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return exec.Command("xdg-open", target)
	}
}
