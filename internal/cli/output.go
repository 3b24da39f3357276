package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/khoahotran/portfolio/internal/syncclient"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
)

// syncStatusLine mirrors the dashboard's sync banner.
func syncStatusLine(res syncclient.SyncResult, hasToken bool) string {
	switch {
	case res.Synced:
		return successStyle.Render("✓ Synced to cloud")
	case !hasToken:
		return dimStyle.Render("Saved locally (no API secret set)")
	case res.Error != "":
		return errorStyle.Render("✗ " + res.Error)
	default:
		return errorStyle.Render("✗ Sync failed")
	}
}

func printSyncStatus(w io.Writer, res syncclient.SyncResult, hasToken bool) {
	fmt.Fprintln(w, syncStatusLine(res, hasToken))
}
