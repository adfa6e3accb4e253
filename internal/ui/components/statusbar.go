package components

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/lazyscroll/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Source   string // collection label
	Items    int
	First    int // first visible item, -1 when nothing is visible
	Last     int
	Window   int // tiles currently materialized
	Percent  int
	Message  string // transient info/error message
	IsError  bool
	Watching bool
}

// RenderStatusBar renders the bottom status bar with sections separated by
// dim vertical bars.
//
// Wide (>= 60):   items.json │ 120-134 of 10000 │ ◫ 31 tiles        42%
// Medium (40-59): items.json │ 120-134 of 10000 │ ◫ 31 tiles
// Narrow (< 40):  items.json │ 120-134 of 10000
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	srcStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	src := data.Source
	if data.Watching {
		src += " ●"
	}
	left := " " + srcStyle.Render(src)

	var rangeText string
	if data.First < 0 || data.Items == 0 {
		rangeText = fmt.Sprintf("0 of %d", data.Items)
	} else {
		rangeText = fmt.Sprintf("%d-%d of %d", data.First+1, data.Last+1, data.Items)
	}
	left += sep + lipgloss.NewStyle().Foreground(t.Text).Render(rangeText)

	if width >= 40 {
		left += sep + lipgloss.NewStyle().Foreground(t.Secondary).
			Render(fmt.Sprintf("◫ %d tiles", data.Window))
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 60 {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(fmt.Sprintf("%d%%", data.Percent)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - styles.StatusBar.GetHorizontalFrameSize() - leftW - rightW
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).Render(content)
}
