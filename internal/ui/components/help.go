package components

import (
	"strings"

	"github.com/Akashdeep-Patra/lazyscroll/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// helpOrder fixes the section order of the overlay.
var helpOrder = []string{"Scrolling", "Data", "General"}

// RenderHelp renders a full-screen help overlay.
func RenderHelp(styles ui.Styles, title string, sections map[string][]HelpEntry, width, height int) string {
	t := styles.Theme

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(max(width-4, 1)).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(16).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	for _, section := range helpOrder {
		entries, ok := sections[section]
		if !ok || len(entries) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section) + "\n")
		for _, e := range entries {
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(e.Desc) + "\n")
		}
		body.WriteString("\n")
	}
	body.WriteString(styles.HelpBar.Render(ui.RenderKeyValue(styles, "esc", "close") + "   " + ui.RenderKeyValue(styles, "q", "quit")))

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(max(min(70, width-4), 1)).
		MaxHeight(max(height-2, 1)).
		Render(body.String())

	return ui.PlaceCentre(width, height, overlay)
}

// GlobalHelpEntries returns the help entries for the global keybindings.
func GlobalHelpEntries() map[string][]HelpEntry {
	return map[string][]HelpEntry{
		"Scrolling": {
			{Key: "j / ↓", Desc: "Scroll down one line"},
			{Key: "k / ↑", Desc: "Scroll up one line"},
			{Key: "J / K", Desc: "Scroll one tile"},
			{Key: "pgdn / ctrl+d", Desc: "Half page down"},
			{Key: "pgup / ctrl+u", Desc: "Half page up"},
			{Key: "g / Home", Desc: "Go to top"},
			{Key: "G / End", Desc: "Go to bottom"},
			{Key: "wheel", Desc: "Scroll three lines"},
		},
		"Data": {
			{Key: "r", Desc: "Reload the collection"},
		},
		"General": {
			{Key: "?", Desc: "Toggle this help"},
			{Key: "esc", Desc: "Close help"},
			{Key: "q / ctrl+c", Desc: "Quit"},
		},
	}
}
