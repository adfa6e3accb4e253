package common

import (
	"github.com/Akashdeep-Patra/lazyscroll/internal/source"
	tea "github.com/charmbracelet/bubbletea"
)

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg asks the app to load the collection again, e.g. after the
// watcher saw the source change.
type RefreshMsg struct{}

// DataLoadedMsg carries the result of loading the collection.
type DataLoadedMsg struct {
	Items []source.Item
	Err   error
}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// CmdErr creates a tea.Cmd that sends an ErrMsg. A nil error yields a nil
// command.
func CmdErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg { return ErrMsg{Err: err} }
}
