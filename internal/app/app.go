package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Akashdeep-Patra/lazyscroll/internal/common"
	"github.com/Akashdeep-Patra/lazyscroll/internal/source"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui/components"
	"github.com/Akashdeep-Patra/lazyscroll/internal/ui/views"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loadTimeout bounds one load of the collection.
const loadTimeout = 30 * time.Second

// Model is the top-level Bubbletea model: a grid over one source, a status
// bar and a help overlay.
type Model struct {
	ctx       context.Context
	src       source.Source
	grid      *views.GridView
	styles    ui.Styles
	keys      KeyMap
	logger    *slog.Logger
	width     int
	height    int
	showHelp  bool
	watching  bool
	loading   bool
	pending   bool
	statusMsg string
	statusErr bool
	statusExp time.Time
}

// Options configures a Model.
type Options struct {
	Styles   ui.Styles
	Logger   *slog.Logger
	Watching bool
}

// New creates a new application model. ctx bounds every load of src.
func New(ctx context.Context, src source.Source, grid *views.GridView, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		ctx:      ctx,
		src:      src,
		grid:     grid,
		styles:   opts.Styles,
		keys:     DefaultKeyMap(),
		logger:   logger,
		watching: opts.Watching,
		loading:  true,
	}
}

// Init kicks off the first load. New already marks it as running.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// load reads the collection in the background and returns a DataLoadedMsg.
func (m Model) load() tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		items, err := src.Load(ctx)
		if err != nil {
			return common.DataLoadedMsg{Err: fmt.Errorf("loading %s: %w", src.Describe(), err)}
		}
		return common.DataLoadedMsg{Items: items}
	}
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.grid.SetSize(m.width, m.contentHeight())

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.showHelp = false
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			cmd := m.reload()
			return m, cmd
		}
		if m.showHelp {
			return m, nil
		}
		var cmd tea.Cmd
		m.grid, cmd = m.grid.Update(msg)
		return m, cmd

	case common.RefreshMsg:
		cmd := m.reload()
		return m, cmd

	case common.DataLoadedMsg:
		m.loading = false
		var follow tea.Cmd
		if m.pending {
			m.pending = false
			follow = m.reload()
		}
		if msg.Err != nil {
			return m.setError(msg.Err), follow
		}
		m.logger.Info("collection loaded",
			slog.String("source", m.src.Describe()),
			slog.Int("items", len(msg.Items)))
		cmd := m.grid.SetItems(msg.Items)
		m = m.setInfo(fmt.Sprintf("Loaded %d items", len(msg.Items)))
		return m, tea.Batch(cmd, follow)

	case common.ErrMsg:
		return m.setError(msg.Err), nil
	}

	return m, nil
}

// reload starts a load. A request that arrives while one is running is
// folded into a single follow-up load once it finishes.
func (m *Model) reload() tea.Cmd {
	if m.loading {
		m.pending = true
		return nil
	}
	m.loading = true
	return m.load()
}

func (m Model) setError(err error) Model {
	m.logger.Error("tui error", slog.String("error", err.Error()))
	m.statusMsg = err.Error()
	m.statusErr = true
	m.statusExp = time.Now().Add(5 * time.Second)
	return m
}

func (m Model) setInfo(text string) Model {
	m.statusMsg = text
	m.statusErr = false
	m.statusExp = time.Now().Add(3 * time.Second)
	return m
}

// View renders the entire UI. This is a pure function, no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", components.GlobalHelpEntries(), m.width, m.height)
	}

	content := lipgloss.NewStyle().Width(m.width).Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).Render(m.grid.View())

	barData := m.grid.StatusData()
	barData.Watching = m.watching
	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		barData.Message = m.statusMsg
		barData.IsError = m.statusErr
	}
	statusBar := components.RenderStatusBar(m.styles, barData, m.width)

	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

// contentHeight is the terminal height minus the status bar.
func (m Model) contentHeight() int {
	return max(m.height-1, 1)
}
