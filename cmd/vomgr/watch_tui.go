package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vexyart/vomgr/internal/history"
	"github.com/vexyart/vomgr/internal/settings"
	"github.com/vexyart/vomgr/internal/state"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	statusAliveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	statusExitedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("226"))

	statusOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusFailedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	cardLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// Key bindings
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Quit    key.Binding
	Refresh key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
}

// Tool item for display
type toolItem struct {
	name      string
	enabled   bool
	target    string
	pid       int
	alive     bool
	startedAt time.Time
	workDir   string
	lastEvent *history.Event
}

// Model
type watchModel struct {
	dir         string
	tools       []toolItem
	cursor      int
	width       int
	height      int
	lastRefresh time.Time
	quitting    bool
}

// Messages
type tickMsg time.Time
type toolsMsg []toolItem
type toggledMsg struct{ err error }

// Commands
func tickCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func loadToolsCmd(dir string) tea.Cmd {
	return func() tea.Msg {
		s := settings.Load(settings.Path(dir))
		sessions := state.NewStore(dir).Read()

		var latest map[string]history.Event
		if store, err := history.Open(filepath.Join(dir, "history.db")); err == nil {
			latest, _ = store.LastByTool()
			store.Close()
		}

		var items []toolItem
		for _, tool := range settings.Tools {
			item := toolItem{
				name:    tool,
				enabled: s.Enabled(tool),
				target:  s.TargetFor(tool),
			}
			if info, ok := sessions[tool]; ok {
				item.pid = info.PID
				item.alive = state.Alive(info.PID)
				item.startedAt = info.StartedAt
				item.workDir = info.WorkingDirectory
			}
			if e, ok := latest[tool]; ok {
				item.lastEvent = &e
			}
			items = append(items, item)
		}
		return toolsMsg(items)
	}
}

func toggleToolCmd(dir, tool string) tea.Cmd {
	return func() tea.Msg {
		path := settings.Path(dir)
		s := settings.Load(path)
		prefs := s.Tools[tool]
		prefs.Enabled = !prefs.Enabled
		s.Tools[tool] = prefs
		return toggledMsg{err: s.Save(path)}
	}
}

// Initialize model
func newWatchModel(dir string) watchModel {
	return watchModel{
		dir:         dir,
		tools:       []toolItem{},
		cursor:      0,
		lastRefresh: time.Now(),
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(loadToolsCmd(m.dir), tickCmd())
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.tools)-1 {
				m.cursor++
			}

		case key.Matches(msg, keys.Toggle):
			if len(m.tools) > 0 && m.cursor < len(m.tools) {
				return m, toggleToolCmd(m.dir, m.tools[m.cursor].name)
			}

		case key.Matches(msg, keys.Refresh):
			return m, loadToolsCmd(m.dir)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.lastRefresh = time.Time(msg)
		return m, tea.Batch(loadToolsCmd(m.dir), tickCmd())

	case toolsMsg:
		m.tools = msg
		if m.cursor >= len(m.tools) && len(m.tools) > 0 {
			m.cursor = len(m.tools) - 1
		}

	case toggledMsg:
		// Reload so the list reflects the new setting immediately
		return m, loadToolsCmd(m.dir)
	}

	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}

	var s string

	// Title
	s += titleStyle.Render("vomgr watch") + " "
	s += helpStyle.Render(m.lastRefresh.Format("15:04:05")) + "\n\n"

	for i, tool := range m.tools {
		var statusStr string
		switch {
		case !tool.enabled:
			statusStr = statusOffStyle.Render("●")
		case tool.pid != 0 && tool.alive:
			statusStr = statusAliveStyle.Render("●")
		case tool.pid != 0:
			statusStr = statusExitedStyle.Render("●")
		default:
			statusStr = normalStyle.Render("●")
		}

		mode := "off"
		if tool.enabled {
			mode = "→ " + tool.target
		}

		line := fmt.Sprintf("%s %-8s %s", statusStr, tool.name, mode)
		if i == m.cursor {
			s += selectedStyle.Render("> "+tool.name+" "+mode) + "\n"
		} else {
			s += "  " + line + "\n"
		}
	}

	// Detail card for the selected tool
	if len(m.tools) > 0 && m.cursor < len(m.tools) {
		tool := m.tools[m.cursor]
		s += "\n"

		var cardContent string
		cardContent += cardTitleStyle.Render(tool.name) + "\n"
		cardContent += cardLabelStyle.Render("Enabled: ") + m.renderEnabled(tool.enabled) + "\n"
		cardContent += cardLabelStyle.Render("Target:  ") + cardValueStyle.Render(tool.target) + "\n"
		if tool.pid != 0 {
			liveness := "exited"
			if tool.alive {
				liveness = "alive"
			}
			cardContent += cardLabelStyle.Render("Session: ") +
				cardValueStyle.Render(fmt.Sprintf("pid %d (%s)", tool.pid, liveness)) + "\n"
			if !tool.startedAt.IsZero() {
				cardContent += cardLabelStyle.Render("Started: ") +
					cardValueStyle.Render(formatAge(tool.startedAt)) + "\n"
			}
			if tool.workDir != "" {
				cardContent += cardLabelStyle.Render("Dir:     ") +
					cardValueStyle.Render(truncateStr(tool.workDir, 40)) + "\n"
			}
		}
		if tool.lastEvent != nil {
			e := tool.lastEvent
			cardContent += cardLabelStyle.Render("Last:    ") + m.renderEventStatus(e) + "\n"
			if e.Detail != "" {
				cardContent += cardLabelStyle.Render("Detail:  ") +
					cardValueStyle.Render(truncateStr(e.Detail, 40)) + "\n"
			}
		}

		s += cardStyle.Render(cardContent)
	}

	// Help - vertical
	s += "\n\n"
	s += helpStyle.Render("↑/↓  navigate") + "\n"
	s += helpStyle.Render("enter  toggle continuation") + "\n"
	s += helpStyle.Render("r  refresh") + "\n"
	s += helpStyle.Render("q  quit")

	return s
}

func (m watchModel) renderEnabled(enabled bool) string {
	if enabled {
		return statusAliveStyle.Render("on")
	}
	return statusOffStyle.Render("off")
}

func (m watchModel) renderEventStatus(e *history.Event) string {
	label := fmt.Sprintf("%s → %s (%s)", e.Status, e.Target, formatAge(e.CreatedAt))
	switch e.Status {
	case history.StatusLaunched:
		return statusAliveStyle.Render(label)
	case history.StatusFailed:
		return statusFailedStyle.Render(label)
	default:
		return cardValueStyle.Render(label)
	}
}

// Helper to truncate strings
func truncateStr(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-2] + ".."
}

// Run the watch TUI
func runWatchTUI(dir string) error {
	m := newWatchModel(dir)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
