package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/redlight/internal/core"
	"github.com/vovakirdan/redlight/internal/games/redlight"
	"github.com/vovakirdan/redlight/internal/session"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one game session.
type Model struct {
	sess          *session.Session
	screen        *core.Screen
	config        core.RuntimeConfig
	keys          GameKeyMap
	help          help.Model
	inputFrame    core.InputFrame
	start         time.Time
	started       bool
	last          redlight.RenderState
	screenshotDir string
	quitting      bool
}

// NewModel creates a new Bubble Tea model driving sess.
func NewModel(sess *session.Session, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	return Model{
		sess:          sess,
		screen:        core.NewScreen(cfg.ScreenW, hudHeight(cfg.ScreenH)),
		config:        cfg,
		keys:          DefaultGameKeyMap(),
		help:          help.New(),
		inputFrame:    core.NewInputFrame(),
		last:          sess.Snapshot(),
		screenshotDir: defaultScreenshotDir(),
	}
}

// hudHeight reserves the last terminal row for the help footer.
func hudHeight(h int) int {
	return core.Max(h-1, 1)
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".redlight", "screenshots")
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, hudHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Movement and restart are buffered
// until the next tick; quit takes effect immediately.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.sess.Quit()
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleTick advances the session to the wall-clock time of the tick,
// measured in milliseconds since the first tick.
func (m Model) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if !m.started {
		m.start = t
		m.started = true
	}
	nowMS := t.Sub(m.start).Milliseconds()

	if m.inputFrame.Has(core.ActionRestart) {
		m.sess.Restart()
	}
	if n := m.inputFrame.Count(core.ActionMove); n > 0 {
		m.sess.Nudge(n)
	}
	m.last = m.sess.Step(nowMS)
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current HUD to a text file.
func (m *Model) saveScreenshot() {
	if m.screenshotDir == "" {
		return
	}
	redlight.Render(m.screen, m.last)

	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(m.screenshotDir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("redlight_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the HUD and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	redlight.Render(m.screen, m.last)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Session returns the session driven by the model.
func (m Model) Session() *session.Session {
	return m.sess
}

// Run starts the Bubble Tea program for sess and blocks until the player quits.
func Run(sess *session.Session, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewModel(sess, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
