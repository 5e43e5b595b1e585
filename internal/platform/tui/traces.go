package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/redlight/internal/session"
	"github.com/vovakirdan/redlight/internal/storage"
)

// maxTraces is the number of recent traces loaded into the browser.
const maxTraces = 100

// TracesKeyMap defines the key bindings for the trace browser.
type TracesKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Replay key.Binding
	Delete key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k TracesKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Replay, k.Delete, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k TracesKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Replay, k.Delete, k.Quit},
	}
}

// DefaultTracesKeyMap returns default key bindings.
func DefaultTracesKeyMap() TracesKeyMap {
	return TracesKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Replay: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "replay"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// TracesModel is the Bubble Tea model for browsing recorded traces.
type TracesModel struct {
	store    *storage.Store
	traces   []storage.Trace
	table    table.Model
	help     help.Model
	keys     TracesKeyMap
	status   string
	width    int
	height   int
	quitting bool
}

// NewTracesModel creates a trace browser backed by store.
func NewTracesModel(store *storage.Store, width, height int) TracesModel {
	m := TracesModel{
		store:  store,
		keys:   DefaultTracesKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadTraces()
	return m
}

func (m *TracesModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 6},
		{Title: "Source", Width: 10},
		{Title: "Ticks", Width: 8},
		{Title: "Deaths", Width: 7},
		{Title: "Level", Width: 6},
		{Title: "Outcome", Width: 12},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// tableHeight clamps a table height to a usable minimum.
func tableHeight(h int) int {
	if h < 3 {
		return 3
	}
	return h
}

func (m *TracesModel) loadTraces() {
	if m.store == nil {
		m.traces = nil
		m.updateTableRows()
		return
	}
	traces, err := m.store.RecentTraces(maxTraces)
	if err != nil {
		m.status = fmt.Sprintf("cannot load traces: %v", err)
		m.traces = nil
	} else {
		m.traces = traces
	}
	m.updateTableRows()
}

func (m *TracesModel) updateTableRows() {
	rows := make([]table.Row, len(m.traces))
	for i, tr := range m.traces {
		rows[i] = table.Row{
			strconv.FormatInt(tr.ID, 10),
			tr.Source,
			strconv.Itoa(tr.Ticks),
			strconv.Itoa(tr.Deaths),
			strconv.Itoa(tr.Level),
			tr.Outcome,
			tr.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.GotoTop()
	}
}

// selected returns the trace under the cursor.
func (m TracesModel) selected() (storage.Trace, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.traces) {
		return storage.Trace{}, false
	}
	return m.traces[i], true
}

// Init initializes the browser.
func (m TracesModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m TracesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Replay):
			if tr, ok := m.selected(); ok {
				m.status = m.replay(tr.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if tr, ok := m.selected(); ok && m.store != nil {
				if err := m.store.DeleteTrace(tr.ID); err != nil {
					m.status = fmt.Sprintf("delete failed: %v", err)
				} else {
					m.status = fmt.Sprintf("trace %d deleted", tr.ID)
				}
				m.loadTraces()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// replay re-runs a trace and returns a one-line verdict.
func (m TracesModel) replay(id int64) string {
	tr, samples, err := m.store.LoadTrace(id)
	if err != nil {
		return fmt.Sprintf("cannot load trace %d: %v", id, err)
	}
	report, err := session.Replay(tr, samples, nil)
	if err != nil {
		return fmt.Sprintf("cannot replay trace %d: %v", id, err)
	}
	if report.Matches() {
		return fmt.Sprintf("trace %d: %d samples replayed, %d deaths, no divergence",
			id, report.Samples, report.Summary.Deaths)
	}
	first := report.Mismatches[0]
	return fmt.Sprintf("trace %d: %d divergent ticks, first at seq %d (%dms): recorded %s, replayed %s",
		id, len(report.Mismatches), first.Seq, first.NowMS, first.Recorded, first.Replayed)
}

// View renders the browser.
func (m TracesModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("RECORDED TRACES", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m TracesModel) renderTableContent() string {
	if len(m.traces) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No traces recorded yet.\nPlay or run sim --record to create one.")
	}
	return m.table.View()
}

// Status returns the last status line.
func (m TracesModel) Status() string {
	return m.status
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunTraces runs the trace browser.
func RunTraces(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewTracesModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
