package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const maxResults = 100

// ResultsModel is the Bubble Tea model for the results board.
// It shows one mode at a time, ordered by best tile or by recency.
type ResultsModel struct {
	modes      []t2048.Mode
	modeCursor int
	recent     bool // Recent runs instead of best runs
	store      *storage.Store
	results    []storage.Result
	stats      storage.ModeStats
	loadErr    error
	table      table.Model
	help       help.Model
	keys       resultsKeys
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewResultsModel creates a results board. store may be nil.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	h := help.New()
	h.Width = width

	m := ResultsModel{
		modes:  []t2048.Mode{t2048.ModeClassic, t2048.ModeEndless},
		store:  store,
		keys:   resultsKeys{DefaultKeyMap()},
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Best tile", Width: 10},
		{Title: "Moves", Width: 7},
		{Title: "Outcome", Width: 8},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, stats and help
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

// load refreshes results and stats for the current mode.
func (m *ResultsModel) load() {
	m.results, m.stats, m.loadErr = nil, storage.ModeStats{}, nil
	if m.store != nil {
		mode := string(m.modes[m.modeCursor])
		if m.recent {
			m.results, m.loadErr = m.store.RecentResults(mode, maxResults)
		} else {
			m.results, m.loadErr = m.store.BestResults(mode, maxResults)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.ModeStats(mode)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current results.
func (m *ResultsModel) updateTableRows() {
	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.MaxTile()),
			fmt.Sprintf("%d", r.Moves),
			string(r.Outcome),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results board.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.Right):
			m.modeCursor = (m.modeCursor + 1) % len(m.modes)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Left):
			m.modeCursor = (m.modeCursor + len(m.modes) - 1) % len(m.modes)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			m.recent = !m.recent
			m.load()
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

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results board.
func (m ResultsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTab := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder

	order := "BEST RUNS"
	if m.recent {
		order = "RECENT RUNS"
	}
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(order), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.modes))
	for i, mode := range m.modes {
		if i == m.modeCursor {
			tabs[i] = activeTab.Render(string(mode))
		} else {
			tabs[i] = dimStyle.Render(" " + string(mode) + " ")
		}
	}
	b.WriteString(centerText(strings.Join(tabs, " "), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(dimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(boxStyle.Render(m.renderTableContent()), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))

	return b.String()
}

// statsLine summarizes the current mode.
func (m ResultsModel) statsLine() string {
	switch {
	case m.store == nil:
		return "Results database unavailable"
	case m.loadErr != nil:
		return "Could not load results: " + m.loadErr.Error()
	case m.stats.Runs == 0:
		return ""
	}
	return fmt.Sprintf("Runs: %d  Wins: %d  Best tile: %d  Avg moves: %.0f",
		m.stats.Runs, m.stats.Wins, 1<<m.stats.BestExponent, m.stats.AvgMoves)
}

// renderTableContent renders the table or empty message.
func (m ResultsModel) renderTableContent() string {
	if len(m.results) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		return emptyStyle.Render("No runs recorded yet.\nFinish a game to see it here!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ResultsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ResultsModel) IsQuitting() bool {
	return m.quitting
}
