package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beyond2048/internal/storage"
)

// maxLeaderboardRows is how many players the table loads.
const maxLeaderboardRows = 50

// sortTitles labels each leaderboard ordering.
var sortTitles = map[storage.SortKey]string{
	storage.SortBestScore:     "Best Score",
	storage.SortHighestTile:   "Highest Tile",
	storage.SortWinningStreak: "Win Streak",
	storage.SortGamesPlayed:   "Games Played",
	storage.SortTotalWins:     "Total Wins",
}

// LeaderboardKeyMap defines the key bindings for the leaderboard.
type LeaderboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextSort key.Binding
	PrevSort key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LeaderboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextSort, k.PrevSort, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k LeaderboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextSort, k.PrevSort},
		{k.Back, k.Quit},
	}
}

// DefaultLeaderboardKeyMap returns default key bindings.
func DefaultLeaderboardKeyMap() LeaderboardKeyMap {
	return LeaderboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextSort: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next sort"),
		),
		PrevSort: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev sort"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LeaderboardModel shows ranked players from the store.
type LeaderboardModel struct {
	ctx        context.Context
	store      *storage.Store
	sortCursor int
	entries    []storage.LeaderboardEntry
	loadErr    error
	table      table.Model
	help       help.Model
	keys       LeaderboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewLeaderboardModel creates a leaderboard ordered by sort.
func NewLeaderboardModel(ctx context.Context, store *storage.Store, sort storage.SortKey, width, height int) LeaderboardModel {
	m := LeaderboardModel{
		ctx:    ctx,
		store:  store,
		keys:   DefaultLeaderboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	for i, k := range storage.SortKeys {
		if k == sort {
			m.sortCursor = i
		}
	}
	m.table = m.createTable()
	m.load()
	return m
}

// SortKey returns the current ordering.
func (m LeaderboardModel) SortKey() storage.SortKey {
	return storage.SortKeys[m.sortCursor]
}

func (m *LeaderboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: 16},
		{Title: "Best", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Streak", Width: 6},
		{Title: "Games", Width: 6},
		{Title: "Wins", Width: 6},
		{Title: "Win %", Width: 6},
	}

	// Give spare width to the player column
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := m.width - 6 - used; spare > 0 {
		columns[1].Width += min(spare, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
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

// load fetches rows for the current ordering.
func (m *LeaderboardModel) load() {
	m.entries, m.loadErr = nil, nil
	if m.store != nil {
		m.entries, m.loadErr = m.store.Leaderboard(m.ctx, m.SortKey(), maxLeaderboardRows)
	}
	m.updateTableRows()
}

func (m *LeaderboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.Itoa(e.Rank),
			e.Username,
			strconv.Itoa(e.BestScore),
			strconv.Itoa(e.HighestTile),
			strconv.Itoa(e.WinningStreak),
			strconv.Itoa(e.GamesPlayed),
			strconv.Itoa(e.TotalWins),
			e.WinRate,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the leaderboard model.
func (m LeaderboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the leaderboard.
func (m LeaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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

		case key.Matches(msg, m.keys.NextSort):
			m.sortCursor = (m.sortCursor + 1) % len(storage.SortKeys)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevSort):
			m.sortCursor = (m.sortCursor + len(storage.SortKeys) - 1) % len(storage.SortKeys)
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

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m LeaderboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("LEADERBOARD - %s", sortTitles[m.SortKey()])
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tableStyle.Render(m.renderTableContent())))

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))

	return b.String()
}

func (m LeaderboardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(storage.SortKeys))
	for i, k := range storage.SortKeys {
		if i == m.sortCursor {
			tabs[i] = activeTabStyle.Render(sortTitles[k])
		} else {
			tabs[i] = tabStyle.Render(sortTitles[k])
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if lipgloss.Width(line) > m.width-4 {
		return fmt.Sprintf("< %s >", sortTitles[m.SortKey()])
	}
	return line
}

func (m LeaderboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load the leaderboard.")
	case len(m.entries) == 0:
		return emptyStyle.Render("No finished games yet.\nPlay until the board locks up to get ranked!")
	}
	return m.table.View()
}

// Entries returns the rows currently shown.
func (m LeaderboardModel) Entries() []storage.LeaderboardEntry {
	return m.entries
}

// IsGoingBack returns true if user wants to go back to menu.
func (m LeaderboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m LeaderboardModel) IsQuitting() bool {
	return m.quitting
}

// RunLeaderboard shows the leaderboard as a standalone program.
func RunLeaderboard(ctx context.Context, store *storage.Store, sort storage.SortKey, width, height int) error {
	model := NewLeaderboardModel(ctx, store, sort, width, height)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
