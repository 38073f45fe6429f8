package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beyond2048/internal/session"
)

// StatsModel shows a player's aggregate statistics and recent games.
type StatsModel struct {
	player    string
	stats     session.PlayerStats
	highScore int
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewStatsModel creates the statistics screen.
func NewStatsModel(player string, stats session.PlayerStats, highScore, width, height int) StatsModel {
	return StatsModel{
		player:    player,
		stats:     stats,
		highScore: highScore,
		width:     width,
		height:    height,
	}
}

// Init initializes the model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionBack, MenuActionSelect:
			m.goingBack = true
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

var (
	statsLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(16)
	statsValueStyle = lipgloss.NewStyle().Bold(true)
	statsWinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statsLossStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	statsBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
)

// View renders the statistics.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	st := m.stats
	best := max(st.BestScore, m.highScore)
	rows := [][2]string{
		{"Games played", strconv.Itoa(st.GamesPlayed)},
		{"Wins", strconv.Itoa(st.TotalWins)},
		{"Win streak", strconv.Itoa(st.WinningStreak)},
		{"Best score", strconv.Itoa(best)},
		{"Average score", strconv.Itoa(st.AverageScore)},
		{"Highest tile", strconv.Itoa(st.HighestTile)},
		{"Total moves", strconv.Itoa(st.TotalMoves)},
		{"Time played", session.FormatTimePlayed(st.TimePlayedSeconds)},
	}

	var summary strings.Builder
	for i, r := range rows {
		if i > 0 {
			summary.WriteString("\n")
		}
		summary.WriteString(statsLabelStyle.Render(r[0]))
		summary.WriteString(statsValueStyle.Render(r[1]))
	}

	var recent strings.Builder
	recent.WriteString(statsValueStyle.Render("Recent games"))
	if len(st.RecentGames) == 0 {
		recent.WriteString("\n")
		recent.WriteString(statsLabelStyle.Render("none yet"))
	}
	for _, g := range st.RecentGames {
		result := statsLossStyle.Render("loss")
		if g.Result == session.ResultWin {
			result = statsWinStyle.Render("win ")
		}
		recent.WriteString(fmt.Sprintf("\n%s  %s  %6d  tile %d",
			g.Date.Local().Format("Jan 02 15:04"), result, g.Score, g.HighestTile))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		statsBoxStyle.Render(summary.String()),
		"  ",
		statsBoxStyle.Render(recent.String()),
	)

	title := "STATISTICS"
	if m.player != "" {
		title += " - " + m.player
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))
	b.WriteString("\n\n")
	b.WriteString(centerText(menuMutedStyle.Render("Esc: Back  |  Q: Quit"), m.width))
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}
