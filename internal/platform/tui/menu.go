package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beyond2048/internal/board"
)

// MenuChoiceKind says what the player picked.
type MenuChoiceKind int

const (
	ChoicePlay MenuChoiceKind = iota
	ChoiceLeaderboard
	ChoiceStats
)

// MenuChoice is the result of the menu.
type MenuChoice struct {
	Kind MenuChoiceKind
	Size int // board size for ChoicePlay
}

// MenuItem is one selectable line.
type MenuItem struct {
	Title  string
	Choice MenuChoice
}

var sizeNames = map[int]string{3: "Tiny", 4: "Classic", 5: "Big", 6: "Huge"}

// menuItems lists every board size, then the score screens that are
// available.
func menuItems(withLeaderboard bool) []MenuItem {
	var items []MenuItem
	for size := board.MinSize; size <= board.MaxSize; size++ {
		items = append(items, MenuItem{
			Title:  fmt.Sprintf("%dx%d  %s", size, size, sizeNames[size]),
			Choice: MenuChoice{Kind: ChoicePlay, Size: size},
		})
	}
	if withLeaderboard {
		items = append(items, MenuItem{Title: "Leaderboard", Choice: MenuChoice{Kind: ChoiceLeaderboard}})
	}
	items = append(items, MenuItem{Title: "Statistics", Choice: MenuChoice{Kind: ChoiceStats}})
	return items
}

// MenuModel lets the player pick a board size or a score screen.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	player   string
	selected *MenuChoice
	quitting bool
}

// NewMenuModel creates a menu with the cursor on the given board size.
func NewMenuModel(width, height, size int, player string, withLeaderboard bool) MenuModel {
	m := MenuModel{
		items:  menuItems(withLeaderboard),
		width:  width,
		height: height,
		player: player,
	}
	for i, item := range m.items {
		if item.Choice.Kind == ChoicePlay && item.Choice.Size == size {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		choice := m.items[m.cursor].Choice
		m.selected = &choice
	}

	// Digits jump straight into a game of that size.
	if r := msg.Runes; len(r) == 1 && r[0] >= '0' && r[0] <= '9' {
		if size := int(r[0] - '0'); board.ValidSize(size) {
			m.selected = &MenuChoice{Kind: ChoicePlay, Size: size}
		}
	}
	return m, nil
}

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("2 0 4 8"), m.width))
	b.WriteString("\n")
	if m.player != "" {
		b.WriteString(centerText(menuMutedStyle.Render("playing as "+m.player), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText("Choose a board:", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		if i > 0 && item.Choice.Kind != ChoicePlay && m.items[i-1].Choice.Kind == ChoicePlay {
			b.WriteString("\n")
		}
		line := "  " + item.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuMutedStyle.Render("Up/Down: Navigate  |  Enter: Select  |  3-6: Quick start  |  Q: Quit"), m.width))
	return b.String()
}

// Selected returns the chosen item, or nil while still choosing.
func (m MenuModel) Selected() *MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}
