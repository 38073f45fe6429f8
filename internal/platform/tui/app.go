package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beyond2048/internal/board"
	"github.com/vovakirdan/beyond2048/internal/core"
	"github.com/vovakirdan/beyond2048/internal/session"
	"github.com/vovakirdan/beyond2048/internal/storage"
)

// GameOptions configures the controller behind a terminal session.
type GameOptions struct {
	Size            int // 0 opens the size menu first
	FourProbability float64
	HistoryLimit    int
}

// AppOptions configures an AppModel.
type AppOptions struct {
	Context  context.Context
	Store    *storage.Store // nil plays without persistence or leaderboard
	Username string         // local profile name; empty plays anonymously
	Config   core.RuntimeConfig
	Game     GameOptions
	Logger   *log.Logger
}

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenLeaderboard
	screenStats
)

// AppModel manages the full session flow: menu, game, score screens.
// It is the top-level model for both local and SSH play.
type AppModel struct {
	ctx         context.Context
	store       *storage.Store
	persistence session.Persistence
	username    string
	config      core.RuntimeConfig
	game        GameOptions
	logger      *log.Logger

	screen      appScreen
	ctrl        *session.Controller
	menu        MenuModel
	play        GameModel
	leaderboard LeaderboardModel
	stats       StatsModel
	quitting    bool
}

// NewAppModel resolves the player profile and builds the first screen.
func NewAppModel(opts AppOptions) (AppModel, error) {
	m := AppModel{
		ctx:      opts.Context,
		store:    opts.Store,
		username: opts.Username,
		config:   opts.Config.Normalize(),
		game:     opts.Game,
		logger:   opts.Logger,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.game.Size != 0 && !board.ValidSize(m.game.Size) {
		return AppModel{}, fmt.Errorf("tui: %w (got %d)", board.ErrInvalidSize, m.game.Size)
	}

	m.persistence = &session.MemoryPersistence{}
	if m.store != nil && m.username != "" {
		user, err := m.store.EnsureLocalUser(m.ctx, m.username)
		if err != nil {
			return AppModel{}, fmt.Errorf("tui: load profile %q: %w", m.username, err)
		}
		m.persistence = m.store.Player(user.ID)
		m.logger.Debug("profile loaded", "user", user.Username, "id", user.ID)
	}

	if m.game.Size != 0 {
		if err := m.startGame(m.game.Size); err != nil {
			return AppModel{}, err
		}
		return m, nil
	}
	m.openMenu()
	return m, nil
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenLeaderboard:
		return m.updateLeaderboard(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		return m.quit()
	}

	choice := m.menu.Selected()
	if choice == nil {
		return m, cmd
	}

	switch choice.Kind {
	case ChoicePlay:
		if err := m.startGame(choice.Size); err != nil {
			m.logger.Error("cannot start game", "err", err)
			m.openMenu()
		}
	case ChoiceLeaderboard:
		m.leaderboard = NewLeaderboardModel(m.ctx, m.store, storage.SortBestScore, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenLeaderboard
	case ChoiceStats:
		m.openStats()
	}
	return m, nil
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.play.Update(msg)
	m.play = next.(GameModel)

	switch {
	case m.play.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.play.BackToMenu():
		m.openMenu()
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateLeaderboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.leaderboard.Update(msg)
	m.leaderboard = next.(LeaderboardModel)

	switch {
	case m.leaderboard.IsQuitting():
		return m.quit()
	case m.leaderboard.IsGoingBack():
		m.openMenu()
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	m.stats = next.(StatsModel)

	switch {
	case m.stats.IsQuitting():
		return m.quit()
	case m.stats.IsGoingBack():
		m.openMenu()
		return m, nil
	}
	return m, cmd
}

// startGame creates the controller on first use and starts a fresh game of
// the given size on it afterwards, so statistics carry across games.
func (m *AppModel) startGame(size int) error {
	if m.ctrl == nil {
		ctrl, err := session.New(session.Options{
			Size:            size,
			FourProbability: m.game.FourProbability,
			HistoryLimit:    m.game.HistoryLimit,
			Seed:            m.config.Seed,
			Persistence:     m.persistence,
			Logger:          m.logger,
		})
		if err != nil {
			return fmt.Errorf("tui: %w", err)
		}
		if err := ctrl.Start(m.ctx); err != nil {
			m.logger.Warn("could not start game", "err", err)
		}
		m.ctrl = ctrl
	} else if err := m.ctrl.NewGame(m.ctx, size); err != nil {
		if errors.Is(err, board.ErrInvalidSize) || errors.Is(err, session.ErrAnimating) {
			return err
		}
		m.logger.Warn("could not save finished game", "err", err)
	}

	m.play = NewGameModel(m.ctx, m.ctrl, m.config, m.logger)
	m.screen = screenGame
	return nil
}

func (m *AppModel) openMenu() {
	size := board.DefaultSize
	if m.ctrl != nil {
		size = m.ctrl.Size()
	}
	m.menu = NewMenuModel(m.config.ScreenW, m.config.ScreenH, size, m.username, m.store != nil)
	m.screen = screenMenu
}

func (m *AppModel) openStats() {
	var (
		stats session.PlayerStats
		best  int
	)
	if m.ctrl != nil {
		stats, best = m.ctrl.Stats(), m.ctrl.HighScore()
	} else {
		var err error
		stats, best, err = m.persistence.LoadStats(m.ctx)
		if err != nil {
			m.logger.Warn("could not load statistics", "err", err)
		}
	}
	m.stats = NewStatsModel(m.username, stats, best, m.config.ScreenW, m.config.ScreenH)
	m.screen = screenStats
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	if m.ctrl != nil {
		if err := m.ctrl.Save(m.ctx); err != nil {
			m.logger.Warn("could not save high score", "err", err)
		}
	}
	m.quitting = true
	return m, tea.Quit
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.play.View()
	case screenLeaderboard:
		return m.leaderboard.View()
	case screenStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// Controller returns the session controller, or nil before the first game.
func (m AppModel) Controller() *session.Controller {
	return m.ctrl
}

// Run starts a local terminal session.
func Run(opts AppOptions) error {
	model, err := NewAppModel(opts)
	if err != nil {
		return err
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	_, err = tea.NewProgram(model, progOpts...).Run()
	return err
}
