package tui

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/beyond2048/internal/core"
	"github.com/vovakirdan/beyond2048/internal/session"
)

// GameModel drives one session controller from the keyboard. A committed
// move keeps the controller in its animating state for the configured delay
// while the board is redrawn with tiles part way along their paths; the
// settle message then spawns the next tile.
type GameModel struct {
	ctx      context.Context
	ctrl     *session.Controller
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     GameKeyMap
	help     help.Model
	logger   *log.Logger
	now      func() time.Time
	seq      int       // bumped on every committed move
	movedAt  time.Time // when the current animation started
	progress float64
	message  string
	quitting bool
	back     bool
}

// NewGameModel wraps a started controller.
func NewGameModel(ctx context.Context, ctrl *session.Controller, cfg core.RuntimeConfig, logger *log.Logger) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cfg = cfg.Normalize()
	return GameModel{
		ctx:    ctx,
		ctrl:   ctrl,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Init implements tea.Model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		if msg.seq != m.seq || !m.ctrl.Animating() {
			return m, nil
		}
		m.progress = m.animationProgress()
		return m, frameCmd(m.config.TickRate, m.seq)

	case settleMsg:
		if msg.seq == m.seq {
			m.settle()
		}
		return m, nil
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if dir, ok := action.Direction(); ok {
		if !m.ctrl.ApplyMove(dir) {
			return m, nil
		}
		m.message = ""
		m.seq++
		m.movedAt = m.now()
		m.progress = 0
		if m.config.AnimationDelay <= 0 {
			m.settle()
			return m, nil
		}
		return m, tea.Batch(
			settleCmd(m.config.AnimationDelay, m.seq),
			frameCmd(m.config.TickRate, m.seq),
		)
	}

	switch action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.finish()
		m.back = true

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionUndo:
		if m.ctrl.Undo() {
			m.message = ""
		} else if !m.ctrl.Animating() && !m.ctrl.Over() {
			m.message = "Nothing to undo"
		}

	case core.ActionNewGame:
		err := m.ctrl.NewGame(m.ctx, 0)
		switch {
		case errors.Is(err, session.ErrAnimating):
			// dropped like any other input mid-animation
		case err != nil:
			m.logger.Warn("could not save finished game", "err", err)
			m.message = "Could not save the last game"
		default:
			m.message = ""
		}
	}
	return m, nil
}

// settle completes the pending move.
func (m *GameModel) settle() {
	if !m.ctrl.Animating() {
		return
	}
	m.progress = 1
	if err := m.ctrl.Settle(m.ctx); err != nil {
		m.logger.Warn("could not save game result", "err", err)
		m.message = "Could not save game result"
	}
}

// finish settles any pending move, records a won game that is still in
// progress and saves the high score before the model is left.
func (m *GameModel) finish() {
	m.settle()
	if err := m.ctrl.Abandon(m.ctx); err != nil {
		m.logger.Warn("could not save game result", "err", err)
	}
	if err := m.ctrl.Save(m.ctx); err != nil {
		m.logger.Warn("could not save high score", "err", err)
	}
}

func (m GameModel) animationProgress() float64 {
	if m.config.AnimationDelay <= 0 {
		return 1
	}
	return core.ClampF(float64(m.now().Sub(m.movedAt))/float64(m.config.AnimationDelay), 0, 1)
}

// View renders the board and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	helpView := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys))
	helpLines := lipgloss.Height(helpView)
	m.screen.Resize(m.config.ScreenW, max(m.config.ScreenH-helpLines, 0))

	DrawBoard(m.screen, BoardView{
		Snapshot: m.ctrl.Snapshot(),
		Frame:    m.ctrl.Frame(),
		Progress: m.progress,
		Message:  m.message,
	})

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, helpView))
	return b.String()
}

// Controller returns the controller being played.
func (m GameModel) Controller() *session.Controller {
	return m.ctrl
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.back
}
