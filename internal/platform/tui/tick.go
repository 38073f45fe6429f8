// Package tui is the Bubble Tea shell for local and SSH play: a size menu,
// the animated board, the leaderboard and personal statistics.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg asks for a redraw while tiles are sliding.
type frameMsg struct {
	seq int
}

// settleMsg ends the animation of move seq.
type settleMsg struct {
	seq int
}

// frameCmd schedules the next redraw at the given rate.
func frameCmd(tickRate, seq int) tea.Cmd {
	interval := time.Second / time.Duration(max(tickRate, 1))
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameMsg{seq: seq}
	})
}

// settleCmd fires once the animation delay for move seq has elapsed.
func settleCmd(delay time.Duration, seq int) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return settleMsg{seq: seq}
	})
}
