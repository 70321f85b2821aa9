// Package tui provides the Bubble Tea integration for the marbles game.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
// Gen ties the tick to the GameModel that scheduled it, so a game left
// for the menu cannot keep driving its successor.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh tick generation.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd schedules the next tick of generation gen.
func tickCmd(cfg core.RuntimeConfig, gen uint64) tea.Cmd {
	return tea.Tick(cfg.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
