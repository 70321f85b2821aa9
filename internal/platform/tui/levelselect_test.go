package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func selectKey(m LevelSelectModel, msg tea.KeyMsg) LevelSelectModel {
	next, _ := m.Update(msg)
	return next.(LevelSelectModel)
}

func TestLevelSelectLocked(t *testing.T) {
	m := NewLevelSelectModel([]string{"One", "Two", "Three"}, 2, 80, 24)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, expected the highest unlocked level", m.cursor)
	}

	m = selectKey(m, tea.KeyMsg{Type: tea.KeyDown})
	m = selectKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != 0 {
		t.Error("locked level must not be selectable")
	}
	if !strings.Contains(m.View(), "locked") {
		t.Error("locked level should be marked")
	}

	m = selectKey(m, tea.KeyMsg{Type: tea.KeyUp})
	m = selectKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != 2 {
		t.Errorf("Selected() = %d, expected 2", m.Selected())
	}
}

func TestLevelSelectBounds(t *testing.T) {
	tests := []struct {
		name     string
		unlocked int
		expected int
	}{
		{"no progress", 0, 1},
		{"past the table", 9, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewLevelSelectModel([]string{"a", "b", "c"}, tc.unlocked, 80, 24)
			if m.unlocked != tc.expected {
				t.Errorf("unlocked = %d, expected %d", m.unlocked, tc.expected)
			}
		})
	}
}

func TestLevelSelectBack(t *testing.T) {
	m := NewLevelSelectModel([]string{"a"}, 1, 80, 24)
	m = selectKey(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() || m.Selected() != 0 {
		t.Error("esc should go back without a selection")
	}
}

func TestLevelSelectScroll(t *testing.T) {
	names := make([]string, 20)
	for i := range names {
		names[i] = "level"
	}
	m := NewLevelSelectModel(names, 20, 80, 12)
	if m.scrollOffset == 0 {
		t.Error("cursor on the last level should scroll the list")
	}
	if !strings.Contains(m.View(), "more above") {
		t.Error("scrolled list should say there is more above")
	}
}
