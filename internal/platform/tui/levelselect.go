package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// LevelSelectModel is the level picker. Levels past the player's
// progress are shown but cannot be chosen.
type LevelSelectModel struct {
	names        []string
	unlocked     int // Highest selectable level, 1-indexed
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	help         help.Model
	selected     int // 1-indexed, 0 while choosing
	quitting     bool
	back         bool
}

// NewLevelSelectModel creates a picker over names with the first
// unlocked levels available.
func NewLevelSelectModel(names []string, unlocked, width, height int) LevelSelectModel {
	if unlocked < 1 {
		unlocked = 1
	}
	if unlocked > len(names) {
		unlocked = len(names)
	}
	m := LevelSelectModel{
		names:     names,
		unlocked:  unlocked,
		cursor:    max(unlocked-1, 0),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
	m.updateScroll()
	return m
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.names)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if m.cursor < m.unlocked {
			m.selected = m.cursor + 1
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelSelectModel) visibleItems() int {
	return max(m.height-9, 3) // header and footer
}

// updateScroll adjusts scroll offset to keep cursor visible.
func (m *LevelSelectModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	end := min(m.scrollOffset+m.visibleItems(), len(m.names))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(menuDimStyle.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < end; i++ {
		label := fmt.Sprintf("%2d. %s", i+1, m.names[i])
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		var line string
		switch {
		case i >= m.unlocked:
			line = menuDimStyle.Render(cursor + label + " (locked)")
		case i == m.cursor:
			line = menuActiveStyle.Render(cursor + label)
		default:
			line = cursor + label
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if end < len(m.names) {
		b.WriteString(centerText(menuDimStyle.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	k := m.keyMapper.Menu
	b.WriteString(centerText(m.help.ShortHelpView([]key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen level (1-indexed), or 0 if none.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

// RunLevelSelect runs the level picker. It returns 0 when the player
// backs out, and quit when they asked to leave altogether.
func RunLevelSelect(names []string, unlocked int, cfg core.RuntimeConfig) (level int, quit bool, err error) {
	model := NewLevelSelectModel(names, unlocked, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok {
		return 0, true, nil
	}
	return m.Selected(), m.IsQuitting(), nil
}
