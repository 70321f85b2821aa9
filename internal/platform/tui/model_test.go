package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-marbles/internal/core"
	_ "github.com/vovakirdan/tui-marbles/internal/games/marbles"
	"github.com/vovakirdan/tui-marbles/internal/storage"
)

// stubGame reports whatever state the test sets.
type stubGame struct {
	state   core.GameState
	steps   int
	resets  int
	resized bool
	last    core.InputFrame
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.resets++ }
func (g *stubGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "stub") }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) Resize(w, h int) { g.resized = true }
func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.last = in
	return core.StepResult{State: g.state}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	next, _ := m.Update(TickMsg{Gen: m.gen})
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func press(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(GameModel)
}

func TestGameModelPassesInput(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, nil, "", testConfig())
	m.Init()

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, m)

	if !g.last.Has(core.ActionFire) {
		t.Error("Fire should reach the game")
	}
	if !m.inputFrame.Empty() {
		t.Error("input frame should be cleared after the tick")
	}
}

func TestGameModelIgnoresStaleTicks(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, nil, "", testConfig())

	_, cmd := m.Update(TickMsg{Gen: m.gen + 1000})
	if cmd != nil {
		t.Error("stale tick should not schedule another")
	}
	if g.steps != 0 {
		t.Error("stale tick should not step the game")
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &stubGame{state: core.GameState{Score: 40, Level: 2}}
	m := NewGameModel(g, store, nil, "alice", testConfig())

	m = tick(t, m)
	if level, _ := store.LastLevel("alice"); level != 2 {
		t.Errorf("LastLevel() = %d, expected 2", level)
	}

	g.state.GameOver = true
	m = tick(t, m)
	m = tick(t, m)

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected 1 saved score, got %d", len(scores))
	}
	if scores[0].Player != "alice" || scores[0].Score != 40 || scores[0].Level != 2 {
		t.Errorf("saved %+v", scores[0])
	}

	// Restart, then lose again: a second record.
	g.state = core.GameState{Score: 10, Level: 2}
	m = tick(t, m)
	g.state.GameOver = true
	tick(t, m)

	scores, _ = store.TopScores(10)
	if len(scores) != 2 {
		t.Errorf("expected 2 saved scores after a replay, got %d", len(scores))
	}
}

func TestGameModelBack(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, nil, "", testConfig())
	m = tick(t, m)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Error("back must be ignored while playing")
	}

	g.state.Paused = true
	m = tick(t, m)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should leave a paused game")
	}
}

func TestGameModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewGameModel(g, nil, nil, "", testConfig())
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = next.(GameModel)
	if !g.resized {
		t.Error("Resize should be forwarded")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, expected only the initial one", g.resets)
	}
	if m.config.ScreenW != 100 || m.screen.Width() != 100 {
		t.Error("screen not resized")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&stubGame{}, nil, nil, "", testConfig())
	m = press(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model renders nothing")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextWithColor(0, 0, "()", core.ColorBrightRed)
	s.DrawText(3, 1, "ok")

	out := RenderScreen(s)
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(out, "()") || !strings.Contains(out, "ok") {
		t.Errorf("missing content in %q", out)
	}
}

func sessionKey(t *testing.T, m SessionModel, msg tea.KeyMsg) SessionModel {
	t.Helper()
	next, _ := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm
}

func TestSessionModelFlow(t *testing.T) {
	store := openStore(t)
	m := NewSessionModel(store, nil, testConfig(), "bob")
	if m.ID() == "" {
		t.Fatal("session needs an ID")
	}

	// No progress: New game is the first entry.
	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame || m.gameModel == nil {
		t.Fatalf("expected to be in game, screen %v", m.screen)
	}

	m = sessionKey(t, m, runeKey("p"))
	next, _ := m.Update(TickMsg{Gen: m.gameModel.gen})
	m = next.(SessionModel)
	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("expected menu after back, screen %v", m.screen)
	}

	// The tick loop of the old game is ignored by the menu.
	next, cmd := m.Update(TickMsg{Gen: 0})
	if cmd != nil {
		t.Error("menu should not reschedule ticks")
	}
	m = next.(SessionModel)

	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenScores {
		t.Fatalf("expected scoreboard, screen %v", m.screen)
	}
	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("expected menu after scoreboard, screen %v", m.screen)
	}

	m = sessionKey(t, m, runeKey("q"))
	if !m.quitting {
		t.Error("q should end the session")
	}
}

func TestSessionModelContinue(t *testing.T) {
	store := openStore(t)
	if err := store.SaveProgress("carol", 3); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	m := NewSessionModel(store, nil, testConfig(), "carol")
	if got := m.menu.items[0].Choice; got != ChoiceContinue {
		t.Fatalf("first item = %v, expected Continue", got)
	}

	m = sessionKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	next, _ := m.Update(TickMsg{Gen: m.gameModel.gen})
	m = next.(SessionModel)
	if lvl := m.gameModel.State().Level; lvl != 3 {
		t.Errorf("continued on level %d, expected 3", lvl)
	}
}
