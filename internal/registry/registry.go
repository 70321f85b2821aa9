// Package registry builds games by ID. Games register a factory in init(),
// and the front-ends (CLI, SSH sessions) create fresh instances from it
// without importing the game package.
package registry

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-marbles/internal/core"
)

// Game is what a front-end drives: fixed-step simulation plus rendering
// into a screen buffer. Games never touch the terminal.
type Game interface {
	ID() string
	Title() string

	// Reset starts the game over with the given screen size and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick of cfg.TickMsecs().
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Optional capabilities. Front-ends check for them with a type assertion.
type (
	// Resizer follows a terminal resize without restarting.
	Resizer interface {
		Resize(w, h int)
	}

	// LevelStarter makes Reset begin on a 1-indexed level.
	LevelStarter interface {
		StartAt(level int)
	}

	// LevelLister exposes the names of the playable levels.
	LevelLister interface {
		LevelNames() []string
	}
)

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a game factory. It panics on a duplicate ID.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	factories[id] = f
}

// Create instantiates a game by ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// CreateAt instantiates a game that will start on level (1-indexed).
// Level 0 leaves the game's own default.
func CreateAt(id string, level int) (Game, error) {
	g, err := Create(id)
	if err != nil || level == 0 {
		return g, err
	}
	ls, ok := g.(LevelStarter)
	if !ok {
		return nil, fmt.Errorf("registry: game %q has no levels", id)
	}
	ls.StartAt(level)
	return g, nil
}

// Levels returns the level names of game id, or nil if it has none.
func Levels(id string) []string {
	g, err := Create(id)
	if err != nil {
		return nil
	}
	if l, ok := g.(LevelLister); ok {
		return l.LevelNames()
	}
	return nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
