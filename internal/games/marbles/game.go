// Package marbles provides the marble shooter for the terminal front-ends.
package marbles

import (
	"math/rand"

	"github.com/vovakirdan/tui-marbles/internal/config"
	platformcore "github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles/core"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles/levels"
	"github.com/vovakirdan/tui-marbles/internal/registry"
)

// Package-level knobs set by the CLI before the game is created.
var (
	configPath       string
	levelsPath       string
	difficultyPreset config.DifficultyPreset
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLevelsPath sets a custom level table file.
func SetLevelsPath(path string) {
	levelsPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts a marbles session to the fixed-step platform loop.
type Game struct {
	session *core.Session
	set     levels.Set
	err     error

	elapsed float64 // Milliseconds per tick
	tick    uint64

	screenW  int
	screenH  int
	tooSmall bool

	last       core.Summary // Last landing that scored
	flashTicks int

	startLevel int // 1-indexed, 0 uses levels.start from the config
}

// New creates a new marbles game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("marbles", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "marbles"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Marbles"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
	g.tick = 0
	g.last = core.Summary{}
	g.flashTicks = 0

	g.elapsed = cfg.TickMsecs()

	g.session, g.set, g.err = Build(Options{
		ConfigPath: configPath,
		LevelsPath: levelsPath,
		Preset:     difficultyPreset,
		StartLevel: g.startLevel,
		Seed:       cfg.Seed,
	})
	if g.err != nil {
		g.session, g.set = fallback(cfg.Seed)
	}
}

// StartAt makes every following Reset begin on level (1-indexed).
func (g *Game) StartAt(level int) {
	g.startLevel = level
}

// Resize adapts to a new terminal size without touching the session.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// fallback builds a session from the built-in tuning and levels.
func fallback(seed int64) (*core.Session, levels.Set) {
	set := levels.Default()
	s, err := core.NewSession(CoreConfig(config.DefaultMarblesConfig()), set.Defs(), rand.New(rand.NewSource(seed)))
	if err != nil {
		panic(err)
	}
	return s, set
}

// Err returns the configuration error hit by the last Reset, if any.
func (g *Game) Err() error {
	return g.err
}

// Session exposes the running session.
func (g *Game) Session() *core.Session {
	return g.session
}

// LevelNames returns the names of the loaded levels. Before the first
// Reset it reads the configured level table.
func (g *Game) LevelNames() []string {
	if g.set == nil {
		set, err := levels.Load(levelsPath)
		if err != nil {
			set = levels.Default()
		}
		return set.Names()
	}
	return g.set.Names()
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++
	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	s := g.session
	if in.Has(platformcore.ActionPause) && s.State() != core.StateStopped {
		s.SetPaused(!s.Paused())
	}

	if in.Has(platformcore.ActionRestart) {
		// Start the whole run over from the current level.
		//nolint:errcheck // The current index is always valid.
		s.Restart(s.Level())
		g.flashTicks = 0
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionConfirm) && s.Outcome() == core.OutcomeWon {
		//nolint:errcheck // Won implies a following level.
		s.NextLevel()
		g.flashTicks = 0
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionLeft) {
		s.RotateAim(-1)
	}
	if in.Has(platformcore.ActionRight) {
		s.RotateAim(1)
	}
	if in.Has(platformcore.ActionSwap) {
		s.Swap()
	}
	if in.Has(platformcore.ActionFire) {
		s.Fire()
	}

	sum := s.Tick(g.elapsed)
	if sum.Landed && sum.ScoreDelta > 0 {
		g.last = sum
		g.flashTicks = int(1000 / g.elapsed)
	} else if g.flashTicks > 0 {
		g.flashTicks--
	}

	return platformcore.StepResult{State: g.State()}
}

// State returns the current game state. A won level waiting for the next
// one is not game over.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{}
	}
	s := g.session
	out := s.Outcome()
	return platformcore.GameState{
		Score:    s.Score(),
		Level:    s.Level() + 1,
		GameOver: s.State() == core.StateStopped && (out == core.OutcomeLost || out == core.OutcomeCompleted),
		Paused:   s.Paused(),
	}
}
