package marbles

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-marbles/internal/config"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles/core"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles/levels"
)

// Options selects the configuration and level table of a session.
type Options struct {
	ConfigPath string
	LevelsPath string // Overrides levels.path from the config
	Preset     config.DifficultyPreset
	StartLevel int // 1-indexed; 0 uses levels.start from the config
	Seed       int64
}

// Build loads config and levels and creates a session positioned on the
// start level. Every front-end goes through it.
func Build(opts Options) (*core.Session, levels.Set, error) {
	cfg, err := config.LoadMarbles(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.Preset != "" {
		config.ApplyMarblesPreset(&cfg, opts.Preset)
	}

	path := cfg.Levels.Path
	if opts.LevelsPath != "" {
		path = opts.LevelsPath
	}
	set, err := levels.Load(path)
	if err != nil {
		return nil, nil, err
	}

	session, err := core.NewSession(CoreConfig(cfg), set.Defs(), rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, nil, err
	}

	start := opts.StartLevel
	if start == 0 {
		start = cfg.Levels.Start
	}
	if start > 1 {
		if err := session.LoadLevel(start - 1); err != nil {
			return nil, nil, fmt.Errorf("start level %d: %w", start, err)
		}
	}
	return session, set, nil
}

// CoreConfig converts file configuration into session tuning.
func CoreConfig(c config.MarblesConfig) core.Config {
	return core.Config{
		RoundMsecs:     c.Timing.RoundMsecs,
		RoundStepMsecs: c.Timing.RoundStepMsecs,
		RoundMinMsecs:  c.Timing.RoundMinMsecs,
		PrepareMsecs:   c.Timing.PrepareMsecs,
		ExplosionMsecs: c.Timing.ExplosionMsecs,
		BonusTimeMsecs: c.Timing.BonusTimeMsecs,

		FallingMsecs:  c.Physics.FallingMsecs,
		FallingSpeed:  c.Physics.FallingSpeed,
		FallingJitter: c.Physics.FallingJitter,

		BallVelocity: c.Physics.BallVelocity,
		FrameMsecs:   c.Physics.FrameMsecs,
		AimStep:      c.Physics.AimStep,
		AngleMin:     c.Physics.AngleMin,
		AngleMax:     c.Physics.AngleMax,

		PointsPerBall: c.Scoring.PointsPerBall,
		PointsGrowth:  c.Scoring.PointsGrowth,
		PointsPerSec:  c.Scoring.PointsPerSec,

		Kinds: core.KindTable{
			{Kind: core.KindBomb, Probability: c.Spawn.Bomb},
			{Kind: core.KindBonusTime, Probability: c.Spawn.BonusTime},
		},
	}
}
