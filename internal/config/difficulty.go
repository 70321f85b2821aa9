package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid marbles config")

// ApplyMarblesPreset modifies the config based on a difficulty preset.
// Presets other than fixed shorten the round clock on later levels.
func ApplyMarblesPreset(cfg *MarblesConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.RoundMsecs = 90000
		cfg.Timing.RoundStepMsecs = 2000
		cfg.Timing.RoundMinMsecs = 60000
		cfg.Spawn.Bomb = 0.05
		cfg.Spawn.BonusTime = 0.04
	case DifficultyNormal:
		cfg.Timing.RoundMsecs = 60000
		cfg.Timing.RoundStepMsecs = 2500
		cfg.Timing.RoundMinMsecs = 40000
	case DifficultyHard:
		cfg.Timing.RoundMsecs = 45000
		cfg.Timing.RoundStepMsecs = 3000
		cfg.Timing.RoundMinMsecs = 20000
		cfg.Physics.BallVelocity = 2.0
		cfg.Spawn.Bomb = 0.02
		cfg.Spawn.BonusTime = 0.01
	case DifficultyFixed:
		cfg.Timing.RoundStepMsecs = 0
	}
}

// Validate reports the first out-of-range value.
func (c MarblesConfig) Validate() error {
	t, p, s := c.Timing, c.Physics, c.Spawn
	switch {
	case t.RoundMsecs <= 0:
		return fmt.Errorf("%w: timing.round_msecs must be positive", ErrInvalidConfig)
	case t.RoundStepMsecs < 0:
		return fmt.Errorf("%w: timing.round_step_msecs must not be negative", ErrInvalidConfig)
	case t.RoundStepMsecs > 0 && t.RoundMinMsecs <= 0:
		return fmt.Errorf("%w: timing.round_min_msecs must be positive when the clock shrinks", ErrInvalidConfig)
	case t.PrepareMsecs < 0 || t.ExplosionMsecs < 0 || t.BonusTimeMsecs < 0:
		return fmt.Errorf("%w: timing values must not be negative", ErrInvalidConfig)
	case p.BallVelocity <= 0:
		return fmt.Errorf("%w: physics.ball_velocity must be positive", ErrInvalidConfig)
	case p.AngleMin >= p.AngleMax:
		return fmt.Errorf("%w: physics.angle_min must be below angle_max", ErrInvalidConfig)
	case p.FallingSpeed <= 0 || p.FallingMsecs <= 0:
		return fmt.Errorf("%w: physics falling values must be positive", ErrInvalidConfig)
	case c.Scoring.PointsPerBall <= 0 || c.Scoring.PointsGrowth < 1:
		return fmt.Errorf("%w: scoring.points_per_ball must be positive and points_growth at least 1", ErrInvalidConfig)
	case s.Bomb < 0 || s.BonusTime < 0 || s.Bomb+s.BonusTime > 1:
		return fmt.Errorf("%w: spawn probabilities must be within [0,1] in total", ErrInvalidConfig)
	case c.Levels.Start < 0:
		return fmt.Errorf("%w: levels.start must not be negative", ErrInvalidConfig)
	}
	return nil
}
