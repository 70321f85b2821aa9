package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/marbles.yaml
var defaultMarblesYAML []byte

// DefaultMarblesConfig returns the default marbles configuration.
func DefaultMarblesConfig() MarblesConfig {
	return MarblesConfig{
		Timing: MarblesTiming{
			RoundMsecs:     60000,
			PrepareMsecs:   1000,
			ExplosionMsecs: 1000,
			BonusTimeMsecs: 5000,
		},
		Physics: MarblesPhysics{
			BallVelocity:  1.7,
			FrameMsecs:    33,
			AimStep:       math.Pi / 50,
			AngleMin:      -1.5,
			AngleMax:      1.5,
			FallingMsecs:  2000,
			FallingSpeed:  0.7,
			FallingJitter: 0.1,
		},
		Scoring: MarblesScoring{
			PointsPerBall: 1,
			PointsGrowth:  1.25,
			PointsPerSec:  5,
		},
		Spawn: MarblesSpawn{
			Bomb:      0.03,
			BonusTime: 0.02,
		},
		Levels: MarblesLevels{
			Start: 1,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "marbles":
		return defaultMarblesYAML
	default:
		return nil
	}
}
