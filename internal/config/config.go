// Package config provides YAML-based configuration loading and difficulty
// presets for the marble shooter.
package config

// MarblesConfig contains all tunables of a marbles session.
type MarblesConfig struct {
	Timing  MarblesTiming  `yaml:"timing"`
	Physics MarblesPhysics `yaml:"physics"`
	Scoring MarblesScoring `yaml:"scoring"`
	Spawn   MarblesSpawn   `yaml:"spawn"`
	Levels  MarblesLevels  `yaml:"levels"`
}

// MarblesTiming defines round timers in milliseconds.
type MarblesTiming struct {
	RoundMsecs     float64 `yaml:"round_msecs"`
	RoundStepMsecs float64 `yaml:"round_step_msecs"` // Clock reduction per level
	RoundMinMsecs  float64 `yaml:"round_min_msecs"`
	PrepareMsecs   float64 `yaml:"prepare_msecs"`
	ExplosionMsecs float64 `yaml:"explosion_msecs"`
	BonusTimeMsecs float64 `yaml:"bonus_time_msecs"`
}

// MarblesPhysics defines projectile and falling parameters. Speeds are px/ms.
type MarblesPhysics struct {
	BallVelocity  float64 `yaml:"ball_velocity"`
	FrameMsecs    float64 `yaml:"frame_msecs"`
	AimStep       float64 `yaml:"aim_step"`
	AngleMin      float64 `yaml:"angle_min"`
	AngleMax      float64 `yaml:"angle_max"`
	FallingMsecs  float64 `yaml:"falling_msecs"`
	FallingSpeed  float64 `yaml:"falling_speed"`
	FallingJitter float64 `yaml:"falling_jitter"`
}

// MarblesScoring defines the removal and time bonus scoring.
type MarblesScoring struct {
	PointsPerBall float64 `yaml:"points_per_ball"`
	PointsGrowth  float64 `yaml:"points_growth"`
	PointsPerSec  int     `yaml:"points_per_sec"`
}

// MarblesSpawn defines special marble probabilities; the rest are regular.
type MarblesSpawn struct {
	Bomb      float64 `yaml:"bomb"`
	BonusTime float64 `yaml:"bonus_time"`
}

// MarblesLevels selects the level table.
type MarblesLevels struct {
	Path  string `yaml:"path"`  // Empty uses the embedded table
	Start int    `yaml:"start"` // 1-indexed
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables per-level clock reduction.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
