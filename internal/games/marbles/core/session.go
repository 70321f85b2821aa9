package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoLevels        = errors.New("marbles: no levels")
	ErrLevelIndex      = errors.New("marbles: level index out of range")
	ErrLevelNotCleared = errors.New("marbles: level not cleared")
	ErrNoMoreLevels    = errors.New("marbles: no more levels")
)

// Config holds the tunables of a session. Times are milliseconds, speeds px/ms.
type Config struct {
	RoundMsecs     float64
	PrepareMsecs   float64
	ExplosionMsecs float64
	BonusTimeMsecs float64

	// RoundStepMsecs shortens the clock of every following level, down to RoundMinMsecs.
	RoundStepMsecs float64
	RoundMinMsecs  float64

	FallingMsecs  float64
	FallingSpeed  float64
	FallingJitter float64

	BallVelocity float64
	FrameMsecs   float64
	AimStep      float64
	AngleMin     float64
	AngleMax     float64

	PointsPerBall float64
	PointsGrowth  float64
	PointsPerSec  int

	Kinds KindTable
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		RoundMsecs:     60000,
		PrepareMsecs:   1000,
		ExplosionMsecs: 1000,
		BonusTimeMsecs: 5000,

		FallingMsecs:  2000,
		FallingSpeed:  0.7,
		FallingJitter: 0.1,

		BallVelocity: 1.7,
		FrameMsecs:   DefaultFrameMsecs,
		AimStep:      math.Pi / 50,
		AngleMin:     -1.5,
		AngleMax:     1.5,

		PointsPerBall: DefaultPointsPerBall,
		PointsGrowth:  DefaultPointsGrowth,
		PointsPerSec:  DefaultPointsPerSec,

		Kinds: DefaultKindTable(),
	}
}

// State is the phase of the round.
type State uint8

const (
	StatePreparing State = iota
	StateAiming
	StateProjectile
	StateStopped
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StatePreparing:
		return "preparing"
	case StateAiming:
		return "aiming"
	case StateProjectile:
		return "projectile"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Outcome tells how a stopped round ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
	// OutcomeCompleted is a win on the last level.
	OutcomeCompleted
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// RemovedMarble records a marble taken off the grid during a tick.
type RemovedMarble struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Color int  `json:"color"`
	Kind  Kind `json:"kind"`
	Pos   Vec2 `json:"pos"`
}

// Summary reports what happened during one Tick.
type Summary struct {
	State   State   `json:"state"`
	Outcome Outcome `json:"outcome"`

	Landed  bool `json:"landed"`
	Landing Cell `json:"landing"`

	ScoreDelta int     `json:"score_delta"`
	Bonus      int     `json:"bonus"`
	BonusMsecs float64 `json:"bonus_msecs"`

	Matched   []RemovedMarble `json:"matched,omitempty"`
	Floating  []RemovedMarble `json:"floating,omitempty"`
	Blasted   []RemovedMarble `json:"blasted,omitempty"`
	Explosion *Vec2           `json:"explosion,omitempty"`
}

// Session runs rounds over a list of levels. It is not safe for concurrent
// use; one goroutine owns it and drives Tick.
type Session struct {
	cfg    Config
	rng    Source
	levels []LevelDef
	level  int

	grid     *Grid
	engine   *Engine
	resolver *Resolver
	spawner  *Spawner

	state   State
	outcome Outcome
	paused  bool

	angle      float64
	current    *Marble
	next       *Marble
	projectile *Marble
	falling    []*Marble

	remainingMsecs float64
	prepareMsecs   float64
	explosionMsecs float64
	explosion      Vec2

	score int
	bonus int
	shots int
}

// NewSession creates a session and loads the first level.
func NewSession(cfg Config, levels []LevelDef, rng Source) (*Session, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	grid := NewGrid()
	s := &Session{
		cfg:      cfg,
		rng:      rng,
		levels:   levels,
		grid:     grid,
		engine:   NewEngine(grid),
		resolver: NewResolver(cfg.FrameMsecs),
		spawner:  NewSpawner(rng, cfg.Kinds),
	}
	if err := s.LoadLevel(0); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadLevel discards all round state and starts the level at index.
// The score is kept.
func (s *Session) LoadLevel(index int) error {
	if index < 0 || index >= len(s.levels) {
		return fmt.Errorf("%w: %d of %d", ErrLevelIndex, index, len(s.levels))
	}
	if err := s.grid.Load(s.levels[index]); err != nil {
		return fmt.Errorf("level %d: %w", index+1, err)
	}

	s.level = index
	s.state = StatePreparing
	s.outcome = OutcomeNone
	s.paused = false
	s.angle = 0
	s.projectile = nil
	s.falling = nil
	s.remainingMsecs = s.roundMsecs(index)
	s.prepareMsecs = s.cfg.PrepareMsecs
	s.explosionMsecs = 0
	s.explosion = Vec2{}
	s.bonus = 0
	s.shots = 0

	colors := s.grid.AvailableColors()
	s.current = s.spawner.Regular(colors)
	s.next = s.spawner.Regular(colors)
	return nil
}

func (s *Session) roundMsecs(index int) float64 {
	ms := s.cfg.RoundMsecs - float64(index)*s.cfg.RoundStepMsecs
	if ms < s.cfg.RoundMinMsecs {
		ms = s.cfg.RoundMinMsecs
	}
	return ms
}

// Restart clears the score and starts over at the given level.
func (s *Session) Restart(index int) error {
	if err := s.LoadLevel(index); err != nil {
		return err
	}
	s.score = 0
	return nil
}

// NextLevel advances after a won round.
func (s *Session) NextLevel() error {
	if s.outcome == OutcomeCompleted || (s.outcome == OutcomeWon && !s.HasNextLevel()) {
		return ErrNoMoreLevels
	}
	if s.outcome != OutcomeWon {
		return ErrLevelNotCleared
	}
	return s.LoadLevel(s.level + 1)
}

// HasNextLevel reports whether a level follows the current one.
func (s *Session) HasNextLevel() bool {
	return s.level+1 < len(s.levels)
}

// SetAim sets the launcher angle in radians, clamped to the configured range.
func (s *Session) SetAim(angle float64) {
	s.angle = clampF(angle, s.cfg.AngleMin, s.cfg.AngleMax)
}

// RotateAim turns the launcher by the given number of aim steps (negative is left).
// It is accepted in every state so the player can aim ahead.
func (s *Session) RotateAim(steps float64) {
	s.SetAim(s.angle + steps*s.cfg.AimStep)
}

// Fire launches the current marble. It is ignored unless aiming.
func (s *Session) Fire() bool {
	if s.state != StateAiming || s.paused || s.current == nil {
		return false
	}

	p := s.current
	p.Row, p.Col = -1, -1
	p.Pos = V(LauncherX, LauncherY)
	p.Vel = V(math.Sin(s.angle), -math.Cos(s.angle)).Scale(s.cfg.BallVelocity)

	s.projectile = p
	s.current = s.next
	s.next = s.spawner.Next(s.grid.AvailableColors())
	s.state = StateProjectile
	s.shots++
	return true
}

// Swap exchanges the current and next marbles. It is ignored unless aiming.
func (s *Session) Swap() bool {
	if s.state != StateAiming || s.paused {
		return false
	}
	s.current, s.next = s.next, s.current
	return true
}

// SetPaused freezes or resumes the session.
func (s *Session) SetPaused(paused bool) {
	s.paused = paused
}

// Tick advances the session by elapsed milliseconds.
// It panics if a landing tries to place onto an occupied cell.
func (s *Session) Tick(elapsedMsecs float64) Summary {
	if s.paused || elapsedMsecs <= 0 {
		return s.summary()
	}

	if s.explosionMsecs > 0 {
		s.explosionMsecs = math.Max(0, s.explosionMsecs-elapsedMsecs)
	}
	s.updateFalling(elapsedMsecs)

	switch s.state {
	case StatePreparing:
		s.prepareMsecs -= elapsedMsecs
		if s.prepareMsecs <= 0 {
			s.prepareMsecs = 0
			s.state = StateAiming
		}

	case StateAiming:
		if s.countdown(elapsedMsecs) {
			s.lose()
		}

	case StateProjectile:
		if s.countdown(elapsedMsecs) {
			s.lose()
			break
		}
		return s.flight(elapsedMsecs)
	}

	return s.summary()
}

// countdown runs the round clock and reports whether it ran out.
func (s *Session) countdown(elapsedMsecs float64) bool {
	s.remainingMsecs -= elapsedMsecs
	if s.remainingMsecs <= 0 {
		s.remainingMsecs = 0
		return true
	}
	return false
}

func (s *Session) flight(elapsedMsecs float64) Summary {
	p := s.projectile
	Advance(p, elapsedMsecs)

	land, landed, err := s.resolver.Detect(s.grid, p)
	if err != nil {
		panic(err)
	}
	if !landed {
		return s.summary()
	}

	s.projectile = nil
	s.state = StateAiming
	sum := Summary{Landed: true, Landing: Cell{Row: land.Row, Col: land.Col}}

	if !land.Placed {
		s.lose()
		return s.fill(sum)
	}

	res := s.engine.Resolve(p)
	if res.Removed() > 0 {
		sum.ScoreDelta = WeightedScore(res.Removed(), s.cfg.PointsPerBall, s.cfg.PointsGrowth)
		s.score += sum.ScoreDelta

		sum.BonusMsecs = float64(res.BonusMarbles) * s.cfg.BonusTimeMsecs
		s.remainingMsecs += sum.BonusMsecs

		if res.Bomb {
			s.explosionMsecs = s.cfg.ExplosionMsecs
			s.explosion = res.Explosion
			c := res.Explosion
			sum.Explosion = &c
		}

		sum.Blasted = removedList(res.Blasted)
		sum.Matched = removedList(res.Matched)
		sum.Floating = removedList(res.Floating)
		for _, m := range res.Matched {
			s.startFalling(m)
		}
		for _, m := range res.Floating {
			s.startFalling(m)
		}

		if s.grid.IsEmpty() {
			s.win()
			sum.Bonus = s.bonus
			return s.fill(sum)
		}
	}

	if s.grid.RowOccupied(LastRow) {
		s.lose()
	}
	return s.fill(sum)
}

func (s *Session) win() {
	s.bonus = TimeBonus(s.remainingMsecs, s.cfg.PointsPerSec)
	s.score += s.bonus
	s.falling = nil
	s.state = StateStopped
	s.outcome = OutcomeWon
	if !s.HasNextLevel() {
		s.outcome = OutcomeCompleted
	}
}

func (s *Session) lose() {
	s.projectile = nil
	s.falling = nil
	s.state = StateStopped
	s.outcome = OutcomeLost
}

func (s *Session) startFalling(m *Marble) {
	m.FallSpeed = s.cfg.FallingSpeed + s.rng.Float64()*s.cfg.FallingJitter
	m.FallMsecs = s.cfg.FallingMsecs
	s.falling = append(s.falling, m)
}

func (s *Session) updateFalling(elapsedMsecs float64) {
	if len(s.falling) == 0 {
		return
	}
	kept := s.falling[:0]
	for _, m := range s.falling {
		if Fall(m, elapsedMsecs) {
			kept = append(kept, m)
		}
	}
	for i := len(kept); i < len(s.falling); i++ {
		s.falling[i] = nil
	}
	s.falling = kept
}

func (s *Session) summary() Summary {
	return s.fill(Summary{})
}

func (s *Session) fill(sum Summary) Summary {
	sum.State = s.state
	sum.Outcome = s.outcome
	return sum
}

func removedList(ms []*Marble) []RemovedMarble {
	if len(ms) == 0 {
		return nil
	}
	out := make([]RemovedMarble, len(ms))
	for i, m := range ms {
		out[i] = RemovedMarble{Row: m.Row, Col: m.Col, Color: m.Color, Kind: m.Kind, Pos: m.Pos}
	}
	return out
}

// Grid returns the board. Callers must not modify it.
func (s *Session) Grid() *Grid { return s.grid }

// Current returns the marble ready to fire.
func (s *Session) Current() *Marble { return s.current }

// Next returns the marble waiting behind the current one.
func (s *Session) Next() *Marble { return s.next }

// Projectile returns the marble in flight, or nil.
func (s *Session) Projectile() *Marble { return s.projectile }

// Falling returns the marbles still animating off the board.
func (s *Session) Falling() []*Marble { return s.falling }

// RemainingMsecs returns the round clock.
func (s *Session) RemainingMsecs() float64 { return s.remainingMsecs }

// RemainingSeconds returns the round clock in whole seconds rounded up.
func (s *Session) RemainingSeconds() int {
	return int(math.Ceil(s.remainingMsecs / 1000))
}

// PrepareMsecs returns what is left of the get-ready countdown.
func (s *Session) PrepareMsecs() float64 { return s.prepareMsecs }

// ExplosionMsecs returns how long the last explosion stays visible.
func (s *Session) ExplosionMsecs() float64 { return s.explosionMsecs }

// Explosion returns the centre of the last bomb blast.
func (s *Session) Explosion() Vec2 { return s.explosion }

func (s *Session) Score() int { return s.score }
func (s *Session) Bonus() int { return s.bonus }
func (s *Session) Angle() float64 { return s.angle }
func (s *Session) State() State { return s.state }
func (s *Session) Outcome() Outcome { return s.outcome }
func (s *Session) Paused() bool { return s.paused }
func (s *Session) Shots() int { return s.shots }
func (s *Session) Level() int { return s.level }
func (s *Session) LevelCount() int { return len(s.levels) }
func (s *Session) Config() Config { return s.cfg }
