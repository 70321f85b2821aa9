package core

import "fmt"

// MarbleView is the serializable form of a marble.
type MarbleView struct {
	Row   int  `json:"row"`
	Col   int  `json:"col"`
	Color int  `json:"color"`
	Kind  Kind `json:"kind"`
	Pos   Vec2 `json:"pos"`
}

func viewOf(m *Marble) *MarbleView {
	if m == nil {
		return nil
	}
	return &MarbleView{Row: m.Row, Col: m.Col, Color: m.Color, Kind: m.Kind, Pos: m.Pos}
}

// Snapshot captures the observable session state for front-ends and tests.
type Snapshot struct {
	Level      int     `json:"level"` // 1-indexed
	LevelCount int     `json:"level_count"`
	State      State   `json:"state"`
	Outcome    Outcome `json:"outcome"`
	Paused     bool    `json:"paused"`

	Score            int     `json:"score"`
	Bonus            int     `json:"bonus"`
	RemainingMsecs   float64 `json:"remaining_msecs"`
	RemainingSeconds int     `json:"remaining_seconds"`
	Angle            float64 `json:"angle"`

	Grid       []MarbleView `json:"grid"`
	Current    *MarbleView  `json:"current,omitempty"`
	Next       *MarbleView  `json:"next,omitempty"`
	Projectile *MarbleView  `json:"projectile,omitempty"`
	Falling    []MarbleView `json:"falling,omitempty"`

	ExplosionMsecs float64 `json:"explosion_msecs,omitempty"`
	Explosion      *Vec2   `json:"explosion,omitempty"`
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Level:            s.level + 1,
		LevelCount:       len(s.levels),
		State:            s.state,
		Outcome:          s.outcome,
		Paused:           s.paused,
		Score:            s.score,
		Bonus:            s.bonus,
		RemainingMsecs:   s.remainingMsecs,
		RemainingSeconds: s.RemainingSeconds(),
		Angle:            s.angle,
		Current:          viewOf(s.current),
		Next:             viewOf(s.next),
		Projectile:       viewOf(s.projectile),
		ExplosionMsecs:   s.explosionMsecs,
	}

	marbles := s.grid.Marbles()
	snap.Grid = make([]MarbleView, 0, len(marbles))
	for _, m := range marbles {
		snap.Grid = append(snap.Grid, *viewOf(m))
	}
	for _, m := range s.falling {
		snap.Falling = append(snap.Falling, *viewOf(m))
	}
	if s.explosionMsecs > 0 {
		c := s.explosion
		snap.Explosion = &c
	}
	return snap
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	for _, c := range []Kind{KindRegular, KindBonusTime, KindBomb} {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("marbles: unknown kind %q", b)
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	for _, c := range []State{StatePreparing, StateAiming, StateProjectile, StateStopped} {
		if c.String() == string(b) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("marbles: unknown state %q", b)
}

// UnmarshalText decodes an outcome name.
func (o *Outcome) UnmarshalText(b []byte) error {
	for _, c := range []Outcome{OutcomeNone, OutcomeWon, OutcomeLost, OutcomeCompleted} {
		if c.String() == string(b) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("marbles: unknown outcome %q", b)
}
