package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

// fixedSource always draws the same values: f keeps spawns regular, n picks
// the first available color.
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }

func (s fixedSource) Intn(n int) int {
	if s.n >= n {
		return n - 1
	}
	return s.n
}

func newTestSession(t *testing.T, cfg Config, levels ...LevelDef) *Session {
	t.Helper()
	s, err := NewSession(cfg, levels, fixedSource{f: 0.99})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func skipPrepare(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; s.State() == StatePreparing; i++ {
		if i > 1000 {
			t.Fatal("session never left the preparing state")
		}
		s.Tick(10)
	}
}

func flyUntilLanded(t *testing.T, s *Session) Summary {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if sum := s.Tick(10); sum.Landed {
			return sum
		}
	}
	t.Fatal("projectile never landed")
	return Summary{}
}

// twoReds has red marbles at (0,4) and (0,5); a straight shot from the
// launcher settles at (1,4) and completes the cluster.
var twoReds = levelOf(map[Cell]int{{0, 4}: 0, {0, 5}: 0})

func TestNewSessionRequiresLevels(t *testing.T) {
	if _, err := NewSession(DefaultConfig(), nil, fixedSource{}); !errors.Is(err, ErrNoLevels) {
		t.Errorf("NewSession(nil levels) = %v, expected ErrNoLevels", err)
	}

	var bad LevelDef
	bad[0] = 99
	if _, err := NewSession(DefaultConfig(), []LevelDef{bad}, fixedSource{}); !errors.Is(err, ErrBadLevel) {
		t.Errorf("NewSession(bad level) = %v, expected ErrBadLevel", err)
	}
}

func TestSessionStartsPreparing(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), twoReds)

	if s.State() != StatePreparing {
		t.Errorf("state = %v, expected preparing", s.State())
	}
	if s.Current() == nil || s.Next() == nil {
		t.Fatal("current and next marbles should be ready")
	}
	if s.Current().Color != 0 || s.Current().Kind != KindRegular {
		t.Errorf("current = %+v, expected a regular red marble", s.Current())
	}
	if s.Fire() {
		t.Error("Fire() accepted while preparing")
	}
	if s.Swap() {
		t.Error("Swap() accepted while preparing")
	}

	s.Tick(500)
	if s.RemainingMsecs() != DefaultConfig().RoundMsecs {
		t.Error("round clock should not run while preparing")
	}
	s.Tick(500)
	if s.State() != StateAiming {
		t.Errorf("state = %v, expected aiming", s.State())
	}
}

func TestSessionClearsLastLevel(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), twoReds)
	skipPrepare(t, s)

	if !s.Fire() {
		t.Fatal("Fire() rejected while aiming")
	}
	if s.State() != StateProjectile || s.Projectile() == nil {
		t.Fatal("fired marble should be in flight")
	}
	if s.Fire() {
		t.Error("Fire() accepted with a marble in flight")
	}

	sum := flyUntilLanded(t, s)
	if sum.Landing != (Cell{1, 4}) {
		t.Errorf("landed at %v, expected (1,4)", sum.Landing)
	}
	if len(sum.Matched) != 3 {
		t.Errorf("matched %d, expected 3", len(sum.Matched))
	}
	if s.Outcome() != OutcomeCompleted || s.State() != StateStopped {
		t.Errorf("outcome = %v state = %v, expected completed and stopped", s.Outcome(), s.State())
	}

	bonus := TimeBonus(s.RemainingMsecs(), DefaultPointsPerSec)
	if bonus == 0 || s.Bonus() != bonus || sum.Bonus != bonus {
		t.Errorf("bonus = %d, expected %d", s.Bonus(), bonus)
	}
	if s.Score() != 3+bonus {
		t.Errorf("score = %d, expected %d", s.Score(), 3+bonus)
	}
	if len(s.Falling()) != 0 {
		t.Error("falling marbles should be cleared on win")
	}
	if err := s.NextLevel(); !errors.Is(err, ErrNoMoreLevels) {
		t.Errorf("NextLevel() = %v, expected ErrNoMoreLevels", err)
	}
}

func TestSessionAdvancesLevel(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), twoReds, twoReds)

	if err := s.NextLevel(); !errors.Is(err, ErrLevelNotCleared) {
		t.Errorf("NextLevel() before winning = %v, expected ErrLevelNotCleared", err)
	}

	skipPrepare(t, s)
	s.Fire()
	flyUntilLanded(t, s)

	if s.Outcome() != OutcomeWon {
		t.Fatalf("outcome = %v, expected won", s.Outcome())
	}
	score := s.Score()

	if err := s.NextLevel(); err != nil {
		t.Fatalf("NextLevel() failed: %v", err)
	}
	if s.Level() != 1 || s.State() != StatePreparing {
		t.Errorf("level %d state %v, expected level 1 preparing", s.Level(), s.State())
	}
	if s.Score() != score {
		t.Errorf("score = %d, expected %d to carry over", s.Score(), score)
	}
	if s.Bonus() != 0 || s.Shots() != 0 {
		t.Error("bonus and shots should reset per level")
	}

	if err := s.Restart(0); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	if s.Score() != 0 || s.Level() != 0 {
		t.Error("Restart() should clear the score")
	}
	if err := s.LoadLevel(2); !errors.Is(err, ErrLevelIndex) {
		t.Errorf("LoadLevel(2) = %v, expected ErrLevelIndex", err)
	}
}

func TestSessionLosesOnLastRow(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), levelOf(map[Cell]int{{0, 5}: 1}))
	if err := s.Grid().Place(NewMarble(3, KindRegular), LastRow, 0); err != nil {
		t.Fatal(err)
	}
	skipPrepare(t, s)
	s.Fire()

	sum := flyUntilLanded(t, s)
	if sum.ScoreDelta != 0 {
		t.Errorf("score delta = %d, expected no match", sum.ScoreDelta)
	}
	if s.Outcome() != OutcomeLost || sum.Outcome != OutcomeLost {
		t.Errorf("outcome = %v, expected lost", s.Outcome())
	}
	if s.Fire() {
		t.Error("Fire() accepted after the round stopped")
	}
}

func TestSessionBomb(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), levelOf(map[Cell]int{{0, 4}: 0, {0, 5}: 1, {0, 6}: 2}))
	skipPrepare(t, s)
	s.Current().Kind = KindBomb
	s.Fire()

	sum := flyUntilLanded(t, s)
	if len(sum.Blasted) != 3 {
		t.Errorf("blasted %d, expected 3", len(sum.Blasted))
	}
	if len(sum.Matched) != 0 {
		t.Error("bomb should not match by color")
	}
	if sum.Explosion == nil || *sum.Explosion != CellCenter(1, 4) {
		t.Errorf("explosion = %v, expected %v", sum.Explosion, CellCenter(1, 4))
	}
	if s.ExplosionMsecs() != DefaultConfig().ExplosionMsecs {
		t.Errorf("explosion timer = %v", s.ExplosionMsecs())
	}
	if len(s.Falling()) != 0 {
		t.Error("blasted marbles do not fall")
	}
	if sum.ScoreDelta != 3 || s.Score() != 3 {
		t.Errorf("score delta = %d, expected 3", sum.ScoreDelta)
	}
	if s.State() != StateAiming || s.Grid().Count() != 1 {
		t.Errorf("state %v with %d marbles, expected aiming with (0,6) left", s.State(), s.Grid().Count())
	}

	s.Tick(400)
	s.Tick(700)
	if s.ExplosionMsecs() != 0 {
		t.Errorf("explosion timer = %v, expected 0", s.ExplosionMsecs())
	}
}

func TestSessionBonusTimeAndFalling(t *testing.T) {
	cfg := DefaultConfig()
	s := newTestSession(t, cfg, levelOf(map[Cell]int{{0, 4}: 0, {0, 5}: 0, {0, 0}: 1}))
	skipPrepare(t, s)
	s.Current().Kind = KindBonusTime
	s.Fire()

	sum := flyUntilLanded(t, s)
	if sum.BonusMsecs != cfg.BonusTimeMsecs {
		t.Errorf("bonus time = %v, expected %v", sum.BonusMsecs, cfg.BonusTimeMsecs)
	}
	if s.RemainingMsecs() <= cfg.RoundMsecs {
		t.Errorf("remaining = %v, expected above %v", s.RemainingMsecs(), cfg.RoundMsecs)
	}
	if len(s.Falling()) != 3 {
		t.Fatalf("falling = %d, expected 3", len(s.Falling()))
	}

	s.Tick(cfg.FallingMsecs + 100)
	if len(s.Falling()) != 0 {
		t.Errorf("falling = %d, expected all pruned", len(s.Falling()))
	}
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), twoReds)
	skipPrepare(t, s)
	s.Tick(100)
	before := s.RemainingMsecs()

	s.SetPaused(true)
	s.Tick(5000)
	if s.RemainingMsecs() != before {
		t.Error("clock moved while paused")
	}
	if s.Fire() || s.Swap() {
		t.Error("Fire() and Swap() should be ignored while paused")
	}

	s.SetPaused(false)
	s.Tick(100)
	if s.RemainingMsecs() != before-100 {
		t.Errorf("remaining = %v, expected %v", s.RemainingMsecs(), before-100)
	}
}

func TestSessionTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoundMsecs = 500
	s := newTestSession(t, cfg, twoReds)
	skipPrepare(t, s)

	sum := s.Tick(600)
	if sum.Outcome != OutcomeLost || s.State() != StateStopped {
		t.Errorf("outcome = %v state = %v, expected lost and stopped", sum.Outcome, s.State())
	}
	if s.RemainingMsecs() != 0 {
		t.Errorf("remaining = %v, expected 0", s.RemainingMsecs())
	}
}

func TestSessionAimAndSwap(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), twoReds)

	s.SetAim(3)
	if s.Angle() != 1.5 {
		t.Errorf("angle = %v, expected clamp to 1.5", s.Angle())
	}
	s.RotateAim(-1000)
	if s.Angle() != -1.5 {
		t.Errorf("angle = %v, expected clamp to -1.5", s.Angle())
	}

	skipPrepare(t, s)
	cur, next := s.Current(), s.Next()
	if !s.Swap() {
		t.Fatal("Swap() rejected while aiming")
	}
	if s.Current() != next || s.Next() != cur {
		t.Error("Swap() did not exchange the marbles")
	}
}

func TestSessionLoadLevelDuringFlight(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), twoReds)
	skipPrepare(t, s)
	s.Fire()
	s.Tick(100)

	if err := s.LoadLevel(0); err != nil {
		t.Fatalf("LoadLevel() failed: %v", err)
	}
	if s.Projectile() != nil || s.State() != StatePreparing {
		t.Error("LoadLevel() should drop the projectile and restart preparing")
	}
	if s.Shots() != 0 || s.Grid().Count() != 2 {
		t.Errorf("shots %d with %d marbles, expected a fresh level", s.Shots(), s.Grid().Count())
	}
}

func TestSnapshotJSON(t *testing.T) {
	s := newTestSession(t, DefaultConfig(), twoReds, twoReds)

	snap := s.Snapshot()
	if snap.Level != 1 || snap.LevelCount != 2 || len(snap.Grid) != 2 {
		t.Errorf("snapshot = %+v", snap)
	}

	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	for _, want := range []string{`"state":"preparing"`, `"outcome":"none"`, `"kind":"regular"`} {
		if !strings.Contains(string(b), want) {
			t.Errorf("snapshot JSON missing %s: %s", want, b)
		}
	}

	var back Snapshot
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if back.State != StatePreparing || len(back.Grid) != 2 {
		t.Errorf("decoded snapshot = %+v", back)
	}
}

func TestSessionRoundClockPerLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RoundStepMsecs = 20000
	cfg.RoundMinMsecs = 30000
	s := newTestSession(t, cfg, twoReds, twoReds, twoReds)

	expected := []float64{60000, 40000, 30000}
	for i, want := range expected {
		if err := s.LoadLevel(i); err != nil {
			t.Fatal(err)
		}
		if s.RemainingMsecs() != want {
			t.Errorf("level %d clock = %v, expected %v", i+1, s.RemainingMsecs(), want)
		}
	}
}
