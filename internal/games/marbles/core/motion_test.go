package core

import (
	"math"
	"testing"
)

// projectileAt returns a stationary projectile so the predicted position equals pos.
func projectileAt(pos Vec2, color int) *Marble {
	m := NewMarble(color, KindRegular)
	m.Pos = pos
	return m
}

// offset returns a point at distance d from the centre of (row, col) along angle
// a, measured from the horizontal towards the bottom of the arena. dir is +1 for
// the right-hand side, -1 for the left.
func offset(row, col int, d, a float64, dir float64) Vec2 {
	c := CellCenter(row, col)
	return V(c.X+dir*d*math.Cos(a), c.Y+d*math.Sin(a))
}

func TestAdvanceBounces(t *testing.T) {
	tests := []struct {
		name    string
		pos     Vec2
		vel     Vec2
		wantX   float64
		wantVel float64
	}{
		{"left wall", V(30, 500), V(-1, -1), LeftBound, 1},
		{"right wall", V(570, 500), V(1, -1), RightBound, -1},
		{"free flight", V(300, 500), V(1, -1), 310, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMarble(0, KindRegular)
			m.Pos, m.Vel = tc.pos, tc.vel
			Advance(m, 10)
			if m.Pos.X != tc.wantX {
				t.Errorf("x = %v, expected %v", m.Pos.X, tc.wantX)
			}
			if m.Vel.X != tc.wantVel {
				t.Errorf("vx = %v, expected %v", m.Vel.X, tc.wantVel)
			}
			if m.Pos.Y != tc.pos.Y-10 {
				t.Errorf("y = %v, expected %v", m.Pos.Y, tc.pos.Y-10)
			}
		})
	}
}

func TestFallPrunes(t *testing.T) {
	m := NewMarble(0, KindRegular)
	m.Pos = V(100, 100)
	m.FallSpeed = 0.5
	m.FallMsecs = 2000

	if !Fall(m, 100) {
		t.Fatal("marble should still be falling")
	}
	if m.Pos.Y != 150 {
		t.Errorf("y = %v, expected 150", m.Pos.Y)
	}

	m.Pos.Y = LowerBound - 1
	if Fall(m, 10) {
		t.Error("marble past the lower bound should be pruned")
	}

	m.Pos.Y = 100
	m.FallMsecs = 5
	if Fall(m, 10) {
		t.Error("marble past its lifetime should be pruned")
	}
}

func TestDetectInFlight(t *testing.T) {
	g := NewGrid()
	place(t, g, 0, 0, 0, KindRegular)

	r := NewResolver(DefaultFrameMsecs)
	p := projectileAt(V(300, 500), 1)
	p.Vel = V(0, -1.7)

	if _, landed, err := r.Detect(g, p); landed || err != nil {
		t.Errorf("Detect() = landed %v err %v, expected still in flight", landed, err)
	}
}

func TestDetectTopWall(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		wantCol int
	}{
		{"left part", 100, 1},
		{"right bound", RightBound, LastCol},
		{"left bound", LeftBound, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid()
			r := NewResolver(DefaultFrameMsecs)
			p := projectileAt(V(tc.x, 20), 2)
			p.Vel = V(0, -1.7)

			land, landed, err := r.Detect(g, p)
			if err != nil || !landed {
				t.Fatalf("Detect() = landed %v err %v", landed, err)
			}
			if !land.TopWall || !land.Placed || land.Row != 0 || land.Col != tc.wantCol {
				t.Errorf("landing = %+v, expected top wall at (0,%d)", land, tc.wantCol)
			}
			if g.At(0, tc.wantCol) != p || p.Pos != CellCenter(0, tc.wantCol) {
				t.Error("projectile not snapped into its top-row cell")
			}
		})
	}
}

func TestDetectTopWallOccupied(t *testing.T) {
	g := NewGrid()
	place(t, g, 0, 1, 0, KindRegular)

	r := NewResolver(DefaultFrameMsecs)
	// Above the ceiling in column 1 but outside the hit radius of (0,1).
	p := projectileAt(V(58, -5), 1)

	land, landed, err := r.Detect(g, p)
	if err != nil || !landed {
		t.Fatalf("Detect() = landed %v err %v", landed, err)
	}
	if land.TopWall {
		t.Error("occupied top cell should resolve as a strike")
	}
	if land.Struck == nil || land.Struck.Cell() != (Cell{0, 1}) {
		t.Errorf("struck = %v, expected (0,1)", land.Struck)
	}
	if !land.Placed || g.At(land.Row, land.Col) != p {
		t.Errorf("projectile not placed, landing %+v", land)
	}
}

func TestDetectSlideAtShallowIncidence(t *testing.T) {
	g := NewGrid()
	place(t, g, 3, 4, 0, KindRegular)
	r := NewResolver(DefaultFrameMsecs)

	// 30 degrees below horizontal on the right side.
	p := projectileAt(offset(3, 4, 40, math.Pi/6, 1), 1)
	land, landed, err := r.Detect(g, p)
	if err != nil || !landed {
		t.Fatalf("Detect() = landed %v err %v", landed, err)
	}
	if !land.Slide || land.Row != 3 || land.Col != 5 {
		t.Errorf("landing = (%d,%d) slide=%v, expected slide into (3,5)", land.Row, land.Col, land.Slide)
	}
	if math.Abs(land.Incidence-math.Pi/6) > 1e-9 {
		t.Errorf("incidence = %v, expected %v", land.Incidence, math.Pi/6)
	}

	g2 := NewGrid()
	place(t, g2, 3, 4, 0, KindRegular)
	p2 := projectileAt(offset(3, 4, 40, math.Pi/6, -1), 1)
	land, _, _ = r.Detect(g2, p2)
	if !land.Slide || land.Row != 3 || land.Col != 3 {
		t.Errorf("left landing = (%d,%d), expected slide into (3,3)", land.Row, land.Col)
	}
}

func TestDetectSteepIncidence(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		dir      float64
		wantRow  int
		wantCol  int
	}{
		{"odd row from right", 3, 4, 1, 4, 5},
		{"odd row from left", 3, 4, -1, 4, 4},
		{"even row from right", 2, 4, 1, 3, 4},
		{"even row from left", 2, 4, -1, 3, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid()
			place(t, g, tc.row, tc.col, 0, KindRegular)
			r := NewResolver(DefaultFrameMsecs)

			p := projectileAt(offset(tc.row, tc.col, 40, math.Pi/3, tc.dir), 1)
			land, landed, err := r.Detect(g, p)
			if err != nil || !landed {
				t.Fatalf("Detect() = landed %v err %v", landed, err)
			}
			if land.Slide || land.Row != tc.wantRow || land.Col != tc.wantCol {
				t.Errorf("landing = (%d,%d) slide=%v, expected (%d,%d)",
					land.Row, land.Col, land.Slide, tc.wantRow, tc.wantCol)
			}
		})
	}
}

func TestDetectSlideBlocked(t *testing.T) {
	g := NewGrid()
	place(t, g, 3, 4, 0, KindRegular)
	place(t, g, 3, 5, 2, KindRegular)
	r := NewResolver(DefaultFrameMsecs)

	p := projectileAt(offset(3, 4, 40, math.Pi/6, 1), 1)
	land, _, err := r.Detect(g, p)
	if err != nil {
		t.Fatalf("Detect() failed: %v", err)
	}
	if land.Slide || land.Row != 4 || land.Col != 5 {
		t.Errorf("landing = (%d,%d) slide=%v, expected (4,5)", land.Row, land.Col, land.Slide)
	}
}

func TestStrikeStepsPastOccupiedCells(t *testing.T) {
	g := NewGrid()
	target := place(t, g, 2, 4, 0, KindRegular)
	place(t, g, 3, 3, 1, KindRegular)
	place(t, g, 4, 3, 1, KindRegular)
	r := NewResolver(DefaultFrameMsecs)

	land := r.strike(g, target, offset(2, 4, 40, math.Pi/3, -1))
	if land.Row != 5 || land.Col != 3 {
		t.Errorf("landing = (%d,%d), expected (5,3)", land.Row, land.Col)
	}
}

func TestDetectClampsColumn(t *testing.T) {
	g := NewGrid()
	place(t, g, 2, 0, 0, KindRegular)
	r := NewResolver(DefaultFrameMsecs)

	// Straight below the target: dx is zero after clamping to the left bound.
	p := projectileAt(V(LeftBound, CellCenter(2, 0).Y+40), 1)
	land, landed, err := r.Detect(g, p)
	if err != nil || !landed {
		t.Fatalf("Detect() = landed %v err %v", landed, err)
	}
	if land.Row != 3 || land.Col != 0 {
		t.Errorf("landing = (%d,%d), expected (3,0)", land.Row, land.Col)
	}
}

func TestDetectOverHeight(t *testing.T) {
	g := NewGrid()
	place(t, g, LastRow, 4, 0, KindRegular)
	r := NewResolver(DefaultFrameMsecs)

	p := projectileAt(offset(LastRow, 4, 40, math.Pi/3, 1), 1)
	land, landed, err := r.Detect(g, p)
	if err != nil || !landed {
		t.Fatalf("Detect() = landed %v err %v", landed, err)
	}
	if land.Placed {
		t.Error("landing below the last row must not be placed")
	}
	if land.Row != Rows {
		t.Errorf("landing row = %d, expected %d", land.Row, Rows)
	}
	if g.Count() != 1 {
		t.Error("grid should be unchanged")
	}
}
