// Package core provides the core game logic for the Marbles shooter.
// This package is UI-agnostic and deterministic for a given random source.
package core

import "math"

// Grid dimensions. Odd rows are shifted right by half a cell.
const (
	Rows    = 14
	Cols    = 10
	LastRow = Rows - 1
	LastCol = Cols - 1

	// ColorCount is the number of distinct marble colors.
	ColorCount = 7
)

// Arena geometry in pixels. Positions are continuous; the renderer scales them.
const (
	BallSize = 57.0
	BallHalf = BallSize / 2

	ArenaWidth  = 600.0
	ArenaHeight = 1000.0

	LeftBound  = 28.5
	RightBound = 571.5
	UpperBound = 0.0
	LowerBound = 800.0

	// HitThreshold is the squared centre distance below which two marbles touch.
	HitThreshold = 1625.0

	// SlideAngle is the incidence below which a projectile settles beside its target.
	SlideAngle = 0.785

	LauncherX = 302.0
	LauncherY = 852.0
)

// Kind distinguishes regular marbles from the special ones.
type Kind uint8

const (
	KindRegular Kind = iota
	KindBonusTime
	KindBomb
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindBonusTime:
		return "bonus_time"
	case KindBomb:
		return "bomb"
	default:
		return "unknown"
	}
}

// Vec2 is a point or velocity in arena pixels.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for creating a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v*f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// DistSq returns the squared distance between v and o.
func (v Vec2) DistSq(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return dx*dx + dy*dy
}

// Cell addresses one slot of the grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At is shorthand for creating a Cell.
func At(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// InBounds reports whether (row, col) lies on the grid.
func InBounds(row, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}

// CellCenter returns the pixel centre of a grid cell.
func CellCenter(row, col int) Vec2 {
	x := float64(col)*BallSize + BallHalf
	if row%2 == 1 {
		x += BallHalf
	}
	return Vec2{X: x, Y: float64(row)*BallSize + BallHalf}
}

// Marble is a single marble, whether resting on the grid, in flight or falling.
type Marble struct {
	Row   int
	Col   int
	Color int
	Kind  Kind

	Pos Vec2
	Vel Vec2

	// Falling animation state, set when the marble leaves the grid.
	FallSpeed float64
	FallMsecs float64
}

// NewMarble creates a marble that is not yet on the grid.
func NewMarble(color int, kind Kind) *Marble {
	return &Marble{Row: -1, Col: -1, Color: color, Kind: kind}
}

// Cell returns the grid address of the marble.
func (m *Marble) Cell() Cell {
	return Cell{Row: m.Row, Col: m.Col}
}

// Snap aligns the marble position with its cell centre.
func (m *Marble) Snap() {
	m.Pos = CellCenter(m.Row, m.Col)
}

// Clone returns a copy of the marble.
func (m *Marble) Clone() *Marble {
	c := *m
	return &c
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
