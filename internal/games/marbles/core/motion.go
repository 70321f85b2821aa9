package core

import "math"

// DefaultFrameMsecs is the lookahead used when predicting a projectile's next position.
const DefaultFrameMsecs = 33.0

// Advance moves an in-flight marble by elapsed milliseconds and reflects it
// off the side walls, clamping x into [LeftBound, RightBound].
func Advance(m *Marble, elapsedMsecs float64) {
	m.Pos = m.Pos.Add(m.Vel.Scale(elapsedMsecs))

	if m.Pos.X < LeftBound {
		m.Pos.X = LeftBound
		m.Vel.X = math.Abs(m.Vel.X)
	} else if m.Pos.X > RightBound {
		m.Pos.X = RightBound
		m.Vel.X = -math.Abs(m.Vel.X)
	}
}

// Fall moves a falling marble down and consumes its remaining lifetime.
// It returns false once the marble should be dropped.
func Fall(m *Marble, elapsedMsecs float64) bool {
	m.Pos.Y += m.FallSpeed * elapsedMsecs
	if m.Pos.Y >= LowerBound {
		return false
	}
	m.FallMsecs -= elapsedMsecs
	return m.FallMsecs >= 0
}

// Landing describes where a projectile came to rest.
type Landing struct {
	Row int
	Col int

	// Placed is false when the computed row fell off the bottom of the grid.
	Placed bool

	// TopWall is set when the projectile reached the ceiling without touching a marble.
	TopWall bool

	// Slide is set when the projectile settled in the struck marble's row.
	Slide bool

	// Struck is the grid marble that was hit, nil for a top-wall landing.
	Struck    *Marble
	Incidence float64
}

// Resolver detects contact between the projectile and the grid and
// decides the landing cell.
type Resolver struct {
	FrameMsecs float64
}

// NewResolver creates a resolver with the given lookahead in milliseconds.
func NewResolver(frameMsecs float64) *Resolver {
	if frameMsecs <= 0 {
		frameMsecs = DefaultFrameMsecs
	}
	return &Resolver{FrameMsecs: frameMsecs}
}

// Detect checks whether m touches a grid marble or the ceiling. On contact the
// marble is placed on the grid (when the landing row exists) and the landing is
// returned with landed=true. Otherwise the projectile is still in flight.
func (r *Resolver) Detect(g *Grid, m *Marble) (Landing, bool, error) {
	pred := m.Pos.Add(m.Vel.Scale(r.FrameMsecs))
	pred.X = clampF(pred.X, LeftBound, RightBound)

	// Lower rows win ties.
	for row := LastRow; row >= 0; row-- {
		for col := 0; col < Cols; col++ {
			target := g.cells[row][col]
			if target == nil || target == m {
				continue
			}
			if target.Pos.DistSq(pred) < HitThreshold {
				land := r.strike(g, target, pred)
				return r.settle(g, m, land)
			}
		}
	}

	if m.Pos.Y < BallHalf {
		col := clampInt(int(math.Floor(m.Pos.X/BallSize)), 0, LastCol)
		if occupant := g.cells[0][col]; occupant != nil {
			land := r.strike(g, occupant, pred)
			return r.settle(g, m, land)
		}
		return r.settle(g, m, Landing{Row: 0, Col: col, TopWall: true})
	}

	return Landing{}, false, nil
}

// strike picks the landing cell for a projectile at pred touching target.
func (r *Resolver) strike(g *Grid, target *Marble, pred Vec2) Landing {
	row, col := target.Row, target.Col
	dx := pred.X - target.Pos.X
	dy := pred.Y - target.Pos.Y
	odd := row%2 == 1

	land := Landing{Struck: target}

	if dx > 0 {
		// Approaching from the right.
		land.Incidence = math.Atan2(dy, dx)
		if land.Incidence < SlideAngle && col < LastCol && g.cells[row][col+1] == nil {
			land.Row, land.Col, land.Slide = row, col+1, true
			return land
		}
		land.Row = row + 1
		land.Col = col
		if odd {
			land.Col = col + 1
		}
	} else {
		land.Incidence = math.Atan2(dy, -dx)
		if land.Incidence < SlideAngle && col > 0 && g.cells[row][col-1] == nil {
			land.Row, land.Col, land.Slide = row, col-1, true
			return land
		}
		land.Row = row + 1
		land.Col = col - 1
		if odd {
			land.Col = col
		}
	}

	land.Col = clampInt(land.Col, 0, LastCol)
	for land.Row < Rows && g.cells[land.Row][land.Col] != nil {
		land.Row++
	}
	return land
}

// settle places m at the landing cell when that row exists.
func (r *Resolver) settle(g *Grid, m *Marble, land Landing) (Landing, bool, error) {
	if land.Row >= Rows {
		m.Row, m.Col = land.Row, land.Col
		return land, true, nil
	}
	if err := g.Place(m, land.Row, land.Col); err != nil {
		return land, true, err
	}
	land.Placed = true
	return land, true, nil
}
