package core

// Visited marks grid cells reached by a traversal.
type Visited [Rows][Cols]bool

// MinCluster is the smallest same-color group that is removed.
const MinCluster = 3

// Engine finds clusters and unsupported marbles. It owns the traversal
// scratch matrix, which is reset at the start of every query.
type Engine struct {
	grid    *Grid
	visited Visited
	queue   []*Marble
}

// NewEngine creates a cluster engine over g.
func NewEngine(g *Grid) *Engine {
	return &Engine{grid: g}
}

func (e *Engine) reset() {
	e.visited = Visited{}
	e.queue = e.queue[:0]
}

// FindCluster returns the connected same-color group containing origin,
// origin first, in breadth-first order.
func (e *Engine) FindCluster(origin *Marble) []*Marble {
	e.reset()
	if origin == nil || !InBounds(origin.Row, origin.Col) || e.grid.At(origin.Row, origin.Col) != origin {
		return nil
	}

	cluster := []*Marble{origin}
	e.visited[origin.Row][origin.Col] = true
	e.queue = append(e.queue, origin)

	for len(e.queue) > 0 {
		cur := e.queue[0]
		e.queue = e.queue[1:]
		for _, n := range e.grid.Neighbors(cur.Row, cur.Col) {
			if e.visited[n.Row][n.Col] || n.Color != origin.Color {
				continue
			}
			e.visited[n.Row][n.Col] = true
			cluster = append(cluster, n)
			e.queue = append(e.queue, n)
		}
	}
	return cluster
}

// MarkSupported marks every marble connected to row 0 through any chain of
// neighbors, regardless of color.
func (e *Engine) MarkSupported() Visited {
	e.reset()
	for col := 0; col < Cols; col++ {
		if m := e.grid.cells[0][col]; m != nil {
			e.visited[0][col] = true
			e.queue = append(e.queue, m)
		}
	}

	for len(e.queue) > 0 {
		cur := e.queue[0]
		e.queue = e.queue[1:]
		for _, n := range e.grid.Neighbors(cur.Row, cur.Col) {
			if e.visited[n.Row][n.Col] {
				continue
			}
			e.visited[n.Row][n.Col] = true
			e.queue = append(e.queue, n)
		}
	}
	return e.visited
}

// Floating returns the marbles not connected to row 0, in row-major order.
func (e *Engine) Floating() []*Marble {
	supported := e.MarkSupported()
	var out []*Marble
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if m := e.grid.cells[row][col]; m != nil && !supported[row][col] {
				out = append(out, m)
			}
		}
	}
	return out
}

// Resolution is the outcome of resolving one landed projectile.
type Resolution struct {
	// Bomb is set when the landed marble was a bomb; Blasted then holds the bomb and its neighbors.
	Bomb      bool
	Explosion Vec2
	Blasted   []*Marble

	// Matched is the removed same-color cluster (empty if it was too small).
	Matched []*Marble

	// Floating holds marbles that lost their connection to row 0.
	Floating []*Marble

	// BonusMarbles counts removed BonusTime marbles across all groups.
	BonusMarbles int
}

// Removed returns the total number of marbles taken off the grid.
func (r Resolution) Removed() int {
	return len(r.Blasted) + len(r.Matched) + len(r.Floating)
}

// Resolve applies the removal rules for a marble that has just been placed.
func (e *Engine) Resolve(landed *Marble) Resolution {
	var res Resolution

	if landed.Kind == KindBomb {
		res.Bomb = true
		res.Explosion = landed.Pos
		res.Blasted = append(e.grid.Neighbors(landed.Row, landed.Col), landed)
		res.BonusMarbles += e.remove(res.Blasted)
	} else if cluster := e.FindCluster(landed); len(cluster) >= MinCluster {
		res.Matched = cluster
		res.BonusMarbles += e.remove(cluster)
	}

	if res.Removed() == 0 {
		return res
	}

	res.Floating = e.Floating()
	res.BonusMarbles += e.remove(res.Floating)
	return res
}

// remove takes marbles off the grid and returns how many were BonusTime.
func (e *Engine) remove(ms []*Marble) int {
	bonus := 0
	for _, m := range ms {
		e.grid.Remove(m.Row, m.Col)
		if m.Kind == KindBonusTime {
			bonus++
		}
	}
	return bonus
}
