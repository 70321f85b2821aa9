package core

import (
	"errors"
	"fmt"
	"sort"
)

// LevelRows is the number of rows described by a level table.
const LevelRows = 8

// LevelCells is the length of a level table: LevelRows rows of Cols entries.
const LevelCells = LevelRows * Cols

// LevelDef is a row-major level table. 0 is an empty cell, n>0 is color n-1.
type LevelDef [LevelCells]int

var (
	ErrOutOfBounds  = errors.New("marbles: cell out of bounds")
	ErrCellOccupied = errors.New("marbles: cell already occupied")
	ErrBadLevel     = errors.New("marbles: invalid level table")
)

// Grid is the fixed 14x10 board. A nil slot is empty.
type Grid struct {
	cells [Rows][Cols]*Marble
}

// NewGrid creates an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// At returns the marble at (row, col), or nil if empty or out of bounds.
func (g *Grid) At(row, col int) *Marble {
	if !InBounds(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// Occupied reports whether a marble rests at (row, col).
func (g *Grid) Occupied(row, col int) bool {
	return g.At(row, col) != nil
}

// Place stores m at (row, col) and snaps its position to the cell centre.
// Placing onto an occupied cell is an invariant violation and returns ErrCellOccupied.
func (g *Grid) Place(m *Marble, row, col int) error {
	if !InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, row, col)
	}
	if g.cells[row][col] != nil {
		return fmt.Errorf("%w: (%d,%d)", ErrCellOccupied, row, col)
	}
	m.Row = row
	m.Col = col
	m.Vel = Vec2{}
	m.Snap()
	g.cells[row][col] = m
	return nil
}

// Remove empties (row, col). Removing an empty cell is a no-op.
func (g *Grid) Remove(row, col int) {
	if InBounds(row, col) {
		g.cells[row][col] = nil
	}
}

// NeighborCells returns the in-bounds neighbors of (row, col) in the order
// left, right, upper pair, lower pair. The diagonal columns depend on row parity.
func NeighborCells(row, col int) []Cell {
	diag := col - 1
	if row%2 == 1 {
		diag = col + 1
	}
	candidates := [6]Cell{
		{row, col - 1},
		{row, col + 1},
		{row - 1, col},
		{row - 1, diag},
		{row + 1, col},
		{row + 1, diag},
	}

	out := make([]Cell, 0, len(candidates))
	for _, c := range candidates {
		if InBounds(c.Row, c.Col) {
			out = append(out, c)
		}
	}
	return out
}

// Neighbors returns the occupied neighbors of (row, col) in NeighborCells order.
func (g *Grid) Neighbors(row, col int) []*Marble {
	var out []*Marble
	for _, c := range NeighborCells(row, col) {
		if m := g.cells[c.Row][c.Col]; m != nil {
			out = append(out, m)
		}
	}
	return out
}

// AvailableColors returns the distinct colors on the grid in ascending order.
// An empty grid yields every color.
func (g *Grid) AvailableColors() []int {
	var seen [ColorCount]bool
	var colors []int
	for r := range g.cells {
		for _, m := range g.cells[r] {
			if m == nil || m.Color < 0 || m.Color >= ColorCount || seen[m.Color] {
				continue
			}
			seen[m.Color] = true
			colors = append(colors, m.Color)
		}
	}

	if len(colors) == 0 {
		colors = make([]int, ColorCount)
		for i := range colors {
			colors[i] = i
		}
		return colors
	}
	sort.Ints(colors)
	return colors
}

// RowOccupied reports whether any marble rests on the given row.
// A marble on LastRow ends the round.
func (g *Grid) RowOccupied(row int) bool {
	if row < 0 || row >= Rows {
		return false
	}
	for _, m := range g.cells[row] {
		if m != nil {
			return true
		}
	}
	return false
}

// RowFull reports whether every cell of the row is occupied.
func (g *Grid) RowFull(row int) bool {
	if row < 0 || row >= Rows {
		return false
	}
	for _, m := range g.cells[row] {
		if m == nil {
			return false
		}
	}
	return true
}

// Count returns the number of marbles on the grid.
func (g *Grid) Count() int {
	n := 0
	for r := range g.cells {
		for _, m := range g.cells[r] {
			if m != nil {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether the grid holds no marbles.
func (g *Grid) IsEmpty() bool {
	for r := range g.cells {
		for _, m := range g.cells[r] {
			if m != nil {
				return false
			}
		}
	}
	return true
}

// Marbles returns every marble in row-major order.
func (g *Grid) Marbles() []*Marble {
	var out []*Marble
	for r := range g.cells {
		for _, m := range g.cells[r] {
			if m != nil {
				out = append(out, m)
			}
		}
	}
	return out
}

// Clear empties the grid.
func (g *Grid) Clear() {
	g.cells = [Rows][Cols]*Marble{}
}

// Load clears the grid and fills it from a level table.
// The grid is left untouched when the table is invalid.
func (g *Grid) Load(def LevelDef) error {
	if err := def.Validate(); err != nil {
		return err
	}
	g.Clear()
	for i, v := range def {
		if v == 0 {
			continue
		}
		row, col := i/Cols, i%Cols
		if err := g.Place(NewMarble(v-1, KindRegular), row, col); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that every entry is 0 or a color index plus one.
func (d LevelDef) Validate() error {
	for i, v := range d {
		if v < 0 || v > ColorCount {
			return fmt.Errorf("%w: entry %d has value %d", ErrBadLevel, i, v)
		}
	}
	return nil
}

// LevelDefFromSlice copies a flat slice into a LevelDef, checking its length and values.
func LevelDefFromSlice(cells []int) (LevelDef, error) {
	var def LevelDef
	if len(cells) != LevelCells {
		return def, fmt.Errorf("%w: want %d entries, got %d", ErrBadLevel, LevelCells, len(cells))
	}
	copy(def[:], cells)
	if err := def.Validate(); err != nil {
		return LevelDef{}, err
	}
	return def, nil
}
