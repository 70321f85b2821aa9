package core

import (
	"errors"
	"reflect"
	"testing"
)

// levelOf builds a level table from cell -> color.
func levelOf(cells map[Cell]int) LevelDef {
	var def LevelDef
	for c, color := range cells {
		def[c.Row*Cols+c.Col] = color + 1
	}
	return def
}

func TestNeighborCells(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		expected []Cell
	}{
		{
			name: "even row interior",
			row:  2, col: 3,
			expected: []Cell{{2, 2}, {2, 4}, {1, 3}, {1, 2}, {3, 3}, {3, 2}},
		},
		{
			name: "odd row interior",
			row:  1, col: 3,
			expected: []Cell{{1, 2}, {1, 4}, {0, 3}, {0, 4}, {2, 3}, {2, 4}},
		},
		{
			name: "top-left corner",
			row:  0, col: 0,
			expected: []Cell{{0, 1}, {1, 0}},
		},
		{
			name: "bottom-right corner",
			row:  13, col: 9,
			expected: []Cell{{13, 8}, {12, 9}},
		},
		{
			name: "odd row right edge",
			row:  1, col: 9,
			expected: []Cell{{1, 8}, {0, 9}, {2, 9}},
		},
		{
			name: "even row left edge",
			row:  4, col: 0,
			expected: []Cell{{4, 1}, {3, 0}, {5, 0}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NeighborCells(tc.row, tc.col)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("NeighborCells(%d, %d) = %v, expected %v", tc.row, tc.col, got, tc.expected)
			}
		})
	}
}

func TestNeighborCellsSymmetric(t *testing.T) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			for _, n := range NeighborCells(row, col) {
				if !InBounds(n.Row, n.Col) {
					t.Fatalf("neighbor %v of (%d,%d) out of bounds", n, row, col)
				}
				found := false
				for _, back := range NeighborCells(n.Row, n.Col) {
					if back == (Cell{row, col}) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("(%d,%d) lists %v but not the reverse", row, col, n)
				}
			}
		}
	}
}

func TestCellCenter(t *testing.T) {
	tests := []struct {
		row, col int
		expected Vec2
	}{
		{0, 0, V(28.5, 28.5)},
		{1, 0, V(57, 85.5)},
		{2, 3, V(199.5, 142.5)},
		{13, 9, V(570, 769.5)},
	}
	for _, tc := range tests {
		if got := CellCenter(tc.row, tc.col); got != tc.expected {
			t.Errorf("CellCenter(%d, %d) = %v, expected %v", tc.row, tc.col, got, tc.expected)
		}
	}
}

func TestGridPlace(t *testing.T) {
	g := NewGrid()
	m := NewMarble(2, KindRegular)
	if err := g.Place(m, 3, 4); err != nil {
		t.Fatalf("Place() failed: %v", err)
	}
	if g.At(3, 4) != m {
		t.Error("marble not stored at (3,4)")
	}
	if m.Pos != CellCenter(3, 4) {
		t.Errorf("position = %v, expected cell centre %v", m.Pos, CellCenter(3, 4))
	}

	err := g.Place(NewMarble(1, KindRegular), 3, 4)
	if !errors.Is(err, ErrCellOccupied) {
		t.Errorf("Place() on occupied cell = %v, expected ErrCellOccupied", err)
	}
	if g.At(3, 4) != m {
		t.Error("failed placement replaced the resident marble")
	}

	err = g.Place(NewMarble(1, KindRegular), Rows, 0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Place() out of bounds = %v, expected ErrOutOfBounds", err)
	}
}

func TestGridRemove(t *testing.T) {
	g := NewGrid()
	g.Place(NewMarble(0, KindRegular), 0, 0)

	g.Remove(0, 0)
	g.Remove(0, 0)
	g.Remove(-1, 50)

	if !g.IsEmpty() {
		t.Error("grid should be empty after removal")
	}
}

func TestAvailableColors(t *testing.T) {
	g := NewGrid()
	if got := g.AvailableColors(); !reflect.DeepEqual(got, []int{0, 1, 2, 3, 4, 5, 6}) {
		t.Errorf("empty grid colors = %v, expected all colors", got)
	}

	g.Place(NewMarble(4, KindRegular), 0, 0)
	g.Place(NewMarble(1, KindRegular), 0, 1)
	g.Place(NewMarble(4, KindBonusTime), 5, 5)

	if got := g.AvailableColors(); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Errorf("AvailableColors() = %v, expected [1 4]", got)
	}
}

func TestRowQueries(t *testing.T) {
	g := NewGrid()
	if g.RowOccupied(LastRow) {
		t.Error("empty last row reported occupied")
	}

	g.Place(NewMarble(0, KindRegular), LastRow, 7)
	if !g.RowOccupied(LastRow) {
		t.Error("last row with a marble should be occupied")
	}
	if g.RowFull(LastRow) {
		t.Error("last row with one marble is not full")
	}

	for col := 0; col < Cols; col++ {
		g.Place(NewMarble(0, KindRegular), 2, col)
	}
	if !g.RowFull(2) {
		t.Error("row 2 should be full")
	}
	if g.RowOccupied(-1) || g.RowFull(Rows) {
		t.Error("out-of-range rows must report false")
	}
	if g.Count() != Cols+1 {
		t.Errorf("Count() = %d, expected %d", g.Count(), Cols+1)
	}
}

func TestGridLoad(t *testing.T) {
	g := NewGrid()
	g.Place(NewMarble(0, KindRegular), 12, 0)

	def := levelOf(map[Cell]int{{0, 0}: 0, {0, 9}: 6, {7, 5}: 3})
	if err := g.Load(def); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if g.Count() != 3 {
		t.Errorf("Count() = %d, expected 3", g.Count())
	}
	if g.At(12, 0) != nil {
		t.Error("Load() should clear previous marbles")
	}
	if m := g.At(0, 9); m == nil || m.Color != 6 || m.Kind != KindRegular {
		t.Errorf("At(0,9) = %+v, expected regular color 6", m)
	}
	if m := g.At(7, 5); m == nil || m.Color != 3 {
		t.Errorf("At(7,5) = %+v, expected color 3", m)
	}
}

func TestGridLoadRejectsBadTable(t *testing.T) {
	g := NewGrid()
	g.Place(NewMarble(0, KindRegular), 0, 0)

	var def LevelDef
	def[5] = ColorCount + 1
	if err := g.Load(def); !errors.Is(err, ErrBadLevel) {
		t.Errorf("Load() = %v, expected ErrBadLevel", err)
	}
	if g.At(0, 0) == nil {
		t.Error("invalid table must leave the grid untouched")
	}

	if _, err := LevelDefFromSlice(make([]int, LevelCells-1)); !errors.Is(err, ErrBadLevel) {
		t.Errorf("LevelDefFromSlice(short) = %v, expected ErrBadLevel", err)
	}
	cells := make([]int, LevelCells)
	cells[0] = -1
	if _, err := LevelDefFromSlice(cells); !errors.Is(err, ErrBadLevel) {
		t.Errorf("LevelDefFromSlice(negative) = %v, expected ErrBadLevel", err)
	}
}
