package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 2)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{2, 3, true},
		{5, 4, true},
		{6, 4, false}, // right edge is exclusive
		{5, 5, false}, // bottom edge is exclusive
		{1, 3, false},
	}

	for _, tc := range tests {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
		}
	}
	if r.Right() != 6 || r.Bottom() != 5 {
		t.Errorf("Right/Bottom = %d/%d, expected 6/5", r.Right(), r.Bottom())
	}
}

func TestColorInk(t *testing.T) {
	for _, c := range []Color{ColorBrightRed, ColorOrange, ColorBrightWhite} {
		if !c.Ink() {
			t.Errorf("Color(%d) should be an ink", c)
		}
	}
	for _, c := range []Color{ColorDefault, ColorGray, ColorCyan} {
		if c.Ink() {
			t.Errorf("Color(%d) should not be an ink", c)
		}
	}
}
