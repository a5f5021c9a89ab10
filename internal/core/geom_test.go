package core

import "testing"

func TestRectGridCell(t *testing.T) {
	board := NewRect(10, 3, 29, 17)

	tests := []struct {
		name     string
		col, row int
		expected Rect
	}{
		{"first cell", 0, 0, NewRect(11, 4, 6, 3)},
		{"second column", 1, 0, NewRect(18, 4, 6, 3)},
		{"last cell", 3, 3, NewRect(32, 16, 6, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := board.GridCell(tc.col, tc.row, 7, 4)
			if got != tc.expected {
				t.Errorf("GridCell(%d, %d) = %+v, expected %+v", tc.col, tc.row, got, tc.expected)
			}
			if got.Right() > board.Right() || got.Bottom() > board.Bottom() {
				t.Errorf("GridCell(%d, %d) = %+v leaves the board %+v", tc.col, tc.row, got, board)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestRectCenteredIn(t *testing.T) {
	outer := NewRect(0, 0, 20, 10)
	inner := outer.CenteredIn(6, 4)

	if inner != NewRect(7, 3, 6, 4) {
		t.Errorf("CenteredIn(6, 4) = %+v, expected {7 3 6 4}", inner)
	}
}

