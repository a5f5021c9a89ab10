package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func TestTileHex(t *testing.T) {
	tests := []struct {
		exp  int
		want string
	}{
		{1, "#ffffeb"},
		{6, "#f59e7b"},
		{11, "#eb3c0a"},
		{17, "#eb3c0a"}, // clamped past 2048
		{0, "#ffffeb"},
	}
	for _, tt := range tests {
		if got := TileHex(tt.exp); got != tt.want {
			t.Errorf("TileHex(%d) = %s, want %s", tt.exp, got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawText(0, 0, "Moves: 3")
	s.FillRect(core.NewRect(0, 1, 6, 1), core.TileColor(2))
	s.SetCell(2, 1, core.Cell{Rune: '4', Color: core.ColorDark, Bg: core.TileColor(2)})

	out := RenderScreen(s)

	if !strings.Contains(out, "Moves: 3") {
		t.Errorf("rendered output lost plain text: %q", out)
	}
	if !strings.Contains(out, "4") {
		t.Errorf("rendered output lost tile label: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 lines, got %d newlines", got)
	}
}

func TestExponentOf(t *testing.T) {
	tests := map[int]int{0: 0, 2: 1, 4: 2, 2048: 11, 131072: 17}
	for value, want := range tests {
		if got := exponentOf(value); got != want {
			t.Errorf("exponentOf(%d) = %d, want %d", value, got, want)
		}
	}
}
