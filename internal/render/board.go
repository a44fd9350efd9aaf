package render

import (
	"fmt"
	"strings"

	"robotwar/internal/combat"
)

const emptyCell = '.'

// Board draws the battlefield as text. Each occupied cell shows the first
// letter of its robot's name. Only robots on the grid are drawn.
func Board(width, height int, robots []combat.RobotView) string {
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(string(emptyCell), width))
	}
	for _, r := range robots {
		if r.State != combat.Active.String() {
			continue
		}
		if r.Pos.X < 0 || r.Pos.X >= width || r.Pos.Y < 0 || r.Pos.Y >= height {
			continue
		}
		cells[r.Pos.Y][r.Pos.X] = glyph(r.Name)
	}

	var b strings.Builder
	b.WriteString("   ")
	for x := 0; x < width; x++ {
		b.WriteByte(byte('0' + x%10))
	}
	b.WriteByte('\n')
	for y, row := range cells {
		fmt.Fprintf(&b, "%2d %s\n", y, string(row))
	}
	return b.String()
}

func glyph(name string) rune {
	for _, c := range name {
		return c
	}
	return '?'
}
