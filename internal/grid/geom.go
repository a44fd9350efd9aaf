package grid

type Pos struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

func (a Pos) Add(dx, dy int) Pos { return Pos{a.X + dx, a.Y + dy} }
func (a Pos) Sub(b Pos) Pos      { return Pos{a.X - b.X, a.Y - b.Y} }

func (a Pos) Manhattan(b Pos) int { return abs(a.X-b.X) + abs(a.Y-b.Y) }

func (a Pos) Chebyshev(b Pos) int {
	dx, dy := abs(a.X-b.X), abs(a.Y-b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Neighbours lists the eight surrounding offsets, row by row.
var Neighbours = [8]Pos{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Ring returns the offsets at exactly Manhattan distance d, ordered by dx then dy.
func Ring(d int) []Pos {
	if d <= 0 {
		return nil
	}
	out := make([]Pos, 0, 4*d)
	for dx := -d; dx <= d; dx++ {
		rest := d - abs(dx)
		if rest == 0 {
			out = append(out, Pos{dx, 0})
			continue
		}
		out = append(out, Pos{dx, -rest}, Pos{dx, rest})
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
