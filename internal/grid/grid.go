// Package grid is the battlefield occupancy index: robot ids to cells, at most
// one id per cell. It owns no robot state.
package grid

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrOccupied      = errors.New("cell occupied")
	ErrNotPlaced     = errors.New("not placed")
	ErrAlreadyPlaced = errors.New("already placed")
)

type Placement struct {
	ID  int
	Pos Pos
}

type Grid struct {
	w, h   int
	byID   map[int]Pos
	byCell map[Pos]int
}

func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid %dx%d: dimensions must be positive", width, height)
	}
	return &Grid{
		w: width, h: height,
		byID:   map[int]Pos{},
		byCell: map[Pos]int{},
	}, nil
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }
func (g *Grid) Len() int    { return len(g.byID) }

func (g *Grid) IsInside(x, y int) bool { return x >= 0 && x < g.w && y >= 0 && y < g.h }

func (g *Grid) IsOccupied(x, y int) bool {
	_, ok := g.byCell[Pos{x, y}]
	return ok
}

func (g *Grid) OccupantAt(x, y int) (int, bool) {
	id, ok := g.byCell[Pos{x, y}]
	return id, ok
}

func (g *Grid) PositionOf(id int) (Pos, bool) {
	p, ok := g.byID[id]
	return p, ok
}

func (g *Grid) Place(id, x, y int) error {
	if !g.IsInside(x, y) {
		return fmt.Errorf("place %d at (%d,%d): %w", id, x, y, ErrOutOfBounds)
	}
	if g.IsOccupied(x, y) {
		return fmt.Errorf("place %d at (%d,%d): %w", id, x, y, ErrOccupied)
	}
	if _, ok := g.byID[id]; ok {
		return fmt.Errorf("place %d at (%d,%d): %w", id, x, y, ErrAlreadyPlaced)
	}
	p := Pos{x, y}
	g.byID[id] = p
	g.byCell[p] = id
	return nil
}

func (g *Grid) Remove(id int) {
	p, ok := g.byID[id]
	if !ok {
		return
	}
	delete(g.byID, id)
	delete(g.byCell, p)
}

// Move relocates id in one step. Any failure leaves the index untouched.
// Moving onto the cell id already holds is a successful no-op.
func (g *Grid) Move(id, x, y int) error {
	from, ok := g.byID[id]
	if !ok {
		return fmt.Errorf("move %d: %w", id, ErrNotPlaced)
	}
	if !g.IsInside(x, y) {
		return fmt.Errorf("move %d to (%d,%d): %w", id, x, y, ErrOutOfBounds)
	}
	to := Pos{x, y}
	if to == from {
		return nil
	}
	if _, taken := g.byCell[to]; taken {
		return fmt.Errorf("move %d to (%d,%d): %w", id, x, y, ErrOccupied)
	}
	delete(g.byCell, from)
	g.byCell[to] = id
	g.byID[id] = to
	return nil
}

// AllPositions is ordered by id.
func (g *Grid) AllPositions() []Placement {
	out := make([]Placement, 0, len(g.byID))
	for id, p := range g.byID {
		out = append(out, Placement{ID: id, Pos: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (g *Grid) FreeCells() int { return g.w*g.h - len(g.byID) }
