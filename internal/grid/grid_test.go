package grid

import (
	"errors"
	"reflect"
	"testing"
)

func mustGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := New(w, h)
	if err != nil {
		t.Fatalf("new grid: %v", err)
	}
	return g
}

func TestNewRejectsEmptyGrid(t *testing.T) {
	if _, err := New(0, 5); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(5, -1); err == nil {
		t.Fatal("expected error for negative height")
	}
}

func TestPlaceRejectsOccupiedCell(t *testing.T) {
	g := mustGrid(t, 5, 5)
	if err := g.Place(1, 2, 2); err != nil {
		t.Fatalf("place alpha: %v", err)
	}
	err := g.Place(2, 2, 2)
	if !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	id, ok := g.OccupantAt(2, 2)
	if !ok || id != 1 {
		t.Fatalf("expected id 1 at (2,2), got %d ok=%v", id, ok)
	}
	if g.Len() != 1 {
		t.Fatalf("expected one placement, got %d", g.Len())
	}
}

func TestPlaceRejectsOutOfBounds(t *testing.T) {
	g := mustGrid(t, 5, 5)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}} {
		if err := g.Place(1, c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("place at %v: expected ErrOutOfBounds, got %v", c, err)
		}
	}
	if g.Len() != 0 {
		t.Fatalf("expected empty grid, got %d", g.Len())
	}
}

func TestPlaceRejectsDuplicateID(t *testing.T) {
	g := mustGrid(t, 5, 5)
	if err := g.Place(1, 0, 0); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := g.Place(1, 1, 1); !errors.Is(err, ErrAlreadyPlaced) {
		t.Fatalf("expected ErrAlreadyPlaced, got %v", err)
	}
	if g.IsOccupied(1, 1) {
		t.Fatal("duplicate placement leaked into the index")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	g := mustGrid(t, 3, 3)
	if err := g.Place(7, 1, 1); err != nil {
		t.Fatalf("place: %v", err)
	}
	g.Remove(7)
	g.Remove(7)
	g.Remove(42)
	if g.IsOccupied(1, 1) || g.Len() != 0 {
		t.Fatal("expected empty grid after remove")
	}
	if _, ok := g.PositionOf(7); ok {
		t.Fatal("removed id still has a position")
	}
}

func TestMoveFailureLeavesStateUnchanged(t *testing.T) {
	g := mustGrid(t, 5, 5)
	if err := g.Place(1, 0, 0); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := g.Place(2, 1, 0); err != nil {
		t.Fatalf("place: %v", err)
	}
	before := g.AllPositions()

	if err := g.Move(1, -1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if err := g.Move(1, 1, 0); !errors.Is(err, ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
	if err := g.Move(3, 2, 2); !errors.Is(err, ErrNotPlaced) {
		t.Fatalf("expected ErrNotPlaced, got %v", err)
	}

	if after := g.AllPositions(); !reflect.DeepEqual(before, after) {
		t.Fatalf("index changed after failed moves: %v -> %v", before, after)
	}
	if p, _ := g.PositionOf(1); p != (Pos{0, 0}) {
		t.Fatalf("expected (0,0), got %v", p)
	}
}

func TestMoveRelocates(t *testing.T) {
	g := mustGrid(t, 5, 5)
	if err := g.Place(1, 2, 2); err != nil {
		t.Fatalf("place: %v", err)
	}
	if err := g.Move(1, 3, 3); err != nil {
		t.Fatalf("move: %v", err)
	}
	if g.IsOccupied(2, 2) {
		t.Fatal("old cell still occupied")
	}
	if id, ok := g.OccupantAt(3, 3); !ok || id != 1 {
		t.Fatalf("expected id 1 at (3,3), got %d ok=%v", id, ok)
	}
	if err := g.Move(1, 3, 3); err != nil {
		t.Fatalf("null move: %v", err)
	}
}

func TestAllPositionsOrderedByID(t *testing.T) {
	g := mustGrid(t, 4, 4)
	for _, id := range []int{9, 3, 5, 1} {
		if err := g.Place(id, id%4, id/4); err != nil {
			t.Fatalf("place %d: %v", id, err)
		}
	}
	got := g.AllPositions()
	want := []int{1, 3, 5, 9}
	for i, p := range got {
		if p.ID != want[i] {
			t.Fatalf("position %d: expected id %d, got %d", i, want[i], p.ID)
		}
	}
	if g.FreeCells() != 12 {
		t.Fatalf("expected 12 free cells, got %d", g.FreeCells())
	}
}

func TestRingDistances(t *testing.T) {
	for d := 1; d <= 5; d++ {
		ring := Ring(d)
		if len(ring) != 4*d {
			t.Fatalf("ring %d: expected %d cells, got %d", d, 4*d, len(ring))
		}
		seen := map[Pos]bool{}
		for _, p := range ring {
			if (Pos{}).Manhattan(p) != d {
				t.Fatalf("ring %d contains %v at distance %d", d, p, (Pos{}).Manhattan(p))
			}
			if seen[p] {
				t.Fatalf("ring %d repeats %v", d, p)
			}
			seen[p] = true
		}
	}
	if Ring(0) != nil {
		t.Fatal("ring 0 should be empty")
	}
}

func TestChebyshev(t *testing.T) {
	if d := (Pos{1, 1}).Chebyshev(Pos{2, 0}); d != 1 {
		t.Fatalf("expected 1, got %d", d)
	}
	if d := (Pos{0, 0}).Chebyshev(Pos{3, -1}); d != 3 {
		t.Fatalf("expected 3, got %d", d)
	}
}
