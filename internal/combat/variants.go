package combat

import (
	"fmt"

	"robotwar/internal/grid"
	"robotwar/internal/util"
)

// jumpBot teleports while it has jumps left, then shoots a random neighbour.
// With the budget spent it plays the Basic turn.
type jumpBot struct{ basicBot }

func (b jumpBot) TakeTurn(t *Turn) {
	r := t.r
	if r.JumpsLeft <= 0 {
		b.basicBot.TakeTurn(t)
		return
	}
	t.think()
	g := t.e.grid
	to := grid.Pos{X: t.e.rng.Intn(g.Width()), Y: t.e.rng.Intn(g.Height())}
	if err := g.Move(r.ID, to.X, to.Y); err != nil {
		t.e.emit(Event{Kind: EvJumpFailed, ActorID: r.ID, Actor: r.Name, At: posPtr(to), Note: err.Error()})
	} else {
		r.Pos = to
		r.JumpsLeft--
		t.e.emit(Event{Kind: EvJump, ActorID: r.ID, Actor: r.Name, At: posPtr(to), Note: fmt.Sprintf("%d jumps left", r.JumpsLeft)})
	}
	t.fireStep(util.NonZeroOffset(t.e.rng))
}

// semiAutoBot fires a burst of up to BurstSize rounds per trigger pull. The
// burst stops when the magazine runs dry or a kill upgrades the shooter.
type semiAutoBot struct{ basicBot }

func (semiAutoBot) Fire(t *Turn, dx, dy int) error {
	if err := t.checkFire(dx, dy); err != nil {
		return err
	}
	for i := 0; i < BurstSize && t.r.Ammo > 0 && !t.Done(); i++ {
		t.shoot(dx, dy)
		if t.kills > 0 {
			t.e.upgrade(t)
		}
	}
	return nil
}

// trackBot tags robots from the occupancy snapshot and shoots the first
// tagged robot standing next to it.
type trackBot struct{ basicBot }

func (trackBot) TakeTurn(t *Turn) {
	r := t.r
	g := t.e.grid
	t.think()

	for _, id := range r.trackOrder {
		if p, ok := g.PositionOf(id); ok {
			r.Tracked[id] = p
		}
	}
	if r.TrackersLeft > 0 {
		for _, pl := range g.AllPositions() {
			if pl.ID == r.ID {
				continue
			}
			if _, known := r.Tracked[pl.ID]; known {
				continue
			}
			r.track(pl.ID, pl.Pos)
			r.TrackersLeft--
			ev := Event{Kind: EvTrack, ActorID: r.ID, Actor: r.Name, TargetID: pl.ID, At: posPtr(pl.Pos), Note: fmt.Sprintf("%d trackers left", r.TrackersLeft)}
			if seen := t.e.robot(pl.ID); seen != nil {
				ev.Target = seen.Name
			}
			t.e.emit(ev)
			break
		}
	}

	for _, id := range r.trackOrder {
		if _, onGrid := g.PositionOf(id); !onGrid {
			continue
		}
		p := r.Tracked[id]
		if r.Pos.Chebyshev(p) != 1 {
			continue
		}
		d := p.Sub(r.Pos)
		t.fireStep(d.X, d.Y)
		return
	}
	t.randomMove()
}

// kamikazeBot detonates when anything stands next to it: every neighbour is
// destroyed, then the bot itself, for good.
type kamikazeBot struct{ basicBot }

func (kamikazeBot) TakeTurn(t *Turn) {
	r := t.r
	t.think()
	g := t.e.grid
	var victims []int
	for _, off := range grid.Neighbours {
		at := r.Pos.Add(off.X, off.Y)
		if id, ok := g.OccupantAt(at.X, at.Y); ok {
			victims = append(victims, id)
		}
	}
	if len(victims) == 0 {
		t.randomMove()
		return
	}
	t.e.emit(Event{Kind: EvDetonate, ActorID: r.ID, Actor: r.Name, At: posPtr(r.Pos), Note: fmt.Sprintf("%d caught in the blast", len(victims))})
	for _, id := range victims {
		v := t.e.robot(id)
		if v == nil {
			continue
		}
		t.e.emit(Event{Kind: EvKill, ActorID: r.ID, Actor: r.Name, TargetID: v.ID, Target: v.Name, At: posPtr(v.Pos), Note: "detonation"})
		t.e.destroy(id, false)
	}
	// Detonation spends every remaining life.
	t.e.destroy(r.ID, true)
	t.outcome = Destroyed
}

// sniperBot shoots the nearest robot within SniperRange (Manhattan rings).
type sniperBot struct{ basicBot }

func (sniperBot) TakeTurn(t *Turn) {
	r := t.r
	g := t.e.grid
	t.think()
	for d := 1; d <= SniperRange; d++ {
		for _, off := range grid.Ring(d) {
			at := r.Pos.Add(off.X, off.Y)
			if !g.IsInside(at.X, at.Y) || !g.IsOccupied(at.X, at.Y) {
				continue
			}
			t.look(off.X, off.Y)
			t.fireStep(off.X, off.Y)
			return
		}
	}
	t.randomMove()
}

// medicBot restores one life to the first damaged neighbour per turn while
// it has charges; without charges it fights like a Basic robot.
type medicBot struct{ basicBot }

func (medicBot) Heal(t *Turn, target *Robot) bool {
	r := t.r
	if r.Charges <= 0 || target == nil || !target.NeedsHealing() {
		return false
	}
	target.Lives++
	r.Charges--
	t.e.emit(Event{Kind: EvHeal, ActorID: r.ID, Actor: r.Name, TargetID: target.ID, Target: target.Name, At: posPtr(target.Pos), Lives: target.Lives, Note: fmt.Sprintf("%d charges left", r.Charges)})
	return true
}

func (b medicBot) TakeTurn(t *Turn) {
	r := t.r
	if r.Charges <= 0 {
		b.basicBot.TakeTurn(t)
		return
	}
	t.think()
	g := t.e.grid
	for _, off := range grid.Neighbours {
		at := r.Pos.Add(off.X, off.Y)
		id, ok := g.OccupantAt(at.X, at.Y)
		if !ok {
			continue
		}
		if b.Heal(t, t.e.robot(id)) {
			return
		}
	}
	t.randomMove()
}
