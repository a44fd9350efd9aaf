package combat

import (
	"fmt"

	"robotwar/internal/grid"
	"robotwar/internal/util"
)

// Behavior is the capability set every variant implements. Behaviors are
// stateless; all state lives on the Robot the Turn carries.
type Behavior interface {
	Think(t *Turn)
	Look(t *Turn, dx, dy int)
	Fire(t *Turn, dx, dy int) error
	Move(t *Turn, dx, dy int) error
	Heal(t *Turn, target *Robot) bool
	TakeTurn(t *Turn)
}

var behaviors = [...]Behavior{
	Basic:    basicBot{},
	Jump:     jumpBot{},
	SemiAuto: semiAutoBot{},
	Track:    trackBot{},
	Kamikaze: kamikazeBot{},
	Sniper:   sniperBot{},
	Medic:    medicBot{},
}

func behaviorOf(v Variant) Behavior {
	if v < 0 || int(v) >= len(behaviors) {
		return basicBot{}
	}
	return behaviors[v]
}

// Turn is one robot's action in progress. It ends early once the robot is
// destroyed or replaced by an upgrade.
type Turn struct {
	e       *Engine
	r       *Robot
	outcome TurnOutcome
	kills   int
	last    FireReport
}

func (t *Turn) Done() bool { return t.outcome != Continue }

func (t *Turn) behavior() Behavior { return behaviorOf(t.r.Variant) }

func (t *Turn) think()                { t.behavior().Think(t) }
func (t *Turn) look(dx, dy int)       { t.behavior().Look(t, dx, dy) }
func (t *Turn) move(dx, dy int) error { return t.behavior().Move(t, dx, dy) }

// fire runs the variant's fire action and applies an upgrade if it killed.
func (t *Turn) fire(dx, dy int) error {
	t.kills = 0
	err := t.behavior().Fire(t, dx, dy)
	if t.kills > 0 && !t.Done() {
		t.e.upgrade(t)
	}
	return err
}

// fireStep is the fire phase of a scheduled turn: an empty magazine
// self-destructs the robot when the rules ask for it.
func (t *Turn) fireStep(dx, dy int) {
	if t.r.Ammo <= 0 && t.e.rules.SelfDestructWhenEmpty {
		t.e.emit(Event{Kind: EvSelfDestruct, ActorID: t.r.ID, Actor: t.r.Name, At: posPtr(t.r.Pos), Note: "out of ammo"})
		t.e.destroy(t.r.ID, false)
		t.outcome = Destroyed
		return
	}
	_ = t.fire(dx, dy)
}

func (t *Turn) randomMove() {
	dx, dy := util.Offset(t.e.rng)
	_ = t.move(dx, dy)
}

// checkFire validates a fire request without touching state.
func (t *Turn) checkFire(dx, dy int) error {
	var err error
	switch {
	case dx == 0 && dy == 0:
		err = ErrZeroOffset
	case t.r.Ammo <= 0:
		err = ErrOutOfAmmo
	default:
		return nil
	}
	t.e.emit(Event{Kind: EvFireRejected, ActorID: t.r.ID, Actor: t.r.Name, Ammo: t.r.Ammo, Note: err.Error()})
	return err
}

// shoot spends one round at offset (dx,dy) and resolves it.
func (t *Turn) shoot(dx, dy int) FireReport {
	r := t.r
	r.Ammo--
	target := r.Pos.Add(dx, dy)
	var victim *Robot
	if id, ok := t.e.grid.OccupantAt(target.X, target.Y); ok {
		victim = t.e.robot(id)
	}
	rep := t.e.resolver.Resolve(target, t.e.hitChance(r.Variant))
	t.last = rep
	ev := Event{Kind: EvFire, ActorID: r.ID, Actor: r.Name, At: posPtr(target), Outcome: rep.Outcome.String(), Ammo: r.Ammo}
	if victim != nil {
		ev.TargetID, ev.Target = victim.ID, victim.Name
	}
	t.e.emit(ev)
	if rep.Outcome == Kill && victim != nil {
		t.e.emit(Event{Kind: EvKill, ActorID: r.ID, Actor: r.Name, TargetID: victim.ID, Target: victim.Name, At: posPtr(target)})
		t.e.destroy(victim.ID, false)
		t.kills++
	}
	return rep
}

type basicBot struct{}

func (basicBot) Think(t *Turn) {
	t.e.emit(Event{Kind: EvThink, ActorID: t.r.ID, Actor: t.r.Name})
}

func (basicBot) Look(t *Turn, dx, dy int) {
	at := t.r.Pos.Add(dx, dy)
	ev := Event{Kind: EvLook, ActorID: t.r.ID, Actor: t.r.Name, At: posPtr(at)}
	if id, ok := t.e.grid.OccupantAt(at.X, at.Y); ok && id != t.r.ID {
		ev.TargetID = id
		if seen := t.e.robot(id); seen != nil {
			ev.Target = seen.Name
		}
	}
	t.e.emit(ev)
}

func (basicBot) Fire(t *Turn, dx, dy int) error {
	if err := t.checkFire(dx, dy); err != nil {
		return err
	}
	t.shoot(dx, dy)
	return nil
}

func (basicBot) Move(t *Turn, dx, dy int) error {
	r := t.r
	to := r.Pos.Add(dx, dy)
	if err := t.e.grid.Move(r.ID, to.X, to.Y); err != nil {
		t.e.emit(Event{Kind: EvMoveFailed, ActorID: r.ID, Actor: r.Name, At: posPtr(to), Note: err.Error()})
		return fmt.Errorf("%w: %w", ErrMoveRejected, err)
	}
	r.Pos = to
	t.e.emit(Event{Kind: EvMove, ActorID: r.ID, Actor: r.Name, At: posPtr(to)})
	return nil
}

func (basicBot) Heal(*Turn, *Robot) bool { return false }

func (basicBot) TakeTurn(t *Turn) {
	t.think()
	t.look(util.Offset(t.e.rng))
	t.fireStep(util.NonZeroOffset(t.e.rng))
	if t.Done() {
		return
	}
	t.randomMove()
}

func posPtr(p grid.Pos) *grid.Pos { return &p }
