package combat

import (
	"context"
	"fmt"
	"math/rand"

	"robotwar/internal/config"
	"robotwar/internal/grid"
	"robotwar/internal/util"
)

type Rules struct {
	MaxUpgrades           int
	RespawnAttempts       int
	SelfDestructWhenEmpty bool
	StopWhenOneLeft       bool
	HitChance             map[Variant]float64
}

func DefaultRules() Rules {
	return Rules{
		MaxUpgrades:           MaxUpgrades,
		RespawnAttempts:       config.DefaultRespawnAttempts,
		SelfDestructWhenEmpty: true,
		HitChance:             map[Variant]float64{},
	}
}

func RulesFrom(rc config.Rules) (Rules, error) {
	rules := DefaultRules()
	if rc.MaxUpgrades != nil {
		rules.MaxUpgrades = *rc.MaxUpgrades
	}
	if rc.RespawnAttempts > 0 {
		rules.RespawnAttempts = rc.RespawnAttempts
	}
	if rc.SelfDestructWhenEmpty != nil {
		rules.SelfDestructWhenEmpty = *rc.SelfDestructWhenEmpty
	}
	rules.StopWhenOneLeft = rc.StopWhenOneLeft
	for name, p := range rc.HitChance {
		v, err := ParseVariant(name)
		if err != nil {
			return Rules{}, fmt.Errorf("%w: hit_chance: %w", config.ErrInvalidConfig, err)
		}
		rules.HitChance[v] = p
	}
	return rules, nil
}

// Engine owns the robot registry and the grid. Robot ids index the
// registry; a Gone robot leaves a nil slot so ids are never reused.
type Engine struct {
	grid     *grid.Grid
	robots   []*Robot
	queue    []int
	rng      *rand.Rand
	rules    Rules
	resolver *Resolver
	upgrader *UpgradeSelector

	turn   int
	events []Event
	Emit   func(Event)
}

func NewEngine(width, height int, rules Rules, rng *rand.Rand) (*Engine, error) {
	g, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = util.New(0)
	}
	if rules.HitChance == nil {
		rules.HitChance = map[Variant]float64{}
	}
	if rules.RespawnAttempts <= 0 {
		rules.RespawnAttempts = config.DefaultRespawnAttempts
	}
	return &Engine{
		grid:     g,
		rng:      rng,
		rules:    rules,
		resolver: NewResolver(g, rng),
		upgrader: NewUpgradeSelector(rng, rules.MaxUpgrades),
	}, nil
}

// Setup builds an engine from a loaded battle, resolving random coordinates
// with rng. Rejected placements are returned, not fatal.
func Setup(b *config.Battle, rng *rand.Rand) (*Engine, []error, error) {
	rules, err := RulesFrom(b.Rules)
	if err != nil {
		return nil, nil, err
	}
	e, err := NewEngine(b.Battlefield.Width, b.Battlefield.Height, rules, rng)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	var rejected []error
	for _, p := range b.Resolve(e.rng) {
		v, err := ParseVariant(p.Variant)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: robot %s: %w", config.ErrInvalidConfig, p.Name, err)
		}
		if _, err := e.AddRobot(p.Name, p.X, p.Y, v); err != nil {
			rejected = append(rejected, err)
		}
	}
	return e, rejected, nil
}

func (e *Engine) Grid() *grid.Grid { return e.grid }
func (e *Engine) Rules() Rules     { return e.rules }
func (e *Engine) Turn() int        { return e.turn }
func (e *Engine) Events() []Event  { return e.events }

func (e *Engine) emit(ev Event) {
	ev.Turn = e.turn
	e.events = append(e.events, ev)
	if e.Emit != nil {
		e.Emit(ev)
	}
}

func (e *Engine) hitChance(v Variant) float64 {
	if p, ok := e.rules.HitChance[v]; ok {
		return p
	}
	return DefaultStats(v).HitChance
}

func (e *Engine) robot(id int) *Robot {
	if id <= 0 || id > len(e.robots) {
		return nil
	}
	return e.robots[id-1]
}

func (e *Engine) Robot(id int) (RobotView, bool) {
	r := e.robot(id)
	if r == nil {
		return RobotView{}, false
	}
	return r.View(), true
}

// AddRobot registers a robot and places it. On rejection no id is consumed.
func (e *Engine) AddRobot(name string, x, y int, v Variant) (int, error) {
	id := len(e.robots) + 1
	if err := e.grid.Place(id, x, y); err != nil {
		e.emit(Event{Kind: EvPlacementRejected, Actor: name, At: posPtr(grid.Pos{X: x, Y: y}), Note: err.Error()})
		return 0, fmt.Errorf("%w: %s: %w", ErrPlacementRejected, name, err)
	}
	r := newRobot(id, name, grid.Pos{X: x, Y: y}, v)
	e.robots = append(e.robots, r)
	e.emit(Event{Kind: EvPlaced, ActorID: id, Actor: name, At: posPtr(r.Pos), Variant: v.String(), Ammo: r.Ammo, Lives: r.Lives})
	return id, nil
}

func (e *Engine) activeTurn(id int) (*Turn, error) {
	r := e.robot(id)
	if r == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRobot, id)
	}
	if r.State != Active {
		return nil, fmt.Errorf("%w: %s is %s", ErrInactive, r.Name, r.State)
	}
	return &Turn{e: e, r: r}, nil
}

func (e *Engine) Think(id int) error {
	t, err := e.activeTurn(id)
	if err != nil {
		return err
	}
	t.think()
	return nil
}

func (e *Engine) Look(id, dx, dy int) error {
	t, err := e.activeTurn(id)
	if err != nil {
		return err
	}
	t.look(dx, dy)
	return nil
}

func (e *Engine) Move(id, dx, dy int) error {
	t, err := e.activeTurn(id)
	if err != nil {
		return err
	}
	return t.move(dx, dy)
}

// Fire performs one fire action for id, including the upgrade a kill earns.
func (e *Engine) Fire(id, dx, dy int) (FireReport, TurnOutcome, error) {
	t, err := e.activeTurn(id)
	if err != nil {
		return FireReport{}, Continue, err
	}
	if err := t.fire(dx, dy); err != nil {
		return FireReport{}, t.outcome, err
	}
	return t.last, t.outcome, nil
}

// Act plays id's scheduled turn.
func (e *Engine) Act(id int) TurnOutcome {
	t, err := e.activeTurn(id)
	if err != nil {
		return Continue
	}
	t.behavior().TakeTurn(t)
	return t.outcome
}

// destroy takes id off the grid and spends a life. terminal spends all of them.
func (e *Engine) destroy(id int, terminal bool) {
	r := e.robot(id)
	if r == nil || r.State != Active {
		return
	}
	e.grid.Remove(id)
	if terminal {
		r.Lives = 0
	} else if r.Lives > 0 {
		r.Lives--
	}
	if r.Lives > 0 {
		r.State = PendingRespawn
		e.queue = append(e.queue, id)
		e.emit(Event{Kind: EvDestroyed, ActorID: id, Actor: r.Name, Lives: r.Lives, Outcome: PendingRespawn.String()})
		return
	}
	r.State = Gone
	e.robots[id-1] = nil
	e.emit(Event{Kind: EvDestroyed, ActorID: id, Actor: r.Name, Outcome: Gone.String()})
}

// upgrade swaps the robot behind t for its upgraded replacement.
func (e *Engine) upgrade(t *Turn) {
	old := t.r
	if old.State != Active {
		return
	}
	repl, ok := e.upgrader.Select(old)
	if !ok {
		return
	}
	e.robots[old.ID-1] = repl
	t.r = repl
	t.outcome = Upgraded
	e.emit(Event{
		Kind: EvUpgrade, ActorID: repl.ID, Actor: repl.Name, At: posPtr(repl.Pos),
		Variant: repl.Variant.String(), Ammo: repl.Ammo, Lives: repl.Lives,
		Note: fmt.Sprintf("upgrade %d of %d, was %s", repl.UpgradeCount, e.upgrader.limit, old.Variant),
	})
}

func (e *Engine) Pending() []int { return append([]int(nil), e.queue...) }

// Respawn tries to bring back the robot at the head of the queue. Cells are
// sampled without replacement, at most RespawnAttempts of them. On
// exhaustion the robot goes to the back of the queue.
func (e *Engine) Respawn() error {
	if len(e.queue) == 0 {
		return nil
	}
	id := e.queue[0]
	e.queue = e.queue[1:]
	r := e.robot(id)
	if r == nil || r.State != PendingRespawn {
		return nil
	}
	w, h := e.grid.Width(), e.grid.Height()
	s := util.NewSampler(e.rng, w*h)
	for i := 0; i < e.rules.RespawnAttempts && s.Remaining() > 0; i++ {
		cell, _ := s.Next()
		x, y := cell%w, cell/w
		if e.grid.IsOccupied(x, y) {
			continue
		}
		if err := e.grid.Place(id, x, y); err != nil {
			continue
		}
		r.Pos = grid.Pos{X: x, Y: y}
		r.State = Active
		r.Ammo = DefaultStats(r.Variant).Ammo
		e.emit(Event{Kind: EvRespawn, ActorID: id, Actor: r.Name, At: posPtr(r.Pos), Ammo: r.Ammo, Lives: r.Lives})
		return nil
	}
	e.queue = append(e.queue, id)
	e.emit(Event{Kind: EvRespawnFailed, ActorID: id, Actor: r.Name, Note: "no free cell found, requeued"})
	return fmt.Errorf("%w: %s", ErrRespawnExhausted, r.Name)
}

// Step plays one full turn: every Active robot acts once in registration
// order, then one respawn is attempted.
func (e *Engine) Step() {
	e.turn++
	for i := 0; i < len(e.robots); i++ {
		r := e.robots[i]
		if r == nil || r.State != Active {
			continue
		}
		e.Act(r.ID)
	}
	_ = e.Respawn()
	e.emit(Event{Kind: EvTurnEnd, Note: fmt.Sprintf("%d on the field, %d pending", e.grid.Len(), len(e.queue))})
}

// Run plays up to steps turns, checking ctx between turns. It returns the
// number of turns played.
func (e *Engine) Run(ctx context.Context, steps int) (int, error) {
	played := 0
	for played < steps {
		if err := ctx.Err(); err != nil {
			return played, err
		}
		if e.rules.StopWhenOneLeft && e.Survivors() <= 1 {
			break
		}
		e.Step()
		played++
	}
	return played, nil
}

// Survivors counts robots that are active or waiting to respawn.
func (e *Engine) Survivors() int {
	n := 0
	for _, r := range e.robots {
		if r != nil {
			n++
		}
	}
	return n
}

// Snapshot lists every registered robot by id, pending ones included.
func (e *Engine) Snapshot() []RobotView {
	out := make([]RobotView, 0, len(e.robots))
	for _, r := range e.robots {
		if r != nil {
			out = append(out, r.View())
		}
	}
	return out
}
