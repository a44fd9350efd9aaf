package combat

import (
	"math/rand"

	"robotwar/internal/grid"
)

// Resolver decides shots against the occupancy index. It never mutates the
// grid; on a Kill the engine destroys the victim.
type Resolver struct {
	grid *grid.Grid
	rng  *rand.Rand
}

func NewResolver(g *grid.Grid, rng *rand.Rand) *Resolver {
	return &Resolver{grid: g, rng: rng}
}

// Resolve fires at target with hit probability p: a hit is draw < p.
// An empty cell is a Whiff and consumes no draw.
func (c *Resolver) Resolve(target grid.Pos, p float64) FireReport {
	rep := FireReport{Outcome: Whiff, Target: target}
	id, ok := c.grid.OccupantAt(target.X, target.Y)
	if !ok {
		return rep
	}
	rep.Draw = c.rng.Float64()
	if rep.Draw < p {
		rep.Outcome = Kill
		rep.VictimID = id
		return rep
	}
	rep.Outcome = Miss
	return rep
}
