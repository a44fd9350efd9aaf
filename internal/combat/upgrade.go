package combat

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

const MaxUpgrades = 2

type UpgradeSelector struct {
	rng   *rand.Rand
	limit int
}

func NewUpgradeSelector(rng *rand.Rand, limit int) *UpgradeSelector {
	if limit < 0 || limit > MaxUpgrades {
		limit = MaxUpgrades
	}
	return &UpgradeSelector{rng: rng, limit: limit}
}

func (u *UpgradeSelector) Eligible(r *Robot) bool {
	return r != nil && r.UpgradeCount < u.limit
}

// Candidates lists the upgrade pool minus the robot's history and its
// current variant, in Upgrades order.
func (u *UpgradeSelector) Candidates(r *Robot) []Variant {
	out := make([]Variant, 0, len(Upgrades))
	for _, v := range Upgrades {
		if v == r.Variant || r.History.Has(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Select draws the next variant and builds the replacement robot. The old
// robot is left untouched; callers swap it out.
func (u *UpgradeSelector) Select(r *Robot) (*Robot, bool) {
	if !u.Eligible(r) {
		return nil, false
	}
	cands := u.Candidates(r)
	if len(cands) == 0 {
		return nil, false
	}
	next := cands[u.rng.Intn(len(cands))]

	repl := newRobot(r.ID, r.Name, r.Pos, next)
	repl.Lives = r.Lives
	repl.State = r.State
	repl.UpgradeCount = r.UpgradeCount + 1
	repl.History = mapset.New[Variant]()
	r.History.Each(func(v Variant) { repl.History.Put(v) })
	repl.History.Put(next)
	return repl, true
}
