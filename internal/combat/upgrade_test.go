package combat

import (
	"testing"

	"robotwar/internal/grid"
	"robotwar/internal/util"
)

func TestUpgradeCandidatesSkipHistory(t *testing.T) {
	u := NewUpgradeSelector(util.New(1), MaxUpgrades)
	r := newRobot(1, "Alpha", grid.Pos{}, Sniper)
	r.History.Put(Jump)
	for _, v := range u.Candidates(r) {
		if v == Sniper || v == Jump || v == Basic {
			t.Fatalf("candidate %s should be excluded", v)
		}
	}
	if got := len(u.Candidates(r)); got != len(Upgrades)-2 {
		t.Fatalf("expected %d candidates, got %d", len(Upgrades)-2, got)
	}
}

func TestUpgradeChainIsBounded(t *testing.T) {
	u := NewUpgradeSelector(util.New(3), MaxUpgrades)
	r := newRobot(4, "Alpha", grid.Pos{X: 2, Y: 3}, Basic)
	r.Lives = 2
	seen := map[Variant]bool{}
	for i := 1; i <= MaxUpgrades; i++ {
		next, ok := u.Select(r)
		if !ok {
			t.Fatalf("upgrade %d refused", i)
		}
		if seen[next.Variant] || next.Variant == r.Variant {
			t.Fatalf("upgrade %d repeated variant %s", i, next.Variant)
		}
		seen[next.Variant] = true
		if next.ID != 4 || next.Name != "Alpha" || next.Pos != r.Pos || next.Lives != 2 {
			t.Fatalf("identity lost on upgrade %d: %+v", i, next)
		}
		if next.UpgradeCount != i || next.History.Size() != i {
			t.Fatalf("upgrade %d: count=%d history=%d", i, next.UpgradeCount, next.History.Size())
		}
		if r.UpgradeCount != i-1 {
			t.Fatal("selector mutated the original robot")
		}
		r = next
	}
	if _, ok := u.Select(r); ok {
		t.Fatal("upgraded past the limit")
	}
}

func TestUpgradeLimitZeroDisables(t *testing.T) {
	u := NewUpgradeSelector(util.New(3), 0)
	if _, ok := u.Select(newRobot(1, "Alpha", grid.Pos{}, Basic)); ok {
		t.Fatal("expected upgrades to be disabled")
	}
}

func TestKillAtLimitKeepsVariant(t *testing.T) {
	e := newTestEngine(t, 5, 5, 3, alwaysHit)
	a := mustAdd(t, e, "Alpha", 1, 1, Basic)
	mustAdd(t, e, "Beta", 2, 1, Basic)
	e.robot(a).UpgradeCount = MaxUpgrades
	rep, outcome, err := e.Fire(a, 1, 0)
	if err != nil {
		t.Fatalf("fire: %v", err)
	}
	if rep.Outcome != Kill || outcome != Continue {
		t.Fatalf("expected kill without upgrade, got %v/%v", rep.Outcome, outcome)
	}
	if e.robot(a).Variant != Basic || e.robot(a).UpgradeCount != MaxUpgrades {
		t.Fatalf("robot changed past the limit: %+v", e.robot(a))
	}
}

func TestResolverWhiffConsumesNoDraw(t *testing.T) {
	g, err := grid.New(3, 3)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if err := g.Place(1, 1, 1); err != nil {
		t.Fatalf("place: %v", err)
	}
	rng := util.New(5)
	res := NewResolver(g, rng)
	if rep := res.Resolve(grid.Pos{X: 0, Y: 0}, 1); rep.Outcome != Whiff {
		t.Fatalf("expected whiff, got %v", rep.Outcome)
	}
	if rng.Float64() != util.New(5).Float64() {
		t.Fatal("whiff consumed a draw")
	}

	rep := NewResolver(g, util.New(5)).Resolve(grid.Pos{X: 1, Y: 1}, 1)
	if rep.Outcome != Kill || rep.VictimID != 1 {
		t.Fatalf("expected kill on 1, got %+v", rep)
	}
	if !g.IsOccupied(1, 1) {
		t.Fatal("resolver must not mutate the grid")
	}
	if rep := NewResolver(g, util.New(5)).Resolve(grid.Pos{X: 1, Y: 1}, 0); rep.Outcome != Miss {
		t.Fatalf("expected miss at p=0, got %v", rep.Outcome)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
	}{
		{"", Basic},
		{"generic", Basic},
		{"JumpBot", Jump},
		{"semiauto", SemiAuto},
		{" sniper ", Sniper},
		{"medicbot", Medic},
	}
	for _, tc := range tests {
		got, err := ParseVariant(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseVariant(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
	if _, err := ParseVariant("laser"); err == nil {
		t.Fatal("expected an error for an unknown variant")
	}
}
