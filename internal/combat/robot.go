package combat

import (
	"github.com/zyedidia/generic/mapset"

	"robotwar/internal/grid"
)

type Robot struct {
	ID      int
	Name    string
	Pos     grid.Pos
	Ammo    int
	Lives   int
	Variant Variant
	State   State

	UpgradeCount int
	History      mapset.Set[Variant]

	JumpsLeft    int
	TrackersLeft int
	Tracked      map[int]grid.Pos
	trackOrder   []int
	Charges      int
}

func newRobot(id int, name string, pos grid.Pos, v Variant) *Robot {
	r := &Robot{
		ID: id, Name: name, Pos: pos,
		Lives:   StartLives,
		Variant: v,
		History: mapset.New[Variant](),
	}
	r.resetStats()
	return r
}

// resetStats applies the variant defaults: ammo and every variant-local counter.
func (r *Robot) resetStats() {
	s := DefaultStats(r.Variant)
	r.Ammo = s.Ammo
	r.JumpsLeft = s.Jumps
	r.TrackersLeft = s.Trackers
	r.Tracked = map[int]grid.Pos{}
	r.trackOrder = nil
	r.Charges = s.Charges
}

// NeedsHealing reports whether the robot has lost a life it can regain.
func (r *Robot) NeedsHealing() bool {
	return r.State == Active && r.Lives > 0 && r.Lives < StartLives
}

func (r *Robot) track(id int, p grid.Pos) {
	if _, ok := r.Tracked[id]; !ok {
		r.trackOrder = append(r.trackOrder, id)
	}
	r.Tracked[id] = p
}

func (r *Robot) View() RobotView {
	return RobotView{
		ID: r.ID, Name: r.Name,
		Variant:      r.Variant.String(),
		Pos:          r.Pos,
		Ammo:         r.Ammo,
		Lives:        r.Lives,
		UpgradeCount: r.UpgradeCount,
		State:        r.State.String(),
	}
}
