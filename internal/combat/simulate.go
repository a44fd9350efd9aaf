package combat

import (
	"context"
	"encoding/json"

	"robotwar/internal/grid"
)

type InitRobot struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Variant string   `json:"variant"`
	Pos     grid.Pos `json:"pos"`
}

type InitState struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Robots []InitRobot `json:"robots"`
}

type SimResult struct {
	TurnsPlayed int            `json:"turns"`
	Final       []RobotView    `json:"final"`
	Kills       map[string]int `json:"kills,omitempty"`
	Deaths      map[string]int `json:"deaths,omitempty"`
	Upgrades    int            `json:"upgrades"`
	Respawns    int            `json:"respawns"`
	Heals       int            `json:"heals"`
	Events      []Event        `json:"events,omitempty"`
}

func InitOf(e *Engine) InitState {
	st := InitState{Width: e.grid.Width(), Height: e.grid.Height()}
	for _, r := range e.robots {
		if r == nil {
			continue
		}
		st.Robots = append(st.Robots, InitRobot{ID: r.ID, Name: r.Name, Variant: r.Variant.String(), Pos: r.Pos})
	}
	return st
}

// RunSingle plays the configured number of turns and tallies the event log.
func RunSingle(ctx context.Context, e *Engine, steps int, record bool) (SimResult, error) {
	start := len(e.events)
	played, err := e.Run(ctx, steps)
	res := SimResult{
		TurnsPlayed: played,
		Final:       e.Snapshot(),
		Kills:       map[string]int{},
		Deaths:      map[string]int{},
	}
	log := e.events[start:]
	for _, ev := range log {
		switch ev.Kind {
		case EvKill:
			res.Kills[ev.Actor]++
		case EvDestroyed:
			res.Deaths[ev.Actor]++
		case EvUpgrade:
			res.Upgrades++
		case EvRespawn:
			res.Respawns++
		case EvHeal:
			res.Heals++
		}
	}
	if record {
		res.Events = append([]Event(nil), log...)
	}
	return res, err
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
