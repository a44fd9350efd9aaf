package render

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"robotwar/internal/combat"
)

// Narrate renders one event as a line of battle commentary. Think events and
// unknown kinds yield "".
func Narrate(ev combat.Event) string {
	at := ""
	if ev.At != nil {
		at = fmt.Sprintf("(%d,%d)", ev.At.X, ev.At.Y)
	}
	switch ev.Kind {
	case combat.EvPlaced:
		return fmt.Sprintf("%s enters at %s as %s", ev.Actor, at, ev.Variant)
	case combat.EvPlacementRejected:
		return fmt.Sprintf("%s cannot be placed at %s: %s", ev.Actor, at, ev.Note)
	case combat.EvLook:
		if ev.Target != "" {
			return fmt.Sprintf("%s spots %s at %s", ev.Actor, ev.Target, at)
		}
		return fmt.Sprintf("%s looks at %s", ev.Actor, at)
	case combat.EvMove:
		return fmt.Sprintf("%s moves to %s", ev.Actor, at)
	case combat.EvMoveFailed:
		return fmt.Sprintf("%s fails to move to %s", ev.Actor, at)
	case combat.EvJump:
		return fmt.Sprintf("%s jumps to %s (%s)", ev.Actor, at, ev.Note)
	case combat.EvJumpFailed:
		return fmt.Sprintf("%s fails to jump to %s", ev.Actor, at)
	case combat.EvFire:
		line := fmt.Sprintf("%s fires at %s: %s", ev.Actor, at, ev.Outcome)
		if ev.Target != "" && ev.Outcome != combat.Kill.String() {
			line += ", " + ev.Target + " survives"
		}
		return fmt.Sprintf("%s, %d left", line, ev.Ammo)
	case combat.EvFireRejected:
		return fmt.Sprintf("%s cannot fire: %s", ev.Actor, ev.Note)
	case combat.EvKill:
		if ev.Note != "" {
			return fmt.Sprintf("%s destroys %s (%s)", ev.Actor, ev.Target, ev.Note)
		}
		return fmt.Sprintf("%s destroys %s", ev.Actor, ev.Target)
	case combat.EvSelfDestruct:
		return fmt.Sprintf("%s self-destructs, %s", ev.Actor, ev.Note)
	case combat.EvDetonate:
		return fmt.Sprintf("%s detonates at %s, %s", ev.Actor, at, ev.Note)
	case combat.EvDestroyed:
		if ev.Outcome == combat.Gone.String() {
			return fmt.Sprintf("%s is out of lives", ev.Actor)
		}
		return fmt.Sprintf("%s is down, %d %s left", ev.Actor, ev.Lives, plural(ev.Lives, "life", "lives"))
	case combat.EvUpgrade:
		return fmt.Sprintf("%s upgrades to %s (%s)", ev.Actor, ev.Variant, ev.Note)
	case combat.EvTrack:
		return fmt.Sprintf("%s tags %s at %s, %s", ev.Actor, ev.Target, at, ev.Note)
	case combat.EvHeal:
		return fmt.Sprintf("%s heals %s to %d lives, %s", ev.Actor, ev.Target, ev.Lives, ev.Note)
	case combat.EvRespawn:
		return fmt.Sprintf("%s respawns at %s", ev.Actor, at)
	case combat.EvRespawnFailed:
		return fmt.Sprintf("%s cannot respawn: %s", ev.Actor, ev.Note)
	case combat.EvTurnEnd:
		return fmt.Sprintf("-- turn %d over: %s", ev.Turn, ev.Note)
	}
	return ""
}

// Summary describes a finished run: turns, tallies and a kill ranking.
func Summary(res combat.SimResult, seed int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Seed %d, %s %s played, %s events\n",
		seed, humanize.Comma(int64(res.TurnsPlayed)), plural(res.TurnsPlayed, "turn", "turns"), humanize.Comma(int64(len(res.Events))))
	fmt.Fprintf(&b, "Upgrades %s, respawns %s, heals %s\n",
		humanize.Comma(int64(res.Upgrades)), humanize.Comma(int64(res.Respawns)), humanize.Comma(int64(res.Heals)))

	names := make([]string, 0, len(res.Final))
	for _, r := range res.Final {
		names = append(names, r.Name)
	}
	for name := range res.Kills {
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	sort.SliceStable(names, func(i, j int) bool {
		ki, kj := res.Kills[names[i]], res.Kills[names[j]]
		if ki != kj {
			return ki > kj
		}
		return names[i] < names[j]
	})
	for i, name := range names {
		fmt.Fprintf(&b, "%5s %-12s %s %s, %s %s\n", humanize.Ordinal(i+1), name,
			humanize.Comma(int64(res.Kills[name])), plural(res.Kills[name], "kill", "kills"),
			humanize.Comma(int64(res.Deaths[name])), plural(res.Deaths[name], "death", "deaths"))
	}
	if len(res.Final) == 0 {
		b.WriteString("No robot left standing\n")
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
