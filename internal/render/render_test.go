package render

import (
	"strconv"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"robotwar/internal/combat"
	"robotwar/internal/grid"
)

func views() []combat.RobotView {
	return []combat.RobotView{
		{ID: 1, Name: "Kidd", Variant: "basic", Pos: grid.Pos{X: 0, Y: 0}, Lives: 3, Ammo: 10, State: combat.Active.String()},
		{ID: 2, Name: "Jet", Variant: "sniper", Pos: grid.Pos{X: 3, Y: 1}, Lives: 2, Ammo: 5, State: combat.Active.String()},
		{ID: 3, Name: "Ghost", Variant: "basic", Pos: grid.Pos{X: 2, Y: 2}, Lives: 1, State: combat.PendingRespawn.String()},
	}
}

func TestBoard(t *testing.T) {
	got := Board(4, 3, views())
	want := "   0123\n" +
		" 0 K...\n" +
		" 1 ...J\n" +
		" 2 ....\n"
	if got != want {
		t.Fatalf("board mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestNarrate(t *testing.T) {
	at := &grid.Pos{X: 2, Y: 1}
	cases := []struct {
		ev   combat.Event
		want string
	}{
		{combat.Event{Kind: combat.EvKill, Actor: "Kidd", Target: "Jet", At: at}, "Kidd destroys Jet"},
		{combat.Event{Kind: combat.EvMove, Actor: "Kidd", At: at}, "Kidd moves to (2,1)"},
		{combat.Event{Kind: combat.EvDestroyed, Actor: "Jet", Lives: 1, Outcome: combat.PendingRespawn.String()}, "Jet is down, 1 life left"},
		{combat.Event{Kind: combat.EvDestroyed, Actor: "Jet", Outcome: combat.Gone.String()}, "Jet is out of lives"},
		{combat.Event{Kind: combat.EvFire, Actor: "Kidd", At: at, Outcome: "miss", Target: "Jet", Ammo: 9}, "Kidd fires at (2,1): miss, Jet survives, 9 left"},
		{combat.Event{Kind: combat.EvThink, Actor: "Kidd"}, ""},
	}
	for _, tc := range cases {
		if got := Narrate(tc.ev); got != tc.want {
			t.Fatalf("Narrate(%s) = %q, want %q", tc.ev.Kind, got, tc.want)
		}
	}
}

func TestSummaryRanksByKills(t *testing.T) {
	res := combat.SimResult{
		TurnsPlayed: 1200,
		Final:       views(),
		Kills:       map[string]int{"Jet": 4, "Kidd": 1},
		Deaths:      map[string]int{"Ghost": 2},
	}
	out := Summary(res, 7)
	if !strings.Contains(out, "1,200 turns") {
		t.Fatalf("expected a comma-grouped turn count:\n%s", out)
	}
	first := strings.Index(out, "1st Jet")
	second := strings.Index(out, "2nd Kidd")
	third := strings.Index(out, "3rd Ghost")
	if first < 0 || second < first || third < second {
		t.Fatalf("unexpected ranking:\n%s", out)
	}
}

func TestLiveViewDraw(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	v, err := NewLiveView(s)
	if err != nil {
		t.Fatalf("live view: %v", err)
	}
	defer v.Close()

	v.Observe(combat.Event{Kind: combat.EvMove, Actor: "Kidd", At: &grid.Pos{}})
	v.Observe(combat.Event{Kind: combat.EvThink, Actor: "Kidd"})
	if len(v.log) != 1 {
		t.Fatalf("expected one narrated line, got %d", len(v.log))
	}
	v.Draw(3, 4, 3, views())

	if c, _, _, _ := s.GetContent(1, 2); c != 'K' {
		t.Fatalf("expected K at the board origin, got %q", c)
	}
	if c, _, _, _ := s.GetContent(4, 3); c != 'J' {
		t.Fatalf("expected J at (3,1), got %q", c)
	}
	if c, _, _, _ := s.GetContent(3, 4); c != emptyCell {
		t.Fatalf("pending robot drawn on the board: %q", c)
	}
}

func TestLiveViewLogIsBounded(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	v, err := NewLiveView(s)
	if err != nil {
		t.Fatalf("live view: %v", err)
	}
	defer v.Close()
	for i := 0; i < logLines*2; i++ {
		v.Observe(combat.Event{Kind: combat.EvTurnEnd, Turn: i})
	}
	if len(v.log) != logLines {
		t.Fatalf("expected %d log lines, got %d", logLines, len(v.log))
	}
	if !strings.Contains(v.log[logLines-1], "turn "+strconv.Itoa(logLines*2-1)) {
		t.Fatalf("expected the newest line last, got %q", v.log[logLines-1])
	}
}
