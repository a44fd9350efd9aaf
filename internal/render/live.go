package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"robotwar/internal/combat"
)

const logLines = 12

var variantStyles = map[string]tcell.Style{
	combat.Basic.String():    tcell.StyleDefault.Foreground(tcell.ColorWhite),
	combat.Jump.String():     tcell.StyleDefault.Foreground(tcell.ColorAqua),
	combat.SemiAuto.String(): tcell.StyleDefault.Foreground(tcell.ColorYellow),
	combat.Track.String():    tcell.StyleDefault.Foreground(tcell.ColorGreen),
	combat.Kamikaze.String(): tcell.StyleDefault.Foreground(tcell.ColorRed),
	combat.Sniper.String():   tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
	combat.Medic.String():    tcell.StyleDefault.Foreground(tcell.ColorBlue),
}

var (
	emptyStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	headerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	logStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// LiveView draws the board and the latest narration on a terminal screen.
type LiveView struct {
	screen tcell.Screen
	log    []string
}

// OpenLiveView takes over the terminal.
func OpenLiveView() (*LiveView, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewLiveView(s)
}

// NewLiveView initialises s and draws on it.
func NewLiveView(s tcell.Screen) (*LiveView, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	return &LiveView{screen: s}, nil
}

// Observe records an event for the log pane.
func (v *LiveView) Observe(ev combat.Event) {
	line := Narrate(ev)
	if line == "" {
		return
	}
	v.log = append(v.log, line)
	if len(v.log) > logLines {
		v.log = v.log[len(v.log)-logLines:]
	}
}

// Draw repaints the whole screen for the given turn.
func (v *LiveView) Draw(turn, width, height int, robots []combat.RobotView) {
	s := v.screen
	s.Clear()
	v.text(0, 0, fmt.Sprintf("Turn %d", turn), headerStyle)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s.SetContent(x+1, y+2, emptyCell, nil, emptyStyle)
		}
	}
	for _, r := range robots {
		if r.State != combat.Active.String() {
			continue
		}
		st, ok := variantStyles[r.Variant]
		if !ok {
			st = tcell.StyleDefault
		}
		s.SetContent(r.Pos.X+1, r.Pos.Y+2, glyph(r.Name), nil, st)
	}

	col := width + 3
	for i, r := range robots {
		line := fmt.Sprintf("%-10s %-8s lives %d ammo %2d", r.Name, r.Variant, r.Lives, r.Ammo)
		if r.State != combat.Active.String() {
			line += " (down)"
		}
		v.text(col, i+2, line, variantStyles[r.Variant])
	}

	top := height + 3
	if n := len(robots) + 3; n > top {
		top = n
	}
	for i, line := range v.log {
		v.text(0, top+i, line, logStyle)
	}
	s.Show()
}

// WaitKey blocks until a key is pressed or the screen is finalised.
func (v *LiveView) WaitKey() {
	for {
		switch v.screen.PollEvent().(type) {
		case *tcell.EventKey, nil:
			return
		}
	}
}

func (v *LiveView) Close() { v.screen.Fini() }

func (v *LiveView) text(x, y int, s string, st tcell.Style) {
	for i, c := range []rune(s) {
		v.screen.SetContent(x+i, y, c, nil, st)
	}
}
