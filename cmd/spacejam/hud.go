package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/spacejam/game"
)

const helpLine = "space thrust  q/e strafe  w/s pitch  a/d turn  f fire  esc quit"

var (
	styleTitle = tcell.StyleDefault.Bold(true)
	styleText  = tcell.StyleDefault
	styleWarn  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHelp  = tcell.StyleDefault.Dim(true)
)

// hudLines formats the frame status, one string per screen row
func hudLines(id uuid.UUID, st game.Status) []string {
	held := make([]string, len(st.Held))
	for i, a := range st.Held {
		held[i] = a.String()
	}
	flying := "none"
	if len(st.Missiles) > 0 {
		flying = strings.Join(st.Missiles, " ")
	}

	return []string{
		fmt.Sprintf("SPACE JAM  session %s  frame %d", id.String()[:8], st.Frame),
		fmt.Sprintf("pos %9.1f %9.1f %9.1f   heading %7.2f  pitch %6.2f", st.Pos.X, st.Pos.Y, st.Pos.Z, st.Heading, st.Pitch),
		fmt.Sprintf("bay %d/%d [%s]  launched %d  in flight: %s", st.Bay, st.BayCapacity, st.Weapon, st.Launched, flying),
		fmt.Sprintf("nearest %s at %.1f  drones %d", st.Nearest, st.NearestDist, st.Drones),
		fmt.Sprintf("held: %s", strings.Join(held, ", ")),
	}
}

func drawHUD(s tcell.Screen, id uuid.UUID, st game.Status) {
	s.Clear()
	_, height := s.Size()

	for y, line := range hudLines(id, st) {
		style := styleText
		switch {
		case y == 0:
			style = styleTitle
		case y == 2 && st.Bay == 0:
			style = styleWarn
		}
		drawText(s, 0, y, line, style)
	}
	drawText(s, 0, height-1, helpLine, styleHelp)

	s.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
