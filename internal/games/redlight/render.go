package redlight

import (
	"fmt"

	"github.com/vovakirdan/redlight/internal/core"
)

// HUD layout
const (
	hudX         = 2
	barWidth     = 30
	motionBarMax = 0.02 // smoothed motion that fills the motion bar
	barFull      = '█'
	barEmpty     = '░'
)

// stateColors maps states to HUD colors.
var stateColors = map[State]core.Color{
	StateGreen:   core.ColorBrightGreen,
	StateWarning: core.ColorBrightYellow,
	StateRed:     core.ColorBrightRed,
	StateDead:    core.ColorWhite,
}

// Render draws the HUD for a snapshot into the screen buffer.
func Render(dst *core.Screen, rs RenderState) {
	dst.Clear()

	color := stateColors[rs.State]
	dst.SetPen(color)
	dst.DrawText(hudX, 1, fmt.Sprintf("State: %s", rs.State))
	dst.DrawText(hudX, 2, fmt.Sprintf("Motion: %.4f", rs.Smoothed))

	dst.SetPen(core.ColorDefault)
	dst.DrawText(hudX, 4, "Motion")
	drawBar(dst, hudX, 5, core.ClampF(rs.Smoothed/motionBarMax, 0, 1), core.ColorGreen)

	dst.DrawText(hudX, 7, fmt.Sprintf("Phase Timer  %4.1fs", float64(rs.RemainingMS())/1000))
	drawBar(dst, hudX, 8, rs.RemainingRatio(), core.ColorOrange)

	dst.SetPen(core.ColorDefault)
	dst.DrawText(hudX, 10, fmt.Sprintf("Level: %d", rs.Level))
	dst.DrawText(hudX, 11, fmt.Sprintf("Cycle: %d", rs.Cycle))
	dst.SetPen(core.ColorGray)
	dst.DrawText(hudX, 12, fmt.Sprintf("Red limit: %.4f", rs.RedThreshold))

	if rs.State == StateWarning {
		dst.SetPen(core.ColorBrightYellow)
		dst.DrawText(hudX, 14, fmt.Sprintf("MOVE! idle for %.1fs", float64(rs.IdleMS)/1000))
	}

	if rs.IsDead {
		drawCenteredMessage(dst, "YOU DIED", "Press R to Restart")
	}
	dst.SetPen(core.ColorDefault)
}

// drawBar draws a horizontal gauge filled to ratio.
func drawBar(dst *core.Screen, x, y int, ratio float64, fill core.Color) {
	filled := int(ratio * barWidth)
	dst.SetPen(fill)
	dst.DrawHLine(x, y, filled, barFull)
	dst.SetPen(core.ColorGray)
	dst.DrawHLine(x+filled, y, barWidth-filled, barEmpty)
	dst.SetPen(core.ColorDefault)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	box := dst.Bounds().Centered(boxW, 5)

	dst.SetPen(core.ColorBrightRed)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawText(box.X+(boxW-len(title))/2, box.Y+1, title)

	dst.SetPen(core.ColorWhite)
	dst.DrawText(box.X+(boxW-len(subtitle))/2, box.Y+3, subtitle)
}
