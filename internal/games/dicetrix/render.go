package dicetrix

import (
	"fmt"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/core"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix/engine"
)

const (
	cellWidth  = 2  // Characters per board cell
	panelWidth = 22 // Side panel width
	panelGap   = 2
)

// minSize returns the smallest screen that fits the board and side panel.
func (g *Game) minSize() (w, h int) {
	bw, bh := g.mode.Board.Width, g.mode.Board.Height
	return bw*cellWidth + 2 + panelGap + panelWidth, bh + 3
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.eng == nil {
		dst.DrawTextCentered(dst.Height()/2, "Mode unavailable")
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2+1, g.err.Error())
		}
		return
	}

	minW, minH := g.minSize()
	frame := core.NewRect(0, 0, g.screenW, g.screenH).CenterIn(minW, minH)
	board := core.NewRect(frame.X, frame.Y+1, g.mode.Board.Width*cellWidth+2, g.mode.Board.Height+2)
	panel := core.NewRect(board.Right()+panelGap, board.Y, panelWidth, board.H)

	title := g.Title()
	dst.DrawTextColored(board.X+(board.W-len(title))/2, frame.Y, title, core.ColorBrightCyan)

	dst.DrawBox(board, core.ColorCyan)
	g.renderBoard(dst, board)
	g.renderPanel(dst, panel)
	g.renderOverlays(dst, board)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	minW, minH := g.minSize()
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minW, minH))
}

// cellAt returns the screen position of board cell (x, y). Row 0 is the floor.
func (g *Game) cellAt(board core.Rect, x, y int) (sx, sy int) {
	return board.X + 1 + x*cellWidth, board.Y + 1 + (g.mode.Board.Height - 1 - y)
}

func (g *Game) renderBoard(dst *core.Screen, board core.Rect) {
	b := g.eng.Board()

	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			sx, sy := g.cellAt(board, x, y)
			d, ok := b.Get(engine.P(x, y))
			if !ok {
				dst.DrawTextColored(sx, sy, " .", core.ColorGray)
				continue
			}
			drawDie(dst, sx, sy, d, false)
		}
	}

	// Ghost under the active piece
	for _, p := range g.eng.DropPreview() {
		if !b.InBounds(p) || !b.IsEmpty(p.X, p.Y) {
			continue
		}
		sx, sy := g.cellAt(board, p.X, p.Y)
		dst.DrawTextColored(sx, sy, "··", core.ColorGray)
	}

	active := g.eng.Active()
	if active == nil {
		return
	}
	for i, p := range active.Positions() {
		if !b.InBounds(p) {
			continue
		}
		sx, sy := g.cellAt(board, p.X, p.Y)
		drawDie(dst, sx, sy, active.Dice[i].Die, true)
	}
}

// drawDie writes a die's face value in its color.
func drawDie(dst *core.Screen, x, y int, d engine.Die, active bool) {
	label := fmt.Sprintf("%2d", d.Value)
	if d.IsWild() {
		label = " *"
	}
	dst.DrawTextColored(x, y, label, dieColor(d, active))
}

// dieColor maps a die to a screen color. Falling and boosted dice are bright.
func dieColor(d engine.Die, active bool) core.Color {
	bright := active || d.Booster != engine.BoosterNone
	switch d.Color {
	case engine.ColorRed:
		return pick(bright, core.ColorBrightRed, core.ColorRed)
	case engine.ColorBlue:
		return pick(bright, core.ColorBrightBlue, core.ColorBlue)
	case engine.ColorGreen:
		return pick(bright, core.ColorBrightGreen, core.ColorGreen)
	case engine.ColorYellow:
		return pick(bright, core.ColorBrightYellow, core.ColorYellow)
	case engine.ColorPurple:
		return pick(bright, core.ColorBrightMagenta, core.ColorMagenta)
	case engine.ColorOrange:
		return core.ColorOrange
	case engine.ColorBlack:
		return pick(bright, core.ColorBrightWhite, core.ColorBlack)
	default:
		return pick(bright, core.ColorBrightWhite, core.ColorWhite)
	}
}

func pick(cond bool, a, b core.Color) core.Color {
	if cond {
		return a
	}
	return b
}

func (g *Game) renderPanel(dst *core.Screen, panel core.Rect) {
	x, y := panel.X, panel.Y
	stats := g.eng.Stats()

	dst.DrawText(x, y, fmt.Sprintf("Score: %d", g.eng.Score()))
	dst.DrawText(x, y+1, fmt.Sprintf("Mult:  x%d", g.eng.Multiplier()))
	dst.DrawText(x, y+2, fmt.Sprintf("Speed: %d", g.FallInterval()))

	dst.DrawText(x, y+4, "Next:")
	g.renderNext(dst, x, y+5)

	dst.DrawText(x, y+10, fmt.Sprintf("Pieces:  %d", stats.Pieces))
	dst.DrawText(x, y+11, fmt.Sprintf("Cleared: %d", stats.DiceCleared))
	dst.DrawText(x, y+12, fmt.Sprintf("Chain:   %d", stats.LongestCascade))

	if g.flashTicks > 0 && g.lastCascade.Passes > 0 {
		msg := fmt.Sprintf("+%d  x%d chain", g.lastCascade.Score, g.lastCascade.Passes)
		dst.DrawTextColored(x, y+14, msg, core.ColorBrightYellow)
	}

	dst.DrawTextColored(x, panel.Bottom()-2, "←→ move ↑/z rotate", core.ColorGray)
	dst.DrawTextColored(x, panel.Bottom()-1, "↓ soft  spc hard  p", core.ColorGray)
}

// renderNext draws the queued piece in a 4-row preview box, clipped to fit.
func (g *Game) renderNext(dst *core.Screen, x, y int) {
	next := g.eng.Next()
	if next == nil {
		return
	}
	const rows = 4
	_, h := next.Bounds()
	for _, pd := range next.Dice {
		row := h - 1 - pd.Offset.Y
		col := pd.Offset.X
		if row >= rows || col*cellWidth >= panelWidth {
			continue
		}
		drawDie(dst, x+col*cellWidth, y+row, pd.Die, false)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	var lines []string
	switch {
	case g.eng.GameOver():
		lines = []string{"GAME OVER", fmt.Sprintf("Score: %d", g.eng.Score()), "R restart  B back"}
	case g.paused:
		lines = []string{"PAUSED", "P to resume"}
	default:
		return
	}

	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	box := board.CenterIn(width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, l := range lines {
		lx := box.X + (box.W-len([]rune(l)))/2
		dst.DrawTextColored(lx, box.Y+1+i, l, core.ColorBrightWhite)
	}
}
