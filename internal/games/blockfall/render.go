package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	bfcore "github.com/vovakirdan/blockfall/internal/games/blockfall/core"
)

const (
	cellRune   = '█'
	ghostRune  = '░'
	clearRune  = '▒'
	emptyRune  = '·'
	previewBox = 6
)

// kindColors maps each piece kind to its terminal color.
var kindColors = map[bfcore.Kind]core.Color{
	bfcore.KindI:      core.ColorCyan,
	bfcore.KindO:      core.ColorYellow,
	bfcore.KindT:      core.ColorMagenta,
	bfcore.KindS:      core.ColorGreen,
	bfcore.KindZ:      core.ColorRed,
	bfcore.KindJ:      core.ColorBlue,
	bfcore.KindL:      core.ColorOrange,
	bfcore.KindPlus:   core.ColorBrightMagenta,
	bfcore.KindU:      core.ColorBrightGreen,
	bfcore.KindCorner: core.ColorBrightYellow,
	bfcore.KindFloat:  core.ColorBrightWhite,
}

// cellColor recovers a kind color from a board cell's color token.
func cellColor(c bfcore.Cell) core.Color {
	if c == bfcore.CellEmpty {
		return core.ColorDefault
	}
	if col, ok := kindColors[bfcore.Kind(c-1)]; ok {
		return col
	}
	return core.ColorWhite
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	s := g.state
	if s == nil {
		return
	}

	// Board cells are drawn double-wide so the playfield looks square.
	boardW := bfcore.BoardWidth*2 + 2
	boardH := bfcore.BoardHeight + 2
	if dst.Width() < boardW+2*previewBox+6 || dst.Height() < boardH+1 {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, "Resize to continue")
		return
	}

	originX := (dst.Width() - boardW) / 2
	originY := (dst.Height() - boardH) / 2

	dst.DrawBox(originX, originY, boardW, boardH)
	g.renderBoard(dst, originX+1, originY+1)
	g.renderGhost(dst, originX+1, originY+1)
	g.renderCurrent(dst, originX+1, originY+1)
	g.renderClearing(dst, originX+1, originY+1)

	g.renderPreview(dst, originX+boardW+2, originY, "NEXT", s.Next)
	g.renderPreview(dst, originX+boardW+2, originY+previewBox+1, "HOLD", s.Held)
	g.renderHUD(dst, originX-previewBox-10, originY)

	switch s.Phase {
	case bfcore.PhasePaused:
		dst.DrawTextCentered(originY+boardH/2, " PAUSED ")
	case bfcore.PhaseGameOver:
		g.renderGameOver(dst, originY+boardH/2)
	}
}

// renderBoard draws the settled cells.
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	s := g.state
	for y := 0; y < bfcore.BoardHeight; y++ {
		for x := 0; x < bfcore.BoardWidth; x++ {
			c := s.Board.At(x, y)
			r := emptyRune
			col := core.ColorGray
			if c != bfcore.CellEmpty {
				r = cellRune
				col = cellColor(c)
			}
			dst.SetCell(ox+x*2, oy+y, r, col)
			if c != bfcore.CellEmpty {
				dst.SetCell(ox+x*2+1, oy+y, r, col)
			}
		}
	}

	// Death piece cells flash bright on top of the settled stack.
	if s.DeathPiece != nil {
		drawPiece(dst, ox, oy, s.DeathPiece, cellRune, core.ColorBrightRed)
	}
}

// renderGhost draws the shadow landing position of the current piece.
func (g *Game) renderGhost(dst *core.Screen, ox, oy int) {
	s := g.state
	if s.Current == nil || s.Phase == bfcore.PhaseGameOver {
		return
	}

	ghost := s.Current.Clone()
	ghost.Y = g.shadows.Shadow(s.Board, s.Current)
	if ghost.Y == s.Current.Y {
		return
	}
	drawPiece(dst, ox, oy, ghost, ghostRune, core.ColorGray)
}

// renderCurrent draws the falling piece.
func (g *Game) renderCurrent(dst *core.Screen, ox, oy int) {
	s := g.state
	if s.Current == nil {
		return
	}
	drawPiece(dst, ox, oy, s.Current, cellRune, kindColors[s.Current.Kind])
}

// renderClearing flashes the rows being removed.
func (g *Game) renderClearing(dst *core.Screen, ox, oy int) {
	s := g.state
	if s.Phase != bfcore.PhaseClearing || s.FX == nil {
		return
	}
	for _, row := range s.FX.Rows {
		for x := 0; x < bfcore.BoardWidth*2; x++ {
			dst.SetCell(ox+x, oy+row, clearRune, core.ColorBrightWhite)
		}
	}
}

// drawPiece writes a piece's occupied cells, clipping rows above the board.
func drawPiece(dst *core.Screen, ox, oy int, p *bfcore.Piece, r rune, col core.Color) {
	for sy := range p.Shape {
		for sx := range p.Shape[sy] {
			if p.Shape[sy][sx] == 0 || p.Y+sy < 0 {
				continue
			}
			dst.SetCell(ox+(p.X+sx)*2, oy+p.Y+sy, r, col)
			dst.SetCell(ox+(p.X+sx)*2+1, oy+p.Y+sy, r, col)
		}
	}
}

// renderPreview draws a labeled box containing a piece at rotation 0.
func (g *Game) renderPreview(dst *core.Screen, ox, oy int, label string, p *bfcore.Piece) {
	w := previewBox*2 - 2
	dst.DrawBox(ox, oy, w, previewBox)
	dst.DrawText(ox+2, oy, label)
	if p == nil {
		return
	}

	px := ox + (w-p.Width()*2)/2
	py := oy + (previewBox-p.Height())/2
	col := kindColors[p.Kind]
	for sy := range p.Shape {
		for sx := range p.Shape[sy] {
			if p.Shape[sy][sx] == 0 {
				continue
			}
			dst.SetCell(px+sx*2, py+sy, cellRune, col)
			dst.SetCell(px+sx*2+1, py+sy, cellRune, col)
		}
	}
}

// renderHUD draws score, level, and streak counters beside the board.
func (g *Game) renderHUD(dst *core.Screen, ox, oy int) {
	s := g.state
	if ox < 0 {
		ox = 0
	}

	dst.DrawTextColored(ox, oy, g.Title(), core.ColorBrightCyan)
	dst.DrawText(ox, oy+2, fmt.Sprintf("Score  %d", s.Score))
	dst.DrawText(ox, oy+3, fmt.Sprintf("Level  %d", s.Level))
	dst.DrawText(ox, oy+4, fmt.Sprintf("Lines  %d", s.Lines))
	if s.Combo > 1 {
		dst.DrawTextColored(ox, oy+6, fmt.Sprintf("Combo  x%d", s.Combo), core.ColorBrightYellow)
	}
	if s.BackToBack > 0 {
		dst.DrawTextColored(ox, oy+7, fmt.Sprintf("B2B    x%d", s.BackToBack), core.ColorBrightMagenta)
	}
}

// renderGameOver draws the end-of-session overlay with the submission
// verdict.
func (g *Game) renderGameOver(dst *core.Screen, y int) {
	s := g.state
	dst.DrawTextCentered(y-1, " GAME OVER ")
	dst.DrawTextCentered(y, fmt.Sprintf(" Final score: %d ", s.Score))
	if s.CanSubmitToTournament() {
		dst.DrawTextCentered(y+1, " Replay verified ")
	}
	dst.DrawTextCentered(y+2, " Press R to restart ")
}
