package marbles

import (
	"fmt"
	"math"

	platformcore "github.com/vovakirdan/tui-marbles/internal/core"
	"github.com/vovakirdan/tui-marbles/internal/games/marbles/core"
)

// The arena is drawn with four characters per grid column and one line per
// grid row; the launcher sits on the line below the last row.
const (
	charsPerCol = 4
	arenaW      = 42
	arenaH      = core.Rows + 1
	hudH        = 2
	boardW      = arenaW + 2
	boardH      = arenaH + 2
	minScreenW  = boardW
	minScreenH  = hudH + boardH + 1
	aimDots     = 6
	aimSpacing  = 60.0 // px between aim dots
)

var marblePalette = [core.ColorCount]platformcore.Color{
	platformcore.ColorBrightRed,
	platformcore.ColorBrightGreen,
	platformcore.ColorBrightYellow,
	platformcore.ColorBrightBlue,
	platformcore.ColorBrightMagenta,
	platformcore.ColorBrightCyan,
	platformcore.ColorOrange,
}

// toChar maps arena pixels to a character offset inside the board.
func toChar(p core.Vec2) (int, int) {
	return int(p.X * charsPerCol / core.BallSize), int(p.Y / core.BallSize)
}

func glyph(k core.Kind) string {
	switch k {
	case core.KindBomb:
		return "@@"
	case core.KindBonusTime:
		return "++"
	default:
		return "()"
	}
}

func marbleColor(m *core.Marble) platformcore.Color {
	if m.Color < 0 || m.Color >= core.ColorCount {
		return platformcore.ColorWhite
	}
	return marblePalette[m.Color]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudH
	s := g.session

	g.renderHUD(dst, boardX)
	dst.DrawBox(platformcore.NewRect(boardX, boardY, boardW, boardH), platformcore.ColorGray)

	ox, oy := boardX+1, boardY+1
	if s.State() != core.StateStopped {
		g.renderAim(dst, ox, oy)
	}
	for _, m := range s.Grid().Marbles() {
		drawMarble(dst, ox, oy, m)
	}
	for _, m := range s.Falling() {
		drawMarble(dst, ox, oy, m)
	}
	if p := s.Projectile(); p != nil {
		drawMarble(dst, ox, oy, p)
	}
	g.renderLauncher(dst, ox, oy)
	if s.ExplosionMsecs() > 0 {
		renderExplosion(dst, ox, oy, s.Explosion())
	}

	dst.DrawTextCenteredWithColor(boardY+boardH, "←→ aim  spc fire  tab swap  p pause  q quit", platformcore.ColorGray)

	g.renderOverlay(dst, boardX, boardY)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
}

// drawMarble draws a two-character marble centred on its position.
// Parts outside the arena are clipped.
func drawMarble(dst *platformcore.Screen, ox, oy int, m *core.Marble) {
	cx, cy := toChar(m.Pos)
	if cy < 0 || cy >= arenaH {
		return
	}
	for i, r := range glyph(m.Kind) {
		x := cx - 1 + i
		if x < 0 || x >= arenaW {
			continue
		}
		dst.SetWithColor(ox+x, oy+cy, r, marbleColor(m))
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen, boardX int) {
	s := g.session

	dst.DrawTextWithColor(boardX, 0, "MARBLES", platformcore.ColorBrightWhite)
	level := fmt.Sprintf("Level %d/%d", s.Level()+1, s.LevelCount())
	dst.DrawText(boardX+boardW-len(level), 0, level)

	dst.DrawText(boardX, 1, fmt.Sprintf("Score %d", s.Score()))

	timeColor := platformcore.ColorDefault
	if s.RemainingSeconds() <= 10 {
		timeColor = platformcore.ColorBrightRed
	}
	clock := fmt.Sprintf("Time %d", s.RemainingSeconds())
	dst.DrawTextWithColor(boardX+boardW-len(clock), 1, clock, timeColor)

	if g.flashTicks > 0 {
		flash := fmt.Sprintf("+%d", g.last.ScoreDelta)
		if g.last.BonusMsecs > 0 {
			flash += fmt.Sprintf(" +%ds", int(g.last.BonusMsecs/1000))
		}
		dst.DrawTextCenteredWithColor(1, flash, platformcore.ColorBrightGreen)
	}
}

// renderAim draws a dotted line from the launcher along the aim angle.
func (g *Game) renderAim(dst *platformcore.Screen, ox, oy int) {
	a := g.session.Angle()
	dir := core.V(math.Sin(a), -math.Cos(a))
	origin := core.V(core.LauncherX, core.LauncherY)

	for i := 1; i <= aimDots; i++ {
		x, y := toChar(origin.Add(dir.Scale(aimSpacing * float64(i))))
		if x < 0 || x >= arenaW || y < 0 || y >= arenaH {
			break
		}
		dst.SetWithColor(ox+x, oy+y, '·', platformcore.ColorGray)
	}
}

func (g *Game) renderLauncher(dst *platformcore.Screen, ox, oy int) {
	s := g.session
	if m := s.Current(); m != nil {
		launcher := *m
		launcher.Pos = core.V(core.LauncherX, core.LauncherY)
		drawMarble(dst, ox, oy, &launcher)
	}
	if m := s.Next(); m != nil {
		x, y := toChar(core.V(core.ArenaWidth-90, core.LauncherY))
		dst.DrawTextWithColor(ox+x-6, oy+y, "next", platformcore.ColorGray)
		for i, r := range glyph(m.Kind) {
			dst.SetWithColor(ox+x+i, oy+y, r, marbleColor(m))
		}
	}
}

// explosionOffsets are the character offsets of a burst around its centre.
var explosionOffsets = [][2]int{{0, 0}, {-3, 0}, {3, 0}, {-2, -1}, {2, -1}, {-2, 1}, {2, 1}}

func renderExplosion(dst *platformcore.Screen, ox, oy int, centre core.Vec2) {
	cx, cy := toChar(centre)
	for _, d := range explosionOffsets {
		x, y := cx+d[0], cy+d[1]
		if x < 0 || x >= arenaW || y < 0 || y >= arenaH {
			continue
		}
		dst.SetWithColor(ox+x, oy+y, '*', platformcore.ColorBrightYellow)
	}
}

func (g *Game) renderOverlay(dst *platformcore.Screen, boardX, boardY int) {
	s := g.session
	var title, line1, line2 string
	color := platformcore.ColorBrightWhite

	switch {
	case s.Paused():
		title, line2 = "PAUSED", "p to resume"
	case s.State() == core.StatePreparing:
		title = "GET READY"
		line1 = fmt.Sprintf("LEVEL %d", s.Level()+1)
	case s.Outcome() == core.OutcomeWon:
		title, color = "CONGRATULATIONS", platformcore.ColorBrightGreen
		line1 = fmt.Sprintf("Time bonus %d  Total %d", s.Bonus(), s.Score())
		line2 = "enter next stage"
	case s.Outcome() == core.OutcomeCompleted:
		title, color = "ALL STAGES CLEAR", platformcore.ColorBrightGreen
		line1 = fmt.Sprintf("Time bonus %d  Total %d", s.Bonus(), s.Score())
		line2 = "r play again  q quit"
	case s.Outcome() == core.OutcomeLost:
		title, color = "GAME OVER", platformcore.ColorBrightRed
		line1 = fmt.Sprintf("Total %d", s.Score())
		line2 = "r restart  q quit"
	default:
		return
	}

	w := boardW - 6
	box := platformcore.NewRect(boardX+3, boardY+boardH/2-3, w, 6)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, color)
	dst.DrawTextCenteredWithColor(box.Y+1, title, color)
	if line1 != "" {
		dst.DrawTextCentered(box.Y+2, line1)
	}
	if line2 != "" {
		dst.DrawTextCenteredWithColor(box.Y+4, line2, platformcore.ColorGray)
	}
}
