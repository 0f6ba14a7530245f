package joust

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-joust/internal/core"
	"github.com/vovakirdan/tui-joust/internal/multiplayer"
)

// Visual characters for rendering
const (
	PlatformChar = '▀'
	LavaChar     = '~'
	LavaWave     = '≈'
	EggChar      = 'o'
)

// Sprites are drawn top row first. Knights are 3×2 and the pterodactyl
// is 4×2 with its beak on the leading edge.
var (
	knightRight = [2]string{"-o>", "/^\\"}
	knightLeft  = [2]string{"<o-", "/^\\"}
	pteroRight  = [2]string{"\\^/ ", "=-=>"}
	pteroLeft   = [2]string{" \\^/", "<=-="}
)

// Colors per entity
var (
	riderColors = map[core.PlayerID]core.Color{
		core.Player1: core.ColorBrightYellow,
		core.Player2: core.ColorBrightCyan,
	}
	enemyColors = map[EnemyKind]core.Color{
		KindBounder:    core.ColorRed,
		KindHunter:     core.ColorWhite,
		KindShadowLord: core.ColorBlue,
	}
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Terminal too small"
		hint := fmt.Sprintf("Need %dx%d", g.cfg.Layout.MinWidth, g.cfg.Layout.MinHeight)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorBrightRed)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorGray)
		return
	}

	g.renderLava(dst)
	g.renderPlatforms(dst)

	for _, egg := range g.eggs {
		if egg.Active {
			g.renderEgg(dst, egg)
		}
	}
	for _, e := range g.enemies {
		if e.Active {
			g.drawSprite(dst, &e.Body, knightLeft, knightRight, enemyColors[e.Kind])
		}
	}
	if g.ptero != nil {
		g.drawSprite(dst, &g.ptero.Body, pteroLeft, pteroRight, core.ColorGreen)
	}
	for _, r := range g.riders {
		g.renderRider(dst, r)
	}

	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderHUD draws scores, lives and the wave number on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	for _, r := range g.riders {
		text := fmt.Sprintf("%s %07d ♥%d", r.ID, r.Score, max(r.Lives, 0))
		x := 1
		if r.ID == core.Player2 {
			x = dst.Width() - len([]rune(text)) - 1
		}
		dst.DrawTextColor(x, 0, text, riderColors[r.ID])
	}

	waveText := fmt.Sprintf("WAVE %d", g.wave.Number)
	if len(g.riders) == 1 {
		dst.DrawTextColor(dst.Width()-len(waveText)-1, 0, waveText, core.ColorBrightWhite)
	} else {
		dst.DrawTextCentered(0, waveText, core.ColorBrightWhite)
	}
}

// renderLava draws an animated lava surface.
func (g *Game) renderLava(dst *core.Screen) {
	phase := g.tick / 8
	for y := g.layout.LavaY; y < dst.Height(); y++ {
		for x := range dst.Width() {
			ch, color := LavaChar, core.ColorRed
			if (x+y+phase)%4 == 0 {
				ch, color = LavaWave, core.ColorOrange
			}
			dst.SetColor(x, y, ch, color)
		}
	}
}

// renderPlatforms draws ledges and the bottom row.
func (g *Game) renderPlatforms(dst *core.Screen) {
	for _, p := range g.layout.Platforms {
		r := p.Rect.Cell()
		color := core.ColorBrown
		if p.Floor {
			color = core.ColorOrange
		}
		dst.DrawHLine(r.X, r.Y, r.W, PlatformChar, color)
	}
}

func (g *Game) renderEgg(dst *core.Screen, egg *Egg) {
	color := core.ColorBrightWhite
	// Flash just before hatching
	if egg.Resting() && egg.HatchTimer < 60 && (g.tick/6)%2 == 0 {
		color = enemyColors[egg.Kind.Next()]
	}
	x := wrapX(int(math.Floor(egg.X)), dst.Width())
	dst.SetColor(x, int(math.Floor(egg.Y)), EggChar, color)
}

func (g *Game) renderRider(dst *core.Screen, r *Rider) {
	if !r.Alive {
		return
	}
	// Flash while invincible
	if r.InvincibleTimer > 0 && (g.tick/4)%2 == 0 {
		return
	}
	g.drawSprite(dst, &r.Body, knightLeft, knightRight, riderColors[r.ID])
}

// drawSprite draws a two-row sprite, wrapping across the side edges.
func (g *Game) drawSprite(dst *core.Screen, b *Body, left, right [2]string, color core.Color) {
	sprite := left
	if b.FacingRight {
		sprite = right
	}
	x0 := int(math.Floor(b.X))
	y0 := int(math.Floor(b.Y))
	for dy, row := range sprite {
		dx := 0
		for _, ch := range row {
			if ch != ' ' {
				dst.SetColor(wrapX(x0+dx, dst.Width()), y0+dy, ch, color)
			}
			dx++
		}
	}
}

func wrapX(x, width int) int {
	if width <= 0 {
		return x
	}
	return ((x % width) + width) % width
}

// renderOverlay draws banners and the pause / game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.gameOver:
		g.drawCenteredMessage(dst, g.gameOverTitle(), g.gameOverSummary(), "R restart  Esc menu  Q quit")
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume", "Esc menu  Q quit")
	case g.wave.Phase == PhaseIntermission:
		sub := "GET READY"
		if g.wave.BonusPaid {
			sub = fmt.Sprintf("EGG BONUS +%d  GET READY", g.cfg.Scoring.EggBonus)
		}
		g.drawBanner(dst, fmt.Sprintf("WAVE %d CLEARED", g.wave.Number), sub)
	case g.wave.BannerTimer > 0:
		g.drawBanner(dst, fmt.Sprintf("WAVE %d", g.wave.Number), g.wave.Composition.String())
	}
}

func (g *Game) gameOverTitle() string {
	if g.mode != multiplayer.MatchModeVersus {
		return "GAME OVER"
	}
	if g.winner == 0 {
		return "DRAW"
	}
	return fmt.Sprintf("%s WINS", g.winner)
}

func (g *Game) gameOverSummary() string {
	state := g.State()
	if g.mode == multiplayer.MatchModeVersus {
		return fmt.Sprintf("P1 %d  |  P2 %d", state.Players[0].Score, state.Players[1].Score)
	}
	return fmt.Sprintf("Score: %d  |  Wave: %d", state.Score, state.Wave)
}

// drawBanner draws one or two lines across the upper playfield.
func (g *Game) drawBanner(dst *core.Screen, title, subtitle string) {
	y := g.layout.Top + 1
	dst.DrawTextCentered(y, title, core.ColorBrightYellow)
	if subtitle != "" {
		dst.DrawTextCentered(y+1, subtitle, core.ColorGray)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW = min(boxW+4, w)
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorGray)

	dst.DrawTextCentered(boxY+1, title, core.ColorBrightWhite)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l, core.ColorDefault)
	}
}
