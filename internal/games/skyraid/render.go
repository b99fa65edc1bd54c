package skyraid

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

// Visual characters for rendering
const (
	ShipChar        = 'A'
	PlayerShotChar  = '|'
	EnemyShotChar   = '•'
	BossBodyChar    = '▓'
	WeakPointChar   = '◉'
	ArmorChar       = '█'
	StarChar        = '·'
	CloakedChar     = '░'
	BorderVert      = '│'
	hudRows         = 2
	starCount       = 48
	barWidth        = 10
	invincibleBlink = 8
)

// viewport maps playfield units onto screen cells.
type viewport struct {
	area   core.Rect // Screen cells covered by the playfield
	fieldW float64
	fieldH float64
}

// layout fits the playfield under the HUD. Terminal cells are about twice
// as tall as they are wide, so a 2:3 field needs 4/3 columns per row.
func (g *Game) layout(dst *core.Screen) viewport {
	rows := dst.Height() - hudRows
	cols := rows * 4 / 3
	if cols > dst.Width()-2 {
		cols = dst.Width() - 2
	}
	pf := g.env.Config.Playfield
	return viewport{
		area:   core.NewRect((dst.Width()-cols)/2, hudRows, cols, rows),
		fieldW: pf.Width,
		fieldH: pf.Height,
	}
}

// cell converts a playfield point to a screen cell.
func (v viewport) cell(x, y float64) (int, int, bool) {
	sx := v.area.X + int(math.Floor(x/v.fieldW*float64(v.area.W)))
	sy := v.area.Y + int(math.Floor(y/v.fieldH*float64(v.area.H)))
	if !v.area.Contains(sx, sy) {
		return 0, 0, false
	}
	return sx, sy, true
}

func (v viewport) plot(dst *core.Screen, x, y float64, r rune, c core.Color) {
	if sx, sy, ok := v.cell(x, y); ok {
		dst.SetColored(sx, sy, r, c)
	}
}

// fill covers every cell a box touches, at least the cell of its center.
func (v viewport) fill(dst *core.Screen, b core.Box, r rune, c core.Color) {
	cx, cy := b.Center()
	v.plot(dst, cx, cy, r, c)

	stepX := v.fieldW / float64(v.area.W)
	stepY := v.fieldH / float64(v.area.H)
	for y := b.Y + stepY/2; y < b.Bottom(); y += stepY {
		for x := b.X + stepX/2; x < b.Right(); x += stepX {
			v.plot(dst, x, y, r, c)
		}
	}
}

// Render draws the current session to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall || g.state == nil {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	v := g.layout(dst)
	s := g.state

	g.renderBorder(dst, v)
	g.renderStars(dst, v)
	g.renderParticles(dst, v)
	g.renderPickups(dst, v)
	g.renderEnemies(dst, v)
	g.renderBoss(dst, v)
	g.renderBullets(dst, v)
	g.renderPlayer(dst, v)
	g.renderHUD(dst)

	if s.Screen != sim.ScreenPlaying && s.Screen != sim.ScreenBossFight {
		g.renderOverlay(dst)
	}
}

func (g *Game) renderBorder(dst *core.Screen, v viewport) {
	for y := v.area.Y; y < v.area.Bottom(); y++ {
		dst.SetColored(v.area.X-1, y, BorderVert, core.ColorGray)
		dst.SetColored(v.area.Right(), y, BorderVert, core.ColorGray)
	}
}

// renderStars draws a parallax starfield from the scroll offset. Positions
// are derived from the star index so the field needs no state.
func (g *Game) renderStars(dst *core.Screen, v viewport) {
	for i := range starCount {
		layer := float64(1 + i%3)
		x := math.Mod(float64(i*97+31), v.fieldW)
		y := math.Mod(float64(i*53+17)+g.state.Scroll*layer, v.fieldH)
		c := core.ColorGray
		if layer == 3 {
			c = core.ColorWhite
		}
		v.plot(dst, x, y, StarChar, c)
	}
}

func (g *Game) renderParticles(dst *core.Screen, v viewport) {
	for _, p := range g.state.Particles {
		c := p.Color
		if p.Fade() < 0.3 {
			c = core.ColorGray
		}
		v.plot(dst, p.X, p.Y, p.Glyph, c)
	}
}

func (g *Game) renderPickups(dst *core.Screen, v viewport) {
	for _, p := range g.state.Pickups {
		cx, cy := p.Box().Center()
		v.plot(dst, cx, cy, p.Type.Glyph(), core.ColorBrightGreen)
	}
}

func (g *Game) renderEnemies(dst *core.Screen, v viewport) {
	for _, e := range g.state.Enemies {
		cx, cy := e.Center()
		if e.Cloaked {
			v.plot(dst, cx, cy, CloakedChar, core.ColorGray)
			continue
		}
		c := core.ColorRed
		if e.HP < e.MaxHP {
			c = core.ColorOrange
		}
		v.fill(dst, e.Box(), e.Type.Glyph(), c)
	}
}

func (g *Game) renderBoss(dst *core.Screen, v viewport) {
	b := g.state.Boss
	if b == nil || b.Teleporting {
		return
	}

	body := core.ColorMagenta
	if b.Charge == sim.ChargeWinding || b.Charge == sim.ChargeCharging {
		body = core.ColorBrightRed
	}
	v.fill(dst, b.Box(), BossBodyChar, body)

	for i, part := range b.Parts {
		r, c := ArmorChar, core.ColorGray
		if part.WeakPoint {
			r = WeakPointChar
			if part.Vulnerable {
				c = core.ColorBrightYellow
			}
		}
		v.fill(dst, b.PartBox(i), r, c)
	}
}

func (g *Game) renderBullets(dst *core.Screen, v viewport) {
	for _, b := range g.state.Bullets {
		cx, cy := b.Box().Center()
		if b.Owner == sim.OwnerPlayer {
			v.plot(dst, cx, cy, PlayerShotChar, core.ColorBrightYellow)
		} else {
			v.plot(dst, cx, cy, EnemyShotChar, core.ColorBrightMagenta)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, v viewport) {
	p := g.state.Player
	if p.HP <= 0 {
		return
	}
	// Blink while invincible
	if p.Invincible > 0 && (p.Invincible/invincibleBlink)%2 == 1 {
		return
	}
	c := core.ColorBrightCyan
	if g.state.BuffRemaining(sim.PowerUpShield) > 0 {
		c = core.ColorBrightBlue
	}
	cx, cy := p.Center()
	v.plot(dst, cx, cy, ShipChar, c)
}

// renderHUD draws score, level and ship status on the top two rows.
func (g *Game) renderHUD(dst *core.Screen) {
	s := g.state

	scoreText := fmt.Sprintf("Score: %d", s.Score)
	if s.Combo > 1 {
		scoreText += fmt.Sprintf(" x%d", s.Combo)
	}
	dst.DrawText(1, 0, scoreText)

	dst.DrawTextCenteredColored(0, fmt.Sprintf("%d-%d %s", s.World, s.Level, s.LevelName), core.ColorBrightWhite)

	statusText := fmt.Sprintf("Lives: %d  Bombs: %d", s.Player.Lives, s.Player.Bombs)
	dst.DrawText(dst.Width()-len(statusText)-1, 0, statusText)

	hp := "HP " + bar(s.Player.HP, s.Player.MaxHP) + fmt.Sprintf(" W%d", s.Player.WeaponLevel)
	hpColor := core.ColorBrightGreen
	if s.Player.HP*3 <= s.Player.MaxHP {
		hpColor = core.ColorBrightRed
	}
	dst.DrawTextColored(1, 1, hp, hpColor)

	if b := s.Boss; b != nil && !b.Defeated {
		bossText := fmt.Sprintf("%s P%d %s", b.Name, b.Phase, bar(b.HP, b.MaxHP))
		dst.DrawTextColored(dst.Width()-len([]rune(bossText))-1, 1, bossText, core.ColorMagenta)
		return
	}
	if buffs := g.buffsString(); buffs != "" {
		dst.DrawTextColored(dst.Width()-len(buffs)-1, 1, buffs, core.ColorCyan)
	}
}

// bar renders a fixed-width fill gauge.
func bar(v, maxV int) string {
	filled := 0
	if maxV > 0 {
		filled = core.Clamp(v*barWidth/maxV, 0, barWidth)
		if v > 0 && filled == 0 {
			filled = 1
		}
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", barWidth-filled) + "]"
}

// buffsString creates a compact display of active buffs.
func (g *Game) buffsString() string {
	parts := make([]string, 0, len(g.state.Buffs))
	for _, b := range g.state.Buffs {
		parts = append(parts, fmt.Sprintf("%s(%d)", b.Type, b.Remaining/60))
	}
	return strings.Join(parts, " ")
}

// renderOverlay draws banners for non-combat screens.
func (g *Game) renderOverlay(dst *core.Screen) {
	s := g.state
	switch s.Screen {
	case sim.ScreenBriefing:
		g.drawCenteredBox(dst, fmt.Sprintf("WORLD %d-%d", s.World, s.Level), s.LevelName)

	case sim.ScreenBossIntro:
		name := s.BossKind.String()
		if s.Boss != nil {
			name = s.Boss.Name
		}
		g.drawCenteredBox(dst, "WARNING", name+" approaching")

	case sim.ScreenLevelComplete:
		title := "LEVEL COMPLETE"
		if s.Summary != nil && s.Summary.BossDefeated {
			title = "BOSS DEFEATED"
		}
		subtitle := ""
		if sum := s.Summary; sum != nil {
			subtitle = fmt.Sprintf("Score %d  Stars %s  Credits %d",
				sum.Score, strings.Repeat("*", sum.Stars), sum.Credits)
		}
		if s.AwaitConfirm {
			subtitle += "  |  ENTER to continue"
		}
		g.drawCenteredBox(dst, title, subtitle)

	case sim.ScreenPaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case sim.ScreenGameOver:
		g.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))

	case sim.ScreenEnding:
		g.drawCenteredBox(dst, "CAMPAIGN COMPLETE", fmt.Sprintf("Final Score: %d  |  Press R to restart", s.Score))
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	titleW := len([]rune(title))
	subtitleW := len([]rune(subtitle))
	boxW := core.Min(core.Max(titleW, subtitleW)+4, w)
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-titleW)/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-subtitleW)/2, boxY+3, subtitle)
}
