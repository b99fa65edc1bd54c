package skyraid

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/sim"
)

// Autopilot tuning in playfield units
const (
	dodgeAhead   = 140.0 // Shots closer than this above the ship are threats
	dodgeWidth   = 36.0
	alignRange   = 24.0 // Horizontal offset that maps to full stick
	bombRadius   = 90.0
	bombBullets  = 6
	bombCrowd    = 10
	restFromBase = 30.0
)

// Autopilot chooses input for an unattended session. It always fires,
// sidesteps the nearest incoming shot, lines up under the closest target
// and bombs when crowded. It confirms finished levels.
func Autopilot(s *sim.State) sim.Input {
	in := sim.Input{Fire: true}
	if s.Screen == sim.ScreenLevelComplete && s.AwaitConfirm {
		in.Confirm = true
		return in
	}
	if !s.Screen.Combat() || s.Player.HP <= 0 {
		return in
	}

	pf := s.Env().Config.Playfield
	px, py := s.Player.Center()

	if bx, ok := nearestThreat(s, px, py); ok {
		switch {
		case bx > px:
			in.MoveX = -1
		case bx < px:
			in.MoveX = 1
		case px > pf.Width/2:
			in.MoveX = -1
		default:
			in.MoveX = 1
		}
	} else if tx, ok := nearestTarget(s, px); ok {
		in.MoveX = core.ClampF((tx-px)/alignRange, -1, 1)
	}

	rest := pf.Height - s.Player.H - restFromBase
	if s.Player.Y < rest-1 {
		in.MoveY = 1
	}

	if s.Player.Bombs > 0 && s.Player.BombCooldown == 0 {
		if countNear(s, px, py, bombRadius) >= bombBullets || len(s.Enemies) >= bombCrowd {
			in.Bomb = true
		}
	}
	return in
}

// nearestThreat returns the x of the closest enemy shot heading into the
// ship's column.
func nearestThreat(s *sim.State, px, py float64) (float64, bool) {
	best, found := math.Inf(1), false
	var bx float64
	for _, b := range s.Bullets {
		if b.Owner != sim.OwnerEnemy {
			continue
		}
		cx, cy := b.Box().Center()
		dy := py - cy
		if dy < -s.Player.H || dy > dodgeAhead || math.Abs(cx-px) > dodgeWidth {
			continue
		}
		if d := math.Hypot(cx-px, dy); d < best {
			best, bx, found = d, cx, true
		}
	}
	return bx, found
}

// nearestTarget returns the x of the boss, or of the enemy closest in x.
func nearestTarget(s *sim.State, px float64) (float64, bool) {
	if b := s.Boss; b != nil && b.Tangible() && !b.Entering {
		cx, _ := b.Center()
		return cx, true
	}
	best, found := math.Inf(1), false
	var tx float64
	for _, e := range s.Enemies {
		if e.Cloaked {
			continue
		}
		cx, _ := e.Center()
		if d := math.Abs(cx - px); d < best {
			best, tx, found = d, cx, true
		}
	}
	return tx, found
}

func countNear(s *sim.State, px, py, radius float64) int {
	n := 0
	for _, b := range s.Bullets {
		if b.Owner != sim.OwnerEnemy {
			continue
		}
		cx, cy := b.Box().Center()
		if math.Hypot(cx-px, cy-py) <= radius {
			n++
		}
	}
	return n
}

// Report summarizes an unattended run.
type Report struct {
	Frames         int
	Screen         sim.Screen
	World          int
	Level          int
	Score          int
	XP             int
	Kills          int
	Deaths         int
	MaxCombo       int
	BossesDefeated int
	Levels         []sim.LevelSummary
}

// RunHeadless plays a session with the autopilot until it ends or the frame
// budget runs out.
func RunHeadless(env *sim.Env, world, level int, seed int64, frames int) Report {
	s := sim.NewSession(env, world, level, seed)
	var r Report
	for r.Frames < frames && !s.Screen.Terminal() {
		var out sim.Outcome
		s, out = sim.Step(s, Autopilot(s))
		r.Frames++
		if out.Summary != nil {
			r.Levels = append(r.Levels, *out.Summary)
		}
		if out.BossDefeated {
			r.BossesDefeated++
		}
		r.Score, r.XP, r.Kills, r.Deaths, r.MaxCombo = out.Score, out.XP, out.Kills, out.Deaths, out.MaxCombo
	}
	r.Screen = s.Screen
	r.World = s.World
	r.Level = s.Level
	return r
}
