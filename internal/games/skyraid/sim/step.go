package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// Step advances the session by one frame. prev is never modified; the
// returned state is a fresh snapshot.
//
// Inside a combat frame systems run in a fixed order: movement, shooting
// (including the bomb), bullet advance, collision, power-ups, particles,
// then timers and orchestration.
func Step(prev *State, in Input) (*State, Outcome) {
	s := prev.Clone()
	in = in.sanitized()
	var out Outcome

	if in.Pause && togglePause(s) {
		s.fillOutcome(&out)
		return s, out
	}
	if s.Screen == ScreenPaused {
		s.fillOutcome(&out)
		return s, out
	}

	s.Frame++
	s.scroll()

	switch s.Screen {
	case ScreenBriefing:
		updateBriefing(s, &out)
	case ScreenBossIntro:
		updateBossIntro(s, &out)
	case ScreenPlaying, ScreenBossFight:
		combatFrame(s, in, &out)
	case ScreenLevelComplete:
		updateLevelComplete(s, in, &out)
	default:
		// Game over and ending only keep the background alive
		updateParticles(s)
	}

	s.fillOutcome(&out)
	return s, out
}

func combatFrame(s *State, in Input, out *Outcome) {
	decayCombo(s)

	movePlayer(s, in)
	moveEnemies(s)
	updateBoss(s, out)
	movePickups(s)

	fireEnemies(s, out)
	fireBoss(s, out)
	firePlayer(s, in, out)
	detonateBomb(s, in, out)

	advanceBullets(s)
	resolveCollisions(s, out)

	collectPickups(s, out)
	tickBuffs(s)

	updateParticles(s)

	tickPlayerTimers(s)
	cullEnemies(s)
	if s.Screen == ScreenPlaying {
		updateWaves(s, out)
	}
	checkTransitions(s, out)
}

// movePlayer moves the ship and keeps it inside the playfield.
func movePlayer(s *State, in Input) {
	p := &s.Player
	if p.HP <= 0 {
		return
	}
	f := s.field()
	p.X = core.ClampF(core.Finite(p.X+in.MoveX*p.Speed, p.X), 0, math.Max(0, f.W-p.W))
	p.Y = core.ClampF(core.Finite(p.Y+in.MoveY*p.Speed, p.Y), 0, math.Max(0, f.H-p.H))
}

// scroll advances the starfield offset.
func (s *State) scroll() {
	h := s.env.Config.Playfield.Height
	if h <= 0 {
		return
	}
	s.Scroll = math.Mod(s.Scroll+s.env.Config.Playfield.ScrollSpeed, h)
}

// fillOutcome copies the session totals into the frame outcome.
func (s *State) fillOutcome(out *Outcome) {
	out.Score = s.Score
	out.XP = s.XP
	out.Kills = s.Kills
	out.Deaths = s.Deaths
	out.MaxCombo = s.MaxCombo
}
