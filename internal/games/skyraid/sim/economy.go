package sim

import (
	"math"

	"github.com/vovakirdan/skyraid/internal/core"
)

// comboMultiplier returns the score multiplier for the current combo.
func comboMultiplier(s *State) float64 {
	c := s.env.Config.Combo
	return math.Min(1+float64(s.Combo)*c.Step, c.Cap)
}

// decayCombo counts the combo window down and drops the combo when it runs out.
func decayCombo(s *State) {
	if s.ComboTimer <= 0 {
		return
	}
	s.ComboTimer--
	if s.ComboTimer == 0 {
		s.Combo = 0
	}
}

// awardKill credits a destroyed enemy. The multiplier uses the combo from
// before this kill.
func awardKill(s *State, e Enemy, out *Outcome) {
	mult := comboMultiplier(s)
	s.Score += int(math.Round(float64(e.BaseScore) * mult))
	s.XP += int(math.Round(float64(e.XP) * mult))
	s.Combo++
	s.ComboTimer = s.env.Config.Combo.Window
	s.MaxCombo = max(s.MaxCombo, s.Combo)
	s.Kills++
	s.LevelKills++
	explosion(s, e.Box())
	out.audio(AudioEnemyDestroyed)
	tryDrop(s, e)
}

// damageEnemy reduces an enemy's hp in place so later hits in the same pass
// see the reduced value. Returns true if this damage destroyed it.
func damageEnemy(s *State, idx int, dmg int, out *Outcome) bool {
	e := &s.Enemies[idx]
	if !e.Alive() || dmg <= 0 {
		return false
	}
	e.HP -= dmg
	if e.HP > 0 {
		cx, cy := e.Center()
		spark(s, cx, cy)
		out.audio(AudioEnemyHit)
		return false
	}
	e.HP = 0
	awardKill(s, *e, out)
	return true
}

// detonateBomb clears the sky when the player triggers a bomb. It needs a
// charge and an expired cooldown.
func detonateBomb(s *State, in Input, out *Outcome) {
	p := &s.Player
	if !in.Bomb || p.Bombs <= 0 || p.BombCooldown > 0 || p.HP <= 0 {
		return
	}
	cfg := s.env.Config.Bomb
	p.Bombs--
	p.BombCooldown = cfg.Cooldown

	for i := range s.Enemies {
		if s.Enemies[i].Alive() {
			s.Enemies[i].HP = 0
			awardKill(s, s.Enemies[i], out)
		}
	}
	s.Enemies = s.Enemies[:0]
	clearEnemyBullets(s)

	if s.Boss != nil && !s.Boss.Defeated && !s.Boss.Entering {
		damageBoss(s, cfg.BossDamage, out)
	}

	f := s.field()
	emitBurst(s, f.W/2, f.H/2, 40, 8, 40, '#', core.ColorBrightWhite)
	out.audio(AudioBomb)
}

// hitPlayer applies one hit. A shield drains a fixed chunk of its duration
// instead of hp; otherwise hp drops by one.
func hitPlayer(s *State, out *Outcome) {
	cfg := s.env.Config
	p := &s.Player
	if p.Invincible > 0 || p.HP <= 0 {
		return
	}

	if i := s.buffIndex(PowerUpShield); i >= 0 {
		s.Buffs[i].Remaining -= cfg.PowerUps.ShieldHitCost
		if s.Buffs[i].Remaining <= 0 {
			s.removeBuff(PowerUpShield)
		}
		p.Invincible = cfg.Player.ShieldGrace
		cx, cy := p.Center()
		emitBurst(s, cx, cy, 8, 2, 15, 'o', core.ColorCyan)
		out.audio(AudioShieldHit)
		return
	}

	p.HP--
	p.Invincible = cfg.Player.HitInvincible
	out.audio(AudioPlayerHit)
	if p.HP <= 0 {
		p.HP = 0
		loseLife(s, out)
	}
}

// loseLife consumes a life. With lives left the ship respawns in place one
// weapon level weaker; otherwise it stays at zero hp for game over.
func loseLife(s *State, out *Outcome) {
	cfg := s.env.Config.Player
	p := &s.Player
	s.Deaths++
	s.LevelDeaths++
	p.Lives = max(0, p.Lives-1)
	explosion(s, p.Box())
	out.audio(AudioLifeLost)

	if p.Lives == 0 {
		p.HP = 0
		return
	}
	p.WeaponLevel = max(1, p.WeaponLevel-1)
	p.HP = p.MaxHP
	p.Invincible = cfg.RespawnInvincible
	s.Combo = 0
	s.ComboTimer = 0
}

// tickPlayerTimers counts down fire, invincibility and bomb timers.
func tickPlayerTimers(s *State) {
	p := &s.Player
	if p.FireTimer > 0 {
		p.FireTimer--
	}
	if p.Invincible > 0 {
		p.Invincible--
	}
	if p.BombCooldown > 0 {
		p.BombCooldown--
	}
}

// summarize builds the level summary from the tracked counters.
func summarize(s *State, bossDefeated bool) *LevelSummary {
	ratio := 1.0
	if s.LevelSpawned > 0 {
		ratio = core.ClampF(float64(s.LevelKills)/float64(s.LevelSpawned), 0, 1)
	}
	score := s.Score - s.LevelStartScore
	stars := starRating(s.LevelDeaths, ratio)
	return &LevelSummary{
		World:        s.World,
		Level:        s.Level,
		Score:        score,
		Deaths:       s.LevelDeaths,
		Kills:        s.LevelKills,
		Spawned:      s.LevelSpawned,
		KillRatio:    ratio,
		Stars:        stars,
		Credits:      max(0, score)/100 + stars*50,
		BossDefeated: bossDefeated,
	}
}

// starRating grades a level from 1 to 3 stars.
func starRating(deaths int, killRatio float64) int {
	switch {
	case deaths == 0 && killRatio >= 0.8:
		return 3
	case deaths <= 1 || killRatio >= 0.6:
		return 2
	default:
		return 1
	}
}
